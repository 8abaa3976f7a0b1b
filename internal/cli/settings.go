package cli

import (
	"fmt"
	"time"

	"github.com/mgpai22/vttify/internal/source"
	"github.com/mgpai22/vttify/internal/subtitle"
	"github.com/spf13/viper"
)

// values resolved from flags, VTTIFY_* env vars and the config file
type settings struct {
	Strict      bool
	Format      subtitle.Format
	Timeout     time.Duration
	Concurrency int
}

func loadSettings() (settings, error) {
	return settingsFrom(viper.GetViper())
}

func settingsFrom(v *viper.Viper) (settings, error) {
	format, err := subtitle.ParseFormat(v.GetString("format"))
	if err != nil {
		return settings{}, err
	}

	timeout := v.GetDuration("timeout")
	if timeout <= 0 {
		return settings{}, fmt.Errorf("timeout must be positive, got %v", timeout)
	}

	return settings{
		Strict:      v.GetBool("strict"),
		Format:      format,
		Timeout:     timeout,
		Concurrency: v.GetInt("concurrency"),
	}, nil
}

// normalizes one loaded input; an explicit --format replaces the origin hint
func normalizeInput(in *source.Input, cfg settings) (*subtitle.Result, error) {
	hint := in.Hint
	if cfg.Format != subtitle.FormatUnknown {
		hint = cfg.Format
	}

	normalizer := &subtitle.Normalizer{Strict: cfg.Strict}
	res, err := normalizer.Normalize(in.Text, hint)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", in.Name, err)
	}

	logger.Debugw("Normalized subtitles",
		"input", in.Name,
		"hint", hint,
		"format", res.Format,
		"cues", res.Cues,
	)
	if res.Cues == 0 {
		logger.Warnw("No cues found in subtitle input",
			"input", in.Name,
			"format", res.Format,
		)
	}
	return res, nil
}
