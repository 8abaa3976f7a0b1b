package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/mgpai22/vttify/internal/source"
	"github.com/mgpai22/vttify/internal/subtitle"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [input]",
	Short: "Show how an input would be converted",
	Long: `Detect the format of a subtitle input and report the cues found
before and after conversion.

Examples:
  vttify inspect movie.srt
  vttify inspect https://example.com/subs/ep1.vtt
  cat subs.txt | vttify inspect -`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

type inspection struct {
	Name        string
	Hint        subtitle.Format
	Format      subtitle.Format
	SourceCues  int // -1 when the source format cannot be parsed
	Output      *subtitle.Subtitle
	OutputLines int
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	in, err := source.NewLoader(cfg.Timeout).Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	report, err := inspectInput(in, cfg)
	if err != nil {
		return err
	}

	if report.SourceCues >= 0 && report.SourceCues != len(report.Output.Entries) {
		logger.Warnw("Cue count changed during conversion",
			"input", in.Name,
			"source_cues", report.SourceCues,
			"output_cues", len(report.Output.Entries),
		)
	}

	return printInspection(cmd.OutOrStdout(), report)
}

func inspectInput(in *source.Input, cfg settings) (*inspection, error) {
	res, err := normalizeInput(in, cfg)
	if err != nil {
		return nil, err
	}

	report := &inspection{
		Name:        in.Name,
		Hint:        in.Hint,
		Format:      res.Format,
		SourceCues:  -1,
		OutputLines: strings.Count(res.Text, "\n"),
	}

	if res.Format != subtitle.FormatUnknown {
		src, err := subtitle.Parse(strings.NewReader(in.Text), res.Format)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s input: %w", res.Format, err)
		}
		report.SourceCues = len(src.Entries)
	}

	out, err := subtitle.Parse(strings.NewReader(res.Text), subtitle.FormatVTT)
	if err != nil {
		return nil, fmt.Errorf("failed to parse converted output: %w", err)
	}
	report.Output = out
	return report, nil
}

func printInspection(w io.Writer, r *inspection) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Input:           %s\n", r.Name)
	fmt.Fprintf(&sb, "Hint:            %s\n", r.Hint)
	fmt.Fprintf(&sb, "Detected format: %s\n", r.Format)
	if r.SourceCues >= 0 {
		fmt.Fprintf(&sb, "Source cues:     %d\n", r.SourceCues)
	} else {
		sb.WriteString("Source cues:     n/a\n")
	}
	fmt.Fprintf(&sb, "Output cues:     %d\n", len(r.Output.Entries))
	fmt.Fprintf(&sb, "Output lines:    %d\n", r.OutputLines)

	if n := len(r.Output.Entries); n > 0 {
		first, last := r.Output.Entries[0], r.Output.Entries[n-1]
		fmt.Fprintf(&sb, "First cue:       %s --> %s\n",
			subtitle.FormatTimestamp(first.StartTime),
			subtitle.FormatTimestamp(first.EndTime))
		fmt.Fprintf(&sb, "Last cue:        %s --> %s\n",
			subtitle.FormatTimestamp(last.StartTime),
			subtitle.FormatTimestamp(last.EndTime))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
