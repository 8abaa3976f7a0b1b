package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mgpai22/vttify/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	verbose bool
	cfgFile string
	logger  = logging.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "vttify",
	Short: "Convert SubRip and loose WebVTT subtitles into strict WebVTT",
	Long: `Vttify is a CLI tool that turns subtitle text into WebVTT that a
browser <track> element will accept.

SubRip (.srt) input is converted cue by cue. WebVTT input missing a proper
header gets one. Subtitles can be read from files, URLs, stdin, or the
subtitle streams of a video file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)
		return initConfig()
	},
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "Config file (yaml, toml, or json)")
	rootCmd.PersistentFlags().
		StringP("output", "o", "", "Output file path (- for stdout)")
	rootCmd.PersistentFlags().
		StringP("format", "f", "auto", "Input format (auto, srt, vtt)")
	rootCmd.PersistentFlags().
		Bool("strict", false, "Fail when SubRip input contains no cues")
	rootCmd.PersistentFlags().
		Duration("timeout", 30*time.Second, "Timeout for fetching subtitle URLs")

	viper.SetDefault("format", "auto")
	viper.SetDefault("strict", false)
	viper.SetDefault("timeout", 30*time.Second)

	mustBindFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	mustBindFlag("strict", rootCmd.PersistentFlags().Lookup("strict"))
	mustBindFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))

	// VTTIFY_STRICT, VTTIFY_CONCURRENCY, ...
	viper.SetEnvPrefix("vttify")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func mustBindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

func initConfig() error {
	if cfgFile == "" {
		return nil
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	logger.Debugw("Loaded config", "file", viper.ConfigFileUsed())
	return nil
}
