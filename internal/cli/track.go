package cli

import (
	"fmt"

	"github.com/mgpai22/vttify/internal/source"
	"github.com/mgpai22/vttify/internal/track"
	"github.com/spf13/cobra"
)

var trackCmd = &cobra.Command{
	Use:   "track [input]",
	Short: "Print an HTML <track> element with the subtitles inlined",
	Long: `Convert a subtitle input and print a <track> element whose src is a
data: URI holding the WebVTT. Paste it inside a <video> element to attach
the subtitles without hosting a separate file.

Examples:
  vttify track movie.srt
  vttify track movie.srt --label English --srclang en
  vttify track commentary.vtt --kind captions --default=false`,
	Args: cobra.ExactArgs(1),
	RunE: runTrack,
}

func init() {
	rootCmd.AddCommand(trackCmd)

	defaults := track.DefaultOptions()
	trackCmd.Flags().
		String("kind", defaults.Kind, "Track kind (subtitles, captions, descriptions, chapters, metadata)")
	trackCmd.Flags().
		String("label", defaults.Label, "Label shown in the player's track menu")
	trackCmd.Flags().
		String("srclang", defaults.SrcLang, "Language of the subtitles (BCP 47 tag)")
	trackCmd.Flags().
		Bool("default", defaults.Default, "Mark the track as enabled by default")
}

func runTrack(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	kind, _ := cmd.Flags().GetString("kind")
	label, _ := cmd.Flags().GetString("label")
	srclang, _ := cmd.Flags().GetString("srclang")
	isDefault, _ := cmd.Flags().GetBool("default")

	in, err := source.NewLoader(cfg.Timeout).Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	res, err := normalizeInput(in, cfg)
	if err != nil {
		return err
	}

	t, err := track.New(res.Text, track.Options{
		Kind:    kind,
		Label:   label,
		SrcLang: srclang,
		Default: isDefault,
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), t.HTML())
	return err
}
