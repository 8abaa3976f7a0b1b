package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mgpai22/vttify/internal/media"
	"github.com/mgpai22/vttify/internal/source"
	"github.com/mgpai22/vttify/internal/subtitle"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [video_file]",
	Short: "Extract an embedded subtitle stream from a video as WebVTT",
	Long: `Extract a text subtitle stream from a video container and save it as
WebVTT. Bitmap subtitles (PGS, VobSub) cannot be extracted as text.

Streams are numbered from 0 in container order; use --list to see them.

Examples:
  vttify extract movie.mkv --list
  vttify extract movie.mkv
  vttify extract movie.mkv --stream 2 -o movie.fr.vtt`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().
		IntP("stream", "s", 0, "Subtitle stream index")
	extractCmd.Flags().
		Bool("list", false, "List subtitle streams and exit")
}

func runExtract(cmd *cobra.Command, args []string) error {
	videoPath := args[0]
	ctx := cmd.Context()

	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	index, _ := cmd.Flags().GetInt("stream")
	list, _ := cmd.Flags().GetBool("list")
	outputPath, _ := cmd.Flags().GetString("output")

	if !media.IsVideoFile(videoPath) {
		return fmt.Errorf("unsupported video file %q", videoPath)
	}

	processor := media.NewProcessor("")

	logger.Infow("Probing subtitle streams", "video", videoPath)
	streams, err := processor.ListSubtitleStreams(ctx, videoPath)
	if err != nil {
		return fmt.Errorf("failed to list subtitle streams: %w", err)
	}

	if list {
		return printStreams(cmd.OutOrStdout(), streams)
	}

	stream, err := selectStream(streams, index)
	if err != nil {
		return err
	}

	if outputPath == "" {
		outputPath = streamOutputPath(videoPath, stream)
	}

	logger.Infow("Extracting subtitles",
		"video", videoPath,
		"stream", stream.Index,
		"codec", stream.Codec,
		"language", stream.Language,
		"output", outputPath,
	)

	loader := source.NewLoader(cfg.Timeout)
	loader.Processor = processor
	in, err := loader.LoadVideo(ctx, videoPath, stream.Index)
	if err != nil {
		return err
	}

	res, err := normalizeInput(in, cfg)
	if err != nil {
		return err
	}

	if outputPath == source.Stdin {
		_, err := io.WriteString(cmd.OutOrStdout(), res.Text)
		return err
	}

	if err := subtitle.WriteFile(outputPath, res.Text); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Subtitles extracted successfully: %s\n", absOutput)
	fmt.Fprintf(cmd.OutOrStdout(), "  Cues: %d\n", res.Cues)

	return nil
}

func selectStream(streams []media.Stream, index int) (media.Stream, error) {
	if len(streams) == 0 {
		return media.Stream{}, fmt.Errorf("video has no subtitle streams")
	}
	if index < 0 || index >= len(streams) {
		return media.Stream{}, fmt.Errorf(
			"stream %d out of range (0-%d)",
			index,
			len(streams)-1,
		)
	}
	stream := streams[index]
	if !stream.IsText() {
		return media.Stream{}, fmt.Errorf(
			"stream %d is %s, a bitmap subtitle format that cannot be extracted as text",
			index,
			stream.Codec,
		)
	}
	return stream, nil
}

// movie.mkv -> movie.eng.vtt when the stream is tagged with a language
func streamOutputPath(videoPath string, stream media.Stream) string {
	base := strings.TrimSuffix(videoPath, filepath.Ext(videoPath))
	if lang := strings.TrimSpace(stream.Language); lang != "" && lang != "und" {
		return base + "." + lang + ".vtt"
	}
	return base + ".vtt"
}

func printStreams(w io.Writer, streams []media.Stream) error {
	if len(streams) == 0 {
		_, err := fmt.Fprintln(w, "No subtitle streams found")
		return err
	}
	for _, s := range streams {
		var flags []string
		if s.Default {
			flags = append(flags, "default")
		}
		if !s.IsText() {
			flags = append(flags, "bitmap")
		}
		line := fmt.Sprintf("%d: %s", s.Index, s.Codec)
		if s.Language != "" {
			line += " [" + s.Language + "]"
		}
		if s.Title != "" {
			line += " " + s.Title
		}
		if len(flags) > 0 {
			line += " (" + strings.Join(flags, ", ") + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
