package cli

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"

	"github.com/mgpai22/vttify/internal/source"
	"github.com/mgpai22/vttify/internal/subtitle"
	"github.com/mgpai22/vttify/internal/track"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

var convertCmd = &cobra.Command{
	Use:   "convert [input...]",
	Short: "Convert subtitles to WebVTT",
	Long: `Convert one or more subtitle inputs to WebVTT.

An input can be a subtitle file, an http(s) URL, a video file (its first
subtitle stream is used unless --stream is given), or - for stdin.

SubRip input is detected from the .srt extension, a URL ending in .srt, or
SubRip style timestamps (00:00:01,000) in the text. Anything else is treated
as WebVTT and given a clean WEBVTT header.

Without --output each result is written next to its input as .vtt; stdin
is written to stdout. Two inputs that would write the same file are
rejected before anything runs. If one input fails, files already written
for other inputs are kept and listed in the log.

Examples:
  vttify convert movie.srt
  vttify convert movie.srt -o - | less
  vttify convert https://example.com/subs/ep1.srt -o ep1.vtt
  vttify convert season1/*.srt --concurrency 8
  vttify convert movie.mkv --stream 1
  vttify convert notes.txt --format vtt --data-uri`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		IntP("concurrency", "c", 4, "Number of inputs converted in parallel")
	convertCmd.Flags().
		Bool("data-uri", false, "Print a data: URI for each input instead of writing files")
	convertCmd.Flags().
		Int("stream", 0, "Subtitle stream index used for video inputs")

	viper.SetDefault("concurrency", 4)
	mustBindFlag("concurrency", convertCmd.Flags().Lookup("concurrency"))
}

type convertJob struct {
	Ref    string
	Output string // file path, or source.Stdin for stdout
}

type convertResult struct {
	Job    convertJob
	Result *subtitle.Result
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	outputPath, _ := cmd.Flags().GetString("output")
	dataURI, _ := cmd.Flags().GetBool("data-uri")
	stream, _ := cmd.Flags().GetInt("stream")

	if cfg.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", cfg.Concurrency)
	}
	if stream < 0 {
		return fmt.Errorf("stream must not be negative, got %d", stream)
	}
	if outputPath != "" && len(args) > 1 {
		return fmt.Errorf("--output can only be used with a single input")
	}
	if outputPath != "" && dataURI {
		return fmt.Errorf("--output and --data-uri cannot be combined")
	}

	jobs := make([]convertJob, len(args))
	for i, ref := range args {
		jobs[i] = convertJob{Ref: ref, Output: resolveOutput(ref, outputPath)}
		if dataURI {
			jobs[i].Output = source.Stdin
		}
	}
	if countStdout(jobs) > 1 && !dataURI {
		return fmt.Errorf("only one input can be written to stdout")
	}
	if err := checkDuplicateOutputs(jobs); err != nil {
		return err
	}

	loader := source.NewLoader(cfg.Timeout)
	loader.Stream = stream

	logger.Infow("Starting subtitle conversion",
		"inputs", len(jobs),
		"format", cfg.Format,
		"strict", cfg.Strict,
		"concurrency", cfg.Concurrency,
	)

	results, err := convertAll(cmd.Context(), loader, cfg, jobs)
	if err != nil {
		for _, path := range writtenOutputs(results) {
			logger.Infow("Output written before failure", "output", path)
		}
		return err
	}

	return reportResults(cmd.OutOrStdout(), results, dataURI)
}

// convertAll runs the jobs with at most cfg.Concurrency in flight. Results
// keep the order of jobs. The first failure cancels the rest; on error the
// results hold the jobs that finished, the others have a nil Result.
func convertAll(
	ctx context.Context,
	loader *source.Loader,
	cfg settings,
	jobs []convertJob,
) ([]convertResult, error) {
	results := make([]convertResult, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			res, err := convertOne(ctx, loader, cfg, job)
			if err != nil {
				return err
			}
			results[i] = convertResult{Job: job, Result: res}
			return nil
		})
	}

	err := g.Wait()
	return results, err
}

// loads, normalizes and, for file outputs, writes a single job
func convertOne(
	ctx context.Context,
	loader *source.Loader,
	cfg settings,
	job convertJob,
) (*subtitle.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	in, err := loader.Load(ctx, job.Ref)
	if err != nil {
		return nil, err
	}

	res, err := normalizeInput(in, cfg)
	if err != nil {
		return nil, err
	}

	if job.Output == source.Stdin {
		return res, nil
	}

	if err := subtitle.WriteFile(job.Output, res.Text); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", job.Output, err)
	}
	logger.Infow("Wrote WebVTT",
		"input", job.Ref,
		"output", job.Output,
		"format", res.Format,
		"cues", res.Cues,
	)
	return res, nil
}

func reportResults(w io.Writer, results []convertResult, dataURI bool) error {
	for _, r := range results {
		switch {
		case dataURI:
			if _, err := fmt.Fprintln(w, track.DataURI(r.Result.Text)); err != nil {
				return err
			}
		case r.Job.Output == source.Stdin:
			if _, err := io.WriteString(w, r.Result.Text); err != nil {
				return err
			}
		default:
			absOutput, _ := filepath.Abs(r.Job.Output)
			if _, err := fmt.Fprintf(w, "Converted %s (%s, %d cues): %s\n",
				r.Job.Ref,
				r.Result.Format,
				r.Result.Cues,
				absOutput,
			); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveOutput picks the destination for ref when output is not set.
func resolveOutput(ref, output string) string {
	if output != "" {
		return output
	}
	if ref == source.Stdin {
		return source.Stdin
	}
	if source.IsURL(ref) {
		return urlOutputPath(ref)
	}
	return subtitle.OutputPath(ref)
}

// file name in the working directory for a downloaded subtitle
func urlOutputPath(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return "subtitles.vtt"
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" || base == "" {
		return "subtitles.vtt"
	}
	return subtitle.OutputPath(base)
}

// checkDuplicateOutputs rejects jobs that would write the same file, such as
// movie.srt and movie.mkv both resolving to movie.vtt.
func checkDuplicateOutputs(jobs []convertJob) error {
	seen := make(map[string]string, len(jobs))
	for _, j := range jobs {
		if j.Output == source.Stdin {
			continue
		}
		key := filepath.Clean(j.Output)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf(
				"inputs %s and %s both write %s; convert them separately with --output",
				prev,
				j.Ref,
				key,
			)
		}
		seen[key] = j.Ref
	}
	return nil
}

// file outputs of the jobs that completed
func writtenOutputs(results []convertResult) []string {
	var paths []string
	for _, r := range results {
		if r.Result == nil || r.Job.Output == source.Stdin {
			continue
		}
		paths = append(paths, r.Job.Output)
	}
	return paths
}

func countStdout(jobs []convertJob) int {
	n := 0
	for _, j := range jobs {
		if j.Output == source.Stdin {
			n++
		}
	}
	return n
}
