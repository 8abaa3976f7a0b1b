// Package media reads subtitle streams embedded in video containers.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/mgpai22/vttify/internal/ffmpeg"
)

// subtitle stream inside a container
type Stream struct {
	Index    int // position among subtitle streams, as used by -map 0:s:N
	Codec    string
	Language string
	Title    string
	Default  bool
}

// text based codecs ffmpeg can turn into SubRip
var textCodecs = map[string]bool{
	"subrip":   true,
	"srt":      true,
	"webvtt":   true,
	"ass":      true,
	"ssa":      true,
	"mov_text": true,
	"text":     true,
}

// bitmap subtitles need OCR and cannot be extracted as text
func (s Stream) IsText() bool {
	return textCodecs[s.Codec]
}

type Processor interface {
	// lists subtitle streams in container order
	ListSubtitleStreams(ctx context.Context, videoPath string) ([]Stream, error)

	// returns the subtitle stream at index as SubRip text
	ExtractSubtitles(ctx context.Context, videoPath string, index int) (string, error)
}

// default implementation using ffmpeg
type DefaultProcessor struct {
	tempDir string
}

func NewProcessor(tempDir string) *DefaultProcessor {
	return &DefaultProcessor{
		tempDir: tempDir,
	}
}

// JSON output from ffprobe -show_streams
type ffprobeStreams struct {
	Streams []struct {
		Index       int               `json:"index"`
		CodecName   string            `json:"codec_name"`
		CodecType   string            `json:"codec_type"`
		Tags        map[string]string `json:"tags"`
		Disposition map[string]int    `json:"disposition"`
	} `json:"streams"`
}

func (p *DefaultProcessor) ListSubtitleStreams(
	ctx context.Context,
	videoPath string,
) ([]Stream, error) {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("video file not found: %s", videoPath)
	}

	ffprobePath, err := ffmpegbin.FFprobePath()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-select_streams", "s",
		videoPath,
	)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	return parseStreams(out.Bytes())
}

func parseStreams(data []byte) ([]Stream, error) {
	var probe ffprobeStreams
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	var streams []Stream
	for _, s := range probe.Streams {
		if s.CodecType != "" && s.CodecType != "subtitle" {
			continue
		}
		streams = append(streams, Stream{
			Index:    len(streams),
			Codec:    s.CodecName,
			Language: s.Tags["language"],
			Title:    s.Tags["title"],
			Default:  s.Disposition["default"] == 1,
		})
	}
	return streams, nil
}

func (p *DefaultProcessor) ExtractSubtitles(
	ctx context.Context,
	videoPath string,
	index int,
) (string, error) {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return "", fmt.Errorf("video file not found: %s", videoPath)
	}
	if index < 0 {
		return "", fmt.Errorf("subtitle stream index must not be negative, got %d", index)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return "", err
	}

	workDir, err := os.MkdirTemp(p.tempDir, "vttify-extract-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	outputPath := filepath.Join(workDir, "stream.srt")

	kwargs := ffmpeg.KwArgs{
		"map": fmt.Sprintf("0:s:%d", index),
		"c:s": "srt", // SubRip, normalized afterwards
	}

	// the context kills ffmpeg on cancellation
	var stderr bytes.Buffer
	err = ffmpeg.OutputContext(ctx, []*ffmpeg.Stream{ffmpeg.Input(videoPath)}, outputPath, kwargs).
		OverWriteOutput().
		WithErrorOutput(&stderr).
		SetFfmpegPath(ffmpegPath).
		Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf(
			"ffmpeg subtitle extraction failed: %w: %s",
			err,
			lastLine(stderr.String()),
		)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to read extracted subtitles: %w", err)
	}
	return string(data), nil
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, "\n"); i >= 0 {
		return s[i+1:]
	}
	return s
}

// checks if the file is a video based on extension
func IsVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	videoExts := map[string]bool{
		".mp4":  true,
		".mkv":  true,
		".avi":  true,
		".mov":  true,
		".wmv":  true,
		".flv":  true,
		".webm": true,
		".m4v":  true,
		".mpeg": true,
		".mpg":  true,
		".ts":   true,
	}
	return videoExts[ext]
}
