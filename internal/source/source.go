// Package source loads raw subtitle text from stdin, files, URLs and video
// containers. A read or fetch failure is reported here, before any
// normalization happens.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mgpai22/vttify/internal/media"
	"github.com/mgpai22/vttify/internal/subtitle"
)

// Stdin is the ref that reads from standard input.
const Stdin = "-"

// largest subtitle body accepted from a URL or stdin
const maxBodySize = subtitle.MaxTextSize

// raw subtitle text with what its origin says about the format
type Input struct {
	Name string
	Text string
	Hint subtitle.Format
}

type Loader struct {
	Client    *http.Client
	Processor media.Processor
	Stdin     io.Reader

	// subtitle stream used when a ref is a video file
	Stream int
}

func NewLoader(timeout time.Duration) *Loader {
	return &Loader{
		Client:    &http.Client{Timeout: timeout},
		Processor: media.NewProcessor(""),
		Stdin:     os.Stdin,
	}
}

// Load dispatches on ref: "-" for stdin, http(s) URLs, video files, and
// plain subtitle files.
func (l *Loader) Load(ctx context.Context, ref string) (*Input, error) {
	switch {
	case ref == Stdin:
		return l.loadReader(l.Stdin, ref, subtitle.FormatUnknown)
	case IsURL(ref):
		return l.LoadURL(ctx, ref)
	case media.IsVideoFile(ref):
		return l.LoadVideo(ctx, ref, l.Stream)
	default:
		return l.LoadFile(ref)
	}
}

func (l *Loader) LoadFile(path string) (*Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("subtitle file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read subtitle file: %w", err)
	}
	return decode(path, data, subtitle.HintFromPath(path))
}

// LoadURL fetches url. Non-2xx responses are fetch failures.
func (l *Loader) LoadURL(ctx context.Context, url string) (*Input, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid subtitle URL: %w", err)
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subtitles: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch subtitles: unexpected status %s", resp.Status)
	}

	data, err := readLimited(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read subtitle response: %w", err)
	}
	return decode(url, data, subtitle.HintFromURL(url))
}

// LoadVideo extracts one embedded subtitle stream as SubRip.
func (l *Loader) LoadVideo(ctx context.Context, path string, stream int) (*Input, error) {
	if l.Processor == nil {
		return nil, fmt.Errorf("no media processor configured for %s", path)
	}
	text, err := l.Processor.ExtractSubtitles(ctx, path, stream)
	if err != nil {
		return nil, fmt.Errorf("failed to extract subtitles from %s: %w", path, err)
	}
	return decode(path, []byte(text), subtitle.FormatSRT)
}

func (l *Loader) loadReader(r io.Reader, name string, hint subtitle.Format) (*Input, error) {
	if r == nil {
		return nil, fmt.Errorf("no reader for %s", name)
	}
	data, err := readLimited(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read subtitles from %s: %w", name, err)
	}
	return decode(name, data, hint)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBodySize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxBodySize {
		return nil, fmt.Errorf("subtitle text exceeds %d bytes", maxBodySize)
	}
	return data, nil
}

func decode(name string, data []byte, hint subtitle.Format) (*Input, error) {
	text, err := subtitle.DecodeText(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &Input{Name: name, Text: text, Hint: hint}, nil
}

func IsURL(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
