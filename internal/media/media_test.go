package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseStreams(t *testing.T) {
	data := []byte(`{
  "streams": [
    {
      "index": 2,
      "codec_name": "subrip",
      "codec_type": "subtitle",
      "disposition": {"default": 1, "forced": 0},
      "tags": {"language": "eng", "title": "English"}
    },
    {
      "index": 3,
      "codec_name": "hdmv_pgs_subtitle",
      "codec_type": "subtitle",
      "disposition": {"default": 0},
      "tags": {"language": "fre"}
    },
    {
      "index": 0,
      "codec_name": "h264",
      "codec_type": "video"
    }
  ]
}`)

	streams, err := parseStreams(data)
	if err != nil {
		t.Fatalf("parseStreams failed: %v", err)
	}
	if len(streams) != 2 {
		t.Fatalf("expected 2 subtitle streams, got %d", len(streams))
	}

	first := streams[0]
	if first.Index != 0 || first.Codec != "subrip" || first.Language != "eng" ||
		first.Title != "English" || !first.Default {
		t.Errorf("unexpected first stream %+v", first)
	}
	if !first.IsText() {
		t.Error("subrip stream should be text")
	}

	second := streams[1]
	if second.Index != 1 || second.Default {
		t.Errorf("unexpected second stream %+v", second)
	}
	if second.IsText() {
		t.Error("PGS stream should not be text")
	}
}

func TestParseStreamsInvalidJSON(t *testing.T) {
	if _, err := parseStreams([]byte("not json")); err == nil {
		t.Error("expected error for invalid ffprobe output")
	}
}

func TestParseStreamsEmpty(t *testing.T) {
	streams, err := parseStreams([]byte(`{}`))
	if err != nil {
		t.Fatalf("parseStreams failed: %v", err)
	}
	if len(streams) != 0 {
		t.Errorf("expected no streams, got %d", len(streams))
	}
}

func TestIsVideoFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"movie.mkv", true},
		{"MOVIE.MP4", true},
		{"clip.webm", true},
		{"movie.srt", false},
		{"movie.vtt", false},
		{"audio.mp3", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := IsVideoFile(tt.path); got != tt.want {
			t.Errorf("IsVideoFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestExtractSubtitlesMissingFile(t *testing.T) {
	p := NewProcessor(t.TempDir())
	if _, err := p.ExtractSubtitles(context.Background(), "does-not-exist.mkv", 0); err == nil {
		t.Error("expected error for missing video")
	}
	if _, err := p.ListSubtitleStreams(context.Background(), "does-not-exist.mkv"); err == nil {
		t.Error("expected error for missing video")
	}
}

func TestExtractSubtitlesCanceled(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "movie.mkv")
	if err := os.WriteFile(video, []byte("not a real container"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProcessor(dir).ExtractSubtitles(ctx, video, 0)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ExtractSubtitles() error = %v, want context.Canceled", err)
	}
}

func TestLastLine(t *testing.T) {
	if got := lastLine("a\nb\nStream map '0:s:3' matches no streams.\n"); got != "Stream map '0:s:3' matches no streams." {
		t.Errorf("lastLine() = %q", got)
	}
	if got := lastLine(""); got != "" {
		t.Errorf("lastLine(\"\") = %q", got)
	}
}
