package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mgpai22/vttify/internal/track"
)

func setTrackFlags(t *testing.T, values map[string]string) {
	t.Helper()
	for name, value := range values {
		name, value := name, value
		flag := trackCmd.Flags().Lookup(name)
		if err := trackCmd.Flags().Set(name, value); err != nil {
			t.Fatalf("setting --%s: %v", name, err)
		}
		def := flag.DefValue
		t.Cleanup(func() {
			_ = trackCmd.Flags().Set(name, def)
			flag.Changed = false
		})
	}
}

func runTrackFor(t *testing.T, path string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	trackCmd.SetOut(&buf)
	trackCmd.SetContext(context.Background())
	t.Cleanup(func() { trackCmd.SetOut(nil) })

	err := runTrack(trackCmd, []string{path})
	return buf.String(), err
}

func TestRunTrack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movie.srt")
	if err := os.WriteFile(path, []byte("1\n00:00:01,000 --> 00:00:02,000\nBonjour\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	setTrackFlags(t, map[string]string{
		"kind":    "captions",
		"label":   `Français "CC"`,
		"srclang": "fr",
		"default": "true",
	})

	out, err := runTrackFor(t, path)
	if err != nil {
		t.Fatalf("runTrack() error = %v", err)
	}

	src := track.DataURI("WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nBonjour\n")
	want := `<track kind="captions" label="Français &#34;CC&#34;" srclang="fr" src="` +
		src + `" default>` + "\n"
	if out != want {
		t.Errorf("runTrack() output =\n%s\nwant\n%s", out, want)
	}
}

func TestRunTrackNotDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movie.vtt")
	if err := os.WriteFile(path, []byte("WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nHi\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	setTrackFlags(t, map[string]string{"default": "false"})

	out, err := runTrackFor(t, path)
	if err != nil {
		t.Fatalf("runTrack() error = %v", err)
	}
	if !strings.HasPrefix(out, `<track kind="subtitles" label="Subtitles" srclang="en" `) {
		t.Errorf("runTrack() output = %q", out)
	}
	if strings.Contains(out, " default>") {
		t.Errorf("runTrack() output marked default: %q", out)
	}
}

func TestRunTrackInvalidKind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movie.srt")
	if err := os.WriteFile(path, []byte("1\n00:00:01,000 --> 00:00:02,000\nHi\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	setTrackFlags(t, map[string]string{"kind": "karaoke"})

	if _, err := runTrackFor(t, path); err == nil {
		t.Error("runTrack() expected error for invalid kind")
	}
}
