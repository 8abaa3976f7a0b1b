package track

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestDataURI(t *testing.T) {
	vtt := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nHi\n"
	uri := DataURI(vtt)

	prefix := "data:text/vtt;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("unexpected prefix: %q", uri)
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		t.Fatalf("payload is not base64: %v", err)
	}
	if string(decoded) != vtt {
		t.Errorf("payload = %q, want %q", decoded, vtt)
	}
}

func TestNewDefaults(t *testing.T) {
	tr, err := New("WEBVTT\n\n", DefaultOptions())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if tr.Kind != "subtitles" || tr.Label != "Subtitles" || tr.SrcLang != "en" || !tr.Default {
		t.Errorf("unexpected track %+v", tr)
	}
	if tr.Src != DataURI("WEBVTT\n\n") {
		t.Errorf("Src = %q", tr.Src)
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"captions without language", Options{Kind: "captions"}, false},
		{"empty kind defaults to subtitles", Options{SrcLang: "fr"}, false},
		{"subtitles need language", Options{Kind: "subtitles"}, true},
		{"unknown kind", Options{Kind: "karaoke", SrcLang: "en"}, true},
		{"kind is case insensitive", Options{Kind: "Chapters"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("WEBVTT\n\n", tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHTML(t *testing.T) {
	tr := Track{
		Kind:    "subtitles",
		Label:   `Director's "cut" & more`,
		SrcLang: "en",
		Default: true,
		Src:     "data:text/vtt;base64,V0VCVlRUCgo=",
	}

	want := `<track kind="subtitles" label="Director&#39;s &#34;cut&#34; &amp; more" ` +
		`srclang="en" src="data:text/vtt;base64,V0VCVlRUCgo=" default>`
	if got := tr.HTML(); got != want {
		t.Errorf("HTML() =\n%s\nwant\n%s", got, want)
	}

	tr.Default = false
	tr.Label = ""
	if got := tr.HTML(); strings.Contains(got, "default") || strings.Contains(got, "label=") {
		t.Errorf("HTML() should omit empty label and default: %s", got)
	}
}
