// Package track builds the content reference a media element needs to
// show normalized WebVTT as a text track.
package track

import (
	"encoding/base64"
	"fmt"
	"html"
	"strings"
)

const MIMEType = "text/vtt"

// a <track> element description
type Track struct {
	Kind    string // subtitles, captions, descriptions, chapters or metadata
	Label   string
	SrcLang string
	Default bool
	Src     string
}

type Options struct {
	Kind    string
	Label   string
	SrcLang string
	Default bool
}

// same defaults the player used for user loaded subtitles
func DefaultOptions() Options {
	return Options{
		Kind:    "subtitles",
		Label:   "Subtitles",
		SrcLang: "en",
		Default: true,
	}
}

var validKinds = map[string]bool{
	"subtitles":    true,
	"captions":     true,
	"descriptions": true,
	"chapters":     true,
	"metadata":     true,
}

// DataURI embeds vtt in a base64 data URI.
func DataURI(vtt string) string {
	return "data:" + MIMEType + ";base64," +
		base64.StdEncoding.EncodeToString([]byte(vtt))
}

// New builds a track whose source is vtt itself.
func New(vtt string, opts Options) (Track, error) {
	kind := strings.ToLower(strings.TrimSpace(opts.Kind))
	if kind == "" {
		kind = "subtitles"
	}
	if !validKinds[kind] {
		return Track{}, fmt.Errorf(
			"invalid track kind %q: use subtitles, captions, descriptions, chapters, or metadata",
			opts.Kind,
		)
	}
	// browsers require a language for subtitle tracks
	if kind == "subtitles" && strings.TrimSpace(opts.SrcLang) == "" {
		return Track{}, fmt.Errorf("subtitle tracks need a source language")
	}

	return Track{
		Kind:    kind,
		Label:   opts.Label,
		SrcLang: strings.TrimSpace(opts.SrcLang),
		Default: opts.Default,
		Src:     DataURI(vtt),
	}, nil
}

// HTML renders the track as a <track> element.
func (t Track) HTML() string {
	var sb strings.Builder
	sb.WriteString("<track")
	writeAttr(&sb, "kind", t.Kind)
	writeAttr(&sb, "label", t.Label)
	writeAttr(&sb, "srclang", t.SrcLang)
	writeAttr(&sb, "src", t.Src)
	if t.Default {
		sb.WriteString(" default")
	}
	sb.WriteString(">")
	return sb.String()
}

func writeAttr(sb *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(sb, ` %s="%s"`, name, html.EscapeString(value))
}
