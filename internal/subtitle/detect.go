package subtitle

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// SubRip writes milliseconds after a comma
	srtTimestampRegex = regexp.MustCompile(`\d\d:\d\d:\d\d,\d\d\d`)
	vttHeaderRegex    = regexp.MustCompile(`(?m)^WEBVTT`)
	srtURLRegex       = regexp.MustCompile(`(?i)\.srt($|\?)`)
)

// Detect classifies text. A SubRip hint wins outright; otherwise a SubRip
// timestamp anywhere in the text takes precedence over a WEBVTT header line.
func Detect(text string, hint Format) Format {
	if hint == FormatSRT {
		return FormatSRT
	}
	if srtTimestampRegex.MatchString(text) {
		return FormatSRT
	}
	if vttHeaderRegex.MatchString(text) {
		return FormatVTT
	}
	return FormatUnknown
}

// format hint from a file name
func HintFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt":
		return FormatSRT
	case ".vtt":
		return FormatVTT
	default:
		return FormatUnknown
	}
}

// format hint from a subtitle URL, query strings included
func HintFromURL(url string) Format {
	if srtURLRegex.MatchString(url) {
		return FormatSRT
	}
	return FormatUnknown
}

// ParseFormat maps a user supplied format name to a hint.
// "auto" and the empty string mean no hint.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return FormatUnknown, nil
	case "srt", "subrip":
		return FormatSRT, nil
	case "vtt", "webvtt":
		return FormatVTT, nil
	default:
		return FormatUnknown, fmt.Errorf(
			"unsupported subtitle format %q: use auto, srt, or vtt",
			name,
		)
	}
}
