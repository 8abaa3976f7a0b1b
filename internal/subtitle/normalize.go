package subtitle

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const vttHeader = "WEBVTT\n\n"

// ErrMalformedInput is reported in strict mode when text classified as
// SubRip contains no cue timing lines.
var ErrMalformedInput = errors.New("malformed subtitle input")

// first header-like line, used when the text does not open with a clean header
var vttHeaderLineRegex = regexp.MustCompile(`(?m)^WEBVTT.*$`)

// Normalizer converts SubRip or loosely formed WebVTT into strict WebVTT.
// The zero value is permissive and never fails.
type Normalizer struct {
	Strict bool
}

// Normalize converts text to WebVTT using the permissive contract.
func Normalize(text string, hint Format) string {
	res, _ := (&Normalizer{}).Normalize(text, hint)
	return res.Text
}

// Normalize converts text to WebVTT. hint may be FormatUnknown when nothing
// is known about the source. An error is only returned in strict mode.
func (n *Normalizer) Normalize(text string, hint Format) (*Result, error) {
	text = strings.TrimPrefix(text, "\ufeff")

	format := Detect(text, hint)
	if format != FormatSRT {
		out := enforceHeader(text)
		return &Result{
			Text:   out,
			Format: format,
			Cues:   countTimingLines(out),
		}, nil
	}

	out, cues := convertSRT(text)
	res := &Result{Text: out, Format: format, Cues: cues}
	if n.Strict && cues == 0 {
		return res, fmt.Errorf(
			"%w: no cue timing lines found in SubRip text",
			ErrMalformedInput,
		)
	}
	return res, nil
}

type srtState int

const (
	awaitingCue srtState = iota
	inCueBody
)

// convertSRT walks the lines once. Index lines and anything outside a cue
// are dropped; timing lines are rewritten; cue text is copied verbatim.
func convertSRT(text string) (string, int) {
	lines := strings.Split(strings.ReplaceAll(text, "\r", ""), "\n")
	out := make([]string, 0, len(lines)+2)
	out = append(out, "WEBVTT", "")

	state := awaitingCue
	cues := 0
	for i, line := range lines {
		switch state {
		case awaitingCue:
			trimmed := strings.TrimSpace(line)
			if isIndexLine(trimmed) && i+1 < len(lines) &&
				strings.Contains(lines[i+1], "-->") {
				continue
			}
			if strings.Contains(trimmed, "-->") {
				out = append(out, strings.ReplaceAll(trimmed, ",", "."))
				cues++
				state = inCueBody
			}
		case inCueBody:
			if strings.TrimSpace(line) == "" {
				out = append(out, "")
				state = awaitingCue
				continue
			}
			out = append(out, line)
		}
	}
	if state == inCueBody {
		out = append(out, "")
	}

	if cues == 0 {
		return vttHeader, 0
	}
	return strings.Join(out, "\n"), cues
}

func enforceHeader(text string) string {
	if strings.HasPrefix(text, vttHeader) {
		return text
	}
	body := text
	if loc := vttHeaderLineRegex.FindStringIndex(body); loc != nil {
		body = body[:loc[0]] + body[loc[1]:]
	}
	return vttHeader + strings.TrimLeftFunc(body, unicode.IsSpace)
}

func isIndexLine(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func countTimingLines(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "-->") {
			n++
		}
	}
	return n
}
