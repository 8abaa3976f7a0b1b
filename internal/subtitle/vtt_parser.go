package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var (
	vttTimingRegex = regexp.MustCompile(
		`(\d{2,}):(\d{2}):(\d{2})\.(\d{3})\s*-->\s*(\d{2,}):(\d{2}):(\d{2})\.(\d{3})`,
	)
	vttShortTimingRegex = regexp.MustCompile(
		`(\d{2}):(\d{2})\.(\d{3})\s*-->\s*(\d{2}):(\d{2})\.(\d{3})`,
	)
)

// WebVTT cue reader
type VTTParser struct{}

// reads WebVTT cues, skipping the header block and NOTE, STYLE and REGION blocks
func (p *VTTParser) Parse(r io.Reader) (*Subtitle, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var cues cueCollector
	lineNum := 0
	headerParsed := false
	skipBlock := false

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			cues.flush()
			skipBlock = false
			continue
		}
		if skipBlock {
			continue
		}

		if !headerParsed && strings.HasPrefix(trimmed, "WEBVTT") {
			headerParsed = true
			skipBlock = true
			continue
		}

		if !cues.inCue() && (strings.HasPrefix(trimmed, "NOTE") ||
			strings.HasPrefix(trimmed, "STYLE") ||
			strings.HasPrefix(trimmed, "REGION")) {
			skipBlock = true
			continue
		}

		matches := vttTimingRegex.FindStringSubmatch(line)
		if len(matches) != 9 {
			if short := vttShortTimingRegex.FindStringSubmatch(line); len(short) == 7 {
				matches = []string{
					short[0],
					"00", short[1], short[2], short[3],
					"00", short[4], short[5], short[6],
				}
			}
		}
		if len(matches) == 9 {
			start, end, err := parseTimingMatches(matches)
			if err != nil {
				return nil, fmt.Errorf(
					"invalid timestamp at line %d: %w",
					lineNum,
					err,
				)
			}
			cues.open(Entry{
				StartTime: start,
				EndTime:   end,
			})
			continue
		}

		// cue identifiers sit before the timing line and are not text
		cues.add(line)
	}
	cues.flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading VTT text: %w", err)
	}

	return &Subtitle{Entries: cues.entries, Format: FormatVTT}, nil
}
