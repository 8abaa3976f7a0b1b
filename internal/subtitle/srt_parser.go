package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// tolerates a period separator since loosely written SubRip often has one
var srtTimingRegex = regexp.MustCompile(
	`(\d{2}):(\d{2}):(\d{2})[,.](\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2})[,.](\d{3})`,
)

// SubRip cue reader
type SRTParser struct{}

// reads SubRip cues; index lines are kept as Entry.Index when present
func (p *SRTParser) Parse(r io.Reader) (*Subtitle, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var cues cueCollector
	pendingIndex := 0
	lineNum := 0

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		if strings.TrimSpace(line) == "" {
			cues.flush()
			pendingIndex = 0
			continue
		}

		if cues.inCue() {
			cues.add(line)
			continue
		}

		if index, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
			pendingIndex = index
			continue
		}

		matches := srtTimingRegex.FindStringSubmatch(line)
		if len(matches) != 9 {
			continue
		}
		start, end, err := parseTimingMatches(matches)
		if err != nil {
			return nil, fmt.Errorf(
				"invalid timestamp at line %d: %w",
				lineNum,
				err,
			)
		}
		cues.open(Entry{
			Index:     pendingIndex,
			StartTime: start,
			EndTime:   end,
		})
	}
	cues.flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading SRT text: %w", err)
	}

	return &Subtitle{Entries: cues.entries, Format: FormatSRT}, nil
}

// converts a full 9 element timing match into start and end offsets
func parseTimingMatches(m []string) (time.Duration, time.Duration, error) {
	start, err := parseClock(m[1], m[2], m[3], m[4])
	if err != nil {
		return 0, 0, err
	}
	end, err := parseClock(m[5], m[6], m[7], m[8])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func parseClock(
	hours, minutes, seconds, millis string,
) (time.Duration, error) {
	h, err := strconv.Atoi(hours)
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(minutes)
	if err != nil {
		return 0, err
	}
	s, err := strconv.Atoi(seconds)
	if err != nil {
		return 0, err
	}
	ms, err := strconv.Atoi(millis)
	if err != nil {
		return 0, err
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}
