package subtitle

import (
	"io"
	"time"
)

// represents single subtitle entry
type Entry struct {
	Index     int
	StartTime time.Duration
	EndTime   time.Duration
	Text      string
}

// represents complete subtitle track
type Subtitle struct {
	Entries []Entry
	Format  Format
}

// represents a classified subtitle format
type Format string

const (
	FormatSRT     Format = "srt"
	FormatVTT     Format = "vtt"
	FormatUnknown Format = "unknown"
)

// outcome of a single normalization
type Result struct {
	Text   string
	Format Format // detected source format
	Cues   int    // timing lines in Text
}

// interface for parsing subtitle text
type Parser interface {
	Parse(r io.Reader) (*Subtitle, error)
}
