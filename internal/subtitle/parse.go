package subtitle

import (
	"fmt"
	"io"
	"strings"
)

// MaxTextSize is the largest subtitle text accepted by the loaders. The cue
// parsers accept a single line of that size.
const MaxTextSize = 32 << 20

const maxLineSize = MaxTextSize + 1

func NewParser(format Format) (Parser, error) {
	switch format {
	case FormatSRT:
		return &SRTParser{}, nil
	case FormatVTT:
		return &VTTParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Parse reads cues from r in the given format.
func Parse(r io.Reader, format Format) (*Subtitle, error) {
	parser, err := NewParser(format)
	if err != nil {
		return nil, err
	}
	return parser.Parse(r)
}

// accumulates cues while a parser walks the lines
type cueCollector struct {
	entries []Entry
	current *Entry
	text    []string
}

// unnumbered cues take their 1-based position
func (c *cueCollector) open(e Entry) {
	c.flush()
	if e.Index == 0 {
		e.Index = len(c.entries) + 1
	}
	c.current = &e
}

func (c *cueCollector) inCue() bool {
	return c.current != nil
}

func (c *cueCollector) add(line string) {
	if c.current != nil {
		c.text = append(c.text, line)
	}
}

func (c *cueCollector) flush() {
	if c.current != nil {
		c.current.Text = strings.Join(c.text, "\n")
		c.entries = append(c.entries, *c.current)
	}
	c.current = nil
	c.text = nil
}
