package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/clinsum/internal/report"
)

// TextParser handles plain text reports. Plain text carries no heading
// styles, so every paragraph becomes a body block.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader) (report.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var out report.Document
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			out.Blocks = append(out.Blocks, report.BodyBlock(current.String()))
			current.Reset()
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return report.Document{}, err
	}
	return out, nil
}
