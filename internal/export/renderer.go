// internal/export/renderer.go
package export

import (
	"bytes"
	"fmt"
	"strings"
)

// Renderer turns a titled row set into a downloadable document. Rendering
// engines (PDF and friends) are injected collaborators; only the plain-text
// renderer ships here.
type Renderer interface {
	Render(title string, headers []string, rows [][]string) ([]byte, error)
	ContentType() string
}

// TextRenderer writes a fixed-width plain-text table.
type TextRenderer struct{}

func (TextRenderer) ContentType() string { return "text/plain; charset=utf-8" }

func (TextRenderer) Render(title string, headers []string, rows [][]string) ([]byte, error) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		if len(row) != len(headers) {
			return nil, fmt.Errorf("row has %d cells, want %d", len(row), len(headers))
		}
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var buf bytes.Buffer
	buf.WriteString(title + "\n")
	buf.WriteString(strings.Repeat("=", len(title)) + "\n\n")
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				buf.WriteString("  ")
			}
			buf.WriteString(cell + strings.Repeat(" ", widths[i]-len(cell)))
		}
		buf.WriteString("\n")
	}
	writeRow(headers)
	for i, w := range widths {
		if i > 0 {
			buf.WriteString("  ")
		}
		buf.WriteString(strings.Repeat("-", w))
	}
	buf.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}
	buf.WriteString(fmt.Sprintf("\n%d rows\n", len(rows)))

	return buf.Bytes(), nil
}
