// Package docxextract turns an uploaded .docx file back into plain text so
// the compiler's parser (C3) can treat it the same as any other plaintext
// input. It is the one place this module depends on the full go-docx
// object model rather than the lighter docpkg/oxml layer the rest of the
// compiler uses directly, since extracting readable paragraph text from
// arbitrary Word documents (including ones with tables, headers spanning
// sections, numbering, etc.) is exactly what go-docx's Document type
// already does.
package docxextract

import (
	"fmt"
	"strings"

	"github.com/vortex/go-docx/pkg/docx"
)

// Text opens data as a .docx and returns its paragraph text joined by
// blank lines, so the downstream plaintext parser sees paragraph breaks.
// Tables are flattened row-by-row, cells joined with a tab, since the
// compiler's plaintext path has no table syntax of its own to preserve
// richer structure.
func Text(data []byte) (string, error) {
	doc, err := docx.OpenBytes(data)
	if err != nil {
		return "", fmt.Errorf("docxextract: open: %w", err)
	}

	items, err := doc.IterInnerContent()
	if err != nil {
		return "", fmt.Errorf("docxextract: iterate content: %w", err)
	}

	var out strings.Builder
	for _, item := range items {
		if p := item.Paragraph(); p != nil {
			out.WriteString(p.Text())
			out.WriteString("\n\n")
			continue
		}
		if t := item.Table(); t != nil {
			writeTableText(&out, t)
		}
	}
	return out.String(), nil
}

func writeTableText(out *strings.Builder, t *docx.Table) {
	for _, row := range t.Rows().Iter() {
		var cells []string
		for _, cell := range row.Cells() {
			cells = append(cells, cell.Text())
		}
		out.WriteString(strings.Join(cells, "\t"))
		out.WriteString("\n")
	}
	out.WriteString("\n")
}
