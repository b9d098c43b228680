// Package docast defines the structured, deterministic intermediate
// representation that sits between input parsing (Markdown or plaintext)
// and style composition: a DocumentAST is the fixed point both the
// Markdown parser and the plaintext heuristic parser converge on, and the
// only input the renderer accepts.
package docast

import "fmt"

// InlineKind identifies the run-level formatting an Inline carries.
type InlineKind string

const (
	InlineText        InlineKind = "text"
	InlineBold        InlineKind = "bold"
	InlineItalic      InlineKind = "italic"
	InlineUnderline   InlineKind = "underline"
	InlineSuperscript InlineKind = "superscript"
	InlineSubscript   InlineKind = "subscript"
	InlineCode        InlineKind = "code"
)

// Inline is one formatted run of text inside a paragraph, list item, or
// table cell.
type Inline struct {
	Kind InlineKind `json:"type"`
	Text string     `json:"text"`
}

// BlockKind identifies the concrete type held behind the Block interface.
type BlockKind string

const (
	BlockHeading      BlockKind = "heading"
	BlockParagraph    BlockKind = "paragraph"
	BlockList         BlockKind = "list"
	BlockTable        BlockKind = "table"
	BlockFigure       BlockKind = "figure"
	BlockPageBreak    BlockKind = "page_break"
	BlockSectionBreak BlockKind = "section_break"
	BlockBibliography BlockKind = "bibliography"
)

// Block is any of the eight block-level elements a document is built from.
// Concrete types are mutually exclusive, mirroring the tagged union the
// parser and renderer pass back and forth.
type Block interface {
	Kind() BlockKind
}

// Heading is a section title at a given nesting level (1 = top level).
type Heading struct {
	Level int
	Text  string
}

func (Heading) Kind() BlockKind { return BlockHeading }

// Paragraph is a run of prose. Text is set for plaintext-sourced
// paragraphs with no inline formatting; Inlines is set when the source
// carried bold/italic/etc. runs. Exactly one should be non-empty.
type Paragraph struct {
	Text    string
	Inlines []Inline
}

func (Paragraph) Kind() BlockKind { return BlockParagraph }

// ListItem is one bullet or numbered entry.
type ListItem struct {
	Inlines []Inline
}

// List is a bulleted or numbered run of items.
type List struct {
	Ordered bool
	Items   []ListItem
}

func (List) Kind() BlockKind { return BlockList }

// Table is a rectangular grid of cell text, optionally captioned.
type Table struct {
	Rows    [][]string
	Caption string
}

func (Table) Kind() BlockKind { return BlockTable }

// Figure references an image by path, optionally captioned.
type Figure struct {
	Path    string
	Caption string
}

func (Figure) Kind() BlockKind { return BlockFigure }

// PageBreak forces the renderer to start a new page.
type PageBreak struct{}

func (PageBreak) Kind() BlockKind { return BlockPageBreak }

// SectionBreakKind enumerates the OOXML section break types this compiler
// supports emitting. Only NextPage is produced today; the field exists so
// the renderer's switch stays exhaustive as more kinds are added.
type SectionBreakKind string

const SectionBreakNextPage SectionBreakKind = "next_page"

// SectionBreak starts a new OOXML section, the unit page numbering and
// margins change at.
type SectionBreak struct {
	SectionKind SectionBreakKind
}

func (SectionBreak) Kind() BlockKind { return BlockSectionBreak }

// Bibliography is a merged run of reference-list entries, produced by the
// parser's post-pass over paragraphs following a references heading.
type Bibliography struct {
	Items []string
}

func (Bibliography) Kind() BlockKind { return BlockBibliography }

// Meta carries the front-matter-derived document metadata: title, author,
// and any extra front-matter keys the built-in spec does not name.
type Meta struct {
	TitleCN string
	TitleEN string
	Author  string
	Major   string
	Tutor   string
	Extra   map[string]string
}

// Document is the parser's output and the renderer's input: document
// metadata plus an ordered sequence of blocks.
type Document struct {
	Meta   Meta
	Blocks []Block
}

// Validate checks the structural invariants a DocumentAST must satisfy
// before it can be handed to the renderer: heading levels in [1,8], lists
// non-empty with non-empty items, tables with at least one row and
// rectangular rows, and at most one bibliography holding at least one item.
func (d *Document) Validate() error {
	bibliographyCount := 0
	for i, b := range d.Blocks {
		switch v := b.(type) {
		case Heading:
			if v.Level < 1 || v.Level > 8 {
				return fmt.Errorf("docast: block %d: heading level %d out of range [1,8]", i, v.Level)
			}
		case List:
			if len(v.Items) == 0 {
				return fmt.Errorf("docast: block %d: list has no items", i)
			}
			for j, item := range v.Items {
				if !hasNonEmptyText(item.Inlines) {
					return fmt.Errorf("docast: block %d: list item %d is empty", i, j)
				}
			}
		case Table:
			if len(v.Rows) == 0 {
				return fmt.Errorf("docast: block %d: table has no rows", i)
			}
			width := len(v.Rows[0])
			for r, row := range v.Rows {
				if len(row) != width {
					return fmt.Errorf("docast: block %d: table row %d has %d cells, want %d", i, r, len(row), width)
				}
			}
		case Bibliography:
			bibliographyCount++
			if bibliographyCount > 1 {
				return fmt.Errorf("docast: block %d: bibliography appears more than once", i)
			}
			if len(v.Items) == 0 {
				return fmt.Errorf("docast: block %d: bibliography has no items", i)
			}
		}
	}
	return nil
}

func hasNonEmptyText(inlines []Inline) bool {
	for _, in := range inlines {
		if in.Text != "" {
			return true
		}
	}
	return false
}
