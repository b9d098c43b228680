// Package stylespec defines StyleSpec, the declarative, JSON-serializable
// typesetting contract a compiled document is checked against: page
// geometry, the paragraph style table, numbering bound to heading levels,
// forbidden direct formatting, and page-numbering rules. Nothing in this
// package knows how to write OOXML — it is the input the template emitter,
// renderer, and validator all read.
package stylespec

import (
	"encoding/json"
	"fmt"
)

type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

type LineSpacingRule string

const (
	LineSpacingSingle LineSpacingRule = "single"
	LineSpacing15     LineSpacingRule = "1.5"
	LineSpacingDouble LineSpacingRule = "double"
	LineSpacingExact  LineSpacingRule = "exact"
)

// MarginMM describes page margins in millimeters, including the binding
// (gutter) margin reserved for thesis printing.
type MarginMM struct {
	Top     float64 `json:"top"`
	Bottom  float64 `json:"bottom"`
	Left    float64 `json:"left"`
	Right   float64 `json:"right"`
	Binding float64 `json:"binding"`
}

func (m MarginMM) validate() error {
	for name, v := range map[string]float64{"top": m.Top, "bottom": m.Bottom, "left": m.Left, "right": m.Right, "binding": m.Binding} {
		if v < 0 {
			return fmt.Errorf("stylespec: margin %s must be >= 0, got %v", name, v)
		}
	}
	return nil
}

// PageSpec describes the physical page: size, margins, and header/footer
// distance from the page edge.
type PageSpec struct {
	Size      string   `json:"size"`
	MarginsMM MarginMM `json:"margins_mm"`
	HeaderMM  float64  `json:"header_mm"`
	FooterMM  float64  `json:"footer_mm"`
}

func (p PageSpec) validate() error {
	if p.Size != "A4" {
		return fmt.Errorf("stylespec: unsupported page size %q (only A4)", p.Size)
	}
	if p.HeaderMM < 0 || p.FooterMM < 0 {
		return fmt.Errorf("stylespec: header_mm/footer_mm must be >= 0")
	}
	return p.MarginsMM.validate()
}

// FontMapping binds the three OOXML run-font slots Word distinguishes:
// eastAsia for CJK glyphs, ascii/hAnsi for Latin script.
type FontMapping struct {
	EastAsia string `json:"eastAsia"`
	ASCII    string `json:"ascii"`
	HAnsi    string `json:"hAnsi"`
}

// StyleParagraph holds the paragraph-level properties a StyleDef carries:
// alignment, spacing, and indentation, expressed the way a thesis
// template typically specifies them (indents in characters, spacing in
// either points or lines).
type StyleParagraph struct {
	Alignment        Alignment       `json:"alignment"`
	LineSpacingRule  LineSpacingRule `json:"line_spacing_rule"`
	LineSpacing      *float64        `json:"line_spacing,omitempty"`
	SpaceBeforePt    float64         `json:"space_before_pt"`
	SpaceAfterPt     float64         `json:"space_after_pt"`
	SpaceBeforeLines *float64        `json:"space_before_lines,omitempty"`
	SpaceAfterLines  *float64        `json:"space_after_lines,omitempty"`
	FirstLineIndentChars float64     `json:"first_line_indent_chars"`
	HangingIndentChars   float64     `json:"hanging_indent_chars"`
	KeepWithNext     bool            `json:"keep_with_next"`
	KeepLines        bool            `json:"keep_lines"`
	PageBreakBefore  bool            `json:"page_break_before"`
	WidowsControl    bool            `json:"widows_control"`
}

func (p StyleParagraph) validate() error {
	switch p.Alignment {
	case AlignLeft, AlignCenter, AlignRight, AlignJustify:
	default:
		return fmt.Errorf("stylespec: unknown alignment %q", p.Alignment)
	}
	switch p.LineSpacingRule {
	case LineSpacingSingle, LineSpacing15, LineSpacingDouble, LineSpacingExact:
	default:
		return fmt.Errorf("stylespec: unknown line_spacing_rule %q", p.LineSpacingRule)
	}
	if p.SpaceBeforePt < 0 || p.SpaceAfterPt < 0 {
		return fmt.Errorf("stylespec: space_before_pt/space_after_pt must be >= 0")
	}
	if p.FirstLineIndentChars < 0 || p.HangingIndentChars < 0 {
		return fmt.Errorf("stylespec: indent_chars must be >= 0")
	}
	return nil
}

// StyleRun holds the run-level properties (font + size + boolean
// emphases) a StyleDef carries.
type StyleRun struct {
	Bold      bool        `json:"bold"`
	Italic    bool        `json:"italic"`
	Underline bool        `json:"underline"`
	SizePt    float64     `json:"size_pt"`
	Font      FontMapping `json:"font"`
}

func (r StyleRun) validate() error {
	if r.SizePt <= 0 {
		return fmt.Errorf("stylespec: size_pt must be > 0, got %v", r.SizePt)
	}
	return nil
}

// StyleDef is one reusable named paragraph style, e.g. "H1" or "Body".
// Run-level properties (font, size) and paragraph-level properties
// (alignment, spacing, indent) are kept separate, matching the way a
// Word paragraph style splits w:rPr from w:pPr.
type StyleDef struct {
	StyleID      string         `json:"style_id"`
	Name         string         `json:"name"`
	BasedOn      string         `json:"based_on,omitempty"`
	IsHeading    bool           `json:"is_heading"`
	OutlineLevel *int           `json:"outline_level,omitempty"`
	Run          StyleRun       `json:"run"`
	Paragraph    StyleParagraph `json:"paragraph"`
}

func (s StyleDef) validate() error {
	if s.StyleID == "" {
		return fmt.Errorf("stylespec: style_id must not be empty")
	}
	if s.Name == "" {
		return fmt.Errorf("stylespec: style %q: name must not be empty", s.StyleID)
	}
	if s.OutlineLevel != nil && (*s.OutlineLevel < 0 || *s.OutlineLevel > 8) {
		return fmt.Errorf("stylespec: style %q: outline_level out of range [0,8]", s.StyleID)
	}
	if err := s.Run.validate(); err != nil {
		return fmt.Errorf("stylespec: style %q: %w", s.StyleID, err)
	}
	if err := s.Paragraph.validate(); err != nil {
		return fmt.Errorf("stylespec: style %q: %w", s.StyleID, err)
	}
	return nil
}

// NumberingLevel binds one outline level of a numbering definition to a
// paragraph style, e.g. level 0 -> "H1" with lvlText "%1".
type NumberingLevel struct {
	Level   int    `json:"level"`
	StyleID string `json:"style_id"`
	Start   int    `json:"start"`
	Format  string `json:"fmt"`
	LvlText string `json:"lvl_text"`
	Suffix  string `json:"suffix"`
}

func (l NumberingLevel) validate() error {
	if l.Level < 0 || l.Level > 8 {
		return fmt.Errorf("stylespec: numbering level %d out of range [0,8]", l.Level)
	}
	if l.Start < 1 {
		return fmt.Errorf("stylespec: numbering level %d: start must be >= 1", l.Level)
	}
	if l.Format != "decimal" {
		return fmt.Errorf("stylespec: numbering level %d: unsupported fmt %q", l.Level, l.Format)
	}
	switch l.Suffix {
	case "space", "tab", "nothing":
	default:
		return fmt.Errorf("stylespec: numbering level %d: unknown suffix %q", l.Level, l.Suffix)
	}
	return nil
}

// NumberingSpec is one Word numbering definition (an abstractNum bound to
// a num) with one NumberingLevel per heading depth it covers.
type NumberingSpec struct {
	AbstractNumID int              `json:"abstract_num_id"`
	NumID         int              `json:"num_id"`
	Levels        []NumberingLevel `json:"levels"`
}

func (n NumberingSpec) validate() error {
	if n.AbstractNumID < 1 || n.NumID < 1 {
		return fmt.Errorf("stylespec: numbering abstract_num_id/num_id must be >= 1")
	}
	for _, l := range n.Levels {
		if err := l.validate(); err != nil {
			return err
		}
	}
	return nil
}

// ForbiddenDirectFormatting names which run-level direct-formatting
// attributes the validator rejects when they appear outside a style
// definition. All default to forbidden.
type ForbiddenDirectFormatting struct {
	Font      bool `json:"font"`
	Size      bool `json:"size"`
	Bold      bool `json:"bold"`
	Italic    bool `json:"italic"`
	Underline bool `json:"underline"`
	Color     bool `json:"color"`
}

// DefaultForbiddenDirectFormatting forbids every direct-formatting
// attribute this compiler recognizes.
func DefaultForbiddenDirectFormatting() ForbiddenDirectFormatting {
	return ForbiddenDirectFormatting{Font: true, Size: true, Bold: true, Italic: true, Underline: true, Color: true}
}

// StructureSpec names the level-1 headings a compliant document must
// contain (e.g. "摘要", "Abstract", "参考文献") and how deep the
// table of contents goes.
type StructureSpec struct {
	RequiredH1Titles []string `json:"required_h1_titles"`
	TOCMaxLevel      int      `json:"toc_max_level"`
}

// DefaultStructureSpec returns a StructureSpec with no required headings
// and a TOC depth of 3, the StyleSpec zero value's effective default.
func DefaultStructureSpec() StructureSpec {
	return StructureSpec{TOCMaxLevel: 3}
}

func (s StructureSpec) validate() error {
	if s.TOCMaxLevel < 1 || s.TOCMaxLevel > 8 {
		return fmt.Errorf("stylespec: toc_max_level out of range [1,8]")
	}
	return nil
}

type PageNumFormat string

const (
	PageNumRomanUpper PageNumFormat = "romanUpper"
	PageNumRomanLower PageNumFormat = "romanLower"
	PageNumDecimal    PageNumFormat = "decimal"
)

// PageNumberingSpec controls the front-matter/main-body page numbering
// split a thesis requires: front matter numbered in roman numerals
// restarting at 1, main body in arabic numerals restarting at 1, both
// implemented via an OOXML section break.
type PageNumberingSpec struct {
	Enabled         bool          `json:"enabled"`
	FrontFormat     PageNumFormat `json:"front_format"`
	FrontStart      int           `json:"front_start"`
	MainFormat      PageNumFormat `json:"main_format"`
	MainStart       int           `json:"main_start"`
	ShowInFooter    bool          `json:"show_in_footer"`
	FooterAlignment Alignment     `json:"footer_alignment"`
}

func (p PageNumberingSpec) validate() error {
	for _, f := range []PageNumFormat{p.FrontFormat, p.MainFormat} {
		switch f {
		case PageNumRomanUpper, PageNumRomanLower, PageNumDecimal:
		default:
			return fmt.Errorf("stylespec: unknown page number format %q", f)
		}
	}
	if p.FrontStart < 1 || p.MainStart < 1 {
		return fmt.Errorf("stylespec: page numbering start values must be >= 1")
	}
	return nil
}

// StyleSpec is the complete, self-contained typesetting contract: page
// geometry, the named style table, optional numbering and page-numbering
// rules, structural requirements, and the direct-formatting ban. It is
// the one input the renderer, validator, and fixer all share.
type StyleSpec struct {
	Meta                      map[string]string          `json:"meta,omitempty"`
	Page                      PageSpec                   `json:"page"`
	Styles                    map[string]StyleDef        `json:"styles"`
	Numbering                 *NumberingSpec             `json:"numbering,omitempty"`
	Structure                 StructureSpec              `json:"structure"`
	ForbiddenDirectFormatting ForbiddenDirectFormatting  `json:"forbidden_direct_formatting"`
	PageNumbering             *PageNumberingSpec         `json:"page_numbering,omitempty"`
	AutoPrefixAbstractKeywords bool                      `json:"auto_prefix_abstract_keywords"`
	AutoNumberFiguresTables   bool                       `json:"auto_number_figures_tables"`

	// MarginToleranceTwips bounds how far a rendered page margin may drift
	// from Page.MarginsMM before the validator reports it. The source
	// system hardcodes this at 10 twips with no stated rationale; this
	// compiler surfaces it as a spec-level knob instead of an inline
	// constant. Zero means "unset", and DefaultMarginToleranceTwips
	// applies.
	MarginToleranceTwips int `json:"margin_tolerance_twips,omitempty"`
}

// DefaultMarginToleranceTwips is the slack the validator allows between a
// rendered section's margins and the spec's when MarginToleranceTwips is
// unset.
const DefaultMarginToleranceTwips = 10

// EffectiveMarginToleranceTwips returns the configured tolerance, or
// DefaultMarginToleranceTwips when unset.
func (s *StyleSpec) EffectiveMarginToleranceTwips() int {
	if s.MarginToleranceTwips > 0 {
		return s.MarginToleranceTwips
	}
	return DefaultMarginToleranceTwips
}

// Validate checks every StyleSpec invariant: each field's own ranges plus
// the cross-field rule that every styles map key equals its StyleDef's
// StyleID (the Go equivalent of the Pydantic field_validator that
// enforces this).
func (s *StyleSpec) Validate() error {
	if err := s.Page.validate(); err != nil {
		return err
	}
	for key, def := range s.Styles {
		if key != def.StyleID {
			return fmt.Errorf("stylespec: styles key %q must equal style_id %q", key, def.StyleID)
		}
		if err := def.validate(); err != nil {
			return err
		}
	}
	if s.Numbering != nil {
		if err := s.Numbering.validate(); err != nil {
			return err
		}
		for _, lvl := range s.Numbering.Levels {
			if _, ok := s.Styles[lvl.StyleID]; !ok {
				return fmt.Errorf("stylespec: numbering level %d references undefined style %q", lvl.Level, lvl.StyleID)
			}
		}
	}
	if err := s.Structure.validate(); err != nil {
		return err
	}
	if s.PageNumbering != nil {
		if err := s.PageNumbering.validate(); err != nil {
			return err
		}
	}
	return nil
}

// ParseJSON decodes and validates a StyleSpec from JSON bytes.
func ParseJSON(data []byte) (*StyleSpec, error) {
	var spec StyleSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("stylespec: decode: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// ToJSON serializes a StyleSpec, indented for human/AI readability — it
// is handed back to callers as the canonical spec export format.
func (s *StyleSpec) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("stylespec: encode: %w", err)
	}
	return data, nil
}
