// Package validator implements C7: a pure function from (.docx bytes,
// StyleSpec) to a ValidationReport. It never mutates the package it reads —
// repair is the fixer's (C8) job — and every violation it emits carries
// enough location and suggestion data for the fixer to act on without
// re-reading the document.
package validator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/vortex/docx-api/internal/docpkg"
	"github.com/vortex/docx-api/internal/oxml"
	"github.com/vortex/docx-api/internal/stylespec"
	"github.com/vortex/docx-api/internal/valreport"
)

func mmToTwips(mm float64) int {
	return int(math.Round(mm / 25.4 * 1440))
}

// knownParagraphEscapes are pStyle values that are valid even though they
// are not keys of spec.Styles: Word's own implicit defaults.
var knownParagraphEscapes = map[string]bool{
	"Normal":               true,
	"DefaultParagraphFont": true,
	"":                     true, // unset pStyle means Word's built-in Normal.
}

// forbiddenRunTags is the fixed set of rPr children the validator checks
// against the spec's ForbiddenDirectFormatting flags.
var forbiddenRunTags = map[string]func(stylespec.ForbiddenDirectFormatting) bool{
	"rFonts": func(f stylespec.ForbiddenDirectFormatting) bool { return f.Font },
	"sz":     func(f stylespec.ForbiddenDirectFormatting) bool { return f.Size },
	"szCs":   func(f stylespec.ForbiddenDirectFormatting) bool { return f.Size },
	"b":      func(f stylespec.ForbiddenDirectFormatting) bool { return f.Bold },
	"bCs":    func(f stylespec.ForbiddenDirectFormatting) bool { return f.Bold },
	"i":      func(f stylespec.ForbiddenDirectFormatting) bool { return f.Italic },
	"iCs":    func(f stylespec.ForbiddenDirectFormatting) bool { return f.Italic },
	"u":      func(f stylespec.ForbiddenDirectFormatting) bool { return f.Underline },
	"color":  func(f stylespec.ForbiddenDirectFormatting) bool { return f.Color },
}

// ValidateBytes opens a .docx from raw bytes and validates it against spec.
func ValidateBytes(data []byte, spec *stylespec.StyleSpec) (valreport.Report, error) {
	pkg, err := docpkg.OpenBytes(data)
	if err != nil {
		return valreport.Report{}, fmt.Errorf("validator: open: %w", err)
	}
	return Validate(pkg, spec)
}

// Validate runs every check in §4.6 against an already-opened package.
func Validate(pkg *docpkg.Package, spec *stylespec.StyleSpec) (valreport.Report, error) {
	xdoc, err := pkg.ReadXML("word/document.xml")
	if err != nil {
		return valreport.Report{}, fmt.Errorf("validator: read document.xml: %w", err)
	}
	body := oxml.Child(xdoc.Root(), "w", "body")
	if body == nil {
		return valreport.Report{}, fmt.Errorf("validator: document.xml has no w:body")
	}

	var violations []valreport.Violation
	violations = append(violations, checkMargins(body, spec)...)
	violations = append(violations, checkRequiredHeadings(body, spec)...)

	// Paragraph style and direct-formatting checks scan every w:p in the
	// document, including ones nested inside table cells (w:tbl/w:tr/w:tc);
	// the required-heading check above stays shallow since a heading can
	// only ever be a direct child of body.
	allParagraphs := oxml.FindAll(body, "w", "p")
	violations = append(violations, checkParagraphStyles(allParagraphs, spec)...)
	violations = append(violations, checkDirectFormatting(allParagraphs, spec)...)
	violations = append(violations, checkTOC(body, spec)...)

	return valreport.NewReport(violations), nil
}

// findSectPr returns the document-level section properties: the body's
// direct-child w:sectPr, which describes the last/main section, falling
// back to the last paragraph-nested w:pPr/w:sectPr (an earlier section's
// properties, from a mid-document section break) only when no direct
// child exists. fixer.findLastSectPr uses the same direct-child rule but
// has no nested fallback.
func findSectPr(body *etree.Element) *etree.Element {
	if direct := oxml.Child(body, "w", "sectPr"); direct != nil {
		return direct
	}
	var last *etree.Element
	for _, sectPr := range oxml.FindAll(body, "w", "sectPr") {
		last = sectPr
	}
	return last
}

func checkMargins(body *etree.Element, spec *stylespec.StyleSpec) []valreport.Violation {
	sectPr := findSectPr(body)
	if sectPr == nil {
		return []valreport.Violation{{
			ID:       "layout.section_missing",
			Severity: valreport.SeverityError,
			Message:  "document has no section properties (sectPr)",
		}}
	}

	pgMar := oxml.Child(sectPr, "w", "pgMar")
	if pgMar == nil {
		return []valreport.Violation{{
			ID:       "layout.margin_missing",
			Severity: valreport.SeverityError,
			Message:  "section has no pgMar element",
		}}
	}

	tolerance := spec.EffectiveMarginToleranceTwips()
	m := spec.Page.MarginsMM
	wants := map[string]float64{
		"top": m.Top, "bottom": m.Bottom, "left": m.Left, "right": m.Right,
		"header": spec.Page.HeaderMM, "footer": spec.Page.FooterMM, "gutter": m.Binding,
	}

	var out []valreport.Violation
	for _, key := range []string{"top", "bottom", "left", "right", "header", "footer", "gutter"} {
		wantTwips := mmToTwips(wants[key])
		attr := pgMar.SelectAttr("w:" + key)
		gotTwips := 0
		if attr != nil {
			gotTwips, _ = strconv.Atoi(attr.Value)
		}
		diff := gotTwips - wantTwips
		if diff < 0 {
			diff = -diff
		}
		if diff > tolerance {
			out = append(out, valreport.Violation{
				ID:       "layout.margin_" + key,
				Severity: valreport.SeverityError,
				Message:  fmt.Sprintf("section margin %s is %d twips, want %d (tolerance %d)", key, gotTwips, wantTwips, tolerance),
				Expected: strconv.Itoa(wantTwips),
				Actual:   strconv.Itoa(gotTwips),
				Suggestion: &valreport.Suggestion{
					Action: "set_page_margins",
					Params: map[string]any{key: wantTwips},
				},
			})
		}
	}
	return out
}

func checkRequiredHeadings(body *etree.Element, spec *stylespec.StyleSpec) []valreport.Violation {
	if len(spec.Structure.RequiredH1Titles) == 0 {
		return nil
	}
	present := map[string]bool{}
	for _, p := range oxml.Children(body, "w", "p") {
		style := paragraphStyleID(p)
		if style == "H1" || style == "FrontHeading" {
			present[strings.TrimSpace(oxml.Text(p))] = true
		}
	}

	var out []valreport.Violation
	for _, title := range spec.Structure.RequiredH1Titles {
		if !present[title] {
			out = append(out, valreport.Violation{
				ID:       "structure.required_section_missing",
				Severity: valreport.SeverityWarning,
				Message:  fmt.Sprintf("required section heading %q not found", title),
				Expected: title,
			})
		}
	}
	return out
}

func paragraphStyleID(p *etree.Element) string {
	pPr := oxml.Child(p, "w", "pPr")
	if pPr == nil {
		return ""
	}
	pStyle := oxml.Child(pPr, "w", "pStyle")
	if pStyle == nil {
		return ""
	}
	if attr := pStyle.SelectAttr("w:val"); attr != nil {
		return attr.Value
	}
	return ""
}

func checkParagraphStyles(paragraphs []*etree.Element, spec *stylespec.StyleSpec) []valreport.Violation {
	var out []valreport.Violation
	for i, p := range paragraphs {
		style := paragraphStyleID(p)
		if style == "" {
			continue
		}
		if knownParagraphEscapes[style] {
			continue
		}
		if _, defined := spec.Styles[style]; defined {
			continue
		}
		idx := i
		out = append(out, valreport.Violation{
			ID:       "style.unknown_style",
			Severity: valreport.SeverityWarning,
			Message:  fmt.Sprintf("paragraph %d uses undefined style %q", i, style),
			Location: valreport.Location{ParagraphIndex: &idx, TextSnippet: snippet(p)},
			Actual:   style,
			Suggestion: &valreport.Suggestion{
				Action: "set_paragraph_style",
				Params: map[string]any{"index": i, "style_id": "Body"},
			},
		})
	}
	return out
}

func snippet(p *etree.Element) string {
	text := oxml.Text(p)
	runes := []rune(text)
	if len(runes) > 40 {
		return string(runes[:40]) + "…"
	}
	return text
}

// permittedRunOverrideTags lists rPr children the validator never inspects,
// even though they are direct-formatting in spirit: per-level numbering
// properties are a permitted override (Open Question #2), since numbering
// is bound to the paragraph's style, not layered on as an ad hoc run
// property the way bold/italic/color are.
var permittedRunOverrideTags = map[string]bool{
	"numPr":     true,
	"vertAlign": true,
}

func checkDirectFormatting(paragraphs []*etree.Element, spec *stylespec.StyleSpec) []valreport.Violation {
	var out []valreport.Violation
	seen := map[int]bool{}
	for i, p := range paragraphs {
		for _, run := range oxml.Children(p, "w", "r") {
			rPr := oxml.Child(run, "w", "rPr")
			if rPr == nil {
				continue
			}
			for _, child := range rPr.ChildElements() {
				if permittedRunOverrideTags[child.Tag] {
					continue
				}
				check, known := forbiddenRunTags[child.Tag]
				if !known || !check(spec.ForbiddenDirectFormatting) {
					continue
				}
				if seen[i] {
					continue
				}
				seen[i] = true
				idx := i
				out = append(out, valreport.Violation{
					ID:       "style.direct_formatting_forbidden",
					Severity: valreport.SeverityError,
					Message:  fmt.Sprintf("paragraph %d has forbidden direct run formatting (%s)", i, child.Tag),
					Location: valreport.Location{ParagraphIndex: &idx, TextSnippet: snippet(p)},
					Suggestion: &valreport.Suggestion{
						Action: "clear_direct_run_formatting",
						Params: map[string]any{"index": i},
					},
				})
			}
		}
	}
	return out
}

func checkTOC(body *etree.Element, spec *stylespec.StyleSpec) []valreport.Violation {
	if spec.Structure.TOCMaxLevel <= 0 {
		return nil
	}
	for _, fld := range oxml.FindAll(body, "w", "fldSimple") {
		if attr := fld.SelectAttr("w:instr"); attr != nil && strings.Contains(attr.Value, "TOC") {
			return nil
		}
	}
	return []valreport.Violation{{
		ID:       "field.toc_missing",
		Severity: valreport.SeverityWarning,
		Message:  "no table-of-contents field found",
		Suggestion: &valreport.Suggestion{
			Action: "insert_toc_field",
			Params: map[string]any{"max_level": spec.Structure.TOCMaxLevel},
		},
	}}
}
