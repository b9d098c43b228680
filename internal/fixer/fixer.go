// Package fixer implements C8: a deterministic patch algebra that repairs
// the violations the validator (C7) finds. A Patch is built once from a
// Report and then applied to the package; every action is idempotent, so
// re-running a patch against an already-fixed document is a no-op.
package fixer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/vortex/docx-api/internal/docpkg"
	"github.com/vortex/docx-api/internal/oxml"
	"github.com/vortex/docx-api/internal/stylespec"
	"github.com/vortex/docx-api/internal/valreport"
)

// BuildPatchFromReport compiles every Violation carrying a Suggestion into
// a Patch action, in report order. Violations with no Suggestion (e.g. a
// missing required heading, which has no mechanical fix) are dropped.
func BuildPatchFromReport(report valreport.Report) valreport.Patch {
	var patch valreport.Patch
	for _, v := range report.Violations {
		if v.Suggestion == nil {
			continue
		}
		patch.Actions = append(patch.Actions, valreport.Action{
			Action: v.Suggestion.Action,
			Params: v.Suggestion.Params,
		})
	}
	return patch
}

// FixDocx is the convenience entry point the compiler (C9) calls: build a
// patch from report and apply it to docxBytes in one step.
func FixDocx(docxBytes []byte, report valreport.Report, spec *stylespec.StyleSpec) ([]byte, error) {
	patch := BuildPatchFromReport(report)
	return ApplyPatch(docxBytes, patch, spec)
}

// ApplyPatch applies every action in patch to a copy of docxBytes, in
// order, skipping any action whose name it does not recognize. Unknown
// actions are silently ignored rather than treated as an error: a patch
// built from a future validator's suggestions should degrade gracefully
// against an older fixer.
func ApplyPatch(docxBytes []byte, patch valreport.Patch, spec *stylespec.StyleSpec) ([]byte, error) {
	pkg, err := docpkg.OpenBytes(docxBytes)
	if err != nil {
		return nil, fmt.Errorf("fixer: open: %w", err)
	}

	xdoc, err := pkg.ReadXML("word/document.xml")
	if err != nil {
		return nil, fmt.Errorf("fixer: read document.xml: %w", err)
	}
	body := oxml.Child(xdoc.Root(), "w", "body")
	if body == nil {
		return nil, fmt.Errorf("fixer: document.xml has no w:body")
	}

	// set_paragraph_style and clear_direct_run_formatting index into the
	// same deep paragraph scan the validator used to compute those indices
	// (every w:p in the document, including ones nested inside table
	// cells), not just body's direct w:p children.
	paragraphs := oxml.FindAll(body, "w", "p")

	// Margin edits accumulate across actions so a patch with several
	// set_page_margins actions (one per violated edge) only touches the
	// document-level section's pgMar once.
	marginEdits := map[string]int{}

	for _, action := range patch.Actions {
		switch action.Action {
		case "set_page_margins":
			for key, val := range action.Params {
				if n, ok := toInt(val); ok {
					marginEdits[key] = n
				}
			}
		case "set_paragraph_style":
			applySetParagraphStyle(paragraphs, action.Params)
		case "clear_direct_run_formatting":
			applyClearDirectRunFormatting(paragraphs, action.Params)
		case "insert_toc_field":
			insertTOCField(body, action.Params)
		default:
			// unknown action: ignore.
		}
	}

	if len(marginEdits) > 0 {
		applyMarginEdits(body, marginEdits)
	}

	if err := pkg.WriteXML("word/document.xml", xdoc); err != nil {
		return nil, fmt.Errorf("fixer: write document.xml: %w", err)
	}
	return pkg.SaveBytes()
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(n)
		return i, err == nil
	default:
		return 0, false
	}
}

func indexParam(params map[string]any) (int, bool) {
	v, ok := params["index"]
	if !ok {
		return 0, false
	}
	return toInt(v)
}

func applySetParagraphStyle(paragraphs []*etree.Element, params map[string]any) {
	idx, ok := indexParam(params)
	if !ok || idx < 0 || idx >= len(paragraphs) {
		return
	}
	styleID, _ := params["style_id"].(string)
	if styleID == "" {
		styleID = "Body"
	}
	p := paragraphs[idx]
	pPr := oxml.EnsureChild(p, "w", "pPr")
	pStyle := oxml.EnsureChild(pPr, "w", "pStyle")
	pStyle.CreateAttr("w:val", styleID)
}

// directFormattingTags is the same fixed rPr child set the validator
// inspects; clearing run formatting means removing exactly these, leaving
// numPr/vertAlign (the permitted overrides) untouched.
var directFormattingTags = map[string]bool{
	"rFonts": true, "sz": true, "szCs": true,
	"b": true, "bCs": true, "i": true, "iCs": true,
	"u": true, "color": true,
}

func applyClearDirectRunFormatting(paragraphs []*etree.Element, params map[string]any) {
	idx, ok := indexParam(params)
	if !ok || idx < 0 || idx >= len(paragraphs) {
		return
	}
	p := paragraphs[idx]
	for _, run := range oxml.Children(p, "w", "r") {
		rPr := oxml.Child(run, "w", "rPr")
		if rPr == nil {
			continue
		}
		for _, child := range rPr.ChildElements() {
			if directFormattingTags[child.Tag] {
				rPr.RemoveChild(child)
			}
		}
	}
}

func applyMarginEdits(body *etree.Element, edits map[string]int) {
	sectPr := findLastSectPr(body)
	if sectPr == nil {
		return
	}
	pgMar := oxml.EnsureChild(sectPr, "w", "pgMar")

	keys := make([]string, 0, len(edits))
	for k := range edits {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		pgMar.CreateAttr("w:"+key, strconv.Itoa(edits[key]))
	}
}

// findLastSectPr returns the document-level section properties: the last
// w:sectPr that is a direct child of body, which in OOXML always describes
// the final section (earlier sections, if any, are nested inside a
// paragraph's pPr for a mid-document section break).
func findLastSectPr(body *etree.Element) *etree.Element {
	var last *etree.Element
	for _, c := range body.ChildElements() {
		if c.Space == "w" && c.Tag == "sectPr" {
			last = c
		}
	}
	return last
}

// insertTOCField inserts a table-of-contents field at the top of the body,
// unless one already exists (Open Question: avoid double insertion when
// the renderer already placed one via IncludeTOC).
func insertTOCField(body *etree.Element, params map[string]any) {
	for _, fld := range oxml.FindAll(body, "w", "fldSimple") {
		if attr := fld.SelectAttr("w:instr"); attr != nil && strings.Contains(attr.Value, "TOC") {
			return
		}
	}

	maxLevel := 3
	if n, ok := toInt(params["max_level"]); ok && n > 0 {
		maxLevel = n
	}

	p := etree.NewElement("p")
	p.Space = "w"
	pPr := p.CreateElement("pPr")
	pPr.Space = "w"
	pStyle := pPr.CreateElement("pStyle")
	pStyle.Space = "w"
	pStyle.CreateAttr("w:val", "FrontHeading")

	fld := p.CreateElement("fldSimple")
	fld.Space = "w"
	fld.CreateAttr("w:instr", fmt.Sprintf(`TOC \o "1-%d" \h \z \u`, maxLevel))
	run := fld.CreateElement("r")
	run.Space = "w"
	t := run.CreateElement("t")
	t.Space = "w"
	t.SetText("目录")

	body.InsertChildAt(0, p)
}
