// Package templateemitter implements C5: it turns a StyleSpec into a
// "reference" .docx package carrying styles.xml, numbering.xml, a sectPr,
// and (optionally) a footer part binding a PAGE field. The renderer (C6)
// composes the final document against this reference rather than
// hand-writing style XML itself, the same split the go-docx vendor library
// draws between its "parts" (content) and "oxml" (serialization) layers.
package templateemitter

import (
	"fmt"
	"math"
	"sort"

	"github.com/beevik/etree"

	"github.com/vortex/docx-api/internal/docpkg"
	"github.com/vortex/docx-api/internal/oxml"
	"github.com/vortex/docx-api/internal/stylespec"
)

// mmToTwips converts millimetres to twips (1/20 point, 1440 per inch),
// rounding to the nearest twip the way every OOXML writer in the pack does
// for physical measurements.
func mmToTwips(mm float64) int {
	return int(math.Round(mm / 25.4 * 1440))
}

func ptToHalfPoints(pt float64) int {
	return int(math.Round(pt * 2))
}

// charsToHundredths converts a count of characters (or lines) to the
// hundredths unit Word uses for w:firstLineChars/w:hangingChars and
// w:beforeLines/w:afterLines; Word itself resolves a character's width
// against the document's default font size.
func charsToHundredths(chars float64) int {
	return int(math.Round(chars * 100))
}

// BuildReferenceDocx constructs a complete reference package from scratch:
// styles.xml, numbering.xml (if spec.Numbering is set), a document.xml
// whose body holds only the trailing sectPr, and a footer part if
// page numbering is requested in the footer.
func BuildReferenceDocx(spec *stylespec.StyleSpec) (*docpkg.Package, error) {
	pkg := docpkg.New()
	if err := PatchReferenceDocx(pkg, spec); err != nil {
		return nil, err
	}
	return pkg, nil
}

// PatchReferenceDocx updates the styles/numbering/section/footer parts of a
// caller-supplied package in place, creating any that are absent and
// leaving unrelated members (e.g. an already-populated document body)
// untouched.
func PatchReferenceDocx(pkg *docpkg.Package, spec *stylespec.StyleSpec) error {
	if err := writeStyles(pkg, spec); err != nil {
		return fmt.Errorf("templateemitter: styles: %w", err)
	}
	if spec.Numbering != nil {
		if err := writeNumbering(pkg, spec); err != nil {
			return fmt.Errorf("templateemitter: numbering: %w", err)
		}
	}
	if err := ensureDocumentWithSectPr(pkg, spec); err != nil {
		return fmt.Errorf("templateemitter: section: %w", err)
	}
	if spec.PageNumbering != nil && spec.PageNumbering.ShowInFooter {
		if err := writeFooter(pkg, spec); err != nil {
			return fmt.Errorf("templateemitter: footer: %w", err)
		}
	}
	return nil
}

func writeStyles(pkg *docpkg.Package, spec *stylespec.StyleSpec) error {
	doc := docpkg.NewXMLDocument()
	root := doc.CreateElement("w:styles")
	root.Space = "w"
	for prefix, uri := range oxml.Nsmap {
		root.CreateAttr("xmlns:"+prefix, uri)
	}

	// Deterministic output requires a stable style iteration order.
	ids := make([]string, 0, len(spec.Styles))
	for id := range spec.Styles {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	numPrByStyle := map[string]stylespec.NumberingLevel{}
	if spec.Numbering != nil {
		for _, lvl := range spec.Numbering.Levels {
			numPrByStyle[lvl.StyleID] = lvl
		}
	}

	for _, id := range ids {
		def := spec.Styles[id]
		styleEl := root.CreateElement("w:style")
		styleEl.Space = "w"
		styleEl.CreateAttr("w:type", "paragraph")
		styleEl.CreateAttr("w:styleId", def.StyleID)

		nameEl := styleEl.CreateElement("w:name")
		nameEl.Space = "w"
		nameEl.CreateAttr("w:val", def.Name)

		if def.BasedOn != "" {
			basedOn := styleEl.CreateElement("w:basedOn")
			basedOn.Space = "w"
			basedOn.CreateAttr("w:val", def.BasedOn)
		}
		if def.IsHeading {
			q := styleEl.CreateElement("w:qFormat")
			q.Space = "w"
		}

		pPr := styleEl.CreateElement("w:pPr")
		pPr.Space = "w"
		writeParagraphProps(pPr, def)
		if def.OutlineLevel != nil {
			ol := pPr.CreateElement("w:outlineLvl")
			ol.Space = "w"
			ol.CreateAttr("w:val", fmt.Sprintf("%d", *def.OutlineLevel))
		}
		if lvl, bound := numPrByStyle[id]; bound {
			numPr := pPr.CreateElement("w:numPr")
			numPr.Space = "w"
			ilvl := numPr.CreateElement("w:ilvl")
			ilvl.Space = "w"
			ilvl.CreateAttr("w:val", fmt.Sprintf("%d", lvl.Level))
			numId := numPr.CreateElement("w:numId")
			numId.Space = "w"
			numId.CreateAttr("w:val", fmt.Sprintf("%d", spec.Numbering.NumID))
		}

		rPr := styleEl.CreateElement("w:rPr")
		rPr.Space = "w"
		writeRunProps(rPr, def.Run)
	}

	return pkg.WriteXML("word/styles.xml", doc)
}

func writeParagraphProps(pPr *etree.Element, def stylespec.StyleDef) {
	p := def.Paragraph

	jc := pPr.CreateElement("w:jc")
	jc.Space = "w"
	jc.CreateAttr("w:val", string(p.Alignment))

	spacing := pPr.CreateElement("w:spacing")
	spacing.Space = "w"
	if p.SpaceBeforeLines != nil {
		spacing.CreateAttr("w:beforeLines", fmt.Sprintf("%d", charsToHundredths(*p.SpaceBeforeLines)))
	} else {
		spacing.CreateAttr("w:before", fmt.Sprintf("%d", ptToHalfPoints(p.SpaceBeforePt)*10))
	}
	if p.SpaceAfterLines != nil {
		spacing.CreateAttr("w:afterLines", fmt.Sprintf("%d", charsToHundredths(*p.SpaceAfterLines)))
	} else {
		spacing.CreateAttr("w:after", fmt.Sprintf("%d", ptToHalfPoints(p.SpaceAfterPt)*10))
	}
	switch p.LineSpacingRule {
	case stylespec.LineSpacingSingle:
		spacing.CreateAttr("w:line", "240")
		spacing.CreateAttr("w:lineRule", "auto")
	case stylespec.LineSpacing15:
		spacing.CreateAttr("w:line", "360")
		spacing.CreateAttr("w:lineRule", "auto")
	case stylespec.LineSpacingDouble:
		spacing.CreateAttr("w:line", "480")
		spacing.CreateAttr("w:lineRule", "auto")
	case stylespec.LineSpacingExact:
		if p.LineSpacing != nil {
			spacing.CreateAttr("w:line", fmt.Sprintf("%d", ptToHalfPoints(*p.LineSpacing)*10))
		}
		spacing.CreateAttr("w:lineRule", "exact")
	}

	if p.FirstLineIndentChars > 0 || p.HangingIndentChars > 0 {
		ind := pPr.CreateElement("w:ind")
		ind.Space = "w"
		if p.FirstLineIndentChars > 0 {
			ind.CreateAttr("w:firstLineChars", fmt.Sprintf("%d", charsToHundredths(p.FirstLineIndentChars)))
		}
		if p.HangingIndentChars > 0 {
			ind.CreateAttr("w:hangingChars", fmt.Sprintf("%d", charsToHundredths(p.HangingIndentChars)))
		}
	}

	if p.KeepWithNext {
		e := pPr.CreateElement("w:keepNext")
		e.Space = "w"
	}
	if p.KeepLines {
		e := pPr.CreateElement("w:keepLines")
		e.Space = "w"
	}
	if p.PageBreakBefore {
		e := pPr.CreateElement("w:pageBreakBefore")
		e.Space = "w"
	}
	if !p.WidowsControl {
		e := pPr.CreateElement("w:widowControl")
		e.Space = "w"
		e.CreateAttr("w:val", "0")
	}
}

func writeRunProps(rPr *etree.Element, run stylespec.StyleRun) {
	rFonts := rPr.CreateElement("w:rFonts")
	rFonts.Space = "w"
	rFonts.CreateAttr("w:eastAsia", run.Font.EastAsia)
	rFonts.CreateAttr("w:ascii", run.Font.ASCII)
	rFonts.CreateAttr("w:hAnsi", run.Font.HAnsi)

	if run.Bold {
		b := rPr.CreateElement("w:b")
		b.Space = "w"
	}
	if run.Italic {
		i := rPr.CreateElement("w:i")
		i.Space = "w"
	}
	if run.Underline {
		u := rPr.CreateElement("w:u")
		u.Space = "w"
		u.CreateAttr("w:val", "single")
	}
	sz := rPr.CreateElement("w:sz")
	sz.Space = "w"
	sz.CreateAttr("w:val", fmt.Sprintf("%d", ptToHalfPoints(run.SizePt)))
	szCs := rPr.CreateElement("w:szCs")
	szCs.Space = "w"
	szCs.CreateAttr("w:val", fmt.Sprintf("%d", ptToHalfPoints(run.SizePt)))
}

// suffVal maps the StyleSpec's suffix vocabulary (space|tab|nothing) onto
// OOXML's w:suff values (tab|space|nothing). The spec's "space" means "a
// single space after the number", which OOXML spells w:suff="space"; this
// compiler's only real translation point is documented here rather than
// silently inlined.
func suffVal(suffix string) string {
	switch suffix {
	case "space":
		return "space"
	case "tab":
		return "tab"
	default:
		return "nothing"
	}
}

func writeNumbering(pkg *docpkg.Package, spec *stylespec.StyleSpec) error {
	n := spec.Numbering
	doc := docpkg.NewXMLDocument()
	root := doc.CreateElement("w:numbering")
	root.Space = "w"
	for prefix, uri := range oxml.Nsmap {
		root.CreateAttr("xmlns:"+prefix, uri)
	}

	abstractNum := root.CreateElement("w:abstractNum")
	abstractNum.Space = "w"
	abstractNum.CreateAttr("w:abstractNumId", fmt.Sprintf("%d", n.AbstractNumID))

	levels := append([]stylespec.NumberingLevel(nil), n.Levels...)
	sort.Slice(levels, func(i, j int) bool { return levels[i].Level < levels[j].Level })

	for _, lvl := range levels {
		lvlEl := abstractNum.CreateElement("w:lvl")
		lvlEl.Space = "w"
		lvlEl.CreateAttr("w:ilvl", fmt.Sprintf("%d", lvl.Level))

		start := lvlEl.CreateElement("w:start")
		start.Space = "w"
		start.CreateAttr("w:val", fmt.Sprintf("%d", lvl.Start))

		numFmt := lvlEl.CreateElement("w:numFmt")
		numFmt.Space = "w"
		numFmt.CreateAttr("w:val", lvl.Format)

		lvlText := lvlEl.CreateElement("w:lvlText")
		lvlText.Space = "w"
		lvlText.CreateAttr("w:val", lvl.LvlText)

		suff := lvlEl.CreateElement("w:suff")
		suff.Space = "w"
		suff.CreateAttr("w:val", suffVal(lvl.Suffix))

		pStyle := lvlEl.CreateElement("w:pStyle")
		pStyle.Space = "w"
		pStyle.CreateAttr("w:val", lvl.StyleID)
	}

	num := root.CreateElement("w:num")
	num.Space = "w"
	num.CreateAttr("w:numId", fmt.Sprintf("%d", n.NumID))
	abstractNumIDRef := num.CreateElement("w:abstractNumId")
	abstractNumIDRef.Space = "w"
	abstractNumIDRef.CreateAttr("w:val", fmt.Sprintf("%d", n.AbstractNumID))

	return pkg.WriteXML("word/numbering.xml", doc)
}

// ensureDocumentWithSectPr creates a minimal document.xml carrying only a
// trailing sectPr if the package has no document.xml yet (the template
// emitter invoked standalone, e.g. for preview); when document.xml already
// exists (the renderer has already laid out the body), it instead updates
// the sectPr in place, preserving every other element.
func ensureDocumentWithSectPr(pkg *docpkg.Package, spec *stylespec.StyleSpec) error {
	if pkg.Has("word/document.xml") {
		xdoc, err := pkg.ReadXML("word/document.xml")
		if err != nil {
			return err
		}
		body := oxml.Child(xdoc.Root(), "w", "body")
		if body == nil {
			return fmt.Errorf("templateemitter: document.xml has no w:body")
		}
		sectPr := findOrAppendSectPr(body)
		writeSectPrContents(sectPr, spec, 0)
		return pkg.WriteXML("word/document.xml", xdoc)
	}

	xdoc := docpkg.NewXMLDocument()
	root := xdoc.CreateElement("w:document")
	root.Space = "w"
	for prefix, uri := range oxml.Nsmap {
		root.CreateAttr("xmlns:"+prefix, uri)
	}
	body := root.CreateElement("w:body")
	body.Space = "w"
	sectPr := body.CreateElement("w:sectPr")
	sectPr.Space = "w"
	writeSectPrContents(sectPr, spec, 0)
	return pkg.WriteXML("word/document.xml", xdoc)
}

func findOrAppendSectPr(body *etree.Element) *etree.Element {
	if existing := oxml.Child(body, "w", "sectPr"); existing != nil {
		return existing
	}
	sectPr := body.CreateElement("w:sectPr")
	sectPr.Space = "w"
	return sectPr
}

// WriteSectPrContents populates (overwriting) a w:sectPr's page-size,
// margin, and header/footer-distance children from the spec, and — when
// page numbering distinguishes front/main matter — the page number format
// for the section at the given zero-based section index (0 = front
// matter, >=1 = main matter and beyond).
func WriteSectPrContents(sectPr *etree.Element, spec *stylespec.StyleSpec, sectionIndex int) {
	writeSectPrContents(sectPr, spec, sectionIndex)
}

func writeSectPrContents(sectPr *etree.Element, spec *stylespec.StyleSpec, sectionIndex int) {
	for _, child := range sectPr.ChildElements() {
		sectPr.RemoveChild(child)
	}

	pgSz := sectPr.CreateElement("w:pgSz")
	pgSz.Space = "w"
	// A4 in twips, computed from millimetres rather than hardcoded.
	pgSz.CreateAttr("w:w", fmt.Sprintf("%d", mmToTwips(210)))
	pgSz.CreateAttr("w:h", fmt.Sprintf("%d", mmToTwips(297)))

	m := spec.Page.MarginsMM
	pgMar := sectPr.CreateElement("w:pgMar")
	pgMar.Space = "w"
	pgMar.CreateAttr("w:top", fmt.Sprintf("%d", mmToTwips(m.Top)))
	pgMar.CreateAttr("w:bottom", fmt.Sprintf("%d", mmToTwips(m.Bottom)))
	pgMar.CreateAttr("w:left", fmt.Sprintf("%d", mmToTwips(m.Left)))
	pgMar.CreateAttr("w:right", fmt.Sprintf("%d", mmToTwips(m.Right)))
	pgMar.CreateAttr("w:gutter", fmt.Sprintf("%d", mmToTwips(m.Binding)))
	pgMar.CreateAttr("w:header", fmt.Sprintf("%d", mmToTwips(spec.Page.HeaderMM)))
	pgMar.CreateAttr("w:footer", fmt.Sprintf("%d", mmToTwips(spec.Page.FooterMM)))

	if spec.PageNumbering != nil && spec.PageNumbering.Enabled {
		format := spec.PageNumbering.MainFormat
		start := spec.PageNumbering.MainStart
		if sectionIndex == 0 {
			format = spec.PageNumbering.FrontFormat
			start = spec.PageNumbering.FrontStart
		}
		pgNumType := sectPr.CreateElement("w:pgNumType")
		pgNumType.Space = "w"
		pgNumType.CreateAttr("w:fmt", pageNumFmtAttr(format))
		pgNumType.CreateAttr("w:start", fmt.Sprintf("%d", start))
	}

	if spec.PageNumbering != nil && spec.PageNumbering.ShowInFooter {
		ref := sectPr.CreateElement("w:footerReference")
		ref.Space = "w"
		ref.CreateAttr("w:type", "default")
		ref.CreateAttr("r:id", "rIdFooter1")
	}
}

func pageNumFmtAttr(f stylespec.PageNumFormat) string {
	switch f {
	case stylespec.PageNumRomanUpper:
		return "upperRoman"
	case stylespec.PageNumRomanLower:
		return "lowerRoman"
	default:
		return "decimal"
	}
}

func writeFooter(pkg *docpkg.Package, spec *stylespec.StyleSpec) error {
	doc := docpkg.NewXMLDocument()
	root := doc.CreateElement("w:ftr")
	root.Space = "w"
	for prefix, uri := range oxml.Nsmap {
		root.CreateAttr("xmlns:"+prefix, uri)
	}

	p := root.CreateElement("w:p")
	p.Space = "w"
	pPr := p.CreateElement("w:pPr")
	pPr.Space = "w"
	jc := pPr.CreateElement("w:jc")
	jc.Space = "w"
	jc.CreateAttr("w:val", string(spec.PageNumbering.FooterAlignment))

	run := p.CreateElement("w:r")
	run.Space = "w"
	fld := run.CreateElement("w:fldSimple")
	fld.Space = "w"
	fld.CreateAttr("w:instr", " PAGE ")
	innerRun := fld.CreateElement("w:r")
	innerRun.Space = "w"
	t := innerRun.CreateElement("w:t")
	t.Space = "w"
	t.SetText("1")

	return pkg.WriteXML("word/footer1.xml", doc)
}
