// Package renderer implements C6: it walks a docast.Document and emits the
// final .docx bytes, assigning every block a paragraph style from the
// StyleSpec's style table and composing the OOXML package around the
// reference the template emitter (C5) already produced. The renderer never
// writes a direct-formatting override the validator (C7) would flag —
// wherever an inline run's formatting is forbidden, the run inherits its
// paragraph style instead.
package renderer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"github.com/vortex/docx-api/internal/docast"
	"github.com/vortex/docx-api/internal/docpkg"
	"github.com/vortex/docx-api/internal/oxml"
	"github.com/vortex/docx-api/internal/stylespec"
	"github.com/vortex/docx-api/internal/templateemitter"
)

// Options controls the two structural insertions the renderer performs
// ahead of the document body.
type Options struct {
	IncludeCover bool
	IncludeTOC   bool
	TOCTitle     string
}

var frontMatterHeadings = map[string]bool{
	"摘要": true, "Abstract": true,
	"目录": true, "Contents": true,
	"致谢": true, "Acknowledgements": true, "Acknowledgments": true,
	"参考文献": true, "References": true,
}

var abstractPrefix = map[string]string{
	"摘要":       "摘要：",
	"Abstract": "Abstract: ",
}

var keywordsMarkerRe = regexp.MustCompile(`(?i)^(关键词|Keywords)[:：]?\s*(.*)$`)

// Render composes (doc, spec, reference) into final .docx bytes. reference
// is the package the template emitter produced; its styles.xml,
// numbering.xml, and footer parts are copied as-is, and its document.xml
// (if any placeholder exists) is replaced wholesale with the rendered body.
func Render(doc *docast.Document, spec *stylespec.StyleSpec, reference *docpkg.Package, opts Options) ([]byte, error) {
	pkg := docpkg.New()
	for _, name := range reference.Members() {
		if name == "word/document.xml" {
			continue
		}
		data, err := reference.Get(name)
		if err != nil {
			return nil, fmt.Errorf("renderer: copy %q: %w", name, err)
		}
		pkg.Set(name, data)
	}

	r := &renderState{spec: spec, opts: opts}
	r.renderBlocks(doc, opts)

	xdoc := docpkg.NewXMLDocument()
	root := xdoc.CreateElement("w:document")
	root.Space = "w"
	for prefix, uri := range oxml.Nsmap {
		root.CreateAttr("xmlns:"+prefix, uri)
	}
	body := root.CreateElement("w:body")
	body.Space = "w"
	for _, p := range r.paragraphs {
		body.AddChild(p)
	}

	sectPr := body.CreateElement("w:sectPr")
	sectPr.Space = "w"
	templateemitter.WriteSectPrContents(sectPr, spec, r.sectionIndex)

	if err := pkg.WriteXML("word/document.xml", xdoc); err != nil {
		return nil, fmt.Errorf("renderer: write document.xml: %w", err)
	}

	ensureContentTypes(pkg)
	ensurePackageRels(pkg)
	ensureDocumentRels(pkg, spec)
	ensureCoreProps(pkg, doc)

	return pkg.SaveBytes()
}

type renderState struct {
	spec                 *stylespec.StyleSpec
	opts                 Options
	paragraphs           []*etree.Element
	sectionIndex         int
	context              string // "", "abstract", "keywords"
	contextPrefixPending string
	figureN              int
	tableN               int
}

func (r *renderState) renderBlocks(doc *docast.Document, opts Options) {
	if opts.IncludeCover {
		r.renderCover(doc.Meta)
	}
	if opts.IncludeTOC {
		r.renderTOC(opts.TOCTitle)
	}
	for _, b := range doc.Blocks {
		r.renderBlock(b)
	}
}

func (r *renderState) renderCover(meta docast.Meta) {
	if meta.TitleCN != "" {
		r.paragraphs = append(r.paragraphs, r.plainParagraph("TitleCN", meta.TitleCN))
	}
	if meta.TitleEN != "" {
		r.paragraphs = append(r.paragraphs, r.plainParagraph("TitleEN", meta.TitleEN))
	}
	for _, line := range []string{meta.Author, meta.Major, meta.Tutor} {
		if line != "" {
			r.paragraphs = append(r.paragraphs, r.plainParagraph("MetaLine", line))
		}
	}
	r.paragraphs = append(r.paragraphs, r.pageBreakParagraph())
}

func (r *renderState) renderTOC(title string) {
	if title == "" {
		title = "目录"
	}
	r.paragraphs = append(r.paragraphs, r.plainParagraph("FrontHeading", title))

	p := etree.NewElement("w:p")
	p.Space = "w"
	run := p.CreateElement("w:r")
	run.Space = "w"
	fld := run.CreateElement("w:fldSimple")
	fld.Space = "w"
	instr := fmt.Sprintf(` TOC \o "1-%d" \h \z \u `, maxInt(r.spec.Structure.TOCMaxLevel, 1))
	fld.CreateAttr("w:instr", instr)
	r.paragraphs = append(r.paragraphs, p)
	r.paragraphs = append(r.paragraphs, r.pageBreakParagraph())
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (r *renderState) renderBlock(b docast.Block) {
	switch v := b.(type) {
	case docast.Heading:
		r.renderHeading(v)
	case docast.Paragraph:
		r.renderParagraph(v)
	case docast.List:
		r.renderList(v)
	case docast.Table:
		r.renderTable(v)
	case docast.Figure:
		r.renderFigure(v)
	case docast.PageBreak:
		r.paragraphs = append(r.paragraphs, r.pageBreakParagraph())
	case docast.SectionBreak:
		r.renderSectionBreak()
	case docast.Bibliography:
		r.renderBibliography(v)
	}
}

func (r *renderState) headingStyle(level int) string {
	clamped := level
	if clamped > 3 {
		clamped = 3
	}
	if clamped < 1 {
		clamped = 1
	}
	return fmt.Sprintf("H%d", clamped)
}

func (r *renderState) renderHeading(h docast.Heading) {
	trimmed := strings.TrimSpace(h.Text)
	styleID := r.headingStyle(h.Level)
	if h.Level == 1 && frontMatterHeadings[trimmed] {
		styleID = "FrontHeading"
	}
	r.paragraphs = append(r.paragraphs, r.plainParagraph(styleID, h.Text))

	if h.Level == 1 {
		switch {
		case trimmed == "摘要" || trimmed == "Abstract":
			r.context = "abstract"
			r.contextPrefixPending = trimmed
		default:
			r.context = ""
			r.contextPrefixPending = ""
		}
	}
}

func (r *renderState) renderParagraph(p docast.Paragraph) {
	text := p.Text
	inlines := p.Inlines
	if len(inlines) == 0 && text != "" {
		inlines = []docast.Inline{{Kind: docast.InlineText, Text: text}}
	}
	if len(inlines) == 0 {
		return
	}

	flat := flattenText(inlines)
	if m := keywordsMarkerRe.FindStringSubmatch(flat); m != nil && r.context != "" {
		r.context = "keywords"
		body := m[2]
		if r.spec.AutoPrefixAbstractKeywords {
			body = "关键词：" + body
			if isASCIIHeavy(flat) {
				body = "Keywords: " + m[2]
			}
		} else {
			body = flat
		}
		r.paragraphs = append(r.paragraphs, r.plainParagraph("KeywordsBody", body))
		return
	}

	switch r.context {
	case "abstract":
		if r.spec.AutoPrefixAbstractKeywords && r.contextPrefixPending != "" {
			prefix := abstractPrefix[r.contextPrefixPending]
			r.contextPrefixPending = ""
			r.paragraphs = append(r.paragraphs, r.plainParagraph("AbstractBody", prefix+flat))
			return
		}
		r.paragraphs = append(r.paragraphs, r.plainParagraph("AbstractBody", flat))
		return
	case "keywords":
		r.paragraphs = append(r.paragraphs, r.plainParagraph("KeywordsBody", flat))
		return
	}

	r.paragraphs = append(r.paragraphs, r.runsParagraph("Body", inlines))
}

func isASCIIHeavy(s string) bool {
	ascii, total := 0, 0
	for _, r := range s {
		total++
		if r < 128 {
			ascii++
		}
	}
	return total > 0 && ascii*2 > total
}

func flattenText(inlines []docast.Inline) string {
	var sb strings.Builder
	for _, in := range inlines {
		sb.WriteString(in.Text)
	}
	return sb.String()
}

func (r *renderState) renderList(l docast.List) {
	style := "ListBullet"
	if l.Ordered {
		style = "ListNumber"
	}
	for i, item := range l.Items {
		prefix := "• "
		if l.Ordered {
			prefix = fmt.Sprintf("%d. ", i+1)
		}
		inlines := append([]docast.Inline{{Kind: docast.InlineText, Text: prefix}}, item.Inlines...)
		r.paragraphs = append(r.paragraphs, r.runsParagraph(style, inlines))
	}
}

func (r *renderState) renderTable(t docast.Table) {
	r.tableN++
	caption := t.Caption
	if r.spec.AutoNumberFiguresTables {
		caption = fmt.Sprintf("表%d %s", r.tableN, caption)
	}
	if strings.TrimSpace(caption) != "" {
		r.paragraphs = append(r.paragraphs, r.plainParagraph("TableTitle", caption))
	}

	tbl := etree.NewElement("w:tbl")
	tbl.Space = "w"
	tblPr := tbl.CreateElement("w:tblPr")
	tblPr.Space = "w"
	for _, row := range t.Rows {
		tr := tbl.CreateElement("w:tr")
		tr.Space = "w"
		for _, cell := range row {
			tc := tr.CreateElement("w:tc")
			tc.Space = "w"
			cellP := tc.CreateElement("w:p")
			cellP.Space = "w"
			pPr := cellP.CreateElement("w:pPr")
			pPr.Space = "w"
			pStyle := pPr.CreateElement("w:pStyle")
			pStyle.Space = "w"
			pStyle.CreateAttr("w:val", "TableText")
			run := cellP.CreateElement("w:r")
			run.Space = "w"
			t := run.CreateElement("w:t")
			t.Space = "w"
			t.CreateAttr("xml:space", "preserve")
			t.SetText(cell)
		}
	}
	// w:tbl is a direct child of w:body, a sibling of the w:p elements
	// around it — never nested inside a paragraph.
	r.paragraphs = append(r.paragraphs, tbl)

	// A table must not be the last element of a section: Word requires a
	// trailing paragraph after it, including at the end of the body.
	r.paragraphs = append(r.paragraphs, r.emptyParagraph())
}

func (r *renderState) emptyParagraph() *etree.Element {
	p := etree.NewElement("w:p")
	p.Space = "w"
	return p
}

func (r *renderState) renderFigure(f docast.Figure) {
	r.figureN++
	r.paragraphs = append(r.paragraphs, r.plainParagraph("Figure", fmt.Sprintf("[Figure: %s]", f.Path)))
	caption := f.Caption
	if r.spec.AutoNumberFiguresTables {
		caption = fmt.Sprintf("图%d %s", r.figureN, caption)
	}
	if strings.TrimSpace(caption) != "" {
		r.paragraphs = append(r.paragraphs, r.plainParagraph("FigureCaption", caption))
	}
}

func (r *renderState) renderSectionBreak() {
	p := etree.NewElement("w:p")
	p.Space = "w"
	pPr := p.CreateElement("w:pPr")
	pPr.Space = "w"
	sectPr := pPr.CreateElement("w:sectPr")
	sectPr.Space = "w"
	templateemitter.WriteSectPrContents(sectPr, r.spec, r.sectionIndex)
	r.paragraphs = append(r.paragraphs, p)
	r.sectionIndex++
}

func (r *renderState) renderBibliography(b docast.Bibliography) {
	for _, item := range b.Items {
		r.paragraphs = append(r.paragraphs, r.plainParagraph("Reference", item))
	}
}

func (r *renderState) plainParagraph(styleID, text string) *etree.Element {
	return r.runsParagraph(styleID, []docast.Inline{{Kind: docast.InlineText, Text: text}})
}

func (r *renderState) pageBreakParagraph() *etree.Element {
	p := etree.NewElement("w:p")
	p.Space = "w"
	run := p.CreateElement("w:r")
	run.Space = "w"
	br := run.CreateElement("w:br")
	br.Space = "w"
	br.CreateAttr("w:type", "page")
	return p
}

func (r *renderState) runsParagraph(styleID string, inlines []docast.Inline) *etree.Element {
	p := etree.NewElement("w:p")
	p.Space = "w"
	pPr := p.CreateElement("w:pPr")
	pPr.Space = "w"
	pStyle := pPr.CreateElement("w:pStyle")
	pStyle.Space = "w"
	pStyle.CreateAttr("w:val", styleID)

	for _, in := range inlines {
		run := p.CreateElement("w:r")
		run.Space = "w"
		if rPr := r.runPropsFor(in.Kind); rPr != nil {
			run.AddChild(rPr)
		}
		t := run.CreateElement("w:t")
		t.Space = "w"
		t.CreateAttr("xml:space", "preserve")
		t.SetText(in.Text)
	}
	return p
}

// runPropsFor returns the rPr override for an inline kind, or nil when the
// spec forbids that kind of direct formatting — in which case the run
// inherits every property from its paragraph style instead.
func (r *renderState) runPropsFor(kind docast.InlineKind) *etree.Element {
	forbid := r.spec.ForbiddenDirectFormatting
	switch kind {
	case docast.InlineBold:
		if forbid.Bold {
			return nil
		}
		rPr := etree.NewElement("w:rPr")
		rPr.Space = "w"
		b := rPr.CreateElement("w:b")
		b.Space = "w"
		return rPr
	case docast.InlineItalic:
		if forbid.Italic {
			return nil
		}
		rPr := etree.NewElement("w:rPr")
		rPr.Space = "w"
		i := rPr.CreateElement("w:i")
		i.Space = "w"
		return rPr
	case docast.InlineUnderline:
		if forbid.Underline {
			return nil
		}
		rPr := etree.NewElement("w:rPr")
		rPr.Space = "w"
		u := rPr.CreateElement("w:u")
		u.Space = "w"
		u.CreateAttr("w:val", "single")
		return rPr
	case docast.InlineCode:
		if forbid.Font {
			return nil
		}
		rPr := etree.NewElement("w:rPr")
		rPr.Space = "w"
		rFonts := rPr.CreateElement("w:rFonts")
		rFonts.Space = "w"
		rFonts.CreateAttr("w:ascii", "Courier New")
		rFonts.CreateAttr("w:hAnsi", "Courier New")
		rFonts.CreateAttr("w:eastAsia", "Courier New")
		return rPr
	case docast.InlineSuperscript:
		rPr := etree.NewElement("w:rPr")
		rPr.Space = "w"
		va := rPr.CreateElement("w:vertAlign")
		va.Space = "w"
		va.CreateAttr("w:val", "superscript")
		return rPr
	case docast.InlineSubscript:
		rPr := etree.NewElement("w:rPr")
		rPr.Space = "w"
		va := rPr.CreateElement("w:vertAlign")
		va.Space = "w"
		va.CreateAttr("w:val", "subscript")
		return rPr
	default:
		return nil
	}
}

var contentTypesXML = []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>` +
	`<Override PartName="/word/footer1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"/>` +
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
	`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>` +
	`</Types>`)

func ensureContentTypes(pkg *docpkg.Package) {
	pkg.Set("[Content_Types].xml", contentTypesXML)
}

var packageRelsXML = []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/>` +
	`</Relationships>`)

func ensurePackageRels(pkg *docpkg.Package) {
	pkg.Set("_rels/.rels", packageRelsXML)
}

func ensureDocumentRels(pkg *docpkg.Package, spec *stylespec.StyleSpec) {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	sb.WriteString(`<Relationship Id="rIdStyles" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>`)
	if spec.Numbering != nil {
		sb.WriteString(`<Relationship Id="rIdNumbering" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/>`)
	}
	if spec.PageNumbering != nil && spec.PageNumbering.ShowInFooter {
		sb.WriteString(`<Relationship Id="rIdFooter1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer" Target="footer1.xml"/>`)
	}
	sb.WriteString(`</Relationships>`)
	pkg.Set("word/_rels/document.xml.rels", []byte(sb.String()))
}

func ensureCoreProps(pkg *docpkg.Package, doc *docast.Document) {
	title := doc.Meta.TitleCN
	if title == "" {
		title = doc.Meta.TitleEN
	}
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	sb.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/">`)
	sb.WriteString(`<dc:title>` + xmlEscape(title) + `</dc:title>`)
	sb.WriteString(`<dc:creator>` + xmlEscape(doc.Meta.Author) + `</dc:creator>`)
	sb.WriteString(`</cp:coreProperties>`)
	pkg.Set("docProps/core.xml", []byte(sb.String()))

	pkg.Set("docProps/app.xml", []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
		`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">`+
		`<Application>thesis-formatter</Application></Properties>`))
}

func xmlEscape(s string) string {
	replacer := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return replacer.Replace(s)
}
