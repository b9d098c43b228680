// Package parser turns raw Markdown or plaintext input into a docast.Document.
// Markdown parsing is deterministic (goldmark, GFM tables + strikethrough);
// the plaintext path is a heuristic line scanner for input that carries no
// markup at all. Neither path ever calls out to an AI service — that
// classification is layered on top by the compiler, not here.
package parser

import (
	"regexp"
	"strings"

	"github.com/pgavlin/goldmark"
	"github.com/pgavlin/goldmark/ast"
	"github.com/pgavlin/goldmark/extension"
	xast "github.com/pgavlin/goldmark/extension/ast"
	mdtext "github.com/pgavlin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/vortex/docx-api/internal/docast"
)

var pageBreakMarkers = map[string]bool{
	"<!-- pagebreak -->": true,
	"<!--PAGEBREAK-->":   true,
	"[[PAGEBREAK]]":      true,
	`\f`:                 true,
}

var sectionBreakMarkers = map[string]bool{
	"<!-- sectionbreak -->": true,
	"<!--SECTIONBREAK-->":   true,
	"[[SECTIONBREAK]]":      true,
}

var frontMatterFence = regexp.MustCompile(`(?m)^\s*---\s*$`)

// splitFrontMatter separates a leading "---\nkey: value\n---\n" block from
// the rest of the document. Unlike the line-oriented scanner the distilled
// spec ported from Python by hand, this decodes the block with a real YAML
// library, so quoting and nested scalars behave the way a thesis author
// editing the front matter in any other YAML-aware tool would expect.
func splitFrontMatter(text string) (map[string]string, string) {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return nil, text
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			block := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			meta := map[string]string{}
			if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
				// Malformed front matter: treat the whole input as body,
				// matching the Python fallback of "no closing --- found".
				return nil, text
			}
			return meta, body
		}
	}
	return nil, text
}

var knownMetaKeys = map[string]bool{
	"title_cn": true, "title_en": true, "author": true, "major": true, "tutor": true,
}

func metaFromFrontMatter(fm map[string]string) docast.Meta {
	meta := docast.Meta{
		TitleCN: fm["title_cn"],
		TitleEN: fm["title_en"],
		Author:  fm["author"],
		Major:   fm["major"],
		Tutor:   fm["tutor"],
	}
	for k, v := range fm {
		if knownMetaKeys[k] {
			continue
		}
		if meta.Extra == nil {
			meta.Extra = map[string]string{}
		}
		meta.Extra[k] = v
	}
	return meta
}

// ParseMarkdown parses Markdown source (optionally preceded by YAML front
// matter) into a Document. Heading/list/table/image syntax map to the
// corresponding Block kinds; bare sentinel paragraphs become page or
// section breaks; a run of "[n] ..." paragraphs directly following a
// "References"/"参考文献" heading is merged into one Bibliography block.
func ParseMarkdown(source []byte) (*docast.Document, error) {
	fm, body := splitFrontMatter(string(source))

	md := goldmark.New(goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
	))
	src := []byte(body)
	root := md.Parser().Parse(mdtext.NewReader(src))

	var blocks []docast.Block
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		blocks = append(blocks, convertBlock(n, src)...)
	}

	doc := &docast.Document{
		Meta:   metaFromFrontMatter(fm),
		Blocks: mergeBibliography(blocks),
	}
	return doc, nil
}

func convertBlock(n ast.Node, source []byte) []docast.Block {
	switch n.Kind() {
	case ast.KindHeading:
		h := n.(*ast.Heading)
		return []docast.Block{docast.Heading{Level: h.Level, Text: collectText(n, source)}}

	case ast.KindParagraph:
		return convertParagraph(n, source)

	case ast.KindList:
		l := n.(*ast.List)
		var items []docast.ListItem
		for item := l.FirstChild(); item != nil; item = item.NextSibling() {
			items = append(items, docast.ListItem{Inlines: collectListItemInlines(item, source)})
		}
		return []docast.Block{docast.List{Ordered: l.IsOrdered(), Items: items}}

	case xast.KindTable:
		return []docast.Block{convertTable(n.(*xast.Table), source)}

	case ast.KindImage:
		img := n.(*ast.Image)
		return []docast.Block{docast.Figure{Path: string(img.Destination), Caption: string(img.Title)}}

	default:
		if text := strings.TrimSpace(string(n.Text(source))); text != "" {
			return []docast.Block{docast.Paragraph{Text: text}}
		}
		return nil
	}
}

// convertParagraph handles the three paragraph special-cases the
// distillation restores from the original: sentinel break markers,
// image-only paragraphs (figures), and otherwise a plain or inline-rich
// paragraph.
func convertParagraph(n ast.Node, source []byte) []docast.Block {
	plain := strings.TrimSpace(string(n.Text(source)))
	if pageBreakMarkers[plain] {
		return []docast.Block{docast.PageBreak{}}
	}
	if sectionBreakMarkers[plain] {
		return []docast.Block{docast.SectionBreak{SectionKind: docast.SectionBreakNextPage}}
	}

	if img, ok := soleImageChild(n); ok {
		return []docast.Block{docast.Figure{Path: string(img.Destination), Caption: string(img.Title)}}
	}

	inlines := collectInlines(n, source)
	if allPlainText(inlines) {
		var sb strings.Builder
		for _, in := range inlines {
			sb.WriteString(in.Text)
		}
		return []docast.Block{docast.Paragraph{Text: sb.String()}}
	}
	return []docast.Block{docast.Paragraph{Inlines: inlines}}
}

func soleImageChild(n ast.Node) (*ast.Image, bool) {
	first := n.FirstChild()
	if first == nil || first.NextSibling() != nil {
		return nil, false
	}
	img, ok := first.(*ast.Image)
	return img, ok
}

func allPlainText(inlines []docast.Inline) bool {
	for _, in := range inlines {
		if in.Kind != docast.InlineText {
			return false
		}
	}
	return true
}

func collectListItemInlines(item ast.Node, source []byte) []docast.Inline {
	var inlines []docast.Inline
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Kind() == ast.KindParagraph || c.Kind() == ast.KindTextBlock {
			inlines = append(inlines, collectInlines(c, source)...)
		}
	}
	if len(inlines) == 0 {
		if text := strings.TrimSpace(string(item.Text(source))); text != "" {
			inlines = []docast.Inline{{Kind: docast.InlineText, Text: text}}
		}
	}
	return inlines
}

// collectInlines walks the direct inline children of a paragraph/heading-
// like node, mapping the handful of run kinds the renderer understands
// (bold, italic, code, line break) and falling back to plain text for
// anything else (links, autolinks, strikethrough, raw HTML), matching the
// "fallback as text" rule of the parser this was ported from.
func collectInlines(n ast.Node, source []byte) []docast.Inline {
	var out []docast.Inline
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.Kind() {
		case ast.KindText:
			t := c.(*ast.Text)
			out = append(out, docast.Inline{Kind: docast.InlineText, Text: string(t.Segment.Value(source))})
		case ast.KindString:
			s := c.(*ast.String)
			out = append(out, docast.Inline{Kind: docast.InlineText, Text: string(s.Value)})
		case ast.KindEmphasis:
			em := c.(*ast.Emphasis)
			kind := docast.InlineItalic
			if em.Level >= 2 {
				kind = docast.InlineBold
			}
			out = append(out, docast.Inline{Kind: kind, Text: string(c.Text(source))})
		case ast.KindCodeSpan:
			out = append(out, docast.Inline{Kind: docast.InlineCode, Text: string(c.Text(source))})
		default:
			if text := string(c.Text(source)); text != "" {
				out = append(out, docast.Inline{Kind: docast.InlineText, Text: text})
			}
		}
	}
	return out
}

func collectText(n ast.Node, source []byte) string {
	return string(n.Text(source))
}

func convertTable(t *xast.Table, source []byte) docast.Table {
	var rows [][]string
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, strings.TrimSpace(string(cell.Text(source))))
		}
		rows = append(rows, cells)
	}
	return docast.Table{Rows: rows}
}

var bibliographyItemRe = regexp.MustCompile(`^\[\d+\]`)

var referencesHeadings = map[string]bool{
	"参考文献":     true,
	"References": true,
}

// mergeBibliography folds every contiguous "[n] ..." paragraph that
// immediately follows a References/参考文献 level-1 heading into a single
// Bibliography block, the same post-pass the Python generator runs.
func mergeBibliography(blocks []docast.Block) []docast.Block {
	out := make([]docast.Block, 0, len(blocks))
	inRef := false
	var bibItems []string

	flush := func() {
		if len(bibItems) > 0 {
			out = append(out, docast.Bibliography{Items: bibItems})
			bibItems = nil
		}
	}

	for _, b := range blocks {
		if h, ok := b.(docast.Heading); ok && h.Level == 1 && referencesHeadings[strings.TrimSpace(h.Text)] {
			inRef = true
			out = append(out, b)
			continue
		}
		if inRef {
			if p, ok := b.(docast.Paragraph); ok {
				text := strings.TrimSpace(p.Text)
				if bibliographyItemRe.MatchString(text) {
					bibItems = append(bibItems, text)
					continue
				}
			}
			flush()
			inRef = false
		}
		out = append(out, b)
	}
	flush()
	return out
}

var headingNumRe = regexp.MustCompile(`^\s*(\d+)((?:[.．]\d+)*)\s+(.+)$`)

// ParsePlaintext is the fallback for input with no Markdown markup at all:
// lines beginning with "1", "1.1", or "1.1.1" numbering become headings
// (clamped to level 3), blank lines separate paragraphs, and the same
// sentinel markers as Markdown trigger page/section breaks.
func ParsePlaintext(source []byte) (*docast.Document, error) {
	fm, body := splitFrontMatter(string(source))
	lines := strings.Split(body, "\n")

	var blocks []docast.Block
	var paraBuf []string

	flushPara := func() {
		if len(paraBuf) == 0 {
			return
		}
		text := strings.TrimSpace(strings.Join(paraBuf, "\n"))
		if text != "" {
			blocks = append(blocks, docast.Paragraph{Text: text})
		}
		paraBuf = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flushPara()
			continue
		}
		if pageBreakMarkers[trimmed] || trimmed == "---pagebreak---" {
			flushPara()
			blocks = append(blocks, docast.PageBreak{})
			continue
		}
		if sectionBreakMarkers[trimmed] || trimmed == "---sectionbreak---" {
			flushPara()
			blocks = append(blocks, docast.SectionBreak{SectionKind: docast.SectionBreakNextPage})
			continue
		}
		if m := headingNumRe.FindStringSubmatch(line); m != nil {
			flushPara()
			sepCount := strings.Count(m[2], ".") + strings.Count(m[2], "．")
			level := 1 + sepCount
			if level > 3 {
				level = 3
			}
			blocks = append(blocks, docast.Heading{Level: level, Text: strings.TrimSpace(m[3])})
			continue
		}
		paraBuf = append(paraBuf, line)
	}
	flushPara()

	return &docast.Document{
		Meta:   metaFromFrontMatter(fm),
		Blocks: blocks,
	}, nil
}

// DetectInputFormat scores the first 500 runes of text against a handful
// of Markdown indicators (front matter, the ATX heading markers "# ", "## "
// and "### " each counting separately, fenced code, image syntax, table
// pipes). Two or more distinct hits mean Markdown; anything
// else is treated as plaintext. Restored from the compiler this was
// ported from, which never states the heuristic's threshold in its public
// surface despite depending on it whenever input_format is "auto".
func DetectInputFormat(text string) string {
	runes := []rune(text)
	if len(runes) > 500 {
		runes = runes[:500]
	}
	sample := string(runes)

	hits := 0
	if frontMatterFence.MatchString(sample) {
		hits++
	}
	for _, indicator := range []string{"# ", "## ", "### "} {
		if strings.Contains(sample, indicator) {
			hits++
		}
	}
	if strings.Contains(sample, "```") {
		hits++
	}
	if strings.Contains(sample, "![") {
		hits++
	}
	if strings.Contains(sample, "|") && strings.Contains(sample, "\n|") {
		hits++
	}

	if hits >= 2 {
		return "markdown"
	}
	return "plaintext"
}
