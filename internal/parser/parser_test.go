package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vortex/docx-api/internal/docast"
)

func TestParseMarkdownHeadingsAndParagraphs(t *testing.T) {
	t.Parallel()
	doc, err := ParseMarkdown([]byte("# 引言\n\nHello world.\n"))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 2)

	h, ok := doc.Blocks[0].(docast.Heading)
	require.True(t, ok)
	require.Equal(t, 1, h.Level)
	require.Equal(t, "引言", h.Text)

	p, ok := doc.Blocks[1].(docast.Paragraph)
	require.True(t, ok)
	require.Equal(t, "Hello world.", p.Text)
}

func TestParseMarkdownFrontMatter(t *testing.T) {
	t.Parallel()
	src := "---\ntitle_cn: 论文标题\nauthor: 张三\n---\n\n# 摘要\n"
	doc, err := ParseMarkdown([]byte(src))
	require.NoError(t, err)
	require.Equal(t, "论文标题", doc.Meta.TitleCN)
	require.Equal(t, "张三", doc.Meta.Author)
}

func TestParseMarkdownBoldItalic(t *testing.T) {
	t.Parallel()
	doc, err := ParseMarkdown([]byte("plain **bold** and *italic* text\n"))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)

	p, ok := doc.Blocks[0].(docast.Paragraph)
	require.True(t, ok)
	require.NotEmpty(t, p.Inlines)

	var sawBold, sawItalic bool
	for _, in := range p.Inlines {
		switch in.Kind {
		case docast.InlineBold:
			sawBold = true
		case docast.InlineItalic:
			sawItalic = true
		}
	}
	require.True(t, sawBold, "expected a bold inline")
	require.True(t, sawItalic, "expected an italic inline")
}

func TestParseMarkdownPageBreakSentinel(t *testing.T) {
	t.Parallel()
	doc, err := ParseMarkdown([]byte("before\n\n[[PAGEBREAK]]\n\nafter\n"))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 3)
	_, ok := doc.Blocks[1].(docast.PageBreak)
	require.True(t, ok)
}

func TestParseMarkdownBibliographyMerge(t *testing.T) {
	t.Parallel()
	src := "# 参考文献\n\n[1] Author, Title.\n\n[2] Author2, Title2.\n"
	doc, err := ParseMarkdown([]byte(src))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 2)

	bib, ok := doc.Blocks[1].(docast.Bibliography)
	require.True(t, ok)
	require.Len(t, bib.Items, 2)
}

func TestParseMarkdownTable(t *testing.T) {
	t.Parallel()
	src := "| a | b |\n| --- | --- |\n| 1 | 2 |\n"
	doc, err := ParseMarkdown([]byte(src))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)

	tbl, ok := doc.Blocks[0].(docast.Table)
	require.True(t, ok)
	require.Equal(t, [][]string{{"a", "b"}, {"1", "2"}}, tbl.Rows)
}

func TestParsePlaintextHeadingLevels(t *testing.T) {
	t.Parallel()
	src := "1 引言\n\nhello\n\n1.1 背景\n\nworld\n"
	doc, err := ParsePlaintext([]byte(src))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 4)

	h1, ok := doc.Blocks[0].(docast.Heading)
	require.True(t, ok)
	require.Equal(t, 1, h1.Level)

	h2, ok := doc.Blocks[2].(docast.Heading)
	require.True(t, ok)
	require.Equal(t, 2, h2.Level)
}

func TestParsePlaintextHeadingLevelClampedAtThree(t *testing.T) {
	t.Parallel()
	doc, err := ParsePlaintext([]byte("1.1.1.1 deep heading\n"))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)
	h, ok := doc.Blocks[0].(docast.Heading)
	require.True(t, ok)
	require.Equal(t, 3, h.Level)
}

func TestDetectInputFormat(t *testing.T) {
	t.Parallel()
	require.Equal(t, "markdown", DetectInputFormat("# Title\n\n## Section\n"))
	require.Equal(t, "plaintext", DetectInputFormat("just some plain prose with no markup at all"))
}
