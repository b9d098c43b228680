// Package specprovider supplies the built-in StyleSpec ("Generic_CN" and
// its no-indent variant), validates caller-supplied custom specs, and
// exposes the JSON schema a spec-authoring UI or AI prompt can target.
package specprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vortex/docx-api/internal/aiservice"
	"github.com/vortex/docx-api/internal/chinese"
	"github.com/vortex/docx-api/internal/stylespec"
)

func ptOrPanic(sizeName string) float64 {
	pt, err := chinese.PointsForChineseSize(sizeName)
	if err != nil {
		panic(err)
	}
	return pt
}

func font(eastAsia, latin string) stylespec.FontMapping {
	return stylespec.FontMapping{EastAsia: eastAsia, ASCII: latin, HAnsi: latin}
}

type styleOption struct {
	id, name, chFont, enFont     string
	sizePt                       float64
	bold                         bool
	align                        stylespec.Alignment
	beforePt, afterPt            float64
	beforeLines, afterLines      *float64
	firstIndentChars             float64
	keepWithNext                 bool
	isHeading                    bool
	outlineLevel                 *int
}

func buildStyle(o styleOption) stylespec.StyleDef {
	return stylespec.StyleDef{
		StyleID:      o.id,
		Name:         o.name,
		IsHeading:    o.isHeading,
		OutlineLevel: o.outlineLevel,
		Run: stylespec.StyleRun{
			Bold:   o.bold,
			SizePt: o.sizePt,
			Font:   font(o.chFont, o.enFont),
		},
		Paragraph: stylespec.StyleParagraph{
			Alignment:            o.align,
			LineSpacingRule:      stylespec.LineSpacingSingle,
			SpaceBeforePt:        o.beforePt,
			SpaceAfterPt:         o.afterPt,
			SpaceBeforeLines:     o.beforeLines,
			SpaceAfterLines:      o.afterLines,
			FirstLineIndentChars: o.firstIndentChars,
			KeepWithNext:         o.keepWithNext,
			WidowsControl:        true,
		},
	}
}

func level(n int) *int { return &n }
func half() *float64   { v := 0.5; return &v }

// BuildGenericSpec constructs the built-in "Generic_CN" thesis template:
// A4 page, 25/20/25/20mm margins with a 5mm binding gutter, the full
// front-matter/body/heading/caption/reference style table, three-level
// decimal numbering bound to H1/H2/H3, and roman-then-decimal page
// numbering across the front-matter/main-body section break.
//
// firstLineIndent controls whether the Body style indents its first line
// by two characters; callers that template in pre-indented prose (e.g.
// pasted from a word processor) pass false.
func BuildGenericSpec(firstLineIndent bool) stylespec.StyleSpec {
	song := chinese.DefaultChineseFonts["songti"]
	hei := chinese.DefaultChineseFonts["heiti"]
	fang := chinese.DefaultChineseFonts["fangsong"]
	times := chinese.DefaultEnglishFonts["times"]

	bodyIndent := 0.0
	if firstLineIndent {
		bodyIndent = 2.0
	}

	styles := map[string]stylespec.StyleDef{}
	add := func(o styleOption) {
		styles[o.id] = buildStyle(o)
	}

	add(styleOption{id: "FrontHeading", name: "Front Matter Heading", chFont: hei, enFont: times, sizePt: ptOrPanic("四号"), align: stylespec.AlignCenter})
	add(styleOption{id: "TitleCN", name: "Title CN", chFont: hei, enFont: times, sizePt: ptOrPanic("三号"), align: stylespec.AlignCenter, afterPt: 12})
	add(styleOption{id: "TitleEN", name: "Title EN", chFont: times, enFont: times, sizePt: ptOrPanic("三号"), align: stylespec.AlignCenter, afterPt: 12})
	add(styleOption{id: "MetaLine", name: "Meta Line", chFont: song, enFont: times, sizePt: ptOrPanic("小四"), align: stylespec.AlignCenter})

	add(styleOption{id: "AbstractBody", name: "Abstract Body", chFont: song, enFont: times, sizePt: ptOrPanic("五号"), align: stylespec.AlignJustify})
	add(styleOption{id: "KeywordsBody", name: "Keywords Body", chFont: song, enFont: times, sizePt: ptOrPanic("五号"), align: stylespec.AlignJustify})

	add(styleOption{id: "Body", name: "Body", chFont: song, enFont: times, sizePt: ptOrPanic("小四"), align: stylespec.AlignJustify, firstIndentChars: bodyIndent})

	add(styleOption{id: "ListBullet", name: "List Bullet", chFont: song, enFont: times, sizePt: ptOrPanic("小四"), align: stylespec.AlignJustify})
	add(styleOption{id: "ListNumber", name: "List Number", chFont: song, enFont: times, sizePt: ptOrPanic("小四"), align: stylespec.AlignJustify})

	add(styleOption{id: "PageNumber", name: "Page Number", chFont: song, enFont: times, sizePt: ptOrPanic("五号"), align: stylespec.AlignCenter})

	add(styleOption{id: "H1", name: "Heading Level 1", chFont: fang, enFont: times, sizePt: ptOrPanic("四号"), align: stylespec.AlignLeft, beforeLines: half(), afterLines: half(), keepWithNext: true, isHeading: true, outlineLevel: level(0)})
	add(styleOption{id: "H2", name: "Heading Level 2", chFont: hei, enFont: times, sizePt: ptOrPanic("小四"), align: stylespec.AlignLeft, keepWithNext: true, isHeading: true, outlineLevel: level(1)})
	add(styleOption{id: "H3", name: "Heading Level 3", chFont: fang, enFont: times, sizePt: ptOrPanic("小四"), align: stylespec.AlignLeft, keepWithNext: true, isHeading: true, outlineLevel: level(2)})

	add(styleOption{id: "Figure", name: "Figure", chFont: song, enFont: times, sizePt: ptOrPanic("小四"), align: stylespec.AlignCenter})
	add(styleOption{id: "FigureCaption", name: "Figure Caption", chFont: hei, enFont: times, sizePt: ptOrPanic("小五"), align: stylespec.AlignCenter, beforePt: 6, afterPt: 6})
	add(styleOption{id: "TableTitle", name: "Table Title", chFont: hei, enFont: times, sizePt: ptOrPanic("小五"), align: stylespec.AlignCenter, beforePt: 6, afterPt: 6})
	add(styleOption{id: "TableText", name: "Table Text", chFont: song, enFont: times, sizePt: ptOrPanic("六号"), align: stylespec.AlignCenter})

	add(styleOption{id: "Reference", name: "Reference", chFont: song, enFont: times, sizePt: ptOrPanic("五号"), align: stylespec.AlignJustify})

	return stylespec.StyleSpec{
		Meta: map[string]string{"name": "Generic_CN", "version": "1.0", "notes": "generic Chinese thesis layout"},
		Page: stylespec.PageSpec{
			Size:      "A4",
			MarginsMM: stylespec.MarginMM{Top: 25, Bottom: 20, Left: 25, Right: 20, Binding: 5},
			HeaderMM:  15,
			FooterMM:  15,
		},
		Styles: styles,
		Numbering: &stylespec.NumberingSpec{
			AbstractNumID: 1,
			NumID:         1,
			Levels: []stylespec.NumberingLevel{
				{Level: 0, StyleID: "H1", Start: 1, Format: "decimal", LvlText: "%1", Suffix: "space"},
				{Level: 1, StyleID: "H2", Start: 1, Format: "decimal", LvlText: "%1．%2", Suffix: "space"},
				{Level: 2, StyleID: "H3", Start: 1, Format: "decimal", LvlText: "%1．%2．%3", Suffix: "space"},
			},
		},
		Structure: stylespec.StructureSpec{
			RequiredH1Titles: []string{"摘要", "Abstract", "引言", "致谢", "参考文献"},
			TOCMaxLevel:      3,
		},
		ForbiddenDirectFormatting: stylespec.DefaultForbiddenDirectFormatting(),
		PageNumbering: &stylespec.PageNumberingSpec{
			Enabled:         true,
			FrontFormat:     stylespec.PageNumRomanUpper,
			FrontStart:      1,
			MainFormat:      stylespec.PageNumDecimal,
			MainStart:       1,
			ShowInFooter:    true,
			FooterAlignment: stylespec.AlignCenter,
		},
		AutoPrefixAbstractKeywords: true,
		AutoNumberFiguresTables:    true,
	}
}

// BuiltinSpecs returns every spec this compiler ships out of the box,
// keyed by the name a caller passes as spec_name.
func BuiltinSpecs() map[string]stylespec.StyleSpec {
	return map[string]stylespec.StyleSpec{
		"Generic_CN":          BuildGenericSpec(true),
		"Generic_CN_NoIndent": BuildGenericSpec(false),
	}
}

// ValidateCustomSpec decodes and validates a caller-supplied StyleSpec,
// the entry point the HTTP surface uses before accepting a custom spec
// upload.
func ValidateCustomSpec(data []byte) (*stylespec.StyleSpec, error) {
	spec, err := stylespec.ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("specprovider: validate custom spec: %w", err)
	}
	return spec, nil
}

// ExportSpecToJSON serializes a StyleSpec the way a spec-editing client
// expects to receive it back.
func ExportSpecToJSON(spec *stylespec.StyleSpec) ([]byte, error) {
	return spec.ToJSON()
}

const generateSpecSystemPrompt = `You draft a document style spec as strict JSON matching this Go-native shape: {"page":{"size":"A4","margins_mm":{"top":0,"bottom":0,"left":0,"right":0,"binding":0},"header_mm":0,"footer_mm":0},"styles":{"<style_id>":{"style_id":"<style_id>","name":"","is_heading":false,"run":{"bold":false,"italic":false,"underline":false,"size_pt":0,"font":{"eastAsia":"","ascii":"","hAnsi":""}},"paragraph":{"alignment":"left|center|right|justify","line_spacing_rule":"single|1.5|double|exact","space_before_pt":0,"space_after_pt":0,"first_line_indent_chars":0,"hanging_indent_chars":0,"keep_with_next":false,"keep_lines":false,"page_break_before":false,"widows_control":true}}},"structure":{"required_h1_titles":[],"toc_max_level":3},"forbidden_direct_formatting":{"font":true,"size":true,"bold":true,"italic":true,"underline":true,"color":true}}. Every styles map key must equal its style_id. Reply with the JSON object only, no prose, no markdown code fence.`

// AIGenerateSpec implements the ai_generate_spec contract of §4.3: it
// prompts ai for a strict-JSON StyleSpec drafted from requirements, strips
// an optional ```json fence the model adds despite being asked not to, and
// type-checks the result through the same stylespec.ParseJSON path a
// human-submitted custom spec goes through. Callers should fall back to a
// built-in spec (BuildGenericSpec) on any error, per §4.8's AI-fallback
// policy — this function never does that itself, so callers can log or
// annotate the fallback the way the compiler's own AI path does.
func AIGenerateSpec(ctx context.Context, requirements string, ai aiservice.Service) (*stylespec.StyleSpec, error) {
	if ai == nil {
		return nil, fmt.Errorf("specprovider: no AI service configured")
	}
	reply, err := ai.Complete(ctx, []aiservice.Message{
		{Role: aiservice.RoleSystem, Content: generateSpecSystemPrompt},
		{Role: aiservice.RoleUser, Content: requirements},
	})
	if err != nil {
		return nil, fmt.Errorf("specprovider: ai spec generation: %w", err)
	}

	spec, err := stylespec.ParseJSON([]byte(stripCodeFence(reply)))
	if err != nil {
		return nil, fmt.Errorf("specprovider: ai spec generation returned an invalid spec: %w", err)
	}
	return spec, nil
}

// stripCodeFence removes a leading/trailing ```json ... ``` or ``` ... ```
// wrapper a model adds around its JSON reply despite being asked for bare
// JSON, the same tolerant unwrapping every AI-facing JSON consumer in this
// compiler applies before attempting to decode.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.Contains(s[:nl], "{") {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// specSchema is a minimal, hand-maintained description of the shape
// ValidateCustomSpec expects — not a generated json-schema, since this
// package has no schema-generation library to wire (see DESIGN.md).
type specSchema struct {
	Page                      string `json:"page"`
	Styles                    string `json:"styles"`
	Numbering                 string `json:"numbering,omitempty"`
	Structure                 string `json:"structure"`
	ForbiddenDirectFormatting string `json:"forbidden_direct_formatting"`
	PageNumbering             string `json:"page_numbering,omitempty"`
}

// GetSpecSchema returns a JSON document describing the StyleSpec shape,
// for a client that wants to validate or scaffold a custom spec before
// submitting it.
func GetSpecSchema() ([]byte, error) {
	schema := specSchema{
		Page:                      "PageSpec: size, margins_mm{top,bottom,left,right,binding}, header_mm, footer_mm",
		Styles:                    "map[style_id]StyleDef{style_id,name,based_on?,is_heading,outline_level?,run,paragraph}",
		Numbering:                 "NumberingSpec{abstract_num_id,num_id,levels[]NumberingLevel}",
		Structure:                 "StructureSpec{required_h1_titles[],toc_max_level}",
		ForbiddenDirectFormatting: "ForbiddenDirectFormatting{font,size,bold,italic,underline,color}",
		PageNumbering:             "PageNumberingSpec{enabled,front_format,front_start,main_format,main_start,show_in_footer,footer_alignment}",
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("specprovider: marshal schema: %w", err)
	}
	return data, nil
}
