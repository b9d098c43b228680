package compiler

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vortex/docx-api/internal/aiservice"
	"github.com/vortex/docx-api/internal/docast"
	"github.com/vortex/docx-api/internal/specprovider"
	"github.com/vortex/docx-api/internal/stylespec"
)

// classifyParagraphTypesPrompt asks the model to relabel ambiguous plain
// paragraphs (ones the deterministic parser had no markup to go on, such
// as a plaintext-sourced line that reads like a section title but carries
// no numbering) as either body text or a heading depth. It is deliberately
// narrow: the model never invents new block types, only promotes a
// Paragraph to a Heading the renderer already knows how to style.
const classifyParagraphTypesPrompt = `You classify thesis document paragraphs. For each numbered line below, reply with one label per line, in order, chosen from: body, heading1, heading2, heading3. A line is a heading only if it reads as a standalone section title, not a sentence of prose. Reply with labels only, one per line, no explanation.`

// classifyParagraphsWithAI asks ai to promote ambiguous Paragraph blocks
// (short lines with no terminal punctuation, which the deterministic
// plaintext parser could not distinguish from an unnumbered heading) to
// Heading blocks. A failed or malformed AI response leaves doc untouched:
// the deterministic parse already produced a valid document, so this step
// is pure enrichment, never a dependency.
func classifyParagraphsWithAI(ctx context.Context, ai aiservice.Service, doc *docast.Document) {
	if ai == nil {
		return
	}
	type candidate struct {
		index int
		text  string
	}
	var candidates []candidate
	for i, b := range doc.Blocks {
		p, ok := b.(docast.Paragraph)
		if !ok {
			continue
		}
		if looksAmbiguous(p.Text) {
			candidates = append(candidates, candidate{index: i, text: p.Text})
		}
	}
	if len(candidates) == 0 {
		return
	}

	var prompt strings.Builder
	prompt.WriteString(classifyParagraphTypesPrompt)
	for i, c := range candidates {
		fmt.Fprintf(&prompt, "\n%d. %s", i+1, c.text)
	}

	reply, err := ai.Complete(ctx, []aiservice.Message{
		{Role: aiservice.RoleSystem, Content: "You are a document structure classifier. You never add commentary."},
		{Role: aiservice.RoleUser, Content: prompt.String()},
	})
	if err != nil {
		return
	}

	labels := strings.Split(strings.TrimSpace(reply), "\n")
	if len(labels) != len(candidates) {
		return
	}
	headingLevel := map[string]int{"heading1": 1, "heading2": 2, "heading3": 3}
	for i, c := range candidates {
		label := strings.ToLower(strings.TrimSpace(labels[i]))
		if level, ok := headingLevel[label]; ok {
			doc.Blocks[c.index] = docast.Heading{Level: level, Text: c.text}
		}
	}
}

// looksAmbiguous flags short lines the deterministic parser treats as
// ordinary paragraphs but that an AI classifier might recognize as
// headings: no terminal punctuation, under 20 runes.
func looksAmbiguous(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	runes := []rune(trimmed)
	if len(runes) >= 20 {
		return false
	}
	last := runes[len(runes)-1]
	switch last {
	case '.', '!', '?', '。', '，', ',':
		return false
	}
	return true
}

const generateSpecPrompt = `You draft a document style spec as JSON. Given the following source text, reply with ONLY a JSON object with one key "base" whose value is either "Generic_CN" or "Generic_CN_NoIndent", choosing NoIndent only if the source's paragraphs already look indented by hand. Reply with JSON only.`

// generateSpecWithAI asks ai to pick between the built-in spec variants
// based on the source prose, the only spec-generation decision this
// compiler lets a model make; it never asks the model to invent raw
// StyleSpec fields, since a malformed numeric field would be silently
// wrong rather than loudly rejected.
func generateSpecWithAI(ctx context.Context, ai aiservice.Service, sourceText []byte) (*stylespec.StyleSpec, error) {
	if ai == nil {
		return nil, fmt.Errorf("compiler: no AI service configured")
	}
	sample := sourceText
	if len(sample) > 2000 {
		sample = sample[:2000]
	}
	reply, err := ai.Complete(ctx, []aiservice.Message{
		{Role: aiservice.RoleSystem, Content: "You output strict JSON and nothing else."},
		{Role: aiservice.RoleUser, Content: generateSpecPrompt + "\n\n" + string(sample)},
	})
	if err != nil {
		return nil, fmt.Errorf("compiler: ai spec generation: %w", err)
	}

	var decoded struct {
		Base string `json:"base"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(reply)), &decoded); err != nil {
		return nil, fmt.Errorf("compiler: ai spec generation returned malformed JSON: %w", err)
	}

	builtins := specprovider.BuiltinSpecs()
	spec, ok := builtins[decoded.Base]
	if !ok {
		return nil, fmt.Errorf("compiler: ai spec generation chose unknown base %q", decoded.Base)
	}
	return &spec, nil
}
