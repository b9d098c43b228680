// Package compiler implements C9: it orchestrates the parser (C3), spec
// provider (C4), template emitter (C5), renderer (C6), validator (C7), and
// fixer (C8) into the phase sequence parse -> spec -> template -> render ->
// validate -> fix? -> done, publishing a Progress event at every phase
// transition. Two entry points are exposed: CompileDocument (synchronous,
// deterministic) and CompileDocumentWithAI (identical, but paragraph
// classification and spec selection may consult an aiservice.Service,
// falling back to the non-AI pipeline once on failure).
package compiler

import (
	"context"
	"fmt"

	"github.com/vortex/docx-api/internal/aiservice"
	"github.com/vortex/docx-api/internal/docast"
	"github.com/vortex/docx-api/internal/fixer"
	"github.com/vortex/docx-api/internal/parser"
	"github.com/vortex/docx-api/internal/renderer"
	"github.com/vortex/docx-api/internal/specprovider"
	"github.com/vortex/docx-api/internal/stylespec"
	"github.com/vortex/docx-api/internal/templateemitter"
	"github.com/vortex/docx-api/internal/validator"
	"github.com/vortex/docx-api/internal/valreport"
)

// Phase names the compiler's fixed pipeline stages, in the order they run.
type Phase string

const (
	PhaseParse    Phase = "parse"
	PhaseSpec     Phase = "spec"
	PhaseTemplate Phase = "template"
	PhaseRender   Phase = "render"
	PhaseValidate Phase = "validate"
	PhaseFix      Phase = "fix"
	PhaseDone     Phase = "done"
)

// Progress is one phase-transition event. Fraction is in [0,1] and measures
// progress within the event's own phase: it starts again at 0 for each
// phase, so it is not monotonic across a single compile call.
type Progress struct {
	Phase    Phase          `json:"phase"`
	Fraction float64        `json:"fraction"`
	Message  string         `json:"message"`
	Detail   map[string]any `json:"detail,omitempty"`
}

// ProgressFunc receives every Progress event a compile call publishes. A
// nil ProgressFunc is valid; the compiler simply does not call it.
type ProgressFunc func(Progress)

func emit(cb ProgressFunc, phase Phase, fraction float64, message string, detail map[string]any) {
	if cb == nil {
		return
	}
	cb(Progress{Phase: phase, Fraction: fraction, Message: message, Detail: detail})
}

// Options controls the optional structural insertions and input-format
// handling a compile call applies.
type Options struct {
	InputFormat string // "markdown", "plaintext", or "" for auto-detect.
	SpecName    string // a specprovider.BuiltinSpecs() key; ignored if CustomSpec is set.
	CustomSpec  *stylespec.StyleSpec
	IncludeCover bool
	IncludeTOC   bool
	TOCTitle     string
}

func (o Options) rendererOptions() renderer.Options {
	return renderer.Options{IncludeCover: o.IncludeCover, IncludeTOC: o.IncludeTOC, TOCTitle: o.TOCTitle}
}

// Result is the outcome of one compile call. On Success, OutputDocx and
// Report are populated; on failure, Error names what went wrong and
// Warnings still carries whatever non-fatal findings accumulated before
// the failure.
type Result struct {
	Success    bool            `json:"success"`
	OutputDocx []byte          `json:"-"`
	Report     *valreport.Report `json:"report,omitempty"`
	Warnings   []string        `json:"warnings,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// DefaultMaxFixIterations bounds how many validate/fix round trips CompileDocument
// runs before giving up and surfacing remaining errors as warnings.
const DefaultMaxFixIterations = 3

// CompileDocument runs the deterministic pipeline: no AI service is
// consulted at any phase.
func CompileDocument(sourceText []byte, opts Options, maxFixIterations int, cb ProgressFunc) Result {
	return compile(context.Background(), sourceText, opts, maxFixIterations, aiservice.Unconfigured{}, false, cb)
}

// CompileDocumentWithAI runs the same pipeline, but the parser may consult
// ai to classify ambiguous paragraphs and, when opts.SpecName/CustomSpec
// are both empty, the spec provider may ask ai to draft a StyleSpec from
// the source prose. A failure anywhere in the AI-assisted path falls back
// to the non-AI pipeline exactly once, with the fallback noted in
// Result.Warnings, before a second failure is surfaced as Result.Error.
func CompileDocumentWithAI(ctx context.Context, sourceText []byte, opts Options, maxFixIterations int, ai aiservice.Service, cb ProgressFunc) Result {
	result := compile(ctx, sourceText, opts, maxFixIterations, ai, true, cb)
	if result.Success || ai == nil {
		return result
	}
	fallback := compile(ctx, sourceText, opts, maxFixIterations, aiservice.Unconfigured{}, false, cb)
	fallback.Warnings = append(fallback.Warnings, fmt.Sprintf("AI-assisted compile failed (%s); fell back to deterministic pipeline", result.Error))
	return fallback
}

func compile(ctx context.Context, sourceText []byte, opts Options, maxFixIterations int, ai aiservice.Service, useAI bool, cb ProgressFunc) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = Result{Success: false, Error: fmt.Sprintf("internal error: %v", r)}
		}
	}()
	if maxFixIterations <= 0 {
		maxFixIterations = DefaultMaxFixIterations
	}
	var warnings []string

	// parse
	emit(cb, PhaseParse, 0.0, "parsing input", nil)
	doc, err := runParse(ctx, sourceText, opts, ai, useAI)
	if err != nil {
		return Result{Success: false, Error: fmt.Sprintf("parse: %v", err), Warnings: warnings}
	}
	if err := doc.Validate(); err != nil {
		return Result{Success: false, Error: fmt.Sprintf("parse: %v", err), Warnings: warnings}
	}
	emit(cb, PhaseParse, 1.0, "parsed input", map[string]any{"blocks": len(doc.Blocks)})

	// spec
	emit(cb, PhaseSpec, 0.0, "resolving style spec", nil)
	spec, err := resolveSpec(ctx, sourceText, opts, ai, useAI)
	if err != nil {
		return Result{Success: false, Error: fmt.Sprintf("spec: %v", err), Warnings: warnings}
	}
	emit(cb, PhaseSpec, 1.0, "style spec resolved", nil)

	// template
	emit(cb, PhaseTemplate, 0.0, "building reference template", nil)
	reference, err := templateemitter.BuildReferenceDocx(spec)
	if err != nil {
		return Result{Success: false, Error: fmt.Sprintf("template: %v", err), Warnings: warnings}
	}
	emit(cb, PhaseTemplate, 1.0, "reference template built", nil)

	// render
	emit(cb, PhaseRender, 0.0, "rendering document", nil)
	docxBytes, err := renderer.Render(doc, spec, reference, opts.rendererOptions())
	if err != nil {
		return Result{Success: false, Error: fmt.Sprintf("render: %v", err), Warnings: warnings}
	}
	emit(cb, PhaseRender, 1.0, "document rendered", nil)

	// validate / fix loop
	var report valreport.Report
	for iteration := 0; iteration < maxFixIterations; iteration++ {
		fraction := float64(iteration) / float64(maxFixIterations)
		emit(cb, PhaseValidate, fraction, "validating", map[string]any{"iteration": iteration})
		report, err = runValidate(docxBytes, spec)
		if err != nil {
			return Result{Success: false, Error: fmt.Sprintf("validate: %v", err), Warnings: warnings}
		}
		emit(cb, PhaseValidate, fraction+1.0/float64(maxFixIterations)/2, "validated", map[string]any{
			"iteration": iteration, "ok": report.Summary.OK, "errors": report.Summary.Errors,
		})
		if report.Summary.OK {
			break
		}
		emit(cb, PhaseFix, fraction, "applying fixes", map[string]any{"iteration": iteration})
		fixed, err := fixer.FixDocx(docxBytes, report, spec)
		if err != nil {
			return Result{Success: false, Error: fmt.Sprintf("fix: %v", err), Warnings: warnings}
		}
		docxBytes = fixed
	}

	if !report.Summary.OK {
		for _, v := range report.Violations {
			if v.Severity == valreport.SeverityError {
				warnings = append(warnings, fmt.Sprintf("unresolved after %d fix iterations: %s", maxFixIterations, v.Message))
			}
		}
	}

	emit(cb, PhaseDone, 1.0, "compile complete", nil)
	reportCopy := report
	return Result{Success: true, OutputDocx: docxBytes, Report: &reportCopy, Warnings: warnings}
}

func runParse(ctx context.Context, sourceText []byte, opts Options, ai aiservice.Service, useAI bool) (*docast.Document, error) {
	format := opts.InputFormat
	if format == "" {
		format = parser.DetectInputFormat(string(sourceText))
	}

	var (
		doc *docast.Document
		err error
	)
	switch format {
	case "markdown":
		doc, err = parser.ParseMarkdown(sourceText)
	default:
		doc, err = parser.ParsePlaintext(sourceText)
	}
	if err != nil {
		return nil, err
	}

	if useAI {
		classifyParagraphsWithAI(ctx, ai, doc)
	}
	return doc, nil
}

func resolveSpec(ctx context.Context, sourceText []byte, opts Options, ai aiservice.Service, useAI bool) (*stylespec.StyleSpec, error) {
	if opts.CustomSpec != nil {
		return opts.CustomSpec, nil
	}
	if opts.SpecName != "" {
		builtins := specprovider.BuiltinSpecs()
		spec, ok := builtins[opts.SpecName]
		if !ok {
			return nil, fmt.Errorf("unknown spec_name %q", opts.SpecName)
		}
		return &spec, nil
	}
	if useAI {
		if spec, err := generateSpecWithAI(ctx, ai, sourceText); err == nil {
			return spec, nil
		}
	}
	spec := specprovider.BuildGenericSpec(true)
	return &spec, nil
}

func runValidate(docxBytes []byte, spec *stylespec.StyleSpec) (valreport.Report, error) {
	return validator.ValidateBytes(docxBytes, spec)
}
