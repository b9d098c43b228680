package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/vortex/docx-api/internal/aiservice"
	"github.com/vortex/docx-api/internal/compiler"
	"github.com/vortex/docx-api/internal/docxextract"
	"github.com/vortex/docx-api/internal/jobmanager"
	"github.com/vortex/docx-api/internal/quota"
	"github.com/vortex/docx-api/internal/specprovider"
	"github.com/vortex/docx-api/internal/stylespec"
	"github.com/vortex/docx-api/pkg/response"
)

// FormatHandler serves the two job-creating endpoints, /format/text and
// /format/file: both resolve a StyleSpec, enqueue a jobmanager.Job, and
// kick off its compiler run in a new goroutine, returning immediately with
// the job's id.
type FormatHandler struct {
	logger  *slog.Logger
	jobs    *jobmanager.Manager
	quota   *quota.Tracker
	ai      aiservice.Service
	maxSize int64 // bytes; 0 = unlimited.
}

// NewFormatHandler constructs a FormatHandler. maxUploadBytes caps
// /format/file's multipart body; 0 disables the cap.
func NewFormatHandler(logger *slog.Logger, jobs *jobmanager.Manager, tracker *quota.Tracker, ai aiservice.Service, maxUploadBytes int64) *FormatHandler {
	return &FormatHandler{logger: logger, jobs: jobs, quota: tracker, ai: ai, maxSize: maxUploadBytes}
}

type textFormatRequest struct {
	Text             string          `json:"text"`
	InputFormat      string          `json:"input_format"`
	SpecName         string          `json:"spec_name"`
	CustomSpecJSON   json.RawMessage `json:"custom_spec_json"`
	IncludeCover     bool            `json:"include_cover"`
	IncludeTOC       bool            `json:"include_toc"`
	TOCTitle         string          `json:"toc_title"`
	UseAIRecognition bool            `json:"use_ai_recognition"`
}

// Text handles POST /format/text?card_key=….
func (h *FormatHandler) Text(w http.ResponseWriter, r *http.Request) {
	cardKey := r.URL.Query().Get("card_key")
	if cardKey == "" {
		response.Error(w, http.StatusUnauthorized, "card_key is required")
		return
	}

	var req textFormatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		response.Error(w, http.StatusBadRequest, "text is required")
		return
	}

	spec, err := resolveRequestedSpec(req.SpecName, req.CustomSpecJSON)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, ok := h.quota.TryConsume(cardKey); !ok {
		response.Error(w, http.StatusForbidden, "quota exhausted")
		return
	}

	opts := compiler.Options{
		InputFormat:  req.InputFormat,
		CustomSpec:   spec,
		IncludeCover: req.IncludeCover,
		IncludeTOC:   req.IncludeTOC,
		TOCTitle:     req.TOCTitle,
	}
	h.enqueue(w, cardKey, []byte(req.Text), "", opts, req.UseAIRecognition)
}

var supportedUploadExts = map[string]bool{
	".docx": true, ".txt": true, ".md": true, ".markdown": true,
}

// File handles POST /format/file?card_key=…: a multipart upload whose
// "file" field is a .docx, .txt, .md, or .markdown. A .docx upload has its
// text extracted first (docxextract, C1's sibling for reading arbitrary
// uploaded documents rather than ones this compiler produced itself); a
// .txt upload is decoded as UTF-8, falling back to GBK, the common
// encoding a Chinese-authored document typically escapes as.
func (h *FormatHandler) File(w http.ResponseWriter, r *http.Request) {
	cardKey := r.URL.Query().Get("card_key")
	if cardKey == "" {
		response.Error(w, http.StatusUnauthorized, "card_key is required")
		return
	}

	if h.maxSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxSize)
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		response.Error(w, http.StatusBadRequest, "upload too large or malformed: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !supportedUploadExts[ext] {
		response.Error(w, http.StatusBadRequest, "unsupported file extension "+ext)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "failed to read upload: "+err.Error())
		return
	}

	text, inputFormat, err := decodeUpload(ext, data)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	spec, err := resolveRequestedSpec(r.FormValue("spec_name"), json.RawMessage(r.FormValue("custom_spec_json")))
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, ok := h.quota.TryConsume(cardKey); !ok {
		response.Error(w, http.StatusForbidden, "quota exhausted")
		return
	}

	opts := compiler.Options{
		InputFormat:  inputFormat,
		CustomSpec:   spec,
		IncludeCover: formValueBool(r, "include_cover"),
		IncludeTOC:   formValueBool(r, "include_toc"),
		TOCTitle:     r.FormValue("toc_title"),
	}
	h.enqueue(w, cardKey, []byte(text), header.Filename, opts, formValueBool(r, "use_ai_recognition"))
}

func formValueBool(r *http.Request, key string) bool {
	v := strings.ToLower(strings.TrimSpace(r.FormValue(key)))
	return v == "1" || v == "true" || v == "yes"
}

func decodeUpload(ext string, data []byte) (text, inputFormat string, err error) {
	switch ext {
	case ".docx":
		t, err := docxextract.Text(data)
		if err != nil {
			return "", "", err
		}
		return t, "plaintext", nil
	case ".md", ".markdown":
		return decodeText(data), "markdown", nil
	default: // .txt
		return decodeText(data), "", nil
	}
}

// decodeText decodes data as UTF-8; if it is not valid UTF-8, it falls
// back to GBK, the encoding a Chinese word processor's plain-text export
// commonly produces.
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := simplifiedchinese.GBK.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

func resolveRequestedSpec(specName string, customSpecJSON json.RawMessage) (*stylespec.StyleSpec, error) {
	if len(customSpecJSON) > 0 && string(customSpecJSON) != "null" {
		return specprovider.ValidateCustomSpec(customSpecJSON)
	}
	if specName == "" {
		return nil, nil
	}
	builtins := specprovider.BuiltinSpecs()
	spec, ok := builtins[specName]
	if !ok {
		return nil, errUnknownSpec(specName)
	}
	return &spec, nil
}

type errUnknownSpec string

func (e errUnknownSpec) Error() string { return "unknown spec_name " + string(e) }

func (h *FormatHandler) enqueue(w http.ResponseWriter, cardKey string, inputText []byte, fileName string, opts compiler.Options, useAI bool) {
	if opts.CustomSpec != nil {
		opts.SpecName = ""
	}
	job := h.jobs.Submit(cardKey, inputText, fileName, opts, useAI)
	h.logger.Info("job created", slog.String("job_id", job.ID), slog.Bool("use_ai", useAI))

	go h.jobs.RunJob(context.Background(), job.ID)

	response.JSON(w, http.StatusAccepted, map[string]any{
		"job_id":  job.ID,
		"status":  string(jobmanager.StatusPending),
		"message": "job enqueued",
	})
}
