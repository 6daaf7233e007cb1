package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/insightdelivered/statement-lens/internal/charts"
	"github.com/insightdelivered/statement-lens/internal/extractor"
	"github.com/insightdelivered/statement-lens/internal/ingest"
	"github.com/insightdelivered/statement-lens/internal/logger"
	"github.com/insightdelivered/statement-lens/internal/models"
	"github.com/insightdelivered/statement-lens/internal/summary"
	"github.com/insightdelivered/statement-lens/internal/writer"
)

// ErrorResponse is the body of every failed JSON request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ExtractResponse is the JSON response from /api/extract.
type ExtractResponse struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// ParseResponse is the JSON response from /api/parse.
type ParseResponse struct {
	Success      bool                `json:"success"`
	Format       models.Format       `json:"format"`
	Source       string              `json:"source,omitempty"`
	Count        int                 `json:"count"`
	Transactions []models.Transaction `json:"transactions"`
	Summary      models.Summary      `json:"summary"`
	CSV          string              `json:"csv,omitempty"`
	DebugLines   []models.DebugLine  `json:"debugLines,omitempty"`
	Version      string              `json:"version"`
}

// CompareResponse is the JSON response from /api/compare.
type CompareResponse struct {
	Success    bool              `json:"success"`
	Comparison models.Comparison `json:"comparison"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	ingest    *ingest.Service
	extractor extractor.Extractor
}

// RegisterRoutes sets up the API routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/health", HandleHealth)
	api.Post("/extract", h.HandleExtract)
	api.Post("/parse", h.HandleParse)
	api.Post("/compare", h.HandleCompare)
	api.Post("/chart/:kind", h.HandleChart)
}

// HandleHealth reports liveness.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": Version,
		"engine":  "fiber",
	})
}

// HandleExtract returns the raw text of an uploaded PDF.
func (h *Handler) HandleExtract(c *fiber.Ctx) error {
	doc, err := readUpload(c, "file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ExtractResponse{Error: err.Error()})
	}

	text, err := h.extractor.Extract(c.UserContext(), doc.Content)
	if err != nil {
		log := logger.FromContext(c.UserContext())
		log.Warn().Err(err).Str("source", doc.Name).Msg("extraction failed")
		return c.Status(fiber.StatusInternalServerError).JSON(ExtractResponse{Error: err.Error()})
	}
	return c.JSON(ExtractResponse{Text: text})
}

// HandleParse parses an uploaded file or a pasted "text" field and returns
// the rows with their summary and a CSV rendering.
func (h *Handler) HandleParse(c *fiber.Ctx) error {
	doc, err := documentFromRequest(c)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	st, err := h.ingest.Load(c.UserContext(), doc)
	if err != nil {
		return writeError(c, statusFor(err), err.Error())
	}

	var csvBuf bytes.Buffer
	csvWriter := &writer.CSVWriter{IncludeHeader: c.FormValue("header") != "false"}
	if err := csvWriter.Write(&csvBuf, st); err != nil {
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("CSV generation failed: %v", err))
	}

	// nil marshals to null, clients expect []
	txns := st.Transactions
	if txns == nil {
		txns = []models.Transaction{}
	}

	resp := ParseResponse{
		Success:      true,
		Format:       st.Format,
		Source:       st.Source,
		Count:        len(txns),
		Transactions: txns,
		Summary:      summary.Summarize(txns),
		CSV:          csvBuf.String(),
		Version:      Version,
	}
	if wantDebug(c) {
		resp.DebugLines = st.DebugLines
	}
	return c.JSON(resp)
}

// HandleCompare parses statements A and B and returns their comparison.
func (h *Handler) HandleCompare(c *fiber.Ctx) error {
	a, err := readUpload(c, "fileA")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}
	b, err := readUpload(c, "fileB")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	stA, stB, err := h.ingest.LoadPair(c.UserContext(), a, b)
	if err != nil {
		return writeError(c, statusFor(err), err.Error())
	}

	return c.JSON(CompareResponse{
		Success:    true,
		Comparison: summary.Compare(stA.Transactions, stB.Transactions),
	})
}

// HandleChart renders one chart of an uploaded statement as PNG. kind is
// histogram, categories or merchants.
func (h *Handler) HandleChart(c *fiber.Ctx) error {
	kind := c.Params("kind")
	switch kind {
	case "histogram", "categories", "merchants":
	default:
		return writeError(c, fiber.StatusNotFound, fmt.Sprintf("Unknown chart %q. Use histogram, categories, or merchants.", kind))
	}

	doc, err := documentFromRequest(c)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}
	st, err := h.ingest.Load(c.UserContext(), doc)
	if err != nil {
		return writeError(c, statusFor(err), err.Error())
	}

	s := summary.Summarize(st.Transactions)
	var img []byte
	switch kind {
	case "histogram":
		img, err = charts.Histogram(s.Histogram)
	case "categories":
		img, err = charts.Breakdown("Spending by Category", s.Categories)
	case "merchants":
		img, err = charts.Breakdown("Spending by Merchant", s.Merchants)
	}
	if errors.Is(err, charts.ErrNoData) {
		return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}

	c.Type("png")
	return c.Send(img)
}

// documentFromRequest reads the "file" upload, or the "text" field when no
// file was sent. An optional "format" field overrides detection.
func documentFromRequest(c *fiber.Ctx) (ingest.Document, error) {
	var doc ingest.Document
	if text := c.FormValue("text"); text != "" {
		doc = ingest.Document{Name: "pasted text", Content: []byte(text)}
	} else {
		var err error
		if doc, err = readUpload(c, "file"); err != nil {
			return doc, err
		}
	}

	if f := c.FormValue("format"); f != "" {
		format, ok := models.ParseFormat(f)
		if !ok {
			return doc, fmt.Errorf("Unknown format %q. Use csv, text, or pdf.", f)
		}
		doc.Format = format
	}
	return doc, nil
}

func readUpload(c *fiber.Ctx, field string) (ingest.Document, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return ingest.Document{}, fmt.Errorf("No file uploaded. Use form field '%s'.", field)
	}
	f, err := header.Open()
	if err != nil {
		return ingest.Document{}, fmt.Errorf("Failed to open upload: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return ingest.Document{}, fmt.Errorf("Failed to read upload: %w", err)
	}
	return ingest.Document{Name: header.Filename, Content: content}, nil
}

func wantDebug(c *fiber.Ctx) bool {
	return c.Query("debug") == "true" || c.FormValue("debug") == "true"
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ingest.ErrEmptyDocument), errors.Is(err, ingest.ErrUnsupportedFormat):
		return fiber.StatusBadRequest
	case errors.Is(err, extractor.ErrUnreadable):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{Success: false, Error: msg})
}
