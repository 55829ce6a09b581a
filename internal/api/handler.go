package api

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/autobookkeeping/statement-extractor/internal/engine"
	"github.com/autobookkeeping/statement-extractor/internal/extractor"
	"github.com/autobookkeeping/statement-extractor/internal/models"
	"github.com/autobookkeeping/statement-extractor/internal/writer"
)

const version = "1.1.0"

// ConvertResponse is the JSON response from the /api/convert endpoint.
type ConvertResponse struct {
	Success      bool                 `json:"success"`
	Error        string               `json:"error,omitempty"`
	Code         string               `json:"code,omitempty"`
	Bank         string               `json:"bank,omitempty"`
	Transactions []models.Transaction `json:"transactions"`
	Metadata     models.ParseMetadata `json:"metadata"`
	Confidence   float64              `json:"confidence"`
	CSV          string               `json:"csv,omitempty"`
	TotalDebit   decimal.Decimal      `json:"totalDebit"`
	TotalCredit  decimal.Decimal      `json:"totalCredit"`
	Count        int                  `json:"count"`
	RawText      string               `json:"rawText,omitempty"`
	Version      string               `json:"version,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Engine  *engine.Engine
	TempDir string // where uploads are spooled; empty means the OS default
}

// Register sets up the HTTP routes.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.Health)
	app.Post("/api/convert", h.Convert)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": version,
	})
}

func (h *Handler) Convert(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "", "No file uploaded. Use form field 'file'.")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return writeError(c, fiber.StatusBadRequest, "", "Only PDF files are supported.")
	}

	tmpPath := fmt.Sprintf("%s/upload-%s.pdf", tempDir(h.TempDir), sanitizeName(fileHeader.Filename))
	if err := c.SaveFile(fileHeader, tmpPath); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "", "Failed to save uploaded file.")
	}
	defer removeFile(tmpPath)

	src, err := extractor.Open(tmpPath)
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, "", fmt.Sprintf("PDF open failed: %v", err))
	}
	defer src.Close()

	result, err := h.Engine.Extract(c.UserContext(), src)
	if err != nil {
		status, code := extractionStatus(err)
		return writeError(c, status, code, err.Error())
	}

	var csvBuf bytes.Buffer
	w := &writer.CSVWriter{IncludeHeader: c.FormValue("header") != "false"}
	if err := w.Write(&csvBuf, result); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "", fmt.Sprintf("CSV generation failed: %v", err))
	}

	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, txn := range result.Transactions {
		if txn.Direction == models.Debit {
			totalDebit = totalDebit.Add(txn.Amount)
		} else {
			totalCredit = totalCredit.Add(txn.Amount)
		}
	}

	return c.JSON(ConvertResponse{
		Success:      true,
		Bank:         result.BankName,
		Transactions: result.Transactions,
		Metadata:     result.Metadata,
		Confidence:   result.Confidence,
		CSV:          csvBuf.String(),
		TotalDebit:   totalDebit,
		TotalCredit:  totalCredit,
		Count:        len(result.Transactions),
		RawText:      result.RawText,
		Version:      version,
	})
}

// extractionStatus maps engine errors to HTTP status and machine code: an
// image-only document is an unprocessable upload, a duplicate is a conflict
// with the registry's recorded state.
func extractionStatus(err error) (int, string) {
	switch {
	case errors.Is(err, engine.ErrImagePDF):
		return fiber.StatusUnprocessableEntity, "IMAGE_PDF"
	case errors.Is(err, engine.ErrDuplicateFile):
		return fiber.StatusConflict, "DUPLICATE_FILE"
	default:
		return fiber.StatusUnprocessableEntity, ""
	}
}

func writeError(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success:      false,
		Error:        msg,
		Code:         code,
		Transactions: []models.Transaction{},
	})
}
