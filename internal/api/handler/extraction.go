package handler

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KeithDimech1/Thermo-App-sub001/config"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/model/dto"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/pkg/response"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/service"
)

type ExtractionHandler struct {
	extractionService *service.ExtractionService
	cfg               *config.Config
}

func NewExtractionHandler(extractionService *service.ExtractionService, cfg *config.Config) *ExtractionHandler {
	return &ExtractionHandler{
		extractionService: extractionService,
		cfg:               cfg,
	}
}

// Upload accepts a PDF and creates an extraction session.
// POST /api/extraction/upload
func (h *ExtractionHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, "a file upload is required")
		return
	}
	defer file.Close()

	if header.Size > h.cfg.Upload.MaxSize {
		response.BadRequest(c, service.ErrFileTooLarge.Error())
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, allowedExt := range h.cfg.Upload.AllowedExtensions {
		if ext == allowedExt {
			allowed = true
			break
		}
	}
	if !allowed {
		response.BadRequest(c, service.ErrInvalidFormat.Error())
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		response.ServerError(c, "failed to read upload")
		return
	}

	resp, err := h.extractionService.Upload(header.Filename, data)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, resp)
}

// Get returns the session row and its extracted tables, for polling.
// GET /api/extraction/:sessionId
func (h *ExtractionHandler) Get(c *gin.Context) {
	sessionID := c.Param("sessionId")

	session, tables, err := h.extractionService.GetSession(sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.NotFound(c, "session not found")
			return
		}
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"session": session,
		"tables":  tables,
	})
}

// Analyze runs the paper analysis step.
// POST /api/extraction/:sessionId/analyze
func (h *ExtractionHandler) Analyze(c *gin.Context) {
	sessionID := c.Param("sessionId")

	resp, err := h.extractionService.Analyze(c.Request.Context(), sessionID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, resp)
}

// Extract runs the retry-controlled extraction of one table.
// POST /api/extraction/:sessionId/extract
func (h *ExtractionHandler) Extract(c *gin.Context) {
	sessionID := c.Param("sessionId")

	var req dto.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.extractionService.Extract(c.Request.Context(), sessionID, req.Table)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, resp)
}

// Import finalizes an extracted session into a dataset.
// POST /api/extraction/:sessionId/import
func (h *ExtractionHandler) Import(c *gin.Context) {
	sessionID := c.Param("sessionId")

	var req dto.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.extractionService.Import(c.Request.Context(), sessionID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, resp)
}

func (h *ExtractionHandler) writeError(c *gin.Context, err error) {
	var stateErr *service.InvalidStateError
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, "session not found")
	case errors.As(err, &stateErr):
		response.BadRequest(c, stateErr.Error())
	case errors.Is(err, service.ErrNoTables):
		response.BadRequest(c, err.Error())
	default:
		response.ServerError(c, err.Error())
	}
}
