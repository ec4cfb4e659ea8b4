package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KeithDimech1/Thermo-App-sub001/internal/pkg/response"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/service"
)

type DatasetsHandler struct {
	datasetService *service.DatasetService
	fairService    *service.FairService
}

func NewDatasetsHandler(datasetService *service.DatasetService, fairService *service.FairService) *DatasetsHandler {
	return &DatasetsHandler{
		datasetService: datasetService,
		fairService:    fairService,
	}
}

// List serves imported dataset cards.
// GET /api/datasets
func (h *DatasetsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	items, total, err := h.datasetService.List(page, pageSize)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  items,
		"total": total,
	})
}

// Get returns one dataset with its files and FAIR score, if scored.
// GET /api/datasets/:id
func (h *DatasetsHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "dataset id must be an integer")
		return
	}

	dataset, files, score, err := h.datasetService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrDatasetNotFound) {
			response.NotFound(c, "dataset not found")
			return
		}
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"dataset":   dataset,
		"files":     files,
		"fairScore": score,
	})
}

// AnalyzeFair scores one dataset against the reporting standard.
// POST /api/datasets/:id/fair/analyze
func (h *DatasetsHandler) AnalyzeFair(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "dataset id must be an integer")
		return
	}

	resp, err := h.fairService.Analyze(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrDatasetNotFound) {
			response.NotFound(c, "dataset not found")
			return
		}
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, resp)
}
