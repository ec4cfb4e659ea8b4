package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KeithDimech1/Thermo-App-sub001/internal/model/dto"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/pkg/response"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/service"
)

type ConfigsHandler struct {
	configService *service.ConfigService
}

func NewConfigsHandler(configService *service.ConfigService) *ConfigsHandler {
	return &ConfigsHandler{configService: configService}
}

// List serves the paginated, filterable QC config listing.
// GET /api/configs
func (h *ConfigsHandler) List(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		response.BadRequest(c, "limit must be an integer")
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		response.BadRequest(c, "offset must be an integer")
		return
	}

	manufacturerIDs, err := parseIDList(c.Query("manufacturer"))
	if err != nil {
		response.BadRequest(c, "manufacturer filter must be a comma-separated list of ids")
		return
	}
	markerIDs, err := parseIDList(c.Query("marker"))
	if err != nil {
		response.BadRequest(c, "marker filter must be a comma-separated list of ids")
		return
	}
	assayIDs, err := parseIDList(c.Query("assay"))
	if err != nil {
		response.BadRequest(c, "assay filter must be a comma-separated list of ids")
		return
	}

	q := &dto.ConfigsQuery{
		ManufacturerIDs: manufacturerIDs,
		MarkerIDs:       markerIDs,
		AssayIDs:        assayIDs,
		QualityRating:   c.Query("rating"),
		CVBucket:        c.Query("cv"),
		Search:          c.Query("search"),
		SortBy:          c.Query("sortBy"),
		SortOrder:       c.DefaultQuery("sortOrder", "asc"),
		Limit:           limit,
		Offset:          offset,
	}

	resp, err := h.configService.List(q)
	if err != nil {
		if errors.Is(err, service.ErrBadPagination) || errors.Is(err, service.ErrBadSortColumn) {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, resp)
}

// parseIDList splits a comma-separated multi-select filter into ids.
func parseIDList(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
