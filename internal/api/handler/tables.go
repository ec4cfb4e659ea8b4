package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KeithDimech1/Thermo-App-sub001/internal/model/dto"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/pkg/response"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/service"
)

type TablesHandler struct {
	browseService *service.BrowseService
}

func NewTablesHandler(browseService *service.BrowseService) *TablesHandler {
	return &TablesHandler{browseService: browseService}
}

// Browse serves the generic paginated passthrough over the allow-list.
// GET /api/tables/:name
func (h *TablesHandler) Browse(c *gin.Context) {
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

	q := &dto.BrowseQuery{
		SortBy:    c.Query("sortBy"),
		SortOrder: c.DefaultQuery("sortOrder", "asc"),
		Limit:     limit,
		Offset:    offset,
	}

	resp, err := h.browseService.Browse(c.Param("name"), q)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, resp)
}

// Export streams a whole allow-listed table as CSV or XLSX.
// GET /api/tables/:name/export?format=csv|xlsx
func (h *TablesHandler) Export(c *gin.Context) {
	data, contentType, filename, err := h.browseService.Export(c.Param("name"), c.Query("format"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(200, contentType, data)
}

func (h *TablesHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownTable),
		errors.Is(err, service.ErrBadSortColumn),
		errors.Is(err, service.ErrBadPagination),
		errors.Is(err, service.ErrBadFormat):
		response.BadRequest(c, err.Error())
	default:
		response.ServerError(c, err.Error())
	}
}
