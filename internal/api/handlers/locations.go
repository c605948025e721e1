package handlers

import (
	"fmt"
	"net/http"

	"github.com/khristian7/Irradiation-Portal/internal/api/models"
	"github.com/khristian7/Irradiation-Portal/internal/data"
	"github.com/khristian7/Irradiation-Portal/internal/model"

	"github.com/gin-gonic/gin"
)

// LocationsHandler serves the preset sites file.
type LocationsHandler struct {
	path string
}

// NewLocationsHandler reads sites from path on every request, so edits made by
// update-locations show up without a restart. A missing file yields the built-in list.
func NewLocationsHandler(path string) *LocationsHandler {
	if path == "" {
		path = data.GetDefaultLocationsPath()
	}
	return &LocationsHandler{path: path}
}

func (h *LocationsHandler) load() (*data.LocationList, error) {
	list, err := data.LoadLocationsOrDefault(h.path)
	if err != nil {
		return nil, fmt.Errorf("failed to load locations: %w", err)
	}
	return list, nil
}

// ListLocations handles GET /api/v1/locations
func (h *LocationsHandler) ListLocations(c *gin.Context) {
	list, err := h.load()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.LocationsResponse{
		Locations: list.Locations,
		UpdatedAt: list.UpdatedAt,
		Count:     len(list.Locations),
	})
}

// ListGranularities handles GET /api/v1/granularities
func ListGranularities(c *gin.Context) {
	out := make([]models.GranularityInfo, len(model.Granularities))
	for i, g := range model.Granularities {
		out[i] = models.GranularityInfo{Name: g, Description: g.Description()}
	}
	c.JSON(http.StatusOK, gin.H{"granularities": out})
}
