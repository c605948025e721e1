package handlers

import (
	"net/http"
	"time"

	"github.com/khristian7/Irradiation-Portal/internal/analysis"
	"github.com/khristian7/Irradiation-Portal/internal/api/models"
	"github.com/khristian7/Irradiation-Portal/internal/model"

	"github.com/gin-gonic/gin"
)

// RankHandler handles ranking-related requests
type RankHandler struct {
	locations *LocationsHandler
	workers   int
	now       func() time.Time
}

// NewRankHandler creates a new rank handler
func NewRankHandler(locations *LocationsHandler, workers int) *RankHandler {
	return &RankHandler{locations: locations, workers: workers, now: time.Now}
}

// RankSites handles GET /api/v1/rank
func (h *RankHandler) RankSites(c *gin.Context) {
	var req models.RankQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		writeError(c, badRequest(CodeInvalidRequest, err.Error()))
		return
	}
	year := req.Year
	if year == 0 {
		year = h.now().Year()
	}
	if year < 1 || year > 9999 {
		writeError(c, badRequest(CodeInvalidRange, "year must be between 1 and 9999"))
		return
	}
	start := model.MustInstant(year, time.January, 1, 0, 0, 0)
	end := model.MustInstant(year, time.December, 31, 23, 0, 0)

	list, err := h.locations.load()
	if err != nil {
		writeError(c, err)
		return
	}

	ranked, err := analysis.RankSites(c.Request.Context(), list.Locations, start, end, h.workers)
	if err != nil {
		writeError(c, err)
		return
	}

	if req.Limit > 0 && req.Limit < len(ranked) {
		ranked = ranked[:req.Limit]
	}

	rankings := make([]models.Ranking, len(ranked))
	for i, r := range ranked {
		rankings[i] = models.Ranking{
			Rank:            r.Rank,
			ID:              r.Location.ID,
			Name:            r.Location.Name,
			Country:         r.Location.Country,
			Latitude:        r.Location.Latitude,
			Longitude:       r.Location.Longitude,
			InsolationKWhm2: r.Summary.InsolationKWhm2,
			PeakWm2:         r.Summary.PeakWm2,
			DaylightHours:   r.Summary.DaylightHours,
		}
	}

	c.JSON(http.StatusOK, models.RankResponse{Year: year, Rankings: rankings})
}
