package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/khristian7/Irradiation-Portal/internal/aggregate"
	"github.com/khristian7/Irradiation-Portal/internal/analysis"
	"github.com/khristian7/Irradiation-Portal/internal/api/middleware"
	"github.com/khristian7/Irradiation-Portal/internal/api/models"
	"github.com/khristian7/Irradiation-Portal/internal/data"
	"github.com/khristian7/Irradiation-Portal/internal/export"
	"github.com/khristian7/Irradiation-Portal/internal/log"
	"github.com/khristian7/Irradiation-Portal/internal/model"
	"github.com/khristian7/Irradiation-Portal/internal/series"
	"github.com/khristian7/Irradiation-Portal/internal/solar"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Options configure IrradianceHandler.
type Options struct {
	MaxRangeDays       int
	Workers            int
	DefaultGranularity model.Granularity

	// Cache may be nil.
	Cache *data.SeriesCache
	Now   func() time.Time
}

// IrradianceHandler serves the model, export, position and summary endpoints.
type IrradianceHandler struct {
	opts Options
}

// NewIrradianceHandler creates a new irradiance handler
func NewIrradianceHandler(opts Options) *IrradianceHandler {
	if opts.DefaultGranularity == "" {
		opts.DefaultGranularity = model.GranularityDaily
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &IrradianceHandler{opts: opts}
}

// modelQuery is a validated ModelRequest.
type modelQuery struct {
	point       model.GeoPoint
	start       model.Instant
	end         model.Instant
	granularity model.Granularity
}

// Model handles POST /api/v1/model
func (h *IrradianceHandler) Model(c *gin.Context) {
	q, ok := h.bindModel(c)
	if !ok {
		return
	}
	rows, bands, err := h.compute(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := models.ModelResponse{
		ID:          requestID(c),
		Location:    q.point,
		Granularity: q.granularity,
		Window:      models.TimeWindow{Start: q.start, End: q.end},
		Series:      rows,
		Band:        bands,
	}
	resp.Count = len(rows) + len(bands)
	c.JSON(http.StatusOK, resp)
}

// Export handles POST /api/v1/export
func (h *IrradianceHandler) Export(c *gin.Context) {
	var eq models.ExportQuery
	if err := c.ShouldBindQuery(&eq); err != nil {
		writeError(c, badRequest(CodeInvalidRequest, err.Error()))
		return
	}
	format, err := export.ParseFormat(eq.Format)
	if err != nil {
		writeError(c, badRequest(CodeInvalidFormat, err.Error()))
		return
	}
	q, ok := h.bindModel(c)
	if !ok {
		return
	}
	rows, bands, err := h.compute(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}

	var buf bytes.Buffer
	opts := export.Options{Gzip: eq.Gzip}
	if q.granularity == model.GranularityDailyBand {
		err = export.Write(&buf, format, bands, opts)
	} else {
		err = export.Write(&buf, format, rows, opts)
	}
	if err != nil {
		writeError(c, fmt.Errorf("export %s: %w", format, err))
		return
	}

	contentType := format.ContentType()
	if eq.Gzip {
		contentType = "application/gzip"
	}
	name := export.FileName(format, h.opts.Now(), eq.Gzip)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// Position handles GET /api/v1/position
func (h *IrradianceHandler) Position(c *gin.Context) {
	var req models.PositionQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		writeError(c, badRequest(CodeInvalidRequest, err.Error()))
		return
	}
	p, err := model.NewGeoPoint(*req.Latitude, *req.Longitude)
	if err != nil {
		writeError(c, err)
		return
	}
	t, err := model.ParseInstant(req.Datetime)
	if err != nil {
		writeError(c, err)
		return
	}
	calc, err := solar.NewCalculator(p, t)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.PositionResponse{
		ID:            requestID(c),
		Location:      p,
		Datetime:      t,
		Position:      calc.Position(),
		IrradianceWm2: calc.Irradiance(),
	})
}

// Summary handles GET /api/v1/summary
func (h *IrradianceHandler) Summary(c *gin.Context) {
	var req models.SummaryQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		writeError(c, badRequest(CodeInvalidRequest, err.Error()))
		return
	}
	p, err := model.NewGeoPoint(*req.Latitude, *req.Longitude)
	if err != nil {
		writeError(c, err)
		return
	}
	start, end, err := h.dateRange(req.StartDate, req.EndDate)
	if err != nil {
		writeError(c, err)
		return
	}
	samples, err := h.samples(c.Request.Context(), p, start, end)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SummaryResponse{
		ID:       requestID(c),
		Location: p,
		Summary:  analysis.Summarize(samples),
	})
}

func (h *IrradianceHandler) bindModel(c *gin.Context) (modelQuery, bool) {
	var req models.ModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, badRequest(CodeInvalidRequest, err.Error()))
		return modelQuery{}, false
	}
	q, err := h.resolve(req)
	if err != nil {
		writeError(c, err)
		return modelQuery{}, false
	}
	return q, true
}

// resolve validates a request and turns it into a point, an inclusive
// hourly window and a granularity.
func (h *IrradianceHandler) resolve(req models.ModelRequest) (modelQuery, error) {
	p, err := model.NewGeoPoint(*req.Latitude, *req.Longitude)
	if err != nil {
		return modelQuery{}, err
	}

	mode := strings.ToLower(strings.TrimSpace(req.Mode))
	if mode == "" {
		mode = "year"
		if req.StartDate != "" {
			mode = "date"
		}
	}

	q := modelQuery{point: p}
	switch mode {
	case "date":
		q.start, q.end, err = h.dateRange(req.StartDate, req.EndDate)
		if err != nil {
			return modelQuery{}, err
		}
		g := req.TimeGranularity
		if g == "" {
			g = string(h.opts.DefaultGranularity)
		}
		q.granularity, err = model.ParseGranularity(g)
		if err != nil {
			return modelQuery{}, badRequest(CodeInvalidGranularity, err.Error())
		}
	case "year":
		q.start, q.end, err = h.yearRange(req.StartYear, req.EndYear)
		if err != nil {
			return modelQuery{}, err
		}
		q.granularity = model.GranularityDailyBand
	default:
		return modelQuery{}, badRequest(CodeInvalidRequest, fmt.Sprintf("unknown mode %q, expected date or year", req.Mode))
	}
	return q, nil
}

// dateRange parses a start/end pair. A date-only end covers the whole day.
func (h *IrradianceHandler) dateRange(startStr, endStr string) (model.Instant, model.Instant, error) {
	if startStr == "" || endStr == "" {
		return model.Instant{}, model.Instant{}, badRequest(CodeInvalidRequest, "startDate and endDate are required")
	}
	start, err := model.ParseInstant(startStr)
	if err != nil {
		return model.Instant{}, model.Instant{}, err
	}
	end, err := model.ParseInstant(endStr)
	if err != nil {
		return model.Instant{}, model.Instant{}, err
	}
	if model.IsDateOnly(endStr) {
		end = end.EndOfDay()
	}
	if end.Before(start) {
		return model.Instant{}, model.Instant{}, badRequest(CodeInvalidRange, "endDate must not be before startDate")
	}
	return start, end, h.checkSpan(start, end)
}

func (h *IrradianceHandler) yearRange(startYear, endYear int) (model.Instant, model.Instant, error) {
	if startYear == 0 || endYear == 0 {
		return model.Instant{}, model.Instant{}, badRequest(CodeInvalidRequest, "startyear and endyear are required")
	}
	if endYear < startYear {
		return model.Instant{}, model.Instant{}, badRequest(CodeInvalidRange, "endyear must not be before startyear")
	}
	if startYear < 1 || endYear > 9999 {
		return model.Instant{}, model.Instant{}, badRequest(CodeInvalidRange, "years must be between 1 and 9999")
	}
	start, err := model.NewInstant(startYear, time.January, 1, 0, 0, 0)
	if err != nil {
		return model.Instant{}, model.Instant{}, err
	}
	end, err := model.NewInstant(endYear, time.December, 31, 23, 0, 0)
	if err != nil {
		return model.Instant{}, model.Instant{}, err
	}
	return start, end, h.checkSpan(start, end)
}

func (h *IrradianceHandler) checkSpan(start, end model.Instant) error {
	if h.opts.MaxRangeDays <= 0 {
		return nil
	}
	days := int((end.Date().Unix()-start.Date().Unix())/86400) + 1
	if days > h.opts.MaxRangeDays {
		return &requestError{
			Code:    CodeRangeTooLarge,
			Message: fmt.Sprintf("requested range spans %d days, the limit is %d", days, h.opts.MaxRangeDays),
			Details: map[string]interface{}{"days": days, "max_range_days": h.opts.MaxRangeDays},
		}
	}
	return nil
}

// samples returns the hourly series, from the cache when possible.
func (h *IrradianceHandler) samples(ctx context.Context, p model.GeoPoint, start, end model.Instant) ([]model.IrradianceSample, error) {
	key := data.SeriesKey(p, start, end)
	if cached, ok := h.opts.Cache.Get(key); ok {
		log.Debugf("series cache hit: %s %s..%s", p, start, end)
		return cached, nil
	}
	samples, err := series.GenerateParallel(ctx, p, start, end, h.opts.Workers)
	if err != nil {
		return nil, err
	}
	h.opts.Cache.Set(key, samples)
	return samples, nil
}

// compute yields hourly or summed rows, or band rows for DailyBand.
func (h *IrradianceHandler) compute(ctx context.Context, q modelQuery) ([]export.Row, []export.BandRow, error) {
	samples, err := h.samples(ctx, q.point, q.start, q.end)
	if err != nil {
		return nil, nil, err
	}
	if q.granularity == model.GranularityHourly {
		return export.HourlyRows(samples), nil, nil
	}
	policy, ok := aggregate.PolicyFor(q.granularity)
	if !ok {
		return nil, nil, badRequest(CodeInvalidGranularity, fmt.Sprintf("granularity %s cannot be aggregated", q.granularity))
	}
	res, err := aggregate.Resample(samples, policy)
	if err != nil {
		return nil, nil, err
	}
	rows, bands := export.ResultRows(res)
	return rows, bands, nil
}

// requestID returns the id assigned by middleware.RequestID, or a fresh one.
func requestID(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDKey); id != "" {
		return id
	}
	return uuid.NewString()
}
