package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/skycast-dev/skycast/internal/comparison"
	"github.com/skycast-dev/skycast/internal/dashboard"
	"github.com/skycast-dev/skycast/internal/metrics"
	"github.com/skycast-dev/skycast/internal/models"
	"github.com/skycast-dev/skycast/internal/services/presenter"
	"github.com/skycast-dev/skycast/internal/services/query"
	"github.com/skycast-dev/skycast/internal/services/scoring"
	"github.com/skycast-dev/skycast/internal/services/weather"
)

const timeoutDuration = 10 * time.Second

// fetchFailedMessage covers both a lookup miss and a malformed provider
// body: the user re-prompts either way, the log tells them apart.
const fetchFailedMessage = "City not found. Please try again."

type weatherService interface {
	Show(ctx context.Context, q, displayName string) (models.WeatherSnapshot, error)
	ShowCoords(ctx context.Context, lat, lon float64) (models.WeatherSnapshot, error)
}

type comparisonService interface {
	Refresh(ctx context.Context) []comparison.Row
	Add(ctx context.Context, city string) error
	Remove(ctx context.Context, city string)
	Reset(ctx context.Context)
	Cities() []string
}

type favoritesRepository interface {
	Toggle(ctx context.Context, city string) (bool, error)
	List(ctx context.Context) ([]string, error)
}

type viewProvider interface {
	View() dashboard.View
}

type snapshotReader interface {
	Get() (models.WeatherSnapshot, string, bool)
}

type Handler struct {
	weather    weatherService
	comparison comparisonService
	favorites  favoritesRepository
	view       viewProvider
	snapshots  snapshotReader
	logger     zerolog.Logger
	m          *metrics.Metrics
}

func NewHandler(
	ws weatherService,
	cs comparisonService,
	fr favoritesRepository,
	vp viewProvider,
	sr snapshotReader,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *Handler {
	logger = logger.With().Str("component", "HTTPHandler").Logger()
	return &Handler{
		weather:    ws,
		comparison: cs,
		favorites:  fr,
		view:       vp,
		snapshots:  sr,
		logger:     logger,
		m:          m,
	}
}

// Register mounts all dashboard routes on the router group.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/weather", h.GetWeather)
	r.GET("/dashboard", h.GetDashboard)

	r.GET("/comparison", h.GetComparison)
	r.POST("/comparison/cities", h.AddComparisonCity)
	r.DELETE("/comparison/cities/:city", h.RemoveComparisonCity)
	r.POST("/comparison/reset", h.ResetComparison)

	r.POST("/ask", h.Ask)

	r.GET("/favorites", h.ListFavorites)
	r.POST("/favorites/:city", h.ToggleFavorite)
}

// GetWeather serves the primary search box, dropdown, geolocation, map and
// globe click paths. q is a city name or "lat,lon" with latitude first.
func (h *Handler) GetWeather(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q query parameter is required"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	var (
		snap models.WeatherSnapshot
		err  error
	)
	if lat, lon, ok := parseCoords(q); ok {
		snap, err = h.weather.ShowCoords(ctx, lat, lon)
	} else {
		snap, err = h.weather.Show(ctx, q, "")
	}
	if err != nil {
		h.fetchError(c, q, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// GetDashboard returns the current view-model: summary cards, hourly strip,
// scene, map, globe, comparison rows and theme.
func (h *Handler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.view.View())
}

func (h *Handler) GetComparison(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()
	c.JSON(http.StatusOK, gin.H{"rows": h.comparison.Refresh(ctx)})
}

type addCityRequest struct {
	City string `json:"city" binding:"required"`
}

func (h *Handler) AddComparisonCity(c *gin.Context) {
	var req addCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city is required"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	if err := h.comparison.Add(ctx, req.City); err != nil {
		switch {
		case errors.Is(err, comparison.ErrDuplicateCity):
			c.JSON(http.StatusConflict, gin.H{"error": "City already in the list"})
		case errors.Is(err, comparison.ErrEmptyCity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a city name"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": h.comparison.Cities()})
}

func (h *Handler) RemoveComparisonCity(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()
	h.comparison.Remove(ctx, c.Param("city"))
	c.JSON(http.StatusOK, gin.H{"cities": h.comparison.Cities()})
}

func (h *Handler) ResetComparison(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()
	h.comparison.Reset(ctx)
	c.JSON(http.StatusOK, gin.H{"cities": h.comparison.Cities()})
}

type askRequest struct {
	Text string `json:"text" binding:"required"`
}

// Ask answers a free-text question. The currently displayed city is the
// contextual fallback; with no city at all the user is re-prompted, never
// guessed for. A query without an activity behaves like a plain search.
func (h *Handler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	fallbackCity := ""
	if snap, _, ok := h.snapshots.Get(); ok {
		fallbackCity = snap.Location.Name
	}

	parsed, err := query.Parse(req.Text, fallbackCity)
	if err != nil {
		if errors.Is(err, query.ErrAmbiguousCity) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": `I couldn't understand the city name. Try asking like: "What's the weather in Mumbai?"`,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	snap, err := h.weather.Show(ctx, parsed.City, "")
	if err != nil {
		h.fetchError(c, parsed.City, err)
		return
	}

	if parsed.Activity == models.ActivityNone {
		c.JSON(http.StatusOK, gin.H{"query": parsed, "weather": snap})
		return
	}

	result := scoring.Score(scoring.FactsFrom(snap), parsed.Activity)
	h.m.ScoreQueriesTotal.WithLabelValues(
		string(parsed.Activity), strconv.FormatBool(result.Suitable)).Inc()

	content := presenter.Assemble(parsed.City, parsed.Activity, result, snap)
	c.JSON(http.StatusOK, gin.H{"query": parsed, "answer": content})
}

func (h *Handler) ListFavorites(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	cities, err := h.favorites.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": cities})
}

func (h *Handler) ToggleFavorite(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	starred, err := h.favorites.Toggle(ctx, c.Param("city"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"city": c.Param("city"), "favorite": starred})
}

// fetchError converts a gateway failure into a user-facing response. A
// malformed body gets the same message as a miss but a distinct log line.
func (h *Handler) fetchError(c *gin.Context, q string, err error) {
	switch {
	case errors.Is(err, weather.ErrLocationNotFound):
		h.logger.Warn().Str("query", q).Err(err).Msg("location not found")
		c.JSON(http.StatusNotFound, gin.H{"error": fetchFailedMessage})
	case errors.Is(err, weather.ErrMalformedResponse):
		h.logger.Error().Str("query", q).Err(err).Msg("provider returned malformed body")
		c.JSON(http.StatusNotFound, gin.H{"error": fetchFailedMessage})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// parseCoords accepts "lat,lon" with two decimal numbers, latitude first.
func parseCoords(q string) (lat, lon float64, ok bool) {
	parts := strings.Split(q, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}
