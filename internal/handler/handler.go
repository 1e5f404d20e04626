package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/hanabenko/ticket-scraping-api/docs"
	"github.com/hanabenko/ticket-scraping-api/internal/dto"
	"github.com/hanabenko/ticket-scraping-api/internal/service"
)

type Handler struct {
	service service.TouchpointServicer
	router  *gin.Engine
	log     *zap.Logger
}

func NewHandler(touchpointService service.TouchpointServicer, log *zap.Logger) *Handler {
	h := &Handler{
		service: touchpointService,
		router:  gin.Default(),
		log:     log,
	}

	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)
	h.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	h.router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	h.router.POST("/events", h.publishEvent)
	h.router.POST("/events/bulk", h.publishEventsBulk)
	h.router.POST("/ingest", h.ingest)
	h.router.POST("/pipeline/run", h.runPipeline)

	h.router.POST("/attribution/users/:id/recompute", h.recomputeAttribution)
	h.router.GET("/attribution/users/:id", h.getUserAttributions)
	h.router.POST("/rollups/:date/recompute", h.recomputeRollup)

	h.router.POST("/artists", h.upsertArtist)
	h.router.POST("/concerts", h.createConcert)
	h.router.GET("/artists/top", h.getTopArtists)
	h.router.GET("/artists/:id/metrics", h.getArtistMetrics)
	h.router.GET("/artists/:id/channels", h.getChannelBreakdown)

	h.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "not_found",
			Message: "no route for " + c.Request.Method + " " + c.Request.URL.Path,
		})
	})
}

// writeError maps service errors onto the error response codes
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "validation_error", Message: err.Error()})
	case errors.Is(err, service.ErrMirrorDisabled), errors.Is(err, service.ErrQueueDisabled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "unavailable", Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal_error", Message: err.Error()})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}

// idParam parses a positive numeric path parameter
func idParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, errors.New("id must be a positive integer"))
		return 0, false
	}
	return id, true
}

// healthCheck handles GET /health
// @Summary Health check
// @Description Report the status of the store, the interaction mirror and the queue
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	status, err := h.service.Health(c.Request.Context())
	if err != nil {
		h.log.Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}
	c.JSON(http.StatusOK, status)
}

// publishEvent handles POST /events
// @Summary Publish a single touchpoint
// @Description Validate a touchpoint and queue it for the consumer
// @Tags events
// @Accept json
// @Produce json
// @Param event body dto.PublishEventRequest true "Event data"
// @Success 202 {object} dto.PublishEventResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /events [post]
func (h *Handler) publishEvent(c *gin.Context) {
	var req dto.PublishEventRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid event request",
			zap.Error(err),
			zap.String("artist", req.ArtistName))
		badRequest(c, err)
		return
	}

	messageID, err := h.service.PublishEvent(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to publish event",
			zap.Error(err),
			zap.String("artist", req.ArtistName),
			zap.String("interaction_type", req.InteractionType))
		h.writeError(c, err)
		return
	}

	h.log.Info("Event accepted",
		zap.String("message_id", messageID),
		zap.String("artist", req.ArtistName))

	c.JSON(http.StatusAccepted, dto.PublishEventResponse{
		MessageID: messageID,
		Status:    "accepted",
	})
}

// publishEventsBulk handles POST /events/bulk
// @Summary Publish multiple touchpoints
// @Description Queue a batch of touchpoints, reporting the ones that failed validation
// @Tags events
// @Accept json
// @Produce json
// @Param events body dto.PublishEventsBulkRequest true "Bulk events data"
// @Success 202 {object} dto.PublishBulkEventsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /events/bulk [post]
func (h *Handler) publishEventsBulk(c *gin.Context) {
	var bulkRequest dto.PublishEventsBulkRequest

	if err := c.ShouldBindJSON(&bulkRequest); err != nil {
		h.log.Warn("Invalid bulk event request", zap.Error(err))
		badRequest(c, err)
		return
	}

	messageIDs, rejects, err := h.service.PublishBulkEvents(c.Request.Context(), bulkRequest.Events)
	if err != nil {
		h.log.Error("Failed to publish bulk events",
			zap.Error(err),
			zap.Int("event_count", len(bulkRequest.Events)))
		h.writeError(c, err)
		return
	}

	h.log.Info("Bulk events published",
		zap.Int("accepted", len(messageIDs)),
		zap.Int("rejected", len(rejects)),
		zap.Int("total", len(bulkRequest.Events)))

	c.JSON(http.StatusAccepted, dto.PublishBulkEventsResponse{
		Accepted:   len(messageIDs),
		Rejected:   len(rejects),
		MessageIDs: messageIDs,
		Errors:     rejects,
	})
}

// ingest handles POST /ingest
// @Summary Ingest touchpoints synchronously
// @Description Write a batch of touchpoints and recompute the affected attributions and rollups
// @Tags events
// @Accept json
// @Produce json
// @Param events body dto.IngestRequest true "Events to ingest"
// @Success 200 {object} dto.IngestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /ingest [post]
func (h *Handler) ingest(c *gin.Context) {
	var req dto.IngestRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid ingest request", zap.Error(err))
		badRequest(c, err)
		return
	}

	response, err := h.service.Ingest(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to ingest events",
			zap.Error(err),
			zap.Int("event_count", len(req.Events)))
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// runPipeline handles POST /pipeline/run
// @Summary Run the pipeline
// @Description Load the given sources through their connectors, ingest them and recompute
// @Tags pipeline
// @Accept json
// @Produce json
// @Param run body dto.PipelineRunRequest true "Sources to load"
// @Success 200 {object} pipeline.Summary
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /pipeline/run [post]
func (h *Handler) runPipeline(c *gin.Context) {
	var req dto.PipelineRunRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid pipeline run request", zap.Error(err))
		badRequest(c, err)
		return
	}

	summary, err := h.service.RunPipeline(c.Request.Context(), &req)
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		if summary != nil {
			fields = append(fields, zap.String("run_id", summary.RunID))
		}
		h.log.Error("Pipeline run failed", fields...)
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// upsertArtist handles POST /artists
// @Summary Create or update an artist
// @Description Resolve an artist by exact name and store the given profile fields
// @Tags artists
// @Accept json
// @Produce json
// @Param artist body dto.ArtistRequest true "Artist profile"
// @Success 200 {object} dto.ArtistResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /artists [post]
func (h *Handler) upsertArtist(c *gin.Context) {
	var req dto.ArtistRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid artist request", zap.Error(err))
		badRequest(c, err)
		return
	}

	response, err := h.service.UpsertArtist(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to save artist",
			zap.Error(err),
			zap.String("artist", req.Name))
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// createConcert handles POST /concerts
// @Summary Create a concert
// @Description Record a show for an artist, creating the artist when unknown
// @Tags concerts
// @Accept json
// @Produce json
// @Param concert body dto.ConcertRequest true "Concert data"
// @Success 201 {object} dto.ConcertResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /concerts [post]
func (h *Handler) createConcert(c *gin.Context) {
	var req dto.ConcertRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid concert request", zap.Error(err))
		badRequest(c, err)
		return
	}

	response, err := h.service.CreateConcert(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to create concert",
			zap.Error(err),
			zap.String("artist", req.ArtistName))
		h.writeError(c, err)
		return
	}

	h.log.Info("Concert created",
		zap.Uint64("concert_id", response.ID),
		zap.Uint64("artist_id", response.ArtistID))

	c.JSON(http.StatusCreated, response)
}

// recomputeAttribution handles POST /attribution/users/:id/recompute
// @Summary Recompute a user's attribution
// @Description Rescore every artist the user touched, decayed to the reference time
// @Tags attribution
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body dto.RecomputeAttributionRequest false "Optional reference time"
// @Success 200 {object} dto.UserAttributionsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /attribution/users/{id}/recompute [post]
func (h *Handler) recomputeAttribution(c *gin.Context) {
	userID, ok := idParam(c)
	if !ok {
		return
	}

	var req dto.RecomputeAttributionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}

	response, err := h.service.RecomputeAttribution(c.Request.Context(), userID, req.ReferenceTime)
	if err != nil {
		h.log.Error("Failed to recompute attribution",
			zap.Error(err),
			zap.Uint64("user_id", userID))
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// getUserAttributions handles GET /attribution/users/:id
// @Summary Get a user's attribution
// @Description List the stored attribution scores of a user, highest first
// @Tags attribution
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.UserAttributionsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /attribution/users/{id} [get]
func (h *Handler) getUserAttributions(c *gin.Context) {
	userID, ok := idParam(c)
	if !ok {
		return
	}

	response, err := h.service.UserAttributions(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("Failed to get attributions",
			zap.Error(err),
			zap.Uint64("user_id", userID))
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// recomputeRollup handles POST /rollups/:date/recompute
// @Summary Recompute a daily rollup
// @Description Rebuild per-artist metrics for one UTC day
// @Tags rollups
// @Produce json
// @Param date path string true "Day (YYYY-MM-DD)" example:"2025-10-01"
// @Success 200 {object} dto.DailyRollupResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /rollups/{date}/recompute [post]
func (h *Handler) recomputeRollup(c *gin.Context) {
	date := c.Param("date")

	response, err := h.service.RecomputeRollup(c.Request.Context(), date)
	if err != nil {
		h.log.Error("Failed to recompute rollup",
			zap.Error(err),
			zap.String("date", date))
		h.writeError(c, err)
		return
	}

	h.log.Info("Rollup recomputed",
		zap.String("date", response.Date),
		zap.Int("artists", len(response.Artists)))

	c.JSON(http.StatusOK, response)
}

// getTopArtists handles GET /artists/top
// @Summary Get top artists
// @Description Rank artists for a day by clicks
// @Tags artists
// @Produce json
// @Param date query string false "Day (YYYY-MM-DD), defaults to today" example:"2025-10-01"
// @Param limit query int false "Number of artists (1-100)" example:"10"
// @Success 200 {object} dto.TopArtistsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /artists/top [get]
func (h *Handler) getTopArtists(c *gin.Context) {
	var req dto.TopArtistsRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		h.log.Warn("Invalid top artists request", zap.Error(err))
		badRequest(c, err)
		return
	}

	response, err := h.service.TopArtists(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to get top artists",
			zap.Error(err),
			zap.String("date", req.Date))
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// getArtistMetrics handles GET /artists/:id/metrics
// @Summary Get artist metrics
// @Description Daily metrics of an artist for the last N days
// @Tags artists
// @Produce json
// @Param id path int true "Artist ID"
// @Param days query int false "Number of days (1-366)" example:"7"
// @Success 200 {object} dto.ArtistMetricsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /artists/{id}/metrics [get]
func (h *Handler) getArtistMetrics(c *gin.Context) {
	artistID, ok := idParam(c)
	if !ok {
		return
	}

	var req dto.ArtistMetricsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.log.Warn("Invalid artist metrics request", zap.Error(err))
		badRequest(c, err)
		return
	}

	response, err := h.service.ArtistMetrics(c.Request.Context(), artistID, &req)
	if err != nil {
		h.log.Error("Failed to get artist metrics",
			zap.Error(err),
			zap.Uint64("artist_id", artistID))
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// getChannelBreakdown handles GET /artists/:id/channels
// @Summary Get channel breakdown
// @Description Interaction counts of an artist from the analytics mirror, optionally grouped
// @Tags artists
// @Produce json
// @Param id path int true "Artist ID"
// @Param from query int true "Start timestamp (Unix epoch)" example:"1759276800"
// @Param to query int true "End timestamp (Unix epoch)" example:"1759363200"
// @Param group_by query string false "Field to group by" Enums(channel, type, day) example:"channel"
// @Success 200 {object} dto.ChannelBreakdownResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /artists/{id}/channels [get]
func (h *Handler) getChannelBreakdown(c *gin.Context) {
	artistID, ok := idParam(c)
	if !ok {
		return
	}

	var req dto.ChannelBreakdownRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.log.Warn("Invalid channel breakdown request", zap.Error(err))
		badRequest(c, err)
		return
	}

	response, err := h.service.ChannelBreakdown(c.Request.Context(), artistID, &req)
	if err != nil {
		h.log.Error("Failed to get channel breakdown",
			zap.Error(err),
			zap.Uint64("artist_id", artistID),
			zap.Int64("from", req.From),
			zap.Int64("to", req.To))
		h.writeError(c, err)
		return
	}

	h.log.Info("Channel breakdown retrieved",
		zap.Uint64("artist_id", artistID),
		zap.Uint64("total_count", response.TotalCount),
		zap.Uint64("unique_users", response.UniqueUsers))

	c.JSON(http.StatusOK, response)
}
