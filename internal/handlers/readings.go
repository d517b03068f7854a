package handlers

import (
	"context"
	"net/http"
	"strconv"

	"smarthub/internal/models"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"
)

// @Summary      Greeting
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": h.opts.Greeting})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Ingest a sensor reading
// @Description  Derives fan and light from the current settings and stores the reading. Unknown fields are kept under "extra".
// @Tags         readings
// @Accept       json
// @Produce      json
// @Param        body  body      ReadingRequest  true  "Sensor payload"
// @Success      200   {object}  models.Reading
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /temperature [put]
func (h *Handler) putTemperature(c *gin.Context) {
	var req readingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Infow("reading_bad_request_body", "err", err, "request_id", requestIDFrom(c))
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	ctx := c.Request.Context()
	reading, err := h.services.Readings.Ingest(ctx, req.params())
	if err != nil {
		h.respondError(c, "reading_ingest_failed", err)
		return
	}
	h.opts.Metrics.ReadingIngested(reading.Fan, reading.Light)
	h.publish(ctx, reading)

	c.JSON(http.StatusOK, reading)
}

// publish forwards the derived state; the reading is already stored, so
// failures are only logged and counted.
func (h *Handler) publish(ctx context.Context, r models.Reading) {
	if err := h.opts.Publisher.Publish(ctx, r); err != nil {
		h.opts.Metrics.PublishFailed()
		h.log.Warnw("actuator_publish_failed", "err", err, "reading_id", r.ID)
	}
}

// @Summary      Reading history
// @Description  Newest first. Sizes above the configured maximum are clamped.
// @Tags         readings
// @Produce      json
// @Param        size  query     int  true  "Number of points"
// @Success      200   {array}   models.GraphPoint
// @Failure      400   {object}  map[string]string
// @Router       /graph [get]
func (h *Handler) getGraph(c *gin.Context) {
	size, err := strconv.Atoi(c.Query("size"))
	if err != nil || size < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidSize})
		return
	}

	points, err := h.services.Readings.Graph(c.Request.Context(), size)
	if err != nil {
		h.respondError(c, "graph_failed", err, "size", size)
		return
	}
	c.JSON(http.StatusOK, points)
}

// @Summary      Latest state
// @Description  The most recent reading, or all-off with the current time when nothing was ingested.
// @Tags         readings
// @Produce      json
// @Success      200  {object}  models.Reading
// @Failure      500  {object}  map[string]string
// @Router       /state [get]
func (h *Handler) getState(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.respondError(c, "state_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      One stored reading
// @Tags         readings
// @Produce      json
// @Param        id   path      int  true  "Reading id"
// @Success      200  {object}  models.Reading
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /readings/{id} [get]
func (h *Handler) getReading(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidReadingID})
		return
	}
	r, err := h.services.Readings.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "reading_get_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, r)
}
