package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Replace hub settings
// @Description  user_light is HH:MM:SS or "sunset". For "sunset" the light turns off at sunset and light_duration is ignored.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body      SettingsRequest  true  "Settings payload"
// @Success      200   {object}  models.Settings
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /settings [put]
func (h *Handler) putSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Infow("settings_bad_request_body", "err", err, "request_id", requestIDFrom(c))
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	st, err := h.services.Settings.Update(c.Request.Context(), req.params())
	if err != nil {
		h.respondError(c, "settings_update_failed", err, "user_light", req.UserLight)
		return
	}
	h.opts.Metrics.SettingsUpdated(st.LightSource)
	h.log.Infow("settings_updated",
		"user_temp", st.UserTemp,
		"user_light", st.UserLight,
		"light_time_off", st.LightTimeOff,
		"source", st.LightSource,
	)
	c.JSON(http.StatusOK, st)
}

// @Summary      Current hub settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  models.Settings
// @Failure      404  {object}  map[string]string
// @Router       /settings [get]
func (h *Handler) getSettings(c *gin.Context) {
	st, err := h.services.Settings.Current(c.Request.Context())
	if err != nil {
		if code := statusFor(err); code == http.StatusConflict {
			c.JSON(http.StatusNotFound, gin.H{"error": errNotConfigured})
			return
		}
		h.respondError(c, "settings_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}
