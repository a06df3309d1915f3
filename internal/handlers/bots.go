package handlers

import (
	"net/http"

	"trading_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

type botConfigRequest struct {
	SelectedCoin string  `json:"selected_coin" binding:"required" example:"BTC"`
	Percentage   float64 `json:"percentage" example:"10"`
	StopLoss     float64 `json:"stop_loss" example:"2.5"`
	TakeProfit   float64 `json:"take_profit" example:"5"`
	ProfitFactor float64 `json:"profit_factor" example:"1.5"`
}

// @Summary      List the caller's bot configs
// @Tags         bot
// @Produce      json
// @Success      200  {array}   models.BotConfig
// @Failure      401  {object}  map[string]string
// @Router       /bot/configs [get]
// @Security     BearerAuth
func (h *Handler) listBotConfigs(c *gin.Context) {
	configs, err := h.services.ListBotConfigs(c.Request.Context(), callerID(c))
	if err != nil {
		h.fail(c, "bot_configs_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, configs)
}

// @Summary      Active bot config
// @Tags         bot
// @Produce      json
// @Success      200  {object}  models.BotConfig
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /bot/active [get]
// @Security     BearerAuth
func (h *Handler) activeBotConfig(c *gin.Context) {
	cfg, err := h.services.ActiveBotConfig(c.Request.Context(), callerID(c))
	if err != nil {
		h.fail(c, "bot_config_active_failed", err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// @Summary      Create a bot config
// @Description  New configs start inactive.
// @Tags         bot
// @Accept       json
// @Produce      json
// @Param        body  body      botConfigRequest  true  "Bot config"
// @Success      200   {object}  models.BotConfig
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /bot/configs [post]
// @Security     BearerAuth
func (h *Handler) createBotConfig(c *gin.Context) {
	var req botConfigRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	cfg, err := h.services.CreateBotConfig(c.Request.Context(), callerID(c), service.BotConfigInput{
		SelectedCoin: req.SelectedCoin,
		Percentage:   req.Percentage,
		StopLoss:     req.StopLoss,
		TakeProfit:   req.TakeProfit,
		ProfitFactor: req.ProfitFactor,
	})
	if err != nil {
		h.fail(c, "bot_config_create_failed", err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// @Summary      Make a bot config the active one
// @Tags         bot
// @Produce      json
// @Param        id   path      int  true  "Bot config id"
// @Success      200  {object}  map[string]interface{}  "success, isActive"
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /bot/configs/{id}/toggle [post]
// @Security     BearerAuth
func (h *Handler) toggleBotConfig(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.services.ToggleBotConfig(c.Request.Context(), callerID(c), id); err != nil {
		h.fail(c, "bot_config_toggle_failed", err, "bot_config_id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "isActive": true})
}
