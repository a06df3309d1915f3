package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	msgConsole       = "Balance displayed in console"
	msgConsoleOutput = "Check server console for detailed balance information"
)

// requirePortfolio answers 503 when no exchange credentials were configured.
func (h *Handler) requirePortfolio(c *gin.Context) {
	if h.services.Portfolio == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": errNotConfigured})
		return
	}
	c.Next()
}

// @Summary      Account flags and valued balances
// @Tags         binance
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "success, data"
// @Failure      500  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /binance/account [get]
func (h *Handler) getAccount(c *gin.Context) {
	p, err := h.services.GetPortfolio(c.Request.Context())
	if err != nil {
		h.fail(c, "binance_account_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
}

// @Summary      Non-zero balances
// @Tags         binance
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "success, balances, total_assets"
// @Failure      500  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /binance/balance [get]
func (h *Handler) getBalances(c *gin.Context) {
	p, err := h.services.GetPortfolio(c.Request.Context())
	if err != nil {
		h.fail(c, "binance_balance_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "balances": p.Balances, "total_assets": len(p.Balances)})
}

// @Summary      Balance of one asset
// @Description  Asset match is case-insensitive. A missing or zero balance is success=false with status 200.
// @Tags         binance
// @Produce      json
// @Param        asset  path      string  true  "Asset, e.g. BTC"
// @Success      200    {object}  map[string]interface{}
// @Failure      500    {object}  map[string]string
// @Failure      503    {object}  map[string]string
// @Router       /binance/balance/{asset} [get]
func (h *Handler) getAssetBalance(c *gin.Context) {
	asset := c.Param("asset")
	p, err := h.services.GetPortfolio(c.Request.Context())
	if err != nil {
		h.fail(c, "binance_asset_balance_failed", err, "asset", asset)
		return
	}
	for _, b := range p.Balances {
		if strings.EqualFold(b.Asset, asset) {
			c.JSON(http.StatusOK, gin.H{"success": true, "asset": b.Asset, "balance": b})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": false,
		"message": fmt.Sprintf("Asset %s not found or has zero balance", strings.ToUpper(asset)),
	})
}

// @Summary      Write the portfolio to the server log
// @Tags         binance
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /binance/console [get]
func (h *Handler) logBalances(c *gin.Context) {
	p, err := h.services.GetPortfolio(c.Request.Context())
	if err != nil {
		h.fail(c, "binance_console_failed", err)
		return
	}

	for _, b := range p.Balances {
		h.log.Infow("binance_balance",
			"asset", b.Asset,
			"total", fmt.Sprintf("%.8f", b.Total),
			"usd_price", fmt.Sprintf("%.4f", b.USDPrice),
			"usd_value", fmt.Sprintf("%.2f", b.USDValue),
		)
	}
	h.log.Infow("binance_portfolio_total",
		"account_type", p.AccountType,
		"total_assets", len(p.Balances),
		"total_usd_value", fmt.Sprintf("%.2f", p.TotalUSDValue),
	)

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         msgConsole,
		"total_usd_value": p.TotalUSDValue,
		"total_assets":    len(p.Balances),
		"console_output":  msgConsoleOutput,
	})
}

// @Summary      Last price of a pair
// @Description  Never fails; an unavailable price is 0.
// @Tags         binance
// @Produce      json
// @Param        symbol  path      string  true  "Pair, e.g. BTCUSDT"
// @Success      200     {object}  map[string]interface{}  "symbol, price"
// @Failure      503     {object}  map[string]string
// @Router       /binance/price/{symbol} [get]
func (h *Handler) getPrice(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))
	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "price": h.services.GetPrice(c.Request.Context(), symbol)})
}
