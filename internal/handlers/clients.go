package handlers

import (
	"net/http"
	"strconv"

	"trading_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

type clientRequest struct {
	FullName string `json:"full_name" binding:"required" example:"Bob Trader"`
	APIKey   string `json:"api_key" binding:"required"`
	APIToken string `json:"api_token" binding:"required"`
}

func (r clientRequest) input() service.ClientInput {
	return service.ClientInput{FullName: r.FullName, APIKey: r.APIKey, APIToken: r.APIToken}
}

// pathID parses the :id parameter and writes a 400 when it is not a positive integer.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return 0, false
	}
	return id, true
}

// @Summary      List the caller's clients
// @Tags         clients
// @Produce      json
// @Success      200  {array}   models.Client
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /clients [get]
// @Security     BearerAuth
func (h *Handler) listClients(c *gin.Context) {
	clients, err := h.services.ListClients(c.Request.Context(), callerID(c))
	if err != nil {
		h.fail(c, "clients_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body      clientRequest  true  "Client"
// @Success      200   {object}  models.Client
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /clients [post]
// @Security     BearerAuth
func (h *Handler) createClient(c *gin.Context) {
	var req clientRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	client, err := h.services.CreateClient(c.Request.Context(), callerID(c), req.input())
	if err != nil {
		h.fail(c, "clients_create_failed", err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path      int            true  "Client id"
// @Param        body  body      clientRequest  true  "Client"
// @Success      200   {object}  models.Client
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /clients/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req clientRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	client, err := h.services.UpdateClient(c.Request.Context(), callerID(c), id, req.input())
	if err != nil {
		h.fail(c, "clients_update_failed", err, "client_id", id)
		return
	}
	c.JSON(http.StatusOK, client)
}

// @Summary      Delete a client
// @Tags         clients
// @Produce      json
// @Param        id   path      int  true  "Client id"
// @Success      200  {object}  map[string]interface{}  "success, id"
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /clients/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.services.DeleteClient(c.Request.Context(), callerID(c), id); err != nil {
		h.fail(c, "clients_delete_failed", err, "client_id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}
