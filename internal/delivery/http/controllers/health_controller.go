package controllers

import (
	"context"
	"net/http"

	"devevent/internal/delivery/http/helpers"
)

// ConnectionChecker reports whether the data store is reachable.
type ConnectionChecker interface {
	IsConnected(ctx context.Context) bool
}

type HealthResponse struct {
	Status   string `json:"status"`
	Store    string `json:"store"`
	Database string `json:"database"`
}

type HealthController struct {
	Checker ConnectionChecker
	Store   string
}

func NewHealthController(checker ConnectionChecker, store string) *HealthController {
	return &HealthController{Checker: checker, Store: store}
}

// Health godoc
// @Summary Service health
// @Description Reports whether the process is up and whether the database connection is live. The process stays up without a connection, so the status code is always 200.
// @Tags health
// @Produce json
// @Success 200 {object} controllers.HealthResponse
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Store: c.Store, Database: "connected"}
	if !c.Checker.IsConnected(r.Context()) {
		resp.Status = "degraded"
		resp.Database = "disconnected"
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}
