package httpserver

import (
	"github.com/gin-gonic/gin"

	"integration-agent/pkg/response"
)

// StatusResponse reports the active backend and configured providers.
type StatusResponse struct {
	Backend     string   `json:"backend"`
	Providers   []string `json:"providers"`
	Environment string   `json:"environment"`
	Version     string   `json:"version"`
}

// status reports backend selection and provider configuration
// @Summary Agent Status
// @Description Report the active integration backend and LLM providers
// @Tags Status
// @Accept json
// @Produce json
// @Success 200 {object} response.Resp{data=StatusResponse} "Agent status"
// @Router /api/v1/status [get]
func (srv *HTTPServer) status(c *gin.Context) {
	response.OK(c, StatusResponse{
		Backend:     string(srv.backend),
		Providers:   srv.providers,
		Environment: srv.environment,
		Version:     HealthVersion,
	})
}
