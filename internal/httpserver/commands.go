package httpserver

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"integration-agent/pkg/response"
)

// CommandRequest is the body of POST /api/v1/commands.
type CommandRequest struct {
	Command   string `json:"command" binding:"required"`
	SessionID string `json:"session_id"`
}

// CommandResponse is the result payload for an executed command.
type CommandResponse struct {
	SessionID string `json:"session_id"`
	Result    string `json:"result"`
}

// executeCommand runs a natural language command through the agent
// @Summary Execute Command
// @Description Run a natural language command through the agent loop
// @Tags Commands
// @Accept json
// @Produce json
// @Param body body CommandRequest true "Command to execute"
// @Success 200 {object} response.Resp{data=CommandResponse} "Command result"
// @Router /api/v1/commands [post]
func (srv *HTTPServer) executeCommand(c *gin.Context) {
	var req CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err, nil)
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	result, err := srv.orchestrator.ProcessQuery(c.Request.Context(), sessionID, req.Command)
	if err != nil {
		srv.l.Errorf(c.Request.Context(), "executeCommand: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, CommandResponse{
		SessionID: sessionID,
		Result:    result,
	})
}
