package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"integration-agent/internal/java"
	"integration-agent/pkg/response"
)

// JavaAnalysisRequest is the body of POST /api/v1/java/analysis. Either
// Code (inline source) or Path (directory on the server) must be set.
type JavaAnalysisRequest struct {
	Code     string `json:"code"`
	FileName string `json:"file_name"`
	Path     string `json:"path"`
}

// analyzeJava analyzes Java source or a Java project directory
// @Summary Analyze Java
// @Description Analyze inline Java source or a project directory
// @Tags Java
// @Accept json
// @Produce json
// @Param body body JavaAnalysisRequest true "Source or path to analyze"
// @Success 200 {object} response.Resp "Analysis result"
// @Router /api/v1/java/analysis [post]
func (srv *HTTPServer) analyzeJava(c *gin.Context) {
	var req JavaAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err, nil)
		return
	}

	switch {
	case req.Code != "":
		fileName := req.FileName
		if fileName == "" {
			fileName = "Inline.java"
		}
		analysis, err := java.AnalyzeSource(fileName, req.Code)
		if err != nil {
			response.Error(c, err, nil)
			return
		}
		response.OK(c, analysis)

	case req.Path != "":
		analysis, err := java.AnalyzeProject(req.Path)
		if err != nil {
			response.Error(c, err, nil)
			return
		}
		response.OK(c, analysis)

	default:
		response.Error(c, errors.New("either code or path is required"), nil)
	}
}
