package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getEmergencyInfo returns the real-time bed availability of the
// emergency rooms in a district.
func (s *Server) getEmergencyInfo(c *gin.Context) {
	var params struct {
		Stage1    string `form:"stage1" binding:"required"`
		Stage2    string `form:"stage2" binding:"required"`
		PageNo    int    `form:"pageNo"`
		NumOfRows int    `form:"numOfRows"`
	}

	if err := c.ShouldBindQuery(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	items, err := s.emergencyInfo.Get(c.Request.Context(), params.Stage1, params.Stage2, params.PageNo, params.NumOfRows)
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorEmergencyInfoUnavailable, err)
		return
	}

	responseWithData(c, http.StatusOK, "ok", gin.H{"items": items})
}
