package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medi-route/triage-api/schema"
	"github.com/medi-route/triage-api/store"
)

// createUser provisions an account. Reports and triage are restricted to doctors.
func (s *Server) createUser(c *gin.Context) {
	var req struct {
		UserID    string      `json:"userId" binding:"required"`
		Email     string      `json:"email" binding:"required"`
		FirstName string      `json:"firstName"`
		LastName  string      `json:"lastName"`
		Role      schema.Role `json:"role"`
	}

	if err := c.BindJSON(&req); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	user, err := s.mongoStore.CreateUser(c.Request.Context(), schema.User{
		UserID:    req.UserID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	switch err {
	case nil:
	case store.ErrInvalidRole:
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidRole)
		return
	case store.ErrUserTaken:
		abortWithEncoding(c, http.StatusConflict, errorUserTaken)
		return
	default:
		shouldInterupt(err, c)
		return
	}

	responseWithData(c, http.StatusCreated, "user_created", user)
}
