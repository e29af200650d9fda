package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	userdomain "github.com/parishlabs/tdrms/internal/user/domain"
)

type updateRoleRequest struct {
	Role string `json:"role"`
}

func (s *Server) ListUsers(c *gin.Context) {
	resp, err := s.userSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateUserRole(c *gin.Context) {
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.userSvc.UpdateRole(c.Request.Context(), userdomain.UpdateRoleRequest{
		UserID: c.Param("id"),
		Role:   req.Role,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
