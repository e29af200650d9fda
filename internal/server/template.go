package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	templatedomain "github.com/parishlabs/tdrms/internal/template/domain"
)

type templateRequest struct {
	Name         string                     `json:"name"`
	Organization string                     `json:"organization"`
	Address      string                     `json:"address"`
	Purpose      string                     `json:"purpose"`
	Signatories  []templatedomain.Signatory `json:"signatories"`
	Branding     templatedomain.Branding    `json:"branding"`
	Active       *bool                      `json:"active"`
}

func (s *Server) CreateTemplate(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.templateSvc.Create(c.Request.Context(), templatedomain.CreateRequest{
		Name:         req.Name,
		Organization: req.Organization,
		Address:      req.Address,
		Purpose:      req.Purpose,
		Signatories:  req.Signatories,
		Branding:     req.Branding,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListTemplates(c *gin.Context) {
	resp, err := s.templateSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetTemplate(c *gin.Context) {
	resp, err := s.templateSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateTemplate(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.templateSvc.Update(c.Request.Context(), templatedomain.UpdateRequest{
		ID:           c.Param("id"),
		Name:         req.Name,
		Organization: req.Organization,
		Address:      req.Address,
		Purpose:      req.Purpose,
		Signatories:  req.Signatories,
		Branding:     req.Branding,
		Active:       req.Active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteTemplate(c *gin.Context) {
	if err := s.templateSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
