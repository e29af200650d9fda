package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	reportdomain "github.com/parishlabs/tdrms/internal/report/domain"
)

type generateReportRequest struct {
	DateFrom    string `json:"date_from"`
	DateTo      string `json:"date_to"`
	PaymentType string `json:"payment_type"`
}

func (s *Server) GenerateReport(c *gin.Context) {
	var req generateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	report, err := s.reportSvc.Generate(c.Request.Context(), reportdomain.GenerateRequest{
		DateFrom:    req.DateFrom,
		DateTo:      req.DateTo,
		PaymentType: req.PaymentType,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": report})
}
