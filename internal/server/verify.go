package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	verificationdomain "github.com/parishlabs/tdrms/internal/verification/domain"
)

type verifyRequest struct {
	ReceiptID string `json:"receipt_id"`
	DonorName string `json:"donor_name"`
	Amount    string `json:"amount"`
}

type verifyPayloadRequest struct {
	Payload string `json:"payload"`
}

func (s *Server) VerifyReceipt(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.verificationSvc.Verify(c.Request.Context(), verificationdomain.VerifyRequest{
		ReceiptID: req.ReceiptID,
		DonorName: req.DonorName,
		Amount:    req.Amount,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) VerifyReceiptPayload(c *gin.Context) {
	var req verifyPayloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.verificationSvc.VerifyPayload(c.Request.Context(), req.Payload)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
