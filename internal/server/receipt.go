package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/parishlabs/tdrms/internal/providers/pdf"
	receiptdomain "github.com/parishlabs/tdrms/internal/receipt/domain"
	templatedomain "github.com/parishlabs/tdrms/internal/template/domain"
	verificationdomain "github.com/parishlabs/tdrms/internal/verification/domain"
)

type issueReceiptRequest struct {
	DonorName   string   `json:"donor_name"`
	ContactInfo string   `json:"contact_info"`
	Amount      string   `json:"amount"`
	PaymentType string   `json:"payment_type"`
	Template    string   `json:"template"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	IssueDate   string   `json:"issue_date"`
}

func (s *Server) IssueReceipt(c *gin.Context) {
	var req issueReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	issuedBy := ""
	if user := currentUser(c); user != nil {
		issuedBy = user.DisplayName
	}

	resp, err := s.receiptSvc.Issue(c.Request.Context(), receiptdomain.IssueRequest{
		DonorName:   req.DonorName,
		ContactInfo: req.ContactInfo,
		Amount:      req.Amount,
		PaymentType: req.PaymentType,
		Template:    req.Template,
		Description: req.Description,
		Tags:        req.Tags,
		IssuedBy:    issuedBy,
		IssueDate:   req.IssueDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListReceipts(c *gin.Context) {
	var query struct {
		Search      string `form:"search"`
		PaymentType string `form:"payment_type"`
		Template    string `form:"template"`
		DateFrom    string `form:"date_from"`
		DateTo      string `form:"date_to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.receiptSvc.List(c.Request.Context(), receiptdomain.ListRequest{
		Search:      query.Search,
		PaymentType: query.PaymentType,
		Template:    query.Template,
		DateFrom:    query.DateFrom,
		DateTo:      query.DateTo,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetReceipt(c *gin.Context) {
	resp, err := s.receiptSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// DownloadReceiptPDF renders the receipt under the layout of the template it
// names. A deleted template falls back to a bare layout rather than failing
// the download.
func (s *Server) DownloadReceiptPDF(c *gin.Context) {
	ctx := c.Request.Context()

	receipt, err := s.receiptSvc.GetByID(ctx, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc := pdf.ReceiptDocument{
		ReceiptID:      receipt.ID,
		Date:           receipt.Date,
		DonorName:      receipt.DonorName,
		ContactInfo:    receipt.ContactInfo,
		Amount:         formatAmount(receipt.Amount),
		PaymentType:    receipt.PaymentType,
		Description:    receipt.Description,
		IssuedBy:       receipt.IssuedBy,
		Organization:   receipt.Template,
		PrimaryColor:   templatedomain.DefaultPrimaryColor,
		SecondaryColor: templatedomain.DefaultSecondaryColor,
	}
	if tmpl, err := s.templateSvc.GetByName(ctx, receipt.Template); err == nil && tmpl != nil {
		doc.Organization = tmpl.Organization
		doc.Address = tmpl.Address
		doc.Purpose = tmpl.Purpose
		doc.PrimaryColor = tmpl.Branding.PrimaryColor
		doc.SecondaryColor = tmpl.Branding.SecondaryColor
		for _, sig := range tmpl.Signatories {
			doc.Signatories = append(doc.Signatories, pdf.Signatory{Name: sig.Name, Title: sig.Title})
		}
	}

	if payload, err := json.Marshal(verificationdomain.PayloadFor(receipt)); err == nil {
		doc.Payload = string(payload)
	}

	reader, err := s.pdfProvider.GenerateReceipt(ctx, doc)
	if err != nil {
		AbortWithError(c, ErrInternal)
		return
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		AbortWithError(c, ErrInternal)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+pdf.FileName(receipt.ID)+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func formatAmount(value float64) string {
	return "PHP " + strconv.FormatFloat(value, 'f', 2, 64)
}
