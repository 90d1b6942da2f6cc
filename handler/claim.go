package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/VCSTDN/PROG6212-Part-2-SikhumbuzoNgwane/model"
	"github.com/VCSTDN/PROG6212-Part-2-SikhumbuzoNgwane/pkg/money"
	"github.com/VCSTDN/PROG6212-Part-2-SikhumbuzoNgwane/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ClaimHandler struct {
	claims *service.ClaimService
}

func NewClaimHandler(claims *service.ClaimService) *ClaimHandler {
	return &ClaimHandler{claims: claims}
}

// Submit handles the lecturer claim form (POST /Home/LecturerClaim).
// On success it redirects to the status view; on validation failure it
// returns the complete set of field errors for the form to render.
func (h *ClaimHandler) Submit(c *gin.Context) {
	// An unparseable numeric field must fail validation alongside the other
	// fields, not ahead of them; substitute values the validator rejects and
	// replace the message when rendering the collected set
	parseErrors := make(map[string]string)

	hours, err := decimal.NewFromString(strings.TrimSpace(c.PostForm("hoursWorked")))
	if err != nil {
		parseErrors["hoursWorked"] = "hours worked must be a number"
		hours = decimal.Zero
	}
	rate, err := decimal.NewFromString(strings.TrimSpace(c.PostForm("hourlyRate")))
	if err != nil {
		parseErrors["hourlyRate"] = "hourly rate must be a number"
		rate = decimal.NewFromInt(-1)
	}

	req := &service.SubmissionRequest{
		LecturerName: c.PostForm("lecturerName"),
		HoursWorked:  hours,
		HourlyRate:   rate,
		Notes:        c.PostForm("notes"),
	}

	file, header, err := c.Request.FormFile("supportDoc")
	if err == nil {
		defer file.Close()
		req.Document = &service.Upload{
			FileName: header.Filename,
			Size:     header.Size,
			Reader:   file,
		}
	} else if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	claim, err := h.claims.Submit(c.Request.Context(), req)
	if err != nil {
		h.renderSubmitError(c, err, parseErrors)
		return
	}

	c.Header("X-Claim-ID", claim.ID)
	c.Redirect(http.StatusSeeOther, "/Home/ClaimStatus")
}

func (h *ClaimHandler) renderSubmitError(c *gin.Context, err error, parseErrors map[string]string) {
	var verrs *model.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		fields := make(map[string]string, len(verrs.Fields))
		for k, v := range verrs.Fields {
			fields[k] = v
		}
		for k, v := range parseErrors {
			fields[k] = v
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
	case errors.Is(err, model.ErrFileTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{
			"supportDoc": "file is empty or larger than 5 MB",
		}})
	case errors.Is(err, model.ErrUnsupportedFileType):
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{
			"supportDoc": "only .pdf, .docx and .xlsx files are accepted",
		}})
	case errors.Is(err, model.ErrStorageWrite):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save the supporting document"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit claim"})
	}
}

// PendingList returns the coordinator queue, oldest submission first
// (GET /Home/CoordinatorApproval)
func (h *ClaimHandler) PendingList(c *gin.Context) {
	claims, err := h.claims.ListPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list claims"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"claims": claimViews(claims)})
}

// StatusList returns every claim, newest submission first (GET /Home/ClaimStatus)
func (h *ClaimHandler) StatusList(c *gin.Context) {
	claims, err := h.claims.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list claims"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"claims": claimViews(claims)})
}

// Approve handles the form decision (POST /Home/Approve) and redirects back
// to the pending list
func (h *ClaimHandler) Approve(c *gin.Context) {
	h.decide(c, h.claims.Approve)
}

// Reject handles the form decision (POST /Home/Reject)
func (h *ClaimHandler) Reject(c *gin.Context) {
	h.decide(c, h.claims.Reject)
}

func (h *ClaimHandler) decide(c *gin.Context, apply func(context.Context, string) (model.ClaimStatus, error)) {
	id := c.PostForm("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Claim id is required"})
		return
	}

	if _, err := apply(c.Request.Context(), id); err != nil {
		if errors.Is(err, model.ErrClaimNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Claim not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update claim"})
		return
	}

	c.Redirect(http.StatusSeeOther, "/Home/CoordinatorApproval")
}

type decisionRequest struct {
	ID string `json:"id" binding:"required"`
}

// ApproveAjax applies an approve decision and acknowledges synchronously
// without a page reload (POST /Home/ApproveAjax)
func (h *ClaimHandler) ApproveAjax(c *gin.Context) {
	h.decideAjax(c, h.claims.Approve)
}

// RejectAjax applies a reject decision (POST /Home/RejectAjax)
func (h *ClaimHandler) RejectAjax(c *gin.Context) {
	h.decideAjax(c, h.claims.Reject)
}

func (h *ClaimHandler) decideAjax(c *gin.Context, apply func(context.Context, string) (model.ClaimStatus, error)) {
	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	status, err := apply(c.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, model.ErrClaimNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Claim not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update claim"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "status": string(status)})
}

func claimViews(claims []*model.Claim) []gin.H {
	result := make([]gin.H, len(claims))
	for i, claim := range claims {
		view := gin.H{
			"id":                  claim.ID,
			"lecturer_name":       claim.LecturerName,
			"hours_worked":        claim.HoursWorked.String(),
			"hourly_rate":         claim.HourlyRate.String(),
			"hourly_rate_display": money.FormatZAR(claim.HourlyRate),
			"status":              string(claim.Status),
			"submitted_at":        claim.SubmittedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if claim.Notes != "" {
			view["notes"] = claim.Notes
		}
		if claim.DocumentFileName != "" {
			view["document_file_name"] = claim.DocumentFileName
		}
		result[i] = view
	}
	return result
}
