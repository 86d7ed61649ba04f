package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/asif-dev/machbazar-storefront/internal/app/repository"
	"github.com/asif-dev/machbazar-storefront/internal/app/service"
	"github.com/asif-dev/machbazar-storefront/internal/errors"
)

type AdminController struct {
	submissionRepo repository.SubmissionRepository
	exportService  service.ExportService
}

func NewAdminController(submissionRepo repository.SubmissionRepository, exportService service.ExportService) *AdminController {
	return &AdminController{
		submissionRepo: submissionRepo,
		exportService:  exportService,
	}
}

// ListSubmissions pages through the checkout journal
// GET /api/admin/submissions
func (ctrl *AdminController) ListSubmissions(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 200 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	submissions, total, err := ctrl.submissionRepo.List(limit, offset)
	if err != nil {
		errors.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": submissions,
		"total":       total,
	})
}

// ExportSubmissions renders the recent journal to a spreadsheet and
// returns a time-limited download link
// POST /api/admin/submissions/export
func (ctrl *AdminController) ExportSubmissions(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days < 1 || days > 365 {
		days = 30
	}

	result, err := ctrl.exportService.ExportSubmissions(
		c.Request.Context(),
		time.Now().AddDate(0, 0, -days),
	)
	if err != nil {
		errors.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"export":  result,
	})
}
