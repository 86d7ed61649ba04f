package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/asif-dev/machbazar-storefront/internal/app/model"
	"github.com/asif-dev/machbazar-storefront/internal/app/repository"
	"github.com/asif-dev/machbazar-storefront/pkg/logger"
)

const exportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportArchive stores generated export files and hands out download links.
// Satisfied by storage.S3Storage.
type ExportArchive interface {
	Upload(ctx context.Context, key, contentType string, body []byte) error
	PresignDownload(ctx context.Context, key string, expires time.Duration) (string, error)
}

// ExportResult describes one generated submission export.
type ExportResult struct {
	Key         string `json:"key"`
	DownloadURL string `json:"downloadUrl"`
	Rows        int    `json:"rows"`
}

// ExportService renders the submission journal to a spreadsheet for the
// operations team and archives it.
type ExportService interface {
	ExportSubmissions(ctx context.Context, since time.Time) (*ExportResult, error)
}

type exportService struct {
	submissionRepo repository.SubmissionRepository
	archive        ExportArchive
	linkTTL        time.Duration
}

func NewExportService(submissionRepo repository.SubmissionRepository, archive ExportArchive, linkTTL time.Duration) ExportService {
	return &exportService{
		submissionRepo: submissionRepo,
		archive:        archive,
		linkTTL:        linkTTL,
	}
}

func (s *exportService) ExportSubmissions(ctx context.Context, since time.Time) (*ExportResult, error) {
	submissions, err := s.submissionRepo.FindRecent(since)
	if err != nil {
		return nil, err
	}

	body, err := renderSubmissionSheet(submissions)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("exports/submissions-%s-%s.xlsx",
		time.Now().Format("20060102"), uuid.New().String()[:8])

	if err := s.archive.Upload(ctx, key, exportContentType, body); err != nil {
		return nil, err
	}

	url, err := s.archive.PresignDownload(ctx, key, s.linkTTL)
	if err != nil {
		return nil, err
	}

	logger.Info("submission export generated", map[string]interface{}{
		"key":  key,
		"rows": len(submissions),
	})

	return &ExportResult{
		Key:         key,
		DownloadURL: url,
		Rows:        len(submissions),
	}, nil
}

func renderSubmissionSheet(submissions []model.OrderSubmission) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Submissions"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"ID", "Created", "Cart Key", "User ID", "Zone", "Payment",
		"Items", "Regular Order", "Fish Order", "Subtotal",
		"Shipping Fee", "Total", "Weight (kg)", "Status", "Failure Detail",
	}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, sub := range submissions {
		userID := ""
		if sub.UserID != nil {
			userID = fmt.Sprintf("%d", *sub.UserID)
		}
		values := []interface{}{
			sub.ID,
			sub.CreatedAt.Format(time.RFC3339),
			sub.CartKey,
			userID,
			string(sub.Zone),
			string(sub.PaymentMethod),
			sub.ItemCount,
			sub.RegularOrderID,
			sub.FishOrderID,
			sub.Subtotal,
			sub.ShippingFee,
			sub.TotalAmount,
			sub.WeightKg,
			string(sub.Status),
			sub.FailureDetail,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
