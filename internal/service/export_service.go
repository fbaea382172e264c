package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Frey210/SiWarga/internal/dto"
	"github.com/Frey210/SiWarga/internal/repository"
)

var ErrExportGenerateFail = errors.New("generate export file failed")

// ExportService produces the admin submissions export.
//
// The export applies the same filters as the review queue and returns the
// spreadsheet as a buffer; the handler sets the download headers.
type ExportService interface {
	ExportSubmissions(ctx context.Context, req *dto.AdminListSubmissionsRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates the ExportService implementation.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var exportHeader = []string{
	"Submission ID", "Owner Email", "Owner Name", "Owner NIK",
	"Type", "Status", "Created At", "Updated At",
}

func (s *exportService) ExportSubmissions(ctx context.Context, req *dto.AdminListSubmissionsRequest) (*bytes.Buffer, string, error) {
	filters := &repository.AdminSubmissionFilters{
		Status: req.Status,
		Type:   req.Type,
		Query:  req.Q,
	}

	// the export is unpaginated: one row per matching submission
	subs, _, err := s.repo.Submission.AdminList(ctx, filters, 0, -1)
	if err != nil {
		s.logger.Error("query submissions for export failed", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Submissions"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}

	for i := range subs {
		sub := &subs[i]
		row := []interface{}{
			sub.SubmissionID, "", "", "",
			sub.Type, sub.Status,
			sub.CreatedAt.Format(time.RFC3339),
			sub.UpdatedAt.Format(time.RFC3339),
		}
		if sub.Owner != nil {
			row[1] = sub.Owner.Email
			row[2] = sub.Owner.FullName
			row[3] = sub.Owner.NIK
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("write export buffer failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("submissions-%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}
