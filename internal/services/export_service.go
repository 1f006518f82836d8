package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/hireloop/jobboard-service/internal/repositories"
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

var applicationExportHeader = []string{
	"Application ID", "Status", "Applied At",
	"Last Name", "First Name", "Email", "Phone", "Title",
}

// ApplicationsByPosition renders one worksheet with a header row and one
// row per application, admin row included.
func (s *exportService) ApplicationsByPosition(ctx context.Context, positionID, userID string) (*excelize.File, error) {
	s.logger.Info("Exporting applications", "position_id", positionID, "user_id", userID)

	position, err := s.repo.Position().GetByID(ctx, positionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("position", positionID, "The position specified is not in database")
		}
		return nil, fmt.Errorf("failed to get position: %w", err)
	}

	if position.OwnerID != userID {
		return nil, NewPermissionError(userID, "application", "export", "User not allowed to this operation")
	}

	applications, err := s.repo.Application().ListByPositionWithUsers(ctx, positionID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Applications"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, title := range applicationExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, application := range applications {
		row := []interface{}{
			application.ID,
			string(application.Status),
			application.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if application.User != nil {
			row = append(row,
				application.User.LastName,
				application.User.FirstName,
				application.User.Email,
				application.User.Phone,
				application.User.Title,
			)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to build row cell: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	s.logger.Info("Applications exported", "position_id", positionID, "count", len(applications))

	return f, nil
}
