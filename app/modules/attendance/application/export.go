package attendanceservice

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	attendancedomain "github.com/hnaspl/woltk-calendar/app/modules/attendance/domain"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

const exportSheet = "Attendance"

// ExportSummary writes the guild's attendance summary as an xlsx
// workbook, one row per character. Success carries []byte.
func (s *AttendanceService) ExportSummary(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "ExportSummary", 0, func(ctx context.Context) (results.OperationResult, error) {
		summaries, err := s.repo.Summarize(ctx, guildID)
		if err != nil {
			return results.OperationResult{}, err
		}
		data, err := buildSummaryWorkbook(summaries)
		if err != nil {
			return results.OperationResult{}, fmt.Errorf("export summary: %w", err)
		}
		return results.SuccessResult(data), nil
	})
}

func buildSummaryWorkbook(summaries []attendancedomain.CharacterSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headers := []string{"Character", "Attended", "Late", "No Show", "Benched", "Backup", "Rate"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, err
		}
	}

	for row, summary := range summaries {
		values := []any{
			summary.CharacterName,
			summary.Attended,
			summary.Late,
			summary.NoShow,
			summary.Benched,
			summary.Backup,
			fmt.Sprintf("%.1f%%", summary.Rate()*100),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
