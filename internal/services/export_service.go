package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/gurkanindibay/portfolio/internal/models"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Projects"

var exportHeader = []interface{}{
	"Name", "Description", "Language", "Stars", "Forks", "Topics", "Featured", "Updated", "URL", "Homepage",
}

type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// WriteProjects writes projects as an xlsx workbook with one row per
// project below a header row.
func (s *ExportService) WriteProjects(w io.Writer, projects []*models.Project) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(exportSheet, "A1", "J1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, project := range projects {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		row := []interface{}{
			project.Name,
			project.Description,
			stringOrEmpty(project.Language),
			project.Stars,
			project.Forks,
			strings.Join(project.Tags(), ", "),
			yesNo(project.IsFeatured),
			project.Updated.Format("2006-01-02"),
			project.URL,
			stringOrEmpty(project.Homepage),
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", project.Name, err)
		}
	}

	if err := f.SetColWidth(exportSheet, "A", "B", 30); err != nil {
		return err
	}

	return f.Write(w)
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
