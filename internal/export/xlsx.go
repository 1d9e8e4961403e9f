package export

import (
	"fmt"

	"github.com/naka-gawa/dockerhub-pulls/internal/domain"
	"github.com/xuri/excelize/v2"
)

// XLSXSheet is the worksheet name used in xlsx snapshots.
const XLSXSheet = "Repositories"

// XLSXWriter writes xlsx snapshots with a single worksheet.
type XLSXWriter struct{}

func (XLSXWriter) Write(path string, repositories []*domain.Repository) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", XLSXSheet); err != nil {
		return fmt.Errorf("failed to name worksheet: %w", err)
	}
	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(XLSXSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, repo := range repositories {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{repo.Name, repo.PullCount, repo.Overview}
		if err := f.SetSheetRow(XLSXSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s: %w", repo.Name, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
