package db

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"isimm-manager/models"
)

const exportSheet = "Niveaus"

var excelHeader = []interface{}{"ID", "Classe", "Tp", "Td", "Semestre"}

// ImportNiveausFromExcel reads an Excel file stream and creates one niveau per
// row. Columns are classe, tp, td and an optional semestre ID; the first row
// is a header. A leading ID column, as written by ExportNiveausToExcel, is
// ignored so exported workbooks can be imported again.
func (s *RedisService) ImportNiveausFromExcel(ctx context.Context, file io.Reader) (int, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return 0, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			s.log.Warn("Error closing excel file", zap.Error(err))
		}
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return 0, errors.New("excel file does not contain any sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return 0, fmt.Errorf("failed to get rows from sheet %s: %w", sheetName, err)
	}

	offset := 0
	if len(rows) > 0 && len(rows[0]) > 0 && strings.EqualFold(strings.TrimSpace(rows[0][0]), "id") {
		offset = 1
	}

	toAdd := []models.Niveau{}
	for i, row := range rows {
		if i == 0 {
			continue // Skip header row
		}
		cell := func(col int) string {
			col += offset
			if len(row) > col {
				return strings.TrimSpace(row[col])
			}
			return ""
		}

		n := models.Niveau{Classe: cell(0), Tp: cell(1), Td: cell(2)}
		if n.Classe == "" && n.Tp == "" && n.Td == "" {
			s.log.Debug("Skipping empty row", zap.Int("row", i+1))
			continue
		}
		if raw := cell(3); raw != "" {
			semestreID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				s.log.Warn("Skipping row with invalid semestre", zap.Int("row", i+1), zap.String("semestre", raw))
				continue
			}
			n.Semestre = &models.SemestreRef{ID: semestreID}
		}
		toAdd = append(toAdd, n)
	}

	imported := 0
	for _, n := range toAdd {
		if _, err := s.CreateNiveau(ctx, n); err != nil {
			s.log.Error("Error adding niveau during import", zap.String("classe", n.Classe), zap.Error(err))
			continue
		}
		imported++
	}

	s.log.Info("Imported niveaus", zap.Int("count", imported), zap.Int("rows", len(toAdd)))
	return imported, nil
}

// ExportNiveausToExcel writes every niveau, ordered by sort, as a workbook
func (s *RedisService) ExportNiveausToExcel(ctx context.Context, w io.Writer, sort models.SortSpec) (int, error) {
	niveaus, err := s.GetAllNiveaus(ctx, sort)
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.log.Warn("Error closing excel file", zap.Error(err))
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return 0, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &excelHeader); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	for i, n := range niveaus {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, err
		}
		var semestre interface{}
		if id := n.SemestreID(); id != 0 {
			semestre = id
		}
		row := []interface{}{n.ID, n.Classe, n.Tp, n.Td, semestre}
		if err := f.SetSheetRow(exportSheet, cellRef, &row); err != nil {
			return 0, fmt.Errorf("failed to write niveau %d: %w", n.ID, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return 0, fmt.Errorf("failed to write workbook: %w", err)
	}
	return len(niveaus), nil
}
