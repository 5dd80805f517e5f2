package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

const (
	// ContentType is the MIME type of the generated workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// HoldingsSheet lists one row per holding.
	HoldingsSheet = "Holdings"
	// SectorsSheet lists the per-sector totals.
	SectorsSheet = "Sectors"
	// SummarySheet holds the portfolio-wide totals as metric/value pairs.
	SummarySheet = "Summary"

	defaultSheet = "Sheet1"
)

var holdingHeaders = []string{
	"Name", "Symbol", "Exchange", "Sector", "Purchase Price", "Quantity", "Investment",
	"Portfolio %", "CMP", "Present Value", "Gain/Loss", "Gain/Loss %", "P/E Ratio", "Latest Earnings",
}

var sectorHeaders = []string{
	"Sector", "Holdings", "Total Investment", "Total Present Value", "Total Gain/Loss", "Gain/Loss %",
}

// XLSXGenerator renders a portfolio snapshot as an Excel workbook.
type XLSXGenerator struct{}

// NewXLSXGenerator creates a new XLSXGenerator.
func NewXLSXGenerator() *XLSXGenerator {
	return &XLSXGenerator{}
}

// Generate writes the rows, the sector groups and the summary to separate
// sheets. Values that are unknown (no live price, no P/E) are left blank.
func (g *XLSXGenerator) Generate(ctx context.Context, portfolio model.Portfolio) ([]byte, error) {
	rqID := logging.RequestID(ctx)
	op := "XLSXGenerator.Generate"

	slog.Debug("Generate start", slog.String("rqID", rqID), slog.String("op", op))

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("got error while closing file", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		}
	}()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#cfe2f3"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := g.fillHoldings(f, headerStyle, portfolio.Rows); err != nil {
		return nil, err
	}
	if err := g.fillSectors(f, headerStyle, portfolio.Sectors); err != nil {
		return nil, err
	}
	if err := g.fillSummary(f, headerStyle, portfolio.Summary); err != nil {
		return nil, err
	}

	if err := f.DeleteSheet(defaultSheet); err != nil {
		slog.Error("got error while deleting Sheet1", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		slog.Error("got error while saving file to bytes buffer", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	slog.Debug("Generate completed", slog.String("rqID", rqID), slog.String("op", op))

	return buf.Bytes(), nil
}

func (g *XLSXGenerator) fillHoldings(f *excelize.File, headerStyle int, rows []model.PortfolioRow) error {
	if err := newSheetWithHeader(f, HoldingsSheet, holdingHeaders, headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		values := []any{
			row.Name,
			optional(row.Symbol),
			optional(row.Exchange),
			row.Sector,
			row.PurchasePrice,
			row.Quantity,
			row.Investment,
			row.PortfolioPercent,
			optional(row.CMP),
			optional(row.PresentValue),
			optional(row.GainLoss),
			optional(row.GainLossPercent),
			optional(row.PERatio),
			optional(row.LatestEarnings),
		}
		if err := writeRow(f, HoldingsSheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func (g *XLSXGenerator) fillSectors(f *excelize.File, headerStyle int, groups []model.SectorGroup) error {
	if err := newSheetWithHeader(f, SectorsSheet, sectorHeaders, headerStyle); err != nil {
		return err
	}

	for i, group := range groups {
		values := []any{
			group.Sector,
			len(group.Holdings),
			group.TotalInvestment,
			group.TotalPresentValue,
			group.TotalGainLoss,
			group.GainLossPercent,
		}
		if err := writeRow(f, SectorsSheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func (g *XLSXGenerator) fillSummary(f *excelize.File, headerStyle int, summary model.PortfolioSummary) error {
	if err := newSheetWithHeader(f, SummarySheet, []string{"Metric", "Value"}, headerStyle); err != nil {
		return err
	}

	var lastUpdated any
	if summary.LastUpdated != nil {
		lastUpdated = *summary.LastUpdated
	}

	lines := [][]any{
		{"Total Investment", summary.TotalInvestment},
		{"Total Present Value", summary.TotalPresentValue},
		{"Total Gain/Loss", summary.TotalGainLoss},
		{"Total Gain/Loss %", summary.TotalGainLossPercent},
		{"Total Holdings", summary.TotalHoldings},
		{"Last Updated (unix ms)", lastUpdated},
	}
	for i, line := range lines {
		if err := writeRow(f, SummarySheet, i+2, line); err != nil {
			return err
		}
	}
	return nil
}

func newSheetWithHeader(f *excelize.File, sheet string, headers []string, style int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	values := make([]any, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	if err := writeRow(f, sheet, 1, values); err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style header of %s: %w", sheet, err)
	}
	return nil
}

// writeRow writes values starting at column A of row. Nil values leave the cell blank.
func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row, sheet, err)
	}
	return nil
}

// optional dereferences p, returning nil for a nil pointer so the cell stays empty.
func optional[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
