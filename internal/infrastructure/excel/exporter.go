// Package excel exporta el estado de cuenta y los reportes tabulares a XLSX con excelize.
package excel

import (
	"context"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/gasagency-backoffice/internal/application/report"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
)

var _ report.SpreadsheetRenderer = (*Exporter)(nil)

const (
	sheetLedger  = "Estado de cuenta"
	sheetReport  = "Reporte"
	numFmtAmount = 4 // #,##0.00
)

var ledgerHeadings = []any{
	"Fecha", "Tipo", "Referencia", "Variante", "Llenos", "Vacíos", "Balance",
	"Total", "Recibido", "Saldo fila", "Acumulado", "Saldo servidor",
}

// Exporter implementa report.SpreadsheetRenderer.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// LedgerStatementXLSX una fila por entrada en orden cronológico, más el bloque de totales.
func (x *Exporter) LedgerStatementXLSX(_ context.Context, st *report.LedgerStatement) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetLedger); err != nil {
		return nil, fmt.Errorf("excel: hoja: %w", err)
	}
	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	if err := f.SetCellValue(sheetLedger, "A1", st.Customer.Name); err != nil {
		return nil, err
	}
	_ = f.SetCellValue(sheetLedger, "A2", "Generado: "+st.GeneratedAt.Format("02/01/2006 15:04"))
	_ = f.SetCellStyle(sheetLedger, "A1", "A1", styles.title)

	if err := f.SetSheetRow(sheetLedger, "A4", &ledgerHeadings); err != nil {
		return nil, fmt.Errorf("excel: encabezados: %w", err)
	}
	_ = f.SetCellStyle(sheetLedger, "A4", cell(len(ledgerHeadings), 4), styles.header)

	rowNo := 5
	for _, l := range st.Lines {
		e := l.Entry
		values := []any{
			e.TransactionDate.String(), string(e.RefType), e.RefID, e.VariantName,
			e.FilledOut, e.EmptyIn, e.Balance,
			e.TotalAmount.InexactFloat64(), e.AmountReceived.InexactFloat64(),
			l.RowDue.InexactFloat64(), l.Running.InexactFloat64(), e.DueAmount.InexactFloat64(),
		}
		if err := f.SetSheetRow(sheetLedger, cell(1, rowNo), &values); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", rowNo, err)
		}
		rowNo++
	}
	if rowNo > 5 {
		_ = f.SetCellStyle(sheetLedger, cell(8, 5), cell(12, rowNo-1), styles.amount)
	}

	rowNo++
	summary := []struct {
		label string
		value any
	}{
		{"Llenos entregados", st.Totals.FilledOut},
		{"Vacíos recibidos", st.Totals.EmptyIn},
		{"Total facturado", st.Totals.TotalAmount.InexactFloat64()},
		{"Total recibido", st.Totals.AmountReceived.InexactFloat64()},
		{"Saldo acumulado (calculado)", st.DerivedDue.InexactFloat64()},
		{"Saldo pendiente (servidor)", st.ServerDue.InexactFloat64()},
		{"Llenos pendientes", st.Balances.PendingFilled},
	}
	for _, s := range summary {
		_ = f.SetCellValue(sheetLedger, cell(10, rowNo), s.label)
		_ = f.SetCellValue(sheetLedger, cell(11, rowNo), s.value)
		_ = f.SetCellStyle(sheetLedger, cell(10, rowNo), cell(10, rowNo), styles.header)
		rowNo++
	}
	if st.Diverges() {
		_ = f.SetCellValue(sheetLedger, cell(10, rowNo), "Atención: el saldo calculado difiere del saldo del servidor; el del servidor es el vigente.")
		_ = f.SetCellStyle(sheetLedger, cell(10, rowNo), cell(10, rowNo), styles.warn)
	}

	_ = f.SetColWidth(sheetLedger, "A", "A", 12)
	_ = f.SetColWidth(sheetLedger, "D", "D", 14)
	_ = f.SetColWidth(sheetLedger, "H", "L", 14)
	_ = f.SetPanes(sheetLedger, &excelize.Panes{Freeze: true, YSplit: 4, TopLeftCell: "A5", ActivePane: "bottomLeft"})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

// ReportXLSX vuelca filas genéricas; las columnas son la unión ordenada de las claves.
func (x *Exporter) ReportXLSX(_ context.Context, kind entity.ReportKind, rows []entity.ReportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetReport); err != nil {
		return nil, fmt.Errorf("excel: hoja: %w", err)
	}
	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	_ = f.SetCellValue(sheetReport, "A1", "Reporte: "+string(kind))
	_ = f.SetCellStyle(sheetReport, "A1", "A1", styles.title)

	cols := columns(rows)
	headings := make([]any, len(cols))
	for i, c := range cols {
		headings[i] = c
	}
	if len(cols) > 0 {
		if err := f.SetSheetRow(sheetReport, "A3", &headings); err != nil {
			return nil, fmt.Errorf("excel: encabezados: %w", err)
		}
		_ = f.SetCellStyle(sheetReport, "A3", cell(len(cols), 3), styles.header)
	}
	for i, r := range rows {
		values := make([]any, len(cols))
		for j, c := range cols {
			values[j] = r[c]
		}
		if err := f.SetSheetRow(sheetReport, cell(1, i+4), &values); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", i+4, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

type styleSet struct {
	title, header, amount, warn int
}

func newStyles(f *excelize.File) (styleSet, error) {
	var s styleSet
	var err error
	if s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14, Color: "00467F"}}); err != nil {
		return s, fmt.Errorf("excel: estilo: %w", err)
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "00467F"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E8EEF5"}},
	}); err != nil {
		return s, fmt.Errorf("excel: estilo: %w", err)
	}
	if s.amount, err = f.NewStyle(&excelize.Style{NumFmt: numFmtAmount}); err != nil {
		return s, fmt.Errorf("excel: estilo: %w", err)
	}
	if s.warn, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Color: "B4281E"}}); err != nil {
		return s, fmt.Errorf("excel: estilo: %w", err)
	}
	return s, nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func columns(rows []entity.ReportRow) []string {
	seen := make(map[string]struct{})
	for _, r := range rows {
		for k := range r {
			seen[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
