// Package report reportes tabulares y exportaciones (PDF y XLSX) a partir de datos que el backend
// ya entrega agregados. Lo único que se calcula aquí es el saldo acumulado del estado de cuenta.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gasagency-backoffice/internal/domain"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/ledger"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/repository"
	"github.com/jhoicas/gasagency-backoffice/pkg/logger"
)

// maxExportRows tope de filas de un reporte exportado a XLSX.
const maxExportRows = 5000

// LedgerStatement estado de cuenta de un cliente en orden cronológico.
type LedgerStatement struct {
	Customer    entity.Customer
	Lines       []ledger.RunningLine
	Totals      ledger.Totals
	Balances    ledger.BalanceSummary
	DerivedDue  decimal.Decimal // saldo acumulado reconstruido
	ServerDue   decimal.Decimal // saldo autoritativo del backend
	GeneratedAt time.Time
}

// Diverges indica que el saldo reconstruido no coincide con el del servidor. No se corrige:
// el documento lo señala y el servidor manda.
func (s *LedgerStatement) Diverges() bool {
	return !s.DerivedDue.Equal(s.ServerDue)
}

// File documento generado.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Content types de las exportaciones.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Service reportes y exportaciones.
type Service struct {
	reports   repository.ReportRepository
	ledger    LedgerReader
	customers CustomerReader
	pdf       PDFRenderer
	xlsx      SpreadsheetRenderer
	log       *logger.Logger
	now       func() time.Time
}

// NewService construye el servicio.
func NewService(
	reports repository.ReportRepository,
	ledgerRepo LedgerReader,
	customers CustomerReader,
	pdf PDFRenderer,
	xlsx SpreadsheetRenderer,
	log *logger.Logger,
) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		reports: reports, ledger: ledgerRepo, customers: customers,
		pdf: pdf, xlsx: xlsx, log: log, now: time.Now,
	}
}

// List reporte tabular paginado.
func (s *Service) List(ctx context.Context, kind entity.ReportKind, q entity.ReportQuery) (*entity.Page[entity.ReportRow], error) {
	if err := checkQuery(kind, q); err != nil {
		return nil, err
	}
	q.PageQuery = q.PageQuery.Normalize()
	return s.reports.List(ctx, kind, q)
}

// ExportXLSX recorre todas las páginas del reporte y lo exporta a XLSX.
func (s *Service) ExportXLSX(ctx context.Context, kind entity.ReportKind, q entity.ReportQuery) (*File, error) {
	if err := checkQuery(kind, q); err != nil {
		return nil, err
	}
	q.PageQuery = entity.PageQuery{Page: 0, Size: 100}
	var rows []entity.ReportRow
	for {
		page, err := s.reports.List(ctx, kind, q)
		if err != nil {
			return nil, err
		}
		rows = append(rows, page.Items...)
		if len(page.Items) == 0 || q.Page+1 >= page.TotalPages || len(rows) >= maxExportRows {
			break
		}
		q.Page++
	}
	if len(rows) > maxExportRows {
		rows = rows[:maxExportRows]
	}
	data, err := s.xlsx.ReportXLSX(ctx, kind, rows)
	if err != nil {
		return nil, fmt.Errorf("exportar %s: %w", kind, err)
	}
	return &File{
		Name:        fmt.Sprintf("%s_%s_%s.xlsx", kind, q.From.String(), q.To.String()),
		ContentType: ContentTypeXLSX,
		Data:        data,
	}, nil
}

// Statement arma el estado de cuenta y registra si el saldo reconstruido difiere del servidor.
func (s *Service) Statement(ctx context.Context, customerID int64) (*LedgerStatement, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	entries, err := s.ledger.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	due, err := s.ledger.GetDue(ctx, customerID)
	if err != nil {
		return nil, err
	}
	lines, derived := ledger.RunningBalance(entries)
	st := &LedgerStatement{
		Customer:    *customer,
		Lines:       lines,
		Totals:      ledger.ComputeTotals(entries),
		Balances:    ledger.MostRecentBalancePerVariant(entries),
		DerivedDue:  derived,
		ServerDue:   due.DueAmount,
		GeneratedAt: s.now(),
	}
	if st.Diverges() {
		s.log.Warn().
			Int64("customer_id", customerID).
			Str("derived_due", derived.StringFixed(2)).
			Str("server_due", due.DueAmount.StringFixed(2)).
			Msg("report: saldo acumulado difiere del saldo del servidor")
	}
	return st, nil
}

// LedgerPDF estado de cuenta en PDF.
func (s *Service) LedgerPDF(ctx context.Context, customerID int64) (*File, error) {
	st, err := s.Statement(ctx, customerID)
	if err != nil {
		return nil, err
	}
	data, err := s.pdf.LedgerStatementPDF(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("estado de cuenta %d: %w", customerID, err)
	}
	return &File{Name: statementName(st, "pdf"), ContentType: ContentTypePDF, Data: data}, nil
}

// LedgerXLSX estado de cuenta en XLSX.
func (s *Service) LedgerXLSX(ctx context.Context, customerID int64) (*File, error) {
	st, err := s.Statement(ctx, customerID)
	if err != nil {
		return nil, err
	}
	data, err := s.xlsx.LedgerStatementXLSX(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("estado de cuenta %d: %w", customerID, err)
	}
	return &File{Name: statementName(st, "xlsx"), ContentType: ContentTypeXLSX, Data: data}, nil
}

// SummaryPDF resumen del periodo en PDF.
func (s *Service) SummaryPDF(ctx context.Context, from, to entity.Date) (*File, error) {
	if err := checkPeriod(from, to); err != nil {
		return nil, err
	}
	sum, err := s.reports.PeriodSummary(ctx, from, to)
	if err != nil {
		return nil, err
	}
	data, err := s.pdf.PeriodSummaryPDF(ctx, sum)
	if err != nil {
		return nil, fmt.Errorf("resumen %s..%s: %w", from, to, err)
	}
	return &File{
		Name:        fmt.Sprintf("resumen_%s_%s.pdf", from.String(), to.String()),
		ContentType: ContentTypePDF,
		Data:        data,
	}, nil
}

func statementName(st *LedgerStatement, ext string) string {
	return fmt.Sprintf("estado_cuenta_%d_%s.%s", st.Customer.ID, st.GeneratedAt.Format("20060102"), ext)
}

func checkQuery(kind entity.ReportKind, q entity.ReportQuery) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: reporte desconocido %q", domain.ErrInvalidInput, kind)
	}
	return checkPeriod(q.From, q.To)
}

func checkPeriod(from, to entity.Date) error {
	if !from.IsZero() && !to.IsZero() && from.After(to.Time) {
		return fmt.Errorf("%w: la fecha inicial es posterior a la final", domain.ErrInvalidInput)
	}
	return nil
}
