package report

import (
	"context"

	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
)

// PDFRenderer genera los documentos PDF (infraestructura: maroto).
type PDFRenderer interface {
	LedgerStatementPDF(ctx context.Context, st *LedgerStatement) ([]byte, error)
	PeriodSummaryPDF(ctx context.Context, s *entity.PeriodSummary) ([]byte, error)
}

// SpreadsheetRenderer genera los libros XLSX (infraestructura: excelize).
type SpreadsheetRenderer interface {
	LedgerStatementXLSX(ctx context.Context, st *LedgerStatement) ([]byte, error)
	ReportXLSX(ctx context.Context, kind entity.ReportKind, rows []entity.ReportRow) ([]byte, error)
}

// CustomerReader datos del cliente para el encabezado del estado de cuenta.
type CustomerReader interface {
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
}

// LedgerReader entradas y saldo autoritativo de un cliente.
type LedgerReader interface {
	ListByCustomer(ctx context.Context, customerID int64) ([]entity.LedgerEntry, error)
	GetDue(ctx context.Context, customerID int64) (*entity.CustomerDue, error)
}
