package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gasagency-backoffice/internal/application/alerts"
	"github.com/jhoicas/gasagency-backoffice/internal/application/analytics"
	"github.com/jhoicas/gasagency-backoffice/internal/application/auth"
	"github.com/jhoicas/gasagency-backoffice/internal/application/entry"
	appledger "github.com/jhoicas/gasagency-backoffice/internal/application/ledger"
	"github.com/jhoicas/gasagency-backoffice/internal/application/report"
	"github.com/jhoicas/gasagency-backoffice/internal/application/session"
	"github.com/jhoicas/gasagency-backoffice/internal/application/usecase"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	CustomerUC    *usecase.CustomerUseCase
	VariantUC     *usecase.VariantUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	PaymentModeUC *usecase.PaymentModeUseCase
	BankAccountUC *usecase.BankAccountUseCase
	LedgerUC      *appledger.UseCase
	Entries       *entry.Service
	Reports       *report.Service
	Dashboard     *analytics.UseCase
	Alerts        *alerts.Feed
	Sessions      session.Store
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token con sesión viva)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Sessions))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	adminOnly := RequireRole(entity.RoleAdmin)
	backOffice := RequireRole(entity.RoleAdmin, entity.RoleAccountant)

	// Clientes: rutas específicas antes de /:id
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	reportHandler := NewReportHandler(deps.Reports)
	customers.Get("/search", customerHandler.Search)
	customers.Get("/:id/variants", customerHandler.EligibleVariants)
	customers.Get("/:id/due", ledgerHandler.Due)
	customers.Get("/:id/ledger", ledgerHandler.Get)
	customers.Get("/:id/ledger/statement.pdf", backOffice, reportHandler.LedgerPDF)
	customers.Get("/:id/ledger/statement.xlsx", backOffice, reportHandler.LedgerXLSX)
	customers.Put("/:id/ledger/:entryId", backOffice, ledgerHandler.UpdateEntry)
	NewCatalogHandler[entity.Customer, entity.CustomerInput](deps.CustomerUC).Mount(customers, adminOnly)

	variants := protected.Group("/variants")
	variants.Put("/:id/pricing", adminOnly, NewVariantHandler(deps.VariantUC).UpsertPricing)
	NewCatalogHandler[entity.Variant, entity.VariantInput](deps.VariantUC).Mount(variants, adminOnly)

	NewCatalogHandler[entity.Warehouse, entity.WarehouseInput](deps.WarehouseUC).Mount(protected.Group("/warehouses"), adminOnly)
	NewCatalogHandler[entity.PaymentMode, entity.PaymentModeInput](deps.PaymentModeUC).Mount(protected.Group("/payment-modes"), adminOnly)
	NewCatalogHandler[entity.BankAccount, entity.BankAccountInput](deps.BankAccountUC).Mount(protected.Group("/bank-accounts"), adminOnly)

	// Formularios transaccionales (cualquier rol autenticado)
	NewEntryHandler(deps.Entries).Mount(protected.Group("/entries"))

	reports := protected.Group("/reports", backOffice)
	reports.Get("/summary/pdf", reportHandler.SummaryPDF)
	reports.Get("/:kind", reportHandler.List)
	reports.Get("/:kind/export", reportHandler.Export)

	dashboardHandler := NewDashboardHandler(deps.Dashboard, deps.Alerts)
	protected.Get("/dashboard", dashboardHandler.Get)
	protected.Get("/alerts", dashboardHandler.Alerts)
	protected.Delete("/alerts", dashboardHandler.DismissAlert)
}
