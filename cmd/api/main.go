package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/gasagency-backoffice/internal/application/alerts"
	"github.com/jhoicas/gasagency-backoffice/internal/application/analytics"
	"github.com/jhoicas/gasagency-backoffice/internal/application/auth"
	"github.com/jhoicas/gasagency-backoffice/internal/application/cache"
	"github.com/jhoicas/gasagency-backoffice/internal/application/entry"
	"github.com/jhoicas/gasagency-backoffice/internal/application/events"
	appledger "github.com/jhoicas/gasagency-backoffice/internal/application/ledger"
	"github.com/jhoicas/gasagency-backoffice/internal/application/report"
	"github.com/jhoicas/gasagency-backoffice/internal/application/session"
	"github.com/jhoicas/gasagency-backoffice/internal/application/usecase"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
	"github.com/jhoicas/gasagency-backoffice/internal/infrastructure/backend"
	infraexcel "github.com/jhoicas/gasagency-backoffice/internal/infrastructure/excel"
	infrakafka "github.com/jhoicas/gasagency-backoffice/internal/infrastructure/kafka"
	infrapdf "github.com/jhoicas/gasagency-backoffice/internal/infrastructure/pdf"
	infraredis "github.com/jhoicas/gasagency-backoffice/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/gasagency-backoffice/internal/interfaces/http"
	"github.com/jhoicas/gasagency-backoffice/pkg/config"
	"github.com/jhoicas/gasagency-backoffice/pkg/debounce"
	"github.com/jhoicas/gasagency-backoffice/pkg/logger"
	"github.com/jhoicas/gasagency-backoffice/pkg/money"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.BaseURL).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// ── Sesiones y cliente del backend ─────────────────────────────────────────
	sessions := session.NewMemoryStore()
	client, err := backend.NewClient(backend.Config{
		BaseURL:        cfg.Backend.BaseURL,
		Timeout:        cfg.Backend.Timeout,
		MaxRetries:     cfg.Backend.MaxRetries,
		RetryBaseDelay: cfg.Backend.RetryBaseDelay,
		RefreshPath:    cfg.Backend.RefreshPath,
	},
		backend.WithLogger(log.Component("backend")),
		backend.WithSessionExpiredHandler(sessions.Delete),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("cliente del backend")
	}

	// ── Caché: Redis si está configurado, memoria si no ────────────────────────
	var store cache.Store = cache.NewMemoryStore()
	if cfg.Cache.RedisAddr != "" {
		rdb, err := infraredis.NewClient(rootCtx, infraredis.Config{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		store = infraredis.NewCacheStore(rdb, cfg.Cache.KeyPrefix)
		log.Info().Str("addr", cfg.Cache.RedisAddr).Msg("caché compartida en Redis")
	}

	bus := events.NewBus(log.Component("events"))

	// ── Datos de referencia ────────────────────────────────────────────────────
	ttl := cfg.Cache.ActiveListTTL
	catalogLog := log.Component("catalog")
	variantRepo := backend.NewVariantRepository(client)
	variantUC := usecase.NewVariantUseCase(
		usecase.NewCatalogUseCase[entity.Variant, entity.VariantInput](variantRepo,
			cache.NewEntry[[]entity.Variant](store, "variants:active", ttl), bus, events.VariantChanged, catalogLog),
		variantRepo,
	)
	customerUC := usecase.NewCustomerUseCase(
		usecase.NewCatalogUseCase[entity.Customer, entity.CustomerInput](backend.NewCustomerRepository(client),
			cache.NewEntry[[]entity.Customer](store, "customers:active", ttl), bus, events.CustomerChanged, catalogLog),
		variantUC,
		debounce.New[[]entity.Customer](cfg.Search.DebounceWindow),
	)
	if err := bus.Subscribe(customerUC.OnCustomerChanged, events.CustomerChanged); err != nil {
		log.Fatal().Err(err).Msg("suscripción de búsqueda de clientes")
	}
	warehouseUC := usecase.NewCatalogUseCase[entity.Warehouse, entity.WarehouseInput](backend.NewWarehouseRepository(client),
		cache.NewEntry[[]entity.Warehouse](store, "warehouses:active", ttl), bus, events.WarehouseChanged, catalogLog)
	paymentModeUC := usecase.NewCatalogUseCase[entity.PaymentMode, entity.PaymentModeInput](backend.NewPaymentModeRepository(client),
		cache.NewEntry[[]entity.PaymentMode](store, "payment-modes:active", ttl), bus, events.PaymentModeChanged, catalogLog)
	bankAccountUC := usecase.NewCatalogUseCase[entity.BankAccount, entity.BankAccountInput](backend.NewBankAccountRepository(client),
		cache.NewEntry[[]entity.BankAccount](store, "bank-accounts:active", ttl), bus, events.BankAccountChanged, catalogLog)

	// ── Ledger, formularios, reportes, dashboard ───────────────────────────────
	ledgerRepo := backend.NewLedgerRepository(client)
	ledgerUC := appledger.NewUseCase(ledgerRepo, bus, cfg.Ledger.EditableWindow, log.Component("ledger"))

	entries := entry.NewService(entry.Deps{
		Gateway:  backend.NewTransactionGateway(client),
		Modes:    paymentModeUC,
		Variants: customerUC,
		Dues:     ledgerUC,
		Bus:      bus,
		Log:      log.Component("entry"),
	})

	reportRepo := backend.NewReportRepository(client)
	reports := report.NewService(
		reportRepo, ledgerRepo, customerUC,
		infrapdf.NewMarotoPDFGenerator(cfg.App.AgencyName, money.NewFormatter(cfg.App.Locale)),
		infraexcel.NewExporter(),
		log.Component("report"),
	)

	dashboardUC := analytics.NewUseCase(reportRepo, store, cfg.Cache.DashboardTTL, log.Component("dashboard"))
	if err := bus.Subscribe(dashboardUC.OnTransaction, events.AllTransactions()...); err != nil {
		log.Fatal().Err(err).Msg("suscripción del dashboard")
	}

	authUC := auth.NewUseCase(backend.NewAuthGateway(client), sessions, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Session.TTL, log.Component("auth"))

	// ── Alertas: push por Kafka y polling de respaldo ──────────────────────────
	feed := alerts.NewFeed(reportRepo, cfg.Alerts.PollInterval, cfg.Alerts.MaxAlerts, log.Component("alerts"))
	var workers sync.WaitGroup
	if brokers := cfg.Alerts.Brokers(); len(brokers) > 0 {
		reader, err := infrakafka.NewReader(infrakafka.ReaderConfig{
			Brokers: brokers,
			Topic:   cfg.Alerts.KafkaTopic,
			GroupID: cfg.Alerts.KafkaGroupID,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("lector Kafka")
		}
		consumer := infrakafka.NewAlertConsumer(reader, feed, log.Component("kafka"))
		workers.Add(1)
		go func() {
			defer workers.Done()
			if err := consumer.Run(rootCtx); err != nil {
				log.Error().Err(err).Msg("consumidor de alertas")
			}
		}()
	} else {
		log.Info().Msg("sin brokers Kafka: alertas solo por polling")
	}

	// Barrido periódico de sesiones expiradas
	workers.Add(1)
	go func() {
		defer workers.Done()
		t := time.NewTicker(time.Minute)
		defer t.Stop()
		for {
			select {
			case <-rootCtx.Done():
				return
			case <-t.C:
				if n := sessions.Sweep(); n > 0 {
					log.Debug().Int("removed", n).Msg("sesiones expiradas eliminadas")
				}
			}
		}
	}()

	// ── HTTP ───────────────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Backend.Timeout + 10*time.Second,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log.Component("http")),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	if origins := strings.TrimSpace(cfg.HTTP.CORSOrigins); origins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: origins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		}))
	}
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gas Agency Back-office API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		CustomerUC:    customerUC,
		VariantUC:     variantUC,
		WarehouseUC:   warehouseUC,
		PaymentModeUC: paymentModeUC,
		BankAccountUC: bankAccountUC,
		LedgerUC:      ledgerUC,
		Entries:       entries,
		Reports:       reports,
		Dashboard:     dashboardUC,
		Alerts:        feed,
		Sessions:      sessions,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	stop()
	workers.Wait()

	log.Info().Msg("aplicación detenida")
}
