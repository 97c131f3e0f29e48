package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jeanheinriich/agendamentos-sub004/docs"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/auth"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/inventory"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/leasing"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/movimentation"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/reports"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/slots"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/usecase"
	infrapdf "github.com/jeanheinriich/agendamentos-sub004/internal/infrastructure/pdf"
	"github.com/jeanheinriich/agendamentos-sub004/internal/infrastructure/postgres"
	infraredis "github.com/jeanheinriich/agendamentos-sub004/internal/infrastructure/redis"
	"github.com/jeanheinriich/agendamentos-sub004/internal/infrastructure/scheduler"
	httpRouter "github.com/jeanheinriich/agendamentos-sub004/internal/interfaces/http"
	"github.com/jeanheinriich/agendamentos-sub004/pkg/config"
	"github.com/jeanheinriich/agendamentos-sub004/pkg/i18n"
	"github.com/jeanheinriich/agendamentos-sub004/pkg/logger"
)

// @title                       Fleet Inventory API
// @version                     1.0
// @description                 Inventario de equipos rastreadores y SIM cards: comodatos, slots, movimientos en lote e informes.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token>
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("version", docs.SwaggerInfo.Version).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	rdb, err := infraredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
	}
	defer rdb.Close()

	// Repositorios fuera de transacción; el TxRunner entrega otro Set atado a cada tx.
	repos := postgres.NewSet(pool)
	txRunner := postgres.NewTxRunner(pool)
	contractorRepo := postgres.NewContractorRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	leasingSvc := leasing.NewService()
	equipmentUC := inventory.NewEquipmentUseCase(repos, txRunner, leasingSvc)
	simCardUC := inventory.NewSimCardUseCase(repos, txRunner, leasingSvc)
	locationUC := inventory.NewLocationUseCase(repos)
	slotUC := slots.NewSlotUseCase(repos, txRunner)
	wizardStore := infraredis.NewWizardStore(rdb, cfg.Redis.WizardTTL)
	movimentationUC := movimentation.NewUseCase(repos, txRunner, wizardStore)
	reportUC := reports.NewReportUseCase(repos, contractorRepo, infrapdf.NewMarotoPDFGenerator())
	graceUC := leasing.NewGraceEndingUseCase(repos.EquipmentLeases, repos.SimCardLeases)
	custodyUC := usecase.NewCustodyUseCase(repos.Deposits, repos.Technicians, repos.ServiceProviders)
	authUC := auth.NewAuthUseCase(userRepo, contractorRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // los PDF grandes tardan más que el resto
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(httpRouter.Locale(i18n.Parse(cfg.App.DefaultLocale, i18n.Default)))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		UserUC:          usecase.NewUserUseCase(userRepo),
		ContractorSvc:   usecase.NewContractorService(contractorRepo),
		CustodyUC:       custodyUC,
		EquipmentUC:     equipmentUC,
		SimCardUC:       simCardUC,
		LocationUC:      locationUC,
		SlotUC:          slotUC,
		MovimentationUC: movimentationUC,
		ReportUC:        reportUC,
		GraceEndingUC:   graceUC,
		JWTSecret:       cfg.JWT.Secret,
	})

	// Tareas programadas
	sched := scheduler.New(log.Component("scheduler"))
	if cfg.Scheduler.Enabled {
		job := scheduler.GraceSweep(graceUC, log.Component("scheduler"), cfg.Scheduler.GraceSpec, time.Now)
		if err := sched.Register(job); err != nil {
			log.Fatal().Err(err).Msg("registrar tareas programadas")
		}
		sched.Start()
		log.Info().Str("spec", cfg.Scheduler.GraceSpec).Msg("scheduler iniciado")
	}

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
	sched.Stop(shutdownCtx)

	log.Info().Msg("aplicación detenida")
}
