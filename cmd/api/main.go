package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appipv "github.com/jhoicas/ipv-restaurante/internal/application/ipv"
	"github.com/jhoicas/ipv-restaurante/internal/application/usecase"
	"github.com/jhoicas/ipv-restaurante/internal/infrastructure/backend"
	infrapdf "github.com/jhoicas/ipv-restaurante/internal/infrastructure/pdf"
	infraredis "github.com/jhoicas/ipv-restaurante/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/ipv-restaurante/internal/interfaces/http"
	"github.com/jhoicas/ipv-restaurante/pkg/config"
	"github.com/jhoicas/ipv-restaurante/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

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

	ctx := context.Background()

	client, err := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout(), log.Component("backend"))
	if err != nil {
		log.Fatal().Err(err).Msg("cliente del backend")
	}

	// Borradores de sesión: Redis si está configurado; si no, solo memoria.
	var drafts appipv.DraftStore = appipv.NopDraftStore{}
	if cfg.Redis.Enabled() {
		rdb, err := infraredis.NewClient(ctx, infraredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, borradores solo en memoria")
		} else {
			defer rdb.Close()
			drafts = infraredis.NewDraftStore(rdb, cfg.Session.TTL())
			log.Info().Str("addr", cfg.Redis.Addr).Msg("borradores de sesión en redis")
		}
	}

	sessions := appipv.NewRegistry(client, drafts, cfg.Session.TTL(), log.Component("ipv"))
	reportUC := appipv.NewReportUseCase(client, infrapdf.NewMarotoPDFGenerator(cfg.Report.Author), log.Component("reporte"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Backend.Timeout() + 10*time.Second,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    16 << 20,
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs (requiere generar docs/swagger.json)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "IPV Restaurante API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Sessions:    sessions,
		ReportUC:    reportUC,
		ProductoUC:  usecase.NewProductoUseCase(client),
		AreaUC:      usecase.NewAreaUseCase(client),
		RecetaUC:    usecase.NewRecetaUseCase(client),
		VentaUC:     usecase.NewVentaUseCase(client),
		ModeloIPVUC: usecase.NewModeloIPVUseCase(client),
		HistorialUC: usecase.NewHistorialUseCase(client),
		Backend:     client,
		ServiceName: cfg.App.Name,
	})

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go sweepSessions(sweepCtx, sessions, log)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// sweepSessions descarta periódicamente las sesiones inactivas.
func sweepSessions(ctx context.Context, sessions *appipv.Registry, log *logger.Logger) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sessions.Sweep()
			log.Debug().Int("activas", sessions.Len()).Msg("barrido de sesiones IPV")
		}
	}
}
