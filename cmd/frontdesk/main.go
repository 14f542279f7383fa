package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kinesio/frontdesk/internal/config"
	"github.com/kinesio/frontdesk/internal/domain/appointments"
	"github.com/kinesio/frontdesk/internal/domain/kinesiologists"
	"github.com/kinesio/frontdesk/internal/domain/patients"
	"github.com/kinesio/frontdesk/internal/platform/middleware"
	"github.com/kinesio/frontdesk/internal/platform/rest"
	"github.com/kinesio/frontdesk/internal/platform/sandbox"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "frontdesk",
		Short: "Kinesiology clinic front desk CLI",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(agendaCmd())
	rootCmd.AddCommand(patientsCmd())
	rootCmd.AddCommand(kinesiologistsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger returns the process logger, pretty-printed in development.
func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.IsDev() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// apiClients bundles the typed clients the CLI commands talk through.
type apiClients struct {
	cfg            *config.Config
	appointments   *appointments.Client
	patients       *patients.Client
	kinesiologists *kinesiologists.Client
}

func newAPIClients() (*apiClients, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	base := rest.New(cfg.APIBaseURL, cfg.APIToken,
		rest.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.HTTPTimeoutSeconds) * time.Second}),
		rest.WithLogger(newLogger(cfg)),
	)
	return &apiClients{
		cfg:            cfg,
		appointments:   appointments.NewClient(base),
		patients:       patients.NewClient(base),
		kinesiologists: kinesiologists.NewClient(base),
	}, nil
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the sandbox API server with seeded demo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			noSeed, _ := cmd.Flags().GetBool("no-seed")
			return runServer(noSeed)
		},
	}
	cmd.Flags().Bool("no-seed", false, "Start with empty stores")
	return cmd
}

func runServer(noSeed bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	stores := sandbox.Stores{
		Kinesiologists: kinesiologists.NewRepo(),
		Patients:       patients.NewRepo(),
		Appointments:   appointments.NewRepo(),
	}
	if !noSeed {
		if err := sandbox.Seed(context.Background(), stores, sandbox.DefaultSeedConfig(), logger); err != nil {
			return err
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	apiV1 := e.Group("/api/v1", middleware.StaticBearerAuth(cfg.APIToken))
	appointments.NewHandler(appointments.NewService(stores.Appointments)).RegisterRoutes(apiV1)
	patients.NewHandler(patients.NewService(stores.Patients)).RegisterRoutes(apiV1)
	kinesiologists.NewHandler(stores.Kinesiologists).RegisterRoutes(apiV1)

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
