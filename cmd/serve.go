package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"record-sync/core/config"
	"record-sync/core/logger"
	"record-sync/core/sync"
	"record-sync/feature/status"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the status server",
	Long: `Starts the HTTP status server. The server reports recent sync runs and
can trigger the configured sync job on demand via POST /runs.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// Request logging
		app.Use(func(c *fiber.Ctx) error {
			logg.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				logg.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 4. Status feature. Each triggered run builds a fresh engine and
		// source; an engine only runs once.
		recorder := status.NewRecorder(20)
		run := func(ctx context.Context) (*sync.Report, error) {
			engine, src, err := buildJob(cfg, sync.Options{
				InsertOnly: cfg.Sync.InsertOnlyFlag(),
				Logger:     logg,
			})
			if err != nil {
				return nil, err
			}
			return engine.Run(ctx, src)
		}
		status.NewHandler(recorder, cfg.Server.ApiKey, run, logg).Register(app)

		// 5. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 6. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
