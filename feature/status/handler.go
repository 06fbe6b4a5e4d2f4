package status

import (
	"context"

	"record-sync/core/sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RunFunc executes one configured sync run and returns its report.
type RunFunc func(ctx context.Context) (*sync.Report, error)

// Handler serves the status API: health, recent run reports, and run
// triggering.
type Handler struct {
	recorder *Recorder
	apiKey   string
	run      RunFunc
	logger   *zap.Logger
}

// NewHandler creates the status handler. run may be nil, in which case
// triggering is disabled. An empty apiKey disables the key check.
func NewHandler(recorder *Recorder, apiKey string, run RunFunc, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{recorder: recorder, apiKey: apiKey, run: run, logger: logger}
}

// Register mounts the status routes on the app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/health", h.health)
	app.Get("/runs", h.requireKey, h.listRuns)
	app.Post("/runs", h.requireKey, h.triggerRun)
}

func (h *Handler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) requireKey(c *fiber.Ctx) error {
	if h.apiKey != "" && c.Get("X-Api-Key") != h.apiKey {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid api key"})
	}
	return c.Next()
}

func (h *Handler) listRuns(c *fiber.Ctx) error {
	return c.JSON(h.recorder.Reports())
}

func (h *Handler) triggerRun(c *fiber.Ctx) error {
	if h.run == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"error": "run triggering not configured"})
	}

	report, err := h.run(c.Context())
	if err != nil {
		h.logger.Error("triggered run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	h.recorder.Record(*report)
	h.logger.Info("triggered run finished",
		zap.String("run_id", report.RunID),
		zap.Int("rows", report.Rows))
	return c.JSON(report)
}
