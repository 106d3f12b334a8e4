// Package stub provides an in-process stand-in for the remote conversion
// service. It speaks the same wire contract and turns each sentence of the
// description into one task of a BPMN process. A single Persian
// "اگر ... اما اگر ..." decision becomes an exclusive split and join; any
// other text yields a linear process.
package stub

import (
	"encoding/json"
	"net"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/papercomputeco/sketchflow/pkg/convert"
)

// Error messages returned by the service.
const (
	msgNoText  = "متنی وارد نشده است. لطفاً یک شرح فرایند وارد کنید."
	msgNoSteps = "امکان ساخت نمودار وجود ندارد. لطفاً توضیح را با جملات یا مراحل مشخص وارد کنید."
)

// Server is the stub conversion service.
type Server struct {
	config Config
	logger *zap.Logger
	server *fiber.App
}

// New creates a new Server.
func New(config Config, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		// Disable startup message for cleaner logs
		DisableStartupMessage: true,
	})

	s := &Server{
		config: config,
		logger: logger,
		server: app,
	}

	app.Post("/convert", s.handleConvert)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok"})
	})

	return s
}

// App exposes the fiber app, mainly for app.Test in tests.
func (s *Server) App() *fiber.App { return s.server }

// Run starts the server on the configured listening address
func (s *Server) Run() error {
	s.logger.Info("starting stub conversion service",
		zap.String("listen", s.config.ListenAddr),
	)

	return s.server.Listen(s.config.ListenAddr)
}

// RunWithListener serves on an already bound listener.
func (s *Server) RunWithListener(ln net.Listener) error {
	s.logger.Info("starting stub conversion service",
		zap.String("listen", ln.Addr().String()),
	)

	return s.server.Listener(ln)
}

// Shutdown stops the server.
func (s *Server) Shutdown() error {
	return s.server.Shutdown()
}

// handleConvert mirrors the real service: 400 with an error message for
// blank or step-less text, otherwise the markup.
func (s *Server) handleConvert(c *fiber.Ctx) error {
	startTime := time.Now()

	var req convert.Request
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			s.logger.Debug("request body is not json", zap.Error(err))
		}
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(convert.ErrorResponse{Error: msgNoText})
	}

	steps := ExtractSteps(text)
	if len(steps) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(convert.ErrorResponse{Error: msgNoSteps})
	}

	var markup string
	b, branched := DetectBranch(text)
	if branched {
		markup = BuildBranched(ExtractSteps(BeforeBranch(text)), b)
	} else {
		markup = BuildLinear(steps)
	}

	s.logger.Debug("converted description",
		zap.Int("steps", len(steps)),
		zap.Bool("branched", branched),
		zap.Int("markup_size", len(markup)),
		zap.Duration("duration", time.Since(startTime)),
	)

	return c.JSON(convert.Response{BPMN: markup})
}
