package uicmder

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/papercomputeco/sketchflow/cmd/sketchflow/settings"
	"github.com/papercomputeco/sketchflow/pkg/config"
	"github.com/papercomputeco/sketchflow/pkg/convert"
	"github.com/papercomputeco/sketchflow/pkg/logger"
	"github.com/papercomputeco/sketchflow/ui"
)

const uiLongDesc string = `Open the interactive conversion page.

Type a process description, press enter and the diagram returned by the
conversion service is shown below. A short guided tour introduces the page
on start; replay it any time with ctrl+t.

Logs go to --log-file when set, and are discarded otherwise so they do
not tear the screen.

Examples:
  sketchflow ui
  sketchflow ui --no-tour --endpoint http://localhost:5000/convert`

const uiShortDesc string = "Open the interactive conversion page"

// ErrNoTerminal is returned when stdin or stdout is not a terminal.
var ErrNoTerminal = errors.New("the interactive page needs a terminal; use 'sketchflow convert' instead")

type uiCommander struct {
	noTour bool
}

func NewUICmd() *cobra.Command {
	cmder := &uiCommander{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: uiShortDesc,
		Long:  uiLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd.Context(), cmd)
		},
	}

	cmd.Flags().BoolVar(&cmder.noTour, "no-tour", false, "Do not start the guided tour")

	return cmd
}

func (c *uiCommander) run(ctx context.Context, cmd *cobra.Command) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNoTerminal
	}

	cfg, err := settings.Load(cmd)
	if err != nil {
		return err
	}

	log := zap.NewNop()
	if cfg.LogFile != "" {
		var closeLog func() error
		log, closeLog, err = logger.NewFileLogger(cfg.Debug, cfg.LogFile)
		if err != nil {
			return fmt.Errorf("could not open log file %s: %w", cfg.LogFile, err)
		}
		defer closeLog()
	}

	client := convert.NewClient(cfg.Endpoint, convert.WithClientLogger(log.Named("client")))

	model, err := ui.New(c.pageConfig(cfg), client, log)
	if err != nil {
		return fmt.Errorf("could not build page: %w", err)
	}
	defer model.Close()

	log.Info("sketchflow page starting",
		zap.String("endpoint", cfg.Endpoint),
		zap.Duration("timeout", cfg.RequestTimeout),
		zap.Bool("tour", cfg.Tour.Enabled && !c.noTour),
	)

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("page failed: %w", err)
	}
	return nil
}

func (c *uiCommander) pageConfig(cfg config.Config) ui.Config {
	return ui.Config{
		RequestTimeout: cfg.RequestTimeout,
		DemoText:       cfg.Placeholder.DemoText,
		Interval:       cfg.Placeholder.Interval,
		Tour:           cfg.Tour.Enabled && !c.noTour,
		TourStartDelay: cfg.Tour.StartDelay,
		Geometry:       cfg.Tour.Geometry(),
		Dark:           termenv.HasDarkBackground(),
	}
}
