package convertcmder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/sketchflow/cmd/sketchflow/settings"
	"github.com/papercomputeco/sketchflow/pkg/convert"
	"github.com/papercomputeco/sketchflow/pkg/logger"
	"github.com/papercomputeco/sketchflow/pkg/page"
	"github.com/papercomputeco/sketchflow/pkg/viewer"
)

const convertLongDesc string = `Convert a process description to a BPMN diagram.

The description is taken from the arguments, from --file, or from stdin.
The diagram outline is printed to stdout; --output also writes the raw
BPMN markup. With --watch the file is converted again on every save.

Examples:
  sketchflow convert "کاربر درخواست را ثبت می‌کند. سپس کارشناس آن را بررسی می‌کند."
  sketchflow convert --file process.txt --output process.bpmn
  sketchflow convert --file process.txt --watch`

const convertShortDesc string = "Convert a description to a BPMN diagram"

// watchSettle coalesces the burst of events editors emit on save.
const watchSettle = 100 * time.Millisecond

type convertCommander struct {
	file   string
	output string
	watch  bool
	width  int
	style  string

	logger *zap.Logger
}

func NewConvertCmd() *cobra.Command {
	cmder := &convertCommander{}

	cmd := &cobra.Command{
		Use:   "convert [text...]",
		Short: convertShortDesc,
		Long:  convertLongDesc,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, args)
		},
	}

	cmd.Flags().StringVarP(&cmder.file, "file", "f", "", "Read the description from this file")
	cmd.Flags().StringVarP(&cmder.output, "output", "o", "", "Write the BPMN markup to this file")
	cmd.Flags().BoolVarP(&cmder.watch, "watch", "w", false, "Convert again whenever --file changes")
	cmd.Flags().IntVar(&cmder.width, "width", 80, "Width of the printed outline")
	cmd.Flags().StringVar(&cmder.style, "style", "notty", "Outline style (notty, dark, light, ascii)")

	return cmd
}

func (c *convertCommander) run(ctx context.Context, cmd *cobra.Command, args []string) error {
	cfg, err := settings.Load(cmd)
	if err != nil {
		return err
	}

	if c.watch && c.file == "" {
		return errors.New("--watch needs --file")
	}
	if len(args) > 0 && c.file != "" {
		return errors.New("give the description as arguments or --file, not both")
	}

	c.logger = logger.NewLogger(cfg.Debug, cmd.ErrOrStderr())
	if cfg.LogFile != "" {
		var closeLog func() error
		c.logger, closeLog, err = logger.NewFileLogger(cfg.Debug, cfg.LogFile)
		if err != nil {
			return fmt.Errorf("could not open log file %s: %w", cfg.LogFile, err)
		}
		defer closeLog()
	}

	var service convert.Service = convert.NewClient(cfg.Endpoint, convert.WithClientLogger(c.logger.Named("client")))
	if c.watch {
		// saves that leave the text unchanged are answered locally
		service = convert.NewCachingService(service, convert.DefaultCacheSize, c.logger.Named("cache"))
	}
	canvas := viewer.NewCanvas(
		page.Size{Width: float64(c.width), Height: float64(c.width) / 2},
		viewer.WithStyle(c.style),
		viewer.WithLogger(c.logger.Named("canvas")),
	)
	sink := &markupSink{Canvas: canvas}
	con := &consolePage{logger: c.logger.Named("page")}
	controller := convert.NewController(con, sink, service,
		convert.WithLogger(c.logger.Named("convert")),
		convert.WithTimeout(cfg.RequestTimeout),
	)

	once := func() error {
		text, err := c.readInput(cmd, args)
		if err != nil {
			return err
		}
		con.setInput(text)
		return c.convertOnce(ctx, cmd, controller, canvas, sink)
	}

	if !c.watch {
		return once()
	}

	if err := once(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	}
	return c.watchFile(ctx, once)
}

func (c *convertCommander) readInput(cmd *cobra.Command, args []string) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case c.file != "":
		data, err := os.ReadFile(c.file)
		if err != nil {
			return "", fmt.Errorf("could not read %s: %w", c.file, err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("could not read stdin: %w", err)
		}
		return string(data), nil
	}
}

func (c *convertCommander) convertOnce(ctx context.Context, cmd *cobra.Command, controller *convert.Controller, canvas *viewer.Canvas, sink *markupSink) error {
	out := controller.Convert(ctx)
	if out.Status != convert.StatusRendered {
		return errors.New(out.Message)
	}

	rendered, err := canvas.Render()
	if err != nil {
		return fmt.Errorf("could not render outline: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)

	if c.output != "" {
		if err := os.WriteFile(c.output, []byte(sink.Markup()), 0o644); err != nil {
			return fmt.Errorf("could not write %s: %w", c.output, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", c.output)
	}
	return nil
}

// watchFile re-runs fn after each write to the input file until ctx is done.
// The parent directory is watched so editors that replace the file on save
// are followed too.
func (c *convertCommander) watchFile(ctx context.Context, fn func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not start watcher: %w", err)
	}
	defer watcher.Close()

	target, err := filepath.Abs(c.file)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("could not watch %s: %w", c.file, err)
	}
	c.logger.Info("watching for changes", zap.String("file", target))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			pending = time.After(watchSettle)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn("watcher error", zap.Error(err))

		case <-pending:
			pending = nil
			if err := fn(); err != nil {
				c.logger.Warn("conversion failed", zap.Error(err))
			}
		}
	}
}

// consolePage is the convert.Page of a one-shot run. Errors surface as the
// command's return value instead of a page region.
type consolePage struct {
	logger *zap.Logger

	mu    sync.Mutex
	input string
}

func (p *consolePage) setInput(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.input = s
}

func (p *consolePage) InputText() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.input
}

func (p *consolePage) SetError(msg string) {
	if msg != "" {
		p.logger.Debug("page error", zap.String("message", msg))
	}
}

func (p *consolePage) SetAffordance(a convert.Affordance) {
	p.logger.Debug("trigger", zap.Stringer("affordance", a))
}

// markupSink keeps the last markup the canvas accepted.
type markupSink struct {
	*viewer.Canvas

	mu     sync.Mutex
	markup string
}

func (s *markupSink) Import(ctx context.Context, markup string) error {
	if err := s.Canvas.Import(ctx, markup); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markup = markup
	return nil
}

func (s *markupSink) Markup() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markup
}
