package stubcmder

import (
	"context"
	"fmt"
	"net"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/sketchflow/cmd/sketchflow/settings"
	"github.com/papercomputeco/sketchflow/pkg/logger"
	"github.com/papercomputeco/sketchflow/stub"
)

const stubLongDesc string = `Run a local stand-in for the conversion service.

The stub speaks the same JSON contract as the real service: POST /convert
with {"text": ...} returns {"bpmn": ...}, or 400 with {"error": ...} for
blank descriptions. Every sentence becomes one task of a linear process.

Examples:
  sketchflow stub
  sketchflow stub --listen 127.0.0.1:5050`

const stubShortDesc string = "Run a local conversion service stub"

type stubCommander struct {
	listen string
}

func NewStubCmd() *cobra.Command {
	cmder := &stubCommander{}

	cmd := &cobra.Command{
		Use:   "stub",
		Short: stubShortDesc,
		Long:  stubLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd.Context(), cmd)
		},
	}

	cmd.Flags().StringVarP(&cmder.listen, "listen", "l", "", "Address to listen on (default from config, :5000)")

	return cmd
}

func (c *stubCommander) run(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := settings.Load(cmd)
	if err != nil {
		return err
	}

	addr := cfg.Stub.ListenAddr
	if c.listen != "" {
		addr = c.listen
	}

	log := logger.NewLogger(cfg.Debug, cmd.ErrOrStderr())
	defer log.Sync()

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("could not listen on %s: %w", addr, err)
	}

	srv := stub.New(stub.Config{ListenAddr: addr}, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.RunWithListener(ln)
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "Stub conversion service listening on http://%s/convert\n", ln.Addr())

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("stub server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("shutting down stub conversion service")
		if err := srv.Shutdown(); err != nil {
			log.Warn("shutdown failed", zap.Error(err))
		}
		return nil
	}
}
