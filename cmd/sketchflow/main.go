package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	convertcmder "github.com/papercomputeco/sketchflow/cmd/sketchflow/convert"
	"github.com/papercomputeco/sketchflow/cmd/sketchflow/settings"
	stubcmder "github.com/papercomputeco/sketchflow/cmd/sketchflow/stub"
	uicmder "github.com/papercomputeco/sketchflow/cmd/sketchflow/ui"
)

const rootLongDesc string = `Turn plain-language process descriptions into BPMN diagrams.

Without a subcommand the interactive page is started. Settings are read
from ./sketchflow.toml (or --config), then SKETCHFLOW_* environment
variables, then flags.`

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "sketchflow",
		Short:        "Text to BPMN diagram client",
		Long:         rootLongDesc,
		SilenceUsage: true,
	}
	settings.AddPersistentFlags(cmd)

	uiCmd := uicmder.NewUICmd()
	cmd.RunE = uiCmd.RunE

	cmd.AddCommand(uiCmd)
	cmd.AddCommand(convertcmder.NewConvertCmd())
	cmd.AddCommand(stubcmder.NewStubCmd())

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
