// Package cli implements bracketctl, an offline tool for generating and
// checking brackets without a database.
package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

type loggerKey struct{}

func withLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func loggerFromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// NewRootCmd builds the command tree. Diagnostics go to errOut.
func NewRootCmd(errOut io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "bracketctl",
		Short:         "Generate and check tournament brackets offline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
	}
	root.SetErr(errOut)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newValidateCmd())
	return root
}

// Execute runs bracketctl with the process arguments.
func Execute(ctx context.Context, errOut io.Writer) error {
	return NewRootCmd(errOut).ExecuteContext(ctx)
}
