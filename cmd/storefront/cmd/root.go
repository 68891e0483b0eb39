package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/target/storefront-client/internal/bootstrap"
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront account client",
	Long: `Sign in to the storefront backend, keep the session between runs and
navigate the guarded storefront pages.

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// appFactory builds the application for one command run.
var appFactory = func(ctx context.Context) (*bootstrap.App, error) {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := bootstrap.InitLogger(os.Stderr, cfg.SlogLevel())
	return bootstrap.NewApp(ctx, bootstrap.AppOptions{Config: cfg, Logger: logger})
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", describeError(err))
		stop()
		os.Exit(1) //nolint:forbidigo // CLI must propagate command failure to the shell
	}
}

// withApp builds the app, restores any saved session and runs fn.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, app *bootstrap.App) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	app, err := appFactory(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close app: %w", cerr))
		}
	}()

	app.Session.RestoreSession(ctx)
	return fn(ctx, app)
}
