package cmd

import (
	"context"
	"encoding/json"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/target/storefront-client/internal/bootstrap"
	domainauth "github.com/target/storefront-client/internal/domain/auth"
)

var visitCmd = &cobra.Command{
	Use:   "visit <path>",
	Short: "Navigate to a page through its guards",
	Long: `Navigate to a storefront page as the current session would, following
guard redirects, and print where navigation ended.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
			loc, err := app.Router.Push(ctx, args[0])
			if err != nil {
				return err
			}
			return writef(cmd.OutOrStdout(), "%s\n", loc.FullPath())
		})
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <api-path>",
	Short: "GET a backend path with the session token",
	Long: `Send an authenticated GET to the backend and print the JSON answer.
A 401 answer ends the stored session.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
			var body json.RawMessage
			if err := app.Client.GetJSON(ctx, args[0], &body); err != nil {
				return err
			}
			return writef(cmd.OutOrStdout(), "%s\n", body)
		})
	},
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List storefront pages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(_ context.Context, app *bootstrap.App) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			if err := writef(tw, "PATH\tNAME\tGUARDS\n"); err != nil {
				return err
			}
			for _, r := range app.Router.Routes() {
				if err := writef(tw, "%s\t%s\t%d\n", r.Path, r.Name, len(r.BeforeEnter)); err != nil {
					return err
				}
			}
			return tw.Flush()
		})
	},
}

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List account types accepted by signup",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for _, opt := range domainauth.RoleOptions {
			if err := writef(tw, "%s\t%s\n", opt.Value, opt.Label); err != nil {
				return err
			}
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(visitCmd, fetchCmd, routesCmd, rolesCmd)
}
