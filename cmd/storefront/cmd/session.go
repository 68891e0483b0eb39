package cmd

import (
	"context"
	"encoding/json"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/target/storefront-client/internal/bootstrap"
	domainauth "github.com/target/storefront-client/internal/domain/auth"
	"github.com/target/storefront-client/internal/service"
)

var (
	loginEmail    string
	loginPassword string
	loginRedirect string

	whoamiJSON bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and remember the session",
	Long: `Sign in with email and password. The token and user are stored so later
commands run as the signed-in user. The password is read from stdin when
--password is not given.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
			app.Auth.Logout(ctx)
			return writef(cmd.OutOrStdout(), "%s. Now at %s\n", domainauth.MsgLogoutSuccess, app.Router.Current().FullPath())
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when empty)")
	loginCmd.Flags().StringVar(&loginRedirect, "redirect", "", "Page to open after signing in")
	whoamiCmd.Flags().BoolVar(&whoamiJSON, "json", false, "Output the session as JSON")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
		out := cmd.OutOrStdout()
		password := loginPassword
		if password == "" {
			var err error
			if password, err = prompt(cmd.InOrStdin(), out, "Password: "); err != nil {
				return err
			}
		}

		if _, err := app.Auth.Login(ctx, service.LoginInput{
			Email:    loginEmail,
			Password: password,
			Redirect: loginRedirect,
		}); err != nil {
			return err
		}
		return writef(out, "%s. Signed in as %s (%s). Now at %s\n", domainauth.MsgLoginSuccess,
			app.Session.FullName(), app.Session.Role(), app.Router.Current().FullPath())
	})
}

type whoamiOutput struct {
	Authenticated bool            `json:"authenticated"`
	ID            string          `json:"id,omitempty"`
	Name          string          `json:"name,omitempty"`
	Email         string          `json:"email,omitempty"`
	Role          domainauth.Role `json:"role,omitempty"`
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(_ context.Context, app *bootstrap.App) error {
		out := cmd.OutOrStdout()
		view := whoamiOutput{Authenticated: app.Session.IsLoggedIn()}
		if user := app.Session.User(); view.Authenticated && user != nil {
			view.ID = string(user.ID)
			view.Name = user.FullName()
			view.Email = user.Email
			view.Role = app.Session.Role()
		}

		if whoamiJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(view)
		}
		if !view.Authenticated {
			return writef(out, "Not signed in\n")
		}

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		if err := writef(tw, "ID\t%s\nName\t%s\nEmail\t%s\nRole\t%s\n", view.ID, view.Name, view.Email, view.Role); err != nil {
			return err
		}
		return tw.Flush()
	})
}
