package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/target/storefront-client/internal/bootstrap"
	domainauth "github.com/target/storefront-client/internal/domain/auth"
	"github.com/target/storefront-client/internal/service"
)

var signupInput struct {
	domainauth.SignUpInput
	role            string
	confirmPassword string
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	Long: `Register a new storefront account. When the backend answers with a token
the new account is signed in right away, otherwise sign in with "login".`,
	Args: cobra.NoArgs,
	RunE: runSignup,
}

func init() {
	f := signupCmd.Flags()
	f.StringVar(&signupInput.FirstName, "first-name", "", "First name")
	f.StringVar(&signupInput.LastName, "last-name", "", "Last name")
	f.StringVar(&signupInput.DateOfBirth, "dob", "", "Date of birth (YYYY-MM-DD)")
	f.StringVar(&signupInput.Country, "country", "", "Country")
	f.StringVar(&signupInput.Address, "address", "", "Street address")
	f.StringVar(&signupInput.Email, "email", "", "Account email")
	f.StringVar(&signupInput.Password, "password", "", "Account password")
	f.StringVar(&signupInput.confirmPassword, "confirm-password", "", "Repeat the password")
	f.StringVar(&signupInput.role, "type", string(domainauth.RoleCustomer), "Account type (see \"storefront roles\")")

	rootCmd.AddCommand(signupCmd)
}

func runSignup(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
		in := signupInput.SignUpInput
		in.Type = domainauth.Role(signupInput.role)
		if role, ok := domainauth.ParseRole(signupInput.role); ok {
			in.Type = role
		}

		resp, err := app.Auth.Register(ctx, service.RegisterInput{
			SignUpInput:     in,
			ConfirmPassword: signupInput.confirmPassword,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if err := writef(out, "%s: %s (id %s)\n", domainauth.MsgRegisterSuccess, in.Email, resp.ID); err != nil {
			return err
		}
		if app.Session.IsLoggedIn() {
			return writef(out, "Signed in as %s. Now at %s\n", app.Session.FullName(), app.Router.Current().FullPath())
		}
		return writef(out, "Sign in to continue. Now at %s\n", app.Router.Current().FullPath())
	})
}
