package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the PoliTask server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				if app.IsInteractive != nil && !app.IsInteractive() {
					return fmt.Errorf("--email and --password are required in non-interactive mode")
				}
				if err := credentialsForm(false, nil, &email, &password).Run(); err != nil {
					return err
				}
			}

			res, err := app.Auth.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sesión iniciada como "+res.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newRegisterCmd(app *App) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" || email == "" || password == "" {
				if app.IsInteractive != nil && !app.IsInteractive() {
					return fmt.Errorf("--name, --email and --password are required in non-interactive mode")
				}
				if err := credentialsForm(true, &name, &email, &password).Run(); err != nil {
					return err
				}
			}

			res, err := app.Auth.Register(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cuenta creada, sesión iniciada como "+res.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newChangePasswordCmd(app *App) *cobra.Command {
	var current, updated string

	cmd := &cobra.Command{
		Use:   "change-password",
		Short: "Change the account password",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Auth.ChangePassword(cmd.Context(), current, updated)
		},
	}

	cmd.Flags().StringVar(&current, "current", "", "current password")
	cmd.Flags().StringVar(&updated, "new", "", "new password")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sesión cerrada")
			return nil
		},
	}
}
