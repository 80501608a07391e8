package cli

import (
	"github.com/politask/politask/internal/api"
	"github.com/politask/politask/internal/service"
	"github.com/politask/politask/internal/store"
	"github.com/spf13/cobra"
)

// App holds references to the services and store used by CLI commands
// and TUI views.
type App struct {
	Auth     service.AuthService
	Tasks    service.TaskService
	Projects service.ProjectService
	Comments service.CommentService
	Search   service.SearchService
	Store    *store.Store
	Session  *api.Session

	// IsInteractive reports whether stdin is a terminal; the bare
	// root command only launches the TUI when it is.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "politask" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "politask",
		Short:         "Terminal client for the PoliTask project manager",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return cmd.Help()
			}
			return runUI(app)
		},
	}

	root.AddCommand(
		newUICmd(app),
		newLoginCmd(app),
		newRegisterCmd(app),
		newChangePasswordCmd(app),
		newLogoutCmd(app),
		newProjectsCmd(app),
		newTasksCmd(app),
		newSearchCmd(app),
	)

	return root
}

func newUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive board",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(app)
		},
	}
}
