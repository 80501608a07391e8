package cli

import (
	"fmt"
	"strconv"

	"github.com/politask/politask/internal/api"
	"github.com/politask/politask/internal/cli/formatter"
	"github.com/politask/politask/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List and create projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectsList(cmd, app)
		},
	}

	cmd.AddCommand(newProjectsCreateCmd(app))
	return cmd
}

func runProjectsList(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	if err := app.Store.LoadProjects(ctx); err != nil {
		return err
	}
	app.Store.LoadAllTasksBestEffort(ctx)

	projects := app.Store.Projects()
	if len(projects) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No hay proyectos todavía"))
		return nil
	}

	tasks := app.Store.Tasks()
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		open := 0
		for _, t := range tasks {
			if t.ProjectID == p.ID && t.Status != domain.StatusDone && t.Status != domain.StatusClosed {
				open++
			}
		}
		rows = append(rows, []string{
			p.ID.String(),
			p.Name,
			formatter.Truncate(p.Description, 40),
			strconv.Itoa(open),
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderTable(
		[]string{"ID", "Nombre", "Descripción", "Abiertas"}, rows))
	return nil
}

func newProjectsCreateCmd(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				if app.IsInteractive != nil && !app.IsInteractive() {
					return fmt.Errorf("--name is required in non-interactive mode")
				}
				if err := projectForm(&name, &description).Run(); err != nil {
					return err
				}
			}

			p, err := app.Projects.Create(cmd.Context(), api.CreateProjectRequest{
				Name:        name,
				Description: description,
				OwnerID:     app.Session.User().ID,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				formatter.Successf("Proyecto %q creado con id %s", p.Name, p.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "project name")
	cmd.Flags().StringVar(&description, "description", "", "project description")
	return cmd
}
