package cli

import (
	"fmt"
	"strings"

	"github.com/politask/politask/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search projects and tasks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			res, err := app.Search.Search(cmd.Context(), query)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(res.Projects) == 0 && len(res.Tasks) == 0 {
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("Sin resultados para %q", query)))
				return nil
			}

			if len(res.Projects) > 0 {
				fmt.Fprintln(out, formatter.Header("Proyectos"))
				rows := make([][]string, 0, len(res.Projects))
				for _, p := range res.Projects {
					rows = append(rows, []string{p.ID.String(), p.Name, formatter.Truncate(p.Description, 40)})
				}
				fmt.Fprintln(out, formatter.RenderTable([]string{"ID", "Nombre", "Descripción"}, rows))
			}

			if len(res.Tasks) > 0 {
				fmt.Fprintln(out, formatter.Header("Tareas"))
				rows := make([][]string, 0, len(res.Tasks))
				for _, t := range res.Tasks {
					rows = append(rows, []string{
						t.ID.String(),
						formatter.Truncate(t.Title, 40),
						t.Status.Meta().Label,
						t.Priority.Meta().Label,
					})
				}
				fmt.Fprintln(out, formatter.RenderTable([]string{"ID", "Título", "Estado", "Prioridad"}, rows))
			}
			return nil
		},
	}
}
