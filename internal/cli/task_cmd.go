package cli

import (
	"fmt"
	"strconv"

	"github.com/politask/politask/internal/api"
	"github.com/politask/politask/internal/cli/formatter"
	"github.com/politask/politask/internal/domain"
	"github.com/politask/politask/internal/viewmodel"
	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	var projectID, status, priority, assignee string
	var grouped bool

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List and manage tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria := viewmodel.NewCriteria()
			if status != "" {
				if !domain.TaskStatus(status).Valid() {
					return fmt.Errorf("estado desconocido: %q", status)
				}
				criteria.Status = status
			}
			if priority != "" {
				if !domain.TaskPriority(priority).Valid() {
					return fmt.Errorf("prioridad desconocida: %q", priority)
				}
				criteria.Priority = priority
			}
			if assignee != "" {
				criteria.AssigneeID = assignee
			}
			return runTasksList(cmd, app, domain.ID(projectID), criteria, grouped)
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "restrict to one project id")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (PENDING, IN PROGRESS, ...)")
	cmd.Flags().StringVar(&priority, "priority", "", "filter by priority (baja, media, alta)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "filter by assignee id")
	cmd.Flags().BoolVar(&grouped, "grouped", false, "group tasks by status")

	cmd.AddCommand(
		newTasksCreateCmd(app),
		newTasksStatusCmd(app),
		newTasksPriorityCmd(app),
		newTasksCommentCmd(app),
	)
	return cmd
}

func runTasksList(cmd *cobra.Command, app *App, projectID domain.ID, criteria viewmodel.Criteria, grouped bool) error {
	ctx := cmd.Context()
	if projectID != "" {
		if err := app.Store.LoadProjectTasks(ctx, projectID); err != nil {
			return err
		}
	} else if err := app.Store.LoadAllTasks(ctx); err != nil {
		return err
	}
	app.Store.LoadUsers(ctx)

	tasks := app.Store.Tasks()
	if projectID != "" {
		var own []domain.Task
		for _, t := range tasks {
			if t.ProjectID == projectID {
				own = append(own, t)
			}
		}
		tasks = own
	}
	tasks = criteria.Apply(tasks)
	users := app.Store.Users()
	out := cmd.OutOrStdout()

	if len(tasks) == 0 {
		fmt.Fprintln(out, formatter.Dim("No hay tareas que coincidan"))
		return nil
	}

	if !grouped {
		fmt.Fprintln(out, formatter.RenderTable(taskTableHeaders, taskTableRows(tasks, users)))
		return nil
	}

	for _, g := range viewmodel.GroupByStatus(tasks, domain.StatusOrder) {
		fmt.Fprintf(out, "%s %s\n", formatter.StatusBadge(g.Status),
			formatter.Dim("("+strconv.Itoa(g.Count())+")"))
		if g.Count() == 0 {
			continue
		}
		fmt.Fprintln(out, formatter.RenderTable(taskTableHeaders, taskTableRows(g.Tasks, users)))
	}
	return nil
}

var taskTableHeaders = []string{"ID", "Título", "Estado", "Prioridad", "Asignada a", "Límite"}

func taskTableRows(tasks []domain.Task, users []domain.User) [][]string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			t.ID.String(),
			formatter.Truncate(t.Title, 40),
			t.Status.Meta().Label,
			t.Priority.Meta().Label,
			formatter.AssigneeName(t, users),
			formatter.DueDate(t.DueDate),
		})
	}
	return rows
}

func newTasksCreateCmd(app *App) *cobra.Command {
	var projectID, title, description, status, priority, assignee, due string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectID == "" {
				return fmt.Errorf("--project is required")
			}

			req := api.CreateTaskRequest{
				ProjectID:   domain.ID(projectID),
				Title:       title,
				Description: description,
				Status:      domain.TaskStatus(status),
				Priority:    domain.TaskPriority(priority),
				AssigneeID:  domain.ID(assignee),
			}
			if due != "" {
				ts, err := domain.ParseDate(due)
				if err != nil {
					return fmt.Errorf("fecha límite no válida %q: %w", due, err)
				}
				req.DueDate = &ts
			}

			if title == "" {
				if app.IsInteractive != nil && !app.IsInteractive() {
					return fmt.Errorf("--title is required in non-interactive mode")
				}
				req.Status = domain.StatusPending
				req.Priority = domain.PriorityMedium
				if err := taskForm(&req.Title, &req.Description, &req.Status, &req.Priority).Run(); err != nil {
					return err
				}
			}

			t, err := app.Tasks.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				formatter.Successf("Tarea %q creada con id %s", t.Title, t.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "owning project id")
	cmd.Flags().StringVar(&title, "title", "", "task title")
	cmd.Flags().StringVar(&description, "description", "", "task description")
	cmd.Flags().StringVar(&status, "status", "", "initial status (default PENDING)")
	cmd.Flags().StringVar(&priority, "priority", "", "initial priority (default media)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "assignee user id")
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	return cmd
}

func newTasksStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <task-id> <status>",
		Short: "Change a task's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Tasks.SetStatus(cmd.Context(), domain.ID(args[0]), domain.TaskStatus(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				formatter.Successf("Tarea %q ahora %s", t.Title, t.Status.Meta().Label))
			return nil
		},
	}
}

func newTasksPriorityCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "priority <task-id> <priority>",
		Short: "Change a task's priority",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Tasks.SetPriority(cmd.Context(), domain.ID(args[0]), domain.TaskPriority(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				formatter.Successf("Tarea %q ahora prioridad %s", t.Title, t.Priority.Meta().Label))
			return nil
		},
	}
}

func newTasksCommentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "comment <task-id> <text>",
		Short: "Add a comment to a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Comments.Create(cmd.Context(), domain.ID(args[0]), args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Successf("Comentario añadido"))
			return nil
		},
	}
}
