package viewmodel

import (
	"fmt"
	"strings"

	"github.com/politask/politask/internal/domain"
)

// Crumb is one node of the breadcrumb trail. Href is empty on the last
// node (the current location) and on terminal entries like logout.
type Crumb struct {
	Label string
	Href  string
	Icon  string
}

// Breadcrumb icons, matching the sidebar markers.
const (
	iconHome    = "⌂"
	iconFolder  = "▤"
	iconTasks   = "☰"
	iconSearch  = "⌕"
	iconLock    = "⚿"
	iconLogout  = "⏻"
)

// Labels for entities that are not (or not yet) in the snapshot.
const (
	labelLoading         = "Cargando..."
	labelProjectNotFound = "Proyecto no encontrado"
	labelTaskNotFound    = "Tarea no encontrada"
)

// DeriveBreadcrumbs maps the current route onto an ordered trail. It is
// pure: it only reads the provided snapshots and never fetches, so
// calling it twice with the same inputs yields the same trail. The
// loading flag labels entity nodes "Cargando..." while the snapshot
// prefetch is still in flight.
func DeriveBreadcrumbs(path, searchQuery string, projects []domain.Project, tasks []domain.Task, loading bool) []Crumb {
	crumbs := []Crumb{{Label: "Inicio", Href: "/dashboard", Icon: iconHome}}

	parts := splitPath(path)

	switch {
	case path == "/dashboard" || path == "/" || path == "":
		// Home alone.

	case path == "/projects":
		crumbs = append(crumbs, Crumb{Label: "Proyectos", Href: "/projects", Icon: iconFolder})

	case path == "/tasks":
		crumbs = append(crumbs, Crumb{Label: "Mis Tareas", Href: "/tasks", Icon: iconTasks})

	case len(parts) == 2 && parts[0] == "project":
		projectID := domain.ID(parts[1])
		crumbs = append(crumbs,
			Crumb{Label: "Proyectos", Href: "/projects", Icon: iconFolder},
			Crumb{Label: projectLabel(projects, projectID, loading), Href: "/project/" + parts[1], Icon: iconFolder},
		)

	case len(parts) == 4 && parts[0] == "project" && parts[2] == "task":
		projectID, taskID := domain.ID(parts[1]), domain.ID(parts[3])
		crumbs = append(crumbs,
			Crumb{Label: "Proyectos", Href: "/projects", Icon: iconFolder},
			Crumb{Label: projectLabel(projects, projectID, loading), Href: "/project/" + parts[1], Icon: iconFolder},
			Crumb{Label: taskLabel(tasks, taskID, loading), Href: "/project/" + parts[1] + "/task/" + parts[3], Icon: iconTasks},
		)

	case path == "/search":
		label := "Búsqueda"
		if searchQuery != "" {
			label = fmt.Sprintf("Búsqueda: %q", searchQuery)
		}
		crumbs = append(crumbs, Crumb{Label: label, Icon: iconSearch})

	case path == "/change-password":
		crumbs = append(crumbs, Crumb{Label: "Cambiar Contraseña", Href: "/change-password", Icon: iconLock})

	case path == "/logout":
		crumbs = append(crumbs, Crumb{Label: "Cerrar Sesión", Icon: iconLogout})
	}

	// The last node is the current location and never carries a link.
	crumbs[len(crumbs)-1].Href = ""

	return crumbs
}

func projectLabel(projects []domain.Project, id domain.ID, loading bool) string {
	for _, p := range projects {
		if p.ID == id {
			return p.Name
		}
	}
	if loading {
		return labelLoading
	}
	return labelProjectNotFound
}

func taskLabel(tasks []domain.Task, id domain.ID, loading bool) string {
	for _, t := range tasks {
		if t.ID == id {
			return t.Title
		}
	}
	if loading {
		return labelLoading
	}
	return labelTaskNotFound
}

func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
