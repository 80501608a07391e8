package cli

import (
	"github.com/politask/politask/internal/store"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App   *App
	Store *store.Store

	// Terminal dimensions.
	Width  int
	Height int

	// True while the breadcrumb prefetch (projects + tasks) is in flight.
	// The deriver labels unknown entities "Cargando..." during this window.
	CrumbsLoading bool
}

// ContentHeight returns the rows available to view content after the
// breadcrumb header (2 lines) and the help footer (2 lines).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 0 {
		return 0
	}
	return h
}
