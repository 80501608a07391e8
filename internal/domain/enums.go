package domain

type TaskStatus string

const (
	StatusPending    TaskStatus = "PENDING"
	StatusInProgress TaskStatus = "IN PROGRESS"
	StatusBlocked    TaskStatus = "BLOCKED"
	StatusInReview   TaskStatus = "IN REVIEW"
	StatusDone       TaskStatus = "DONE"
	StatusRejected   TaskStatus = "REJECTED"
	StatusClosed     TaskStatus = "CLOSED"
)

// StatusOrder is the canonical display order of the status vocabulary.
// Grouped views iterate this slice, never a map, so group order is stable.
var StatusOrder = []TaskStatus{
	StatusPending,
	StatusInProgress,
	StatusBlocked,
	StatusInReview,
	StatusDone,
	StatusRejected,
	StatusClosed,
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "baja"
	PriorityMedium TaskPriority = "media"
	PriorityHigh   TaskPriority = "alta"
)

// PriorityOrder lists priorities from most to least urgent.
var PriorityOrder = []TaskPriority{PriorityHigh, PriorityMedium, PriorityLow}

// StatusMeta holds the display metadata for one task status. There is a
// single authoritative table (statusMeta) consumed by every view, so the
// list, grouped and detail renderings cannot drift apart.
type StatusMeta struct {
	Label string // Spanish UI label
	Icon  string // single-rune marker shown next to the label
	Color string // ANSI-256 foreground color for badges
}

var statusMeta = map[TaskStatus]StatusMeta{
	StatusPending:    {Label: "Pendiente", Icon: "◔", Color: "220"},
	StatusInProgress: {Label: "En Progreso", Icon: "▶", Color: "33"},
	StatusBlocked:    {Label: "Bloqueada", Icon: "⊘", Color: "196"},
	StatusInReview:   {Label: "En Revisión", Icon: "◎", Color: "135"},
	StatusDone:       {Label: "Terminada", Icon: "✓", Color: "40"},
	StatusRejected:   {Label: "Rechazada", Icon: "✗", Color: "245"},
	StatusClosed:     {Label: "Cerrada", Icon: "▣", Color: "243"},
}

// Meta returns the display metadata for s. Unknown statuses fall back to
// the PENDING metadata; ingestion normalization makes that case unreachable
// for stored tasks.
func (s TaskStatus) Meta() StatusMeta {
	if m, ok := statusMeta[s]; ok {
		return m
	}
	return statusMeta[StatusPending]
}

// Valid reports whether s is part of the declared status vocabulary.
func (s TaskStatus) Valid() bool {
	_, ok := statusMeta[s]
	return ok
}

type PriorityMeta struct {
	Label string
	Icon  string
	Color string
}

var priorityMeta = map[TaskPriority]PriorityMeta{
	PriorityHigh:   {Label: "Alta", Icon: "▲", Color: "196"},
	PriorityMedium: {Label: "Media", Icon: "■", Color: "220"},
	PriorityLow:    {Label: "Baja", Icon: "▼", Color: "40"},
}

func (p TaskPriority) Meta() PriorityMeta {
	if m, ok := priorityMeta[p]; ok {
		return m
	}
	return priorityMeta[PriorityMedium]
}

func (p TaskPriority) Valid() bool {
	_, ok := priorityMeta[p]
	return ok
}

// NormalizeStatus maps an absent or unrecognized wire value onto the
// default status. The server is known to omit status on freshly created
// tasks, so every ingestion path goes through this.
func NormalizeStatus(raw string) TaskStatus {
	s := TaskStatus(raw)
	if !s.Valid() {
		return StatusPending
	}
	return s
}

// NormalizePriority maps an absent or unrecognized wire value onto the
// default priority.
func NormalizePriority(raw string) TaskPriority {
	p := TaskPriority(raw)
	if !p.Valid() {
		return PriorityMedium
	}
	return p
}
