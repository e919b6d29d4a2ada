package appointment

import (
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
	StatusNoShow    Status = "no-show"
)

var statusAliases = map[string]Status{
	"pending":   StatusPending,
	"confirmed": StatusConfirmed,
	"completed": StatusCompleted,
	"canceled":  StatusCanceled,
	"cancelled": StatusCanceled,
	"no-show":   StatusNoShow,
	"no_show":   StatusNoShow,
	"noshow":    StatusNoShow,
	"no show":   StatusNoShow,
}

// ParseStatus normalizes external spellings to the canonical status.
func ParseStatus(raw string) (Status, bool) {
	s, ok := statusAliases[strings.ToLower(strings.TrimSpace(raw))]
	return s, ok
}

// NonBlockingStatuses never occupy the barber's time.
var NonBlockingStatuses = []Status{StatusCanceled, StatusNoShow}

// Blocks reports whether an appointment in this status occupies its interval.
func (s Status) Blocks() bool {
	return s != StatusCanceled && s != StatusNoShow
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCanceled || s == StatusNoShow
}

// ===============================
// Validations
// ===============================

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCanceled},
	StatusConfirmed: {StatusCompleted, StatusNoShow, StatusCanceled},
}

func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrValidation("invalid_state", "Appointment cannot move from "+string(from)+" to "+string(to)+".")
}

func InitialStatus() Status {
	return StatusPending
}

func statusStrings(list []Status) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = string(s)
	}
	return out
}

// NonBlockingStatusValues is NonBlockingStatuses as plain strings for SQL filters.
func NonBlockingStatusValues() []string {
	return statusStrings(NonBlockingStatuses)
}
