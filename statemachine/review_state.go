package statemachine

import (
	"strings"

	"dining-review-api/models"
)

// ParseStatus maps a raw client string onto the closed status set,
// case-insensitively. Anything that is not "accepted" or "rejected" —
// including malformed input — maps to PENDING. That fallback is the
// documented policy for unrecognised input, not an error.
func ParseStatus(raw string) models.ReviewStatus {
	switch strings.ToLower(raw) {
	case "accepted":
		return models.StatusAccepted
	case "rejected":
		return models.StatusRejected
	default:
		return models.StatusPending
	}
}

// Transition describes one edge of the review lifecycle and what triggers it
type Transition struct {
	From    models.ReviewStatus `json:"from"`
	To      models.ReviewStatus `json:"to"`
	Trigger string              `json:"trigger"`
	Actor   string              `json:"actor"`
}

// lifecycle is the authoritative state machine definition. Admin transitions
// are unconditional; an owner edit forces any state back to PENDING.
var lifecycle = []Transition{
	{From: "", To: models.StatusPending, Trigger: "create", Actor: "reviewer"},
	{From: models.StatusPending, To: models.StatusAccepted, Trigger: "set-status", Actor: "admin"},
	{From: models.StatusPending, To: models.StatusRejected, Trigger: "set-status", Actor: "admin"},
	{From: models.StatusAccepted, To: models.StatusPending, Trigger: "edit", Actor: "reviewer"},
	{From: models.StatusAccepted, To: models.StatusRejected, Trigger: "set-status", Actor: "admin"},
	{From: models.StatusRejected, To: models.StatusPending, Trigger: "edit", Actor: "reviewer"},
	{From: models.StatusRejected, To: models.StatusAccepted, Trigger: "set-status", Actor: "admin"},
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return lifecycle
}
