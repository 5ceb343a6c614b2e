package domain

// ToggleState is the explicit optimistic-UI sub-state of one block or
// unblock attempt. The presentation layer renders from this value
// instead of flipping a switch ahead of the backend.
type ToggleState string

const (
	// TogglePending: the request is in flight; the UI may show the
	// target state provisionally.
	TogglePending ToggleState = "PENDING"
	// ToggleConfirmed: the backend accepted the request. The response
	// message is not authoritative for the new status; the caller must
	// refresh the card detail.
	ToggleConfirmed ToggleState = "CONFIRMED"
	// ToggleRolledBack: the request failed; the displayed status must
	// revert to its pre-toggle value.
	ToggleRolledBack ToggleState = "ROLLED_BACK"
)

// ToggleResult reports the outcome of a block/unblock attempt.
type ToggleResult struct {
	State ToggleState `json:"state"`
	// PreviousStatus is the authoritative display status until a detail
	// refresh lands (and the state to revert to on rollback).
	PreviousStatus CardStatus `json:"previous_status"`
	// TargetStatus is the status the toggle was driving towards.
	TargetStatus CardStatus `json:"target_status"`
	// Message is the backend's confirmation text, present on success only.
	Message string `json:"message,omitempty"`
}

// DisplayStatus returns the status the UI should show for this result:
// the target once confirmed, the pre-toggle value otherwise.
func (r *ToggleResult) DisplayStatus() CardStatus {
	if r.State == ToggleConfirmed {
		return r.TargetStatus
	}
	return r.PreviousStatus
}

// ToggleTarget returns the status a toggle from current drives towards:
// active cards are blocked, anything else is unblocked.
func ToggleTarget(current CardStatus) CardStatus {
	if current == CardStatusActive {
		return CardStatusBlocked
	}
	return CardStatusActive
}
