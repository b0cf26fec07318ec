package model

// InteractionAction is one of the fixed engagement kinds a plan can enable
type InteractionAction string

const (
	ActionLike    InteractionAction = "like"
	ActionComment InteractionAction = "comment"
	ActionFollow  InteractionAction = "follow"
	ActionRepost  InteractionAction = "repost"
)

// InteractionActions lists every action kind. A queue item carries exactly one
// entry per element of this list.
var InteractionActions = []InteractionAction{ActionLike, ActionComment, ActionFollow, ActionRepost}

// Valid reports whether a is one of the known action kinds.
func (a InteractionAction) Valid() bool {
	for _, known := range InteractionActions {
		if a == known {
			return true
		}
	}
	return false
}

// InteractionPlanEntry is the planned state of a single action for a queue item
type InteractionPlanEntry struct {
	Action  InteractionAction `json:"action"`
	Enabled bool              `json:"enabled"`
	Details string            `json:"details,omitempty"`
}

// QueueItem is a video selected for reposting together with the user's plan.
// It is only created by the queue store.
type QueueItem struct {
	VideoRecord
	ScheduledFor string                 `json:"scheduledFor,omitempty"` // datetime-local, e.g. 2025-01-31T18:30
	Caption      string                 `json:"caption,omitempty"`
	Notes        string                 `json:"notes,omitempty"`
	Interactions []InteractionPlanEntry `json:"interactions"`
}

// Interaction returns a pointer to the entry for action, or nil.
func (q *QueueItem) Interaction(action InteractionAction) *InteractionPlanEntry {
	for i := range q.Interactions {
		if q.Interactions[i].Action == action {
			return &q.Interactions[i]
		}
	}
	return nil
}

// Clone returns a deep copy so callers cannot alias the store's slices.
func (q QueueItem) Clone() QueueItem {
	out := q
	out.Interactions = make([]InteractionPlanEntry, len(q.Interactions))
	copy(out.Interactions, q.Interactions)
	return out
}
