package events

import "time"

const (
	MovieAddedType  = "ingest.movie_added"
	ActorAddedType  = "ingest.actor_added"
	ItemLinkedType  = "ingest.item_linked"
	ItemSkippedType = "ingest.item_skipped"
)

// IngestEvent is broadcast once per committed entity or skipped association
// so feed consumers can watch a seed run progress item by item.
type IngestEvent struct {
	Type    string    `json:"type"`
	MovieID string    `json:"movie_id,omitempty"`
	ActorID string    `json:"actor_id,omitempty"`
	Kind    string    `json:"kind,omitempty"` // "genre" or "actor"
	Key     string    `json:"key,omitempty"`  // genre name or actor id
	Reason  string    `json:"reason,omitempty"`
	At      time.Time `json:"at"`
}
