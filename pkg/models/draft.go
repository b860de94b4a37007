package models

import "time"

// MovieDraft is the in-memory candidate produced by mapping a title page's
// structured data. It has not been reconciled against the store yet.
//
// Genres and ActorURLs travel with the draft so the orchestrator can link
// associations after the movie row is resolved.
type MovieDraft struct {
	ID          string
	Name        string
	URL         string
	Poster      string
	Description string
	Rating      float64
	Genres      []string
	ActorURLs   []string
}

// ActorDraft is the mapped candidate for a person page.
type ActorDraft struct {
	ID          string
	Name        string
	Image       string
	URL         string
	Description string
	BirthDate   time.Time
}
