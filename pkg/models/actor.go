package models

// Actor is a person row as stored in the `actor` table.
// ID is the external person id (e.g. "nm0004937").
type Actor struct {
	ID          string `json:"id"`
	ActorName   string `json:"actor_name"`
	Image       string `json:"image,omitempty"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
	BirthDate   string `json:"birth_date,omitempty"` // YYYY-MM-DD

	// Populated on detail reads only.
	Movies []MovieRef `json:"movies,omitempty"`
}

// MovieRef is the short form of a movie used when listed under an actor.
type MovieRef struct {
	ID        string `json:"id"`
	MovieName string `json:"movie_name"`
}
