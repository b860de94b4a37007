package models

// Movie is a title row as stored in the `movie` table.
//
// ID is the external title id (e.g. "tt1853728"), never a surrogate:
// re-ingesting the same title must land on the same row.
type Movie struct {
	ID          string  `json:"id"`
	MovieName   string  `json:"movie_name"`
	URL         string  `json:"url,omitempty"`
	Poster      string  `json:"poster,omitempty"`
	Description string  `json:"description,omitempty"`
	Rating      float64 `json:"rating,omitempty"`

	// Populated on detail reads only.
	Genres []Genre    `json:"genres,omitempty"`
	Actors []ActorRef `json:"actors,omitempty"`
}

// ActorRef is the short form of an actor used when listed under a movie.
type ActorRef struct {
	ID        string `json:"id"`
	ActorName string `json:"actor_name"`
}
