package models

// Genre is the only entity keyed by a generated surrogate id (uuid);
// its natural key is the unique genre_name.
type Genre struct {
	ID        string `json:"id"`
	GenreName string `json:"genre_name"`
}
