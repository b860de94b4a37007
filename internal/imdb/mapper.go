package imdb

import (
	"html"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cinehub/pkg/models"
)

// ExtractID pulls the external id out of a canonical detail-page URL:
// the segment right before the trailing slash, regardless of scheme or
// query string. A bare id passes through unchanged.
func ExtractID(rawURL string) string {
	s := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		s = u.Path
	}
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimRight(s, "/")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// ToMovieDraft maps a title page's structured-data record into a MovieDraft.
// Any missing or wrongly shaped required field is a MappingError; nothing is
// silently defaulted.
func ToMovieDraft(record map[string]any, id string) (models.MovieDraft, error) {
	var draft models.MovieDraft

	name, err := requireString(record, "movie", "name")
	if err != nil {
		return draft, err
	}
	pageURL, err := requireString(record, "movie", "url")
	if err != nil {
		return draft, err
	}
	poster, err := requireString(record, "movie", "image")
	if err != nil {
		return draft, err
	}
	description, err := requireString(record, "movie", "description")
	if err != nil {
		return draft, err
	}
	rating, err := ratingValue(record)
	if err != nil {
		return draft, err
	}

	draft = models.MovieDraft{
		ID:          id,
		Name:        html.UnescapeString(name),
		URL:         pageURL,
		Poster:      poster,
		Description: html.UnescapeString(description),
		Rating:      rating,
		Genres:      stringList(record["genre"]),
		ActorURLs:   actorURLs(record["actor"]),
	}
	return draft, nil
}

// ToActorDraft maps a person page's structured-data record into an
// ActorDraft. Person pages wrap the record in "mainEntity". A missing or
// malformed birthDate is a MappingError: not every credited person has one,
// and the caller decides whether that skips the actor or fails the call.
func ToActorDraft(record map[string]any, id string) (models.ActorDraft, error) {
	var draft models.ActorDraft

	if main, ok := record["mainEntity"].(map[string]any); ok {
		record = main
	}

	name, err := requireString(record, "person", "name")
	if err != nil {
		return draft, err
	}
	image, err := requireString(record, "person", "image")
	if err != nil {
		return draft, err
	}
	pageURL, err := requireString(record, "person", "url")
	if err != nil {
		return draft, err
	}
	description, err := requireString(record, "person", "description")
	if err != nil {
		return draft, err
	}
	rawDate, err := requireString(record, "person", "birthDate")
	if err != nil {
		return draft, err
	}
	birthDate, err := time.Parse("2006-01-02", rawDate)
	if err != nil {
		return draft, &MappingError{Kind: "person", Field: "birthDate", Reason: "not a YYYY-MM-DD date"}
	}

	draft = models.ActorDraft{
		ID:          id,
		Name:        html.UnescapeString(name),
		Image:       image,
		URL:         pageURL,
		Description: html.UnescapeString(description),
		BirthDate:   birthDate,
	}
	return draft, nil
}

func requireString(record map[string]any, kind, key string) (string, error) {
	v, ok := record[key]
	if !ok {
		return "", &MappingError{Kind: kind, Field: key, Reason: "missing"}
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", &MappingError{Kind: kind, Field: key, Reason: "not a non-empty string"}
	}
	return s, nil
}

// ratingValue digs out aggregateRating.ratingValue and coerces it to a
// float. The source serves it as either a JSON number or a string.
func ratingValue(record map[string]any) (float64, error) {
	agg, ok := record["aggregateRating"].(map[string]any)
	if !ok {
		return 0, &MappingError{Kind: "movie", Field: "aggregateRating", Reason: "missing"}
	}
	switch v := agg["ratingValue"].(type) {
	case float64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, &MappingError{Kind: "movie", Field: "aggregateRating.ratingValue", Reason: "not numeric"}
		}
		return f, nil
	default:
		return 0, &MappingError{Kind: "movie", Field: "aggregateRating.ratingValue", Reason: "not numeric"}
	}
}

// stringList accepts both the single-string and list forms the source uses
// for genre. Absence is fine: associations are optional on a draft.
func stringList(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// actorURLs collects credited actors' canonical urls from the record's
// "actor" entry (a list of person records, or a single one).
func actorURLs(v any) []string {
	var items []any
	switch t := v.(type) {
	case map[string]any:
		items = []any{t}
	case []any:
		items = t
	default:
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		person, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if u, ok := person["url"].(string); ok && u != "" {
			out = append(out, u)
		}
	}
	return out
}
