package imdb

import "fmt"

// FetchError is a transport-level failure: the page could not be retrieved
// at all (network error or non-2xx status). Never retried here.
type FetchError struct {
	URL    string
	Status int // 0 when the request never completed
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// MalformedPageError means the markup came back but carried no usable
// structured data. This is the dominant real-world failure: layout changes,
// geo-blocks and bot challenge pages all land here, distinct from FetchError.
type MalformedPageError struct {
	URL    string
	Reason string
	Err    error
}

func (e *MalformedPageError) Error() string {
	return fmt.Sprintf("malformed page %s: %s", e.URL, e.Reason)
}

func (e *MalformedPageError) Unwrap() error { return e.Err }

// MappingError means the structured data decoded fine but a required field
// is missing or has the wrong shape (e.g. a person without birthDate).
type MappingError struct {
	Kind   string // "movie" or "person"
	Field  string
	Reason string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("map %s: field %q: %s", e.Kind, e.Field, e.Reason)
}
