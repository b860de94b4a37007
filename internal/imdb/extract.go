package imdb

import (
	"encoding/json"
	"io"

	"github.com/PuerkitoBio/goquery"
)

// ExtractLinkedData parses the markup and decodes the single
// script[type="application/ld+json"] block into a generic record.
//
// Bot challenge pages and layout changes both show up as a missing block,
// so the absence is reported as MalformedPageError, not a transport error.
func ExtractLinkedData(url string, body io.Reader) (map[string]any, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, &MalformedPageError{URL: url, Reason: "unparsable markup", Err: err}
	}

	sel := doc.Find(`script[type="application/ld+json"]`).First()
	if sel.Length() == 0 {
		return nil, &MalformedPageError{URL: url, Reason: "no ld+json script block"}
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(sel.Text()), &record); err != nil {
		return nil, &MalformedPageError{URL: url, Reason: "undecodable ld+json payload", Err: err}
	}

	return record, nil
}
