package imdb

import (
	"errors"
	"strings"
	"testing"
)

const moviePage = `<!doctype html>
<html>
<head>
<title>Django Unchained</title>
<script type="application/ld+json">{"@type":"Movie","name":"Django Unchained","url":"https://www.imdb.com/title/tt1853728/"}</script>
</head>
<body><h1>Django Unchained</h1></body>
</html>`

func TestExtractLinkedData(t *testing.T) {
	record, err := ExtractLinkedData("https://www.imdb.com/title/tt1853728/", strings.NewReader(moviePage))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if record["name"] != "Django Unchained" {
		t.Fatalf("expected name, got %v", record["name"])
	}
	if record["@type"] != "Movie" {
		t.Fatalf("expected Movie type, got %v", record["@type"])
	}
}

func TestExtractLinkedDataMissingBlock(t *testing.T) {
	// what a bot challenge or layout change looks like
	page := `<html><head><script type="text/javascript">var x = 1;</script></head><body>Verify you are human</body></html>`

	_, err := ExtractLinkedData("https://www.imdb.com/title/tt0000001/", strings.NewReader(page))
	var malformed *MalformedPageError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedPageError, got %v", err)
	}
	if malformed.URL != "https://www.imdb.com/title/tt0000001/" {
		t.Fatalf("error should carry the page url, got %q", malformed.URL)
	}
}

func TestExtractLinkedDataUndecodablePayload(t *testing.T) {
	page := `<html><head><script type="application/ld+json">{not json at all</script></head><body></body></html>`

	_, err := ExtractLinkedData("https://www.imdb.com/title/tt0000002/", strings.NewReader(page))
	var malformed *MalformedPageError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedPageError, got %v", err)
	}
}

func TestExtractLinkedDataPicksFirstBlock(t *testing.T) {
	page := `<html><head>
<script type="application/ld+json">{"name":"first"}</script>
<script type="application/ld+json">{"name":"second"}</script>
</head><body></body></html>`

	record, err := ExtractLinkedData("https://example.test/", strings.NewReader(page))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if record["name"] != "first" {
		t.Fatalf("expected the first block, got %v", record["name"])
	}
}
