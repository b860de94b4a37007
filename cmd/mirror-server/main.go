// mirror-server is an offline stand-in for the scrape target: it renders
// /title/<id>/ and /name/<id>/ pages with an embedded ld+json block from a
// local data/mirror.json snapshot, so the seeder can run without touching
// the real site (point CINEHUB_SOURCE_BASE at it).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
)

type mirrorMovie struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Rating      float64  `json:"rating"`
	Genres      []string `json:"genres"`
	ActorIDs    []string `json:"actor_ids"`
}

type mirrorPerson struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	URL         string `json:"url"`
	Description string `json:"description"`
	BirthDate   string `json:"birth_date,omitempty"`
}

type mirrorData struct {
	Movies []mirrorMovie  `json:"movies"`
	People []mirrorPerson `json:"people"`
}

func main() {
	var (
		addr     = flag.String("addr", ":9000", "listen address")
		dataPath = flag.String("data", "data/mirror.json", "mirror snapshot path")
	)
	flag.Parse()

	b, err := os.ReadFile(*dataPath)
	if err != nil {
		log.Fatalf("cannot read %s: %v", *dataPath, err)
	}
	var data mirrorData
	if err := json.Unmarshal(b, &data); err != nil {
		log.Fatalf("%s invalid JSON: %v", *dataPath, err)
	}

	movies := make(map[string]mirrorMovie, len(data.Movies))
	for _, m := range data.Movies {
		movies[m.ID] = m
	}
	people := make(map[string]mirrorPerson, len(data.People))
	for _, p := range data.People {
		people[p.ID] = p
	}

	base := "http://localhost" + *addr
	if !strings.HasPrefix(*addr, ":") {
		base = "http://" + *addr
	}

	http.HandleFunc("/title/", func(w http.ResponseWriter, r *http.Request) {
		m, ok := movies[pathID(r.URL.Path)]
		if !ok {
			http.NotFound(w, r)
			return
		}

		actors := make([]map[string]any, 0, len(m.ActorIDs))
		for _, id := range m.ActorIDs {
			p, ok := people[id]
			if !ok {
				continue
			}
			actors = append(actors, map[string]any{
				"@type": "Person",
				"name":  p.Name,
				"url":   fmt.Sprintf("%s/name/%s/", base, id),
			})
		}

		writePage(w, m.Name, map[string]any{
			"@context":    "https://schema.org",
			"@type":       "Movie",
			"name":        m.Name,
			"url":         m.URL,
			"image":       m.Image,
			"description": m.Description,
			"genre":       m.Genres,
			"actor":       actors,
			"aggregateRating": map[string]any{
				"@type":       "AggregateRating",
				"ratingValue": m.Rating,
			},
		})
	})

	http.HandleFunc("/name/", func(w http.ResponseWriter, r *http.Request) {
		p, ok := people[pathID(r.URL.Path)]
		if !ok {
			http.NotFound(w, r)
			return
		}

		entity := map[string]any{
			"@type":       "Person",
			"name":        p.Name,
			"image":       p.Image,
			"url":         p.URL,
			"description": p.Description,
		}
		// some people genuinely have no structured birth date; the mirror
		// reproduces that gap instead of papering over it
		if p.BirthDate != "" {
			entity["birthDate"] = p.BirthDate
		}

		writePage(w, p.Name, map[string]any{
			"@context":   "https://schema.org",
			"mainEntity": entity,
		})
	})

	log.Printf("mirror-server: %d movies, %d people, listening on %s", len(movies), len(people), *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}

func pathID(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

func writePage(w http.ResponseWriter, title string, record map[string]any) {
	b, err := json.Marshal(record)
	if err != nil {
		http.Error(w, "marshal record: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<!doctype html>
<html>
<head>
<title>%s</title>
<script type="application/ld+json">%s</script>
</head>
<body><h1>%s</h1></body>
</html>
`, title, b, title)
}
