// export-mirror snapshots the live catalog into data/mirror.json, the file
// mirror-server serves from. Run it after a seed to refresh the offline set.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"cinehub/pkg/database"
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
	out := flag.String("out", "data/mirror.json", "output path")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	data, err := export(ctx, db)
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		log.Fatalf("mkdir: %v", err)
	}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(*out, b, 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}

	log.Printf("exported %d movies and %d people to %s", len(data.Movies), len(data.People), *out)
}

func export(ctx context.Context, db *sql.DB) (*mirrorData, error) {
	data := &mirrorData{}

	rows, err := db.QueryContext(ctx, `
		SELECT id, movie_name, url, poster, description, rating
		FROM movie ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var m mirrorMovie
		if err := rows.Scan(&m.ID, &m.Name, &m.URL, &m.Image, &m.Description, &m.Rating); err != nil {
			return nil, err
		}
		if m.Genres, err = column(ctx, db, `
			SELECT g.genre_name FROM genre g
			JOIN movie_genre mg ON mg.genre_id = g.id
			WHERE mg.movie_id = ? ORDER BY g.genre_name
		`, m.ID); err != nil {
			return nil, err
		}
		if m.ActorIDs, err = column(ctx, db, `
			SELECT actor_id FROM movie_actor WHERE movie_id = ? ORDER BY actor_id
		`, m.ID); err != nil {
			return nil, err
		}
		data.Movies = append(data.Movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	people, err := db.QueryContext(ctx, `
		SELECT id, actor_name, image, url, description, birth_date
		FROM actor ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer people.Close()
	for people.Next() {
		var p mirrorPerson
		if err := people.Scan(&p.ID, &p.Name, &p.Image, &p.URL, &p.Description, &p.BirthDate); err != nil {
			return nil, err
		}
		data.People = append(data.People, p)
	}
	return data, people.Err()
}

func column(ctx context.Context, db *sql.DB, query, id string) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
