// export-csv dumps all five catalog relations to CSV files for offline
// analysis or spreadsheet imports.
package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"cinehub/pkg/database"
)

func main() {
	outDir := flag.String("out", "data/csv", "output directory")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	exports := []struct {
		file   string
		header []string
		query  string
	}{
		{
			"movie.csv",
			[]string{"id", "movie_name", "url", "poster", "description", "rating"},
			`SELECT id, movie_name, url, poster, description, rating FROM movie ORDER BY id`,
		},
		{
			"actor.csv",
			[]string{"id", "actor_name", "image", "url", "description", "birth_date"},
			`SELECT id, actor_name, image, url, description, birth_date FROM actor ORDER BY id`,
		},
		{
			"genre.csv",
			[]string{"id", "genre_name"},
			`SELECT id, genre_name FROM genre ORDER BY genre_name`,
		},
		{
			"movie_genre.csv",
			[]string{"movie_id", "genre_id"},
			`SELECT movie_id, genre_id FROM movie_genre ORDER BY movie_id, genre_id`,
		},
		{
			"movie_actor.csv",
			[]string{"movie_id", "actor_id"},
			`SELECT movie_id, actor_id FROM movie_actor ORDER BY movie_id, actor_id`,
		},
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("mkdir %s: %v", *outDir, err)
	}

	for _, e := range exports {
		path := filepath.Join(*outDir, e.file)
		n, err := exportTable(ctx, db, path, e.header, e.query)
		if err != nil {
			log.Fatalf("export %s failed: %v", e.file, err)
		}
		log.Printf("wrote %d rows to %s", n, path)
	}
}

func exportTable(ctx context.Context, db *sql.DB, path string, header []string, query string) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return 0, err
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	vals := make([]any, len(header))
	ptrs := make([]any, len(header))
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	n := 0
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return n, err
		}
		record := make([]string, len(vals))
		for i, v := range vals {
			record[i] = fmt.Sprint(v)
		}
		if err := w.Write(record); err != nil {
			return n, err
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return n, err
	}

	w.Flush()
	return n, w.Error()
}
