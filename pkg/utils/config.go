package utils

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultSeedIDs stands in for the source's "popular titles" listing: a
// fixed set of well-known title ids used by the seeder when CINEHUB_SEED_IDS
// is not set.
var DefaultSeedIDs = []string{
	"tt0111161", // The Shawshank Redemption
	"tt0068646", // The Godfather
	"tt0468569", // The Dark Knight
	"tt0167260", // The Return of the King
	"tt0110912", // Pulp Fiction
	"tt0137523", // Fight Club
	"tt1375666", // Inception
	"tt0133093", // The Matrix
	"tt0109830", // Forrest Gump
	"tt1853728", // Django Unchained
}

type Config struct {
	HTTPAddr   string // gin API server
	TCPAddr    string // ingest event feed
	SourceBase string // scrape target, override to point at the mirror
	SeedIDs    []string
}

func LoadConfig() Config {
	// .env is optional; real env always wins
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:   ":8080",
		TCPAddr:    ":7070",
		SourceBase: "https://www.imdb.com",
		SeedIDs:    DefaultSeedIDs,
	}

	if v := os.Getenv("CINEHUB_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("CINEHUB_TCP_ADDR"); v != "" {
		cfg.TCPAddr = v
	}
	if v := os.Getenv("CINEHUB_SOURCE_BASE"); v != "" {
		cfg.SourceBase = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("CINEHUB_SEED_IDS"); v != "" {
		var ids []string
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
		if len(ids) > 0 {
			cfg.SeedIDs = ids
		}
	}

	return cfg
}
