package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"cinehub/internal/imdb"
	"cinehub/internal/ingest"
	"cinehub/pkg/database"
	"cinehub/pkg/utils"
)

func main() {
	var (
		idsFlag = flag.String("ids", "", "comma-separated title ids (default: configured seed list)")
		timeout = flag.Duration("timeout", 10*time.Minute, "overall seeding deadline")
	)
	flag.Parse()

	cfg := utils.LoadConfig()

	ids := cfg.SeedIDs
	if *idsFlag != "" {
		ids = nil
		for _, id := range strings.Split(*idsFlag, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	log.Printf("[seeder] seeding %d titles from %s", len(ids), cfg.SourceBase)

	ingester := ingest.NewIngester(imdb.NewClient(cfg.SourceBase), ingest.NewStore(db), nil)
	added := ingester.SeedCatalog(ctx, ids)

	log.Printf("[seeder] done: %d of %d titles committed", added, len(ids))
}
