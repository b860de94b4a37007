package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"cinehub/internal/events"
	"cinehub/internal/imdb"
)

// Source is the page-level view of the scrape target: one call per detail
// page, each returning the page's decoded structured-data record.
type Source interface {
	Title(ctx context.Context, id string) (map[string]any, error)
	Person(ctx context.Context, id string) (map[string]any, error)
}

const (
	StatusLinked  = "linked"
	StatusSkipped = "skipped"
)

// ItemOutcome records what happened to one association during AddMovie.
type ItemOutcome struct {
	Kind   string `json:"kind"` // "genre" or "actor"
	Key    string `json:"key"`  // genre name or actor id
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Report is the per-call result: the primary entity that was committed plus
// the outcome of every attempted association. A report with skips is a
// partial success, not a failure.
type Report struct {
	MovieID string        `json:"movie_id,omitempty"`
	ActorID string        `json:"actor_id,omitempty"`
	Items   []ItemOutcome `json:"items,omitempty"`
}

func (r *Report) SkippedCount() int {
	n := 0
	for _, it := range r.Items {
		if it.Status == StatusSkipped {
			n++
		}
	}
	return n
}

// Ingester drives fetch → extract → map → upsert for one entity at a time.
// Hub is optional; when set, every committed entity and skipped association
// is broadcast to feed subscribers.
type Ingester struct {
	Source Source
	Store  *Store
	Hub    *events.Hub
}

func NewIngester(src Source, store *Store, hub *events.Hub) *Ingester {
	return &Ingester{Source: src, Store: store, Hub: hub}
}

// Add routes a bare id or a full canonical URL by prefix: tt… is a title,
// nm… a person.
func (ing *Ingester) Add(ctx context.Context, idOrURL string) (*Report, error) {
	id := imdb.ExtractID(strings.TrimSpace(idOrURL))
	switch {
	case strings.HasPrefix(id, "tt"):
		return ing.AddMovie(ctx, id)
	case strings.HasPrefix(id, "nm"):
		if err := ing.AddActor(ctx, id); err != nil {
			return nil, err
		}
		return &Report{ActorID: id}, nil
	default:
		return nil, fmt.Errorf("unrecognized id %q: want a tt or nm prefix", id)
	}
}

// AddMovie ingests one title end to end. The movie row commits first, on
// its own, so a title whose associations all skip still persists; a failure
// on the movie itself aborts the call with nothing committed for it. A
// failure on a single genre or actor association is recorded as a skip and
// ingestion of the rest continues. ConflictError is the exception: a
// natural-key race is surfaced to the caller, who can simply re-invoke
// the call.
func (ing *Ingester) AddMovie(ctx context.Context, id string) (*Report, error) {
	record, err := ing.Source.Title(ctx, id)
	if err != nil {
		return nil, err
	}
	draft, err := imdb.ToMovieDraft(record, id)
	if err != nil {
		return nil, err
	}

	log.Printf("[ingest] producing movie %s (%s)", id, draft.Name)
	if err := ing.Store.InsertMovie(ctx, draft); err != nil {
		return nil, err
	}
	report := &Report{MovieID: id}

	for _, genre := range draft.Genres {
		if err := ing.Store.LinkMovieGenre(ctx, draft, genre); err != nil {
			var conflict *ConflictError
			if errors.As(err, &conflict) {
				return report, err
			}
			log.Printf("[ingest] movie %s: genre %q skipped: %v", id, genre, err)
			ing.record(report, ItemOutcome{Kind: "genre", Key: genre, Status: StatusSkipped, Reason: err.Error()})
			continue
		}
		ing.record(report, ItemOutcome{Kind: "genre", Key: genre, Status: StatusLinked})
	}

	for _, actorURL := range draft.ActorURLs {
		actorID := imdb.ExtractID(actorURL)
		outcome := ItemOutcome{Kind: "actor", Key: actorID, Status: StatusLinked}

		actorRecord, err := ing.Source.Person(ctx, actorID)
		if err != nil {
			log.Printf("[ingest] movie %s: actor %s skipped: %v", id, actorID, err)
			outcome.Status, outcome.Reason = StatusSkipped, err.Error()
			ing.record(report, outcome)
			continue
		}
		actorDraft, err := imdb.ToActorDraft(actorRecord, actorID)
		if err != nil {
			// known gap: not every credited person carries a birth date
			log.Printf("[ingest] movie %s: actor %s skipped: %v", id, actorID, err)
			outcome.Status, outcome.Reason = StatusSkipped, err.Error()
			ing.record(report, outcome)
			continue
		}
		if err := ing.Store.LinkMovieActor(ctx, draft, actorDraft); err != nil {
			var conflict *ConflictError
			if errors.As(err, &conflict) {
				return report, err
			}
			log.Printf("[ingest] movie %s: actor %s skipped: %v", id, actorID, err)
			outcome.Status, outcome.Reason = StatusSkipped, err.Error()
			ing.record(report, outcome)
			continue
		}
		ing.record(report, outcome)
	}

	ing.publish(events.IngestEvent{Type: events.MovieAddedType, MovieID: id})
	return report, nil
}

// AddActor ingests one standalone person. A bare actor row with no linked
// movie is a valid terminal state.
func (ing *Ingester) AddActor(ctx context.Context, id string) error {
	record, err := ing.Source.Person(ctx, id)
	if err != nil {
		return err
	}
	draft, err := imdb.ToActorDraft(record, id)
	if err != nil {
		return err
	}

	log.Printf("[ingest] producing actor %s (%s)", id, draft.Name)
	if err := ing.Store.InsertActor(ctx, draft); err != nil {
		return err
	}

	ing.publish(events.IngestEvent{Type: events.ActorAddedType, ActorID: id})
	return nil
}

// SeedCatalog runs AddMovie over a fixed id list, logging and moving on
// when a title fails. Returns how many titles committed.
func (ing *Ingester) SeedCatalog(ctx context.Context, ids []string) int {
	added := 0
	for _, id := range ids {
		report, err := ing.AddMovie(ctx, id)
		if err != nil {
			log.Printf("[ingest] seed %s failed: %v", id, err)
			continue
		}
		added++
		if n := report.SkippedCount(); n > 0 {
			log.Printf("[ingest] seed %s: %d of %d associations skipped", id, n, len(report.Items))
		}
	}
	return added
}

func (ing *Ingester) record(report *Report, outcome ItemOutcome) {
	report.Items = append(report.Items, outcome)

	evType := events.ItemLinkedType
	if outcome.Status == StatusSkipped {
		evType = events.ItemSkippedType
	}
	ing.publish(events.IngestEvent{
		Type:    evType,
		MovieID: report.MovieID,
		Kind:    outcome.Kind,
		Key:     outcome.Key,
		Reason:  outcome.Reason,
	})
}

func (ing *Ingester) publish(ev events.IngestEvent) {
	if ing.Hub == nil {
		return
	}
	ing.Hub.Broadcast(ev)
}
