package ingest

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"cinehub/pkg/models"
)

// Store reconciles drafts against the relational store. Each Link call is
// one transaction: resolve both rows by natural key, insert whichever is
// missing, and append the association edge exactly once. If both rows and
// the edge already exist nothing is written, so a repeated ingestion of
// the same title is a no-op.
type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

// LinkMovieGenre resolves the movie by id and the genre by name, creating
// either as needed, and links them. The movie row is resolved first so an
// edge never references a movie that has no backing row.
func (s *Store) LinkMovieGenre(ctx context.Context, movie models.MovieDraft, genreName string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	movieExisted, err := rowExists(ctx, tx, `SELECT 1 FROM movie WHERE id = ?`, movie.ID)
	if err != nil {
		return fmt.Errorf("resolve movie %s: %w", movie.ID, err)
	}

	var genreID string
	genreExisted := true
	err = tx.QueryRowContext(ctx, `SELECT id FROM genre WHERE genre_name = ?`, genreName).Scan(&genreID)
	if err == sql.ErrNoRows {
		genreExisted = false
	} else if err != nil {
		return fmt.Errorf("resolve genre %q: %w", genreName, err)
	}

	if !movieExisted {
		if err := insertMovie(ctx, tx, movie); err != nil {
			return classify("movie "+movie.ID, err)
		}
	}
	if !genreExisted {
		genreID = uuid.NewString()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO genre (id, genre_name) VALUES (?, ?)`, genreID, genreName,
		); err != nil {
			return classify("genre "+genreName, err)
		}
	}

	if movieExisted && genreExisted {
		edgeExisted, err := rowExists(ctx, tx,
			`SELECT 1 FROM movie_genre WHERE movie_id = ? AND genre_id = ?`, movie.ID, genreID)
		if err != nil {
			return fmt.Errorf("resolve edge %s-%s: %w", movie.ID, genreName, err)
		}
		if edgeExisted {
			return tx.Commit()
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO movie_genre (movie_id, genre_id) VALUES (?, ?)`, movie.ID, genreID,
	); err != nil {
		return classify(fmt.Sprintf("edge %s-%s", movie.ID, genreName), err)
	}

	return tx.Commit()
}

// LinkMovieActor is LinkMovieGenre's mirror, keyed on the actor's id.
func (s *Store) LinkMovieActor(ctx context.Context, movie models.MovieDraft, actor models.ActorDraft) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	movieExisted, err := rowExists(ctx, tx, `SELECT 1 FROM movie WHERE id = ?`, movie.ID)
	if err != nil {
		return fmt.Errorf("resolve movie %s: %w", movie.ID, err)
	}
	actorExisted, err := rowExists(ctx, tx, `SELECT 1 FROM actor WHERE id = ?`, actor.ID)
	if err != nil {
		return fmt.Errorf("resolve actor %s: %w", actor.ID, err)
	}

	if !movieExisted {
		if err := insertMovie(ctx, tx, movie); err != nil {
			return classify("movie "+movie.ID, err)
		}
	}
	if !actorExisted {
		if err := insertActor(ctx, tx, actor); err != nil {
			return classify("actor "+actor.ID, err)
		}
	}

	if movieExisted && actorExisted {
		edgeExisted, err := rowExists(ctx, tx,
			`SELECT 1 FROM movie_actor WHERE movie_id = ? AND actor_id = ?`, movie.ID, actor.ID)
		if err != nil {
			return fmt.Errorf("resolve edge %s-%s: %w", movie.ID, actor.ID, err)
		}
		if edgeExisted {
			return tx.Commit()
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO movie_actor (movie_id, actor_id) VALUES (?, ?)`, movie.ID, actor.ID,
	); err != nil {
		return classify(fmt.Sprintf("edge %s-%s", movie.ID, actor.ID), err)
	}

	return tx.Commit()
}

// InsertMovie adds the movie row if absent. Runs before any association
// link so a title with nothing linkable still lands in the store.
func (s *Store) InsertMovie(ctx context.Context, movie models.MovieDraft) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	existed, err := rowExists(ctx, tx, `SELECT 1 FROM movie WHERE id = ?`, movie.ID)
	if err != nil {
		return fmt.Errorf("resolve movie %s: %w", movie.ID, err)
	}
	if !existed {
		if err := insertMovie(ctx, tx, movie); err != nil {
			return classify("movie "+movie.ID, err)
		}
	}

	return tx.Commit()
}

// InsertActor adds a bare actor row if absent; no associations attached.
func (s *Store) InsertActor(ctx context.Context, actor models.ActorDraft) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	existed, err := rowExists(ctx, tx, `SELECT 1 FROM actor WHERE id = ?`, actor.ID)
	if err != nil {
		return fmt.Errorf("resolve actor %s: %w", actor.ID, err)
	}
	if !existed {
		if err := insertActor(ctx, tx, actor); err != nil {
			return classify("actor "+actor.ID, err)
		}
	}

	return tx.Commit()
}

func rowExists(ctx context.Context, tx *sql.Tx, query string, args ...any) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func insertMovie(ctx context.Context, tx *sql.Tx, m models.MovieDraft) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO movie (id, movie_name, url, poster, description, rating)
		VALUES (?, ?, ?, ?, ?, ?)
	`, m.ID, m.Name, m.URL, m.Poster, m.Description, m.Rating)
	return err
}

func insertActor(ctx context.Context, tx *sql.Tx, a models.ActorDraft) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO actor (id, actor_name, image, url, description, birth_date)
		VALUES (?, ?, ?, ?, ?, ?)
	`, a.ID, a.Name, a.Image, a.URL, a.Description, a.BirthDate.Format("2006-01-02"))
	return err
}
