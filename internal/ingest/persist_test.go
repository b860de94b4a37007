package ingest

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cinehub/pkg/database"
	"cinehub/pkg/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(database.Config{Path: ":memory:"})
	require.NoError(t, err)
	// in-memory sqlite is per connection; keep the pool at one
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { db.Close() })
	return db
}

func count(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func testMovie(id, name string) models.MovieDraft {
	return models.MovieDraft{
		ID:          id,
		Name:        name,
		URL:         "https://www.imdb.com/title/" + id + "/",
		Poster:      "https://img.test/" + id + ".jpg",
		Description: "A test movie.",
		Rating:      7.5,
	}
}

func testActor(id, name string) models.ActorDraft {
	return models.ActorDraft{
		ID:          id,
		Name:        name,
		Image:       "https://img.test/" + id + ".jpg",
		URL:         "https://www.imdb.com/name/" + id + "/",
		Description: "A test actor.",
		BirthDate:   time.Date(1970, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestLinkMovieGenreCreatesRowsAndEdge(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	require.NoError(t, store.LinkMovieGenre(ctx, testMovie("tt0000001", "First"), "Drama"))

	require.Equal(t, 1, count(t, db, "movie"))
	require.Equal(t, 1, count(t, db, "genre"))
	require.Equal(t, 1, count(t, db, "movie_genre"))
}

func TestLinkMovieGenreIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	movie := testMovie("tt0000001", "First")
	require.NoError(t, store.LinkMovieGenre(ctx, movie, "Drama"))
	require.NoError(t, store.LinkMovieGenre(ctx, movie, "Drama"))

	require.Equal(t, 1, count(t, db, "movie"))
	require.Equal(t, 1, count(t, db, "genre"))
	require.Equal(t, 1, count(t, db, "movie_genre"))
}

func TestTwoMoviesShareOneGenreRow(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	require.NoError(t, store.LinkMovieGenre(ctx, testMovie("tt0000001", "First"), "Drama"))
	require.NoError(t, store.LinkMovieGenre(ctx, testMovie("tt0000002", "Second"), "Drama"))

	require.Equal(t, 2, count(t, db, "movie"))
	require.Equal(t, 1, count(t, db, "genre"))
	require.Equal(t, 2, count(t, db, "movie_genre"))
}

func TestGenreNameLengthEnforcedAtStore(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	longName := strings.Repeat("x", 61)
	err := store.LinkMovieGenre(ctx, testMovie("tt0000001", "First"), longName)
	require.Error(t, err)

	// whole unit of work rolled back, nothing committed
	require.Equal(t, 0, count(t, db, "movie"))
	require.Equal(t, 0, count(t, db, "genre"))
	require.Equal(t, 0, count(t, db, "movie_genre"))

	var conflict *ConflictError
	require.False(t, errors.As(err, &conflict), "length violation is not a key conflict")
}

func TestLinkMovieActorIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	movie := testMovie("tt0000001", "First")
	actor := testActor("nm0000001", "Someone")
	require.NoError(t, store.LinkMovieActor(ctx, movie, actor))
	require.NoError(t, store.LinkMovieActor(ctx, movie, actor))

	require.Equal(t, 1, count(t, db, "movie"))
	require.Equal(t, 1, count(t, db, "actor"))
	require.Equal(t, 1, count(t, db, "movie_actor"))
}

func TestLinkMovieActorSharedActor(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	actor := testActor("nm0000001", "Someone")
	require.NoError(t, store.LinkMovieActor(ctx, testMovie("tt0000001", "First"), actor))
	require.NoError(t, store.LinkMovieActor(ctx, testMovie("tt0000002", "Second"), actor))

	require.Equal(t, 2, count(t, db, "movie"))
	require.Equal(t, 1, count(t, db, "actor"))
	require.Equal(t, 2, count(t, db, "movie_actor"))
}

func TestLinkDoesNotOverwriteExistingMovie(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	require.NoError(t, store.LinkMovieGenre(ctx, testMovie("tt0000001", "Original Name"), "Drama"))

	// re-ingesting with a different upstream name must not touch the row:
	// link operations only create or link, never update
	changed := testMovie("tt0000001", "Changed Name")
	require.NoError(t, store.LinkMovieGenre(ctx, changed, "Western"))

	var name string
	require.NoError(t, db.QueryRow(`SELECT movie_name FROM movie WHERE id = ?`, "tt0000001").Scan(&name))
	require.Equal(t, "Original Name", name)
	require.Equal(t, 2, count(t, db, "movie_genre"))
}

func TestInsertMovieIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	movie := testMovie("tt0000001", "First")
	require.NoError(t, store.InsertMovie(ctx, movie))
	require.NoError(t, store.InsertMovie(ctx, movie))

	require.Equal(t, 1, count(t, db, "movie"))
	require.Equal(t, 0, count(t, db, "movie_genre"))

	// later links against the pre-inserted row still attach edges
	require.NoError(t, store.LinkMovieGenre(ctx, movie, "Drama"))
	require.Equal(t, 1, count(t, db, "movie"))
	require.Equal(t, 1, count(t, db, "movie_genre"))
}

func TestLinkAttachesEdgeWhenBothRowsPreexist(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	first := testMovie("tt0000001", "First")
	second := testMovie("tt0000002", "Second")
	require.NoError(t, store.InsertMovie(ctx, first))
	require.NoError(t, store.InsertMovie(ctx, second))
	require.NoError(t, store.LinkMovieGenre(ctx, first, "Drama"))

	// second movie and the genre both exist already; only the edge is new
	require.NoError(t, store.LinkMovieGenre(ctx, second, "Drama"))
	require.Equal(t, 2, count(t, db, "movie_genre"))

	actor := testActor("nm0000001", "Someone")
	require.NoError(t, store.InsertActor(ctx, actor))
	require.NoError(t, store.LinkMovieActor(ctx, first, actor))
	require.NoError(t, store.LinkMovieActor(ctx, second, actor))
	require.Equal(t, 2, count(t, db, "movie_actor"))
	require.Equal(t, 1, count(t, db, "actor"))
}

func TestInsertActorIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	actor := testActor("nm0000001", "Someone")
	require.NoError(t, store.InsertActor(ctx, actor))
	require.NoError(t, store.InsertActor(ctx, actor))

	require.Equal(t, 1, count(t, db, "actor"))
	require.Equal(t, 0, count(t, db, "movie_actor"))

	var birth string
	require.NoError(t, db.QueryRow(`SELECT birth_date FROM actor WHERE id = ?`, "nm0000001").Scan(&birth))
	require.Equal(t, "1970-01-15", birth)
}

func TestClassifyUniqueViolationAsConflict(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO genre (id, genre_name) VALUES ('a', 'Drama')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO genre (id, genre_name) VALUES ('b', 'Drama')`)
	require.Error(t, err)

	classified := classify("genre Drama", err)
	var conflict *ConflictError
	require.True(t, errors.As(classified, &conflict), "unique violation should map to ConflictError, got %v", classified)
}
