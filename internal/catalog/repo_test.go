package catalog

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"cinehub/pkg/database"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(database.Config{Path: ":memory:"})
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { db.Close() })
	return db
}

func seedCatalog(t *testing.T, db *sql.DB) {
	t.Helper()

	stmts := []string{
		`INSERT INTO movie (id, movie_name, url, poster, description, rating)
		 VALUES ('tt0000001', 'First', 'https://site/title/tt0000001/', 'p1.jpg', 'First movie.', 8.1)`,
		`INSERT INTO movie (id, movie_name, url, poster, description, rating)
		 VALUES ('tt0000002', 'Second', 'https://site/title/tt0000002/', 'p2.jpg', 'Second movie.', 7.2)`,
		`INSERT INTO actor (id, actor_name, image, url, description, birth_date)
		 VALUES ('nm0000001', 'Actor One', 'a1.jpg', 'https://site/name/nm0000001/', 'Bio one.', '1960-01-01')`,
		`INSERT INTO genre (id, genre_name) VALUES ('g-drama', 'Drama')`,
		`INSERT INTO movie_genre (movie_id, genre_id) VALUES ('tt0000001', 'g-drama')`,
		`INSERT INTO movie_genre (movie_id, genre_id) VALUES ('tt0000002', 'g-drama')`,
		`INSERT INTO movie_actor (movie_id, actor_id) VALUES ('tt0000001', 'nm0000001')`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func TestGetMovieJoinsAssociations(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)
	repo := NewRepo(db)
	ctx := context.Background()

	m, err := repo.GetMovie(ctx, "tt0000001")
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, "First", m.MovieName)
	require.Len(t, m.Genres, 1)
	require.Equal(t, "Drama", m.Genres[0].GenreName)
	require.Len(t, m.Actors, 1)
	require.Equal(t, "nm0000001", m.Actors[0].ID)
}

func TestGetMovieUnknownID(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)

	m, err := repo.GetMovie(context.Background(), "tt9999999")
	require.NoError(t, err)
	require.Nil(t, m)
}

func TestGetActorJoinsFilmography(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)
	repo := NewRepo(db)

	a, err := repo.GetActor(context.Background(), "nm0000001")
	require.NoError(t, err)
	require.NotNil(t, a)
	require.Equal(t, "1960-01-01", a.BirthDate)
	require.Len(t, a.Movies, 1)
	require.Equal(t, "First", a.Movies[0].MovieName)
}

func TestUpdateMovieEmptyFieldsKeepStoredValues(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)
	repo := NewRepo(db)
	ctx := context.Background()

	found, err := repo.UpdateMovie(ctx, "tt0000001", MoviePatch{Rating: "9.0"})
	require.NoError(t, err)
	require.True(t, found)

	m, err := repo.GetMovie(ctx, "tt0000001")
	require.NoError(t, err)
	require.Equal(t, 9.0, m.Rating)
	// untouched fields survive
	require.Equal(t, "First", m.MovieName)
	require.Equal(t, "First movie.", m.Description)
}

func TestUpdateMovieRejectsNonNumericRating(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)
	repo := NewRepo(db)

	_, err := repo.UpdateMovie(context.Background(), "tt0000001", MoviePatch{Rating: "great"})
	require.Error(t, err)
}

func TestUpdateMovieNoFieldsReportsExistence(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)
	repo := NewRepo(db)
	ctx := context.Background()

	found, err := repo.UpdateMovie(ctx, "tt0000001", MoviePatch{})
	require.NoError(t, err)
	require.True(t, found)

	found, err = repo.UpdateMovie(ctx, "tt9999999", MoviePatch{})
	require.NoError(t, err)
	require.False(t, found)
}

func TestUpdateActorBirthDateValidated(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)
	repo := NewRepo(db)
	ctx := context.Background()

	_, err := repo.UpdateActor(ctx, "nm0000001", ActorPatch{BirthDate: "January 1, 1960"})
	require.Error(t, err)

	found, err := repo.UpdateActor(ctx, "nm0000001", ActorPatch{BirthDate: "1961-02-02", Description: "Updated bio."})
	require.NoError(t, err)
	require.True(t, found)

	a, err := repo.GetActor(ctx, "nm0000001")
	require.NoError(t, err)
	require.Equal(t, "1961-02-02", a.BirthDate)
	require.Equal(t, "Updated bio.", a.Description)
	require.Equal(t, "Actor One", a.ActorName)
}

func TestDeleteMovieCascadesEdges(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)
	repo := NewRepo(db)

	found, err := repo.DeleteMovie(context.Background(), "tt0000001")
	require.NoError(t, err)
	require.True(t, found)

	// edges go with the movie, the shared rows stay
	require.Equal(t, 1, countRows(t, db, "movie"))
	require.Equal(t, 1, countRows(t, db, "movie_genre"))
	require.Equal(t, 0, countRows(t, db, "movie_actor"))
	require.Equal(t, 1, countRows(t, db, "genre"))
	require.Equal(t, 1, countRows(t, db, "actor"))
}

func TestDeleteActorCascadesEdges(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)
	repo := NewRepo(db)

	found, err := repo.DeleteActor(context.Background(), "nm0000001")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 0, countRows(t, db, "movie_actor"))
	require.Equal(t, 2, countRows(t, db, "movie"))

	found, err = repo.DeleteActor(context.Background(), "nm0000001")
	require.NoError(t, err)
	require.False(t, found)
}
