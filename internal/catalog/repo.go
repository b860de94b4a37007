package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cinehub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) ListMovies(ctx context.Context) ([]models.Movie, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, movie_name, url, poster, description, rating
		FROM movie
		ORDER BY movie_name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	out := []models.Movie{}
	for rows.Next() {
		var m models.Movie
		if err := rows.Scan(&m.ID, &m.MovieName, &m.URL, &m.Poster, &m.Description, &m.Rating); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetMovie returns the movie with its genres and credited actors joined,
// or (nil, nil) when the id is unknown.
func (r *Repo) GetMovie(ctx context.Context, id string) (*models.Movie, error) {
	var m models.Movie
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, movie_name, url, poster, description, rating
		FROM movie
		WHERE id = ?
	`, id).Scan(&m.ID, &m.MovieName, &m.URL, &m.Poster, &m.Description, &m.Rating)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}

	genres, err := r.DB.QueryContext(ctx, `
		SELECT g.id, g.genre_name
		FROM genre g
		JOIN movie_genre mg ON mg.genre_id = g.id
		WHERE mg.movie_id = ?
		ORDER BY g.genre_name ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("movie genres: %w", err)
	}
	defer genres.Close()
	for genres.Next() {
		var g models.Genre
		if err := genres.Scan(&g.ID, &g.GenreName); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		m.Genres = append(m.Genres, g)
	}
	if err := genres.Err(); err != nil {
		return nil, err
	}

	actors, err := r.DB.QueryContext(ctx, `
		SELECT a.id, a.actor_name
		FROM actor a
		JOIN movie_actor ma ON ma.actor_id = a.id
		WHERE ma.movie_id = ?
		ORDER BY a.actor_name ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("movie actors: %w", err)
	}
	defer actors.Close()
	for actors.Next() {
		var a models.ActorRef
		if err := actors.Scan(&a.ID, &a.ActorName); err != nil {
			return nil, fmt.Errorf("scan actor ref: %w", err)
		}
		m.Actors = append(m.Actors, a)
	}
	return &m, actors.Err()
}

func (r *Repo) ListActors(ctx context.Context) ([]models.Actor, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, actor_name, image, url, description, birth_date
		FROM actor
		ORDER BY actor_name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list actors: %w", err)
	}
	defer rows.Close()

	out := []models.Actor{}
	for rows.Next() {
		var a models.Actor
		if err := rows.Scan(&a.ID, &a.ActorName, &a.Image, &a.URL, &a.Description, &a.BirthDate); err != nil {
			return nil, fmt.Errorf("scan actor: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetActor returns the actor with their filmography joined, or (nil, nil)
// when the id is unknown.
func (r *Repo) GetActor(ctx context.Context, id string) (*models.Actor, error) {
	var a models.Actor
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, actor_name, image, url, description, birth_date
		FROM actor
		WHERE id = ?
	`, id).Scan(&a.ID, &a.ActorName, &a.Image, &a.URL, &a.Description, &a.BirthDate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get actor: %w", err)
	}

	movies, err := r.DB.QueryContext(ctx, `
		SELECT m.id, m.movie_name
		FROM movie m
		JOIN movie_actor ma ON ma.movie_id = m.id
		WHERE ma.actor_id = ?
		ORDER BY m.movie_name ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("actor movies: %w", err)
	}
	defer movies.Close()
	for movies.Next() {
		var m models.MovieRef
		if err := movies.Scan(&m.ID, &m.MovieName); err != nil {
			return nil, fmt.Errorf("scan movie ref: %w", err)
		}
		a.Movies = append(a.Movies, m)
	}
	return &a, movies.Err()
}

// MoviePatch is a field-level overwrite; an empty string keeps the stored
// value. Rating travels as a string for the same reason.
type MoviePatch struct {
	MovieName   string `json:"movie_name"`
	URL         string `json:"url"`
	Poster      string `json:"poster"`
	Description string `json:"description"`
	Rating      string `json:"rating"`
}

func (r *Repo) UpdateMovie(ctx context.Context, id string, p MoviePatch) (bool, error) {
	var set []string
	var args []any

	if p.MovieName != "" {
		set = append(set, "movie_name = ?")
		args = append(args, p.MovieName)
	}
	if p.URL != "" {
		set = append(set, "url = ?")
		args = append(args, p.URL)
	}
	if p.Poster != "" {
		set = append(set, "poster = ?")
		args = append(args, p.Poster)
	}
	if p.Description != "" {
		set = append(set, "description = ?")
		args = append(args, p.Description)
	}
	if p.Rating != "" {
		f, err := strconv.ParseFloat(p.Rating, 64)
		if err != nil {
			return false, fmt.Errorf("rating %q not numeric", p.Rating)
		}
		set = append(set, "rating = ?")
		args = append(args, f)
	}

	if len(set) == 0 {
		return r.exists(ctx, `SELECT 1 FROM movie WHERE id = ?`, id)
	}

	args = append(args, id)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE movie SET "+strings.Join(set, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return false, fmt.Errorf("update movie: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ActorPatch mirrors MoviePatch; BirthDate must be YYYY-MM-DD when set.
type ActorPatch struct {
	ActorName   string `json:"actor_name"`
	Image       string `json:"image"`
	URL         string `json:"url"`
	Description string `json:"description"`
	BirthDate   string `json:"birth_date"`
}

func (r *Repo) UpdateActor(ctx context.Context, id string, p ActorPatch) (bool, error) {
	var set []string
	var args []any

	if p.ActorName != "" {
		set = append(set, "actor_name = ?")
		args = append(args, p.ActorName)
	}
	if p.Image != "" {
		set = append(set, "image = ?")
		args = append(args, p.Image)
	}
	if p.URL != "" {
		set = append(set, "url = ?")
		args = append(args, p.URL)
	}
	if p.Description != "" {
		set = append(set, "description = ?")
		args = append(args, p.Description)
	}
	if p.BirthDate != "" {
		if _, err := time.Parse("2006-01-02", p.BirthDate); err != nil {
			return false, fmt.Errorf("birth_date %q not a YYYY-MM-DD date", p.BirthDate)
		}
		set = append(set, "birth_date = ?")
		args = append(args, p.BirthDate)
	}

	if len(set) == 0 {
		return r.exists(ctx, `SELECT 1 FROM actor WHERE id = ?`, id)
	}

	args = append(args, id)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE actor SET "+strings.Join(set, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return false, fmt.Errorf("update actor: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteMovie removes the row; association edges cascade via foreign keys.
func (r *Repo) DeleteMovie(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM movie WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete movie: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *Repo) DeleteActor(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM actor WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete actor: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *Repo) exists(ctx context.Context, query, id string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
