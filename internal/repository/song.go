// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/oliverandrich/music-catalog/internal/models"
)

const songSelect = `SELECT s.id, s.title, s.album_id, al.title AS album_title,
	s.duration_seconds, s.track_number, s.created_at, s.updated_at
FROM songs s
JOIN albums al ON al.id = s.album_id`

type songRow struct {
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
	DurationSeconds *int      `db:"duration_seconds"`
	TrackNumber     *int      `db:"track_number"`
	Title           string    `db:"title"`
	AlbumTitle      string    `db:"album_title"`
	ID              int64     `db:"id"`
	AlbumID         int64     `db:"album_id"`
}

func (row songRow) toModel() models.Song {
	return models.Song{
		ID:              row.ID,
		Title:           row.Title,
		AlbumID:         row.AlbumID,
		Album:           models.Ref{ID: row.AlbumID, Name: row.AlbumTitle},
		DurationSeconds: row.DurationSeconds,
		TrackNumber:     row.TrackNumber,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

// CreateSong stores a new song. ErrReference is returned when the album does not exist.
func (r *Repository) CreateSong(ctx context.Context, p models.SongParams) (*models.Song, error) {
	if err := r.requireParent(ctx, "albums", p.AlbumID); err != nil {
		return nil, err
	}

	id, err := r.insert(ctx,
		"INSERT INTO songs (title, album_id, duration_seconds, track_number) VALUES (?, ?, ?, ?)",
		p.Title, p.AlbumID, nullable(p.DurationSeconds), nullable(p.TrackNumber))
	if err != nil {
		return nil, wrapError(err)
	}
	return r.GetSongByID(ctx, id)
}

// ListSongs returns songs ordered by track number, unnumbered songs last,
// then by title. The result is optionally limited to one album.
func (r *Repository) ListSongs(ctx context.Context, albumID *int64) ([]models.Song, error) {
	query := songSelect
	var args []any
	if albumID != nil {
		query += " WHERE s.album_id = ?"
		args = append(args, *albumID)
	}
	query += " ORDER BY s.track_number ASC NULLS LAST, s.title ASC"

	var rows []songRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	songs := make([]models.Song, 0, len(rows))
	for _, row := range rows {
		songs = append(songs, row.toModel())
	}
	return songs, nil
}

// GetSongByID retrieves a song with its album reference.
func (r *Repository) GetSongByID(ctx context.Context, id int64) (*models.Song, error) {
	var row songRow
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(songSelect+" WHERE s.id = ?"), id); err != nil {
		return nil, wrapError(err)
	}
	song := row.toModel()
	return &song, nil
}

// UpdateSong replaces the writable fields of a song.
func (r *Repository) UpdateSong(ctx context.Context, id int64, p models.SongParams) (*models.Song, error) {
	if err := r.requireParent(ctx, "albums", p.AlbumID); err != nil {
		return nil, err
	}

	ok, err := r.execAffected(ctx,
		`UPDATE songs SET title = ?, album_id = ?, duration_seconds = ?, track_number = ?,
			updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		p.Title, p.AlbumID, nullable(p.DurationSeconds), nullable(p.TrackNumber), id)
	if err != nil {
		return nil, wrapError(err)
	}
	if !ok {
		return nil, ErrNotFound
	}
	return r.GetSongByID(ctx, id)
}

// DeleteSong removes a song and reports whether it existed.
func (r *Repository) DeleteSong(ctx context.Context, id int64) (bool, error) {
	ok, err := r.execAffected(ctx, "DELETE FROM songs WHERE id = ?", id)
	if err != nil {
		return false, wrapDeleteError(err)
	}
	return ok, nil
}
