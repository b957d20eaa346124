// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/oliverandrich/music-catalog/internal/models"
)

const albumSelect = `SELECT al.id, al.title, al.artist_id, ar.name AS artist_name,
	al.release_date, al.cover_image_url, al.created_at, al.updated_at
FROM albums al
JOIN artists ar ON ar.id = al.artist_id`

type albumRow struct {
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
	ReleaseDate   *string   `db:"release_date"`
	CoverImageURL *string   `db:"cover_image_url"`
	Title         string    `db:"title"`
	ArtistName    string    `db:"artist_name"`
	ID            int64     `db:"id"`
	ArtistID      int64     `db:"artist_id"`
}

func (row albumRow) toModel() models.Album {
	return models.Album{
		ID:            row.ID,
		Title:         row.Title,
		ArtistID:      row.ArtistID,
		Artist:        models.Ref{ID: row.ArtistID, Name: row.ArtistName},
		ReleaseDate:   row.ReleaseDate,
		CoverImageURL: row.CoverImageURL,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

// CreateAlbum stores a new album. ErrReference is returned when the artist does not exist.
func (r *Repository) CreateAlbum(ctx context.Context, p models.AlbumParams) (*models.Album, error) {
	if err := r.requireParent(ctx, "artists", p.ArtistID); err != nil {
		return nil, err
	}

	id, err := r.insert(ctx,
		"INSERT INTO albums (title, artist_id, release_date, cover_image_url) VALUES (?, ?, ?, ?)",
		p.Title, p.ArtistID, nullable(p.ReleaseDate), nullable(p.CoverImageURL))
	if err != nil {
		return nil, wrapError(err)
	}
	return r.GetAlbumByID(ctx, id)
}

// ListAlbums returns albums ordered by title, optionally limited to one artist.
func (r *Repository) ListAlbums(ctx context.Context, artistID *int64) ([]models.Album, error) {
	query := albumSelect
	var args []any
	if artistID != nil {
		query += " WHERE al.artist_id = ?"
		args = append(args, *artistID)
	}
	query += " ORDER BY al.title ASC, al.id ASC"

	var rows []albumRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	albums := make([]models.Album, 0, len(rows))
	for _, row := range rows {
		albums = append(albums, row.toModel())
	}
	return albums, nil
}

// GetAlbumByID retrieves an album with its artist reference.
func (r *Repository) GetAlbumByID(ctx context.Context, id int64) (*models.Album, error) {
	var row albumRow
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(albumSelect+" WHERE al.id = ?"), id); err != nil {
		return nil, wrapError(err)
	}
	album := row.toModel()
	return &album, nil
}

// UpdateAlbum replaces the writable fields of an album.
func (r *Repository) UpdateAlbum(ctx context.Context, id int64, p models.AlbumParams) (*models.Album, error) {
	if err := r.requireParent(ctx, "artists", p.ArtistID); err != nil {
		return nil, err
	}

	ok, err := r.execAffected(ctx,
		`UPDATE albums SET title = ?, artist_id = ?, release_date = ?, cover_image_url = ?,
			updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		p.Title, p.ArtistID, nullable(p.ReleaseDate), nullable(p.CoverImageURL), id)
	if err != nil {
		return nil, wrapError(err)
	}
	if !ok {
		return nil, ErrNotFound
	}
	return r.GetAlbumByID(ctx, id)
}

// DeleteAlbum removes an album. It reports false when no album had the ID
// and ErrInUse while songs still reference it.
func (r *Repository) DeleteAlbum(ctx context.Context, id int64) (bool, error) {
	ok, err := r.execAffected(ctx, "DELETE FROM albums WHERE id = ?", id)
	if err != nil {
		return false, wrapDeleteError(err)
	}
	return ok, nil
}

// requireParent returns ErrReference unless the parent row exists.
func (r *Repository) requireParent(ctx context.Context, table string, id int64) error {
	ok, err := r.exists(ctx, table, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrReference
	}
	return nil
}
