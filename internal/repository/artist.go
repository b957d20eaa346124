// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/oliverandrich/music-catalog/internal/models"
)

const artistColumns = "id, name, bio, image_url, created_at, updated_at"

// CreateArtist stores a new artist.
func (r *Repository) CreateArtist(ctx context.Context, p models.ArtistParams) (*models.Artist, error) {
	id, err := r.insert(ctx,
		"INSERT INTO artists (name, bio, image_url) VALUES (?, ?, ?)",
		p.Name, nullable(p.Bio), nullable(p.ImageURL))
	if err != nil {
		return nil, wrapError(err)
	}
	return r.GetArtistByID(ctx, id)
}

// ListArtists returns all artists ordered by name.
func (r *Repository) ListArtists(ctx context.Context) ([]models.Artist, error) {
	artists := []models.Artist{}
	if err := r.db.SelectContext(ctx, &artists, "SELECT "+artistColumns+" FROM artists ORDER BY name ASC"); err != nil {
		return nil, err
	}
	return artists, nil
}

// GetArtistByID retrieves an artist by ID.
func (r *Repository) GetArtistByID(ctx context.Context, id int64) (*models.Artist, error) {
	var artist models.Artist
	query := r.db.Rebind("SELECT " + artistColumns + " FROM artists WHERE id = ?")
	if err := r.db.GetContext(ctx, &artist, query, id); err != nil {
		return nil, wrapError(err)
	}
	return &artist, nil
}

// UpdateArtist replaces the writable fields of an artist.
func (r *Repository) UpdateArtist(ctx context.Context, id int64, p models.ArtistParams) (*models.Artist, error) {
	ok, err := r.execAffected(ctx,
		"UPDATE artists SET name = ?, bio = ?, image_url = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		p.Name, nullable(p.Bio), nullable(p.ImageURL), id)
	if err != nil {
		return nil, wrapError(err)
	}
	if !ok {
		return nil, ErrNotFound
	}
	return r.GetArtistByID(ctx, id)
}

// DeleteArtist removes an artist. It reports false when no artist had the ID
// and ErrInUse while albums still reference it.
func (r *Repository) DeleteArtist(ctx context.Context, id int64) (bool, error) {
	ok, err := r.execAffected(ctx, "DELETE FROM artists WHERE id = ?", id)
	if err != nil {
		return false, wrapDeleteError(err)
	}
	return ok, nil
}
