// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// ReleaseDateLayout is the accepted release date format.
const ReleaseDateLayout = "2006-01-02"

// Album belongs to exactly one artist.
type Album struct {
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	ReleaseDate   *string   `json:"release_date"`
	CoverImageURL *string   `json:"cover_image_url"`
	Title         string    `json:"title"`
	Artist        Ref       `json:"artist"`
	ID            int64     `json:"id"`
	ArtistID      int64     `json:"artist_id"`
}

// AlbumParams holds the writable album fields.
type AlbumParams struct {
	ReleaseDate   *string
	CoverImageURL *string
	Title         string
	ArtistID      int64
}
