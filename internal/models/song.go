// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// Song belongs to exactly one album.
type Song struct {
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	DurationSeconds *int      `json:"duration_seconds"`
	TrackNumber     *int      `json:"track_number"`
	Title           string    `json:"title"`
	Album           Ref       `json:"album"`
	ID              int64     `json:"id"`
	AlbumID         int64     `json:"album_id"`
}

// SongParams holds the writable song fields.
type SongParams struct {
	DurationSeconds *int
	TrackNumber     *int
	Title           string
	AlbumID         int64
}
