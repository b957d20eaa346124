// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// Artist is a performer in the catalog.
type Artist struct {
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	Bio       *string   `db:"bio" json:"bio"`
	ImageURL  *string   `db:"image_url" json:"image_url"`
	Name      string    `db:"name" json:"name"`
	ID        int64     `db:"id" json:"id"`
}

// ArtistParams holds the writable artist fields.
type ArtistParams struct {
	Bio      *string
	ImageURL *string
	Name     string
}
