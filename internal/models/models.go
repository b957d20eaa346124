// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package models holds the catalog entities and their JSON shapes.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// ErrInvalidRefID is returned when a parent reference cannot be decoded.
var ErrInvalidRefID = errors.New("invalid reference id")

// Ref is a resolved reference to a parent entity.
type Ref struct {
	Name string `json:"name"`
	ID   int64  `json:"id"`
}

// RefID is an inbound parent id. It accepts 5, "5" and {"id":5}.
// A JSON null or a missing field leaves it at zero.
type RefID int64

// UnmarshalJSON implements json.Unmarshaler.
func (r *RefID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = 0
		return nil
	}

	switch data[0] {
	case '{':
		var obj struct {
			ID *RefID `json:"id"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return ErrInvalidRefID
		}
		if obj.ID == nil {
			*r = 0
			return nil
		}
		*r = *obj.ID
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ErrInvalidRefID
		}
		if s == "" {
			*r = 0
			return nil
		}
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return ErrInvalidRefID
		}
		*r = RefID(id)
		return nil
	default:
		id, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return ErrInvalidRefID
		}
		*r = RefID(id)
		return nil
	}
}

// Int64 returns the id as int64.
func (r RefID) Int64() int64 {
	return int64(r)
}
