// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package sse

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Entity names used in catalog events.
const (
	EntityArtist = "artist"
	EntityAlbum  = "album"
	EntitySong   = "song"
)

// Actions used in catalog events.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// CatalogEventName is the SSE event name for catalog changes.
const CatalogEventName = "catalog"

// CatalogEvent describes one successful write to the catalog.
type CatalogEvent struct {
	Entity string `json:"entity"`
	Action string `json:"action"`
	ID     int64  `json:"id"`
}

// FormatEvent formats a message as an SSE event with optional event name.
// Multiline content is properly prefixed with "data:".
func FormatEvent(eventName, data string) string {
	var sb strings.Builder

	if eventName != "" {
		fmt.Fprintf(&sb, "event: %s\n", eventName)
	}

	for line := range strings.SplitSeq(data, "\n") {
		fmt.Fprintf(&sb, "data: %s\n", line)
	}

	sb.WriteString("\n") // Empty line marks end of event
	return sb.String()
}

// FormatCatalogEvent encodes ev as a "catalog" SSE event.
func FormatCatalogEvent(ev CatalogEvent) string {
	data, _ := json.Marshal(ev)
	return FormatEvent(CatalogEventName, string(data))
}

// Publish broadcasts a catalog event to every open stream.
func (h *Hub) Publish(entity, action string, id int64) {
	h.Broadcast(FormatCatalogEvent(CatalogEvent{Entity: entity, Action: action, ID: id}))
}

// Heartbeat is an SSE comment that keeps the connection alive.
// Comments (lines starting with :) are ignored by SSE clients.
const Heartbeat = ": heartbeat\n\n"
