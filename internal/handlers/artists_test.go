// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/oliverandrich/music-catalog/internal/models"
	"codeberg.org/oliverandrich/music-catalog/internal/testutil"
)

func TestCreateArtist(t *testing.T) {
	env := newTestEnv(t)

	rec := env.call(env.h.CreateArtist, http.MethodPost, "/api/artists",
		`{"name":"  Pink Floyd ","bio":"Progressive rock","image_url":""}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	artist := decode[models.Artist](t, rec)
	assert.Positive(t, artist.ID)
	assert.Equal(t, "Pink Floyd", artist.Name)
	require.NotNil(t, artist.Bio)
	assert.Equal(t, "Progressive rock", *artist.Bio)
	assert.Nil(t, artist.ImageURL)
}

func TestCreateArtist_Validation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.call(env.h.CreateArtist, http.MethodPost, "/api/artists", `{"name":"   "}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "O nome do artista é obrigatório.", messageOf(t, rec))
}

func TestCreateArtist_Duplicate(t *testing.T) {
	env := newTestEnv(t)
	testutil.NewTestArtist(t, env.repo, "Pink Floyd")

	rec := env.call(env.h.CreateArtist, http.MethodPost, "/api/artists", `{"name":"Pink Floyd"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Já existe um artista com este nome.", messageOf(t, rec))
}

func TestListArtists(t *testing.T) {
	env := newTestEnv(t)

	rec := env.call(env.h.ListArtists, http.MethodGet, "/api/artists", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	testutil.NewTestArtist(t, env.repo, "Radiohead")
	testutil.NewTestArtist(t, env.repo, "Pink Floyd")

	rec = env.call(env.h.ListArtists, http.MethodGet, "/api/artists", "")
	artists := decode[[]models.Artist](t, rec)
	require.Len(t, artists, 2)
	assert.Equal(t, "Pink Floyd", artists[0].Name)
	assert.Equal(t, "Radiohead", artists[1].Name)
}

func TestGetArtist(t *testing.T) {
	env := newTestEnv(t)
	artist := testutil.NewTestArtist(t, env.repo, "Pink Floyd")

	rec := env.call(env.h.GetArtist, http.MethodGet, "/api/artists/1", "", artist.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Pink Floyd", decode[models.Artist](t, rec).Name)

	rec = env.call(env.h.GetArtist, http.MethodGet, "/api/artists/999", "", 999)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Artista não encontrado.", messageOf(t, rec))
}

func TestGetArtist_InvalidID(t *testing.T) {
	env := newTestEnv(t)

	for _, id := range []string{"abc", "0", "-3", ""} {
		rec := env.callWithRawID(env.h.GetArtist, http.MethodGet, "/api/artists/x", "", id)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "id %q", id)
		assert.Equal(t, "ID inválido.", messageOf(t, rec))
	}
}

func TestUpdateArtist(t *testing.T) {
	env := newTestEnv(t)
	artist := testutil.NewTestArtist(t, env.repo, "Pink Floid")

	rec := env.call(env.h.UpdateArtist, http.MethodPut, "/api/artists/1",
		`{"name":"Pink Floyd","image_url":"https://img.example/pf.png"}`, artist.ID)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[models.Artist](t, rec)
	assert.Equal(t, artist.ID, updated.ID)
	assert.Equal(t, "Pink Floyd", updated.Name)
	require.NotNil(t, updated.ImageURL)
	assert.Equal(t, "https://img.example/pf.png", *updated.ImageURL)
}

func TestUpdateArtist_Errors(t *testing.T) {
	env := newTestEnv(t)
	testutil.NewTestArtist(t, env.repo, "Pink Floyd")
	other := testutil.NewTestArtist(t, env.repo, "Radiohead")

	rec := env.call(env.h.UpdateArtist, http.MethodPut, "/api/artists/1", `{"name":"Pink Floyd"}`, other.ID)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.call(env.h.UpdateArtist, http.MethodPut, "/api/artists/999", `{"name":"Nobody"}`, 999)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.call(env.h.UpdateArtist, http.MethodPut, "/api/artists/1", `{"name":""}`, other.ID)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteArtist(t *testing.T) {
	env := newTestEnv(t)
	artist := testutil.NewTestArtist(t, env.repo, "Pink Floyd")

	rec := env.call(env.h.DeleteArtist, http.MethodDelete, "/api/artists/1", "", artist.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Artista deletado com sucesso.", messageOf(t, rec))

	rec = env.call(env.h.DeleteArtist, http.MethodDelete, "/api/artists/1", "", artist.ID)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteArtist_WithAlbums(t *testing.T) {
	env := newTestEnv(t)
	artist := testutil.NewTestArtist(t, env.repo, "Pink Floyd")
	testutil.NewTestAlbum(t, env.repo, artist.ID, "The Wall")

	rec := env.call(env.h.DeleteArtist, http.MethodDelete, "/api/artists/1", "", artist.ID)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Não é possível deletar um artista que possui álbuns.", messageOf(t, rec))
}

func TestCreateArtist_PublishesEvent(t *testing.T) {
	env := newTestEnv(t)
	ch := env.hub.Register("conn-1", 1)

	rec := env.call(env.h.CreateArtist, http.MethodPost, "/api/artists", `{"name":"Pink Floyd"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	select {
	case msg := <-ch:
		assert.Contains(t, msg, "event: catalog")
		assert.Contains(t, msg, `"entity":"artist"`)
		assert.Contains(t, msg, `"action":"created"`)
	default:
		t.Fatal("expected a catalog event")
	}
}
