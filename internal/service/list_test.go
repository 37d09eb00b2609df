package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"kiroku/internal/config"
	"kiroku/internal/db"
	"kiroku/internal/models"
	"kiroku/internal/repository"
	gormrepository "kiroku/internal/repository/gorm"
	"kiroku/internal/service"
)

func newListService(t *testing.T) (*service.ListService, *models.User, *models.Anime) {
	t.Helper()
	conn, err := db.Open(config.DBConfig{DSN: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(conn) })
	require.NoError(t, db.AutoMigrate(conn))

	store := gormrepository.New(conn.Gorm)
	ctx := context.Background()
	u := &models.User{Email: "a@x.com", PasswordHash: "hash", Username: "a"}
	require.NoError(t, store.CreateUser(ctx, u))
	a := &models.Anime{Title: "Steins;Gate", TotalEpisodes: 24}
	require.NoError(t, store.CreateAnime(ctx, a))

	return &service.ListService{Repo: store}, u, a
}

func TestAddDefaultsToPlanToWatch(t *testing.T) {
	svc, u, a := newListService(t)

	e, err := svc.Add(context.Background(), u.ID, service.AddEntryParams{AnimeID: a.ID})
	require.NoError(t, err)
	require.Equal(t, models.StatusPlanToWatch, e.Status)
	require.Equal(t, 0, e.CurrentEpisode)
}

func TestAddRejectsUnknownStatus(t *testing.T) {
	svc, u, a := newListService(t)

	_, err := svc.Add(context.Background(), u.ID, service.AddEntryParams{AnimeID: a.ID, Status: "binging"})
	require.ErrorIs(t, err, service.ErrInvalidStatus)
}

func TestAddUnknownAnime(t *testing.T) {
	svc, u, _ := newListService(t)

	_, err := svc.Add(context.Background(), u.ID, service.AddEntryParams{AnimeID: 9999})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAddDuplicatePair(t *testing.T) {
	svc, u, a := newListService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, u.ID, service.AddEntryParams{AnimeID: a.ID})
	require.NoError(t, err)
	_, err = svc.Add(ctx, u.ID, service.AddEntryParams{AnimeID: a.ID, Status: models.StatusWatching})
	require.ErrorIs(t, err, repository.ErrConflict)

	items, err := svc.List(ctx, u.ID, "")
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	svc, u, a := newListService(t)
	ctx := context.Background()

	e, err := svc.Add(ctx, u.ID, service.AddEntryParams{AnimeID: a.ID})
	require.NoError(t, err)

	err = svc.Update(ctx, u.ID, e.ID, repository.ListEntryUpdate{Status: "binging"})
	require.ErrorIs(t, err, service.ErrInvalidStatus)
}
