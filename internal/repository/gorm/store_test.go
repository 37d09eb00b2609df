package gormrepository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"kiroku/internal/config"
	"kiroku/internal/db"
	"kiroku/internal/models"
	"kiroku/internal/repository"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	conn, err := db.Open(config.DBConfig{DSN: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(conn) })
	require.NoError(t, db.AutoMigrate(conn))
	return New(conn.Gorm)
}

func seedUserAndAnime(t *testing.T, s *Store) (*models.User, *models.Anime) {
	t.Helper()
	ctx := context.Background()
	u := &models.User{Email: "a@x.com", PasswordHash: "hash", Username: "a"}
	require.NoError(t, s.CreateUser(ctx, u))
	a := &models.Anime{Title: "Death Note", TotalEpisodes: 37, Genres: "Mystery, Thriller", Rating: 9.0}
	require.NoError(t, s.CreateAnime(ctx, a))
	return u, a
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	first := &models.User{Email: "dup@x.com", PasswordHash: "h1", Username: "first"}
	require.NoError(t, s.CreateUser(ctx, first))

	second := &models.User{Email: "dup@x.com", PasswordHash: "h2", Username: "second"}
	err := s.CreateUser(ctx, second)
	require.ErrorIs(t, err, repository.ErrConflict)

	got, err := s.GetUserByEmail(ctx, "dup@x.com")
	require.NoError(t, err)
	require.Equal(t, "first", got.Username)
	require.Equal(t, first.ID, got.ID)
}

func TestCreateAnimeDuplicateTitle(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateAnime(ctx, &models.Anime{Title: "One Piece"}))
	err := s.CreateAnime(ctx, &models.Anime{Title: "One Piece"})
	require.ErrorIs(t, err, repository.ErrConflict)
}

func TestCreateListEntryDuplicatePair(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	u, a := seedUserAndAnime(t, s)

	require.NoError(t, s.CreateListEntry(ctx, &models.UserAnime{UserID: u.ID, AnimeID: a.ID}))
	err := s.CreateListEntry(ctx, &models.UserAnime{UserID: u.ID, AnimeID: a.ID})
	require.ErrorIs(t, err, repository.ErrConflict)

	items, err := s.ListEntries(ctx, repository.ListEntriesParams{UserID: u.ID})
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestCreateListEntryDefaultStatus(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	u, a := seedUserAndAnime(t, s)

	e := &models.UserAnime{UserID: u.ID, AnimeID: a.ID}
	require.NoError(t, s.CreateListEntry(ctx, e))
	require.Equal(t, models.StatusPlanToWatch, e.Status)
}

func TestListEntriesEnrichment(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	u, a := seedUserAndAnime(t, s)

	require.NoError(t, s.CreateListEntry(ctx, &models.UserAnime{
		UserID: u.ID, AnimeID: a.ID, Status: models.StatusWatching, CurrentEpisode: 3,
	}))

	items, err := s.ListEntries(ctx, repository.ListEntriesParams{UserID: u.ID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Death Note", items[0].Title)
	require.Equal(t, 37, items[0].TotalEpisodes)
	require.Equal(t, "Mystery, Thriller", items[0].Genres)
	require.InDelta(t, 9.0, items[0].AnimeRating, 1e-9)
	require.Equal(t, 3, items[0].CurrentEpisode)
}

func TestListEntriesStatusFilter(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	u, a := seedUserAndAnime(t, s)
	b := &models.Anime{Title: "Naruto"}
	require.NoError(t, s.CreateAnime(ctx, b))

	require.NoError(t, s.CreateListEntry(ctx, &models.UserAnime{UserID: u.ID, AnimeID: a.ID, Status: models.StatusWatching}))
	require.NoError(t, s.CreateListEntry(ctx, &models.UserAnime{UserID: u.ID, AnimeID: b.ID, Status: models.StatusCompleted}))

	status := models.StatusWatching
	items, err := s.ListEntries(ctx, repository.ListEntriesParams{UserID: u.ID, Status: &status})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, a.ID, items[0].AnimeID)
}

func TestListEntriesOrderedByUpdateDesc(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	u, a := seedUserAndAnime(t, s)
	b := &models.Anime{Title: "Naruto"}
	require.NoError(t, s.CreateAnime(ctx, b))

	e1 := &models.UserAnime{UserID: u.ID, AnimeID: a.ID}
	require.NoError(t, s.CreateListEntry(ctx, e1))
	time.Sleep(5 * time.Millisecond)
	e2 := &models.UserAnime{UserID: u.ID, AnimeID: b.ID}
	require.NoError(t, s.CreateListEntry(ctx, e2))

	items, err := s.ListEntries(ctx, repository.ListEntriesParams{UserID: u.ID})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, e2.ID, items[0].ID)

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, s.UpdateListEntry(ctx, u.ID, e1.ID, repository.ListEntryUpdate{
		Status: models.StatusWatching, CurrentEpisode: 5,
	}))

	items, err = s.ListEntries(ctx, repository.ListEntriesParams{UserID: u.ID})
	require.NoError(t, err)
	require.Equal(t, e1.ID, items[0].ID, "updated entry moves to the front")
}

func TestUpdateListEntryOwnerScoped(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	u, a := seedUserAndAnime(t, s)
	other := &models.User{Email: "b@x.com", PasswordHash: "hash", Username: "b"}
	require.NoError(t, s.CreateUser(ctx, other))

	e := &models.UserAnime{UserID: u.ID, AnimeID: a.ID, Status: models.StatusWatching}
	require.NoError(t, s.CreateListEntry(ctx, e))

	err := s.UpdateListEntry(ctx, other.ID, e.ID, repository.ListEntryUpdate{Status: models.StatusDropped})
	require.ErrorIs(t, err, repository.ErrNotFound)

	items, err := s.ListEntries(ctx, repository.ListEntriesParams{UserID: u.ID})
	require.NoError(t, err)
	require.Equal(t, models.StatusWatching, items[0].Status, "row under the real owner is unchanged")
}

func TestDeleteListEntryOwnerScoped(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	u, a := seedUserAndAnime(t, s)
	other := &models.User{Email: "b@x.com", PasswordHash: "hash", Username: "b"}
	require.NoError(t, s.CreateUser(ctx, other))

	e := &models.UserAnime{UserID: u.ID, AnimeID: a.ID}
	require.NoError(t, s.CreateListEntry(ctx, e))

	require.ErrorIs(t, s.DeleteListEntry(ctx, other.ID, e.ID), repository.ErrNotFound)
	require.ErrorIs(t, s.DeleteListEntry(ctx, u.ID, e.ID+100), repository.ErrNotFound)

	require.NoError(t, s.DeleteListEntry(ctx, u.ID, e.ID))
	items, err := s.ListEntries(ctx, repository.ListEntriesParams{UserID: u.ID})
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestGetAnimeByTitleNotFound(t *testing.T) {
	s := newStore(t)
	_, err := s.GetAnimeByTitle(context.Background(), "does not exist")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
