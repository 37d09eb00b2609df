package repository

import (
	"context"
	"errors"
	"time"

	"kiroku/internal/models"
)

var (
	// ErrConflict signals a unique-constraint violation (duplicate email,
	// duplicate (user, anime) pair, duplicate title).
	ErrConflict = errors.New("conflict")
	// ErrNotFound signals a lookup or owner-scoped mutation that matched
	// no row.
	ErrNotFound = errors.New("not found")
)

type ListEntriesParams struct {
	UserID uint
	Status *string
}

// ListEntryView is a UserAnime row joined with the display fields of the
// anime it references.
type ListEntryView struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	AnimeID        uint      `json:"anime_id"`
	Status         string    `json:"status"`
	CurrentEpisode int       `json:"current_episode"`
	Rating         float64   `json:"rating"`
	Notes          string    `json:"notes"`
	UpdatedAt      time.Time `json:"updated_at"`
	Title          string    `json:"title"`
	CoverImage     string    `json:"cover_image"`
	TotalEpisodes  int       `json:"total_episodes"`
	Genres         string    `json:"genres"`
	AnimeRating    float64   `json:"anime_rating"`
}

// ListEntryUpdate carries the four mutable fields of a list entry.
type ListEntryUpdate struct {
	Status         string
	CurrentEpisode int
	Rating         float64
	Notes          string
}

type Repository interface {
	// Users.
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)

	// Anime catalog.
	CreateAnime(ctx context.Context, a *models.Anime) error
	GetAnimeByID(ctx context.Context, id uint) (*models.Anime, error)
	GetAnimeByTitle(ctx context.Context, title string) (*models.Anime, error)
	CountAnime(ctx context.Context) (int64, error)

	// User lists.
	CreateListEntry(ctx context.Context, e *models.UserAnime) error
	ListEntries(ctx context.Context, params ListEntriesParams) ([]ListEntryView, error)
	UpdateListEntry(ctx context.Context, userID, entryID uint, upd ListEntryUpdate) error
	DeleteListEntry(ctx context.Context, userID, entryID uint) error
}
