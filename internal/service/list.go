package service

import (
	"context"
	"errors"

	"kiroku/internal/models"
	"kiroku/internal/repository"
)

// ErrInvalidStatus rejects a status outside the tracked-entry enum.
var ErrInvalidStatus = errors.New("invalid status")

// ListService is the owner-scoped CRUD surface over a user's tracked anime.
type ListService struct {
	Repo repository.Repository
}

type AddEntryParams struct {
	AnimeID        uint
	Status         string
	CurrentEpisode int
	Rating         float64
	Notes          string
}

// Add creates a tracked entry for the user. The referenced anime must exist
// and the (user, anime) pair must be new.
func (s *ListService) Add(ctx context.Context, userID uint, p AddEntryParams) (*models.UserAnime, error) {
	status := p.Status
	if status == "" {
		status = models.StatusPlanToWatch
	}
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	if _, err := s.Repo.GetAnimeByID(ctx, p.AnimeID); err != nil {
		return nil, err
	}
	e := &models.UserAnime{
		UserID:         userID,
		AnimeID:        p.AnimeID,
		Status:         status,
		CurrentEpisode: p.CurrentEpisode,
		Rating:         p.Rating,
		Notes:          p.Notes,
	}
	if err := s.Repo.CreateListEntry(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// List returns the user's entries enriched with catalog display fields,
// newest update first, optionally filtered by status.
func (s *ListService) List(ctx context.Context, userID uint, status string) ([]repository.ListEntryView, error) {
	params := repository.ListEntriesParams{UserID: userID}
	if status != "" {
		params.Status = &status
	}
	return s.Repo.ListEntries(ctx, params)
}

// Update replaces the four mutable fields of an entry the user owns and
// refreshes its timestamp.
func (s *ListService) Update(ctx context.Context, userID, entryID uint, upd repository.ListEntryUpdate) error {
	if !models.ValidStatus(upd.Status) {
		return ErrInvalidStatus
	}
	return s.Repo.UpdateListEntry(ctx, userID, entryID, upd)
}

// Remove deletes an entry the user owns.
func (s *ListService) Remove(ctx context.Context, userID, entryID uint) error {
	return s.Repo.DeleteListEntry(ctx, userID, entryID)
}
