package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"kiroku/internal/client/jikan"
	"kiroku/internal/models"
	"kiroku/internal/repository"
)

// CatalogService imports Jikan entries into the local catalog and runs the
// optional season refresh job.
type CatalogService struct {
	Repo   repository.Repository
	Jikan  *jikan.Client
	Logger *zap.Logger
}

type ImportResult struct {
	ID      uint  `json:"id"`
	JikanID int64 `json:"jikan_id"`
	Created bool  `json:"-"`
}

// Import fetches full detail for one MAL id and creates a local catalog row
// unless an anime with the same title already exists. Deduplication is by
// title, not external id: two distinct MAL entries sharing a title collapse
// onto one local row. That matches the historical behavior; the collision is
// logged so it stays visible.
func (s *CatalogService) Import(ctx context.Context, malID int64) (ImportResult, error) {
	remote, body, err := s.Jikan.GetAnimeFull(ctx, malID)
	if err != nil {
		return ImportResult{}, err
	}

	existing, err := s.Repo.GetAnimeByTitle(ctx, remote.Title)
	if err == nil {
		if s.Logger != nil && (existing.MalID == nil || *existing.MalID != malID) {
			s.Logger.Warn("import deduplicated by title against a different source entry",
				zap.String("title", remote.Title),
				zap.Int64("mal_id", malID),
			)
		}
		return ImportResult{ID: existing.ID, JikanID: malID}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return ImportResult{}, err
	}

	a := animeFromRemote(remote)
	a.RawJSON = datatypes.JSON(body)
	if err := s.Repo.CreateAnime(ctx, a); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// Lost a title race; hand back the winner.
			if winner, gerr := s.Repo.GetAnimeByTitle(ctx, remote.Title); gerr == nil {
				return ImportResult{ID: winner.ID, JikanID: malID}, nil
			}
		}
		return ImportResult{}, err
	}
	return ImportResult{ID: a.ID, JikanID: malID, Created: true}, nil
}

func animeFromRemote(remote *jikan.Anime) *models.Anime {
	malID := remote.MalID
	return &models.Anime{
		Title:         remote.Title,
		Description:   remote.Synopsis,
		CoverImage:    remote.CoverURL(),
		TotalEpisodes: remote.Episodes,
		Genres:        remote.GenreNames(),
		Rating:        remote.Score,
		MalID:         &malID,
	}
}

type SyncResult struct {
	Pages    int `json:"pages"`
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// SyncSeasonNow walks the current-season listing and imports titles the local
// catalog has not seen. Listing entries already carry the fields the catalog
// stores, so no per-title detail fetch is needed.
func (s *CatalogService) SyncSeasonNow(ctx context.Context, maxPages int) (SyncResult, error) {
	if maxPages <= 0 {
		maxPages = 1
	}
	var result SyncResult
	for page := 1; page <= maxPages; page++ {
		body, err := s.Jikan.SeasonNowRaw(ctx, page)
		if err != nil {
			return result, err
		}
		entries, hasNext, err := jikan.ParseList(body)
		if err != nil {
			return result, err
		}
		result.Pages++
		for i := range entries {
			remote := &entries[i]
			if remote.Title == "" {
				continue
			}
			if _, err := s.Repo.GetAnimeByTitle(ctx, remote.Title); err == nil {
				result.Skipped++
				continue
			} else if !errors.Is(err, repository.ErrNotFound) {
				return result, err
			}
			if err := s.Repo.CreateAnime(ctx, animeFromRemote(remote)); err != nil {
				if errors.Is(err, repository.ErrConflict) {
					result.Skipped++
					continue
				}
				return result, err
			}
			result.Imported++
		}
		if !hasNext {
			break
		}
	}
	return result, nil
}
