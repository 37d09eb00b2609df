package gormrepository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"kiroku/internal/models"
	"kiroku/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// translate maps driver errors onto the repository sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return repository.ErrConflict
	}
	return err
}

// --- users ------------------------------------------------------------------

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return translate(s.db.WithContext(ctx).Create(u).Error)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).First(&u, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// --- anime catalog ----------------------------------------------------------

func (s *Store) CreateAnime(ctx context.Context, a *models.Anime) error {
	return translate(s.db.WithContext(ctx).Create(a).Error)
}

func (s *Store) GetAnimeByID(ctx context.Context, id uint) (*models.Anime, error) {
	var a models.Anime
	err := s.db.WithContext(ctx).First(&a, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *Store) GetAnimeByTitle(ctx context.Context, title string) (*models.Anime, error) {
	var a models.Anime
	err := s.db.WithContext(ctx).Where("title = ?", title).First(&a).Error
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *Store) CountAnime(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Anime{}).Count(&n).Error
	return n, translate(err)
}

// --- user lists -------------------------------------------------------------

func (s *Store) CreateListEntry(ctx context.Context, e *models.UserAnime) error {
	if e.Status == "" {
		e.Status = models.StatusPlanToWatch
	}
	return translate(s.db.WithContext(ctx).Create(e).Error)
}

func (s *Store) ListEntries(ctx context.Context, params repository.ListEntriesParams) ([]repository.ListEntryView, error) {
	query := s.db.WithContext(ctx).
		Table("user_anime AS ua").
		Select(`ua.id, ua.user_id, ua.anime_id, ua.status, ua.current_episode,
			ua.rating, ua.notes, ua.updated_at,
			a.title, a.cover_image, a.total_episodes, a.genres,
			a.rating AS anime_rating`).
		Joins("JOIN anime a ON a.id = ua.anime_id").
		Where("ua.user_id = ?", params.UserID)
	if params.Status != nil && strings.TrimSpace(*params.Status) != "" {
		query = query.Where("ua.status = ?", strings.TrimSpace(*params.Status))
	}
	var items []repository.ListEntryView
	if err := query.Order("ua.updated_at DESC").Scan(&items).Error; err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (s *Store) UpdateListEntry(ctx context.Context, userID, entryID uint, upd repository.ListEntryUpdate) error {
	res := s.db.WithContext(ctx).
		Model(&models.UserAnime{}).
		Where("id = ? AND user_id = ?", entryID, userID).
		Updates(map[string]any{
			"status":          upd.Status,
			"current_episode": upd.CurrentEpisode,
			"rating":          upd.Rating,
			"notes":           upd.Notes,
			"updated_at":      time.Now().UTC(),
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteListEntry(ctx context.Context, userID, entryID uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&models.UserAnime{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
