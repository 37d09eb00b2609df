package models

import "time"

const (
	StatusPlanToWatch = "plan_to_watch"
	StatusWatching    = "watching"
	StatusCompleted   = "completed"
	StatusDropped     = "dropped"
	StatusOnHold      = "on_hold"
)

// ValidStatus reports whether s is one of the tracked-entry states.
func ValidStatus(s string) bool {
	switch s {
	case StatusPlanToWatch, StatusWatching, StatusCompleted, StatusDropped, StatusOnHold:
		return true
	}
	return false
}

// UserAnime is one user's tracked relationship to an Anime row.
// The (user, anime) pair is unique.
type UserAnime struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;uniqueIndex:idx_user_anime" json:"user_id"`
	AnimeID        uint      `gorm:"not null;uniqueIndex:idx_user_anime" json:"anime_id"`
	Status         string    `gorm:"type:text;not null;default:plan_to_watch" json:"status"`
	CurrentEpisode int       `gorm:"not null;default:0" json:"current_episode"`
	Rating         float64   `gorm:"not null;default:0" json:"rating"`
	Notes          string    `gorm:"type:text" json:"notes"`
	UpdatedAt      time.Time `gorm:"index" json:"updated_at"`
}

func (UserAnime) TableName() string {
	return "user_anime"
}
