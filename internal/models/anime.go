package models

import (
	"time"

	"gorm.io/datatypes"
)

// Anime is a locally cached catalog entry, either seeded or imported from
// Jikan. Imported rows keep the upstream payload in RawJSON and record the
// MyAnimeList id; seeded rows carry neither.
type Anime struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Title         string         `gorm:"type:text;uniqueIndex;not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	CoverImage    string         `gorm:"type:text" json:"cover_image"`
	TotalEpisodes int            `gorm:"not null;default:0" json:"total_episodes"`
	Genres        string         `gorm:"type:text" json:"genres"`
	Rating        float64        `gorm:"not null;default:0" json:"rating"`
	MalID         *int64         `gorm:"index" json:"mal_id,omitempty"`
	RawJSON       datatypes.JSON `json:"-"`
	CreatedAt     time.Time      `json:"created_at"`
}

func (Anime) TableName() string {
	return "anime"
}
