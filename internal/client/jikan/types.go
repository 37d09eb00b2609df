package jikan

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotInCatalog means Jikan answered but carried no anime payload for the
// requested id.
var ErrNotInCatalog = errors.New("anime not found in jikan")

type Anime struct {
	MalID    int64   `json:"mal_id"`
	Title    string  `json:"title"`
	Synopsis string  `json:"synopsis"`
	Episodes int     `json:"episodes"`
	Score    float64 `json:"score"`
	Images   Images  `json:"images"`
	Genres   []Genre `json:"genres"`
}

type Images struct {
	JPG ImageSet `json:"jpg"`
}

type ImageSet struct {
	ImageURL      string `json:"image_url"`
	LargeImageURL string `json:"large_image_url"`
}

type Genre struct {
	MalID int64  `json:"mal_id"`
	Name  string `json:"name"`
}

// CoverURL picks the best available cover image.
func (a *Anime) CoverURL() string {
	if a.Images.JPG.LargeImageURL != "" {
		return a.Images.JPG.LargeImageURL
	}
	return a.Images.JPG.ImageURL
}

// GenreNames flattens the genre list into the comma-joined form stored
// locally.
func (a *Anime) GenreNames() string {
	names := make([]string, 0, len(a.Genres))
	for _, g := range a.Genres {
		if g.Name != "" {
			names = append(names, g.Name)
		}
	}
	return strings.Join(names, ", ")
}

type detailEnvelope struct {
	Data *Anime `json:"data"`
}

type listEnvelope struct {
	Data       []Anime `json:"data"`
	Pagination struct {
		HasNextPage bool `json:"has_next_page"`
	} `json:"pagination"`
}

// ParseList decodes a paginated listing body (search, top, season) into its
// entries plus a has-next-page flag.
func ParseList(body []byte) ([]Anime, bool, error) {
	var env listEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, false, fmt.Errorf("decode jikan listing: %w", err)
	}
	return env.Data, env.Pagination.HasNextPage, nil
}

func parseAnime(body []byte) (*Anime, error) {
	var env detailEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode jikan payload: %w", err)
	}
	if env.Data == nil || env.Data.MalID == 0 {
		return nil, ErrNotInCatalog
	}
	return env.Data, nil
}
