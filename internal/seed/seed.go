package seed

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"kiroku/internal/models"
	"kiroku/internal/repository"
)

// Run inserts the starter catalog, skipping titles that already exist, and
// returns the number of rows added.
func Run(ctx context.Context, repo repository.Repository, logger *zap.Logger) (int, error) {
	inserted := 0
	for i := range Catalog {
		a := Catalog[i]
		if _, err := repo.GetAnimeByTitle(ctx, a.Title); err == nil {
			if logger != nil {
				logger.Info("skipped (already exists)", zap.String("title", a.Title))
			}
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			return inserted, err
		}
		if err := repo.CreateAnime(ctx, &a); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				continue
			}
			return inserted, err
		}
		if logger != nil {
			logger.Info("added", zap.String("title", a.Title))
		}
		inserted++
	}
	return inserted, nil
}

// Catalog is the fixed starter set of titles.
var Catalog = []models.Anime{
	{
		Title:         "Attack on Titan",
		Description:   "Humanity lives within cities surrounded by enormous walls as a defense against the Titans, gigantic humanoid creatures.",
		CoverImage:    "https://cdn.myanimelist.net/images/anime/10/47347.jpg",
		TotalEpisodes: 87,
		Genres:        "Action, Drama, Fantasy",
		Rating:        9.0,
	},
	{
		Title:         "Demon Slayer",
		Description:   "A family is attacked by demons and only two members survive - Tanjiro and his sister Nezuko, who is turning into a demon slowly.",
		CoverImage:    "https://cdn.myanimelist.net/images/anime/1286/99889.jpg",
		TotalEpisodes: 44,
		Genres:        "Action, Adventure, Fantasy",
		Rating:        8.7,
	},
	{
		Title:         "My Hero Academia",
		Description:   "A superhero-loving boy without any powers is determined to enroll in a prestigious hero academy and learn what it really means to be a hero.",
		CoverImage:    "https://cdn.myanimelist.net/images/anime/10/78745.jpg",
		TotalEpisodes: 113,
		Genres:        "Action, Comedy, School",
		Rating:        8.4,
	},
	{
		Title:         "One Piece",
		Description:   "Follows the adventures of Monkey D. Luffy and his pirate crew in order to find the greatest treasure ever left by the legendary Pirate, Gold Roger.",
		CoverImage:    "https://cdn.myanimelist.net/images/anime/6/73245.jpg",
		TotalEpisodes: 1000,
		Genres:        "Action, Adventure, Comedy",
		Rating:        8.7,
	},
	{
		Title:         "Jujutsu Kaisen",
		Description:   "A boy swallows a cursed talisman and becomes cursed himself. He enters a shaman's school to be able to locate the demon's other body parts.",
		CoverImage:    "https://cdn.myanimelist.net/images/anime/1171/109222.jpg",
		TotalEpisodes: 24,
		Genres:        "Action, Fantasy, Supernatural",
		Rating:        8.6,
	},
	{
		Title:         "Death Note",
		Description:   "An intelligent high school student goes on a secret crusade to eliminate criminals from the world after discovering a notebook capable of killing anyone.",
		CoverImage:    "https://cdn.myanimelist.net/images/anime/9/9453.jpg",
		TotalEpisodes: 37,
		Genres:        "Mystery, Psychological, Thriller",
		Rating:        9.0,
	},
	{
		Title:         "Naruto",
		Description:   "Naruto Uzumaki, a mischievous adolescent ninja, struggles as he searches for recognition and dreams of becoming the Hokage.",
		CoverImage:    "https://cdn.myanimelist.net/images/anime/13/17405.jpg",
		TotalEpisodes: 220,
		Genres:        "Action, Adventure, Comedy",
		Rating:        8.3,
	},
	{
		Title:         "Fullmetal Alchemist: Brotherhood",
		Description:   "Two brothers search for a Philosopher's Stone after an attempt to revive their deceased mother goes awry.",
		CoverImage:    "https://cdn.myanimelist.net/images/anime/1223/96541.jpg",
		TotalEpisodes: 64,
		Genres:        "Action, Adventure, Drama",
		Rating:        9.1,
	},
	{
		Title:         "Steins;Gate",
		Description:   "A group of friends discover a way to send messages to the past and alter the timeline, with dangerous consequences.",
		CoverImage:    "https://cdn.myanimelist.net/images/anime/5/73199.jpg",
		TotalEpisodes: 24,
		Genres:        "Sci-Fi, Thriller, Drama",
		Rating:        9.1,
	},
	{
		Title:         "Sword Art Online",
		Description:   "Players of a virtual reality MMORPG find themselves trapped in the game and must fight to escape.",
		CoverImage:    "https://cdn.myanimelist.net/images/anime/11/39717.jpg",
		TotalEpisodes: 96,
		Genres:        "Action, Adventure, Fantasy",
		Rating:        7.6,
	},
}
