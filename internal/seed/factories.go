package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"filmorate/internal/models"
	"filmorate/internal/observability"
	"filmorate/internal/service"

	"github.com/brianvoe/gofakeit/v6"
)

// Factory builds random valid users and films for demos and tests.
type Factory struct {
	faker *gofakeit.Faker
}

// NewFactory creates a Factory. A zero seed picks a time-based seed.
func NewFactory(seed int64) *Factory {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Factory{faker: gofakeit.New(seed)}
}

// BuildUser returns an unsaved user that passes validation.
func (f *Factory) BuildUser(overrides ...func(*models.User)) *models.User {
	login := strings.ToLower(f.faker.Username()) + fmt.Sprint(f.faker.Number(10, 9999))
	user := &models.User{
		Email:    login + "@" + f.faker.DomainName(),
		Login:    strings.Join(strings.Fields(login), ""),
		Name:     f.faker.Name(),
		Birthday: models.DateOf(f.faker.DateRange(time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC), time.Now().AddDate(-10, 0, 0))),
	}
	for _, override := range overrides {
		override(user)
	}
	return user
}

// BuildFilm returns an unsaved film that passes validation.
func (f *Factory) BuildFilm(overrides ...func(*models.Film)) *models.Film {
	description := f.faker.Sentence(12)
	if r := []rune(description); len(r) > models.MaxDescriptionLength {
		description = string(r[:models.MaxDescriptionLength])
	}
	film := &models.Film{
		Name:        f.faker.MovieName(),
		Description: description,
		ReleaseDate: models.DateOf(f.faker.DateRange(models.CinemaBirthday.Time, time.Now())),
		Duration:    f.faker.Number(60, 200),
	}
	for _, override := range overrides {
		override(film)
	}
	return film
}

// Demo creates nUsers users and nFilms films with random likes and friendships.
func (f *Factory) Demo(ctx context.Context, films *service.FilmService, users *service.UserService, nUsers, nFilms int) (*Result, error) {
	res := &Result{}

	userIDs := make([]int64, 0, nUsers)
	for i := 0; i < nUsers; i++ {
		u, err := users.AddUser(ctx, f.BuildUser())
		if err != nil {
			return res, fmt.Errorf("demo user: %w", err)
		}
		userIDs = append(userIDs, u.ID)
		res.Users++
	}

	for i, id := range userIDs {
		for _, other := range userIDs[i+1:] {
			if f.faker.Number(1, 4) != 1 {
				continue
			}
			if err := users.AddFriend(ctx, id, other); err != nil {
				return res, fmt.Errorf("demo friendship: %w", err)
			}
			res.Friendships++
		}
	}

	for i := 0; i < nFilms; i++ {
		film, err := films.AddFilm(ctx, f.BuildFilm())
		if err != nil {
			return res, fmt.Errorf("demo film: %w", err)
		}
		res.Films++

		for _, id := range userIDs {
			if !f.faker.Bool() {
				continue
			}
			if err := films.AddLike(ctx, film.ID, id); err != nil {
				return res, fmt.Errorf("demo like: %w", err)
			}
			res.Likes++
		}
	}

	observability.GlobalLogger.InfoContext(ctx, "demo data created",
		"users", res.Users, "films", res.Films, "likes", res.Likes, "friendships", res.Friendships)
	return res, nil
}
