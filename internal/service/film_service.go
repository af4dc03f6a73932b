// Package service holds the catalogue business logic on top of the stores.
package service

import (
	"context"

	"filmorate/internal/cache"
	"filmorate/internal/models"
	"filmorate/internal/observability"
	"filmorate/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// DefaultPopularCount is used when the caller does not ask for a specific count.
const DefaultPopularCount = 10

// FilmService provides film CRUD, likes and the popularity ranking.
type FilmService struct {
	filmRepo repository.FilmRepository
	userRepo repository.UserRepository
}

// NewFilmService returns a new FilmService.
func NewFilmService(filmRepo repository.FilmRepository, userRepo repository.UserRepository) *FilmService {
	return &FilmService{
		filmRepo: filmRepo,
		userRepo: userRepo,
	}
}

func (s *FilmService) AddFilm(ctx context.Context, film *models.Film) (_ *models.Film, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "FilmService", "AddFilm")
	defer func() { observability.EndSpan(span, err) }()

	created, err := s.filmRepo.Create(ctx, film)
	if err != nil {
		return nil, err
	}
	cache.InvalidatePopular(ctx)
	return created, nil
}

func (s *FilmService) UpdateFilm(ctx context.Context, film *models.Film) (_ *models.Film, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "FilmService", "UpdateFilm",
		attribute.Int64("film.id", film.ID))
	defer func() { observability.EndSpan(span, err) }()

	updated, err := s.filmRepo.Update(ctx, film)
	if err != nil {
		return nil, err
	}
	cache.InvalidatePopular(ctx)
	return updated, nil
}

func (s *FilmService) GetFilm(ctx context.Context, id int64) (*models.Film, error) {
	return s.filmRepo.GetByID(ctx, id)
}

func (s *FilmService) ListFilms(ctx context.Context) ([]*models.Film, error) {
	return s.filmRepo.List(ctx)
}

// DeleteFilm removes the film. Deleting an unknown film is not an error.
func (s *FilmService) DeleteFilm(ctx context.Context, id int64) error {
	if err := s.filmRepo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidatePopular(ctx)
	return nil
}

// UserExists reports whether userID refers to a registered user.
func (s *FilmService) UserExists(ctx context.Context, userID int64) bool {
	return s.userRepo.Exists(ctx, userID)
}

// AddLike records that userID likes filmID. Both must exist; repeating it is a no-op.
func (s *FilmService) AddLike(ctx context.Context, filmID, userID int64) (err error) {
	ctx, span := observability.StartServiceSpan(ctx, "FilmService", "AddLike",
		attribute.Int64("film.id", filmID), attribute.Int64("user.id", userID))
	defer func() { observability.EndSpan(span, err) }()

	if !s.userRepo.Exists(ctx, userID) {
		return models.NewNotFoundError("User", userID)
	}
	if err := s.filmRepo.AddLike(ctx, filmID, userID); err != nil {
		return err
	}

	observability.LikeOperations.WithLabelValues("add").Inc()
	cache.InvalidatePopular(ctx)
	return nil
}

// RemoveLike withdraws userID's like from filmID. Removing an absent like is a no-op.
func (s *FilmService) RemoveLike(ctx context.Context, filmID, userID int64) (err error) {
	ctx, span := observability.StartServiceSpan(ctx, "FilmService", "RemoveLike",
		attribute.Int64("film.id", filmID), attribute.Int64("user.id", userID))
	defer func() { observability.EndSpan(span, err) }()

	if !s.userRepo.Exists(ctx, userID) {
		return models.NewNotFoundError("User", userID)
	}
	if err := s.filmRepo.RemoveLike(ctx, filmID, userID); err != nil {
		return err
	}

	observability.LikeOperations.WithLabelValues("remove").Inc()
	cache.InvalidatePopular(ctx)
	return nil
}

// PopularFilms returns up to count films ranked by likes from existing users.
// A zero count means DefaultPopularCount.
func (s *FilmService) PopularFilms(ctx context.Context, count int) (_ []*models.Film, err error) {
	if count == 0 {
		count = DefaultPopularCount
	}
	if count < 0 {
		return nil, models.NewValidationError("count must be a positive integer")
	}

	ctx, span := observability.StartServiceSpan(ctx, "FilmService", "PopularFilms",
		attribute.Int("count", count))
	defer func() { observability.EndSpan(span, err) }()

	var films []*models.Film
	err = cache.Aside(ctx, cache.PopularKey(count), &films, cache.PopularTTL, func() error {
		var fetchErr error
		films, fetchErr = s.filmRepo.Popular(ctx, count, func(id int64) bool {
			return s.userRepo.Exists(ctx, id)
		})
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return films, nil
}
