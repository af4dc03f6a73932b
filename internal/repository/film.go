package repository

import (
	"context"
	"sort"
	"sync"

	"filmorate/internal/models"
	"filmorate/internal/observability"
)

// FilmRepository defines the interface for film data operations
type FilmRepository interface {
	Create(ctx context.Context, film *models.Film) (*models.Film, error)
	Update(ctx context.Context, film *models.Film) (*models.Film, error)
	GetByID(ctx context.Context, id int64) (*models.Film, error)
	List(ctx context.Context) ([]*models.Film, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) bool
	AddLike(ctx context.Context, filmID, userID int64) error
	RemoveLike(ctx context.Context, filmID, userID int64) error
	Popular(ctx context.Context, count int, isLive LivenessFunc) ([]*models.Film, error)
}

// LivenessFunc reports whether a referenced id still resolves to a live entity.
// A nil LivenessFunc treats every id as live.
type LivenessFunc func(id int64) bool

// filmRepository implements FilmRepository over a map guarded by one RWMutex.
type filmRepository struct {
	mu     sync.RWMutex
	films  map[int64]*models.Film
	seq    *Sequence
	logger *observability.RepoLogger
}

// NewFilmRepository creates an empty film store drawing ids from seq.
func NewFilmRepository(seq *Sequence) FilmRepository {
	if seq == nil {
		seq = NewSequence()
	}
	return &filmRepository{
		films:  make(map[int64]*models.Film),
		seq:    seq,
		logger: observability.NewRepoLogger("films"),
	}
}

func (r *filmRepository) Create(ctx context.Context, film *models.Film) (*models.Film, error) {
	if err := models.ValidateFilm(film); err != nil {
		r.logger.LogError(ctx, err, "create")
		return nil, err
	}

	stored := film.Clone()

	r.mu.Lock()
	stored.ID = r.seq.Next()
	stored.Likes = models.NewIDSet()
	r.films[stored.ID] = stored
	total := len(r.films)
	r.mu.Unlock()

	observability.FilmsTotal.Set(float64(total))
	r.logger.LogCreate(ctx, map[string]interface{}{"id": stored.ID, "name": stored.Name})
	return stored.Clone(), nil
}

func (r *filmRepository) Update(ctx context.Context, film *models.Film) (*models.Film, error) {
	if err := models.ValidateFilm(film); err != nil {
		r.logger.LogError(ctx, err, "update")
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.films[film.ID]
	if !ok {
		return nil, models.NewNotFoundError("Film", film.ID)
	}

	updated := film.Clone()
	updated.Likes = existing.Likes
	r.films[film.ID] = updated

	r.logger.LogUpdate(ctx, map[string]interface{}{"id": updated.ID})
	return updated.Clone(), nil
}

func (r *filmRepository) GetByID(_ context.Context, id int64) (*models.Film, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	film, ok := r.films[id]
	if !ok {
		return nil, models.NewNotFoundError("Film", id)
	}
	return film.Clone(), nil
}

func (r *filmRepository) List(_ context.Context) ([]*models.Film, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.snapshot(), nil
}

// snapshot copies every film in ascending id order. Callers hold the lock.
func (r *filmRepository) snapshot() []*models.Film {
	films := make([]*models.Film, 0, len(r.films))
	for _, f := range r.films {
		films = append(films, f.Clone())
	}
	sort.Slice(films, func(i, j int) bool { return films[i].ID < films[j].ID })
	return films
}

func (r *filmRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	_, existed := r.films[id]
	delete(r.films, id)
	total := len(r.films)
	r.mu.Unlock()

	if existed {
		observability.FilmsTotal.Set(float64(total))
		r.logger.LogDelete(ctx, map[string]interface{}{"id": id})
	}
	return nil
}

func (r *filmRepository) Exists(_ context.Context, id int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.films[id]
	return ok
}

func (r *filmRepository) AddLike(_ context.Context, filmID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	film, ok := r.films[filmID]
	if !ok {
		return models.NewNotFoundError("Film", filmID)
	}
	film.Likes[userID] = struct{}{}
	return nil
}

func (r *filmRepository) RemoveLike(_ context.Context, filmID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	film, ok := r.films[filmID]
	if !ok {
		return models.NewNotFoundError("Film", filmID)
	}
	delete(film.Likes, userID)
	return nil
}

// Popular returns up to count films ordered by like count, most liked first.
// Equal counts are ordered by ascending id. Likes from ids rejected by isLive
// are dropped from the returned copies before ranking.
func (r *filmRepository) Popular(_ context.Context, count int, isLive LivenessFunc) ([]*models.Film, error) {
	if count <= 0 {
		return nil, models.NewValidationError("count must be a positive integer")
	}

	r.mu.RLock()
	films := r.snapshot()
	r.mu.RUnlock()

	if isLive != nil {
		for _, f := range films {
			for id := range f.Likes {
				if !isLive(id) {
					delete(f.Likes, id)
				}
			}
		}
	}

	sort.SliceStable(films, func(i, j int) bool {
		return films[i].LikeCount() > films[j].LikeCount()
	})
	if len(films) > count {
		films = films[:count]
	}
	return films, nil
}
