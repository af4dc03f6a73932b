package service

import (
	"context"
	"testing"

	"filmorate/internal/cache"
	"filmorate/internal/models"
	"filmorate/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newServices(t *testing.T) (*FilmService, *UserService) {
	t.Helper()
	cache.SetClient(nil)
	films := repository.NewFilmRepository(repository.NewSequence())
	users := repository.NewUserRepository(repository.NewSequence())
	return NewFilmService(films, users), NewUserService(users)
}

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() {
		_ = cache.Close()
		mr.Close()
	})
	return mr
}

func validFilm(name string) *models.Film {
	return &models.Film{
		Name:        name,
		Description: "A film",
		ReleaseDate: models.NewDate(1999, 3, 31),
		Duration:    136,
	}
}

func validUser(login string) *models.User {
	return &models.User{
		Email:    login + "@example.com",
		Login:    login,
		Birthday: models.NewDate(1990, 1, 1),
	}
}

func mustAddUser(t *testing.T, svc *UserService, login string) *models.User {
	t.Helper()
	u, err := svc.AddUser(context.Background(), validUser(login))
	require.NoError(t, err)
	return u
}

func mustAddFilm(t *testing.T, svc *FilmService, name string) *models.Film {
	t.Helper()
	f, err := svc.AddFilm(context.Background(), validFilm(name))
	require.NoError(t, err)
	return f
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code)
}
