// Package seed loads fixture and demo data into the catalogue. Everything goes
// through the services, so seeded data obeys the same rules as API traffic.
package seed

import (
	"context"
	"fmt"
	"os"

	"filmorate/internal/models"
	"filmorate/internal/observability"
	"filmorate/internal/service"

	"gopkg.in/yaml.v3"
)

// FixtureUser is a user entry in a fixture file. Friends reference other
// fixture users by login.
type FixtureUser struct {
	models.User `yaml:",inline"`
	Friends     []string `yaml:"friends"`
}

// FixtureFilm is a film entry in a fixture file. Likes reference fixture
// users by login.
type FixtureFilm struct {
	models.Film `yaml:",inline"`
	Likes       []string `yaml:"likes"`
}

// Fixture is the document layout of a seed file.
type Fixture struct {
	Users []FixtureUser `yaml:"users"`
	Films []FixtureFilm `yaml:"films"`
}

// Result reports what a seed run created.
type Result struct {
	Users       int
	Films       int
	Likes       int
	Friendships int
}

// LoadFixture reads a YAML fixture from path.
func LoadFixture(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseFixture(raw)
}

// ParseFixture decodes a YAML fixture document.
func ParseFixture(raw []byte) (*Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return &fx, nil
}

// Apply creates the fixture's users and films, then its friendships and likes.
// It stops at the first rejected entry.
func Apply(ctx context.Context, films *service.FilmService, users *service.UserService, fx *Fixture) (*Result, error) {
	res := &Result{}
	byLogin := make(map[string]int64, len(fx.Users))

	for i := range fx.Users {
		u := fx.Users[i].User
		created, err := users.AddUser(ctx, &u)
		if err != nil {
			return res, fmt.Errorf("user %q: %w", u.Login, err)
		}
		byLogin[created.Login] = created.ID
		res.Users++
	}

	lookup := func(login string) (int64, error) {
		id, ok := byLogin[login]
		if !ok {
			return 0, fmt.Errorf("unknown fixture user %q", login)
		}
		return id, nil
	}

	for _, fu := range fx.Users {
		for _, friend := range fu.Friends {
			friendID, err := lookup(friend)
			if err != nil {
				return res, err
			}
			if err := users.AddFriend(ctx, byLogin[fu.Login], friendID); err != nil {
				return res, fmt.Errorf("friendship %s-%s: %w", fu.Login, friend, err)
			}
			res.Friendships++
		}
	}

	for i := range fx.Films {
		f := fx.Films[i].Film
		created, err := films.AddFilm(ctx, &f)
		if err != nil {
			return res, fmt.Errorf("film %q: %w", f.Name, err)
		}
		res.Films++

		for _, login := range fx.Films[i].Likes {
			userID, err := lookup(login)
			if err != nil {
				return res, err
			}
			if err := films.AddLike(ctx, created.ID, userID); err != nil {
				return res, fmt.Errorf("like %q by %s: %w", f.Name, login, err)
			}
			res.Likes++
		}
	}

	observability.GlobalLogger.InfoContext(ctx, "fixture applied",
		"users", res.Users, "films", res.Films, "likes", res.Likes, "friendships", res.Friendships)
	return res, nil
}

// ApplyFile loads the fixture at path and applies it.
func ApplyFile(ctx context.Context, films *service.FilmService, users *service.UserService, path string) (*Result, error) {
	fx, err := LoadFixture(path)
	if err != nil {
		return nil, err
	}
	return Apply(ctx, films, users, fx)
}
