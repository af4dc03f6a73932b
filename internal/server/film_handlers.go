package server

import (
	"filmorate/internal/models"
	"filmorate/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateFilm handles POST /films
func (s *Server) CreateFilm(c *fiber.Ctx) error {
	var film models.Film
	if err := c.BodyParser(&film); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	created, err := s.filmService.AddFilm(c.UserContext(), &film)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateFilm handles PUT /films
func (s *Server) UpdateFilm(c *fiber.Ctx) error {
	var film models.Film
	if err := c.BodyParser(&film); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	updated, err := s.filmService.UpdateFilm(c.UserContext(), &film)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(updated)
}

// ListFilms handles GET /films
func (s *Server) ListFilms(c *fiber.Ctx) error {
	films, err := s.filmService.ListFilms(c.UserContext())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(films)
}

// GetFilm handles GET /films/:id
func (s *Server) GetFilm(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	film, err := s.filmService.GetFilm(c.UserContext(), id)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(film)
}

// DeleteFilm handles DELETE /films/:id
func (s *Server) DeleteFilm(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.filmService.DeleteFilm(c.UserContext(), id); err != nil {
		return s.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddLike handles PUT /films/:id/like/:userId
func (s *Server) AddLike(c *fiber.Ctx) error {
	filmID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	ctx := c.UserContext()
	if err := s.filmService.AddLike(ctx, filmID, userID); err != nil {
		return s.respondError(c, err)
	}

	film, err := s.filmService.GetFilm(ctx, filmID)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(film)
}

// RemoveLike handles DELETE /films/:id/like/:userId
func (s *Server) RemoveLike(c *fiber.Ctx) error {
	filmID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.filmService.RemoveLike(c.UserContext(), filmID, userID); err != nil {
		return s.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PopularFilms handles GET /films/popular?count=n
func (s *Server) PopularFilms(c *fiber.Ctx) error {
	count, err := parseCount(c, service.DefaultPopularCount)
	if err != nil {
		return s.respondError(c, err)
	}

	films, err := s.filmService.PopularFilms(c.UserContext(), count)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(films)
}
