package services

import (
	"net/http"

	"reviewhub/internal/models"
	"reviewhub/internal/permissions"
	"reviewhub/internal/repositories"
)

// GenreService handles business logic for genre reference data.
type GenreService struct {
	genreRepo repositories.GenreRepository
}

// NewGenreService creates a new GenreService.
func NewGenreService(genreRepo repositories.GenreRepository) *GenreService {
	return &GenreService{genreRepo: genreRepo}
}

// List returns genres, optionally filtered by name substring.
func (s *GenreService) List(search string) ([]models.Genre, error) {
	genres, err := s.genreRepo.List(search)
	return genres, dataErr(err)
}

// Create persists a new genre. Admin-only.
func (s *GenreService) Create(actor *models.User, genre *models.Genre) error {
	if !permissions.AdminWriteElseReadOnly(actor, http.MethodPost) {
		return permissionErr(actor)
	}
	return dataErr(s.genreRepo.Create(genre))
}

// Delete removes a genre by slug. Admin-only; join rows keep a null genre
// reference.
func (s *GenreService) Delete(actor *models.User, slug string) error {
	if !permissions.AdminWriteElseReadOnly(actor, http.MethodDelete) {
		return permissionErr(actor)
	}
	return dataErr(s.genreRepo.Delete(slug))
}
