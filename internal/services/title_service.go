package services

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"reviewhub/internal/models"
	"reviewhub/internal/permissions"
	"reviewhub/internal/repositories"
)

// TitleInput carries a title write: category and genres arrive as slug
// references. Nil pointer fields in a patch mean "leave unchanged".
type TitleInput struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   []string
}

// RatedTitle pairs a title with its computed rating. Rating is nil when the
// title has no reviews; it is never zero-valued in that case.
type RatedTitle struct {
	models.Title
	Rating *int `json:"rating"`
}

// TitleService handles business logic for titles, including the on-demand
// rating aggregation.
type TitleService struct {
	titleRepo    repositories.TitleRepository
	categoryRepo repositories.CategoryRepository
	genreRepo    repositories.GenreRepository
}

// NewTitleService creates a new TitleService.
func NewTitleService(titleRepo repositories.TitleRepository, categoryRepo repositories.CategoryRepository, genreRepo repositories.GenreRepository) *TitleService {
	return &TitleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
	}
}

// List returns titles matching the filter, each with its computed rating.
func (s *TitleService) List(filter repositories.TitleFilter) ([]RatedTitle, error) {
	titles, err := s.titleRepo.List(filter)
	if err != nil {
		return nil, dataErr(err)
	}
	rated := make([]RatedTitle, 0, len(titles))
	for _, title := range titles {
		rating, err := s.rating(title.ID)
		if err != nil {
			return nil, err
		}
		rated = append(rated, RatedTitle{Title: title, Rating: rating})
	}
	return rated, nil
}

// Get retrieves one title with its computed rating.
func (s *TitleService) Get(id uint) (*RatedTitle, error) {
	title, err := s.titleRepo.GetByID(id)
	if err != nil {
		return nil, dataErr(err)
	}
	rating, err := s.rating(id)
	if err != nil {
		return nil, err
	}
	return &RatedTitle{Title: *title, Rating: rating}, nil
}

// Create persists a new title. Admin-only. Category and genres are resolved
// from slugs; unknown slugs are NotFound.
func (s *TitleService) Create(actor *models.User, input TitleInput) (*RatedTitle, error) {
	if !permissions.AdminWriteElseReadOnly(actor, http.MethodPost) {
		return nil, permissionErr(actor)
	}
	if input.Name == nil || input.Year == nil {
		return nil, fmt.Errorf("%w: name and year are required", ErrValidation)
	}
	if err := validateYear(*input.Year); err != nil {
		return nil, err
	}

	title := &models.Title{
		Name: *input.Name,
		Year: *input.Year,
	}
	if input.Description != nil {
		title.Description = *input.Description
	}
	if err := s.applyCategory(title, input.CategorySlug); err != nil {
		return nil, err
	}
	genreIDs, err := s.resolveGenres(input.GenreSlugs)
	if err != nil {
		return nil, err
	}

	if err := s.titleRepo.Create(title, genreIDs); err != nil {
		return nil, dataErr(err)
	}
	return &RatedTitle{Title: *title}, nil
}

// Update applies a partial patch to a title. Admin-only.
func (s *TitleService) Update(actor *models.User, id uint, input TitleInput) (*RatedTitle, error) {
	if !permissions.AdminWriteElseReadOnly(actor, http.MethodPatch) {
		return nil, permissionErr(actor)
	}
	title, err := s.titleRepo.GetByID(id)
	if err != nil {
		return nil, dataErr(err)
	}

	if input.Name != nil {
		title.Name = *input.Name
	}
	if input.Year != nil {
		if err := validateYear(*input.Year); err != nil {
			return nil, err
		}
		title.Year = *input.Year
	}
	if input.Description != nil {
		title.Description = *input.Description
	}
	if input.CategorySlug != nil {
		if err := s.applyCategory(title, input.CategorySlug); err != nil {
			return nil, err
		}
	}
	var genreIDs []uint
	if input.GenreSlugs != nil {
		if genreIDs, err = s.resolveGenres(input.GenreSlugs); err != nil {
			return nil, err
		}
	}

	if err := s.titleRepo.Save(title, genreIDs); err != nil {
		return nil, dataErr(err)
	}
	rating, err := s.rating(id)
	if err != nil {
		return nil, err
	}
	return &RatedTitle{Title: *title, Rating: rating}, nil
}

// Delete removes a title and, by cascade, its reviews and their comments.
// Admin-only.
func (s *TitleService) Delete(actor *models.User, id uint) error {
	if !permissions.AdminWriteElseReadOnly(actor, http.MethodDelete) {
		return permissionErr(actor)
	}
	return dataErr(s.titleRepo.Delete(id))
}

// rating rounds the mean review score half away from zero; nil means the
// title has no reviews yet.
func (s *TitleService) rating(titleID uint) (*int, error) {
	avg, err := s.titleRepo.Rating(titleID)
	if err != nil {
		return nil, dataErr(err)
	}
	if avg == nil {
		return nil, nil
	}
	rounded := int(math.Round(*avg))
	return &rounded, nil
}

func (s *TitleService) applyCategory(title *models.Title, slug *string) error {
	if slug == nil || *slug == "" {
		title.CategoryID = nil
		title.Category = nil
		return nil
	}
	category, err := s.categoryRepo.GetBySlug(*slug)
	if err != nil {
		return dataErr(err)
	}
	title.CategoryID = &category.ID
	title.Category = category
	return nil
}

func (s *TitleService) resolveGenres(slugs []string) ([]uint, error) {
	if slugs == nil {
		return nil, nil
	}
	ids := make([]uint, 0, len(slugs))
	for _, slug := range slugs {
		genre, err := s.genreRepo.GetBySlug(slug)
		if err != nil {
			return nil, dataErr(err)
		}
		ids = append(ids, genre.ID)
	}
	return ids, nil
}

func validateYear(year int) error {
	if year > time.Now().Year() {
		return fmt.Errorf("%w: year %d is in the future", ErrValidation, year)
	}
	return nil
}
