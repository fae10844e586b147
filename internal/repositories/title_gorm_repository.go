package repositories

import (
	"database/sql"
	"fmt"

	"reviewhub/internal/models"

	"gorm.io/gorm"
)

// GORMTitleRepository is a GORM implementation of TitleRepository.
type GORMTitleRepository struct {
	db *gorm.DB
}

// NewGORMTitleRepository creates a new instance of GORMTitleRepository.
func NewGORMTitleRepository(db *gorm.DB) *GORMTitleRepository {
	return &GORMTitleRepository{db: db}
}

// Create inserts a title together with its genre join rows.
func (r *GORMTitleRepository) Create(title *models.Title, genreIDs []uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Category").Create(title).Error; err != nil {
			return err
		}
		return replaceTitleGenres(tx, title.ID, genreIDs)
	})
	if err != nil {
		return fmt.Errorf("failed to create title %s: %w", title.Name, err)
	}
	return r.loadGenres(title)
}

// GetByID retrieves a title with its category and genres.
func (r *GORMTitleRepository) GetByID(id uint) (*models.Title, error) {
	var title models.Title
	if err := r.db.Preload("Category").First(&title, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get title %d: %w", id, err)
	}
	if err := r.loadGenres(&title); err != nil {
		return nil, err
	}
	return &title, nil
}

// List returns titles matching the filter, ordered by year, with category
// and genres attached.
func (r *GORMTitleRepository) List(filter TitleFilter) ([]models.Title, error) {
	q := r.db.Model(&models.Title{}).Preload("Category").Order("titles.year")
	if filter.Name != "" {
		q = q.Where("titles.name = ?", filter.Name)
	}
	if filter.Year != nil {
		q = q.Where("titles.year = ?", *filter.Year)
	}
	if filter.CategorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		q = q.Joins("JOIN genre_titles ON genre_titles.title_id = titles.id").
			Joins("JOIN genres ON genres.id = genre_titles.genre_id").
			Where("genres.slug = ?", filter.GenreSlug).
			Distinct("titles.*")
	}
	var titles []models.Title
	if err := q.Find(&titles).Error; err != nil {
		return nil, fmt.Errorf("failed to list titles: %w", err)
	}
	for i := range titles {
		if err := r.loadGenres(&titles[i]); err != nil {
			return nil, err
		}
	}
	return titles, nil
}

// Save persists field changes; a non-nil genreIDs replaces the genre set.
func (r *GORMTitleRepository) Save(title *models.Title, genreIDs []uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		// Save skips nil pointer fields, so clearing category needs an
		// explicit column update.
		if err := tx.Model(title).Select("name", "year", "description", "category_id").
			Updates(map[string]interface{}{
				"name":        title.Name,
				"year":        title.Year,
				"description": title.Description,
				"category_id": title.CategoryID,
			}).Error; err != nil {
			return err
		}
		if genreIDs == nil {
			return nil
		}
		if err := tx.Where("title_id = ?", title.ID).Delete(&models.GenreTitle{}).Error; err != nil {
			return err
		}
		return replaceTitleGenres(tx, title.ID, genreIDs)
	})
	if err != nil {
		return fmt.Errorf("failed to save title %d: %w", title.ID, err)
	}
	return r.loadGenres(title)
}

// Delete removes a title; its reviews and their comments go with it, while
// genre join rows are dropped.
func (r *GORMTitleRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var title models.Title
		if err := tx.First(&title, id).Error; err != nil {
			return fmt.Errorf("failed to get title %d for deletion: %w", id, err)
		}
		var reviewIDs []uint
		if err := tx.Model(&models.Review{}).Where("title_id = ?", id).
			Pluck("id", &reviewIDs).Error; err != nil {
			return err
		}
		if len(reviewIDs) > 0 {
			if err := tx.Where("review_id IN ?", reviewIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("title_id = ?", id).Delete(&models.Review{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("title_id = ?", id).Delete(&models.GenreTitle{}).Error; err != nil {
			return err
		}
		return tx.Delete(&title).Error
	})
}

// Rating aggregates the mean review score at query time. No denormalized
// rating column exists, so the value can never go stale.
func (r *GORMTitleRepository) Rating(titleID uint) (*float64, error) {
	var avg sql.NullFloat64
	err := r.db.Model(&models.Review{}).Where("title_id = ?", titleID).
		Select("AVG(score)").Scan(&avg).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute rating for title %d: %w", titleID, err)
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}

func replaceTitleGenres(tx *gorm.DB, titleID uint, genreIDs []uint) error {
	for _, genreID := range genreIDs {
		tid, gid := titleID, genreID
		if err := tx.Create(&models.GenreTitle{TitleID: &tid, GenreID: &gid}).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GORMTitleRepository) loadGenres(title *models.Title) error {
	genres := []models.Genre{}
	err := r.db.Model(&models.Genre{}).
		Joins("JOIN genre_titles ON genre_titles.genre_id = genres.id").
		Where("genre_titles.title_id = ?", title.ID).
		Order("genres.slug").
		Find(&genres).Error
	if err != nil {
		return fmt.Errorf("failed to load genres for title %d: %w", title.ID, err)
	}
	title.Genres = genres
	return nil
}
