package models

import "time"

// Title is a creative work users review. Rating is not stored: it is computed
// from the review set at query time (see TitleRepository.Rating).
type Title struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"type:varchar(256);not null;index" validate:"required,max=256"`
	Year        int    `json:"year" gorm:"not null"`
	Description string `json:"description"`

	CategoryID *uint     `json:"-"`
	Category   *Category `json:"category"`

	// Populated by the repository through genre_titles; not a gorm association.
	Genres []Genre `json:"genre" gorm:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// GenreTitle is the join record between titles and genres. Deleting a genre
// nulls the reference instead of removing the row.
type GenreTitle struct {
	ID      uint  `gorm:"primaryKey"`
	TitleID *uint `gorm:"index"`
	GenreID *uint `gorm:"index"`
}
