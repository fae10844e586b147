package models

import "time"

// Genre is reference data tagging titles; a title can carry many genres.
type Genre struct {
	ID   uint   `json:"-" gorm:"primaryKey"`
	Slug string `json:"slug" gorm:"uniqueIndex;type:varchar(50);not null" validate:"required,max=50,slug"`
	Name string `json:"name" gorm:"uniqueIndex;type:varchar(256);not null" validate:"required,max=256"`

	CreatedAt time.Time `json:"-"`
}
