package models

import "time"

// Comment is a threaded reply attached to a review.
type Comment struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	ReviewID uint   `json:"-" gorm:"not null;index"`
	AuthorID uint   `json:"-" gorm:"not null"`
	Text     string `json:"text" gorm:"not null" validate:"required"`

	Author *User `json:"-"`

	PubDate time.Time `json:"pub_date" gorm:"autoCreateTime;index"`
}
