package models

import "time"

// Score bounds for a review.
const (
	MinScore = 1
	MaxScore = 10
)

// Review is a user's single scored write-up of a title. The composite unique
// index is the authoritative guard for the one-review-per-(title, author)
// invariant; application pre-checks alone would race.
type Review struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	TitleID  uint   `json:"-" gorm:"not null;uniqueIndex:idx_one_author_one_title"`
	AuthorID uint   `json:"-" gorm:"not null;uniqueIndex:idx_one_author_one_title"`
	Text     string `json:"text" gorm:"not null" validate:"required"`
	Score    int    `json:"score" gorm:"not null;check:score >= 1 AND score <= 10" validate:"required,min=1,max=10"`

	Author *User `json:"-"`

	PubDate time.Time `json:"pub_date" gorm:"autoCreateTime;index"`
}
