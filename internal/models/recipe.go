package models

import "time"

// MinInstructionsLength is the shortest accepted recipe instructions text.
const MinInstructionsLength = 50

// Recipe represents a recipe owned by exactly one user.
type Recipe struct {
	ID                string `gorm:"primaryKey;type:varchar(36)"`
	Title             string `gorm:"not null;type:varchar(255);check:chk_recipes_title,title <> ''" validate:"required"`
	Instructions      string `gorm:"not null;type:text;check:chk_recipes_instructions,length(instructions) >= 50" validate:"required,min=50"`
	MinutesToComplete *int
	UserID            string `gorm:"not null;type:varchar(36);index"`
	User              User   `validate:"-"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
