package models

import "time"

const CategoryTable = "inv_categories"

// Category groups inventory items by name. Items reference the category by
// its name, not by foreign key; deleting a category leaves its items alone.
type Category struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"` // uniqueness on LOWER(name), see db.Migrate
	CreatedBy string    `gorm:"size:255" json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Category) TableName() string { return CategoryTable }
