package models

// Category groups products on the menu. The slug is the stable identifier
// used by the storefront; the name is display text only.
type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;not null"`
}

func (Category) TableName() string {
	return "categories"
}
