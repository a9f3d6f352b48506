package models

// Tag is a reusable label attached to papers. Tags are created lazily by
// exact name match when a paper referencing them is created.
type Tag struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Name        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:varchar(255)" json:"description,omitempty"`

	Papers []Paper `gorm:"many2many:paper_tags;" json:"-"`
}
