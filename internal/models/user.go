package models

import (
	"time"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(120);not null" json:"-"`
	RoleID       uint64    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Relations
	Role            Role    `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	AuthoredPapers  []Paper `gorm:"foreignKey:AuthorID" json:"-"`
	PublishedPapers []Paper `gorm:"foreignKey:PublishedByCommitteeID" json:"-"`
}
