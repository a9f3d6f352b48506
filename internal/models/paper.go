package models

import (
	"time"
)

// Paper is a submission record. A paper is published exactly when both
// PublicationDate and PublishedByCommitteeID are set; the two are written
// together in a single update and never independently.
type Paper struct {
	ID                     uint64     `gorm:"primarykey" json:"id"`
	Title                  string     `gorm:"type:varchar(200);not null" json:"title"`
	AbstractText           string     `gorm:"type:text;not null" json:"abstractText"`
	Content                string     `gorm:"type:text;not null" json:"content"`
	AuthorID               uint64     `gorm:"not null" json:"-"`
	PublishedByCommitteeID *uint64    `json:"-"`
	PublicationDate        *time.Time `json:"publicationDate"`
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`

	// Relations
	Author               User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	PublishedByCommittee *User `gorm:"foreignKey:PublishedByCommitteeID" json:"publishedByCommittee,omitempty"`
	Tags                 []Tag `gorm:"many2many:paper_tags;" json:"tags"`
}

// Published reports whether the paper has left the draft state.
func (p *Paper) Published() bool {
	return p.PublicationDate != nil && p.PublishedByCommitteeID != nil
}
