package repository

import (
	"time"

	"github.com/conftrack/paper-review-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create inserts a new user. A unique-constraint violation is returned
	// as gorm.ErrDuplicatedKey.
	Create(user *models.User) error

	// FindByID finds a user by ID with their role loaded
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username with their role loaded
	FindByUsername(username string) (*models.User, error)

	// ExistsByUsername reports whether a user with the username exists
	ExistsByUsername(username string) (bool, error)

	// ExistsByEmail reports whether a user with the email exists
	ExistsByEmail(email string) (bool, error)
}

// RoleRepository defines the interface for role data access
type RoleRepository interface {
	// FindByName finds a role by name
	FindByName(name models.RoleName) (*models.Role, error)

	// FindOrCreate returns the role with the given name, inserting it on
	// first use
	FindOrCreate(name models.RoleName) (*models.Role, error)
}

// TagRepository defines the interface for tag data access
type TagRepository interface {
	// FindOrCreateByName returns the tag with the exact name, inserting it
	// if absent. No case normalization is applied.
	FindOrCreateByName(name string) (*models.Tag, error)
}

// PaperRepository defines the interface for paper data access. All reads
// return fully-materialized papers with author, publisher, and tags loaded.
type PaperRepository interface {
	// Create inserts a new paper in the draft state
	Create(paper *models.Paper) error

	// FindByID finds a paper by ID
	FindByID(id uint64) (*models.Paper, error)

	// Publish sets the publisher and publication date together, guarded so
	// only a draft transitions. Returns false if the paper was not a draft.
	Publish(paperID, committeeID uint64, at time.Time) (bool, error)

	// Search returns all papers whose title or abstract contains keyword
	Search(keyword string) ([]models.Paper, error)

	// ListPublished returns published papers, newest publication first
	ListPublished() ([]models.Paper, error)

	// ListUnpublished returns papers still in the draft state
	ListUnpublished() ([]models.Paper, error)

	// ListByAuthor returns papers authored by the given user
	ListByAuthor(authorID uint64) ([]models.Paper, error)

	// ListByPublisher returns papers published by the given committee member
	ListByPublisher(committeeID uint64) ([]models.Paper, error)

	// ListAll returns every paper
	ListAll() ([]models.Paper, error)
}
