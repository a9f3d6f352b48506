package repository

import (
	"time"

	"github.com/conftrack/paper-review-api/internal/models"
	"gorm.io/gorm"
)

// GormPaperRepository is a GORM implementation of PaperRepository
type GormPaperRepository struct {
	db *gorm.DB
}

// NewPaperRepository creates a new PaperRepository
func NewPaperRepository(db *gorm.DB) PaperRepository {
	return &GormPaperRepository{db: db}
}

// withRelations eagerly loads everything a paper response needs, so no
// query ever hands out a partially-loaded paper.
func (r *GormPaperRepository) withRelations() *gorm.DB {
	return r.db.
		Preload("Author").
		Preload("Author.Role").
		Preload("PublishedByCommittee").
		Preload("PublishedByCommittee.Role").
		Preload("Tags")
}

// Create inserts a new paper in the draft state
func (r *GormPaperRepository) Create(paper *models.Paper) error {
	return r.db.Create(paper).Error
}

// FindByID finds a paper by ID
func (r *GormPaperRepository) FindByID(id uint64) (*models.Paper, error) {
	var paper models.Paper
	if err := r.withRelations().First(&paper, id).Error; err != nil {
		return nil, err
	}
	return &paper, nil
}

// Publish transitions a draft to published. The publication date and the
// publishing committee member are written in one guarded update so neither
// is ever observable without the other, and a concurrent publish loses
// cleanly instead of overwriting.
func (r *GormPaperRepository) Publish(paperID, committeeID uint64, at time.Time) (bool, error) {
	res := r.db.Model(&models.Paper{}).
		Where("id = ? AND publication_date IS NULL", paperID).
		Updates(map[string]interface{}{
			"published_by_committee_id": committeeID,
			"publication_date":          at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Search returns all papers whose title or abstract contains keyword
func (r *GormPaperRepository) Search(keyword string) ([]models.Paper, error) {
	var papers []models.Paper
	pattern := "%" + keyword + "%"
	err := r.withRelations().
		Where("title LIKE ? OR abstract_text LIKE ?", pattern, pattern).
		Order("papers.id").
		Find(&papers).Error
	return papers, err
}

// ListPublished returns published papers, newest publication first
func (r *GormPaperRepository) ListPublished() ([]models.Paper, error) {
	var papers []models.Paper
	err := r.withRelations().
		Where("publication_date IS NOT NULL").
		Order("publication_date DESC").
		Find(&papers).Error
	return papers, err
}

// ListUnpublished returns papers still in the draft state
func (r *GormPaperRepository) ListUnpublished() ([]models.Paper, error) {
	var papers []models.Paper
	err := r.withRelations().
		Where("publication_date IS NULL").
		Order("papers.id").
		Find(&papers).Error
	return papers, err
}

// ListByAuthor returns papers authored by the given user
func (r *GormPaperRepository) ListByAuthor(authorID uint64) ([]models.Paper, error) {
	var papers []models.Paper
	err := r.withRelations().
		Where("author_id = ?", authorID).
		Order("papers.id").
		Find(&papers).Error
	return papers, err
}

// ListByPublisher returns papers published by the given committee member
func (r *GormPaperRepository) ListByPublisher(committeeID uint64) ([]models.Paper, error) {
	var papers []models.Paper
	err := r.withRelations().
		Where("published_by_committee_id = ?", committeeID).
		Order("papers.id").
		Find(&papers).Error
	return papers, err
}

// ListAll returns every paper
func (r *GormPaperRepository) ListAll() ([]models.Paper, error) {
	var papers []models.Paper
	err := r.withRelations().Order("papers.id").Find(&papers).Error
	return papers, err
}
