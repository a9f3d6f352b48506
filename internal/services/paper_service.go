package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/conftrack/paper-review-api/internal/models"
	"github.com/conftrack/paper-review-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrPaperNotFound           = errors.New("paper not found")
	ErrAuthorNotFound          = errors.New("author not found")
	ErrCommitteeMemberNotFound = errors.New("committee member not found")
	ErrAlreadyPublished        = errors.New("paper is already published")
)

// PaperService handles the paper lifecycle: creation by authors, the single
// draft-to-published transition by committee members, and read projections.
type PaperService struct {
	paperRepo repository.PaperRepository
	tagRepo   repository.TagRepository
	userRepo  repository.UserRepository
	logger    *zap.Logger
}

// NewPaperService creates a new PaperService.
func NewPaperService(paperRepo repository.PaperRepository, tagRepo repository.TagRepository, userRepo repository.UserRepository, logger *zap.Logger) *PaperService {
	return &PaperService{
		paperRepo: paperRepo,
		tagRepo:   tagRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// CreatePaperInput represents input for creating a paper.
type CreatePaperInput struct {
	Title          string
	AbstractText   string
	Content        string
	Tags           []string
	AuthorUsername string
}

// Create stores a new paper in the draft state, attaching find-or-create
// tags by exact name match.
func (s *PaperService) Create(input CreatePaperInput) (*models.Paper, error) {
	author, err := s.userRepo.FindByUsername(input.AuthorUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to find author: %w", err)
	}

	tags := make([]models.Tag, 0, len(input.Tags))
	seen := make(map[string]struct{}, len(input.Tags))
	for _, name := range input.Tags {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		tag, err := s.tagRepo.FindOrCreateByName(name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tag %q: %w", name, err)
		}
		tags = append(tags, *tag)
	}

	paper := &models.Paper{
		Title:        input.Title,
		AbstractText: input.AbstractText,
		Content:      input.Content,
		AuthorID:     author.ID,
		Tags:         tags,
	}

	if err := s.paperRepo.Create(paper); err != nil {
		return nil, fmt.Errorf("failed to create paper: %w", err)
	}

	s.logger.Info("paper created",
		zap.Uint64("id", paper.ID),
		zap.String("title", paper.Title),
		zap.String("author", author.Username),
	)
	return s.paperRepo.FindByID(paper.ID)
}

// Publish transitions a draft to published on behalf of a committee member.
// Re-publishing an already published paper is rejected rather than
// overwriting the original publisher and date.
func (s *PaperService) Publish(paperID uint64, committeeUsername string) (*models.Paper, error) {
	paper, err := s.paperRepo.FindByID(paperID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaperNotFound
		}
		return nil, fmt.Errorf("failed to find paper: %w", err)
	}

	committee, err := s.userRepo.FindByUsername(committeeUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommitteeMemberNotFound
		}
		return nil, fmt.Errorf("failed to find committee member: %w", err)
	}

	if paper.Published() {
		return nil, ErrAlreadyPublished
	}

	published, err := s.paperRepo.Publish(paper.ID, committee.ID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to publish paper: %w", err)
	}
	if !published {
		// Lost a concurrent publish between the read above and the update.
		return nil, ErrAlreadyPublished
	}

	s.logger.Info("paper published",
		zap.Uint64("id", paper.ID),
		zap.String("title", paper.Title),
		zap.String("committee", committee.Username),
	)
	return s.paperRepo.FindByID(paper.ID)
}

// Search returns published papers newest-first when keyword is blank, and
// otherwise all papers whose title or abstract contains the keyword.
func (s *PaperService) Search(keyword string) ([]models.Paper, error) {
	if strings.TrimSpace(keyword) == "" {
		return s.paperRepo.ListPublished()
	}
	return s.paperRepo.Search(keyword)
}

// GetByID returns one paper.
func (s *PaperService) GetByID(id uint64) (*models.Paper, error) {
	paper, err := s.paperRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaperNotFound
		}
		return nil, fmt.Errorf("failed to find paper: %w", err)
	}
	return paper, nil
}

// ListPublished returns published papers, newest publication first.
func (s *PaperService) ListPublished() ([]models.Paper, error) {
	return s.paperRepo.ListPublished()
}

// ListUnpublished returns papers still in the draft state.
func (s *PaperService) ListUnpublished() ([]models.Paper, error) {
	return s.paperRepo.ListUnpublished()
}

// ListByAuthor returns papers authored by the named user.
func (s *PaperService) ListByAuthor(username string) ([]models.Paper, error) {
	author, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to find author: %w", err)
	}
	return s.paperRepo.ListByAuthor(author.ID)
}

// ListPublishedByCommittee returns papers published by the named committee
// member.
func (s *PaperService) ListPublishedByCommittee(username string) ([]models.Paper, error) {
	committee, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommitteeMemberNotFound
		}
		return nil, fmt.Errorf("failed to find committee member: %w", err)
	}
	return s.paperRepo.ListByPublisher(committee.ID)
}

// ListAll returns every paper.
func (s *PaperService) ListAll() ([]models.Paper, error) {
	return s.paperRepo.ListAll()
}
