package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/conftrack/paper-review-api/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed populates the three roles, a sample author and committee member, and
// a handful of papers so a fresh database is immediately browsable. Roles
// are also created lazily at signup; seeding just front-loads them.
func Seed(db *gorm.DB, log *zap.Logger) error {
	roles := map[models.RoleName]*models.Role{}
	for _, name := range []models.RoleName{models.RoleStudent, models.RoleAuthor, models.RoleCommittee} {
		role := &models.Role{Name: name}
		if err := db.Where(models.Role{Name: name}).FirstOrCreate(role).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", name, err)
		}
		roles[name] = role
	}

	author, err := seedUser(db, "author1", "author@example.com", roles[models.RoleAuthor])
	if err != nil {
		return err
	}
	committee, err := seedUser(db, "committee1", "committee@example.com", roles[models.RoleCommittee])
	if err != nil {
		return err
	}

	var paperCount int64
	if err := db.Model(&models.Paper{}).Count(&paperCount).Error; err != nil {
		return fmt.Errorf("failed to count papers: %w", err)
	}
	if paperCount > 0 {
		return nil
	}

	published := func(daysAgo int) (*time.Time, *uint64) {
		t := time.Now().AddDate(0, 0, -daysAgo)
		return &t, &committee.ID
	}

	date1, publisher1 := published(10)
	date3, publisher3 := published(5)
	papers := []models.Paper{
		{
			Title:                  "Introduction to Machine Learning",
			AbstractText:           "This paper provides a comprehensive introduction to machine learning concepts and algorithms.",
			Content:                "Machine learning is a subset of artificial intelligence that enables computers to learn and improve from experience without being explicitly programmed.",
			AuthorID:               author.ID,
			PublicationDate:        date1,
			PublishedByCommitteeID: publisher1,
		},
		{
			Title:        "Deep Learning Applications in Computer Vision",
			AbstractText: "An exploration of deep learning techniques applied to computer vision problems.",
			Content:      "Computer vision has significantly benefited from deep learning advances. This paper explores various architectures and their applications.",
			AuthorID:     author.ID,
		},
		{
			Title:                  "Natural Language Processing with Transformers",
			AbstractText:           "A study on transformer architectures for natural language processing tasks.",
			Content:                "Transformer models have become the backbone of modern NLP systems. This paper discusses architecture, training, and applications.",
			AuthorID:               author.ID,
			PublicationDate:        date3,
			PublishedByCommitteeID: publisher3,
		},
	}
	if err := db.Create(&papers).Error; err != nil {
		return fmt.Errorf("failed to seed papers: %w", err)
	}

	log.Info("seeded sample data",
		zap.String("author", author.Username),
		zap.String("committee", committee.Username),
		zap.Int("papers", len(papers)),
	)
	return nil
}

func seedUser(db *gorm.DB, username, email string, role *models.Role) (*models.User, error) {
	var user models.User
	err := db.Where("username = ?", username).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up seed user %s: %w", username, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}

	user = models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		RoleID:       role.ID,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to seed user %s: %w", username, err)
	}
	return &user, nil
}
