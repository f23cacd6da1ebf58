package testing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/amirphl/Sahel-Estates/models"
	"github.com/amirphl/Sahel-Estates/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TestAdminPassword is the plaintext password of every fixture admin
const TestAdminPassword = "TestPass123!"

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestAdmin creates an admin with the given role and TestAdminPassword
func (tf *TestFixtures) CreateTestAdmin(role models.AdminRole) (*models.Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(TestAdminPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{
		UUID:         uuid.New(),
		Email:        fmt.Sprintf("admin.%d.%06d@sahel-estates.test", time.Now().UnixNano(), rand.Intn(1000000)),
		Name:         "Test Admin",
		Role:         role,
		PasswordHash: string(hash),
	}
	if err := tf.DB.DB.Create(admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create test admin: %w", err)
	}
	return admin, nil
}

// CreateTestProject creates an active project with the given slug
func (tf *TestFixtures) CreateTestProject(slug string) (*models.Project, error) {
	project := &models.Project{
		Slug:          slug,
		TitleEn:       "Marina Heights",
		TitleAr:       "مارينا هايتس",
		DescriptionEn: "Waterfront residences",
		Status:        models.ProjectStatusOngoing,
		IsActive:      utils.ToPtr(true),
	}
	if err := tf.DB.DB.Create(project).Error; err != nil {
		return nil, fmt.Errorf("failed to create test project: %w", err)
	}
	return project, nil
}

// CreateTestNews creates an active news item
func (tf *TestFixtures) CreateTestNews(slug string, pinned bool, publishedAt time.Time) (*models.News, error) {
	news := &models.News{
		Slug:        slug,
		TitleEn:     "Launch " + slug,
		SummaryEn:   "Summary",
		BodyEn:      "Body",
		IsPinned:    pinned,
		PublishedAt: publishedAt,
		IsActive:    utils.ToPtr(true),
	}
	if err := tf.DB.DB.Create(news).Error; err != nil {
		return nil, fmt.Errorf("failed to create test news: %w", err)
	}
	return news, nil
}
