package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/conftrack/paper-review-api/internal/database"
	"github.com/conftrack/paper-review-api/internal/dto"
	"github.com/conftrack/paper-review-api/internal/models"
	"github.com/conftrack/paper-review-api/internal/repository"
	"github.com/conftrack/paper-review-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// PaperHandlerTestSuite defines the test suite for PaperHandler
type PaperHandlerTestSuite struct {
	suite.Suite
	db           *gorm.DB
	authService  *services.AuthService
	paperService *services.PaperService
	router       *gin.Engine
}

// SetupTest runs before each test
func (suite *PaperHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Tag{},
		&models.Paper{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	userRepo := repository.NewUserRepository(suite.db)
	roleRepo := repository.NewRoleRepository(suite.db)
	tagRepo := repository.NewTagRepository(suite.db)
	paperRepo := repository.NewPaperRepository(suite.db)

	suite.authService = services.NewAuthService(userRepo, roleRepo, zap.NewNop())
	suite.paperService = services.NewPaperService(paperRepo, tagRepo, userRepo, zap.NewNop())

	authHandler := NewAuthHandler(suite.authService)
	paperHandler := NewPaperHandler(suite.paperService, suite.authService)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	auth := suite.router.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)

	papers := suite.router.Group("/api/papers")
	papers.POST("/create", paperHandler.CreatePaper)
	papers.POST("/publish/:paperId", paperHandler.PublishPaper)
	papers.GET("/search", paperHandler.SearchPapers)
	papers.GET("/published", paperHandler.GetPublishedPapers)
	papers.GET("/unpublished", paperHandler.GetUnpublishedPapers)
	papers.GET("/author/:username", paperHandler.GetPapersByAuthor)
	papers.GET("/committee/:username", paperHandler.GetPapersByCommittee)
	papers.GET("/all", paperHandler.GetAllPapers)
	papers.GET("/:id", paperHandler.GetPaper)
}

// TearDownTest runs after each test
func (suite *PaperHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *PaperHandlerTestSuite) registerUser(username, role string) {
	_, err := suite.authService.Register(services.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret1",
		Role:     role,
	})
	suite.Require().NoError(err)
}

func (suite *PaperHandlerTestSuite) request(method, url string, payload any) *httptest.ResponseRecorder {
	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *PaperHandlerTestSuite) createPaper(author, title string, tags []string) uint64 {
	paper, err := suite.paperService.Create(services.CreatePaperInput{
		Title:          title,
		AbstractText:   "An abstract for " + title,
		Content:        "Body of " + title,
		Tags:           tags,
		AuthorUsername: author,
	})
	suite.Require().NoError(err)
	return paper.ID
}

func (suite *PaperHandlerTestSuite) paperCount() int64 {
	var count int64
	suite.Require().NoError(suite.db.Model(&models.Paper{}).Count(&count).Error)
	return count
}

func (suite *PaperHandlerTestSuite) decodePapers(w *httptest.ResponseRecorder) []dto.PaperDTO {
	var papers []dto.PaperDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &papers))
	return papers
}

func (suite *PaperHandlerTestSuite) TestCreatePaper_Success() {
	suite.registerUser("author1", "AUTHOR")

	w := suite.request("POST", "/api/papers/create?authorUsername=author1", map[string]any{
		"title":        "Graph Databases",
		"abstractText": "A survey of graph storage engines.",
		"content":      "Full text.",
		"tags":         []string{"databases", "graphs"},
	})

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(suite.T(), response["message"], "Paper created successfully with ID:")

	paper, err := suite.paperService.GetByID(1)
	suite.Require().NoError(err)
	assert.Nil(suite.T(), paper.PublicationDate)
	assert.Nil(suite.T(), paper.PublishedByCommitteeID)
	assert.Len(suite.T(), paper.Tags, 2)
}

func (suite *PaperHandlerTestSuite) TestCreatePaper_StudentForbidden() {
	suite.registerUser("student1", "STUDENT")

	w := suite.request("POST", "/api/papers/create?authorUsername=student1", map[string]any{
		"title":        "Not Allowed",
		"abstractText": "Abs",
		"content":      "Body",
	})

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	var response map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Error: Only authors can create papers!", response["message"])
	assert.EqualValues(suite.T(), 0, suite.paperCount())
}

func (suite *PaperHandlerTestSuite) TestCreatePaper_UnknownAuthor() {
	w := suite.request("POST", "/api/papers/create?authorUsername=ghost", map[string]any{
		"title":        "Orphan",
		"abstractText": "Abs",
		"content":      "Body",
	})

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.EqualValues(suite.T(), 0, suite.paperCount())
}

func (suite *PaperHandlerTestSuite) TestCreatePaper_TagsReused() {
	suite.registerUser("author1", "AUTHOR")
	suite.createPaper("author1", "First", []string{"a", "b"})
	suite.createPaper("author1", "Second", []string{"a", "c"})

	var tagCount int64
	suite.Require().NoError(suite.db.Model(&models.Tag{}).Count(&tagCount).Error)
	assert.EqualValues(suite.T(), 3, tagCount)

	paper, err := suite.paperService.GetByID(1)
	suite.Require().NoError(err)
	names := make([]string, len(paper.Tags))
	for i, tag := range paper.Tags {
		names[i] = tag.Name
	}
	assert.ElementsMatch(suite.T(), []string{"a", "b"}, names)
}

func (suite *PaperHandlerTestSuite) TestPublishPaper_Success() {
	suite.registerUser("author1", "AUTHOR")
	suite.registerUser("committee1", "COMMITTEE")
	paperID := suite.createPaper("author1", "Publishable", nil)

	w := suite.request("POST", fmt.Sprintf("/api/papers/publish/%d?committeeUsername=committee1", paperID), nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	paper, err := suite.paperService.GetByID(paperID)
	suite.Require().NoError(err)
	suite.Require().NotNil(paper.PublicationDate)
	suite.Require().NotNil(paper.PublishedByCommittee)
	assert.Equal(suite.T(), "committee1", paper.PublishedByCommittee.Username)

	listed := suite.request("GET", "/api/papers/committee/committee1", nil)
	assert.Equal(suite.T(), http.StatusOK, listed.Code)
	assert.Len(suite.T(), suite.decodePapers(listed), 1)
}

func (suite *PaperHandlerTestSuite) TestPublishPaper_DoublePublishRejected() {
	suite.registerUser("author1", "AUTHOR")
	suite.registerUser("committee1", "COMMITTEE")
	suite.registerUser("committee2", "COMMITTEE")
	paperID := suite.createPaper("author1", "Once Only", nil)

	first := suite.request("POST", fmt.Sprintf("/api/papers/publish/%d?committeeUsername=committee1", paperID), nil)
	suite.Require().Equal(http.StatusOK, first.Code)

	paper, err := suite.paperService.GetByID(paperID)
	suite.Require().NoError(err)
	firstDate := *paper.PublicationDate

	second := suite.request("POST", fmt.Sprintf("/api/papers/publish/%d?committeeUsername=committee2", paperID), nil)
	assert.Equal(suite.T(), http.StatusConflict, second.Code)

	// The original publisher and date survive.
	paper, err = suite.paperService.GetByID(paperID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "committee1", paper.PublishedByCommittee.Username)
	assert.True(suite.T(), paper.PublicationDate.Equal(firstDate))
}

func (suite *PaperHandlerTestSuite) TestPublishPaper_NonCommitteeForbidden() {
	suite.registerUser("author1", "AUTHOR")
	paperID := suite.createPaper("author1", "Self Publish", nil)

	w := suite.request("POST", fmt.Sprintf("/api/papers/publish/%d?committeeUsername=author1", paperID), nil)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	paper, err := suite.paperService.GetByID(paperID)
	suite.Require().NoError(err)
	assert.Nil(suite.T(), paper.PublicationDate)
}

func (suite *PaperHandlerTestSuite) TestPublishPaper_NotFound() {
	suite.registerUser("committee1", "COMMITTEE")

	w := suite.request("POST", "/api/papers/publish/999?committeeUsername=committee1", nil)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *PaperHandlerTestSuite) TestSearch_NoKeywordReturnsPublishedNewestFirst() {
	suite.registerUser("author1", "AUTHOR")
	suite.registerUser("committee1", "COMMITTEE")
	oldID := suite.createPaper("author1", "Older Result", nil)
	newID := suite.createPaper("author1", "Newer Result", nil)
	suite.createPaper("author1", "Still Draft", nil)

	_, err := suite.paperService.Publish(oldID, "committee1")
	suite.Require().NoError(err)
	_, err = suite.paperService.Publish(newID, "committee1")
	suite.Require().NoError(err)

	// Pin publication dates so ordering does not depend on clock resolution.
	suite.Require().NoError(suite.db.Model(&models.Paper{}).Where("id = ?", oldID).
		Update("publication_date", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).Error)
	suite.Require().NoError(suite.db.Model(&models.Paper{}).Where("id = ?", newID).
		Update("publication_date", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)).Error)

	w := suite.request("GET", "/api/papers/search", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	papers := suite.decodePapers(w)
	suite.Require().Len(papers, 2)
	assert.Equal(suite.T(), newID, papers[0].ID)
	assert.Equal(suite.T(), oldID, papers[1].ID)

	// An empty keyword behaves the same as none.
	empty := suite.request("GET", "/api/papers/search?keyword=", nil)
	assert.JSONEq(suite.T(), w.Body.String(), empty.Body.String())
}

func (suite *PaperHandlerTestSuite) TestSearch_KeywordIncludesDrafts() {
	suite.registerUser("author1", "AUTHOR")
	suite.createPaper("author1", "quantum computing advances", nil)
	suite.createPaper("author1", "classical algorithms", nil)

	w := suite.request("GET", "/api/papers/search?keyword=quantum", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	papers := suite.decodePapers(w)
	suite.Require().Len(papers, 1)
	assert.Equal(suite.T(), "quantum computing advances", papers[0].Title)
	assert.Nil(suite.T(), papers[0].PublicationDate)
}

func (suite *PaperHandlerTestSuite) TestSearch_KeywordMatchesAbstract() {
	suite.registerUser("author1", "AUTHOR")
	paper, err := suite.paperService.Create(services.CreatePaperInput{
		Title:          "Untitled Draft",
		AbstractText:   "This abstract mentions federated learning.",
		Content:        "Body",
		AuthorUsername: "author1",
	})
	suite.Require().NoError(err)

	w := suite.request("GET", "/api/papers/search?keyword=federated", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	papers := suite.decodePapers(w)
	suite.Require().Len(papers, 1)
	assert.Equal(suite.T(), paper.ID, papers[0].ID)
}

func (suite *PaperHandlerTestSuite) TestListEndpoints() {
	suite.registerUser("author1", "AUTHOR")
	suite.registerUser("committee1", "COMMITTEE")
	publishedID := suite.createPaper("author1", "Published Paper", nil)
	suite.createPaper("author1", "Draft Paper", nil)

	_, err := suite.paperService.Publish(publishedID, "committee1")
	suite.Require().NoError(err)

	published := suite.request("GET", "/api/papers/published", nil)
	suite.Require().Equal(http.StatusOK, published.Code)
	assert.Len(suite.T(), suite.decodePapers(published), 1)

	unpublished := suite.request("GET", "/api/papers/unpublished", nil)
	suite.Require().Equal(http.StatusOK, unpublished.Code)
	assert.Len(suite.T(), suite.decodePapers(unpublished), 1)

	byAuthor := suite.request("GET", "/api/papers/author/author1", nil)
	suite.Require().Equal(http.StatusOK, byAuthor.Code)
	assert.Len(suite.T(), suite.decodePapers(byAuthor), 2)

	all := suite.request("GET", "/api/papers/all", nil)
	suite.Require().Equal(http.StatusOK, all.Code)
	assert.Len(suite.T(), suite.decodePapers(all), 2)
}

func (suite *PaperHandlerTestSuite) TestGetPaper() {
	suite.registerUser("author1", "AUTHOR")
	paperID := suite.createPaper("author1", "Fetch Me", []string{"tagged"})

	w := suite.request("GET", fmt.Sprintf("/api/papers/%d", paperID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var paper dto.PaperDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &paper))
	assert.Equal(suite.T(), "Fetch Me", paper.Title)
	suite.Require().NotNil(paper.Author)
	assert.Equal(suite.T(), "author1", paper.Author.Username)
	suite.Require().Len(paper.Tags, 1)
	assert.Equal(suite.T(), "tagged", paper.Tags[0].Name)
}

func (suite *PaperHandlerTestSuite) TestGetPaper_NotFound() {
	w := suite.request("GET", "/api/papers/999", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *PaperHandlerTestSuite) TestGetPapersByAuthor_UnknownUser() {
	w := suite.request("GET", "/api/papers/author/ghost", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestEndToEnd walks the whole lifecycle through the HTTP surface: signup,
// create as author, publish as committee, search.
func (suite *PaperHandlerTestSuite) TestEndToEnd() {
	signup := suite.request("POST", "/api/auth/signup", map[string]string{
		"username": "author1",
		"email":    "a@x.com",
		"password": "secret1",
		"role":     "AUTHOR",
	})
	suite.Require().Equal(http.StatusOK, signup.Code)

	signup = suite.request("POST", "/api/auth/signup", map[string]string{
		"username": "committee1",
		"email":    "c@x.com",
		"password": "secret1",
		"role":     "COMMITTEE",
	})
	suite.Require().Equal(http.StatusOK, signup.Code)

	create := suite.request("POST", "/api/papers/create?authorUsername=author1", map[string]any{
		"title":        "T",
		"abstractText": "Abs",
		"content":      "Body",
		"tags":         []string{},
	})
	suite.Require().Equal(http.StatusOK, create.Code)

	paper, err := suite.paperService.GetByID(1)
	suite.Require().NoError(err)
	suite.Require().Nil(paper.PublicationDate)

	// Keyword search finds the paper even while unpublished.
	keyword := suite.request("GET", "/api/papers/search?keyword=T", nil)
	suite.Require().Equal(http.StatusOK, keyword.Code)
	suite.Require().Len(suite.decodePapers(keyword), 1)

	publish := suite.request("POST", "/api/papers/publish/1?committeeUsername=committee1", nil)
	suite.Require().Equal(http.StatusOK, publish.Code)

	all := suite.request("GET", "/api/papers/search", nil)
	suite.Require().Equal(http.StatusOK, all.Code)
	papers := suite.decodePapers(all)
	suite.Require().Len(papers, 1)
	suite.Require().NotNil(papers[0].PublicationDate)
	suite.Require().NotNil(papers[0].PublishedByCommittee)
}

func TestPaperHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(PaperHandlerTestSuite))
}
