package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/conftrack/paper-review-api/internal/dto"
	apierrors "github.com/conftrack/paper-review-api/internal/errors"
	"github.com/conftrack/paper-review-api/internal/models"
	"github.com/conftrack/paper-review-api/internal/services"
	"github.com/gin-gonic/gin"
)

// PaperHandler coordinates paper HTTP handlers.
type PaperHandler struct {
	paperService *services.PaperService
	authService  *services.AuthService
}

// NewPaperHandler creates a new PaperHandler.
func NewPaperHandler(paperService *services.PaperService, authService *services.AuthService) *PaperHandler {
	return &PaperHandler{
		paperService: paperService,
		authService:  authService,
	}
}

// CreatePaper creates a paper on behalf of the author named in the
// authorUsername query parameter. Only users holding the AUTHOR role may
// create papers.
func (h *PaperHandler) CreatePaper(c *gin.Context) {
	type PaperRequest struct {
		Title        string   `json:"title" binding:"required,max=200"`
		AbstractText string   `json:"abstractText" binding:"required"`
		Content      string   `json:"content" binding:"required"`
		Tags         []string `json:"tags"`
	}

	authorUsername := c.Query("authorUsername")
	if authorUsername == "" {
		apierrors.BadRequest(c, "Error: authorUsername is required!")
		return
	}

	var req PaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Error: Invalid paper request!")
		return
	}

	if !h.requireRole(c, authorUsername, models.RoleAuthor, "Error: Only authors can create papers!") {
		return
	}

	paper, err := h.paperService.Create(services.CreatePaperInput{
		Title:          req.Title,
		AbstractText:   req.AbstractText,
		Content:        req.Content,
		Tags:           req.Tags,
		AuthorUsername: authorUsername,
	})
	if err != nil {
		respondPaperError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Paper created successfully with ID: %d", paper.ID)})
}

// PublishPaper transitions a draft to published on behalf of the committee
// member named in the committeeUsername query parameter.
func (h *PaperHandler) PublishPaper(c *gin.Context) {
	paperID, err := strconv.ParseUint(c.Param("paperId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Error: Invalid paper ID!")
		return
	}

	committeeUsername := c.Query("committeeUsername")
	if committeeUsername == "" {
		apierrors.BadRequest(c, "Error: committeeUsername is required!")
		return
	}

	if !h.requireRole(c, committeeUsername, models.RoleCommittee, "Error: Only committee members can publish papers!") {
		return
	}

	if _, err := h.paperService.Publish(paperID, committeeUsername); err != nil {
		respondPaperError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Paper published successfully!"})
}

// SearchPapers returns published papers when no keyword is supplied, and
// otherwise all papers matching the keyword in title or abstract.
func (h *PaperHandler) SearchPapers(c *gin.Context) {
	papers, err := h.paperService.Search(c.Query("keyword"))
	if err != nil {
		respondPaperError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaperDTOs(papers))
}

// GetPublishedPapers returns published papers, newest publication first.
func (h *PaperHandler) GetPublishedPapers(c *gin.Context) {
	papers, err := h.paperService.ListPublished()
	if err != nil {
		respondPaperError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaperDTOs(papers))
}

// GetUnpublishedPapers returns papers still in the draft state.
func (h *PaperHandler) GetUnpublishedPapers(c *gin.Context) {
	papers, err := h.paperService.ListUnpublished()
	if err != nil {
		respondPaperError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaperDTOs(papers))
}

// GetPapersByAuthor returns papers authored by the named user.
func (h *PaperHandler) GetPapersByAuthor(c *gin.Context) {
	papers, err := h.paperService.ListByAuthor(c.Param("username"))
	if err != nil {
		respondPaperError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaperDTOs(papers))
}

// GetPapersByCommittee returns papers published by the named committee
// member.
func (h *PaperHandler) GetPapersByCommittee(c *gin.Context) {
	papers, err := h.paperService.ListPublishedByCommittee(c.Param("username"))
	if err != nil {
		respondPaperError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaperDTOs(papers))
}

// GetPaper returns one paper by id.
func (h *PaperHandler) GetPaper(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Error: Invalid paper ID!")
		return
	}

	paper, err := h.paperService.GetByID(id)
	if err != nil {
		respondPaperError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaperDTO(*paper))
}

// GetAllPapers returns every paper.
func (h *PaperHandler) GetAllPapers(c *gin.Context) {
	papers, err := h.paperService.ListAll()
	if err != nil {
		respondPaperError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaperDTOs(papers))
}

// requireRole resolves the user's role and rejects the request when the
// user is unknown (404) or holds a different role (403). It writes the
// response itself and reports whether the handler may proceed.
func (h *PaperHandler) requireRole(c *gin.Context, username string, required models.RoleName, denial string) bool {
	role, err := h.authService.RoleOf(username)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, "Error: User not found!")
		} else {
			apierrors.InternalError(c, "")
		}
		return false
	}
	if role != required {
		apierrors.Forbidden(c, denial)
		return false
	}
	return true
}

func respondPaperError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPaperNotFound):
		apierrors.NotFound(c, "Error: Paper not found!")
	case errors.Is(err, services.ErrAuthorNotFound):
		apierrors.NotFound(c, "Error: Author not found!")
	case errors.Is(err, services.ErrCommitteeMemberNotFound):
		apierrors.NotFound(c, "Error: Committee member not found!")
	case errors.Is(err, services.ErrAlreadyPublished):
		apierrors.Conflict(c, "Error: Paper is already published!")
	default:
		apierrors.InternalError(c, "")
	}
}
