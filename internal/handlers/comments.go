package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/ideaboard/ideaboard-api/internal/errors"
	"github.com/ideaboard/ideaboard-api/internal/middleware"
	"github.com/ideaboard/ideaboard-api/internal/services"
)

// CommentHandler serves threaded comments on ideas.
type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// AddComment posts a comment as the caller. parent is the id of the comment
// being replied to.
func (h *CommentHandler) AddComment(c *gin.Context) {
	type AddCommentRequest struct {
		Text   string  `json:"text"`
		IdeaID string  `json:"ideaId"`
		Parent *string `json:"parent"`
	}

	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	comment, err := h.commentService.AddComment(c.Request.Context(), services.AddCommentInput{
		AuthorName: user.Username,
		Text:       req.Text,
		IdeaID:     req.IdeaID,
		ParentID:   req.Parent,
	})
	if err != nil {
		respondError(c, err, "add comment")
		return
	}

	respond(c, http.StatusCreated, comment, "Comments added successfully")
}

// GetComments returns the reply tree of the idea named by :id.
func (h *CommentHandler) GetComments(c *gin.Context) {
	tree, err := h.commentService.GetCommentTree(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "fetch comments")
		return
	}

	respond(c, http.StatusOK, tree, "Comments fetched successfully")
}
