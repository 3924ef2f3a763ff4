package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ideaboard/ideaboard-api/internal/constants"
	"github.com/ideaboard/ideaboard-api/internal/models"
	"github.com/ideaboard/ideaboard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCommentTextRequired = errors.New("comment text is required")
	ErrIdeaIDRequired      = errors.New("idea id is required")
	ErrInvalidParent       = errors.New("parent comment does not exist on this idea")
)

// CommentService handles comment business logic
type CommentService struct {
	commentRepo repository.CommentRepository
	ideaRepo    repository.IdeaRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repository.CommentRepository, ideaRepo repository.IdeaRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		ideaRepo:    ideaRepo,
	}
}

// AddCommentInput represents input for adding a comment. A nil or empty
// ParentID makes a top-level comment.
type AddCommentInput struct {
	AuthorName string
	Text       string
	IdeaID     string
	ParentID   *string
}

// CommentNode is one comment in a reply tree
type CommentNode struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Text    string         `json:"text"`
	Replies []*CommentNode `json:"replies"`
}

// AddComment stores a comment on an existing idea, optionally replying to a
// comment on the same idea.
func (s *CommentService) AddComment(ctx context.Context, input AddCommentInput) (*models.Comment, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, ErrCommentTextRequired
	}
	ideaID := strings.TrimSpace(input.IdeaID)
	if ideaID == "" {
		return nil, ErrIdeaIDRequired
	}

	if _, err := s.ideaRepo.FindByID(ctx, ideaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIdeaNotFound
		}
		return nil, fmt.Errorf("failed to find idea: %w", err)
	}

	var parentID *string
	if input.ParentID != nil && strings.TrimSpace(*input.ParentID) != "" {
		id := strings.TrimSpace(*input.ParentID)
		parent, err := s.commentRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidParent
			}
			return nil, fmt.Errorf("failed to find parent comment: %w", err)
		}
		if parent.IdeaID != ideaID {
			return nil, ErrInvalidParent
		}
		parentID = &id
	}

	comment := &models.Comment{
		Name:     input.AuthorName,
		Text:     text,
		IdeaID:   ideaID,
		ParentID: parentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// GetCommentTree returns the top-level comments of an idea with their replies
// nested to any depth up to MaxCommentDepth. Each level is one query.
func (s *CommentService) GetCommentTree(ctx context.Context, ideaID string) ([]*CommentNode, error) {
	roots, err := s.commentRepo.ListTopLevel(ctx, ideaID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	tree := make([]*CommentNode, 0, len(roots))
	nodes := make(map[string]*CommentNode, len(roots))
	frontier := make([]string, 0, len(roots))
	for _, c := range roots {
		node := newCommentNode(c)
		tree = append(tree, node)
		nodes[c.ID] = node
		frontier = append(frontier, c.ID)
	}

	for depth := 0; len(frontier) > 0 && depth < constants.MaxCommentDepth; depth++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		replies, err := s.commentRepo.ListByParents(ctx, frontier)
		if err != nil {
			return nil, fmt.Errorf("failed to list replies: %w", err)
		}

		next := make([]string, 0, len(replies))
		for _, c := range replies {
			// visited check stops a reference cycle from looping
			if _, seen := nodes[c.ID]; seen || c.ParentID == nil {
				continue
			}
			parent, ok := nodes[*c.ParentID]
			if !ok {
				continue
			}
			node := newCommentNode(c)
			parent.Replies = append(parent.Replies, node)
			nodes[c.ID] = node
			next = append(next, c.ID)
		}
		frontier = next
	}

	return tree, nil
}

func newCommentNode(c models.Comment) *CommentNode {
	return &CommentNode{
		ID:      c.ID,
		Name:    c.Name,
		Text:    c.Text,
		Replies: []*CommentNode{},
	}
}
