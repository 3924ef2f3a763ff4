package repository

import (
	"testing"
	"time"

	"github.com/ideaboard/ideaboard-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_TopLevelAndReplies(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)
	base := time.Date(2025, time.May, 1, 8, 0, 0, 0, time.UTC)

	first := &models.Comment{Name: "ann", Text: "first", IdeaID: "idea-1", CreatedAt: base}
	second := &models.Comment{Name: "ben", Text: "second", IdeaID: "idea-1", CreatedAt: base.Add(time.Minute)}
	other := &models.Comment{Name: "cy", Text: "elsewhere", IdeaID: "idea-2", CreatedAt: base}
	for _, c := range []*models.Comment{first, second, other} {
		require.NoError(t, repo.Create(ctx(), c))
	}
	reply := &models.Comment{Name: "dee", Text: "reply", IdeaID: "idea-1", ParentID: &first.ID, CreatedAt: base.Add(2 * time.Minute)}
	require.NoError(t, repo.Create(ctx(), reply))

	top, err := repo.ListTopLevel(ctx(), "idea-1")
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, first.ID, top[0].ID)
	assert.Equal(t, second.ID, top[1].ID)

	replies, err := repo.ListByParents(ctx(), []string{first.ID, second.ID})
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, reply.ID, replies[0].ID)

	none, err := repo.ListByParents(ctx(), nil)
	require.NoError(t, err)
	assert.Empty(t, none)

	found, err := repo.FindByID(ctx(), reply.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, *found.ParentID)
}
