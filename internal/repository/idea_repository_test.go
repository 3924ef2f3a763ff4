package repository

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ideaboard/ideaboard-api/internal/models"
	"github.com/ideaboard/ideaboard-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIdeaRepository_CreateRequiresOwner(t *testing.T) {
	db := newTestDB(t)
	repo := NewIdeaRepository(db)

	idea := &models.Idea{
		Title:            "Orphan",
		Description:      "d",
		ShortDescription: "s",
		OwnerID:          "missing-user",
	}
	err := repo.Create(ctx(), idea)
	require.ErrorIs(t, err, ErrOwnerNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Idea{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestIdeaRepository_CreateAppearsInOwnerIdeas(t *testing.T) {
	db := newTestDB(t)
	repo := NewIdeaRepository(db)
	users := NewUserRepository(db)
	owner := createUser(t, db, "owner@example.com")

	idea := &models.Idea{
		Title:            "Solar benches",
		Description:      "Benches that charge phones",
		ShortDescription: "Charging benches",
		Tags:             []string{"energy", "city"},
		Status:           models.IdeaStatusPending,
		State:            models.IdeaStateTodo,
		OwnerID:          owner.ID,
	}
	require.NoError(t, repo.Create(ctx(), idea))
	require.NotEmpty(t, idea.ID)

	loaded, err := users.FindByID(ctx(), owner.ID, "Ideas")
	require.NoError(t, err)
	require.Len(t, loaded.Ideas, 1)
	assert.Equal(t, idea.ID, loaded.Ideas[0].ID)

	stored, err := repo.FindByID(ctx(), idea.ID, "Owner")
	require.NoError(t, err)
	assert.Equal(t, []string{"energy", "city"}, []string(stored.Tags))
	assert.Equal(t, []string{}, []string(stored.Images))
	assert.Equal(t, owner.Email, stored.Owner.Email)
}

func TestIdeaRepository_ListPagesCoverOrderingExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewIdeaRepository(db)
	owner := createUser(t, db, "owner@example.com")
	ideas := seedIdeas(t, db, owner.ID, 23)

	const limit = 5
	var seen []string
	totalPages := 0
	for page := 1; ; page++ {
		items, total, err := repo.List(ctx(), IdeaFilter{Pagination: utils.NewPaginationParams(page, limit)})
		require.NoError(t, err)
		require.Equal(t, int64(23), total)
		totalPages = utils.TotalPages(total, limit)
		if len(items) == 0 {
			break
		}
		for _, item := range items {
			seen = append(seen, item.ID)
		}
	}

	assert.Equal(t, 5, totalPages)
	require.Len(t, seen, len(ideas))
	for i, id := range seen {
		// newest first
		assert.Equal(t, ideas[len(ideas)-1-i].ID, id)
	}
}

func TestIdeaRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewIdeaRepository(db)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	now := time.Now().UTC()

	a1 := createIdea(t, db, alice.ID, "a1", now)
	createIdea(t, db, alice.ID, "a2", now.Add(time.Minute))
	b1 := createIdea(t, db, bob.ID, "b1", now.Add(2*time.Minute))

	require.NoError(t, db.Model(a1).Update("status", models.IdeaStatusApproved).Error)
	require.NoError(t, db.Model(b1).Update("state", models.IdeaStateCompleted).Error)

	all := utils.NewPaginationParams(1, 10)

	owned, total, err := repo.List(ctx(), IdeaFilter{OwnerID: &alice.ID, Pagination: all})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, owned, 2)

	approved := models.IdeaStatusApproved
	byStatus, total, err := repo.List(ctx(), IdeaFilter{Status: &approved, Pagination: all})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, a1.ID, byStatus[0].ID)

	completed := models.IdeaStateCompleted
	byState, total, err := repo.List(ctx(), IdeaFilter{State: &completed, Pagination: all})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, b1.ID, byState[0].ID)
	assert.Equal(t, bob.Email, byState[0].Owner.Email)
}

func TestIdeaRepository_ListOrderByLikes(t *testing.T) {
	db := newTestDB(t)
	repo := NewIdeaRepository(db)
	owner := createUser(t, db, "owner@example.com")
	ideas := seedIdeas(t, db, owner.ID, 3)

	fan1 := createUser(t, db, "fan1@example.com")
	fan2 := createUser(t, db, "fan2@example.com")
	_, err := repo.ToggleLike(ctx(), ideas[0].ID, fan1.ID)
	require.NoError(t, err)
	_, err = repo.ToggleLike(ctx(), ideas[0].ID, fan2.ID)
	require.NoError(t, err)
	_, err = repo.ToggleLike(ctx(), ideas[1].ID, fan1.ID)
	require.NoError(t, err)

	top, _, err := repo.List(ctx(), IdeaFilter{OrderByLikes: true, Pagination: utils.NewPaginationParams(1, 2)})
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, ideas[0].ID, top[0].ID)
	assert.Equal(t, int64(2), top[0].LikesCount)
	assert.Len(t, top[0].Likes, 2)
	assert.Equal(t, ideas[1].ID, top[1].ID)
}

func TestIdeaRepository_ToggleLikeIsAnInvolution(t *testing.T) {
	db := newTestDB(t)
	repo := NewIdeaRepository(db)
	owner := createUser(t, db, "owner@example.com")
	fan := createUser(t, db, "fan@example.com")
	idea := seedIdeas(t, db, owner.ID, 1)[0]

	liked, err := repo.ToggleLike(ctx(), idea.ID, fan.ID)
	require.NoError(t, err)
	assert.True(t, liked.Liked)
	assert.Equal(t, int64(1), liked.Count)
	assert.Equal(t, []string{fan.ID}, liked.Users)

	unliked, err := repo.ToggleLike(ctx(), idea.ID, fan.ID)
	require.NoError(t, err)
	assert.False(t, unliked.Liked)
	assert.Equal(t, int64(0), unliked.Count)
	assert.Empty(t, unliked.Users)
}

func TestIdeaRepository_ToggleLikeMissingIdea(t *testing.T) {
	db := newTestDB(t)
	repo := NewIdeaRepository(db)
	fan := createUser(t, db, "fan@example.com")

	_, err := repo.ToggleLike(ctx(), "missing", fan.ID)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	var likes int64
	require.NoError(t, db.Model(&models.IdeaLike{}).Count(&likes).Error)
	assert.Zero(t, likes)
}

func TestIdeaRepository_ConcurrentTogglesKeepCountInSync(t *testing.T) {
	db := newTestDB(t)
	repo := NewIdeaRepository(db)
	owner := createUser(t, db, "owner@example.com")
	idea := seedIdeas(t, db, owner.ID, 1)[0]

	const fans = 12
	fanIDs := make([]string, fans)
	for i := range fanIDs {
		fanIDs[i] = createUser(t, db, "fan"+string(rune('a'+i))+"@example.com").ID
	}

	var wg sync.WaitGroup
	// every fan likes once; the first fan toggles three more times (net: liked)
	toggles := append([]string{}, fanIDs...)
	toggles = append(toggles, fanIDs[0], fanIDs[0], fanIDs[0])
	for _, userID := range toggles {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			_, err := repo.ToggleLike(ctx(), idea.ID, userID)
			assert.NoError(t, err)
		}(userID)
	}
	wg.Wait()

	stored, err := repo.FindByID(ctx(), idea.ID, "Likes")
	require.NoError(t, err)
	assert.Equal(t, int64(len(stored.Likes)), stored.LikesCount)

	seen := make(map[string]bool)
	for _, like := range stored.Likes {
		assert.False(t, seen[like.UserID], "user liked twice")
		seen[like.UserID] = true
	}
}

func TestIdeaRepository_DeleteRemovesLikesButNotComments(t *testing.T) {
	db := newTestDB(t)
	repo := NewIdeaRepository(db)
	owner := createUser(t, db, "owner@example.com")
	idea := seedIdeas(t, db, owner.ID, 1)[0]

	_, err := repo.ToggleLike(ctx(), idea.ID, owner.ID)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Comment{Name: "owner", Text: "hi", IdeaID: idea.ID}).Error)

	require.NoError(t, repo.Delete(ctx(), idea.ID))

	_, err = repo.FindByID(ctx(), idea.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	var likes, comments int64
	require.NoError(t, db.Model(&models.IdeaLike{}).Count(&likes).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	assert.Zero(t, likes)
	assert.Equal(t, int64(1), comments)

	err = repo.Delete(ctx(), idea.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestIdeaRepository_Aggregates(t *testing.T) {
	db := newTestDB(t)
	repo := NewIdeaRepository(db)
	owner := createUser(t, db, "owner@example.com")

	march := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	createIdea(t, db, owner.ID, "m1", march)
	rejected := createIdea(t, db, owner.ID, "m2", march.Add(time.Hour))
	require.NoError(t, db.Model(rejected).Update("status", models.IdeaStatusRejected).Error)

	counts, err := repo.CountByStatus(ctx())
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[models.IdeaStatusPending])
	assert.Equal(t, int64(1), counts[models.IdeaStatusRejected])
	assert.Zero(t, counts[models.IdeaStatusApproved])

	times, err := repo.CreationTimes(ctx())
	require.NoError(t, err)
	require.Len(t, times, 2)
	for _, created := range times {
		assert.Equal(t, time.March, created.UTC().Month())
	}
}
