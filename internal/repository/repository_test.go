package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ideaboard/ideaboard-api/internal/database"
	"github.com/ideaboard/ideaboard-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps the in-memory database shared and serializes writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     email,
		Email:        email,
		PasswordHash: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createIdea(t *testing.T, db *gorm.DB, ownerID, title string, createdAt time.Time) *models.Idea {
	t.Helper()
	idea := &models.Idea{
		Title:            title,
		Description:      "description of " + title,
		ShortDescription: "short",
		Status:           models.IdeaStatusPending,
		State:            models.IdeaStateTodo,
		OwnerID:          ownerID,
		CreatedAt:        createdAt,
	}
	require.NoError(t, db.Create(idea).Error)
	return idea
}

func seedIdeas(t *testing.T, db *gorm.DB, ownerID string, n int) []*models.Idea {
	t.Helper()
	base := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)
	ideas := make([]*models.Idea, n)
	for i := 0; i < n; i++ {
		ideas[i] = createIdea(t, db, ownerID, fmt.Sprintf("idea-%02d", i), base.Add(time.Duration(i)*time.Hour))
	}
	return ideas
}

func ctx() context.Context {
	return context.Background()
}
