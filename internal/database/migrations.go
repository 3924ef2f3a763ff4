package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// AddIndexes adds the composite indexes used by listing and comment queries
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Listings are ordered newest first within each filter
		{"ideas", "idx_ideas_owner_created", "owner_id, created_at"},
		{"ideas", "idx_ideas_status_created", "status, created_at"},
		{"ideas", "idx_ideas_state_created", "state, created_at"},

		// Comment tree walk
		{"comments", "idx_comments_idea_parent", "idea_id, parent_id"},

		{"idea_likes", "idx_idea_likes_user_id", "user_id"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
