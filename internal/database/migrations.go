package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// AddIndexes adds query-critical indexes not declared in model tags
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Issue triage views filter by zone or assignee plus status
		{"issues", "idx_issues_zone_id_status", "zone_id, status"},
		{"issues", "idx_issues_assigned_to_status", "assigned_to, status"},

		// Inbox queries: unread badge and per-recipient listing
		{"notifications", "idx_notifications_recipient_read", "recipient_id, is_read"},
		{"notifications", "idx_notifications_recipient_created", "recipient_id, created_at"},

		// Analytics rollups scan completions per zone
		{"tasks", "idx_tasks_zone_completed_at", "zone_id, completed_at"},
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

// MigrateDatabase runs schema migration followed by the index pass
func MigrateDatabase(db *gorm.DB) error {
	if err := Migrate(); err != nil {
		return err
	}
	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
