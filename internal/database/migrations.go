package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds the indexes behind the hot query paths: event listings
// filtered by type/subtype/city/date, bookmark listings ordered by
// participation creation time, and per-event message threads.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		{"events", "idx_events_start_date", "start_date"},
		{"events", "idx_events_type_subtype", "type, subtype"},
		{"events", "idx_events_city", "city"},

		{"event_users", "idx_event_users_user_id", "user_id"},
		{"event_users", "idx_event_users_event_id", "event_id"},
		{"event_users", "idx_event_users_created_at", "created_at"},

		{"messages", "idx_messages_event_id", "event_id"},
		{"messages", "idx_messages_user_id", "user_id"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM information_schema.statistics
			WHERE table_schema = DATABASE() AND table_name = ? AND index_name = ?
		`, idx.table, idx.name).Scan(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
