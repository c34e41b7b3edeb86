package repository

import "strings"

// selectColumns maps each queryable table to the column order its scan
// function expects. The query compiler renders its SELECT lists from
// this map so compiled rows and scanners never drift apart.
var selectColumns = map[string][]string{
	"people": {
		"id", "full_name", "email", "phone", "linkedin_url", "is_stakeholder",
		"company", "title", "notes", "tags", "additional_info", "created_at", "updated_at",
	},
	"employers": {
		"id", "name", "is_current", "is_self", "contact_info", "notes", "tags",
		"created_at", "updated_at",
	},
	"clients": {
		"id", "name", "type", "status", "contact_person_id", "notes", "tags",
		"created_at", "updated_at",
	},
	"projects": {
		"id", "name", "client_id", "on_behalf_of_id", "description", "status",
		"start_date", "end_date", "tags", "created_at", "updated_at",
	},
	"work_sessions": {
		"id", "project_id", "date", "start_time", "end_time", "duration_hours",
		"summary", "privacy_level", "tags", "created_at", "updated_at",
	},
	"meetings": {
		"id", "title", "start_time", "duration_minutes", "summary", "privacy_level",
		"project_id", "meeting_type", "location", "tags", "created_at", "updated_at",
	},
	"notes": {
		"id", "text", "privacy_level", "entity_type", "entity_id", "tags",
		"created_at", "updated_at",
	},
	"reminders": {
		"id", "reminder_time", "message", "is_completed", "recurrence_config",
		"related_entity_type", "related_entity_id", "snoozed_until", "tags",
		"created_at", "updated_at", "last_notified_at",
	},
}

// SelectList renders the canonical column list for table, each column
// prefixed with alias when alias is non-empty. The second return is
// false for tables that are not directly queryable.
func SelectList(table, alias string) (string, bool) {
	cols, ok := selectColumns[table]
	if !ok {
		return "", false
	}
	if alias == "" {
		return strings.Join(cols, ", "), true
	}
	prefixed := make([]string, len(cols))
	for i, c := range cols {
		prefixed[i] = alias + "." + c
	}
	return strings.Join(prefixed, ", "), true
}
