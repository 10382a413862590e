package database

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT 1,
		allow_overlapping_annotations BOOLEAN NOT NULL DEFAULT 1,
		require_all_labels BOOLEAN NOT NULL DEFAULT 0,
		owner_id TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS uploaded_files (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id INTEGER NOT NULL,
		filename TEXT NOT NULL,
		size INTEGER NOT NULL DEFAULT 0,
		file_type TEXT NOT NULL,
		checksum TEXT NOT NULL DEFAULT '',
		content_preview TEXT NOT NULL DEFAULT '',
		metadata TEXT NOT NULL DEFAULT '{}',
		status TEXT NOT NULL DEFAULT 'processing'
			CHECK (status IN ('processing', 'completed', 'failed')),
		error_message TEXT NOT NULL DEFAULT '',
		task_count INTEGER NOT NULL DEFAULT 0,
		total_lines INTEGER NOT NULL DEFAULT 0,
		uploaded_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		processed_at DATETIME,
		FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
	)`,

	// completion_time is set exactly when the task is completed
	`CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		uuid TEXT NOT NULL UNIQUE,
		project_id INTEGER NOT NULL,
		upload_id INTEGER,
		text TEXT NOT NULL,
		original_filename TEXT NOT NULL DEFAULT '',
		line_number INTEGER NOT NULL DEFAULT 0,
		is_completed BOOLEAN NOT NULL DEFAULT 0,
		completion_time DATETIME,
		identifier_type TEXT NOT NULL DEFAULT 'default'
			CHECK (identifier_type IN ('direct', 'quasi', 'default')),
		annotator_id TEXT,
		metadata TEXT NOT NULL DEFAULT '{}',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		CHECK ((is_completed = 1 AND completion_time IS NOT NULL)
			OR (is_completed = 0 AND completion_time IS NULL)),
		FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
		FOREIGN KEY (upload_id) REFERENCES uploaded_files(id) ON DELETE SET NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project
		ON tasks(project_id, is_completed)`,

	`CREATE TABLE IF NOT EXISTS annotations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		uuid TEXT NOT NULL UNIQUE,
		task_id INTEGER NOT NULL,
		start_offset INTEGER NOT NULL,
		end_offset INTEGER NOT NULL,
		text TEXT NOT NULL,
		labels TEXT NOT NULL DEFAULT '[]',
		confidence TEXT NOT NULL DEFAULT 'high'
			CHECK (confidence IN ('high', 'medium', 'low')),
		identifier_type TEXT NOT NULL DEFAULT 'default'
			CHECK (identifier_type IN ('direct', 'quasi', 'default')),
		overlapping BOOLEAN NOT NULL DEFAULT 0,
		entity_id TEXT,
		related_annotations TEXT NOT NULL DEFAULT '[]',
		relationships TEXT NOT NULL DEFAULT '[]',
		notes TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		CHECK (start_offset >= 0 AND start_offset < end_offset),
		FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE
	)`,

	`CREATE INDEX IF NOT EXISTS idx_annotations_task
		ON annotations(task_id, start_offset)`,

	// project_id NULL marks a global label
	`CREATE TABLE IF NOT EXISTS labels (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		value TEXT NOT NULL,
		background TEXT NOT NULL DEFAULT '#7D56F4',
		hotkey TEXT,
		category TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		example TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT 1,
		sort_order INTEGER NOT NULL DEFAULT 0,
		project_id INTEGER,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
	)`,

	// NULL never equals NULL in a unique index, so global labels are keyed as scope 0
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_labels_scope_value
		ON labels(COALESCE(project_id, 0), value)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_labels_scope_hotkey
		ON labels(COALESCE(project_id, 0), hotkey) WHERE hotkey IS NOT NULL`,
}

// runMigrations creates the database schema if needed
func runMigrations(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d: %w", i+1, err)
		}
	}
	return nil
}
