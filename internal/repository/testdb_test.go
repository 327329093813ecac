package repository

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	// Create tables for SQLite compatibility
	db.Exec(`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		profile_picture TEXT DEFAULT '',
		avatar TEXT DEFAULT 'US',
		google_id TEXT
	)`)
	db.Exec(`CREATE TABLE boards (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		title TEXT NOT NULL,
		owner_id TEXT NOT NULL
	)`)
	db.Exec(`CREATE TABLE board_members (
		id TEXT PRIMARY KEY,
		board_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'viewer',
		joined_at DATETIME NOT NULL,
		UNIQUE(board_id, user_id)
	)`)
	db.Exec(`CREATE TABLE tasks (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		board_id TEXT NOT NULL,
		content TEXT NOT NULL,
		description TEXT DEFAULT '',
		status TEXT NOT NULL DEFAULT 'col-1',
		priority TEXT NOT NULL DEFAULT 'Medium',
		deadline DATETIME,
		tag TEXT DEFAULT 'General',
		assignee TEXT DEFAULT 'Unassigned',
		assigned_to TEXT,
		position INTEGER NOT NULL DEFAULT 0
	)`)
	db.Exec(`CREATE TABLE notifications (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		board_id TEXT NOT NULL,
		message TEXT NOT NULL,
		is_read INTEGER NOT NULL DEFAULT 0,
		metadata TEXT,
		created_at DATETIME NOT NULL
	)`)

	return db
}
