package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// schema holds the table definitions the server needs.  Timestamps in
// open_datetime/close_datetime are display strings in the app's
// "DD/MM/YYYY HH:MM:SS" layout, matching the public API, so they are
// stored as VARCHAR rather than DATETIME.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS events (
		event_id INT AUTO_INCREMENT PRIMARY KEY,
		event_location VARCHAR(255) NOT NULL,
		event_date VARCHAR(64) NOT NULL,
		meet_location VARCHAR(255) NOT NULL,
		meet_time VARCHAR(64) NOT NULL,
		total_seats INT NOT NULL DEFAULT 0,
		seats_taken INT NOT NULL DEFAULT 0,
		require_member BOOLEAN NOT NULL DEFAULT FALSE,
		open_datetime VARCHAR(32) NOT NULL,
		close_datetime VARCHAR(32) NOT NULL,
		event_status TINYINT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS participants (
		participant_id INT AUTO_INCREMENT PRIMARY KEY,
		event_id INT NOT NULL,
		first_name VARCHAR(128) NOT NULL,
		surname VARCHAR(128) NOT NULL,
		member BOOLEAN NOT NULL DEFAULT FALSE,
		INDEX idx_participants_event (event_id)
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(128) NOT NULL UNIQUE,
		password_hash VARCHAR(128) NOT NULL
	)`,
}

// EnsureSchema creates the application tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
