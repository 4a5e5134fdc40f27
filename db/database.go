package db

import (
	"database/sql"
	"fmt"
	"log"

	"flamtunes/config"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

var DB *sql.DB

// ConnectDB establishes a connection to the database.
func ConnectDB(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	var err error
	DB, err = sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if err = DB.Ping(); err != nil {
		DB.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Successfully connected to the database.")
	return nil
}

// InitDB creates the tables owned by the raw SQL repositories. The GORM-backed
// tables (shows, ai_hosts, requests, now_playing_history) are migrated
// separately via AutoMigrateModels.
func InitDB() error {
	if err := createUsersTable(); err != nil {
		return err
	}
	if err := createArtistProfilesTable(); err != nil {
		return err
	}
	if err := createTracksTable(); err != nil {
		return err
	}
	if err := createSubmissionsTable(); err != nil {
		return err
	}

	log.Println("Database initialization completed.")
	return nil
}

func createUsersTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	);
	`
	if _, err := DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	return nil
}

func createArtistProfilesTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS artist_profiles (
		id INT AUTO_INCREMENT PRIMARY KEY,
		user_id INT NOT NULL UNIQUE,
		artist_name VARCHAR(255) NOT NULL,
		contact_name VARCHAR(255) NOT NULL,
		contact_phone VARCHAR(50),
		bio TEXT,
		website VARCHAR(500),
		is_verified BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		CONSTRAINT fk_profile_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);
	`
	if _, err := DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create artist_profiles table: %w", err)
	}
	return nil
}

func createTracksTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS tracks (
		id INT AUTO_INCREMENT PRIMARY KEY,
		storage_path VARCHAR(767) NOT NULL UNIQUE,
		title VARCHAR(255),
		artist VARCHAR(255),
		genre VARCHAR(100),
		bpm INT,
		mood_tags JSON,
		is_jingle BOOLEAN NOT NULL DEFAULT FALSE,
		is_bed_music BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create tracks table: %w", err)
	}
	return nil
}

func createSubmissionsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS artist_submissions (
		id INT AUTO_INCREMENT PRIMARY KEY,
		artist_profile_id INT,
		artist_name VARCHAR(255) NOT NULL,
		contact_name VARCHAR(255) NOT NULL,
		contact_email VARCHAR(255) NOT NULL,
		contact_phone VARCHAR(50),
		track_title VARCHAR(255) NOT NULL,
		genre VARCHAR(100),
		release_date DATE NOT NULL,
		bpm INT,
		mood_tags JSON,
		storage_path VARCHAR(767) NOT NULL,
		file_name VARCHAR(500) NOT NULL,
		file_size BIGINT NOT NULL DEFAULT 0,
		ownership_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
		permission_granted BOOLEAN NOT NULL DEFAULT FALSE,
		rights_holder_name VARCHAR(255),
		additional_info TEXT,
		status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
		reviewed_at TIMESTAMP NULL,
		reviewed_by VARCHAR(255),
		admin_notes TEXT,
		approved_track_id INT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_submission_profile FOREIGN KEY (artist_profile_id) REFERENCES artist_profiles(id) ON DELETE SET NULL,
		CONSTRAINT fk_submission_track FOREIGN KEY (approved_track_id) REFERENCES tracks(id)
	);
	`
	if _, err := DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create artist_submissions table: %w", err)
	}
	return nil
}
