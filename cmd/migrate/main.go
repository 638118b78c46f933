package main

import (
	"log"
	"os"

	"spacenotes-be/internal/model"
	"spacenotes-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models (The Core Task)
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.User{},
		&model.Session{},
		&model.Space{},
		&model.SpaceMember{},
		&model.SpaceSequence{},
		&model.Note{},
		&model.Attachment{},
	}

	// Migrate strictly
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: Foreign Keys
	// Natural keys are the primary keys, so renames reach child tables.
	// The application renames parents first inside one transaction and the
	// ON UPDATE CASCADE clauses keep the structural references consistent
	// even if a child rewrite is skipped; JSON payload references are
	// rewritten by the application, not the database.
	log.Println("Step 3: Creating Foreign Keys...")

	postMigrationSQL := []string{
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_sessions_user') THEN
		   ALTER TABLE sessions ADD CONSTRAINT fk_sessions_user
		     FOREIGN KEY (username) REFERENCES users (username)
		     ON UPDATE CASCADE ON DELETE CASCADE;
		 END IF; END $$;`,

		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_space_members_space') THEN
		   ALTER TABLE space_members ADD CONSTRAINT fk_space_members_space
		     FOREIGN KEY (space_slug) REFERENCES spaces (slug)
		     ON UPDATE CASCADE ON DELETE CASCADE;
		 END IF; END $$;`,

		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_space_members_user') THEN
		   ALTER TABLE space_members ADD CONSTRAINT fk_space_members_user
		     FOREIGN KEY (username) REFERENCES users (username)
		     ON UPDATE CASCADE ON DELETE RESTRICT;
		 END IF; END $$;`,

		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_space_sequences_space') THEN
		   ALTER TABLE space_sequences ADD CONSTRAINT fk_space_sequences_space
		     FOREIGN KEY (space_slug) REFERENCES spaces (slug)
		     ON UPDATE CASCADE ON DELETE CASCADE;
		 END IF; END $$;`,

		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_notes_space') THEN
		   ALTER TABLE notes ADD CONSTRAINT fk_notes_space
		     FOREIGN KEY (space_slug) REFERENCES spaces (slug)
		     ON UPDATE CASCADE ON DELETE CASCADE;
		 END IF; END $$;`,

		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_notes_creator') THEN
		   ALTER TABLE notes ADD CONSTRAINT fk_notes_creator
		     FOREIGN KEY (created_by) REFERENCES users (username)
		     ON UPDATE CASCADE ON DELETE RESTRICT;
		 END IF; END $$;`,

		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_attachments_space') THEN
		   ALTER TABLE attachments ADD CONSTRAINT fk_attachments_space
		     FOREIGN KEY (space_slug) REFERENCES spaces (slug)
		     ON UPDATE CASCADE ON DELETE CASCADE;
		 END IF; END $$;`,

		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_attachments_uploader') THEN
		   ALTER TABLE attachments ADD CONSTRAINT fk_attachments_uploader
		     FOREIGN KEY (uploaded_by) REFERENCES users (username)
		     ON UPDATE CASCADE ON DELETE RESTRICT;
		 END IF; END $$;`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("Success: Database migration completed successfully via GORM.")
}
