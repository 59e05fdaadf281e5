package database

import (
	"database/sql"
	"log"
)

// RunMigrations checks and applies necessary schema updates. The base
// schema comes from schema.sql (cmd/migrate); these guards cover columns
// and constraints added after deployments already existed.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	if err := addDiaryViewsColumn(db); err != nil {
		return err
	}
	if err := addPaymentReferenceColumn(db); err != nil {
		return err
	}
	if err := addCodeUniqueConstraints(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func addDiaryViewsColumn(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1
				FROM information_schema.columns
				WHERE table_name = 'school_diary'
				AND column_name = 'views'
			) THEN
				ALTER TABLE school_diary ADD COLUMN views INTEGER NOT NULL DEFAULT 0;
			END IF;
		END $$;
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to run migration for school_diary.views: %v", err)
		return err
	}
	return nil
}

func addPaymentReferenceColumn(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1
				FROM information_schema.columns
				WHERE table_name = 'student_payments'
				AND column_name = 'reference'
			) THEN
				ALTER TABLE student_payments ADD COLUMN reference VARCHAR(100);
			END IF;
		END $$;
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to run migration for student_payments.reference: %v", err)
		return err
	}
	return nil
}

// Question and paper codes must be unique per school; the sequence table
// makes duplicates impossible going forward, the constraints make them
// impossible full stop.
func addCodeUniqueConstraints(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_indexes WHERE indexname = 'questions_bank_school_code_idx'
			) THEN
				CREATE UNIQUE INDEX questions_bank_school_code_idx ON questions_bank (school_id, code);
			END IF;
			IF NOT EXISTS (
				SELECT 1 FROM pg_indexes WHERE indexname = 'exam_papers_school_code_idx'
			) THEN
				CREATE UNIQUE INDEX exam_papers_school_code_idx ON exam_papers (school_id, code);
			END IF;
		END $$;
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to run migration for code unique indexes: %v", err)
		return err
	}
	return nil
}
