package services

import (
	"database/sql"
	"log"
	"time"

	"darasa-schools/app/database"
)

// StartScheduler starts the background task scheduler
func StartScheduler(db *sql.DB) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Trigger at 00:05, after the date has rolled over
			if now.Hour() == 0 && now.Minute() == 5 {
				log.Println("Triggering scheduled tasks [00:05]...")

				if moved, err := database.AdvanceDiaryStatuses(db); err != nil {
					log.Printf("Error advancing diary statuses: %v", err)
				} else if moved > 0 {
					log.Printf("Moved %d diary activities to Ongoing", moved)
				}

				if removed, err := database.DeleteExpiredSessions(db); err != nil {
					log.Printf("Error cleaning expired sessions: %v", err)
				} else if removed > 0 {
					log.Printf("Removed %d expired sessions", removed)
				}
			}
		}
	}()
}
