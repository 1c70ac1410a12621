package jobs

import (
	"log"
	"time"

	"recircuit-server/services"
)

// CleanupJob purges expired and revoked refresh tokens on a schedule
type CleanupJob struct {
	stopChan chan bool
}

// NewCleanupJob creates a new cleanup job
func NewCleanupJob() *CleanupJob {
	return &CleanupJob{
		stopChan: make(chan bool),
	}
}

// Start begins the cleanup job
func (j *CleanupJob) Start() {
	go j.run()
	log.Println("🚀 Token cleanup job started")
}

// Stop stops the cleanup job
func (j *CleanupJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Token cleanup job stopped")
}

// run executes the cleanup job
func (j *CleanupJob) run() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.cleanupTokens()
		case <-j.stopChan:
			return
		}
	}
}

// cleanupTokens removes expired and revoked refresh tokens
func (j *CleanupJob) cleanupTokens() {
	jwtService := services.NewJWTService()
	if err := jwtService.CleanupExpiredTokens(); err != nil {
		log.Printf("❌ Token cleanup failed: %v", err)
		return
	}
}
