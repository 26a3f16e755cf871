package cron

import (
	"log"
	"time"

	"github.com/careerhq/careerhq-api/model"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron *cron.Cron
	db   *gorm.DB
}

// NewCronManager creates a new cron manager
func NewCronManager(db *gorm.DB) *CronManager {
	return &CronManager{
		cron: cron.New(),
		db:   db,
	}
}

// Start registers all jobs and starts the scheduler
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs and waits for running ones to finish
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

func (m *CronManager) registerJobs() error {
	// Nightly at 3 AM: derive slugs for records created before slugs existed
	_, err := m.cron.AddFunc("0 3 * * *", func() {
		m.runLogged("backfill_slugs", m.BackfillSlugs)
	})
	if err != nil {
		return err
	}

	// Daily at 4 AM: purge closed leads past retention
	_, err = m.cron.AddFunc("0 4 * * *", func() {
		m.runLogged("purge_closed_leads", m.PurgeClosedLeads)
	})
	if err != nil {
		return err
	}

	// Hourly: drop expired entries from the token blacklist
	_, err = m.cron.AddFunc("0 * * * *", func() {
		m.runLogged("cleanup_token_blacklist", m.CleanupTokenBlacklist)
	})
	return err
}

// runLogged runs a job and records its outcome in cron_job_logs
func (m *CronManager) runLogged(name string, job func() (string, error)) {
	start := time.Now()
	message, err := job()

	entry := model.CronJobLog{
		JobName:    name,
		Status:     model.CronJobStatusSuccess,
		Message:    message,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		entry.Status = model.CronJobStatusFailed
		entry.Message = err.Error()
		log.Printf("cron: job %s failed: %v", name, err)
	}

	if dbErr := m.db.Create(&entry).Error; dbErr != nil {
		log.Printf("cron: failed to record run of %s: %v", name, dbErr)
	}
}
