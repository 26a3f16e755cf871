package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/careerhq/careerhq-api/model"
	"github.com/careerhq/careerhq-api/utils/auth"
	"github.com/careerhq/careerhq-api/utils/slug"
)

// closedLeadRetention is how long closed leads are kept before purging.
const closedLeadRetention = 180 * 24 * time.Hour

// BackfillSlugs derives slugs for records that predate slug support. Slugs are
// authoritative for lookup once present, so this shrinks the set of records
// still served by the legacy name-matching fallback.
func (m *CronManager) BackfillSlugs() (string, error) {
	total := 0

	var countries []model.Country
	if err := m.db.Where("slug = '' OR slug IS NULL").Find(&countries).Error; err != nil {
		return "", err
	}
	for _, c := range countries {
		if s := slug.Make(c.Name); s != "" {
			if err := m.db.Model(&c).Update("slug", s).Error; err != nil {
				return "", err
			}
			total++
		}
	}

	var universities []model.University
	if err := m.db.Where("slug = '' OR slug IS NULL").Find(&universities).Error; err != nil {
		return "", err
	}
	for _, u := range universities {
		if s := slug.Make(u.Name); s != "" {
			if err := m.db.Model(&u).Update("slug", s).Error; err != nil {
				return "", err
			}
			total++
		}
	}

	var courses []model.Course
	if err := m.db.Where("slug = '' OR slug IS NULL").Find(&courses).Error; err != nil {
		return "", err
	}
	for _, c := range courses {
		if s := slug.Make(c.ProgramName); s != "" {
			if err := m.db.Model(&c).Update("slug", s).Error; err != nil {
				return "", err
			}
			total++
		}
	}

	var posts []model.BlogPost
	if err := m.db.Where("slug = '' OR slug IS NULL").Find(&posts).Error; err != nil {
		return "", err
	}
	for _, p := range posts {
		if s := slug.Make(p.Title); s != "" {
			if err := m.db.Model(&p).Update("slug", s).Error; err != nil {
				return "", err
			}
			total++
		}
	}

	return fmt.Sprintf("backfilled %d slugs", total), nil
}

// PurgeClosedLeads soft-deletes closed leads older than the retention window
func (m *CronManager) PurgeClosedLeads() (string, error) {
	cutoff := time.Now().Add(-closedLeadRetention)

	result := m.db.Where("status = ? AND updated_at < ?", model.LeadStatusClosed, cutoff).
		Delete(&model.Lead{})
	if result.Error != nil {
		return "", result.Error
	}

	return fmt.Sprintf("purged %d closed leads", result.RowsAffected), nil
}

// CleanupTokenBlacklist drops blacklist entries whose tokens have expired anyway
func (m *CronManager) CleanupTokenBlacklist() (string, error) {
	blacklist := auth.NewBlacklistService(m.db)
	if err := blacklist.CleanupExpiredTokens(context.Background()); err != nil {
		return "", err
	}
	return "expired blacklist entries removed", nil
}
