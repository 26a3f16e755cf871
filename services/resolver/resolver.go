// Package resolver loads a single record from a path parameter that may be a
// native 24-hex id, a stored slug, or a legacy name-derived value.
package resolver

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrEmptyCandidate is returned before any lookup when the candidate is blank.
	ErrEmptyCandidate = errors.New("empty lookup candidate")
	// ErrNotFound is returned when no lookup step matches. Storage faults during
	// resolution also surface as ErrNotFound so callers never see driver errors
	// on a read path; the fault itself is logged here.
	ErrNotFound = errors.New("record not found")
)

var nativeIDPattern = regexp.MustCompile(`^[a-fA-F0-9]{24}$`)

// IsNativeID reports whether candidate is a 24-character hex identifier.
func IsNativeID(candidate string) bool {
	return nativeIDPattern.MatchString(candidate)
}

// NamePattern builds the anchored pattern used by the legacy name fallback:
// each hyphen in the candidate stands in for one-or-more whitespace characters.
// Matching is done case-insensitively on the database side.
func NamePattern(candidate string) string {
	parts := strings.Split(candidate, "-")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return "^" + strings.Join(parts, `\s+`) + "$"
}

// Publishable is implemented by records gated behind a published flag.
type Publishable interface {
	IsPublished() bool
}

// FindBySlugOrID resolves candidate into dest using a fixed lookup order:
// native id, exact slug, hyphen-to-whitespace name pattern, then raw
// case-insensitive name. The first hit wins; steps are never combined. A
// candidate in native id format never falls through to slug or name lookups.
func FindBySlugOrID(db *gorm.DB, dest interface{}, candidate, nameColumn string) error {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return ErrEmptyCandidate
	}

	if IsNativeID(candidate) {
		err := db.Where("id = ?", candidate).First(dest).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("resolver: id lookup for %q failed: %v", candidate, err)
		}
		return ErrNotFound
	}

	err := db.Where("slug = ?", candidate).First(dest).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("resolver: slug lookup for %q failed: %v", candidate, err)
		return ErrNotFound
	}

	// Legacy fallback for records created before slugs existed.
	err = db.Where(fmt.Sprintf("%s ~* ?", nameColumn), NamePattern(candidate)).First(dest).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("resolver: name pattern lookup for %q failed: %v", candidate, err)
		return ErrNotFound
	}

	err = db.Where(fmt.Sprintf("LOWER(%s) = LOWER(?)", nameColumn), candidate).First(dest).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("resolver: name lookup for %q failed: %v", candidate, err)
	}
	return ErrNotFound
}

// FindPublished resolves candidate like FindBySlugOrID, then hides records
// whose published flag is false. The gate is applied after resolution, so an
// unpublished record is reported as not found rather than skipped over.
func FindPublished(db *gorm.DB, dest interface{}, candidate, nameColumn string) error {
	if err := FindBySlugOrID(db, dest, candidate, nameColumn); err != nil {
		return err
	}
	if p, ok := dest.(Publishable); ok && !p.IsPublished() {
		return ErrNotFound
	}
	return nil
}
