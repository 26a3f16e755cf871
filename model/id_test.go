package model

import (
	"regexp"
	"testing"
)

var idFormat = regexp.MustCompile(`^[a-f0-9]{24}$`)

func TestNewIDFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := NewID()
		if !idFormat.MatchString(id) {
			t.Fatalf("NewID() = %q, want 24 lowercase hex characters", id)
		}
	}
}

func TestNewIDUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("NewID() produced duplicate %q", id)
		}
		seen[id] = true
	}
}

func TestIsValidStudyLevel(t *testing.T) {
	for _, level := range StudyLevels {
		if !IsValidStudyLevel(level) {
			t.Errorf("IsValidStudyLevel(%q) = false, want true", level)
		}
	}

	for _, level := range []string{"", "Bachelors", "undergraduate", "PhD"} {
		if IsValidStudyLevel(level) {
			t.Errorf("IsValidStudyLevel(%q) = true, want false", level)
		}
	}
}

func TestIsValidLeadStatus(t *testing.T) {
	for _, status := range LeadStatuses {
		if !IsValidLeadStatus(status) {
			t.Errorf("IsValidLeadStatus(%q) = false, want true", status)
		}
	}

	for _, status := range []string{"", "open", "New", "won"} {
		if IsValidLeadStatus(status) {
			t.Errorf("IsValidLeadStatus(%q) = true, want false", status)
		}
	}
}
