package models

import (
	"testing"
	"time"
)

func TestIsValidStatus(t *testing.T) {
	for _, status := range []string{StatusPending, StatusUnderReview, StatusApproved, StatusRejected} {
		if !IsValidStatus(status) {
			t.Errorf("IsValidStatus(%q) = false, want true", status)
		}
	}
	for _, status := range []string{"", "PENDING", "archived", "under review"} {
		if IsValidStatus(status) {
			t.Errorf("IsValidStatus(%q) = true, want false", status)
		}
	}
}

func TestIsValidApplicationType(t *testing.T) {
	if !IsValidApplicationType(ApplicationTypeMember) || !IsValidApplicationType(ApplicationTypeScholarship) {
		t.Error("known types rejected")
	}
	if IsValidApplicationType("volunteer") || IsValidApplicationType("") {
		t.Error("unknown type accepted")
	}
}

func TestListingAcceptsApplications(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name    string
		listing Listing
		want    bool
	}{
		{"open no deadline", Listing{IsOpen: true}, true},
		{"open future deadline", Listing{IsOpen: true, Deadline: &future}, true},
		{"open past deadline", Listing{IsOpen: true, Deadline: &past}, false},
		{"closed", Listing{IsOpen: false, Deadline: &future}, false},
	}
	for _, tt := range tests {
		if got := tt.listing.AcceptsApplications(now); got != tt.want {
			t.Errorf("%s: AcceptsApplications = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, status := range []string{OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusCancelled} {
		if !IsValidOrderStatus(status) {
			t.Errorf("IsValidOrderStatus(%q) = false, want true", status)
		}
	}
	if IsValidOrderStatus("refunded") {
		t.Error("unknown order status accepted")
	}
}

func TestAttachmentFileSizeInMB(t *testing.T) {
	a := ApplicationAttachment{FileSize: 5 * 1024 * 1024}
	if got := a.GetFileSizeInMB(); got != 5.0 {
		t.Errorf("GetFileSizeInMB = %v, want 5.0", got)
	}
}
