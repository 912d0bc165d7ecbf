package billing

import (
	"testing"
	"time"
)

func TestWindowFallsBackToLegacyColumns(t *testing.T) {
	canonical := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	legacy := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	s := &Subscription{StartsAt: &canonical, SubscriptionStart: &legacy}
	if got := s.WindowStart(); got == nil || !got.Equal(canonical) {
		t.Fatalf("WindowStart = %v, want canonical %v", got, canonical)
	}

	s = &Subscription{SubscriptionStart: &legacy, SubscriptionEnd: &legacy}
	if got := s.WindowStart(); got == nil || !got.Equal(legacy) {
		t.Fatalf("WindowStart = %v, want legacy %v", got, legacy)
	}
	if got := s.WindowEnd(); got == nil || !got.Equal(legacy) {
		t.Fatalf("WindowEnd = %v, want legacy %v", got, legacy)
	}

	s = &Subscription{}
	if s.WindowStart() != nil || s.WindowEnd() != nil {
		t.Fatalf("empty subscription should have a nil window")
	}
}
