package consultation

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusScheduled, StatusConfirmed, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusScheduled, StatusCompleted, false},
		{StatusScheduled, StatusNoShow, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusScheduled, false},
		{StatusNoShow, StatusConfirmed, false},
	}

	for _, tt := range tests {
		c := &Consultation{Status: tt.from}
		if got := c.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCancelRecordsReasonAndActor(t *testing.T) {
	by := uuid.New()
	c := &Consultation{Status: StatusScheduled}

	if err := c.Cancel("patient requested", by); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Status != StatusCancelled {
		t.Errorf("status = %s, want cancelled", c.Status)
	}
	if c.CancelledAt == nil {
		t.Error("CancelledAt not set")
	}
	if c.CancellationReason != "patient requested" {
		t.Errorf("reason = %q", c.CancellationReason)
	}
	if c.CancelledBy == nil || *c.CancelledBy != by {
		t.Error("CancelledBy not set")
	}
}

func TestCancelCompletedConsultationFails(t *testing.T) {
	c := &Consultation{Status: StatusCompleted}
	if err := c.Cancel("too late", uuid.New()); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("error = %v, want ErrInvalidStatusTransition", err)
	}
}

func TestCompleteRequiresConfirmed(t *testing.T) {
	c := &Consultation{Status: StatusScheduled}
	if err := c.Complete(); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("error = %v, want ErrInvalidStatusTransition", err)
	}

	c.Status = StatusConfirmed
	if err := c.Complete(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Status != StatusCompleted || c.CompletedAt == nil {
		t.Error("completion state not recorded")
	}
}

func TestOccupiedFreesSeatOnCancelAndNoShow(t *testing.T) {
	for _, st := range []Status{StatusScheduled, StatusConfirmed, StatusCompleted} {
		c := &Consultation{Status: st}
		if !c.Occupied() {
			t.Errorf("status %s should occupy its slot", st)
		}
	}
	for _, st := range []Status{StatusCancelled, StatusNoShow} {
		c := &Consultation{Status: st}
		if c.Occupied() {
			t.Errorf("status %s should free its slot", st)
		}
	}
}
