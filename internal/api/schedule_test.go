// pattern: Imperative Shell

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func validSchedule() Schedule {
	return Schedule{
		CableNumber: 7,
		Date:        "2026-09-14",
		From:        "09:00",
		Till:        "12:00",
		Flats:       []string{"f1", "f2"},
	}
}

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Schedule)
		want   error
	}{
		{"valid", func(s *Schedule) {}, nil},
		{"no cable", func(s *Schedule) { s.CableNumber = 0 }, ErrScheduleNoCable},
		{"no date", func(s *Schedule) { s.Date = "" }, ErrScheduleNoWindow},
		{"no from", func(s *Schedule) { s.From = "" }, ErrScheduleNoWindow},
		{"no till", func(s *Schedule) { s.Till = "" }, ErrScheduleNoWindow},
		{"no flats", func(s *Schedule) { s.Flats = nil }, ErrScheduleNoFlats},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSchedule()
			tt.mutate(&s)
			if got := ValidateSchedule(s); !errors.Is(got, tt.want) {
				t.Errorf("ValidateSchedule() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSubmitSchedule_EmptyFlatsRejectedWithoutNetworkCall(t *testing.T) {
	calls := 0
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	s := validSchedule()
	s.Flats = nil
	err := c.SubmitSchedule(context.Background(), "b1", s)

	if !errors.Is(err, ErrScheduleNoFlats) {
		t.Fatalf("expected ErrScheduleNoFlats, got %v", err)
	}
	if calls != 0 {
		t.Errorf("expected no network call, got %d", calls)
	}
}

func TestSubmitSchedule_PostsToScheduleEndpoint(t *testing.T) {
	var gotPath string
	var gotBody Schedule
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	}))

	if err := c.SubmitSchedule(context.Background(), "b1", validSchedule()); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if gotPath != "/api/schedule/b1" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotBody.CableNumber != 7 || len(gotBody.Flats) != 2 {
		t.Errorf("unexpected body: %+v", gotBody)
	}
}
