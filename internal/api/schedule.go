// pattern: Imperative Shell

package api

import (
	"context"
	"errors"
	"net/http"
)

// Schedule validation errors, raised before any network call.
var (
	ErrScheduleNoFlats  = errors.New("no flats selected for this cable")
	ErrScheduleNoWindow = errors.New("date, from and till are all required")
	ErrScheduleNoCable  = errors.New("no cable selected")
)

// ValidateSchedule checks the local preconditions for submission.
func ValidateSchedule(s Schedule) error {
	if s.CableNumber <= 0 {
		return ErrScheduleNoCable
	}
	if s.Date == "" || s.From == "" || s.Till == "" {
		return ErrScheduleNoWindow
	}
	if len(s.Flats) == 0 {
		return ErrScheduleNoFlats
	}
	return nil
}

// SubmitSchedule posts an installation schedule for one building.
// Invalid schedules are rejected locally; nothing reaches the wire.
func (c *Client) SubmitSchedule(ctx context.Context, buildingID string, s Schedule) error {
	if err := ValidateSchedule(s); err != nil {
		return err
	}
	if err := c.do(ctx, http.MethodPost, "/api/schedule/"+buildingID, s, nil); err != nil {
		return err
	}
	c.logger.Info("schedule submitted",
		"building", buildingID, "cable", s.CableNumber, "date", s.Date, "flats", len(s.Flats))
	return nil
}
