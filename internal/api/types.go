// pattern: Functional Core

package api

import "fiberdesk/internal/layout"

// Place is one node of the city → area → district navigation tree.
// The backend returns the same shape at every level.
type Place struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Flat is one apartment unit of a building. Immutable from the
// editor's perspective; floors reference it by id only.
type Flat struct {
	ID         string `json:"_id"`
	Adres      string `json:"adres"`
	HuisNummer string `json:"huisNummer"`
	Toevoeging string `json:"toevoeging,omitempty"`
}

// Display returns the flat's human-readable address line.
func (f Flat) Display() string {
	s := f.Adres + " " + f.HuisNummer
	if f.Toevoeging != "" {
		s += " " + f.Toevoeging
	}
	return s
}

// BuildingLayout wraps the persisted block array.
type BuildingLayout struct {
	Blocks []layout.Block `json:"blocks"`
}

// Building is the backend's building record. The editor holds a local
// copy that may diverge until explicitly saved.
type Building struct {
	ID        string          `json:"_id"`
	Adres     string          `json:"adres"`
	Plaats    string          `json:"plaats,omitempty"`
	Flats     []Flat          `json:"flats"`
	Layout    *BuildingLayout `json:"layout,omitempty"`
	Schedules []Schedule      `json:"schedules,omitempty"`
}

// Schedule is an installation window for one cable's flats.
// Constructed once and submitted, never mutated.
type Schedule struct {
	CableNumber int      `json:"cableNumber"`
	Date        string   `json:"date"`
	From        string   `json:"from"`
	Till        string   `json:"till"`
	Flats       []string `json:"flats"`
}

// User is a backend account visible to administrators.
type User struct {
	ID    string   `json:"_id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// CreateUserRequest is the admin user-creation payload. Validated
// locally before any network call.
type CreateUserRequest struct {
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
	Roles    []string `json:"roles" validate:"required,min=1"`
}

// loginResponse is the backend's answer to POST /api/auth.
type loginResponse struct {
	AccessToken string `json:"accessToken"`
}

// errorBody is the error shape the backend uses across endpoints.
type errorBody struct {
	Message string `json:"message"`
}
