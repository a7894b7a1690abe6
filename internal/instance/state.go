// pattern: Imperative Shell

package instance

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const stateFileName = "fiberdesk.state"

// NavState is where the user left off: the selected place path and the
// list scroll position. Names ride along so the breadcrumb can be
// rebuilt without refetching parent levels. Best-effort persistence —
// a missing or broken file just means starting at the city list.
type NavState struct {
	CityID       string `json:"cityId,omitempty"`
	CityName     string `json:"cityName,omitempty"`
	AreaID       string `json:"areaId,omitempty"`
	AreaName     string `json:"areaName,omitempty"`
	DistrictID   string `json:"districtId,omitempty"`
	DistrictName string `json:"districtName,omitempty"`
	ListIndex    int    `json:"listIndex,omitempty"`
}

// SaveNavState writes the navigation state to the data directory.
func SaveNavState(dataDir string, state NavState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dataDir, stateFileName), data, 0600)
}

// LoadNavState reads the persisted navigation state. Any failure
// yields the zero state.
func LoadNavState(dataDir string) NavState {
	data, err := os.ReadFile(filepath.Join(dataDir, stateFileName))
	if err != nil {
		return NavState{}
	}
	var state NavState
	if err := json.Unmarshal(data, &state); err != nil {
		return NavState{}
	}
	return state
}

// ClearNavState removes the persisted state, used on logout.
func ClearNavState(dataDir string) {
	_ = os.Remove(filepath.Join(dataDir, stateFileName))
}
