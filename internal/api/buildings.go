// pattern: Imperative Shell

package api

import (
	"context"
	"net/http"

	"fiberdesk/internal/layout"
)

// Cities lists the top navigation level.
func (c *Client) Cities(ctx context.Context) ([]Place, error) {
	var out []Place
	if err := c.do(ctx, http.MethodGet, "/api/cities", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Areas lists the areas of one city.
func (c *Client) Areas(ctx context.Context, cityID string) ([]Place, error) {
	var out []Place
	if err := c.do(ctx, http.MethodGet, "/api/areas/"+cityID, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Districts lists the districts of one area.
func (c *Client) Districts(ctx context.Context, areaID string) ([]Place, error) {
	var out []Place
	if err := c.do(ctx, http.MethodGet, "/api/districts/"+areaID, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Buildings lists the buildings of one district.
func (c *Client) Buildings(ctx context.Context, districtID string) ([]Building, error) {
	var out []Building
	if err := c.do(ctx, http.MethodGet, "/api/buildings/"+districtID, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBuilding fetches one building record with its flats, layout and
// schedules. Seeds the edit session.
func (c *Client) GetBuilding(ctx context.Context, buildingID string) (Building, error) {
	var out Building
	if err := c.do(ctx, http.MethodGet, "/api/building/"+buildingID, nil, &out); err != nil {
		return Building{}, err
	}
	return out, nil
}

// SaveLayout persists the full block array for one building: a create
// (POST) when no layout existed at page load, an update (PUT)
// otherwise. No automatic retry; the caller keeps local state so the
// user can try again.
func (c *Client) SaveLayout(ctx context.Context, buildingID string, blocks []layout.Block, isNew bool) error {
	method := http.MethodPut
	if isNew {
		method = http.MethodPost
	}
	if err := c.do(ctx, method, "/api/building/layout/"+buildingID, blocks, nil); err != nil {
		return err
	}
	c.logger.Info("layout saved", "building", buildingID, "blocks", len(blocks), "create", isNew)
	return nil
}
