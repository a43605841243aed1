package client

import (
	"context"

	"lemuel.com/eduspaceadmin/internal/entity"
)

func (c *Client) ListAcademicYears(ctx context.Context) ([]entity.AcademicYear, error) {
	var out []entity.AcademicYear
	if err := c.get(ctx, "/academic-years/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAcademicYear(ctx context.Context, payload any) (*entity.AcademicYear, error) {
	var out entity.AcademicYear
	if err := c.post(ctx, "/academic-years/", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAcademicYear(ctx context.Context, id int, payload any) (*entity.AcademicYear, error) {
	var out entity.AcademicYear
	if err := c.put(ctx, "/academic-years/"+itoa(id), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAcademicYear(ctx context.Context, id int) error {
	return c.delete(ctx, "/academic-years/"+itoa(id))
}

func (c *Client) SetCurrentAcademicYear(ctx context.Context, id int) (*entity.AcademicYear, error) {
	var out entity.AcademicYear
	if err := c.post(ctx, "/academic-years/"+itoa(id)+"/set-current", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type SnapshotResult struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// SnapshotAcademicYear records every user's current placement as history of yearID.
func (c *Client) SnapshotAcademicYear(ctx context.Context, yearID int) (*SnapshotResult, error) {
	var out SnapshotResult
	if err := c.post(ctx, "/academic-years/snapshot", map[string]int{"academic_year_id": yearID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyYearHistory lists the placement history of the authenticated user.
func (c *Client) MyYearHistory(ctx context.Context) ([]entity.UserYearHistory, error) {
	var out []entity.UserYearHistory
	if err := c.get(ctx, "/academic-years/my-history", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
