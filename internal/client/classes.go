package client

import (
	"context"
	"net/url"

	"lemuel.com/eduspaceadmin/internal/entity"
)

func (c *Client) ListRegions(ctx context.Context) ([]entity.Region, error) {
	var out []entity.Region
	if err := c.get(ctx, "/regions/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListClasses lists every class, or only the classes of regionID when set.
func (c *Client) ListClasses(ctx context.Context, regionID *int) ([]entity.Class, error) {
	q := url.Values{}
	setInt(q, "region_id", regionID)
	var out []entity.Class
	if err := c.get(ctx, "/classes/", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetClass(ctx context.Context, id int) (*entity.Class, error) {
	var out entity.Class
	if err := c.get(ctx, "/classes/"+itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateClass(ctx context.Context, payload any) (*entity.Class, error) {
	var out entity.Class
	if err := c.post(ctx, "/classes/", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateClass(ctx context.Context, id int, payload any) (*entity.Class, error) {
	var out entity.Class
	if err := c.put(ctx, "/classes/"+itoa(id), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteClass(ctx context.Context, id int) error {
	return c.delete(ctx, "/classes/"+itoa(id))
}
