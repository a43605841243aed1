package client

import (
	"context"
	"net/url"

	"lemuel.com/eduspaceadmin/internal/entity"
)

func (c *Client) ListSubjects(ctx context.Context, classID *int) ([]entity.Subject, error) {
	q := url.Values{}
	setInt(q, "class_id", classID)
	var out []entity.Subject
	if err := c.get(ctx, "/subjects/", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetSubject(ctx context.Context, id int) (*entity.Subject, error) {
	var out entity.Subject
	if err := c.get(ctx, "/subjects/"+itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSubject(ctx context.Context, payload any) (*entity.Subject, error) {
	var out entity.Subject
	if err := c.post(ctx, "/subjects/", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSubject(ctx context.Context, id int, payload any) (*entity.Subject, error) {
	var out entity.Subject
	if err := c.put(ctx, "/subjects/"+itoa(id), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSubject(ctx context.Context, id int) error {
	return c.delete(ctx, "/subjects/"+itoa(id))
}
