package client

import (
	"context"
	"net/url"

	"lemuel.com/eduspaceadmin/internal/entity"
)

func logQuery(f entity.LogFilter) url.Values {
	q := url.Values{}
	setPage(q, f.Skip, f.Limit)
	if f.Action != "" {
		q.Set("action", f.Action)
	}
	setInt(q, "user_id", f.UserID)
	return q
}

func (c *Client) LoginLogs(ctx context.Context, f entity.LogFilter) ([]entity.LoginLog, error) {
	var out []entity.LoginLog
	if err := c.get(ctx, "/admin/login-logs", logQuery(f), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ActivityLogs(ctx context.Context, f entity.LogFilter) ([]entity.ActivityLog, error) {
	var out []entity.ActivityLog
	if err := c.get(ctx, "/admin/activity-logs", logQuery(f), &out); err != nil {
		return nil, err
	}
	return out, nil
}
