package client

import (
	"context"

	"lemuel.com/eduspaceadmin/internal/entity"
)

func (c *Client) ListNotifications(ctx context.Context) ([]entity.Notification, error) {
	var out []entity.Notification
	if err := c.get(ctx, "/notifications/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateNotification(ctx context.Context, payload any) (*entity.Notification, error) {
	var out entity.Notification
	if err := c.post(ctx, "/notifications/", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateNotification(ctx context.Context, id int, payload any) (*entity.Notification, error) {
	var out entity.Notification
	if err := c.put(ctx, "/notifications/"+itoa(id), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteNotification(ctx context.Context, id int) error {
	return c.delete(ctx, "/notifications/"+itoa(id))
}

type ImageUpload struct {
	URL string `json:"url"`
}

func (c *Client) UploadNotificationImage(ctx context.Context, file File) (string, error) {
	file.Field = "file"
	var out ImageUpload
	if err := c.upload(ctx, "POST", "/notifications/upload-image", nil, []File{file}, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

func (c *Client) AssignNotification(ctx context.Context, id int, userIDs []int) error {
	return c.post(ctx, "/notifications/"+itoa(id)+"/assign", map[string][]int{"user_ids": userIDs}, nil)
}

// AssignNotificationByRole fans out to every user of role; role "all" reaches everyone.
func (c *Client) AssignNotificationByRole(ctx context.Context, id int, role string) error {
	return c.post(ctx, "/notifications/"+itoa(id)+"/assign-by-role", map[string]string{"role": role}, nil)
}

func (c *Client) AssignNotificationByRegion(ctx context.Context, id, regionID int) error {
	return c.post(ctx, "/notifications/"+itoa(id)+"/assign-by-region", map[string]int{"region_id": regionID}, nil)
}

func (c *Client) AssignNotificationByClass(ctx context.Context, id, classID int) error {
	return c.post(ctx, "/notifications/"+itoa(id)+"/assign-by-class", map[string]int{"class_id": classID}, nil)
}
