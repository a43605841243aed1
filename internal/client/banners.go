package client

import (
	"context"

	"lemuel.com/eduspaceadmin/internal/entity"
)

func (c *Client) ListBanners(ctx context.Context) ([]entity.Banner, error) {
	var out []entity.Banner
	if err := c.get(ctx, "/banners/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateBanner posts the banner fields with its image as multipart.
func (c *Client) CreateBanner(ctx context.Context, fields map[string]string, image File) (*entity.Banner, error) {
	image.Field = "image"
	var out entity.Banner
	if err := c.upload(ctx, "POST", "/banners/", fields, []File{image}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBanner keeps the stored image when image has no reader.
func (c *Client) UpdateBanner(ctx context.Context, id int, fields map[string]string, image File) (*entity.Banner, error) {
	image.Field = "image"
	var out entity.Banner
	if err := c.upload(ctx, "PUT", "/banners/"+itoa(id), fields, []File{image}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteBanner(ctx context.Context, id int) error {
	return c.delete(ctx, "/banners/"+itoa(id))
}
