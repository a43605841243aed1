package client

import (
	"context"
	"net/url"

	"lemuel.com/eduspaceadmin/internal/entity"
)

func userQuery(f entity.UserFilter) url.Values {
	q := url.Values{}
	if f.Role != "" {
		q.Set("role", string(f.Role))
	}
	setInt(q, "region_id", f.RegionID)
	setInt(q, "class_id", f.ClassID)
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	setPage(q, f.Skip, f.Limit)
	return q
}

func (c *Client) ListUsers(ctx context.Context, f entity.UserFilter) ([]entity.User, error) {
	var out []entity.User
	if err := c.get(ctx, "/users/", userQuery(f), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListStudents(ctx context.Context, f entity.UserFilter) ([]entity.Student, error) {
	f.Role = entity.RoleStudent
	var out []entity.Student
	if err := c.get(ctx, "/users/", userQuery(f), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListTeachers(ctx context.Context, f entity.UserFilter) ([]entity.Teacher, error) {
	f.Role = entity.RoleTeacher
	var out []entity.Teacher
	if err := c.get(ctx, "/users/", userQuery(f), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetStudent(ctx context.Context, id int) (*entity.Student, error) {
	var out entity.Student
	if err := c.get(ctx, "/users/"+itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetTeacher(ctx context.Context, id int) (*entity.Teacher, error) {
	var out entity.Teacher
	if err := c.get(ctx, "/users/"+itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int, payload any) (*entity.User, error) {
	var out entity.User
	if err := c.put(ctx, "/users/"+itoa(id), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.delete(ctx, "/users/"+itoa(id))
}

func (c *Client) UploadProfilePicture(ctx context.Context, id int, file File) (*entity.User, error) {
	file.Field = "file"
	var out entity.User
	if err := c.upload(ctx, "POST", "/users/"+itoa(id)+"/profile-picture", nil, []File{file}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
