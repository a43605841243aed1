package client

import (
	"context"
	"net/url"

	"lemuel.com/eduspaceadmin/internal/entity"
)

func (c *Client) ListEnrollments(ctx context.Context, studentID, subjectID *int) ([]entity.Enrollment, error) {
	q := url.Values{}
	setInt(q, "student_id", studentID)
	setInt(q, "subject_id", subjectID)
	var out []entity.Enrollment
	if err := c.get(ctx, "/enrollments/", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateEnrollment(ctx context.Context, payload any) (*entity.Enrollment, error) {
	var out entity.Enrollment
	if err := c.post(ctx, "/enrollments/", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteEnrollment(ctx context.Context, id int) error {
	return c.delete(ctx, "/enrollments/"+itoa(id))
}

func (c *Client) ListTeacherSubjects(ctx context.Context, teacherID *int) ([]entity.TeacherSubject, error) {
	q := url.Values{}
	setInt(q, "teacher_id", teacherID)
	var out []entity.TeacherSubject
	if err := c.get(ctx, "/teacher-subjects/", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AssignTeacherSubject(ctx context.Context, payload any) (*entity.TeacherSubject, error) {
	var out entity.TeacherSubject
	if err := c.post(ctx, "/teacher-subjects/", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UnassignTeacherSubject(ctx context.Context, id int) error {
	return c.delete(ctx, "/teacher-subjects/"+itoa(id))
}
