package client

import (
	"context"

	"lemuel.com/eduspaceadmin/internal/entity"
)

func (c *Client) ListSessions(ctx context.Context) ([]entity.ClassSession, error) {
	var out []entity.ClassSession
	if err := c.get(ctx, "/sessions/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListSessionsBySubject(ctx context.Context, subjectID int) ([]entity.ClassSession, error) {
	var out []entity.ClassSession
	if err := c.get(ctx, "/sessions/subject/"+itoa(subjectID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSession(ctx context.Context, payload any) (*entity.ClassSession, error) {
	var out entity.ClassSession
	if err := c.post(ctx, "/sessions/", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSession(ctx context.Context, id int, payload any) (*entity.ClassSession, error) {
	var out entity.ClassSession
	if err := c.put(ctx, "/sessions/"+itoa(id), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSession(ctx context.Context, id int) error {
	return c.delete(ctx, "/sessions/"+itoa(id))
}

func (c *Client) ListAttachments(ctx context.Context, sessionID int) ([]entity.Attachment, error) {
	var out []entity.Attachment
	if err := c.get(ctx, "/sessions/"+itoa(sessionID)+"/attachments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAttachment(ctx context.Context, sessionID int, name string, kind entity.AttachmentType, file File) (*entity.Attachment, error) {
	file.Field = "file"
	fields := map[string]string{"name": name, "type": string(kind)}
	var out entity.Attachment
	if err := c.upload(ctx, "POST", "/sessions/"+itoa(sessionID)+"/attachments", fields, []File{file}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAttachment(ctx context.Context, id int) error {
	return c.delete(ctx, "/attachments/"+itoa(id))
}

func (c *Client) ListSubmissions(ctx context.Context, sessionID int) ([]entity.Submission, error) {
	var out []entity.Submission
	if err := c.get(ctx, "/submissions/session/"+itoa(sessionID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UploadSubmission(ctx context.Context, sessionID int, file File) (*entity.Submission, error) {
	file.Field = "file"
	var out entity.Submission
	if err := c.upload(ctx, "POST", "/submissions/session/"+itoa(sessionID), nil, []File{file}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type GradeRequest struct {
	Grade    float64 `json:"grade"`
	Feedback string  `json:"feedback,omitempty"`
}

func (c *Client) GradeSubmission(ctx context.Context, id int, req GradeRequest) (*entity.Submission, error) {
	var out entity.Submission
	if err := c.put(ctx, "/submissions/"+itoa(id)+"/grade", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
