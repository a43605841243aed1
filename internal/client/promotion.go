package client

import (
	"context"

	"lemuel.com/eduspaceadmin/internal/entity"
)

func (c *Client) PromotionPreview(ctx context.Context) (*entity.PromotionPreview, error) {
	var out entity.PromotionPreview
	if err := c.get(ctx, "/promotion/preview", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type ConfirmPromotionRequest struct {
	ExcludedStudentIDs []int `json:"excluded_student_ids"`
}

func (c *Client) ConfirmPromotion(ctx context.Context, excluded []int) (*entity.PromotionResult, error) {
	if excluded == nil {
		excluded = []int{}
	}
	var out entity.PromotionResult
	if err := c.post(ctx, "/promotion/confirm", ConfirmPromotionRequest{ExcludedStudentIDs: excluded}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PromotionHistory(ctx context.Context) ([]entity.PromotionHistory, error) {
	var out []entity.PromotionHistory
	if err := c.get(ctx, "/promotion/history", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PromotionHistoryDetail(ctx context.Context, id int) (*entity.PromotionDetail, error) {
	var out entity.PromotionDetail
	if err := c.get(ctx, "/promotion/history/"+itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UndoPromotion(ctx context.Context, id int) error {
	return c.post(ctx, "/promotion/history/"+itoa(id)+"/undo", nil, nil)
}
