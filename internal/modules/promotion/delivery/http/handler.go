package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"lemuel.com/eduspaceadmin/internal/middleware"
	"lemuel.com/eduspaceadmin/internal/modules/promotion"
	promotionService "lemuel.com/eduspaceadmin/internal/modules/promotion/service"
	"lemuel.com/eduspaceadmin/internal/session"
	"lemuel.com/eduspaceadmin/pkg/response"
)

type PromotionHandler struct {
	service promotionService.PromotionService
}

func NewPromotionHandler(service promotionService.PromotionService) *PromotionHandler {
	return &PromotionHandler{service: service}
}

type stepFunc func(ctx context.Context, s *session.Session) (promotion.View, error)

// step runs one wizard action. A failed action still answers with the wizard,
// which carries the inline error.
func (h *PromotionHandler) step(c *gin.Context, fn stepFunc) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	view, err := fn(c.Request.Context(), sess)
	if err != nil {
		response.ResponseErrorWith(c, err, gin.H{"wizard": view})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *PromotionHandler) Wizard(c *gin.Context) {
	var search *string
	if q, ok := c.GetQuery("q"); ok {
		search = &q
	}
	h.step(c, func(ctx context.Context, s *session.Session) (promotion.View, error) {
		return h.service.Wizard(ctx, s, search)
	})
}

func (h *PromotionHandler) Start(c *gin.Context) {
	h.step(c, h.service.Start)
}

func (h *PromotionHandler) Preview(c *gin.Context) {
	h.step(c, h.service.Preview)
}

func (h *PromotionHandler) Back(c *gin.Context) {
	h.step(c, h.service.Back)
}

func (h *PromotionHandler) ToggleExclusion(c *gin.Context) {
	studentID, err := response.ParamID(c, "student_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	h.step(c, func(ctx context.Context, s *session.Session) (promotion.View, error) {
		return h.service.ToggleExclusion(ctx, s, studentID)
	})
}

func (h *PromotionHandler) Confirm(c *gin.Context) {
	h.step(c, h.service.Confirm)
}

func (h *PromotionHandler) Close(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Close(c.Request.Context(), sess); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, promotion.View{Promoted: []promotion.CandidateRow{}, Graduated: []promotion.CandidateRow{}, Excluded: []int{}})
}

func (h *PromotionHandler) History(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	history, err := h.service.History(c.Request.Context(), sess)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, history.Items)
}

func (h *PromotionHandler) HistoryDetail(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	id, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	detail, err := h.service.HistoryDetail(c.Request.Context(), sess, id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *PromotionHandler) Undo(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	id, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	history, err := h.service.Undo(c.Request.Context(), sess, id, response.Confirmed(c))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, history.Items)
}

func (h *PromotionHandler) CollapseDetail(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	id, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	history, err := h.service.CollapseDetail(c.Request.Context(), sess, id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "promotion detail collapsed", "expanded": history.ExpandedIDs()})
}
