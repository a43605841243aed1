package dto

import (
	"fmt"

	"lemuel.com/eduspaceadmin/internal/entity"
)

// MaxNominal is the exclusive upper bound of a payment amount.
const MaxNominal = 100_000_000

type Recipients struct {
	Mode     entity.RecipientMode `json:"mode" validate:"omitempty,oneof=none all region class specific"`
	RegionID *int                 `json:"region_id,omitempty" validate:"omitempty,gt=0"`
	ClassID  *int                 `json:"class_id,omitempty" validate:"omitempty,gt=0"`
	UserIDs  []int                `json:"user_ids,omitempty" validate:"omitempty,dive,gt=0"`
}

type NotificationInput struct {
	Title       string                  `json:"title" validate:"required,notblank,max=200"`
	Description string                  `json:"description" validate:"required,notblank"`
	Type        entity.NotificationType `json:"type" validate:"required,oneof=general announcement assignment event payment"`
	Nominal     *float64                `json:"nominal,omitempty"`
	Date        string                  `json:"date" validate:"required,isodate"`
	IsScheduled bool                    `json:"is_scheduled"`
	Image       *string                 `json:"image,omitempty" validate:"omitempty,url"`
	Recipients  Recipients              `json:"recipients"`
}

// ValidateFields covers the rules that depend on other fields: the payment
// amount and the target each recipient mode needs.
func (in NotificationInput) ValidateFields() map[string]string {
	fields := map[string]string{}

	if in.Type == entity.NotificationPayment {
		switch {
		case in.Nominal == nil:
			fields["nominal"] = "nominal is required for payment notifications"
		case *in.Nominal < 0:
			fields["nominal"] = "nominal must be 0 or greater"
		case *in.Nominal >= MaxNominal:
			fields["nominal"] = fmt.Sprintf("nominal must be less than %d", MaxNominal)
		}
	}

	switch in.Recipients.Mode {
	case entity.RecipientRegion:
		if in.Recipients.RegionID == nil {
			fields["region_id"] = "select a region"
		}
	case entity.RecipientClass:
		if in.Recipients.ClassID == nil {
			fields["class_id"] = "select a class"
		}
	case entity.RecipientSpecific:
		if len(in.Recipients.UserIDs) == 0 {
			fields["user_ids"] = "select at least one user"
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

// NotificationPayload is the body stored by the backend.
type NotificationPayload struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Type        entity.NotificationType `json:"type"`
	Nominal     *float64                `json:"nominal"`
	Date        string                  `json:"date"`
	IsScheduled bool                    `json:"is_scheduled"`
	Image       *string                 `json:"image,omitempty"`
}

// Payload drops the nominal for anything but payments.
func (in NotificationInput) Payload(description string) NotificationPayload {
	p := NotificationPayload{
		Title:       in.Title,
		Description: description,
		Type:        in.Type,
		Date:        in.Date,
		IsScheduled: in.IsScheduled,
		Image:       in.Image,
	}
	if in.Type == entity.NotificationPayment {
		p.Nominal = in.Nominal
	}
	return p
}

type NotificationResponse struct {
	Notification *entity.Notification `json:"notification"`
	// AssignError is set when the notification was saved but the fan-out failed.
	AssignError string `json:"assign_error,omitempty"`
}

type ImageResponse struct {
	URL string `json:"url"`
}
