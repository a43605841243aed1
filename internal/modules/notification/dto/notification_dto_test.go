package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/pkg/validator"
)

func f64(v float64) *float64 { return &v }
func intp(v int) *int        { return &v }

func paymentInput(nominal *float64) NotificationInput {
	return NotificationInput{
		Title:       "School fee",
		Description: "<p>July fee</p>",
		Type:        entity.NotificationPayment,
		Nominal:     nominal,
		Date:        "2026-07-01",
		Recipients:  Recipients{Mode: entity.RecipientAll},
	}
}

func TestNotificationInput_Nominal(t *testing.T) {
	tests := []struct {
		name    string
		nominal *float64
		wantErr string
	}{
		{name: "missing", nominal: nil, wantErr: "nominal is required for payment notifications"},
		{name: "negative", nominal: f64(-1), wantErr: "nominal must be 0 or greater"},
		{name: "zero", nominal: f64(0)},
		{name: "just under the bound", nominal: f64(99_999_999.99)},
		{name: "at the bound", nominal: f64(100_000_000), wantErr: "nominal must be less than 100000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validator.Struct(paymentInput(tt.nominal))
			if tt.wantErr == "" {
				assert.Nil(t, fields)
				return
			}
			assert.Equal(t, tt.wantErr, fields["nominal"])
		})
	}
}

func TestNotificationInput_NominalIgnoredForOtherTypes(t *testing.T) {
	in := paymentInput(f64(500_000_000))
	in.Type = entity.NotificationEvent
	assert.Nil(t, validator.Struct(in))
	assert.Nil(t, in.Payload(in.Description).Nominal)

	in.Type = entity.NotificationPayment
	in.Nominal = f64(150_000)
	assert.Equal(t, 150_000.0, *in.Payload(in.Description).Nominal)
}

func TestNotificationInput_Recipients(t *testing.T) {
	tests := []struct {
		name       string
		recipients Recipients
		wantField  string
	}{
		{name: "none", recipients: Recipients{Mode: entity.RecipientNone}},
		{name: "region without id", recipients: Recipients{Mode: entity.RecipientRegion}, wantField: "region_id"},
		{name: "region", recipients: Recipients{Mode: entity.RecipientRegion, RegionID: intp(2)}},
		{name: "class without id", recipients: Recipients{Mode: entity.RecipientClass}, wantField: "class_id"},
		{name: "specific without users", recipients: Recipients{Mode: entity.RecipientSpecific}, wantField: "user_ids"},
		{name: "specific", recipients: Recipients{Mode: entity.RecipientSpecific, UserIDs: []int{4, 5}}},
		{name: "unknown mode", recipients: Recipients{Mode: "everyone"}, wantField: "mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := paymentInput(f64(10))
			in.Recipients = tt.recipients
			fields := validator.Struct(in)
			if tt.wantField == "" {
				assert.Nil(t, fields)
				return
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestNotificationInput_Required(t *testing.T) {
	fields := validator.Struct(NotificationInput{Date: "01/07/2026"})
	assert.Equal(t, "this field is required", fields["title"])
	assert.Equal(t, "this field is required", fields["type"])
	assert.Contains(t, fields["date"], "YYYY-MM-DD")
}
