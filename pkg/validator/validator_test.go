package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name    string `json:"name" validate:"required,notblank"`
	NIS     string `json:"nis" validate:"required,nis"`
	Born    string `json:"dob" validate:"isodate"`
	Class   *int   `json:"class_id"`
	Region  *int   `form:"region_id"`
	Ignored string `json:"-" validate:"omitempty"`
}

func (s sample) ValidateFields() map[string]string {
	if s.Class != nil && s.Region == nil {
		return map[string]string{"region_id": "select a region first", "name": "shadowed"}
	}
	return nil
}

func TestStruct(t *testing.T) {
	class := 2
	fields := Struct(sample{Name: "  ", NIS: "12a", Born: "2010-13-01", Class: &class})

	assert.Equal(t, notBlankText, fields["name"], "tag errors win over field-level ones")
	assert.Equal(t, "nis may only contain digits", fields["nis"])
	assert.Equal(t, "dob must be a date in YYYY-MM-DD format", fields["dob"])
	assert.Equal(t, "select a region first", fields["region_id"])
}

func TestStruct_Valid(t *testing.T) {
	assert.Nil(t, Struct(sample{Name: "Budi", NIS: "1001", Born: "2010-01-31"}))
	assert.Nil(t, Struct(sample{Name: "Budi", NIS: "1001"}), "an empty date is left to required")
}

func TestStruct_Required(t *testing.T) {
	fields := Struct(sample{})
	assert.Equal(t, requiredText, fields["name"])
	assert.Equal(t, requiredText, fields["nis"])
}

func TestFormatValidationError(t *testing.T) {
	err := Validate.Struct(sample{NIS: "x"})
	msg := FormatValidationError(err)
	assert.Contains(t, msg, requiredText)
	assert.Contains(t, msg, "nis may only contain digits")
}
