package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/stdmath/errors"
)

func TestValidatorRequired(t *testing.T) {
	v := New()
	v.Required("type", "u64")
	if v.HasErrors() {
		t.Error("expected no errors for valid input")
	}

	v2 := New()
	v2.Required("type", "")
	if !v2.HasErrors() {
		t.Error("expected error for empty required field")
	}

	v3 := New()
	v3.Required("type", "   ")
	if !v3.HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorNonNegative(t *testing.T) {
	v := New()
	v.NonNegative("n", 0)
	v.NonNegative("r", 12)
	if v.HasErrors() {
		t.Errorf("expected no errors, got %v", v.Errors())
	}

	v2 := New()
	v2.NonNegative("rows", -1)
	if !v2.HasErrors() {
		t.Fatal("expected error for negative value")
	}
	if v2.Errors()[0].Field != "rows" {
		t.Errorf("expected field 'rows', got %q", v2.Errors()[0].Field)
	}
}

func TestValidatorRange(t *testing.T) {
	v := New()
	v.Range("sample_rate", 1, 0, 1)
	if v.HasErrors() {
		t.Error("expected no error for value in range")
	}

	v2 := New()
	v2.Range("rows", -5, 0, 100)
	if !v2.HasErrors() {
		t.Error("expected error for value below range")
	}

	v3 := New()
	v3.Range("rows", 101, 0, 100)
	if !v3.HasErrors() {
		t.Error("expected error for value above range")
	}
}

func TestValidatorMax(t *testing.T) {
	v := New()
	v.Max("rows", 10, 10)
	if v.HasErrors() {
		t.Error("expected no error at the limit")
	}

	v2 := New()
	v2.Max("rows", 11, 10)
	if !v2.HasErrors() {
		t.Error("expected error for value above max")
	}
}

func TestValidatorOneOf(t *testing.T) {
	v := New()
	v.OneOf("format", "json", []string{"text", "json", "yaml"})
	if v.HasErrors() {
		t.Error("expected no error for valid oneOf value")
	}

	v2 := New()
	v2.OneOf("format", "xml", []string{"text", "json", "yaml"})
	if !v2.HasErrors() {
		t.Error("expected error for invalid oneOf value")
	}

	// Empty should be skipped
	v3 := New()
	v3.OneOf("format", "", []string{"text"})
	if v3.HasErrors() {
		t.Error("expected no error for empty oneOf value")
	}
}

func TestValidatorCustom(t *testing.T) {
	v := New()
	v.Custom(true, "field", "should pass")
	if v.HasErrors() {
		t.Error("expected no error for true condition")
	}

	v2 := New()
	v2.Custom(false, "field", "custom error")
	if !v2.HasErrors() {
		t.Error("expected error for false condition")
	}
	if v2.Errors()[0].Message != "custom error" {
		t.Errorf("expected 'custom error', got %q", v2.Errors()[0].Message)
	}
}

func TestValidatorValidate(t *testing.T) {
	v := New()
	v.Required("type", "u8")
	if appErr := v.Validate(); appErr != nil {
		t.Error("expected nil for valid input")
	}

	v2 := New()
	v2.Required("type", "")
	v2.NonNegative("rows", -3)
	appErr := v2.Validate()
	if appErr == nil {
		t.Fatal("expected error")
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected %s, got %s", errors.ErrCodeInvalidInput, appErr.Code)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Fatalf("expected two field errors in details, got %v", appErr.Details)
	}
	if !strings.Contains(appErr.Message, "type") || !strings.Contains(appErr.Message, "rows") {
		t.Errorf("expected both fields in message, got %q", appErr.Message)
	}
}

func TestValidatorErr_NilWhenValid(t *testing.T) {
	if err := New().NonNegative("n", 3).Err(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if err := New().NonNegative("n", -3).Err(); !errors.IsCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
}

func TestValidatorChaining(t *testing.T) {
	v := New()
	result := v.Required("type", "i32").NonNegative("n", 5).Max("n", 5, 10)
	if result != v {
		t.Error("expected chaining to return same validator")
	}
	if v.HasErrors() {
		t.Error("expected no errors for valid chained validation")
	}
}

type telemetry struct {
	Enabled  bool    `mapstructure:"enabled"`
	Endpoint string  `mapstructure:"endpoint" validate:"required_if=Enabled true"`
	Rate     float64 `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

type settings struct {
	Format    string    `mapstructure:"format" validate:"required,oneof=text json yaml"`
	Telemetry telemetry `mapstructure:"telemetry"`
}

func TestStructValidateValid(t *testing.T) {
	err := Validate(settings{Format: "json", Telemetry: telemetry{Rate: 0.5}})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestStructValidateInvalid(t *testing.T) {
	err := Validate(settings{Format: "xml"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.IsCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
	if !strings.Contains(err.Error(), "format: must be one of: text json yaml") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestStructValidateNestedFieldPath(t *testing.T) {
	err := Validate(settings{Format: "text", Telemetry: telemetry{Enabled: true, Rate: 2}})
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "telemetry.endpoint") {
		t.Errorf("expected nested endpoint path, got %q", msg)
	}
	if !strings.Contains(msg, "telemetry.sample_rate: must be at most 1") {
		t.Errorf("expected sample_rate bound, got %q", msg)
	}
}

func TestRequiredFunc(t *testing.T) {
	err := Required("name", "value")
	if err != nil {
		t.Errorf("expected nil, got %v", err)
	}

	err = Required("name", "")
	if err == nil {
		t.Error("expected error for empty required field")
	}
}
