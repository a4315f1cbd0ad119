// Package validation checks configuration and command arguments.
//
// Struct tag validation (go-playground/validator) is used for loaded
// configuration; the chainable Validator collects errors for arguments
// parsed by hand. Both report an INVALID_INPUT AppError whose "fields"
// detail lists every failing field.
//
// # Struct Tag Validation
//
//	type Math struct {
//	    Format string `mapstructure:"format" validate:"oneof=text json yaml"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	err := validation.New().
//	    NonNegative("rows", rows).
//	    OneOf("repetition", rep, []string{"repeat", "no_repeat"}).
//	    Err()
package validation
