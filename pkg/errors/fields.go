package errors

// Fields accumulates per-field validation messages for service-level checks
// that the request validator cannot express.
type Fields map[string]string

// Add records msg for field, keeping the first message per field.
func (f Fields) Add(field, msg string) {
	if _, exists := f[field]; exists {
		return
	}
	f[field] = msg
}

// Err returns a VALIDATION_ERROR carrying the collected fields, or nil.
func (f Fields) Err() error {
	if len(f) == 0 {
		return nil
	}
	details := make(map[string]string, len(f))
	for k, v := range f {
		details[k] = v
	}
	return New(CodeValidation, "validation failed").WithDetails(details)
}
