package models

// NewNullString wraps a string into a pointer, mapping the empty string to nil.
// Used when optional request fields feed nullable columns.
func NewNullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
