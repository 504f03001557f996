package dto

import "time"

// DateLayout formato de fecha del API (solo fecha, sin hora).
const DateLayout = "2006-01-02"

// ParseDate parsea una fecha "YYYY-MM-DD" del body.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ParseDatePtr parsea una fecha opcional; nil o vacío devuelve nil.
func ParseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDate serializa una fecha como "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDatePtr serializa una fecha opcional; nil devuelve nil.
func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
