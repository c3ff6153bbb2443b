package render

import (
	"fmt"
)

// Display converts an arbitrary runtime value to a short human-readable
// string. It never panics: a failing String()/Error() implementation degrades
// to a debug representation, and a failure there degrades to a diagnostic
// placeholder embedding the reason.
func Display(v any) string {
	s, err := primary(v)
	if err == nil {
		return s
	}

	s, err2 := debugRepr(v)
	if err2 == nil {
		return s
	}

	return fmt.Sprintf("Failed rendering value as a string, %v", err2)
}

// primary prefers the value's own stringification when it has one
func primary(v any) (s string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	if v == nil {
		return "None", nil
	}

	switch val := v.(type) {
	case fmt.Stringer:
		return val.String(), nil
	case error:
		return val.Error(), nil
	case string:
		return val, nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

// debugRepr falls back to a Go-syntax representation, which bypasses
// user-provided String methods
func debugRepr(v any) (s string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	if gs, ok := v.(fmt.GoStringer); ok {
		return gs.GoString(), nil
	}
	return fmt.Sprintf("%#v", v), nil
}

// Truncate clips s to at most limit runes. A non-positive limit disables
// truncation.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
