package serrors

import "fmt"

// Base is a coded error. Code is stable and machine-readable, Message is for
// humans, Hint (optional) tells the caller how to fix the underlying data.
type Base struct {
	Code    string
	Message string
	Hint    string
}

func NewError(code, message, hint string) *Base {
	return &Base{Code: code, Message: message, Hint: hint}
}

func (e *Base) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Hint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Base) Is(target error) bool {
	t, ok := target.(*Base)
	if !ok {
		return false
	}
	return t.Code == e.Code
}
