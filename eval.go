package meval

import "errors"

// Evaluate compiles and evaluates expression, and formats the result with
// FormatNumber.
//
// Errors in the input are returned as errors. An operator called out of
// its domain is not: Evaluate("5 / 0") returns "Cannot divide by zero"
// and a nil error.
func Evaluate(expression string, opts ...Option) (string, error) {
	e, err := Compile(expression, opts...)
	if err != nil {
		return "", err
	}
	return e.Result()
}

// Result evaluates e the way Evaluate does.
func (e *Expression) Result() (string, error) {
	v, err := e.Eval()
	if err != nil {
		var domainErr *DomainError
		if errors.As(err, &domainErr) {
			return domainErr.Error(), nil
		}
		return "", err
	}
	return FormatNumber(v), nil
}
