// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package validation

import (
	"encoding/json"
	"strings"
)

// ConstraintMissing is the constraint name reported for required fields
// which were absent from the request.
const ConstraintMissing = "missing"

// FieldError describes one failed constraint.
type FieldError struct {
	// Path is the dotted path of the field, e.g. "article.title".
	Path string `json:"path"`

	// Constraint names the failed rule, e.g. "missing" or "min".
	Constraint string `json:"constraint"`

	Message string `json:"message"`
}

func (e FieldError) String() string {
	return e.Path + " " + e.Message
}

// Errors is the ordered list of every constraint that failed for a request.
type Errors []FieldError

// Error implements the [error] interface.
func (errs Errors) Error() string {
	ss := make([]string, len(errs))
	for i, e := range errs {
		ss[i] = e.String()
	}
	return "validation failed: " + strings.Join(ss, "; ")
}

// Paths returns the field path of every error, in order.
func (errs Errors) Paths() []string {
	paths := make([]string, len(errs))
	for i, e := range errs {
		paths[i] = e.Path
	}
	return paths
}

// MarshalJSON encodes the list as {"errors": [...]}.
func (errs Errors) MarshalJSON() ([]byte, error) {
	fields := []FieldError(errs)
	if fields == nil {
		fields = []FieldError{}
	}
	return json.Marshal(struct {
		Errors []FieldError `json:"errors"`
	}{
		Errors: fields,
	})
}

// UnmarshalJSON decodes the format produced by [Errors.MarshalJSON].
func (errs *Errors) UnmarshalJSON(b []byte) error {
	var v struct {
		Errors []FieldError `json:"errors"`
	}
	err := json.Unmarshal(b, &v)
	if err != nil {
		return err
	}
	*errs = v.Errors
	return nil
}

func (errs *Errors) add(path, constraint, message string) {
	*errs = append(*errs, FieldError{
		Path:       path,
		Constraint: constraint,
		Message:    message,
	})
}
