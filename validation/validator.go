// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package validation evaluates declared field constraints over decoded
// request parameters and bodies and reports every failure at once.
//
// Two kinds of tags are understood:
//
//   - required:"true" marks a field which must be present in the request.
//     Presence is judged against a [Presence] map built from the raw input,
//     so a zero value which was sent explicitly still counts as present.
//   - validate:"..." holds go-playground/validator rules such as min=0.
//     Nested structs are validated recursively.
//
// Field paths use the json, query or path tag name of each field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/z5labs/conduit/concurrent"

	"github.com/go-playground/validator/v10"
)

type field struct {
	name     string
	required bool
	nested   reflect.Type
}

// Validator is safe for concurrent use. Field metadata is computed once per
// type and reused.
type Validator struct {
	rules  *validator.Validate
	fields *concurrent.Cache[reflect.Type, []field]
}

// New returns a ready to use [Validator].
func New() *Validator {
	rules := validator.New(validator.WithRequiredStructEnabled())
	rules.RegisterTagNameFunc(fieldName)

	return &Validator{
		rules:  rules,
		fields: concurrent.NewCache[reflect.Type, []field](),
	}
}

// Validate checks presence first and then every validate rule. It never
// stops at the first failure. The returned [Errors] is nil when v passed.
func (v *Validator) Validate(value any, presence Presence) (Errors, error) {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, nil
	}

	var errs Errors
	err := v.checkPresence(rv.Type(), "", presence, &errs)
	if err != nil {
		return nil, err
	}

	missing := errs.Paths()

	err = v.rules.Struct(rv.Interface())
	if err == nil {
		return errs, nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return nil, err
	}
	for _, fe := range ves {
		path := trimRoot(fe.Namespace())
		if underAny(path, missing) {
			continue
		}
		errs.add(path, fe.Tag(), message(fe))
	}
	return errs, nil
}

func (v *Validator) checkPresence(t reflect.Type, prefix string, presence Presence, errs *Errors) error {
	fields, err := v.fieldsOf(t)
	if err != nil {
		return err
	}

	for _, f := range fields {
		path := join(prefix, f.name)
		if !presence.Has(path) {
			if f.required {
				errs.add(path, ConstraintMissing, "missing field")
			}
			continue
		}
		if f.nested == nil {
			continue
		}

		err := v.checkPresence(f.nested, path, presence, errs)
		if err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) fieldsOf(t reflect.Type) ([]field, error) {
	return v.fields.GetOr(t, func() ([]field, error) {
		return collectFields(t)
	})
}

var timeType = reflect.TypeOf(time.Time{})

func collectFields(t reflect.Type) ([]field, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("validation: %s is not a struct", t)
	}

	var fields []field
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		name := fieldName(sf)
		if name == "-" {
			continue
		}

		ft := sf.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}

		if sf.Anonymous && !hasNameTag(sf) && ft.Kind() == reflect.Struct {
			embedded, err := collectFields(ft)
			if err != nil {
				return nil, err
			}
			fields = append(fields, embedded...)
			continue
		}

		f := field{
			name:     name,
			required: sf.Tag.Get("required") == "true",
		}
		if ft.Kind() == reflect.Struct && ft != timeType {
			f.nested = ft
		}
		fields = append(fields, f)
	}
	return fields, nil
}

var nameTags = []string{"json", "query", "path"}

func fieldName(sf reflect.StructField) string {
	for _, key := range nameTags {
		tag, ok := sf.Tag.Lookup(key)
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name != "" {
			return name
		}
	}
	return sf.Name
}

func hasNameTag(sf reflect.StructField) bool {
	for _, key := range nameTags {
		if _, ok := sf.Tag.Lookup(key); ok {
			return true
		}
	}
	return false
}

// trimRoot drops the leading type name validator puts on every namespace.
func trimRoot(ns string) string {
	_, rest, found := strings.Cut(ns, ".")
	if !found {
		return ns
	}
	return rest
}

func underAny(path string, parents []string) bool {
	for _, p := range parents {
		if path == p || strings.HasPrefix(path, p+".") {
			return true
		}
	}
	return false
}

func message(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		if isString {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		if isString {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "email":
		return "must be a valid email address"
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}
