// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/z5labs/conduit/concurrent"
	"github.com/z5labs/conduit/validation"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/jsonschema-go"
	"github.com/swaggest/openapi-go/openapi3"
	"github.com/z5labs/sdk-go/ptr"
)

// NoParams is the parameter set of routes without path or query values.
type NoParams struct{}

type paramField struct {
	index    int
	name     string
	in       openapi3.ParameterIn
	required bool
	typ      reflect.Type
}

var paramFieldCache = concurrent.NewCache[reflect.Type, []paramField]()

// paramFieldsOf reads the path and query tags of a params struct.
func paramFieldsOf(t reflect.Type) ([]paramField, error) {
	return paramFieldCache.GetOr(t, func() ([]paramField, error) {
		if t.Kind() != reflect.Struct {
			return nil, fmt.Errorf("rest: params type %s is not a struct", t)
		}

		var fields []paramField
		for i := range t.NumField() {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}

			f := paramField{
				index: i,
				typ:   sf.Type,
			}
			if name, ok := sf.Tag.Lookup("path"); ok {
				f.name = name
				f.in = openapi3.ParameterInPath
				f.required = true
			} else if name, ok := sf.Tag.Lookup("query"); ok {
				f.name, _, _ = strings.Cut(name, ",")
				f.in = openapi3.ParameterInQuery
				f.required = sf.Tag.Get("required") == "true"
			} else {
				continue
			}

			if !supportedParamType(sf.Type) {
				return nil, fmt.Errorf("rest: unsupported type %s for %s parameter %q", sf.Type, f.in, f.name)
			}
			fields = append(fields, f)
		}
		return fields, nil
	})
}

func supportedParamType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer:
		return supportedScalar(t.Elem().Kind())
	case reflect.Slice:
		return supportedScalar(t.Elem().Kind())
	default:
		return supportedScalar(t.Kind())
	}
}

func supportedScalar(k reflect.Kind) bool {
	switch k {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// decodeParams fills dst, a pointer to a params struct, from the matched
// route and the query string. Values which fail to parse into their
// declared type are reported immediately; range rules are left to the
// validation stage.
func decodeParams(r *http.Request, dst any) (validation.Presence, error) {
	rv := reflect.ValueOf(dst).Elem()

	fields, err := paramFieldsOf(rv.Type())
	if err != nil {
		return nil, err
	}

	query := r.URL.Query()
	presence := make(validation.Presence, len(fields))
	for _, f := range fields {
		var values []string
		switch f.in {
		case openapi3.ParameterInPath:
			v, err := pathValue(r, f.name)
			if err != nil {
				return nil, BadRequestError{
					Cause: InvalidParamValueError{In: string(f.in), Name: f.name, Value: chi.URLParam(r, f.name), Cause: err},
				}
			}
			values = []string{v}
		case openapi3.ParameterInQuery:
			vs, ok := query[f.name]
			if !ok {
				continue
			}
			values = vs
		}

		presence[f.name] = true

		err := setParam(rv.Field(f.index), values)
		if err != nil {
			return nil, BadRequestError{
				Cause: InvalidParamValueError{In: string(f.in), Name: f.name, Value: strings.Join(values, ","), Cause: err},
			}
		}
	}
	return presence, nil
}

// pathValue returns the decoded value of a path parameter. chi matches
// against r.URL.RawPath when it is set, so only then is the value still
// escaped. Otherwise it comes from r.URL.Path, which is already decoded.
func pathValue(r *http.Request, name string) (string, error) {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v, nil
	}
	return url.PathUnescape(v)
}

func setParam(v reflect.Value, values []string) error {
	switch v.Kind() {
	case reflect.Pointer:
		elem := reflect.New(v.Type().Elem())
		err := setParam(elem.Elem(), values)
		if err != nil {
			return err
		}
		v.Set(elem)
		return nil
	case reflect.Slice:
		s := reflect.MakeSlice(v.Type(), len(values), len(values))
		for i, value := range values {
			err := setScalar(s.Index(i), value)
			if err != nil {
				return err
			}
		}
		v.Set(s)
		return nil
	default:
		if len(values) == 0 {
			return nil
		}
		return setScalar(v, values[0])
	}
}

func setScalar(v reflect.Value, s string) error {
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(s, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	default:
		return fmt.Errorf("unsupported kind %s", v.Kind())
	}
	return nil
}

func paramSpecs(t reflect.Type) ([]openapi3.ParameterOrRef, error) {
	fields, err := paramFieldsOf(t)
	if err != nil {
		return nil, err
	}

	specs := make([]openapi3.ParameterOrRef, 0, len(fields))
	for _, f := range fields {
		typ := f.typ
		if typ.Kind() == reflect.Pointer {
			typ = typ.Elem()
		}

		schema, err := schemaOf(reflect.Zero(typ).Interface())
		if err != nil {
			return nil, err
		}

		specs = append(specs, openapi3.ParameterOrRef{
			Parameter: &openapi3.Parameter{
				Name:     f.name,
				In:       f.in,
				Required: ptr.Ref(f.required),
				Schema:   schema,
			},
		})
	}
	return specs, nil
}

func schemaOf(v any) (*openapi3.SchemaOrRef, error) {
	var reflector jsonschema.Reflector

	jsonSchema, err := reflector.Reflect(v, jsonschema.InlineRefs)
	if err != nil {
		return nil, err
	}

	var schemaOrRef openapi3.SchemaOrRef
	schemaOrRef.FromJSONSchema(jsonSchema.ToSchemaOrBool())
	return &schemaOrRef, nil
}
