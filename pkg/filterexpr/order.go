package filterexpr

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ordering is the resolved sort: a primary key plus a tie-breaking secondary
// key, each with a direction.
type ordering struct {
	primaryKey    string
	primaryDesc   bool
	secondaryKey  string
	secondaryDesc bool
}

// parseOrderBy resolves a comma-separated "key [asc|desc]" list against the
// schema. At most two keys are accepted; the schema's fallback key is
// appended as tie-breaker whenever the request names fewer than two.
func parseOrderBy(raw string, schema OrderSchema) (ordering, error) {
	if schema.DefaultPrimary == "" || schema.FallbackKey == "" {
		return ordering{}, errors.New("order schema needs a default primary and a fallback key")
	}
	if _, ok := schema.Fields[schema.DefaultPrimary]; !ok {
		return ordering{}, fmt.Errorf("default order key %q missing from schema fields", schema.DefaultPrimary)
	}
	if _, ok := schema.Fields[schema.FallbackKey]; !ok {
		return ordering{}, fmt.Errorf("fallback order key %q missing from schema fields", schema.FallbackKey)
	}

	ord := ordering{
		primaryKey:    schema.DefaultPrimary,
		primaryDesc:   schema.DefaultPrimaryDesc,
		secondaryKey:  schema.FallbackKey,
		secondaryDesc: schema.FallbackDesc,
	}

	keys := 0
	for _, segment := range strings.Split(raw, ",") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		key, desc, err := parseSegment(segment)
		if err != nil {
			return ordering{}, err
		}
		if _, ok := schema.Fields[key]; !ok {
			return ordering{}, fmt.Errorf("field %q cannot be used for ordering", key)
		}

		switch keys {
		case 0:
			ord.primaryKey = key
			ord.primaryDesc = desc
			ord.secondaryKey = schema.FallbackKey
			ord.secondaryDesc = schema.FallbackDesc
		case 1:
			if key == ord.primaryKey {
				return ordering{}, fmt.Errorf("duplicate order key %q", key)
			}
			ord.secondaryKey = key
			ord.secondaryDesc = desc
		default:
			return ordering{}, errors.New("at most two order keys are supported")
		}
		keys++
	}

	if ord.secondaryKey == ord.primaryKey {
		// The fallback duplicates the requested primary; reuse the schema
		// default so the tie-breaker stays deterministic.
		ord.secondaryKey = schema.DefaultPrimary
		ord.secondaryDesc = schema.DefaultPrimaryDesc
	}
	return ord, nil
}

func parseSegment(segment string) (key string, desc bool, err error) {
	parts := strings.Fields(segment)
	switch len(parts) {
	case 1:
		return parts[0], false, nil
	case 2:
		switch strings.ToLower(parts[1]) {
		case "asc":
			return parts[0], false, nil
		case "desc":
			return parts[0], true, nil
		default:
			return "", false, fmt.Errorf("invalid direction %q for field %q", parts[1], parts[0])
		}
	default:
		return "", false, fmt.Errorf("invalid order segment %q", segment)
	}
}

// apply writes the ordering onto the binding's four well-known fields.
func (o ordering) apply(dest reflect.Value) error {
	values := []struct {
		name  string
		value any
	}{
		{"PrimaryKey", o.primaryKey},
		{"PrimaryDesc", o.primaryDesc},
		{"SecondaryKey", o.secondaryKey},
		{"SecondaryDesc", o.secondaryDesc},
	}
	for _, entry := range values {
		field := dest.FieldByName(entry.name)
		if !field.IsValid() || !field.CanSet() {
			return fmt.Errorf("params struct %s must declare a settable %s field", dest.Type(), entry.name)
		}
		v := reflect.ValueOf(entry.value)
		if field.Type() != v.Type() {
			return fmt.Errorf("params field %s must be %s, is %s", entry.name, v.Type(), field.Type())
		}
		field.Set(v)
	}
	return nil
}
