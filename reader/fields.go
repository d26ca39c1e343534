package reader

import (
	"fmt"

	"github.com/theoremus-urban-solutions/transport-catalogue/document"
)

// field returns m[key] or an error naming the missing key.
func field(m document.Map, key string) (document.Value, error) {
	v, ok := m.Get(key)
	if !ok {
		return document.Value{}, fmt.Errorf("missing %q", key)
	}
	return v, nil
}

func stringField(m document.Map, key string) (string, error) {
	v, err := field(m, key)
	if err != nil {
		return "", err
	}
	s, err := v.AsString()
	if err != nil {
		return "", fmt.Errorf("%q: %w", key, err)
	}
	return s, nil
}

func boolField(m document.Map, key string) (bool, error) {
	v, err := field(m, key)
	if err != nil {
		return false, err
	}
	b, err := v.AsBool()
	if err != nil {
		return false, fmt.Errorf("%q: %w", key, err)
	}
	return b, nil
}

func intField(m document.Map, key string) (int64, error) {
	v, err := field(m, key)
	if err != nil {
		return 0, err
	}
	i, err := v.AsInt()
	if err != nil {
		return 0, fmt.Errorf("%q: %w", key, err)
	}
	return i, nil
}

func numberField(m document.Map, key string) (float64, error) {
	v, err := field(m, key)
	if err != nil {
		return 0, err
	}
	f, err := Number(v)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", key, err)
	}
	return f, nil
}

// Number reads an int or a double as float64. The document model never
// converts between the two, so inputs that accept either come through here.
func Number(v document.Value) (float64, error) {
	if v.IsInt() {
		i, _ := v.AsInt()
		return float64(i), nil
	}
	return v.AsDouble()
}

func mapField(m document.Map, key string) (document.Map, error) {
	v, err := field(m, key)
	if err != nil {
		return document.Map{}, err
	}
	mm, err := v.AsMap()
	if err != nil {
		return document.Map{}, fmt.Errorf("%q: %w", key, err)
	}
	return mm, nil
}

func listField(m document.Map, key string) (document.List, error) {
	v, err := field(m, key)
	if err != nil {
		return document.List{}, err
	}
	l, err := v.AsList()
	if err != nil {
		return document.List{}, fmt.Errorf("%q: %w", key, err)
	}
	return l, nil
}

// section returns the list stored under key, or an empty list when the key
// is absent.
func section(root document.Map, key string) (document.List, error) {
	if !root.Has(key) {
		return document.List{}, nil
	}
	return listField(root, key)
}
