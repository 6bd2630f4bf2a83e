package config

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// AttributeMap is a convenience wrapper around the free-form attributes of a
// scene entity. Typed getters panic on a type mismatch since a mistyped
// attribute is a configuration error, not a runtime condition.
type AttributeMap map[string]interface{}

// Has returns whether the map contains the given name.
func (am AttributeMap) Has(name string) bool {
	_, has := am[name]
	return has
}

// String returns the named attribute as a string, or "" when absent.
func (am AttributeMap) String(name string) string {
	x := am[name]
	if x == nil {
		return ""
	}
	if s, ok := x.(string); ok {
		return s
	}
	panic(errors.Errorf("wanted a string for (%s) but got (%v) %T", name, x, x))
}

// Float64 returns the named attribute as a float64, or def when absent.
func (am AttributeMap) Float64(name string, def float64) float64 {
	x, has := am[name]
	if !has {
		return def
	}
	switch v := x.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	panic(errors.Errorf("wanted a float64 for (%s) but got (%v) %T", name, x, x))
}

// Int returns the named attribute as an int, or def when absent. JSON
// numbers decode as float64 and are converted when integral.
func (am AttributeMap) Int(name string, def int) int {
	x, has := am[name]
	if !has {
		return def
	}
	switch v := x.(type) {
	case int:
		return v
	case float64:
		if v == float64(int(v)) {
			return int(v)
		}
	}
	panic(errors.Errorf("wanted an int for (%s) but got (%v) %T", name, x, x))
}

// Bool returns the named attribute as a bool, or def when absent.
func (am AttributeMap) Bool(name string, def bool) bool {
	x, has := am[name]
	if !has {
		return def
	}
	if v, ok := x.(bool); ok {
		return v
	}
	panic(errors.Errorf("wanted a bool for (%s) but got (%v) %T", name, x, x))
}

// Vec3 returns the named attribute as a 3-vector, or def when absent. The
// attribute must be a 3-element numeric array.
func (am AttributeMap) Vec3(name string, def r3.Vector) r3.Vector {
	x, has := am[name]
	if !has {
		return def
	}
	arr, ok := x.([]interface{})
	if !ok || len(arr) != 3 {
		panic(errors.Errorf("wanted a 3-element array for (%s) but got (%v) %T", name, x, x))
	}
	var out [3]float64
	for i, e := range arr {
		f, ok := e.(float64)
		if !ok {
			panic(errors.Errorf("wanted numeric components for (%s) but got (%v) %T", name, e, e))
		}
		out[i] = f
	}
	return r3.Vector{X: out[0], Y: out[1], Z: out[2]}
}
