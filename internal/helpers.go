package internal

import "strconv"

// ContextValue returns the request context value for key as T, or T's zero value.
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

// QueryInt returns the query parameter as an int, or defaultValue when it is
// missing or not a number.
func QueryInt(c Context, name string, defaultValue int) int {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return v
}
