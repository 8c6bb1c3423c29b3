package cache

import (
	"reflect"

	"github.com/jmgilman/go/errors"
)

// ErrInvalidArgument is the cause of every validation failure returned by New
// and Put. Match it with errors.Is; the returned errors also carry
// errors.CodeInvalidInput.
var ErrInvalidArgument = errors.New(errors.CodeInvalidInput, "invalid argument")

func invalidArgument(message string, ctx map[string]interface{}) error {
	return errors.WrapWithContext(ErrInvalidArgument, errors.CodeInvalidInput, message, ctx)
}

func validateConfig(cfg Config) error {
	if cfg.Capacity <= 0 {
		return invalidArgument("capacity must be positive", map[string]interface{}{
			"capacity": cfg.Capacity,
		})
	}
	return nil
}

func validateEntry[K comparable, V any](key K, value V) error {
	if isNil(key) {
		return invalidArgument("key must not be nil", nil)
	}
	if isNil(value) {
		return invalidArgument("value must not be nil", nil)
	}
	return nil
}

// isNil reports whether v holds the nil value of a nillable kind.
// Non-nillable kinds (strings, numbers, structs) are never nil.
func isNil[T any](v T) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func,
		reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
