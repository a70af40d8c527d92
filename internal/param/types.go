package param

import (
	"fmt"
	"strconv"
)

// typeErr enumerates why a stored string failed to parse as a requested type.
type typeErr uint8

const (
	errNone typeErr = iota
	errGeneric
	errBoolean
	errOutOfRange
)

func (e typeErr) reason() string {
	switch e {
	case errGeneric:
		return "invalid value"
	case errBoolean:
		return `boolean values must be "true" or "false"`
	case errOutOfRange:
		return "out of range"
	}
	return ""
}

// TypeError reports that a parameter's stored string could not be interpreted
// as the requested Go type.
type TypeError struct {
	Param string
	Value string
	Dtype string
	Err   typeErr
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("error interpreting %q, the value of the %q parameter, as a %s: %s",
		e.Value, e.Param, e.Dtype, e.Err.reason())
}

func tryBool(s string) (bool, typeErr) {
	switch s {
	case "true":
		return true, errNone
	case "false":
		return false, errNone
	default:
		return false, errBoolean
	}
}

func tryInt64(s string) (int64, typeErr) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return 0, errOutOfRange
		}
		return 0, errGeneric
	}
	return v, errNone
}

func tryFloat64(s string) (float64, typeErr) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return 0, errOutOfRange
		}
		return 0, errGeneric
	}
	return v, errNone
}
