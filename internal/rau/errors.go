package rau

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// ErrorKind classifies flow failures.
type ErrorKind int

const (
	KindNoConnectivity ErrorKind = iota
	KindQueryFailure
	KindDownloadFailure
	KindApplyFailure
	KindPermissionDenied
	KindRestartFailure
	KindRedirectFailure
	KindIllegalTransition
)

func (k ErrorKind) String() string {
	switch k {
	case KindNoConnectivity:
		return "no connectivity"
	case KindQueryFailure:
		return "update query failed"
	case KindDownloadFailure:
		return "download failed"
	case KindApplyFailure:
		return "apply failed"
	case KindPermissionDenied:
		return "permission denied"
	case KindRestartFailure:
		return "restart failed"
	case KindRedirectFailure:
		return "redirect failed"
	case KindIllegalTransition:
		return "illegal transition"
	default:
		return "unknown failure"
	}
}

// ErrNoConnectivity is reported when the flow aborts for lack of network.
var ErrNoConnectivity = errors.New("no network connectivity")

// FlowError is a classified flow failure.
type FlowError struct {
	Kind ErrorKind
	Err  error
}

func (e *FlowError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *FlowError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a FlowError of kind k.
func IsKind(err error, k ErrorKind) bool {
	var fe *FlowError
	return errors.As(err, &fe) && fe.Kind == k
}

// FormatError renders err as readable text. Structured errors (structs with
// exported fields, maps, json.Marshaler) become tab-indented JSON; anything
// that does not serialize to a non-empty object falls back to err.Error().
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	if fe, ok := err.(*FlowError); ok && fe.Err != nil {
		return fe.Kind.String() + ":\n" + FormatError(fe.Err)
	}
	if !structured(err) {
		return err.Error()
	}

	data, jerr := json.MarshalIndent(err, "", "\t")
	if jerr != nil {
		return err.Error()
	}
	text := string(data)
	if text == "{}" || text == "null" {
		return err.Error()
	}
	return text
}

func structured(err error) bool {
	if _, ok := err.(json.Marshaler); ok {
		return true
	}
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct || t.Kind() == reflect.Map
}
