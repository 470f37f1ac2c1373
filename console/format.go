package console

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// maxDumpDepth bounds structural dumps of deeply nested values.
const maxDumpDepth = 32

// isoTime matches the script engine's Date.prototype.toISOString.
const isoTime = "2006-01-02T15:04:05.000Z07:00"

// Undefined stands in for the script engine's undefined value.
type Undefined struct{}

// String returns "undefined".
func (Undefined) String() string { return "undefined" }

// Function stands in for a callable script value.
type Function struct {
	Name string
}

// String returns "[Function]" or "[Function: name]".
func (f Function) String() string {
	if f.Name == "" {
		return "[Function]"
	}
	return "[Function: " + f.Name + "]"
}

// ErrorValue stands in for a script error object, which has no enumerable
// fields worth dumping.
type ErrorValue struct {
	Name    string
	Message string
}

// String returns "Name: message" the way script engines print errors.
func (e ErrorValue) String() string {
	switch {
	case e.Name == "":
		return e.Message
	case e.Message == "":
		return e.Name
	}
	return e.Name + ": " + e.Message
}

// Format renders console call arguments into one string. Primitives are
// converted directly; maps, slices and structs are dumped as indented JSON.
// Arguments are joined with a single space. Format never panics.
func Format(args ...any) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = "[unformattable]"
		}
	}()
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, FormatValue(arg))
	}
	return strings.Join(parts, " ")
}

// FormatValue renders a single value the way Format renders one argument.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case Undefined:
		return val.String()
	case Function:
		return val.String()
	case ErrorValue:
		return val.String()
	case int:
		return strconv.Itoa(val)
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(val).Int(), 10)
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(val).Uint(), 10)
	case float32:
		return formatNumber(float64(val))
	case float64:
		return formatNumber(val)
	case json.Number:
		return val.String()
	case time.Time:
		return val.UTC().Format(isoTime)
	case error:
		return val.Error()
	}
	if reflect.ValueOf(v).Kind() == reflect.Func {
		return Function{}.String()
	}
	return dump(v)
}

// formatNumber prints floats like a script engine does: integral values
// without a fraction, NaN and Infinity by name.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	// JS exponents carry no zero padding: 1e-07 prints as 1e-7.
	s = strings.Replace(s, "e-0", "e-", 1)
	s = strings.Replace(s, "e+0", "e+", 1)
	return s
}

func dump(v any) string {
	normalized := normalize(reflect.ValueOf(v), 0, map[uintptr]bool{})
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalized); err != nil {
		return fmt.Sprintf("%v", normalized)
	}
	return strings.TrimRight(buf.String(), "\n")
}

// normalize rewrites v into plain maps and slices that encoding/json can
// always encode: callables and markers become strings, cycles become
// "[Circular]".
func normalize(rv reflect.Value, depth int, seen map[uintptr]bool) any {
	if !rv.IsValid() {
		return nil
	}
	if depth > maxDumpDepth {
		return "[Circular]"
	}
	if rv.CanInterface() {
		switch val := rv.Interface().(type) {
		case Undefined:
			return val.String()
		case Function:
			return val.String()
		case ErrorValue:
			return val.String()
		case time.Time:
			return val.UTC().Format(isoTime)
		case json.Marshaler:
			if rv.Kind() != reflect.Map && rv.Kind() != reflect.Slice {
				return val
			}
		}
	}

	switch rv.Kind() {
	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		if rv.Kind() == reflect.Pointer {
			ptr := rv.Pointer()
			if seen[ptr] {
				return "[Circular]"
			}
			seen[ptr] = true
			defer delete(seen, ptr)
		}
		return normalize(rv.Elem(), depth+1, seen)
	case reflect.Func:
		return Function{}.String()
	case reflect.Chan, reflect.UnsafePointer:
		return fmt.Sprintf("[%s]", rv.Kind())
	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		ptr := rv.Pointer()
		if seen[ptr] {
			return "[Circular]"
		}
		seen[ptr] = true
		defer delete(seen, ptr)
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = normalize(iter.Value(), depth+1, seen)
		}
		return out
	case reflect.Slice:
		if rv.IsNil() {
			return nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return rv.Interface()
		}
		ptr := rv.Pointer()
		if ptr != 0 && seen[ptr] {
			return "[Circular]"
		}
		if ptr != 0 {
			seen[ptr] = true
			defer delete(seen, ptr)
		}
		fallthrough
	case reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = normalize(rv.Index(i), depth+1, seen)
		}
		return out
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return formatNumber(f)
		}
		return f
	}
	if rv.CanInterface() {
		return rv.Interface()
	}
	return fmt.Sprint(rv)
}
