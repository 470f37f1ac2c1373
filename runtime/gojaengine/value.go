package gojaengine

import (
	"strings"

	"github.com/dop251/goja"

	"github.com/rahilshah3105/code-line-formatter/console"
)

// exportValue converts a script value into the Go shape console.Format
// expects.
func exportValue(v goja.Value) any {
	if v == nil || goja.IsUndefined(v) {
		return console.Undefined{}
	}
	if goja.IsNull(v) {
		return nil
	}
	obj, ok := v.(*goja.Object)
	if !ok {
		return v.Export()
	}
	if _, isFn := goja.AssertFunction(v); isFn {
		return console.Function{Name: stringProp(obj, "name")}
	}
	switch obj.ClassName() {
	case "Error":
		return console.ErrorValue{Name: stringProp(obj, "name"), Message: stringProp(obj, "message")}
	case "Map":
		return exportMap(obj)
	}
	return obj.Export()
}

// exportMap turns a Map's exported entry pairs into a keyed object so it
// dumps like one.
func exportMap(obj *goja.Object) any {
	pairs, ok := obj.Export().([][2]any)
	if !ok {
		return obj.Export()
	}
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		out[console.FormatValue(pair[0])] = pair[1]
	}
	return out
}

// describeThrown returns the category and message of a thrown value.
// Primitives have no category.
func describeThrown(v goja.Value) (category, message string) {
	if v == nil || goja.IsUndefined(v) {
		return "", "undefined"
	}
	if goja.IsNull(v) {
		return "", "null"
	}
	obj, ok := v.(*goja.Object)
	if !ok {
		return "", v.String()
	}
	category = stringProp(obj, "name")
	message = stringProp(obj, "message")
	if category == "" && message == "" {
		message = v.String()
	}
	// Errors raised by eval carry their category in the message as well.
	if category != "" {
		message = strings.TrimPrefix(message, category+": ")
	}
	return category, message
}

func stringProp(obj *goja.Object, name string) string {
	p := obj.Get(name)
	if p == nil || goja.IsUndefined(p) || goja.IsNull(p) {
		return ""
	}
	return p.String()
}
