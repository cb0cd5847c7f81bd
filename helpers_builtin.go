package bracket

import (
	"io"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// registerBuiltins installs the helper set spec.md §6.2 names.
func registerBuiltins(r *Registry) {
	r.RegisterHelper("log", helperLog)
	r.RegisterHelper("json", helperJSON)
	r.RegisterHelper("lookup", helperLookup)
	r.RegisterHelper("and", helperAnd)
	r.RegisterHelper("or", helperOr)
	r.RegisterHelper("not", helperNot)
	r.RegisterHelper("eq", compareHelper(func(c int) bool { return c == 0 }))
	r.RegisterHelper("ne", compareHelper(func(c int) bool { return c != 0 }))
	r.RegisterHelper("gt", compareHelper(func(c int) bool { return c > 0 }))
	r.RegisterHelper("lt", compareHelper(func(c int) bool { return c < 0 }))
	r.RegisterHelper("gte", compareHelper(func(c int) bool { return c >= 0 }))
	r.RegisterHelper("lte", compareHelper(func(c int) bool { return c <= 0 }))

	r.RegisterBlockHelper("if", blockIf(false))
	r.RegisterBlockHelper("unless", blockIf(true))
	r.RegisterBlockHelper("with", blockWith)
	r.RegisterBlockHelper("each", blockEach)
}

// helperLog writes msg to the render's Logger at the requested level
// (trace|debug|info|warn|error, defaulting to info) and produces no
// template output.
func helperLog(args HelperArgs) (Value, error) {
	level := zerolog.InfoLevel
	if lv := args.HashArg("level"); lv.Kind() == KindString {
		if parsed, err := zerolog.ParseLevel(lv.AsString()); err == nil {
			level = parsed
		}
	}
	msg := args.Arg(0).AsString()
	args.Render.logger.WithLevel(level).Str("helper", "log").Msg(msg)
	return Null(), nil
}

// helperJSON serializes its argument: compact by default, indented when
// pretty= is truthy.
func helperJSON(args HelperArgs) (Value, error) {
	v := args.Arg(0)
	var b []byte
	var err error
	if args.HashArg("pretty").Truthy() {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return Value{}, newError(HelperError, args.Span, "json: %v", err)
	}
	return String(string(b)), nil
}

// helperLookup resolves container[key] dynamically: an object property
// by string key, or an array element by numeric index.
func helperLookup(args HelperArgs) (Value, error) {
	container := args.Arg(0)
	key := args.Arg(1)
	switch container.Kind() {
	case KindObject:
		if v, ok := container.Object().Get(key.AsString()); ok {
			return v, nil
		}
		return Null(), nil
	case KindArray:
		arr := container.Array()
		n := int(key.Number())
		if key.Kind() != KindNumber || n < 0 || n >= len(arr) {
			return Null(), nil
		}
		return arr[n], nil
	default:
		return Null(), nil
	}
}

// helperAnd short-circuits left to right, returning the first falsy
// argument or the last argument if all are truthy.
func helperAnd(args HelperArgs) (Value, error) {
	var last Value = Bool(true)
	for _, v := range args.Positional {
		last = v
		if !v.Truthy() {
			return v, nil
		}
	}
	return last, nil
}

// helperOr short-circuits left to right, returning the first truthy
// argument or the last argument if all are falsy.
func helperOr(args HelperArgs) (Value, error) {
	var last Value = Bool(false)
	for _, v := range args.Positional {
		last = v
		if v.Truthy() {
			return v, nil
		}
	}
	return last, nil
}

func helperNot(args HelperArgs) (Value, error) {
	return Bool(!args.Arg(0).Truthy()), nil
}

// compareHelper builds eq/ne/gt/lt/gte/lte from a predicate over a
// three-way comparison result. Per §6.2, comparisons are only defined
// between two numbers or two strings; every other pairing, including
// two of the same non-comparable kind, is false.
func compareHelper(pred func(cmp int) bool) ExpressionHelper {
	return func(args HelperArgs) (Value, error) {
		a, b := args.Arg(0), args.Arg(1)
		cmp, comparable := compareValues(a, b)
		if !comparable {
			return Bool(false), nil
		}
		return Bool(pred(cmp)), nil
	}
}

func compareValues(a, b Value) (cmp int, ok bool) {
	if a.Kind() == KindNumber && b.Kind() == KindNumber {
		switch {
		case a.Number() < b.Number():
			return -1, true
		case a.Number() > b.Number():
			return 1, true
		default:
			return 0, true
		}
	}
	if a.Kind() == KindString && b.Kind() == KindString {
		switch {
		case a.AsString() < b.AsString():
			return -1, true
		case a.AsString() > b.AsString():
			return 1, true
		default:
			return 0, true
		}
	}
	return 0, false
}

// blockIf builds the "if"/"unless" block helper; invert swaps which
// branch truthiness selects, giving "unless" for free.
func blockIf(invert bool) BlockHelper {
	return func(w io.Writer, args BlockHelperArgs) error {
		truth := args.Arg(0).Truthy()
		if invert {
			truth = !truth
		}
		if truth {
			return args.RenderBody(w, args.Scope)
		}
		return args.RenderElse(w, args.Scope)
	}
}

// blockWith renders the body with its argument as the base scope, or
// the else branch if the argument is falsy.
func blockWith(w io.Writer, args BlockHelperArgs) error {
	v := args.Arg(0)
	if !v.Truthy() {
		return args.RenderElse(w, args.Scope)
	}
	return args.RenderBody(w, args.Scope.Child(v))
}

// blockEach iterates an array or object, exposing @index/@first/@last
// (plus @key for objects), and renders the else branch for an empty
// collection or a value that is neither.
func blockEach(w io.Writer, args BlockHelperArgs) error {
	v := args.Arg(0)
	switch v.Kind() {
	case KindArray:
		items := v.Array()
		if len(items) == 0 {
			return args.RenderElse(w, args.Scope)
		}
		for i, item := range items {
			child := args.Scope.Child(item)
			child.SetLocal("index", Number(float64(i)))
			child.SetLocal("first", Bool(i == 0))
			child.SetLocal("last", Bool(i == len(items)-1))
			if err := args.RenderBody(w, child); err != nil {
				return err
			}
		}
		return nil

	case KindObject:
		obj := v.Object()
		if obj.Len() == 0 {
			return args.RenderElse(w, args.Scope)
		}
		keys := obj.Keys()
		for i, k := range keys {
			val, _ := obj.Get(k)
			child := args.Scope.Child(val)
			child.SetLocal("key", String(k))
			child.SetLocal("index", Number(float64(i)))
			child.SetLocal("first", Bool(i == 0))
			child.SetLocal("last", Bool(i == len(keys)-1))
			if err := args.RenderBody(w, child); err != nil {
				return err
			}
		}
		return nil

	default:
		return args.RenderElse(w, args.Scope)
	}
}
