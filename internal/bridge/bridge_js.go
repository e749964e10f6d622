//go:build js && wasm

package bridge

import (
	"sort"
	"syscall/js"

	"github.com/rs/zerolog"

	"github.com/rshade/renderwave/internal/wave"
)

// GlobalName is the property of globalThis the exports are attached to.
const GlobalName = "renderwave"

// throwingShim wraps a raw export returning {value, error} in a function that
// throws a JS Error when error is set.
const throwingShim = `return function() {
	var r = raw.apply(null, arguments);
	if (r.error !== undefined) { throw new Error(r.error); }
	return r.value;
};`

// Register attaches every export to global[GlobalName]. The returned release
// function frees the Go callbacks.
func Register(global js.Value, log zerolog.Logger) func() {
	exports := Exports()
	names := make([]string, 0, len(exports))
	for name := range exports {
		names = append(names, name)
	}
	sort.Strings(names)

	ns := js.Global().Get("Object").New()
	makeShim := js.Global().Get("Function").New("raw", throwingShim)
	funcs := make([]js.Func, 0, len(names))

	for _, name := range names {
		fn := exports[name]
		raw := js.FuncOf(func(_ js.Value, args []js.Value) any {
			in := make([]any, len(args))
			for i, a := range args {
				in[i] = fromJS(a)
			}

			out, err := fn(in)
			result := map[string]any{}
			if err != nil {
				log.Debug().Str("export", name).Err(err).Msg("export call failed")
				result["error"] = err.Error()
				return result
			}
			result["value"] = toJS(out)
			return result
		})
		funcs = append(funcs, raw)
		ns.Set(name, makeShim.Invoke(raw))
	}

	global.Set(GlobalName, ns)
	log.Info().Int("exports", len(names)).Str("abi", ABIVersion).Msg("renderwave exports registered")

	return func() {
		for _, f := range funcs {
			f.Release()
		}
	}
}

// fromJS converts a JS value into the loose Go form the adapters accept.
func fromJS(v js.Value) any {
	switch v.Type() {
	case js.TypeNumber:
		return v.Float()
	case js.TypeString:
		return v.String()
	case js.TypeBoolean:
		return v.Bool()
	case js.TypeObject:
		if js.Global().Get("Array").Call("isArray", v).Bool() ||
			js.Global().Get("ArrayBuffer").Call("isView", v).Bool() {
			n := v.Length()
			out := make([]any, n)
			for i := range n {
				out[i] = fromJS(v.Index(i))
			}
			return out
		}
		return nil
	default:
		return nil
	}
}

// toJS converts an adapter result into a value js.ValueOf accepts.
// A LabelIndex becomes a native Map so insertion order is kept.
func toJS(v any) any {
	switch r := v.(type) {
	case []int:
		out := make([]any, len(r))
		for i, n := range r {
			out[i] = n
		}
		return out
	case *wave.LabelIndex:
		m := js.Global().Get("Map").New()
		for label, idx := range r.All() {
			m.Call("set", label, idx)
		}
		return m
	default:
		return v
	}
}
