package debugs

import (
	"fmt"
	"reflect"

	"github.com/reusee/amc/ir"
	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

// toStarlarkValue converts a global for the repl. Functions become builtins called name.
func toStarlarkValue(name string, v any) starlark.Value {
	switch v := v.(type) {

	case nil:
		return starlark.None
	case starlark.Value:
		return v

	case bool:
		return starlark.Bool(v)
	case string:
		return starlark.String(v)
	case int:
		return starlark.MakeInt(v)
	case int64:
		return starlark.MakeInt64(v)
	case float64:
		return starlark.Float(v)

	case ir.Symbol:
		// blank is the empty string, as in the source
		return starlark.String(v)
	case []ir.Symbol:
		elems := make([]starlark.Value, len(v))
		for i, sym := range v {
			elems[i] = starlark.String(sym)
		}
		return starlark.NewList(elems)

	case *ir.State:
		if v == nil {
			return starlark.None
		}
		return stateDict(v)

	case ir.StateRef:
		return starlark.String(fmt.Sprint(v))

	case *ir.Machine:
		if v == nil {
			return starlark.None
		}
		states := make([]starlark.Value, len(v.States))
		for i, state := range v.States {
			states[i] = stateDict(state)
		}
		d := starlark.NewDict(3)
		d.SetKey(starlark.String("symbols"), toStarlarkValue("", v.Symbols))
		d.SetKey(starlark.String("states"), starlark.NewList(states))
		d.SetKey(starlark.String("init"), toStarlarkValue("", v.Init))
		return d

	case error:
		return starlark.String(v.Error())
	case fmt.Stringer:
		return starlark.String(v.String())

	}

	value := reflect.ValueOf(v)
	switch value.Kind() {

	case reflect.Bool:
		return starlark.Bool(value.Bool())
	case reflect.String:
		return starlark.String(value.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return starlark.MakeInt64(value.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return starlark.MakeUint64(value.Uint())

	case reflect.Slice, reflect.Array:
		elems := make([]starlark.Value, value.Len())
		for i := range elems {
			elems[i] = toStarlarkValue("", value.Index(i).Interface())
		}
		return starlark.NewList(elems)

	case reflect.Map:
		d := starlark.NewDict(value.Len())
		iter := value.MapRange()
		for iter.Next() {
			d.SetKey(
				toStarlarkValue("", iter.Key().Interface()),
				toStarlarkValue("", iter.Value().Interface()),
			)
		}
		return d

	case reflect.Pointer:
		if value.IsNil() {
			return starlark.None
		}
		return toStarlarkValue(name, value.Elem().Interface())

	case reflect.Func:
		if value.IsNil() {
			return starlark.None
		}
		return starlarkutil.MakeFunc(name, v)

	}

	panic(fmt.Errorf("unsupported type for starlark: %T", v))
}

// stateDict describes a state by its name and parameters, with the rule texts keyed by
// the matched symbol.
func stateDict(state *ir.State) *starlark.Dict {
	d := starlark.NewDict(5)
	d.SetKey(starlark.String("name"), starlark.String(state.Name()))
	d.SetKey(starlark.String("params"), toStarlarkValue("", state.Params()))
	d.SetKey(starlark.String("sentinel"), starlark.Bool(state.IsSentinel()))
	rules := starlark.NewDict(0)
	for sym, rule := range state.Rules() {
		rules.SetKey(starlark.String(sym), starlark.String(rule.String()))
	}
	d.SetKey(starlark.String("rules"), rules)
	if _, fallback := state.Default(); fallback != nil {
		d.SetKey(starlark.String("default"), starlark.String(fallback.String()))
	} else {
		d.SetKey(starlark.String("default"), starlark.None)
	}
	return d
}

func toStringDict(globals map[string]any) starlark.StringDict {
	dict := make(starlark.StringDict, len(globals))
	for name, value := range globals {
		dict[name] = toStarlarkValue(name, value)
	}
	return dict
}
