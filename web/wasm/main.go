//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/algo-pitch/internal/bridge"
)

var (
	table = bridge.NewTable()
	funcs []js.Func
)

func main() {
	api := js.Global().Get("Object").New()

	// create(sampleRate, frameLength) -> handle | error string
	api.Set("create", export(func(args []js.Value) any {
		if len(args) < 2 {
			return "create: expected sampleRate and frameLength"
		}
		h, err := table.Create(args[0].Int(), args[1].Int())
		if err != nil {
			return err.Error()
		}
		return float64(h)
	}))

	// process(handle, Float32Array) -> Hz, -1 when no pitch is found, or an
	// error string for invalid handles and frames of the wrong length
	api.Set("process", export(func(args []js.Value) any {
		if len(args) < 2 {
			return "process: expected handle and frame"
		}
		h := bridge.Handle(args[0].Float())
		input := args[1]
		frame := make([]float32, input.Length())
		for i := range frame {
			frame[i] = float32(input.Index(i).Float())
		}
		return bridge.HostValue(table.Process(h, frame))
	}))

	api.Set("destroy", export(func(args []js.Value) any {
		if len(args) < 1 {
			return js.Null()
		}
		if err := table.Destroy(bridge.Handle(args[0].Float())); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("live", export(func([]js.Value) any {
		return table.Len()
	}))

	js.Global().Set("AlgoPitch", api)
	select {}
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
