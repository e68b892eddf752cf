//go:build js && wasm

// Command wasm exposes the swim engine to the browser via WebAssembly.
// After loading, it registers a global JavaScript function:
//
//	runSwim(inputJSON, [settingsJSON]) -> logJSON
//
// The input and output are JSON-encoded SimulationInput and SimulationLog,
// the same contract the CLI uses. The optional settings object overrides the
// input's own settings block.
package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/cxd309/swim-engine/internal/config"
	"github.com/cxd309/swim-engine/internal/engine"
)

func main() {
	js.Global().Set("runSwim", js.FuncOf(runSwim))
	select {} // keep the WASM module alive until the page is closed
}

func runSwim(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return map[string]any{"error": "no input provided"}
	}

	var opts []engine.Option
	if len(args) > 1 && args[1].Type() == js.TypeString {
		cfg := config.EmptySimulationConfig()
		if err := json.Unmarshal([]byte(args[1].String()), cfg); err != nil {
			return map[string]any{"error": "invalid settings JSON: " + err.Error()}
		}
		if err := cfg.Validate(); err != nil {
			return map[string]any{"error": err.Error()}
		}
		opts = append(opts, engine.WithConfig(cfg))
	}

	result, err := engine.RunJSON(args[0].String(), opts...)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return result
}
