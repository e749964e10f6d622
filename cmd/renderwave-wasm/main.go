//go:build js && wasm

// Command renderwave-wasm is the browser build of the renderwave exports.
//
//	GOOS=js GOARCH=wasm go build -o renderwave.wasm ./cmd/renderwave-wasm
package main

import (
	"syscall/js"

	"github.com/rshade/renderwave/internal/bridge"
	"github.com/rshade/renderwave/internal/logging"
)

func main() {
	log := logging.ComponentLogger(logging.NewLogger(logging.Config{
		Level:  "warn",
		Format: logging.FormatJSON,
		Output: logging.OutputStderr,
	}), "bridge")

	bridge.Register(js.Global(), log)

	// Exports must stay callable for the lifetime of the page.
	select {}
}
