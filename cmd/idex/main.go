package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
)

var version = "dev"

func main() {
	// UTF-8 fallback keeps non-ASCII names readable on terminals with an
	// unrecognised locale.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
