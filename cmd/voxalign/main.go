package main

import (
	"fmt"
	"os"

	"github.com/example/voxalign/internal/onnx"
)

func main() {
	defer func() {
		_ = onnx.Shutdown()
	}()

	if err := NewRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)

		if isArgumentError(err) {
			os.Exit(2)
		}

		os.Exit(1)
	}
}
