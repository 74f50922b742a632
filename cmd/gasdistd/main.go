package main

import (
	"fmt"
	"os"

	errorsmod "cosmossdk.io/errors"
)

func main() {
	if err := run(); err != nil {
		handleError(err)
	}
}

func run() error {
	return NewRootCmd().Execute()
}

func handleError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(getExitCode(err))
}

// getExitCode returns the ABCI code of registered errors and 1 otherwise.
func getExitCode(err error) int {
	codespace, code, _ := errorsmod.ABCIInfo(err, false)
	if codespace == errorsmod.UndefinedCodespace || code == 0 {
		return 1
	}
	return int(code)
}
