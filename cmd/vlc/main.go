package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand(os.Environ())
	if err := cmd.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.status)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
