package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/thenoetrevino/trtodo/cmd"
	"github.com/thenoetrevino/trtodo/internal/cli"
)

func main() {
	err := cmd.Execute()
	if err == nil {
		return
	}

	// Commands report their own errors; cobra's argument errors are not reported yet
	var status *cli.StatusError
	if !errors.As(err, &status) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cli.ExitCode(err))
}
