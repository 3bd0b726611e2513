package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/arnavshah/roster-config-api/internal/cli"
)

func main() {
	if err := cli.NewApp().Execute(); err != nil {
		if !errors.Is(err, cli.ErrBlocking) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
