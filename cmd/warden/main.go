package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/wardenhq/warden/cmd/warden/commands"
	"github.com/wardenhq/warden/internal/hook"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		var blocked *hook.BlockError
		if errors.As(err, &blocked) {
			fmt.Fprintln(os.Stderr, blocked.Error())
			os.Exit(hook.ExitBlock)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
