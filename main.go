package main

import (
	"os"

	"github.com/webosose/webos-emulator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
