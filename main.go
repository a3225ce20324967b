package main

import (
	"os"

	"github.com/scan-io-git/depscout/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
