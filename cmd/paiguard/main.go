package main

import (
	"os"

	"github.com/danielmiessler/Personal-AI-Infrastructure-sub011/cmd/paiguard/commands"
)

func main() {
	os.Exit(commands.Run())
}
