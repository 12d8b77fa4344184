package main

import (
	"os"

	"github.com/MrSnakeDoc/docnav/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
