package main

import (
	"os"

	"github.com/kdpii/nerlabel/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
