package main

import (
	"os"

	"tigerc/cmd"
)

func main() {
	os.Exit(cmd.Run())
}
