package main

import (
	"os"

	"evald/internal/evalctl"
)

func main() {
	os.Exit(evalctl.Main(os.Args[1:]))
}
