package main

import (
	"os"

	"github.com/joelklabo/zhistdb/internal/app"
)

func main() {
	os.Exit(app.RunCLI(os.Args[1:]))
}
