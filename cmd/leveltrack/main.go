package main

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/lazypower/leveltrack/internal/cli"
)

//go:embed all:ui
var uiDist embed.FS

func main() {
	ui, err := fs.Sub(uiDist, "ui")
	if err != nil {
		fmt.Fprintln(os.Stderr, "embedded ui:", err)
		os.Exit(1)
	}
	if err := cli.Execute(ui); err != nil {
		os.Exit(1)
	}
}
