package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var red = color.New(color.FgRed).SprintFunc()

func init() {
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
}

func fatal(w io.Writer, msg interface{}) {
	var s string
	switch msg := msg.(type) {
	case string:
		s = msg
	case error:
		s = msg.Error()
	default:
		s = fmt.Sprintf("%v", msg)
	}
	fmt.Fprintf(w, "%s\n", red(s))
}
