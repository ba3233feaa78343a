package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text, color string
}{
	{"      _                       _", "#818cf8"},
	{"   __| | ___  _ __ ___   __ _(_)_ __   __ _  ___ _ __", "#a78bfa"},
	{"  / _` |/ _ \\| '_ ` _ \\ / _` | | '_ \\ / _` |/ _ \\ '_ \\", "#c084fc"},
	{" | (_| | (_) | | | | | | (_| | | | | | (_| |  __/ | | |", "#e879f9"},
	{"  \\__,_|\\___/|_| |_| |_|\\__,_|_|_| |_|\\__, |\\___|_| |_|", "#f472b6"},
	{"                                      |___/", "#fb7185"},
}

// PrintBanner writes the domaingen banner to w, coloured when w is a colour terminal.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Status writes a one-line outcome, green for success and red for failure.
func Status(w io.Writer, ok bool, format string, args ...any) {
	out := termenv.NewOutput(w)
	mark, color := "✔", "#22c55e"
	if !ok {
		mark, color = "✘", "#ef4444"
	}
	fmt.Fprintf(w, "%s %s\n", out.String(mark).Foreground(out.Color(color)).Bold(), fmt.Sprintf(format, args...))
}
