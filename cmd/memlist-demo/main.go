// Command memlist-demo walks through lists bound to tracked memory resources: building and
// trimming lists of ints, copying and moving lists of structured values, and watching a tracker's
// outstanding block count as a list grows and shrinks.
package main

import (
	"fmt"
	"os"

	kingpin "github.com/alecthomas/kingpin/v2"
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slog"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func main() {
	app := kingpin.New("memlist-demo", "Demonstrates lists backed by tracked memory resources.")
	logLevel := app.Flag("log-level", "Minimum level of tracker log output.").Default("info").Enum("debug", "info", "warn", "error")
	stats := app.Flag("stats", "Print each tracker's statistics as json before it is destroyed.").Bool()

	runCmd := app.Command("run", "Run demonstrations.").Default()
	which := runCmd.Arg("demo", "Demonstration to run: all, ints, complex, or resource.").Default("all").Enum("all", "ints", "complex", "resource")

	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevels[*logLevel]}))
	d := &demo{out: os.Stdout, logger: logger, stats: *stats}

	err := d.run(*which)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

func (d *demo) run(which string) error {
	demos := []struct {
		name string
		run  func() error
	}{
		{"ints", d.ints},
		{"complex", d.complex},
		{"resource", d.resource},
	}

	fmt.Fprintln(d.out, "=== memlist demonstrations ===")
	for _, entry := range demos {
		if which != "all" && which != entry.name {
			continue
		}

		err := entry.run()
		if err != nil {
			return errors.Wrapf(err, "%s demonstration failed", entry.name)
		}
	}

	fmt.Fprintln(d.out, "\n=== All demonstrations completed ===")
	return nil
}
