// Command countycheck validates county dataset files before they are deployed.
//
//	countycheck data/counties.json data/extra.yaml
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"go.uber.org/multierr"

	"explore-islands/internal/county"
)

type options struct {
	Format string `long:"format" short:"f" choice:"json" choice:"yaml" description:"Dataset format, picked from the file extension when empty"`
	List   bool   `long:"list" short:"l" description:"Print the slugs of valid datasets"`
	Args   struct {
		Files []string `positional-arg-name:"FILE" required:"1"`
	} `positional-args:"yes"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if failed := run(opts, os.Stdout, os.Stderr); failed > 0 {
		os.Exit(1)
	}
}

// run checks every file and returns how many failed
func run(opts options, stdout, stderr io.Writer) int {
	failed := 0
	for _, path := range opts.Args.Files {
		if err := check(path, opts, stdout); err != nil {
			failed++
			fmt.Fprintf(stderr, "%s: FAIL\n", path)
			for _, e := range multierr.Errors(err) {
				fmt.Fprintf(stderr, "  %v\n", e)
			}
		}
	}
	return failed
}

func check(path string, opts options, stdout io.Writer) error {
	format := county.Format(opts.Format)
	if format == "" {
		f, err := county.FormatFromPath(path)
		if err != nil {
			return err
		}
		format = f
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	counties, err := county.Parse(data, format)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s: OK (%d counties)\n", path, len(counties))
	if opts.List {
		for _, c := range counties {
			fmt.Fprintf(stdout, "  %s\t%s\n", c.Slug, c.DisplayName())
		}
	}
	return nil
}
