package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/milk9111/collide/scenario"
)

func main() {
	log.SetFlags(0)
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run checks each named scenario file and returns the process exit code:
// 0 when every case passes, 1 on any failure, 2 on bad usage.
func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("collide", flag.ContinueOnError)
	fs.SetOutput(out)
	verbose := fs.Bool("v", false, "print passing cases too")
	epsilon := fs.Float64("epsilon", 0, "override every file's epsilon (0 keeps the file's value)")
	embedded := fs.Bool("embedded", false, "also run every embedded scenario")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	names := fs.Args()
	if *embedded {
		names = append(names, scenario.Names()...)
	}
	if len(names) == 0 {
		fmt.Fprintln(out, "usage: collide [-v] [-epsilon e] [-embedded] scenario.yaml...")
		return 2
	}

	code := 0
	total, failed := 0, 0
	for _, name := range names {
		f, err := scenario.LoadFile(name)
		if err != nil {
			log.Printf("collide: %v", err)
			code = 1
			continue
		}
		if *epsilon > 0 {
			f.Epsilon = *epsilon
		}

		report, err := f.Run()
		if err != nil {
			log.Printf("collide: %v", err)
			code = 1
			continue
		}
		for _, o := range report.Outcomes {
			total++
			if o.Passed() {
				if *verbose {
					fmt.Fprintf(out, "PASS %s/%s: %v\n", report.Name, o.Case, o)
				}
				continue
			}
			failed++
			code = 1
			fmt.Fprintf(out, "FAIL %s/%s: %v\n", report.Name, o.Case, o)
			for _, msg := range o.Failures {
				fmt.Fprintf(out, "    %s\n", msg)
			}
		}
	}

	fmt.Fprintf(out, "%d cases, %d failed\n", total, failed)
	return code
}
