// Command vlog-tokens dumps the raw token stream for a Verilog file.
// It is a debugging aid for the extraction rules: each emitted token is
// printed with its byte offset, action and captured groups.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/robert-at-pretension-io/verilog-doc/internal/extractor"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: vlog-tokens <file.v>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "vlog-tokens: %v\n", err)
		os.Exit(1)
	}

	scan := extractor.NewScanner(string(data))
	for {
		tok, ok := scan.Next()
		if !ok {
			break
		}
		fmt.Printf("%6d  %-24s", tok.Pos, tok.Action)
		for _, g := range tok.Groups {
			fmt.Printf(" %s", strconv.Quote(g))
		}
		fmt.Println()
	}
	if err := scan.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "vlog-tokens: %v\n", err)
		os.Exit(1)
	}
}
