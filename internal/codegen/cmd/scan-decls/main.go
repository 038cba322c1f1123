// Command scan-decls dumps the declarations and markers of a package
// directory as JSON. It is a debugging aid for marker syntax.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Alia5/synthgen/internal/codegen/scanner"
)

func main() {
	dir := "."
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	scope := ""
	if len(os.Args) > 2 {
		scope = os.Args[2]
	}

	decls, err := scanner.ScanDir(dir, scope)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to scan declarations: %v\n", err)
		os.Exit(1)
	}

	output, err := json.MarshalIndent(scanner.Candidates(decls), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(output))
}
