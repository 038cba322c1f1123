// Command synthgen-vet reports missing or stale synthgen output. It can be
// used standalone or as a go vet tool:
//
//	go vet -vettool=$(which synthgen-vet) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/Alia5/synthgen/internal/analyzer"
)

func main() {
	singlechecker.Main(analyzer.Analyzer)
}
