// Package main provides the quantpipe CLI application.
// quantpipe runs protein quantification with the Triqler engine and
// annotates the results with UniProt gene names.
package main

import (
	"github.com/protquant/quantpipe/cmd"
)

func main() {
	cmd.Execute()
}
