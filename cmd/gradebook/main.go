// Command gradebook analyses a roster of student exam marks.
//
// Usage:
//
//	gradebook chart [file] [--out marks_chart.xlsx]
//	gradebook stats [file] [--csv stats.csv]
//	gradebook rank  [file] [--csv ranking.csv]
//
// The roster defaults to main.csv or the configured roster path.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
