// Command pvserver serves rule-set validation over HTTP and checks rule sets
// and instances from the command line.
//
// Usage:
//
//	# Start the HTTP service (configured through PV_* environment variables)
//	pvserver serve
//
//	# Check rule-set files
//	pvserver lint --dir rulesets/
//
//	# Validate a JSON instance against a rule-set file
//	pvserver validate --ruleset rulesets/contracts.yaml --instance contract.json
//
//	# List the available rules
//	pvserver rules
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
