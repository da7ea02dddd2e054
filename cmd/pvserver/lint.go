package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/pvframework"
	"github.com/dmitrymomot/pvframework/pkg/rules"
	"github.com/dmitrymomot/pvframework/pkg/ruleset"
)

var errLintFailed = errors.New("lint failed")

func newLintCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "lint [files...]",
		Short: "Check rule-set files",
		Long: `Parse and compile rule-set files against the rule catalog.

Every rule must name a known rule, bind known parameters and use a valid
mapping, mode and timeout. Examples:

  pvserver lint rulesets/contracts.yaml
  pvserver lint --dir rulesets/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" && len(args) == 0 {
				return errors.New("either --dir or at least one file must be given")
			}

			var files []ruleset.File
			total := len(args)
			if dir != "" {
				loaded, err := ruleset.LoadDir(dir)
				if err != nil {
					return err
				}
				files = append(files, loaded...)
				total += len(loaded)
			}

			failed := 0
			for _, path := range args {
				f, err := ruleset.LoadFile(path)
				if err != nil {
					cmd.PrintErrf("FAIL %s: %v\n", path, err)
					failed++
					continue
				}
				files = append(files, f)
			}

			catalog := rules.Default()
			for _, f := range files {
				if err := lintFile(f, catalog); err != nil {
					cmd.PrintErrf("FAIL %s: %v\n", f.Name, err)
					failed++
					continue
				}
				cmd.Printf("ok   %s (%d rules)\n", f.Name, len(f.Rules))
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d rule sets", errLintFailed, failed, total)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "directory of rule-set files")
	return cmd
}

// lintFile compiles f and registers it on a throwaway manager, which also
// checks the parameter coverage of every mapping.
func lintFile(f ruleset.File, catalog *rules.Catalog) error {
	rs, err := ruleset.Compile(f, catalog)
	if err != nil {
		return err
	}
	return rs.Register(pvframework.NewManager())
}
