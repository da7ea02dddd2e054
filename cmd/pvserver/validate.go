package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/pvframework"
	"github.com/dmitrymomot/pvframework/pkg/report"
	"github.com/dmitrymomot/pvframework/pkg/rules"
	"github.com/dmitrymomot/pvframework/pkg/ruleset"
)

var errValidationFailed = errors.New("validation failed")

type validateFlags struct {
	ruleset  string
	instance string
	format   string
	batch    bool
}

func newValidateCmd() *cobra.Command {
	var flags validateFlags
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a JSON instance against a rule-set file",
		Long: `Validate a JSON instance against a rule-set file and print the findings.

With --batch the instance file holds a JSON array and every element is
validated on its own. Use "-" to read the instance from stdin. Warnings are
printed but only error-mode findings make the command fail.

  pvserver validate --ruleset rulesets/contracts.yaml --instance contract.json
  pvserver validate -r rulesets/contracts.yaml -i contracts.json --batch --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.ruleset, "ruleset", "r", "", "rule-set file")
	cmd.Flags().StringVarP(&flags.instance, "instance", "i", "-", `JSON instance file or "-" for stdin`)
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().BoolVar(&flags.batch, "batch", false, "instance file holds an array of instances")
	_ = cmd.MarkFlagRequired("ruleset")
	return cmd
}

func runValidate(cmd *cobra.Command, flags validateFlags) error {
	if flags.format != "text" && flags.format != "json" {
		return fmt.Errorf("unknown format %q", flags.format)
	}

	f, err := ruleset.LoadFile(flags.ruleset)
	if err != nil {
		return err
	}
	rs, err := ruleset.Compile(f, rules.Default())
	if err != nil {
		return err
	}
	m := pvframework.NewManager()
	if err := rs.Register(m); err != nil {
		return err
	}

	instances, err := readInstances(cmd, flags)
	if err != nil {
		return err
	}
	batch, err := m.ValidateAll(cmd.Context(), instances...)
	if err != nil {
		return err
	}

	reports := make([]report.Report, 0, batch.Total())
	for _, res := range batch.Results() {
		reports = append(reports, report.FromResult(f.Name, res))
	}
	if err := printReports(cmd.OutOrStdout(), flags, reports, batch); err != nil {
		return err
	}
	if n := batch.NumFails(); n > 0 {
		return fmt.Errorf("%w: %d of %d instances", errValidationFailed, n, batch.Total())
	}
	return nil
}

func readInstances(cmd *cobra.Command, flags validateFlags) ([]any, error) {
	var (
		data []byte
		err  error
	)
	if flags.instance == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(flags.instance)
	}
	if err != nil {
		return nil, fmt.Errorf("read instance: %w", err)
	}

	if flags.batch {
		var instances []any
		if err := json.Unmarshal(data, &instances); err != nil {
			return nil, fmt.Errorf("decode instances: %w", err)
		}
		if len(instances) == 0 {
			return nil, errors.New("no instances to validate")
		}
		return instances, nil
	}
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return nil, fmt.Errorf("decode instance: %w", err)
	}
	return []any{instance}, nil
}

func printReports(w io.Writer, flags validateFlags, reports []report.Report, batch *pvframework.Batch) error {
	if flags.format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if flags.batch {
			return enc.Encode(reports)
		}
		return enc.Encode(reports[0])
	}

	for i, res := range batch.Results() {
		rep := reports[i]
		status := "PASS"
		if !rep.Succeeded {
			status = "FAIL"
		}
		fmt.Fprintf(w, "%s %s: %d failures, %d warnings\n", status, rep.InstanceKey, rep.NumFails, rep.NumWarnings)
		for _, e := range res.Errors() {
			fmt.Fprintf(w, "  [%s] %v\n", e.Mode, e)
		}
	}
	if flags.batch {
		fmt.Fprintf(w, "%d instances, %d passed, %d failed\n", batch.Total(), batch.NumSucceeds(), batch.NumFails())
	}
	return nil
}
