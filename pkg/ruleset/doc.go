// Package ruleset compiles YAML rule-set files into validator mappings.
//
// A rule-set file names rules from a rules.Catalog and binds their
// parameters to query expressions on the instance (see File). Compile turns
// a File into mappings plus registration options, and Register adds them to
// a pvframework.Manager.
//
// Registry keeps named rule sets, each with its own Manager, and is what the
// HTTP API validates against:
//
//	reg := ruleset.NewRegistry(rules.Default(), pvframework.WithLogger(log))
//	if err := reg.LoadDir("rulesets"); err != nil {
//		return err
//	}
//	set, err := reg.Get("contracts")
//	res, err := set.Manager.Validate(ctx, instance)
package ruleset
