// Package locator implements a small query language for pulling values out of
// arbitrary, possibly deeply nested object graphs.
//
// A Locator is an ordered list of steps. Resolving it against a root value
// produces a lazy sequence of Match values, each carrying the extracted value
// and a location label that describes where inside the root it was found.
//
// # Steps
//
//   - Path navigates one named member (struct field, map key, or anything an
//     Accessor understands). Dotted names are allowed.
//   - Iterate expands the current value into several sub-values. Each sub-value
//     carries a label suffix that is appended to the location.
//   - Custom hands the current value and its location to arbitrary extraction
//     logic which produces matches directly.
//
// A path step applied after an iteration step is applied to every element
// independently, so every iteration multiplies the width of the result.
// Members that do not exist never cause a panic: the branch yields a Match
// whose Err wraps ErrMissingValue.
//
// # Usage
//
//	ibans := locator.New().
//	    Path("banking_data").
//	    Iterate(locator.Entries("[contract_id=%v]")).
//	    Path("iban")
//
//	for m := range ibans.Resolve(customer) {
//	    if m.Missing() {
//	        continue
//	    }
//	    fmt.Println(m.Location, m.Value)
//	}
//
// Expressions such as "contracts[*].iban" can be compiled into locators with
// Compile, which is what rule files use.
//
// # Accessors
//
// Member access is delegated to an Accessor. The default one uses reflection:
// it follows pointers and interfaces, reads string-keyed maps, and looks up
// exported struct fields by name or by their `pv` / `json` tag. Types can take
// over member resolution by implementing MemberLookup.
//
// Resolution reads the instance without copying it. Mutating the instance
// while a sequence is consumed is undefined behaviour.
package locator
