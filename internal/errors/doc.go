// Package errors provides coded, actionable errors for the reactor CLI.
//
// Each error has a code that maps to a registered template:
//   - E1xx: configuration file errors
//   - E2xx: command-line usage errors
//   - E3xx: reactive runtime failures reported by a command
//
// Errors are built from a code and refined with builders:
//
//	err := errors.New("E120").
//	    WithLocation("reactor.yaml", 4, 0).
//	    WithSuggestion("Check the indentation of the bench section")
//
//	fmt.Print(err.Format())
//	// Output:
//	// ERROR E120: Invalid configuration file
//	//
//	//   reactor.yaml:4
//	//
//	//        3 │ bench:
//	//    →   4 │  iterations: ten
//	//        5 │ serve:
//	//
//	//   Hint: Check the indentation of the bench section
package errors
