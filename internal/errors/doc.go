// Package errors provides structured, actionable error messages for sortable.
//
// Errors carry a unique code that maps to a registered template:
//   - a short message describing the error
//   - a detailed explanation
//   - a documentation URL
//
// # Error Categories
//
//   - config: configuration files and values
//   - render: render passes that do not line up with the item sequence
//   - protocol: wire protocol errors (invalid frames, invalid events)
//   - cli: command line usage errors
//
// Drag gestures never produce errors. A malformed or partial gesture simply
// does nothing; only programmer and infrastructure mistakes end up here.
//
// # Usage
//
//	err := errors.New("E104").
//	    WithDetail("list.insertPolicy must be \"drop\" or \"over\"").
//	    WithSuggestion("Remove the field to use the default")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E104: Invalid configuration value
//	//
//	//   list.insertPolicy must be "drop" or "over"
//	//
//	//   Hint: Remove the field to use the default
package errors
