// Package buildutil provides utilities for extracting attributes from
// buildtools AST nodes.
//
// It is used by the Starlark manifest reader to pull project and group
// declarations out of call expressions.
package buildutil

import (
	"github.com/bazelbuild/buildtools/build"
)

// attr returns the right-hand side of a named argument, or nil.
func attr(call *build.CallExpr, name string) build.Expr {
	for _, arg := range call.List {
		assign, ok := arg.(*build.AssignExpr)
		if !ok {
			continue
		}
		lhs, ok := assign.LHS.(*build.Ident)
		if !ok || lhs.Name != name {
			continue
		}
		return assign.RHS
	}
	return nil
}

// Has reports whether the call passes the named argument, whatever its value.
func Has(call *build.CallExpr, name string) bool {
	return attr(call, name) != nil
}

// String extracts a string attribute from a function call by name.
// If name is empty and the call has positional arguments, returns the first
// positional string argument.
// Returns empty string if the attribute is not found or not a string.
func String(call *build.CallExpr, name string) string {
	if name == "" {
		if len(call.List) > 0 {
			if str, ok := call.List[0].(*build.StringExpr); ok {
				return str.Value
			}
		}
		return ""
	}
	if str, ok := attr(call, name).(*build.StringExpr); ok {
		return str.Value
	}
	return ""
}

// StringList extracts a list of strings attribute from a function call by name.
// Returns nil if the attribute is not found or not a list.
// Non-string elements in the list are silently skipped.
func StringList(call *build.CallExpr, name string) []string {
	list, ok := attr(call, name).(*build.ListExpr)
	if !ok {
		return nil
	}
	result := make([]string, 0, len(list.List))
	for _, elem := range list.List {
		if str, ok := elem.(*build.StringExpr); ok {
			result = append(result, str.Value)
		}
	}
	return result
}

// FuncName returns the function name from a CallExpr.
// Returns empty string if the call is not a simple function call
// (e.g., method calls like foo.bar()).
func FuncName(call *build.CallExpr) string {
	if ident, ok := call.X.(*build.Ident); ok {
		return ident.Name
	}
	return ""
}

// Calls returns the top-level call statements of a file in source order.
func Calls(f *build.File) []*build.CallExpr {
	var calls []*build.CallExpr
	for _, stmt := range f.Stmt {
		if call, ok := stmt.(*build.CallExpr); ok {
			calls = append(calls, call)
		}
	}
	return calls
}
