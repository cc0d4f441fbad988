package main

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const doc = `emitcheck reports event emissions whose error is discarded

Emit and EmitNoOwner on events.Manager and events.Event stop at the first
failing observer and return its error. Calling them as a statement, or
through go or defer, loses that error.`

var Analyzer = &analysis.Analyzer{
	Name:     "emitcheck",
	Doc:      doc,
	Run:      run,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
}

var emitMethods = map[string]bool{
	"Emit":        true,
	"EmitNoOwner": true,
}

var dispatchTypes = map[string]bool{
	"Manager": true,
	"Event":   true,
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspector := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.ExprStmt)(nil),
		(*ast.GoStmt)(nil),
		(*ast.DeferStmt)(nil),
	}

	inspector.Preorder(nodeFilter, func(node ast.Node) {
		var call *ast.CallExpr
		switch stmt := node.(type) {
		case *ast.ExprStmt:
			call, _ = stmt.X.(*ast.CallExpr)
		case *ast.GoStmt:
			call = stmt.Call
		case *ast.DeferStmt:
			call = stmt.Call
		}
		if call == nil {
			return
		}

		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok || !emitMethods[sel.Sel.Name] {
			return
		}

		if typeName, ok := dispatchReceiver(pass, sel); ok {
			pass.Reportf(call.Pos(), "error returned by %s.%s is not checked", typeName, sel.Sel.Name)
		}
	})

	return nil, nil
}

// dispatchReceiver reports whether sel is a method selection on a Manager
// or Event type from a package named events.
func dispatchReceiver(pass *analysis.Pass, sel *ast.SelectorExpr) (string, bool) {
	selection, ok := pass.TypesInfo.Selections[sel]
	if !ok || selection.Kind() != types.MethodVal {
		return "", false
	}

	recv := selection.Recv()
	if ptr, ok := recv.(*types.Pointer); ok {
		recv = ptr.Elem()
	}

	named, ok := recv.(*types.Named)
	if !ok {
		return "", false
	}

	obj := named.Origin().Obj()
	if obj.Pkg() == nil || obj.Pkg().Name() != "events" || !dispatchTypes[obj.Name()] {
		return "", false
	}

	return "events." + obj.Name(), true
}
