package gosolve

import "github.com/njchilds90/gosolve/symbolic"

//go:generate mockgen -source=solver.go -destination=internal/mocks/solver/mock_solver.go -package=mock_solver

// Solver finds the roots of expr = 0 for unknown. symbolic.PolySolver is the
// default implementation.
type Solver interface {
	Solve(expr symbolic.Expr, unknown string) (symbolic.SolutionSet, error)
}
