package searchlight

import (
	"golang.org/x/sync/errgroup"

	"github.com/PuddleJumper2018/rsatoolbox/pkg/rdm"
)

// EvalOptions carry the fixed parameters handed to every invocation of
// an evaluation function.
type EvalOptions struct {
	// Method names the comparison method the evaluation function
	// should use, e.g. "corr".
	Method string

	// Theta is an optional fixed model parameter set, opaque to this
	// package.
	Theta any
}

// EvalFunc evaluates the given models against a single searchlight RDM
// (a one-row collection). It must be safe to call concurrently for
// different centers: invocations share no mutable state beyond the
// read-only models.
type EvalFunc[M, R any] func(models []M, slRDM *rdm.RDMs, opts EvalOptions) (R, error)

// EvaluateModels evaluates the models against every searchlight RDM in
// the collection, one invocation per center, running up to nJobs
// invocations concurrently. nJobs values below 1 run sequentially.
//
// Results are returned in a slice aligned with the collection's row
// order regardless of completion order. An error from any invocation
// fails the whole batch; no partial results are returned.
func EvaluateModels[M, R any](slRDMs *rdm.RDMs, models []M, evalFn EvalFunc[M, R],
	opts EvalOptions, nJobs int) ([]R, error) {
	if nJobs < 1 {
		nJobs = 1
	}

	n := slRDMs.N()
	results := make([]R, n)

	var g errgroup.Group
	g.SetLimit(nJobs)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			sub, err := slRDMs.Subset(i)
			if err != nil {
				return err
			}
			res, err := evalFn(models, sub, opts)
			if err != nil {
				return err
			}
			// Each task writes only its own slot.
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
