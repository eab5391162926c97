package searchlight

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/PuddleJumper2018/rsatoolbox/pkg/rdm"
)

// testModel is a stand-in for an opaque candidate model.
type testModel struct {
	name  string
	scale float64
}

func newEvalCollection(t *testing.T, n int) *rdm.RDMs {
	t.Helper()
	diss := mat.NewDense(n, 3, nil)
	vox := make([]int, n)
	for i := 0; i < n; i++ {
		diss.SetRow(i, []float64{float64(i), float64(i) + 0.5, float64(i) * 2})
		vox[i] = 100 + i
	}
	r, err := rdm.New(diss, rdm.Correlation, map[string][]int{"voxel_index": vox})
	require.NoError(t, err)
	return r
}

// sumEval scores each model by the scaled sum of the RDM row plus the
// center's voxel index, giving every center a distinct deterministic
// result.
func sumEval(models []testModel, slRDM *rdm.RDMs, opts EvalOptions) ([]float64, error) {
	vox, ok := slRDM.RowDescriptor("voxel_index")
	if !ok {
		return nil, errors.New("missing voxel_index descriptor")
	}
	row := slRDM.Vectors().RawRowView(0)
	sum := 0.0
	for _, v := range row {
		sum += v
	}
	scores := make([]float64, len(models))
	for i, m := range models {
		scores[i] = m.scale*sum + float64(vox[0])
	}
	return scores, nil
}

func TestEvaluateModels_SequentialMatchesParallel(t *testing.T) {
	slRDMs := newEvalCollection(t, 20)
	models := []testModel{{"a", 1}, {"b", -2}}
	opts := EvalOptions{Method: "corr"}

	sequential, err := EvaluateModels(slRDMs, models, sumEval, opts, 1)
	require.NoError(t, err)
	parallel, err := EvaluateModels(slRDMs, models, sumEval, opts, 4)
	require.NoError(t, err)

	require.Len(t, sequential, 20)
	assert.Equal(t, sequential, parallel,
		"worker count must not affect results or their order")
}

func TestEvaluateModels_ResultsAlignedWithRowOrder(t *testing.T) {
	slRDMs := newEvalCollection(t, 10)
	models := []testModel{{"a", 0}}

	// Make early centers finish last.
	slowEval := func(models []testModel, slRDM *rdm.RDMs, opts EvalOptions) ([]float64, error) {
		vox, _ := slRDM.RowDescriptor("voxel_index")
		time.Sleep(time.Duration(110-vox[0]) * time.Millisecond)
		return []float64{float64(vox[0])}, nil
	}

	results, err := EvaluateModels(slRDMs, models, slowEval, EvalOptions{}, 4)
	require.NoError(t, err)
	for i, res := range results {
		assert.Equal(t, float64(100+i), res[0],
			"result %d must belong to center row %d regardless of completion order", i, i)
	}
}

func TestEvaluateModels_FirstFailureFailsBatch(t *testing.T) {
	slRDMs := newEvalCollection(t, 15)
	models := []testModel{{"a", 1}}

	failing := func(models []testModel, slRDM *rdm.RDMs, opts EvalOptions) ([]float64, error) {
		vox, _ := slRDM.RowDescriptor("voxel_index")
		if vox[0] == 107 {
			return nil, fmt.Errorf("evaluation diverged at voxel %d", vox[0])
		}
		return []float64{0}, nil
	}

	results, err := EvaluateModels(slRDMs, models, failing, EvalOptions{}, 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "voxel 107")
	assert.Nil(t, results, "no partial results on failure")
}

func TestEvaluateModels_OptionsReachEveryInvocation(t *testing.T) {
	slRDMs := newEvalCollection(t, 5)
	theta := []float64{0.1, 0.9}

	check := func(models []testModel, slRDM *rdm.RDMs, opts EvalOptions) (string, error) {
		if opts.Method != "spearman" {
			return "", fmt.Errorf("unexpected method %q", opts.Method)
		}
		if got, ok := opts.Theta.([]float64); !ok || len(got) != 2 {
			return "", errors.New("theta not passed through")
		}
		return opts.Method, nil
	}

	results, err := EvaluateModels(slRDMs, nil, check, EvalOptions{Method: "spearman", Theta: theta}, 2)
	require.NoError(t, err)
	require.Len(t, results, 5)
	for _, r := range results {
		assert.Equal(t, "spearman", r)
	}
}

func TestEvaluateModels_NonPositiveWorkersRunSequentially(t *testing.T) {
	slRDMs := newEvalCollection(t, 3)

	results, err := EvaluateModels(slRDMs, []testModel{{"a", 1}}, sumEval, EvalOptions{}, 0)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}
