package data

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// CovFromResiduals estimates the channel-by-channel noise covariance from
// a matrix of residuals (n_residuals x n_channels). The sample covariance
// is optionally shrunk towards a scaled identity target:
//
//	cov = (1-shrinkage)*S + shrinkage*(trace(S)/n_channels)*I
//
// shrinkage must lie in [0, 1]; 0 returns the plain sample covariance.
func CovFromResiduals(residuals *mat.Dense, shrinkage float64) (*mat.SymDense, error) {
	if residuals == nil {
		return nil, fmt.Errorf("residuals must not be nil")
	}
	if shrinkage < 0 || shrinkage > 1 {
		return nil, fmt.Errorf("shrinkage must be in [0, 1], got %g", shrinkage)
	}
	rows, cols := residuals.Dims()
	if rows < 2 {
		return nil, fmt.Errorf("need at least 2 residual rows to estimate covariance, got %d", rows)
	}

	cov := mat.NewSymDense(cols, nil)
	stat.CovarianceMatrix(cov, residuals, nil)

	if shrinkage > 0 {
		trace := 0.0
		for i := 0; i < cols; i++ {
			trace += cov.At(i, i)
		}
		target := trace / float64(cols)
		for i := 0; i < cols; i++ {
			for j := i; j < cols; j++ {
				v := (1 - shrinkage) * cov.At(i, j)
				if i == j {
					v += shrinkage * target
				}
				cov.SetSym(i, j, v)
			}
		}
	}
	return cov, nil
}

// PrecFromResiduals estimates the noise precision matrix (inverse
// covariance) from residuals. The covariance is estimated as in
// CovFromResiduals; some shrinkage is usually required to keep it
// invertible when channels outnumber residual rows.
func PrecFromResiduals(residuals *mat.Dense, shrinkage float64) (*mat.SymDense, error) {
	cov, err := CovFromResiduals(residuals, shrinkage)
	if err != nil {
		return nil, err
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(cov); !ok {
		return nil, fmt.Errorf("covariance matrix is not positive definite; increase shrinkage")
	}
	prec := mat.NewSymDense(cov.SymmetricDim(), nil)
	if err := chol.InverseTo(prec); err != nil {
		return nil, fmt.Errorf("failed to invert covariance matrix: %w", err)
	}
	return prec, nil
}
