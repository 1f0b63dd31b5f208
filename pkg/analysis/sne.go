package analysis

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// sneConfig drives one t-SNE embedding run.
type sneConfig struct {
	dims         int
	perplexity   float64
	iterations   int
	learningRate float64
	seed         int64
}

// t-SNE optimization schedule.
const (
	sneExaggeration     = 12.0 // early-exaggeration factor on P
	sneExaggerationIter = 250  // iterations with exaggeration active
	sneMomentumSwitch   = 250  // iteration at which momentum increases
	sneEarlyMomentum    = 0.5
	sneLateMomentum     = 0.8
	sneProbFloor        = 1e-12
	sneEntropyTol       = 1e-5
	sneEntropySteps     = 50
)

// tsneEmbed minimizes the KL divergence between the perplexity-calibrated
// neighbor distribution of X and a Student-t neighbor distribution of a
// low-dimensional embedding. It returns the embedding and the final KL
// divergence. The run is deterministic for a fixed seed. ctx is checked
// between iterations so hosts can cancel cooperatively.
func tsneEmbed(ctx context.Context, X *mat.Dense, cfg sneConfig) (*mat.Dense, float64, error) {
	n, _ := X.Dims()
	if n < 2 {
		return nil, 0, fmt.Errorf("need at least 2 samples, have %d", n)
	}

	P := jointProbabilities(X, cfg.perplexity)

	rng := rand.New(rand.NewSource(cfg.seed))
	Y := mat.NewDense(n, cfg.dims, nil)
	for i := 0; i < n; i++ {
		for d := 0; d < cfg.dims; d++ {
			Y.Set(i, d, rng.NormFloat64()*1e-4)
		}
	}

	update := mat.NewDense(n, cfg.dims, nil)
	grad := mat.NewDense(n, cfg.dims, nil)
	num := mat.NewDense(n, n, nil)

	for iter := 0; iter < cfg.iterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		exaggeration := 1.0
		if iter < sneExaggerationIter {
			exaggeration = sneExaggeration
		}
		momentum := sneEarlyMomentum
		if iter >= sneMomentumSwitch {
			momentum = sneLateMomentum
		}

		sumNum := studentTKernel(Y, num)

		// Gradient of KL(P||Q): 4 * sum_j (p_ij - q_ij) num_ij (y_i - y_j).
		grad.Zero()
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				q := math.Max(num.At(i, j)/sumNum, sneProbFloor)
				coef := 4 * (exaggeration*P.At(i, j) - q) * num.At(i, j)
				for d := 0; d < cfg.dims; d++ {
					grad.Set(i, d, grad.At(i, d)+coef*(Y.At(i, d)-Y.At(j, d)))
				}
			}
		}
		for i := 0; i < n; i++ {
			for d := 0; d < cfg.dims; d++ {
				u := momentum*update.At(i, d) - cfg.learningRate*grad.At(i, d)
				update.Set(i, d, u)
				Y.Set(i, d, Y.At(i, d)+u)
			}
		}
	}

	// Final divergence against the unexaggerated P.
	sumNum := studentTKernel(Y, num)
	kl := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			p := P.At(i, j)
			if p <= 0 {
				continue
			}
			q := math.Max(num.At(i, j)/sumNum, sneProbFloor)
			kl += p * math.Log(p/q)
		}
	}
	return Y, kl, nil
}

// studentTKernel fills num with (1+||y_i-y_j||^2)^-1 off the diagonal and
// returns the total, floored to avoid division by zero.
func studentTKernel(Y, num *mat.Dense) float64 {
	n, dims := Y.Dims()
	sum := 0.0
	for i := 0; i < n; i++ {
		num.Set(i, i, 0)
		for j := i + 1; j < n; j++ {
			d2 := 0.0
			for d := 0; d < dims; d++ {
				diff := Y.At(i, d) - Y.At(j, d)
				d2 += diff * diff
			}
			v := 1 / (1 + d2)
			num.Set(i, j, v)
			num.Set(j, i, v)
			sum += 2 * v
		}
	}
	return math.Max(sum, sneProbFloor)
}

// jointProbabilities calibrates a Gaussian bandwidth per point so that the
// conditional neighbor distribution hits the requested perplexity, then
// symmetrizes into joint probabilities summing to one.
func jointProbabilities(X *mat.Dense, perplexity float64) *mat.Dense {
	n, dims := X.Dims()
	D2 := make([][]float64, n)
	for i := range D2 {
		D2[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d2 := 0.0
			for d := 0; d < dims; d++ {
				diff := X.At(i, d) - X.At(j, d)
				d2 += diff * diff
			}
			D2[i][j] = d2
			D2[j][i] = d2
		}
	}

	logU := math.Log(perplexity)
	P := mat.NewDense(n, n, nil)
	row := make([]float64, n)
	for i := 0; i < n; i++ {
		// Binary search the precision beta = 1/(2 sigma^2).
		beta := 1.0
		betaMin := math.Inf(-1)
		betaMax := math.Inf(1)
		var h float64
		for step := 0; step < sneEntropySteps; step++ {
			h = condProbRow(D2[i], i, beta, row)
			diff := h - logU
			if math.Abs(diff) < sneEntropyTol {
				break
			}
			if diff > 0 {
				betaMin = beta
				if math.IsInf(betaMax, 1) {
					beta *= 2
				} else {
					beta = (beta + betaMax) / 2
				}
			} else {
				betaMax = beta
				if math.IsInf(betaMin, -1) {
					beta /= 2
				} else {
					beta = (beta + betaMin) / 2
				}
			}
		}
		for j := 0; j < n; j++ {
			P.Set(i, j, row[j])
		}
	}

	// Symmetrize; conditional rows each sum to one, so dividing by 2n
	// normalizes the joint matrix.
	joint := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			v := (P.At(i, j) + P.At(j, i)) / (2 * float64(n))
			joint.Set(i, j, math.Max(v, sneProbFloor))
		}
	}
	return joint
}

// condProbRow fills row with the conditional neighbor probabilities of
// point i at precision beta and returns the Shannon entropy of the row.
func condProbRow(d2 []float64, i int, beta float64, row []float64) float64 {
	sum := 0.0
	for j := range d2 {
		if j == i {
			row[j] = 0
			continue
		}
		row[j] = math.Exp(-d2[j] * beta)
		sum += row[j]
	}
	if sum == 0 {
		// Degenerate row: every neighbor infinitely far at this beta.
		for j := range row {
			if j != i {
				row[j] = 1 / float64(len(d2)-1)
			}
		}
		return math.Log(float64(len(d2) - 1))
	}
	h := 0.0
	for j := range d2 {
		if j == i || row[j] == 0 {
			continue
		}
		h += beta * d2[j] * row[j]
	}
	h = h/sum + math.Log(sum)
	for j := range row {
		row[j] /= sum
	}
	return h
}
