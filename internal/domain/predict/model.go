// Package predict trains and serves the revenue regression model.
//
// The model is deliberately simple: linear regression over standardized
// features, fitted to log1p(revenue) by gradient descent. Working in
// log space keeps extreme blockbusters from dominating the loss;
// predictions are mapped back to dollars with expm1. The persisted
// artifact carries the schema hash it was trained against so a drifted
// schema is rejected at load instead of producing plausible nonsense.
package predict

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"

	json "github.com/goccy/go-json"
)

// Default training configuration constants.
const (
	defaultEpochs       = 500
	defaultLearningRate = 0.05
	defaultSeed         = 42
	artifactVersion     = 1
)

// Model is a trained linear regressor plus the feature standardization
// parameters captured at training time.
type Model struct {
	weights    []float64
	bias       float64
	means      []float64
	stds       []float64
	schemaHash string
}

// Train fits a model to X (one row per movie, columns per schema
// feature) against y, revenue in dollars. ctx is checked between
// epochs so a long fit can be cancelled.
func Train(ctx context.Context, x [][]float64, y []float64, opts ...Option) (*Model, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("train: %w", ErrEmptyTrainingSet)
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("train: %d rows vs %d targets: %w", len(x), len(y), ErrDimensionMismatch)
	}

	cfg := &trainConfig{
		epochs:       defaultEpochs,
		learningRate: defaultLearningRate,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	cols := len(x[0])
	means, stds := standardization(x, cols)
	xs := standardize(x, means, stds)

	// Fit in log space.
	ylog := make([]float64, len(y))
	for i, v := range y {
		ylog[i] = math.Log1p(v)
	}

	m := &Model{
		weights:    make([]float64, cols),
		means:      means,
		stds:       stds,
		schemaHash: cfg.schemaHash,
	}

	n := float64(len(xs))
	for epoch := 0; epoch < cfg.epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("training cancelled at epoch %d: %w", epoch, err)
		}
		gradW := make([]float64, cols)
		var gradB float64
		for i, row := range xs {
			pred := m.bias + dot(m.weights, row)
			resid := pred - ylog[i]
			for j, v := range row {
				gradW[j] += resid * v
			}
			gradB += resid
		}
		for j := range m.weights {
			m.weights[j] -= cfg.learningRate * gradW[j] / n
		}
		m.bias -= cfg.learningRate * gradB / n
	}
	return m, nil
}

// Predict maps one schema-aligned vector to predicted revenue in
// dollars. The only error is a vector whose width disagrees with the
// trained weights, which indicates the caller bypassed the schema.
func (m *Model) Predict(vec []float64) (float64, error) {
	if len(vec) != len(m.weights) {
		return 0, fmt.Errorf("vector width %d, model width %d: %w", len(vec), len(m.weights), ErrDimensionMismatch)
	}
	z := make([]float64, len(vec))
	for j, v := range vec {
		z[j] = (v - m.means[j]) / m.stds[j]
	}
	return math.Expm1(m.bias + dot(m.weights, z)), nil
}

// SchemaHash returns the hash of the schema the model was trained on.
func (m *Model) SchemaHash() string { return m.schemaHash }

// Width returns the number of features the model expects.
func (m *Model) Width() int { return len(m.weights) }

// artifact is the persisted JSON layout.
type artifact struct {
	Version    int       `json:"version"`
	SchemaHash string    `json:"schema_hash"`
	Weights    []float64 `json:"weights"`
	Bias       float64   `json:"bias"`
	Means      []float64 `json:"means"`
	Stds       []float64 `json:"stds"`
}

// Save writes the model artifact to path.
func (m *Model) Save(path string) error {
	raw, err := json.MarshalIndent(artifact{
		Version:    artifactVersion,
		SchemaHash: m.schemaHash,
		Weights:    m.weights,
		Bias:       m.bias,
		Means:      m.means,
		Stds:       m.stds,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal model artifact: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write model artifact: %w", err)
	}
	return nil
}

// Load reads a model artifact. Schema-hash verification is the
// caller's job since only the caller holds the loaded schema.
func Load(path string) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArtifactUnreadable, err)
	}
	var a artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArtifactUnreadable, err)
	}
	if a.Version != artifactVersion {
		return nil, fmt.Errorf("%w: artifact version %d", ErrArtifactUnreadable, a.Version)
	}
	if len(a.Weights) != len(a.Means) || len(a.Weights) != len(a.Stds) {
		return nil, fmt.Errorf("%w: inconsistent parameter widths", ErrArtifactUnreadable)
	}
	return &Model{
		weights:    a.Weights,
		bias:       a.Bias,
		means:      a.Means,
		stds:       a.Stds,
		schemaHash: a.SchemaHash,
	}, nil
}

// Metrics reports regression quality on actual dollar amounts.
type Metrics struct {
	R2   float64 `json:"r2"`
	RMSE float64 `json:"rmse"`
	MAE  float64 `json:"mae"`
}

// Evaluate computes R2, RMSE and MAE between true and predicted
// dollar values.
func Evaluate(yTrue, yPred []float64) Metrics {
	n := float64(len(yTrue))
	if n == 0 {
		return Metrics{}
	}
	var mean, sse, sae float64
	for _, v := range yTrue {
		mean += v
	}
	mean /= n
	var sst float64
	for i := range yTrue {
		d := yPred[i] - yTrue[i]
		sse += d * d
		sae += math.Abs(d)
		t := yTrue[i] - mean
		sst += t * t
	}
	m := Metrics{
		RMSE: math.Sqrt(sse / n),
		MAE:  sae / n,
	}
	if sst > 0 {
		m.R2 = 1 - sse/sst
	}
	return m
}

// Split partitions rows into train and test sets with a deterministic
// shuffle. testFrac is clamped to (0,1).
func Split(x [][]float64, y []float64, testFrac float64, seed int64) (xTrain [][]float64, xTest [][]float64, yTrain []float64, yTest []float64) {
	if testFrac <= 0 || testFrac >= 1 {
		testFrac = 0.2
	}
	idx := rand.New(rand.NewSource(seed)).Perm(len(x)) //nolint:gosec // deterministic split, not crypto
	cut := int(float64(len(x)) * testFrac)
	for i, j := range idx {
		if i < cut {
			xTest = append(xTest, x[j])
			yTest = append(yTest, y[j])
		} else {
			xTrain = append(xTrain, x[j])
			yTrain = append(yTrain, y[j])
		}
	}
	return xTrain, xTest, yTrain, yTest
}

// standardization computes per-column mean and std. A zero std is
// replaced with 1 so constant columns pass through unchanged.
func standardization(x [][]float64, cols int) (means []float64, stds []float64) {
	means = make([]float64, cols)
	stds = make([]float64, cols)
	n := float64(len(x))
	for _, row := range x {
		for j, v := range row {
			means[j] += v
		}
	}
	for j := range means {
		means[j] /= n
	}
	for _, row := range x {
		for j, v := range row {
			d := v - means[j]
			stds[j] += d * d
		}
	}
	for j := range stds {
		stds[j] = math.Sqrt(stds[j] / n)
		if stds[j] == 0 {
			stds[j] = 1
		}
	}
	return means, stds
}

func standardize(x [][]float64, means, stds []float64) [][]float64 {
	out := make([][]float64, len(x))
	for i, row := range x {
		z := make([]float64, len(row))
		for j, v := range row {
			z[j] = (v - means[j]) / stds[j]
		}
		out[i] = z
	}
	return out
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
