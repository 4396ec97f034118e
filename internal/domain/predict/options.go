package predict

// trainConfig collects Train's tunables.
type trainConfig struct {
	epochs       int
	learningRate float64
	schemaHash   string
}

// Option applies a training configuration option.
type Option func(*trainConfig)

// WithEpochs sets the number of gradient-descent epochs.
func WithEpochs(n int) Option {
	return func(c *trainConfig) {
		if n > 0 {
			c.epochs = n
		}
	}
}

// WithLearningRate sets the gradient-descent step size.
func WithLearningRate(lr float64) Option {
	return func(c *trainConfig) {
		if lr > 0 {
			c.learningRate = lr
		}
	}
}

// WithSchemaHash stamps the model with the hash of the schema its
// training matrix was built from.
func WithSchemaHash(hash string) Option {
	return func(c *trainConfig) {
		c.schemaHash = hash
	}
}
