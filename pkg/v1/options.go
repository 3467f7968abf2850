package v1

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	corpusDir     string
	dimension     int
	maxFeatures   int
	maxTemplates  int
	topK          int
	minSimilarity float64
}

// WithCorpusDir sets the template corpus directory.
func WithCorpusDir(dir string) Option {
	return func(c *clientConfig) {
		c.corpusDir = dir
	}
}

// WithDimension sets the embedding dimension.
func WithDimension(dim int) Option {
	return func(c *clientConfig) {
		c.dimension = dim
	}
}

// WithMaxFeatures caps the fitted vocabulary size.
func WithMaxFeatures(n int) Option {
	return func(c *clientConfig) {
		c.maxFeatures = n
	}
}

// WithMaxTemplates caps how many templates a load accepts.
func WithMaxTemplates(n int) Option {
	return func(c *clientConfig) {
		c.maxTemplates = n
	}
}

// WithTopK sets the default number of query results.
func WithTopK(k int) Option {
	return func(c *clientConfig) {
		c.topK = k
	}
}

// WithMinSimilarity sets the default similarity threshold.
func WithMinSimilarity(s float64) Option {
	return func(c *clientConfig) {
		c.minSimilarity = s
	}
}
