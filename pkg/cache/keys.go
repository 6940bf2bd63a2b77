package cache

// OutputKeyOpts lists every option that changes the encoded output.
type OutputKeyOpts struct {
	Policy     string `json:"policy"`
	Format     string `json:"format"`
	Quality    int    `json:"quality,omitempty"`
	Pixel      string `json:"pixel"`
	Background string `json:"background,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// OutputKey returns the key for the encoded result of concatenating
	// inputs, given as content hashes in input order.
	OutputKey(inputs []string, opts OutputKeyOpts) string
}

// DefaultKeyer hashes its inputs into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// OutputKey implements Keyer. Input order is part of the key.
func (DefaultKeyer) OutputKey(inputs []string, opts OutputKeyOpts) string {
	return hashKey("output", inputs, opts)
}

var _ Keyer = DefaultKeyer{}
