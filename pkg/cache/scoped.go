package cache

// ScopedKeyer wraps a Keyer with a prefix so that entries written by one
// build cannot be read by another whose encoders may produce different bytes.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), buildinfo.Version+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// OutputKey generates a prefixed output key.
func (k *ScopedKeyer) OutputKey(inputs []string, opts OutputKeyOpts) string {
	return k.prefix + k.inner.OutputKey(inputs, opts)
}
