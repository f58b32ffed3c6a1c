package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share one
// Redis or MongoDB backend without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) LayoutKey(circuitHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(circuitHash, opts)
}

func (k *ScopedKeyer) NetlistKey(circuitHash string, opts NetlistKeyOpts) string {
	return k.prefix + k.inner.NetlistKey(circuitHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(circuitHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(circuitHash, opts)
}
