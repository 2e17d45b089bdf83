package cache

// ScopedKeyer prefixes every key of an inner Keyer. It keeps the caches of
// different owners apart when they share one backend.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "owner:NL11RABO0104955555:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// If inner is nil, a DefaultKeyer is used.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// FlowKey implements Keyer.
func (k *ScopedKeyer) FlowKey(transactionsHash string, opts FlowKeyOpts) string {
	return k.prefix + k.inner.FlowKey(transactionsHash, opts)
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(graphHash, opts)
}
