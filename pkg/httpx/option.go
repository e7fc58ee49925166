package httpx

type Option func(*LoggingRoundTripper)

// WithPeer names the remote side in every record (for example "masterdata").
func WithPeer(peer string) Option {
	return func(rt *LoggingRoundTripper) {
		rt.peer = peer
	}
}

// WithLogFieldMaxLen clips dumped bodies after masking. 0 disables clipping.
func WithLogFieldMaxLen(n int) Option {
	return func(rt *LoggingRoundTripper) {
		rt.logFieldMaxLen = n
	}
}

func WithSensitiveDataMasker(m sensitiveDataMasker) Option {
	return func(rt *LoggingRoundTripper) {
		rt.sensitiveDataMasker = m
	}
}
