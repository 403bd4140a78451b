package regex

type options struct {
	glyphs    Glyphs
	maxPasses int
}

type Option func(*options)

// WithGlyphs sets the epsilon and empty-language glyphs Parse accepts.
func WithGlyphs(g Glyphs) Option {
	return func(o *options) { o.glyphs = g }
}

// WithMaxPasses bounds the simplifier runs made by Synthesize.
func WithMaxPasses(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxPasses = n
		}
	}
}

func newOptions(opts []Option) options {
	o := options{glyphs: DefaultGlyphs, maxPasses: DefaultMaxPasses}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
