package tracing

import sdktrace "go.opentelemetry.io/otel/sdk/trace"

type options struct {
	ratio    float64
	ratioSet bool
}

// Option customises a provider
type Option func(o *options)

// WithSampleRatio samples the given fraction of root traces; child spans
// follow their parent's decision. 1 (the default) samples everything.
func WithSampleRatio(ratio float64) Option {
	return func(o *options) {
		o.ratio = ratio
		o.ratioSet = true
	}
}

func newOptions(opts []Option) *options {
	ret := &options{ratio: 1}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func (o *options) sampler() sdktrace.Sampler {
	if !o.ratioSet || o.ratio >= 1 {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(o.ratio))
}
