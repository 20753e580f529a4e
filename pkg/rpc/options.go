package rpc

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/Muvon/bitclout-node-api/pkg/log"
	"github.com/Muvon/bitclout-node-api/pkg/sign"
)

type options struct {
	transport      Transport
	logger         log.Logger
	metrics        *Metrics
	tracerProvider trace.TracerProvider
	signer         sign.Signer
}

// Option customizes a Dispatcher or Client.
type Option func(*options)

// WithTransport replaces the default HTTPTransport.
func WithTransport(t Transport) Option {
	return func(o *options) { o.transport = t }
}

// WithLogger sets the logger used when the call context carries none.
func WithLogger(lg log.Logger) Option {
	return func(o *options) { o.logger = lg }
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithTracerProvider sets the provider of dispatch spans. The global
// provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// WithSigner makes the Client sign with s instead of a key from Config.
func WithSigner(s sign.Signer) Option {
	return func(o *options) { o.signer = s }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.transport == nil {
		o.transport = NewHTTPTransport(DefaultHTTPTransportConfig)
	}
	if o.logger == nil {
		o.logger = log.NewNoopLogger()
	}
	return o
}
