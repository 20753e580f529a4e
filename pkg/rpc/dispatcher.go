package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Muvon/bitclout-node-api/pkg/log"
)

const tracerName = "github.com/Muvon/bitclout-node-api/pkg/rpc"

// Dispatcher routes calls to the read or write node, picks a proxy and a
// User-Agent per call, and hands the request to a Transport. It holds no
// mutable state and is safe for concurrent use.
type Dispatcher struct {
	readURL  string
	writeURL string
	proxies  ProxyPool
	agents   IdentityPool

	transport Transport
	logger    log.Logger
	metrics   *Metrics
	tracer    trace.Tracer
}

// NewDispatcher validates cfg and parses its proxy and User-Agent pools.
func NewDispatcher(cfg Config, opts ...Option) (*Dispatcher, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	proxies, err := ParseProxyPool(cfg.Proxies)
	if err != nil {
		return nil, err
	}
	return newDispatcher(cfg, proxies, buildOptions(opts)), nil
}

func newDispatcher(cfg Config, proxies ProxyPool, o options) *Dispatcher {
	tp := o.tracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	return &Dispatcher{
		readURL:   cfg.readURL(),
		writeURL:  cfg.writeURL(),
		proxies:   proxies,
		agents:    ParseIdentityPool(cfg.UserAgents),
		transport: o.transport,
		logger:    o.logger.WithName("rpc"),
		metrics:   o.metrics,
		tracer:    tp.Tracer(tracerName),
	}
}

// Resolve returns the node URL and path a method is sent to.
func (d *Dispatcher) Resolve(method Method) Target {
	mode := method.Mode()
	base := d.readURL
	if mode == ModeWrite {
		base = d.writeURL
	}
	return Target{Mode: mode, BaseURL: base, Path: method.Path()}
}

// NewRequest builds the immutable request for one call, including its
// proxy and User-Agent picks. A nil payload sends no body on GET and an
// empty object otherwise.
func (d *Dispatcher) NewRequest(method Method, payload any, httpMethod string) (Request, error) {
	if httpMethod == "" {
		httpMethod = method.HTTPMethod()
	}

	var body []byte
	switch {
	case payload != nil:
		data, err := json.Marshal(payload)
		if err != nil {
			return Request{}, fmt.Errorf("%w: %w", ErrMarshalingRequest, err)
		}
		body = data
	case httpMethod != http.MethodGet:
		body = []byte("{}")
	}

	target := d.Resolve(method)
	req := Request{
		ID:         uuid.New(),
		Method:     method,
		Target:     target,
		HTTPMethod: httpMethod,
		Body:       body,
	}
	if p, ok := d.proxies.Pick(target.Mode); ok {
		req.Proxy = &p
	}
	if ua, ok := d.agents.Pick(target.Mode); ok {
		req.UserAgent = ua
	}
	return req, nil
}

// Run performs one call and returns the raw JSON body of a 2xx response.
func (d *Dispatcher) Run(ctx context.Context, method Method, payload any, httpMethod string) (json.RawMessage, error) {
	req, err := d.NewRequest(method, payload, httpMethod)
	if err != nil {
		return nil, err
	}

	ctx, span := d.tracer.Start(ctx, "rpc."+method.String(), trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("rpc.method", method.String()),
		attribute.String("rpc.mode", req.Target.Mode.String()),
		attribute.String("http.request.method", req.HTTPMethod),
		attribute.String("url.full", req.Target.URL()),
		attribute.String("request.id", req.ID.String()),
		attribute.Bool("proxy.used", req.Proxy != nil),
	)

	lg := log.FromContext(ctx)
	if _, isNoop := lg.(log.NoopLogger); isNoop {
		lg = d.logger
	}
	ctx = log.SetContextLogger(ctx, lg.WithKV("requestId", req.ID.String()))
	lg = log.FromContext(ctx)

	lg.Debug("dispatching",
		"method", method,
		"mode", req.Target.Mode,
		"url", req.Target.URL(),
		"proxy", proxyLabel(req.Proxy),
		"bytes", len(req.Body),
	)

	start := time.Now()
	data, err := d.transport.Send(ctx, req)
	if err == nil && !json.Valid(data) {
		err = fmt.Errorf("%w: response is not valid JSON", ErrDecodingResponse)
	}
	elapsed := time.Since(start)
	d.metrics.observe(req, elapsed, err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		lg.Warn("node call failed", "method", method, "elapsed", elapsed, "error", err)
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	lg.Debug("node call done", "method", method, "elapsed", elapsed, "bytes", len(data))
	return json.RawMessage(data), nil
}

func proxyLabel(p *Proxy) string {
	if p == nil {
		return "direct"
	}
	return p.String()
}
