package trace

import "context"

// carrier едет в context целиком: трассировщик и родительский спан.
// Задания батча получают копию со своим родителем.
type carrier struct {
	tracer Tracer
	parent uint64
}

type carrierKey struct{}

func carrierFrom(ctx context.Context) carrier {
	if ctx != nil {
		if c, ok := ctx.Value(carrierKey{}).(carrier); ok {
			return c
		}
	}
	return carrier{tracer: Nop}
}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return carrierFrom(ctx).tracer
}

// WithTracer attaches t to ctx and resets the parent span.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, carrierKey{}, carrier{tracer: t})
}

// ParentSpan is the span new spans started under ctx should hang from;
// zero means a root span.
func ParentSpan(ctx context.Context) uint64 {
	return carrierFrom(ctx).parent
}

// WithParent makes span the parent of spans begun under the returned context.
func WithParent(ctx context.Context, span *Span) context.Context {
	c := carrierFrom(ctx)
	c.parent = span.ID()
	return context.WithValue(ctx, carrierKey{}, c)
}
