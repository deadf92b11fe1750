package protocol

import "context"

type callMetaKey struct{}

// WithCallMeta attaches a tools/call _meta object to the context so that
// handlers further down can read session-scoped fields.
func WithCallMeta(ctx context.Context, meta map[string]any) context.Context {
	if len(meta) == 0 {
		return ctx
	}
	return context.WithValue(ctx, callMetaKey{}, meta)
}

// CallMeta returns the _meta object attached to the context, if any.
func CallMeta(ctx context.Context) map[string]any {
	meta, _ := ctx.Value(callMetaKey{}).(map[string]any)
	return meta
}

// CallMetaString returns a string-valued _meta field, or "" when the
// field is absent or not a string.
func CallMetaString(ctx context.Context, key string) string {
	s, _ := CallMeta(ctx)[key].(string)
	return s
}
