package xformat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect(p ScopeProvider) []any {
	var out []any
	p.ForEachScope(func(v any) { out = append(out, v) })
	return out
}

func TestWithScopeOrder(t *testing.T) {
	ctx := WithScope(context.Background(), "outer")
	ctx = WithScope(ctx, "middle")
	inner := WithScope(ctx, "inner")

	assert.Equal(t, []any{"outer", "middle", "inner"}, collect(ScopesFromContext(inner)))
	assert.Equal(t, []any{"outer", "middle"}, collect(ScopesFromContext(ctx)), "父 context 不受子作用域影响")
}

func TestWithScopeSiblings(t *testing.T) {
	parent := WithScope(context.Background(), "job")
	a := WithScope(parent, "a")
	b := WithScope(parent, "b")

	assert.Equal(t, []any{"job", "a"}, collect(ScopesFromContext(a)))
	assert.Equal(t, []any{"job", "b"}, collect(ScopesFromContext(b)))
}

func TestScopesFromContextEmpty(t *testing.T) {
	assert.Empty(t, collect(ScopesFromContext(context.Background())))
	//nolint:staticcheck // 验证 nil context 兜底
	assert.Empty(t, collect(ScopesFromContext(nil)))
	//nolint:staticcheck // 验证 nil context 兜底
	assert.Equal(t, []any{"x"}, collect(ScopesFromContext(WithScope(nil, "x"))))
}

func TestScopeProviders(t *testing.T) {
	assert.Empty(t, collect(NoScopes))
	assert.Equal(t, []any{1, "two"}, collect(ScopeList{1, "two"}))

	fn := ScopeFunc(func(visit func(any)) { visit("only") })
	assert.Equal(t, []any{"only"}, collect(fn))
}
