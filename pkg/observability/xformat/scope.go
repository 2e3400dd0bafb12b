package xformat

import "context"

// ScopeProvider 枚举当前活动的作用域值。
//
// 宿主负责作用域的存储和压栈/出栈，格式化器只通过本接口按压栈顺序（外层在前）读取。
type ScopeProvider interface {
	ForEachScope(visit func(scope any))
}

// ScopeFunc 函数形式的 ScopeProvider。
type ScopeFunc func(visit func(scope any))

// ForEachScope 实现 ScopeProvider。
func (f ScopeFunc) ForEachScope(visit func(scope any)) {
	if f != nil {
		f(visit)
	}
}

// NoScopes 不含任何作用域的 ScopeProvider。
var NoScopes ScopeProvider = ScopeFunc(nil)

// ScopeList 固定的作用域列表，按切片顺序枚举。
type ScopeList []any

// ForEachScope 实现 ScopeProvider。
func (l ScopeList) ForEachScope(visit func(scope any)) {
	for _, v := range l {
		visit(v)
	}
}

// scopeNode 不可变作用域链节点，压栈即创建子节点。
type scopeNode struct {
	parent *scopeNode
	value  any
	depth  int
}

type scopeKey struct{}

// WithScope 返回携带新作用域的派生 context。
//
// 作用域随 context 生命周期自然 "出栈"，多个 goroutine 共享父 context 不会互相干扰。
func WithScope(ctx context.Context, value any) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	parent, _ := ctx.Value(scopeKey{}).(*scopeNode)
	depth := 1
	if parent != nil {
		depth = parent.depth + 1
	}
	return context.WithValue(ctx, scopeKey{}, &scopeNode{parent: parent, value: value, depth: depth})
}

// ScopesFromContext 返回 ctx 中的作用域链，没有作用域时返回 [NoScopes]。
func ScopesFromContext(ctx context.Context) ScopeProvider {
	if ctx == nil {
		return NoScopes
	}
	if n, ok := ctx.Value(scopeKey{}).(*scopeNode); ok && n != nil {
		return n
	}
	return NoScopes
}

// ForEachScope 按压栈顺序（最外层在前）访问作用域。
func (n *scopeNode) ForEachScope(visit func(scope any)) {
	chain := make([]any, n.depth)
	for cur, i := n, n.depth-1; cur != nil && i >= 0; cur, i = cur.parent, i-1 {
		chain[i] = cur.value
	}
	for _, v := range chain {
		visit(v)
	}
}
