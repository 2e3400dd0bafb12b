package xformat

import "fmt"

// EventID 事件标识：数值 ID 和可选名称。
type EventID struct {
	ID   int
	Name string
}

// RenderFunc 由调用方提供，把负载和错误渲染为消息文本。
type RenderFunc func(state any, err error) string

// Record 一条日志记录。
//
// 由调用点创建，在格式化器中同步消费，之后不再使用；构造后不应修改。
type Record struct {
	Level    Level
	Category string
	EventID  EventID
	State    any
	Err      error
	Render   RenderFunc
}

// Message 返回渲染后的消息文本。
//
// Render 为 nil 时退化为 fmt.Sprint(State)；State 也为 nil 时返回空字符串。
func (r *Record) Message() string {
	if r.Render != nil {
		return r.Render(r.State, r.Err)
	}
	if r.State == nil {
		return ""
	}
	return fmt.Sprint(r.State)
}

// Exception 返回错误的字符串形式，无错误时返回空字符串。
func (r *Record) Exception() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// MessageRender 把 State 当作现成消息的 RenderFunc。
func MessageRender(state any, _ error) string {
	if s, ok := state.(string); ok {
		return s
	}
	if state == nil {
		return ""
	}
	return fmt.Sprint(state)
}
