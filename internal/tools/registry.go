// Package tools 定义对 host 暴露的工具面：每个工具自描述
// （名称、描述、JSON schema），由注册表统一管理。
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/p20y/tts-openclaw/internal/engine"
	"github.com/p20y/tts-openclaw/internal/logger"
)

// Result 工具执行结果。Content 由 host UI 按块渲染，
// Structured 是等价的结构化对象，供支持结构化输出的 host 使用。
type Result struct {
	Content    []engine.Block `json:"content"`
	Structured any            `json:"structured,omitempty"`
	IsError    bool           `json:"is_error,omitempty"`
}

// ErrorResult 把错误渲染为带 "Error:" 前缀的文本内容块。
// 部分 host 约定期望以内容块而非硬错误的形式收到可恢复失败。
func ErrorResult(err error) *Result {
	return &Result{
		IsError: true,
		Content: []engine.Block{{Type: "text", Text: "Error: " + err.Error()}},
	}
}

// Tool 工具接口，每个工具必须自描述。
type Tool interface {
	Name() string
	Description() string
	Schema() json.RawMessage
	Execute(ctx context.Context, args json.RawMessage) (*Result, error)
}

// Registry 管理所有已注册工具。
type Registry struct {
	tools map[string]Tool
}

// NewRegistry 创建工具注册表。
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register 注册一个工具。
func (r *Registry) Register(t Tool) {
	r.tools[t.Name()] = t
	logger.Debugf("[tools] 已注册工具: %s", t.Name())
}

// Get 获取指定名称的工具。
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// List 返回所有工具，按名称排序。
func (r *Registry) List() []Tool {
	out := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Count 返回已注册工具数量。
func (r *Registry) Count() int {
	return len(r.tools)
}

// Execute 执行指定工具并返回结果。
func (r *Registry) Execute(ctx context.Context, name string, args json.RawMessage) (*Result, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("未知工具: %s", name)
	}
	logger.Debugf("[tools] 执行工具: %s", name)
	result, err := t.Execute(ctx, args)
	if err != nil {
		logger.Warnf("[tools] 工具 %s 执行失败: %v", name, err)
		return nil, err
	}
	return result, nil
}
