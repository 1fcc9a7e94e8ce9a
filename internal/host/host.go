// Package host 把工具注册到插件 host。不同 host 暴露的注册调用
// 约定并不一致：有的接收打包的工具描述对象，有的按位置参数
// 逐项传入。Attach 通过能力探测识别 host 支持的约定并一次性
// 完成分发，调用方无需配置。
package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/p20y/tts-openclaw/internal/engine"
	"github.com/p20y/tts-openclaw/internal/logger"
	"github.com/p20y/tts-openclaw/internal/tools"
)

// Handler 工具处理函数。
type Handler func(ctx context.Context, args json.RawMessage) (*tools.Result, error)

// ToolSpec 对象式注册约定的工具描述。
type ToolSpec struct {
	Name        string
	Description string
	Schema      json.RawMessage
	Handler     Handler
}

// ObjectRegistrar 对象式注册约定：名称、描述、schema 和处理函数
// 打包成一个描述对象传入。
type ObjectRegistrar interface {
	RegisterTool(spec ToolSpec) error
}

// PositionalRegistrar 位置参数式注册约定：各项逐个传入。
type PositionalRegistrar interface {
	RegisterTool(name, description string, schema json.RawMessage, handler Handler) error
}

// SoftErrorHost 可选能力：host 期望以 "Error:" 前缀的文本内容块
// 而非硬错误接收可恢复失败。
type SoftErrorHost interface {
	WantsSoftErrors() bool
}

// Attach 把注册表中的所有工具注册到 host。
// 探测顺序：对象式优先，其次位置参数式；两者都不满足时报错。
func Attach(h any, reg *tools.Registry) error {
	soft := false
	if sh, ok := h.(SoftErrorHost); ok {
		soft = sh.WantsSoftErrors()
	}

	switch r := h.(type) {
	case ObjectRegistrar:
		for _, t := range reg.List() {
			spec := ToolSpec{
				Name:        t.Name(),
				Description: t.Description(),
				Schema:      t.Schema(),
				Handler:     wrap(t, soft),
			}
			if err := r.RegisterTool(spec); err != nil {
				return fmt.Errorf("注册工具 %s 失败: %w", t.Name(), err)
			}
		}
		logger.Infof("[host] 已注册 %d 个工具（对象式约定）", reg.Count())
		return nil

	case PositionalRegistrar:
		for _, t := range reg.List() {
			if err := r.RegisterTool(t.Name(), t.Description(), t.Schema(), wrap(t, soft)); err != nil {
				return fmt.Errorf("注册工具 %s 失败: %w", t.Name(), err)
			}
		}
		logger.Infof("[host] 已注册 %d 个工具（位置参数式约定）", reg.Count())
		return nil

	default:
		return fmt.Errorf("host 不支持任何已知的工具注册约定: %T", h)
	}
}

// wrap 把 Tool 适配为 host 处理函数，并按 host 的失败约定渲染错误。
// soft 模式下所有错误转为 Error: 文本块；硬模式下仅参数类错误
// 转为文本块，其余照常抛出。
func wrap(t tools.Tool, soft bool) Handler {
	return func(ctx context.Context, args json.RawMessage) (*tools.Result, error) {
		result, err := t.Execute(ctx, args)
		if err == nil {
			return result, nil
		}
		if soft || errors.Is(err, engine.ErrInvalidArgument) {
			return tools.ErrorResult(err), nil
		}
		return nil, err
	}
}
