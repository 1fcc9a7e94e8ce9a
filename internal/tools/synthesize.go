package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/p20y/tts-openclaw/internal/engine"
)

// synthesizer Bridge 的最小依赖面，便于测试注入伪实现。
type synthesizer interface {
	Synthesize(ctx context.Context, req engine.Request) (*engine.Response, error)
}

// SynthesizeTool 暴露 kokoro_tts 操作：文本 → 归一化音频响应。
type SynthesizeTool struct {
	bridge synthesizer
}

// NewSynthesizeTool 创建合成工具。
func NewSynthesizeTool(bridge synthesizer) *SynthesizeTool {
	return &SynthesizeTool{bridge: bridge}
}

func (t *SynthesizeTool) Name() string { return "kokoro_tts" }

func (t *SynthesizeTool) Description() string {
	return "使用本地 Kokoro 引擎将文本合成为语音，返回音频文件路径或 base64 内联音频。"
}

func (t *SynthesizeTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"text": {"type": "string", "description": "要合成的文本"},
			"voice": {"type": "string", "description": "语音标识，默认 af_heart"},
			"lang": {"type": "string", "enum": ["a", "b"], "description": "语言代码：a 美式英语，b 英式英语"},
			"speed": {"type": "number", "description": "语速倍率，默认 1.0"},
			"device": {"type": "string", "enum": ["auto", "mps", "cuda", "cpu"], "description": "首选计算设备"},
			"format": {"type": "string", "enum": ["wav", "wav_base64", "ogg", "ogg_base64"], "description": "输出格式"},
			"output_path": {"type": "string", "description": "文件型格式的输出路径，缺省时自动生成临时路径"}
		},
		"required": ["text"]
	}`)
}

// Execute 解析请求参数并交给 Bridge 完成合成。
func (t *SynthesizeTool) Execute(ctx context.Context, args json.RawMessage) (*Result, error) {
	var req engine.Request
	if len(args) > 0 {
		if err := json.Unmarshal(args, &req); err != nil {
			return nil, fmt.Errorf("%w: 参数解析失败: %v", engine.ErrInvalidArgument, err)
		}
	}

	resp, err := t.bridge.Synthesize(ctx, req)
	if err != nil {
		return nil, err
	}

	return &Result{Content: resp.Content, Structured: resp}, nil
}
