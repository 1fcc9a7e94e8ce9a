package tools

import (
	"context"
	"encoding/json"

	"github.com/p20y/tts-openclaw/internal/engine"
)

// catalogProvider 语音目录来源。
type catalogProvider interface {
	Voices() map[string][]string
}

// VoicesTool 暴露 kokoro_voices 操作：列出各语言可用的语音。
type VoicesTool struct {
	bridge catalogProvider
}

// NewVoicesTool 创建语音目录工具。
func NewVoicesTool(bridge catalogProvider) *VoicesTool {
	return &VoicesTool{bridge: bridge}
}

func (t *VoicesTool) Name() string { return "kokoro_voices" }

func (t *VoicesTool) Description() string {
	return "列出 Kokoro 引擎各语言可用的语音标识。"
}

func (t *VoicesTool) Schema() json.RawMessage {
	return json.RawMessage(`{"type":"object","properties":{},"required":[]}`)
}

// catalogPayload 语音目录的对外结构。
type catalogPayload struct {
	Languages map[string]string   `json:"languages"`
	Voices    map[string][]string `json:"voices"`
}

// Execute 返回语音目录，同时给出结构化对象和等价的 JSON 文本块。
func (t *VoicesTool) Execute(ctx context.Context, args json.RawMessage) (*Result, error) {
	payload := catalogPayload{
		Languages: engine.Languages,
		Voices:    t.bridge.Voices(),
	}

	text, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, err
	}

	return &Result{
		Content:    []engine.Block{{Type: "text", Text: string(text)}},
		Structured: payload,
	}, nil
}
