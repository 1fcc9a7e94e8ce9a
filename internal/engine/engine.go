// Package engine 将插件 host 的合成请求桥接到外部 Kokoro TTS 引擎进程。
//
// 引擎对桥接器完全不透明，双方只通过固定的 CLI/JSON 协议交互：
// 参数向量进，stdout 最后一行 JSON 结果出。包内各环节（解释器
// 查找、子进程调用、结果解码、音频物化、响应归一化）彼此独立，
// 可脱离真实引擎单独测试。
package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/p20y/tts-openclaw/internal/logger"
)

// Recorder 在合成成功后记录一条历史，实现可选。
type Recorder interface {
	RecordSynthesis(textLen int, resp *Response, elapsed time.Duration)
}

// Options Bridge 构造参数。零值字段使用默认值。
type Options struct {
	BridgeRoot    string
	Module        string
	Python        string
	Timeout       time.Duration
	DefaultVoice  string
	DefaultLang   string
	DefaultSpeed  float64
	DefaultDevice string
	DefaultFormat string
	Recorder      Recorder
}

// Bridge 面向调用方的合成入口，串起完整的桥接流程：
// 解析解释器 → 调用引擎子进程 → 解码结果 → 物化音频 → 归一化响应。
type Bridge struct {
	opts   Options
	runner runner
}

// New 创建 Bridge。
func New(opts Options) *Bridge {
	if opts.Module == "" {
		opts.Module = "openclaw_kokoro_plugin.cli"
	}
	if opts.BridgeRoot == "" {
		opts.BridgeRoot = "."
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.DefaultVoice == "" {
		opts.DefaultVoice = "af_heart"
	}
	if opts.DefaultLang == "" {
		opts.DefaultLang = "a"
	}
	if opts.DefaultSpeed == 0 {
		opts.DefaultSpeed = 1.0
	}
	if opts.DefaultDevice == "" {
		opts.DefaultDevice = "auto"
	}
	if opts.DefaultFormat == "" {
		opts.DefaultFormat = "wav"
	}

	return &Bridge{
		opts: opts,
		runner: &Invoker{
			BridgeRoot: opts.BridgeRoot,
			Module:     opts.Module,
			Python:     opts.Python,
			Timeout:    opts.Timeout,
		},
	}
}

// Synthesize 执行一次完整的合成调用。每次调用恰好启动一个引擎
// 子进程并同步等待；请求间不共享可变状态，可安全并发。
func (b *Bridge) Synthesize(ctx context.Context, req Request) (*Response, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("%w: text 不能为空", ErrInvalidArgument)
	}

	b.applyDefaults(&req)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	// 文件型 format 且调用方未指定输出路径时，生成防碰撞临时路径。
	if req.OutputPath == "" && !inlineFormat(req.Format) {
		req.OutputPath = tempAudioPath(req.Format)
	}

	start := time.Now()

	stdout, stderr, err := b.runner.Run(ctx, buildArgv(req))
	if err != nil {
		return nil, err
	}

	raw, err := Decode(stdout, stderr)
	if err != nil {
		return nil, err
	}
	if raw.ResponseFormat == "" {
		raw.ResponseFormat = req.Format
	}

	media, err := Materialize(raw, req.Format)
	if err != nil {
		return nil, err
	}

	resp := Normalize(raw, media)

	logger.Infof("[engine] 合成完成: voice=%s lang=%s device=%s fallback=%v format=%s 耗时=%s",
		resp.Voice, resp.LangCode, resp.DeviceUsed, resp.UsedFallback,
		resp.ResponseFormat, time.Since(start).Round(time.Millisecond))

	if b.opts.Recorder != nil {
		b.opts.Recorder.RecordSynthesis(len([]rune(req.Text)), resp, time.Since(start))
	}

	return resp, nil
}

// Voices 返回只读语音目录。每次调用返回等内容的副本。
func (b *Bridge) Voices() map[string][]string {
	return Catalog()
}

// applyDefaults 为未填写的请求字段补默认值。
func (b *Bridge) applyDefaults(req *Request) {
	req.Text = strings.TrimSpace(req.Text)
	if req.Voice == "" {
		req.Voice = b.opts.DefaultVoice
	}
	if req.Lang == "" {
		req.Lang = b.opts.DefaultLang
	}
	if req.Speed == 0 {
		req.Speed = b.opts.DefaultSpeed
	}
	if req.Device == "" {
		req.Device = b.opts.DefaultDevice
	}
	if req.Format == "" {
		req.Format = b.opts.DefaultFormat
	}
}

// validateRequest 本地校验枚举字段，明显非法的请求不启动子进程。
func validateRequest(req Request) error {
	if _, ok := Languages[req.Lang]; !ok {
		return fmt.Errorf("%w: 不支持的语言代码 %q，可用: a, b", ErrInvalidArgument, req.Lang)
	}
	switch req.Device {
	case "auto", "mps", "cuda", "cpu":
	default:
		return fmt.Errorf("%w: 不支持的设备 %q，可用: auto, mps, cuda, cpu", ErrInvalidArgument, req.Device)
	}
	switch req.Format {
	case "wav", "wav_base64", "ogg", "ogg_base64":
	default:
		return fmt.Errorf("%w: 不支持的输出格式 %q", ErrInvalidArgument, req.Format)
	}
	if req.Speed <= 0 {
		return fmt.Errorf("%w: speed 必须为正数，当前 %v", ErrInvalidArgument, req.Speed)
	}
	return nil
}

// buildArgv 把请求转换为引擎 CLI 的参数向量。
// --output 仅在文件型 format 下传入。
func buildArgv(req Request) []string {
	argv := []string{
		"--text", req.Text,
		"--voice", req.Voice,
		"--lang", req.Lang,
		"--speed", strconv.FormatFloat(req.Speed, 'f', -1, 64),
		"--device", req.Device,
		"--format", req.Format,
	}
	if !inlineFormat(req.Format) {
		argv = append(argv, "--output", req.OutputPath)
	}
	return argv
}
