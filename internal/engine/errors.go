package engine

import "errors"

// 错误分类。上层据此决定向 host 呈现失败的方式：
// 参数类错误可渲染为内容块，其余作为硬错误抛出。
var (
	// ErrInvalidArgument 请求参数非法（空文本、未知枚举值等）。
	ErrInvalidArgument = errors.New("参数无效")

	// ErrLaunchFailure 引擎进程无法启动（解释器缺失、无执行权限等）。
	ErrLaunchFailure = errors.New("引擎进程启动失败")

	// ErrTimeout 引擎在硬超时内未完成，进程已被终止。
	ErrTimeout = errors.New("引擎执行超时")

	// ErrEmptyOutput 引擎 stdout 没有任何非空行。
	ErrEmptyOutput = errors.New("引擎无输出")

	// ErrMalformedOutput 引擎 stdout 最后一行不是合法的 JSON 结果。
	ErrMalformedOutput = errors.New("引擎输出格式错误")

	// ErrEngineFailure 引擎正常运行但报告了合成失败（ok:false）。
	ErrEngineFailure = errors.New("引擎合成失败")

	// ErrMissingMedia 引擎报告成功但既无输出文件也无内联音频。
	ErrMissingMedia = errors.New("引擎未产生音频")
)
