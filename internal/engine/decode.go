package engine

import (
	"encoding/json"
	"fmt"
	"strings"
)

// envelope 引擎结果行的 JSON 信封。
type envelope struct {
	OK     bool       `json:"ok"`
	Result *RawResult `json:"result"`
	Error  string     `json:"error"`
}

// Decode 从引擎 stdout 中提取结构化结果。
// 引擎可能在结果行之前输出框架横幅或警告，协议只保证最后一个
// 非空行是 JSON 结果，因此取最后一个非空行解析，其余行忽略。
func Decode(stdout, stderr string) (*RawResult, error) {
	var last string
	for _, line := range strings.Split(stdout, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			last = trimmed
		}
	}

	if last == "" {
		return nil, fmt.Errorf("%w, stderr: %s", ErrEmptyOutput, strings.TrimSpace(stderr))
	}

	var env envelope
	if err := json.Unmarshal([]byte(last), &env); err != nil {
		return nil, fmt.Errorf("%w: %v, 最后一行: %s", ErrMalformedOutput, err, truncate(last, 200))
	}

	if !env.OK {
		msg := env.Error
		if msg == "" {
			msg = "引擎未给出错误信息"
		}
		return nil, fmt.Errorf("%w: %s", ErrEngineFailure, msg)
	}

	if env.Result == nil {
		return nil, fmt.Errorf("%w: ok 为 true 但缺少 result 字段", ErrMalformedOutput)
	}

	return env.Result, nil
}

// truncate 截断过长的诊断文本。
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
