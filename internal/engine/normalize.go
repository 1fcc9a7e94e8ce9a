package engine

import (
	"encoding/json"
	"strings"
)

// Provider 响应中的固定提供方标识。
const Provider = "kokoro"

// MimeType 根据 response_format 推导 MIME 类型。
// ogg 前缀（ogg、ogg_base64）为 audio/ogg，其余为 audio/wav。
func MimeType(format string) string {
	if strings.HasPrefix(format, "ogg") {
		return "audio/ogg"
	}
	return "audio/wav"
}

// Normalize 把原始结果映射为对外稳定契约。纯函数，不做任何 I/O。
// text 内容块始终存在，携带格式化 JSON 的字段摘要；
// audio 内容块仅在确有内联音频时出现，绝不凭空构造。
func Normalize(raw *RawResult, media *Media) *Response {
	resp := &Response{
		Provider:       Provider,
		DeviceUsed:     raw.DeviceUsed,
		UsedFallback:   raw.UsedFallback,
		SampleRate:     raw.SampleRate,
		LangCode:       raw.LangCode,
		Voice:          raw.Voice,
		Speed:          raw.Speed,
		ResponseFormat: raw.ResponseFormat,
		MimeType:       MimeType(raw.ResponseFormat),
	}

	if media.FilePath != "" {
		path := media.FilePath
		resp.OutputPath = &path
	}
	if media.AudioBase64 != "" {
		b64 := media.AudioBase64
		resp.AudioBase64 = &b64
	}

	summary, _ := json.MarshalIndent(resp, "", "  ")
	resp.Content = append(resp.Content, Block{Type: "text", Text: string(summary)})

	if resp.AudioBase64 != nil {
		resp.Content = append(resp.Content, Block{
			Type:     "audio",
			MimeType: resp.MimeType,
			Data:     *resp.AudioBase64,
		})
	}

	return resp
}
