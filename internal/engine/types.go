package engine

// Request 一次语音合成请求。零值字段由 Bridge 填充默认值。
type Request struct {
	Text       string  `json:"text"`
	Voice      string  `json:"voice,omitempty"`
	Lang       string  `json:"lang,omitempty"`
	Speed      float64 `json:"speed,omitempty"`
	Device     string  `json:"device,omitempty"`
	Format     string  `json:"format,omitempty"`
	OutputPath string  `json:"output_path,omitempty"`
}

// RawResult 引擎成功时在结果行中给出的原始字段。
// output_path 与 audio_base64 通常只有与请求 format 匹配的一个被填充，
// 桥接器必须容忍缺失并自行补全（见 Materialize）。
type RawResult struct {
	DeviceUsed     string  `json:"device_used"`
	UsedFallback   bool    `json:"used_fallback"`
	SampleRate     int     `json:"sample_rate"`
	LangCode       string  `json:"lang_code"`
	Voice          string  `json:"voice"`
	Speed          float64 `json:"speed"`
	ResponseFormat string  `json:"response_format"`
	OutputPath     string  `json:"output_path,omitempty"`
	AudioBase64    string  `json:"audio_base64,omitempty"`
}

// Response 对调用方的稳定契约，与请求的 format 模式无关。
type Response struct {
	Provider       string  `json:"provider"`
	DeviceUsed     string  `json:"device_used"`
	UsedFallback   bool    `json:"used_fallback"`
	SampleRate     int     `json:"sample_rate"`
	LangCode       string  `json:"lang_code"`
	Voice          string  `json:"voice"`
	Speed          float64 `json:"speed"`
	ResponseFormat string  `json:"response_format"`
	OutputPath     *string `json:"output_path"`
	AudioBase64    *string `json:"audio_base64"`
	MimeType       string  `json:"mime_type"`

	// Content 是供 host UI 渲染的内容块，不参与字段集的 JSON 序列化。
	Content []Block `json:"-"`
}

// Block 内容块。text 块始终存在，audio 块仅在有内联音频时出现。
type Block struct {
	Type     string `json:"type"` // "text" 或 "audio"
	Text     string `json:"text,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
	Data     string `json:"data,omitempty"` // base64 音频数据
}
