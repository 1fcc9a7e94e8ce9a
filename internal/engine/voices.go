package engine

// Languages 支持的语言代码及显示名称，进程生命周期内只读。
var Languages = map[string]string{
	"a": "American English",
	"b": "British English",
}

// voices 各语言可用的语音标识，按引擎内置顺序排列。
var voices = map[string][]string{
	"a": {
		"af_heart",
		"af_alloy",
		"af_aoede",
		"af_bella",
		"af_jessica",
		"af_kore",
		"af_nicole",
		"af_nova",
		"af_river",
		"af_sarah",
		"af_sky",
		"am_adam",
		"am_echo",
		"am_eric",
		"am_fenrir",
		"am_liam",
		"am_michael",
		"am_onyx",
		"am_puck",
		"am_santa",
	},
	"b": {
		"bf_alice",
		"bf_emma",
		"bf_isabella",
		"bf_lily",
		"bm_daniel",
		"bm_fable",
		"bm_george",
		"bm_lewis",
	},
}

// Catalog 返回语音目录的副本，调用方可安全持有或修改。
func Catalog() map[string][]string {
	out := make(map[string][]string, len(voices))
	for lang, list := range voices {
		out[lang] = append([]string(nil), list...)
	}
	return out
}
