package engine

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/p20y/tts-openclaw/internal/logger"
)

// Media 物化后的音频表示。两个字段至少有一个非空。
type Media struct {
	FilePath    string
	AudioBase64 string
}

// inlineFormat 判断 format 是否为内联 base64 模式。
func inlineFormat(format string) bool {
	return strings.HasSuffix(format, "_base64")
}

// audioExt 根据 format 返回文件扩展名。
func audioExt(format string) string {
	if strings.HasPrefix(format, "ogg") {
		return "ogg"
	}
	return "wav"
}

// tempAudioPath 在系统临时目录生成防碰撞的输出路径。
// 时间戳 + uuid，并发调用不会共享同一路径。
func tempAudioPath(format string) string {
	name := fmt.Sprintf("kokoro-%s-%s.%s",
		time.Now().Format("20060102-150405"), uuid.NewString(), audioExt(format))
	return filepath.Join(os.TempDir(), name)
}

// Materialize 保证调用方拿到可用的音频表示：内联模式尽力补出
// base64，文件模式尽力补出磁盘文件。引擎给出且真实存在的文件
// 是权威来源；两种表示都缺失视为引擎违反契约。
func Materialize(raw *RawResult, format string) (*Media, error) {
	m := &Media{AudioBase64: raw.AudioBase64}

	if raw.OutputPath != "" {
		if _, err := os.Stat(raw.OutputPath); err == nil {
			m.FilePath = raw.OutputPath
		} else {
			logger.Warnf("[engine] 引擎报告的输出文件不存在: %s", raw.OutputPath)
		}
	}

	if m.FilePath == "" && m.AudioBase64 == "" {
		return nil, fmt.Errorf("%w: 既无输出文件也无内联音频 (format=%s)", ErrMissingMedia, format)
	}

	if inlineFormat(format) && m.AudioBase64 == "" {
		data, err := os.ReadFile(m.FilePath)
		if err != nil {
			return nil, fmt.Errorf("读取引擎输出文件失败: %w", err)
		}
		m.AudioBase64 = base64.StdEncoding.EncodeToString(data)
	}

	if !inlineFormat(format) && m.FilePath == "" {
		data, err := base64.StdEncoding.DecodeString(m.AudioBase64)
		if err != nil {
			return nil, fmt.Errorf("%w: 内联音频 base64 解码失败: %v", ErrMalformedOutput, err)
		}
		path := tempAudioPath(format)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("写入临时音频文件失败: %w", err)
		}
		logger.Infof("[engine] 内联音频已写入临时文件: %s (%d bytes)", path, len(data))
		m.FilePath = path
	}

	return m, nil
}
