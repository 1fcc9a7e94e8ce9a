package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config 是桥接器的顶层配置结构。
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	History HistoryConfig `yaml:"history"`
	Log     LogConfig     `yaml:"log"`
}

// EngineConfig Kokoro 引擎子进程配置。
type EngineConfig struct {
	// PythonPath 显式指定的解释器路径，优先级最高。
	// 为空时按 KOKORO_PYTHON、VIRTUAL_ENV、祖先目录 .venv 的顺序查找。
	PythonPath string `yaml:"python_path"`

	// Module 是 python -m 运行的引擎模块名。
	Module string `yaml:"module"`

	// BridgeRoot 引擎模块所在目录，同时作为子进程工作目录，
	// 并前置到 PYTHONPATH，保证模块可被解析。
	BridgeRoot string `yaml:"bridge_root"`

	// TimeoutSeconds 单次合成的硬超时（秒）。
	TimeoutSeconds int `yaml:"timeout_seconds"`

	DefaultVoice  string  `yaml:"default_voice"`
	DefaultLang   string  `yaml:"default_lang"`
	DefaultSpeed  float64 `yaml:"default_speed"`
	DefaultDevice string  `yaml:"default_device"`
	DefaultFormat string  `yaml:"default_format"`
}

// HistoryConfig 合成历史记录配置。
type HistoryConfig struct {
	// DataDir 历史数据库所在目录，为空则禁用历史记录。
	DataDir string `yaml:"data_dir"`
}

// LogConfig 日志配置。
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
}

// Load 读取 YAML 配置文件并返回 Config。
// 支持 ${VAR_NAME} 形式的环境变量展开。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
	}

	// 展开环境变量，如 ${KOKORO_BRIDGE_ROOT}
	expanded := os.Expand(string(data), func(key string) string {
		return os.Getenv(key)
	})

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
	}

	setDefaults(cfg)
	return cfg, nil
}

// Default 返回全默认值的配置，用于没有配置文件的场景。
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// setDefaults 为未设置的配置项填充默认值。
func setDefaults(cfg *Config) {
	if cfg.Engine.Module == "" {
		cfg.Engine.Module = "openclaw_kokoro_plugin.cli"
	}
	if cfg.Engine.BridgeRoot == "" {
		cfg.Engine.BridgeRoot = "."
	} else if strings.HasPrefix(cfg.Engine.BridgeRoot, "~/") {
		// Go 不会自动展开 ~，需要手动替换为用户主目录
		home, _ := os.UserHomeDir()
		if home != "" {
			cfg.Engine.BridgeRoot = home + cfg.Engine.BridgeRoot[1:]
		}
	}
	if cfg.Engine.TimeoutSeconds == 0 {
		cfg.Engine.TimeoutSeconds = 120
	}
	if cfg.Engine.DefaultVoice == "" {
		cfg.Engine.DefaultVoice = "af_heart"
	}
	if cfg.Engine.DefaultLang == "" {
		cfg.Engine.DefaultLang = "a"
	}
	if cfg.Engine.DefaultSpeed == 0 {
		cfg.Engine.DefaultSpeed = 1.0
	}
	if cfg.Engine.DefaultDevice == "" {
		cfg.Engine.DefaultDevice = "auto"
	}
	if cfg.Engine.DefaultFormat == "" {
		cfg.Engine.DefaultFormat = "wav"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	if strings.HasPrefix(cfg.History.DataDir, "~/") {
		home, _ := os.UserHomeDir()
		if home != "" {
			cfg.History.DataDir = home + cfg.History.DataDir[1:]
		}
	}

	cfg.Engine.PythonPath = strings.TrimSpace(cfg.Engine.PythonPath)
}
