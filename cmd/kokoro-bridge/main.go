package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/p20y/tts-openclaw/internal/config"
	"github.com/p20y/tts-openclaw/internal/engine"
	"github.com/p20y/tts-openclaw/internal/history"
	"github.com/p20y/tts-openclaw/internal/host"
	"github.com/p20y/tts-openclaw/internal/logger"
	"github.com/p20y/tts-openclaw/internal/tools"
)

func main() {
	configPath := flag.String("config", "configs/kokoro-bridge.yaml", "配置文件路径")
	flag.Parse()

	var cfg *config.Config
	if _, err := os.Stat(*configPath); err == nil {
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
			os.Exit(1)
		}
	} else {
		// 没有配置文件时使用默认值，环境变量仍可覆盖解释器路径
		cfg = config.Default()
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Infof("[main] kokoro-bridge 启动中 (module=%s, bridge_root=%s)",
		cfg.Engine.Module, cfg.Engine.BridgeRoot)

	store, err := history.Open(cfg.History.DataDir)
	if err != nil {
		logger.Warnf("[main] 打开合成历史失败，本次运行不记录历史: %v", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
		if n, err := store.Count(); err == nil {
			logger.Infof("[main] 合成历史已加载: %d 条记录", n)
		}
	}

	opts := engine.Options{
		BridgeRoot:    cfg.Engine.BridgeRoot,
		Module:        cfg.Engine.Module,
		Python:        cfg.Engine.PythonPath,
		Timeout:       time.Duration(cfg.Engine.TimeoutSeconds) * time.Second,
		DefaultVoice:  cfg.Engine.DefaultVoice,
		DefaultLang:   cfg.Engine.DefaultLang,
		DefaultSpeed:  cfg.Engine.DefaultSpeed,
		DefaultDevice: cfg.Engine.DefaultDevice,
		DefaultFormat: cfg.Engine.DefaultFormat,
	}
	if store != nil {
		opts.Recorder = store
	}
	bridge := engine.New(opts)

	reg := tools.NewRegistry()
	reg.Register(tools.NewSynthesizeTool(bridge))
	reg.Register(tools.NewVoicesTool(bridge))

	h := host.NewStdioHost(os.Stdin, os.Stdout)
	if err := host.Attach(h, reg); err != nil {
		fmt.Fprintf(os.Stderr, "注册工具失败: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听系统信号，优雅关闭
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Infof("[main] 收到信号 %v，正在关闭...", sig)
		cancel()
	}()

	if err := h.Serve(ctx); err != nil && err != context.Canceled {
		fmt.Fprintf(os.Stderr, "host 服务出错: %v\n", err)
		os.Exit(1)
	}

	logger.Infof("[main] kokoro-bridge 已停止")
}
