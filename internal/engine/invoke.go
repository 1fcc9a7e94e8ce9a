package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/p20y/tts-openclaw/internal/logger"
)

// defaultTimeout 单次合成的默认硬超时。
const defaultTimeout = 120 * time.Second

// runner 执行引擎子进程并返回捕获的输出。
// 测试中注入伪实现，使协议逻辑可以脱离真实引擎验证。
type runner interface {
	Run(ctx context.Context, argv []string) (stdout, stderr string, err error)
}

// Invoker 以子进程方式运行合成引擎：<python> -m <module> <argv...>。
type Invoker struct {
	// BridgeRoot 引擎模块所在目录，同时作为子进程工作目录。
	BridgeRoot string
	// Module 是 python -m 的模块名。
	Module string
	// Python 显式解释器路径，为空时由 Resolver 查找。
	Python string
	// Timeout 硬超时，<=0 时使用 defaultTimeout。
	Timeout time.Duration
	// Resolver 解释器查找器，nil 时使用默认行为。
	Resolver *Resolver
}

// Run 启动引擎子进程并等待其退出，捕获 stdout/stderr 文本。
// 无法启动进程归为 ErrLaunchFailure，超时归为 ErrTimeout；
// 进程正常启动但以非零码退出不视为错误——按协议引擎此时仍会在
// stdout 打印 ok:false 的结果行，由解码器判定。
func (iv *Invoker) Run(ctx context.Context, argv []string) (string, string, error) {
	python := iv.Resolver.Resolve(iv.BridgeRoot, iv.Python)

	timeout := iv.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := append([]string{"-m", iv.Module}, argv...)
	cmd := exec.CommandContext(ctx, python, args...)
	cmd.Dir = iv.BridgeRoot
	cmd.Env = overlayEnv(os.Environ(), iv.BridgeRoot)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debugf("[engine] 调用引擎: %s -m %s (workdir=%s)", python, iv.Module, iv.BridgeRoot)

	err := cmd.Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return stdout.String(), stderr.String(),
				fmt.Errorf("%w: 超过 %s，进程已终止", ErrTimeout, timeout)
		}

		var execErr *exec.Error
		if errors.As(err, &execErr) || errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) {
			return stdout.String(), stderr.String(),
				fmt.Errorf("%w: %v", ErrLaunchFailure, err)
		}

		logger.Debugf("[engine] 引擎退出码非零: %v", err)
	}

	return stdout.String(), stderr.String(), nil
}

// overlayEnv 在继承环境的基础上把 bridgeRoot 前置到 PYTHONPATH，
// 保证无论调用方当前目录在哪，引擎模块都可被解析。
func overlayEnv(base []string, bridgeRoot string) []string {
	const key = "PYTHONPATH="

	out := make([]string, 0, len(base)+1)
	inherited := ""
	for _, kv := range base {
		if strings.HasPrefix(kv, key) {
			inherited = kv[len(key):]
			continue
		}
		out = append(out, kv)
	}

	value := bridgeRoot
	if inherited != "" {
		value = bridgeRoot + string(os.PathListSeparator) + inherited
	}
	return append(out, key+value)
}
