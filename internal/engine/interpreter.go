package engine

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// envPython 覆盖解释器路径的环境变量。
	envPython = "KOKORO_PYTHON"
	// envVirtualEnv 标准的已激活虚拟环境根目录变量。
	envVirtualEnv = "VIRTUAL_ENV"
)

// maxVenvWalkDepth 从 bridgeRoot 向上搜索 .venv 的最大层数。
const maxVenvWalkDepth = 5

// interpreterNames 虚拟环境 bin 目录下尝试的解释器文件名。
var interpreterNames = []string{"python3", "python"}

// Resolver 决定由哪个 Python 解释器运行合成引擎。
// 环境变量读取与文件探测均可注入，核心逻辑保持纯函数，
// 测试可以模拟任意环境与目录树。
type Resolver struct {
	// Lookup 读取环境变量，为 nil 时使用 os.Getenv。
	Lookup func(key string) string
	// Exists 探测路径是否存在，为 nil 时探测真实文件系统。
	Exists func(path string) bool
}

func (r *Resolver) lookup(key string) string {
	if r != nil && r.Lookup != nil {
		return r.Lookup(key)
	}
	return os.Getenv(key)
}

func (r *Resolver) exists(path string) bool {
	if r != nil && r.Exists != nil {
		return r.Exists(path)
	}
	_, err := os.Stat(path)
	return err == nil
}

// Resolve 按优先级返回解释器路径，永不失败：
//  1. 显式指定的 preferred（调用方/配置提供）
//  2. KOKORO_PYTHON 环境变量
//  3. 已激活虚拟环境（VIRTUAL_ENV）bin 目录下的解释器
//  4. 从 bridgeRoot 逐级向上查找祖先目录中的 .venv/bin 解释器
//  5. 裸命令名 python3，交给 shell 的 PATH 查找
//
// 引擎通常安装在项目本地的虚拟环境里，而桥接器自身的运行目录
// 不一定等于引擎安装位置，因此显式覆盖与祖先搜索都是必要的。
func (r *Resolver) Resolve(bridgeRoot, preferred string) string {
	if p := strings.TrimSpace(preferred); p != "" {
		return p
	}

	if p := strings.TrimSpace(r.lookup(envPython)); p != "" {
		return p
	}

	if venv := strings.TrimSpace(r.lookup(envVirtualEnv)); venv != "" {
		for _, name := range interpreterNames {
			p := filepath.Join(venv, "bin", name)
			if r.exists(p) {
				return p
			}
		}
	}

	dir := bridgeRoot
	for i := 0; i < maxVenvWalkDepth && dir != ""; i++ {
		for _, name := range interpreterNames {
			p := filepath.Join(dir, ".venv", "bin", name)
			if r.exists(p) {
				return p
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "python3"
}
