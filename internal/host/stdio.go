package host

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/p20y/tts-openclaw/internal/logger"
)

// stdioRequest 标准输入上的一行请求。
type stdioRequest struct {
	ID   string          `json:"id,omitempty"`
	Tool string          `json:"tool"`
	Args json.RawMessage `json:"args,omitempty"`
}

// stdioResponse 标准输出上的一行响应。
type stdioResponse struct {
	ID     string `json:"id"`
	OK     bool   `json:"ok"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// registeredTool 已注册到 StdioHost 的工具。
type registeredTool struct {
	spec ToolSpec
}

// StdioHost 基于标准输入输出的 JSON 行协议 host：
// 每行一个请求 {"id":..,"tool":..,"args":{..}}，每行一个响应。
// 实现对象式注册约定，作为 cmd 的内置 host。
type StdioHost struct {
	in  io.Reader
	out io.Writer

	mu    sync.Mutex // 保护 out，响应行不可交错
	tools map[string]registeredTool
}

// NewStdioHost 创建 stdio host。
func NewStdioHost(in io.Reader, out io.Writer) *StdioHost {
	return &StdioHost{
		in:    in,
		out:   out,
		tools: make(map[string]registeredTool),
	}
}

// RegisterTool 实现 ObjectRegistrar。
func (h *StdioHost) RegisterTool(spec ToolSpec) error {
	if spec.Name == "" {
		return fmt.Errorf("工具名不能为空")
	}
	if _, exists := h.tools[spec.Name]; exists {
		return fmt.Errorf("工具 %s 已注册", spec.Name)
	}
	h.tools[spec.Name] = registeredTool{spec: spec}
	return nil
}

// WantsSoftErrors 实现 SoftErrorHost：stdio 协议把失败编码在
// 响应行里，不需要软错误内容块。
func (h *StdioHost) WantsSoftErrors() bool {
	return false
}

// Serve 逐行处理请求直到输入结束或 ctx 取消。
// 每个请求在独立 goroutine 中执行，互不阻塞。
func (h *StdioHost) Serve(ctx context.Context) error {
	scanner := bufio.NewScanner(h.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var wg sync.WaitGroup
	defer wg.Wait()

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var req stdioRequest
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			h.write(stdioResponse{ID: uuid.NewString(), OK: false, Error: "请求行不是合法 JSON: " + err.Error()})
			continue
		}
		if req.ID == "" {
			req.ID = uuid.NewString()
		}

		wg.Add(1)
		go func(req stdioRequest) {
			defer wg.Done()
			h.handle(ctx, req)
		}(req)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("读取请求失败: %w", err)
	}
	return nil
}

// handle 执行单个请求并写出响应行。
func (h *StdioHost) handle(ctx context.Context, req stdioRequest) {
	tool, ok := h.tools[req.Tool]
	if !ok {
		h.write(stdioResponse{ID: req.ID, OK: false, Error: "未知工具: " + req.Tool})
		return
	}

	result, err := tool.spec.Handler(ctx, req.Args)
	if err != nil {
		h.write(stdioResponse{ID: req.ID, OK: false, Error: err.Error()})
		return
	}
	h.write(stdioResponse{ID: req.ID, OK: true, Result: result})
}

// write 序列化并写出一行响应。
func (h *StdioHost) write(resp stdioResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		logger.Errorf("[host] 序列化响应失败: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, err := h.out.Write(append(data, '\n')); err != nil {
		logger.Errorf("[host] 写出响应失败: %v", err)
	}
}
