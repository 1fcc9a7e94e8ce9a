// Package history 用 SQLite 记录已完成的合成调用，供排障和统计。
// 记录失败只写日志，绝不影响请求路径。
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/p20y/tts-openclaw/internal/engine"
	"github.com/p20y/tts-openclaw/internal/logger"
)

// Entry 一条合成历史记录。
type Entry struct {
	ID             int64
	CreatedAt      time.Time
	TextLen        int
	Voice          string
	LangCode       string
	DeviceUsed     string
	UsedFallback   bool
	ResponseFormat string
	DurationMs     int64
}

// Store 基于 SQLite 的合成历史存储。
type Store struct {
	db   *sql.DB
	path string
}

// Open 打开或创建历史数据库。dataDir 为空表示禁用，返回 (nil, nil)。
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("创建历史数据目录失败: %w", err)
	}

	path := filepath.Join(dataDir, "kokoro-bridge.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("打开历史数据库失败: %w", err)
	}

	// WAL 模式，容忍并发合成调用同时写入
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("设置 WAL 模式失败: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS synthesis_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		text_len INTEGER NOT NULL,
		voice TEXT NOT NULL,
		lang_code TEXT NOT NULL,
		device_used TEXT NOT NULL,
		used_fallback BOOLEAN NOT NULL,
		response_format TEXT NOT NULL,
		duration_ms INTEGER NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("创建历史表失败: %w", err)
	}

	logger.Infof("[history] 历史数据库已打开: %s", path)
	return &Store{db: db, path: path}, nil
}

// Path 返回数据库文件路径。
func (s *Store) Path() string {
	return s.path
}

// RecordSynthesis 实现 engine.Recorder。写入失败仅记录日志。
func (s *Store) RecordSynthesis(textLen int, resp *engine.Response, elapsed time.Duration) {
	if s == nil {
		return
	}
	_, err := s.db.Exec(`INSERT INTO synthesis_history
		(text_len, voice, lang_code, device_used, used_fallback, response_format, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		textLen, resp.Voice, resp.LangCode, resp.DeviceUsed,
		resp.UsedFallback, resp.ResponseFormat, elapsed.Milliseconds())
	if err != nil {
		logger.Warnf("[history] 写入合成历史失败: %v", err)
	}
}

// Recent 返回最近 n 条记录，按时间倒序。
func (s *Store) Recent(n int) ([]Entry, error) {
	rows, err := s.db.Query(`SELECT id, created_at, text_len, voice, lang_code,
		device_used, used_fallback, response_format, duration_ms
		FROM synthesis_history ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("查询合成历史失败: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.TextLen, &e.Voice, &e.LangCode,
			&e.DeviceUsed, &e.UsedFallback, &e.ResponseFormat, &e.DurationMs); err != nil {
			return nil, fmt.Errorf("读取历史记录失败: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count 返回历史记录总数。
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM synthesis_history").Scan(&n)
	return n, err
}

// Close 关闭数据库连接。
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}
