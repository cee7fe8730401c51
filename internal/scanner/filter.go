package scanner

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-enry/go-enry/v2"
	"github.com/spf13/afero"
)

// sniffLen 是二进制嗅探读取的最大字节数，与 git 的 xdiff 判定保持一致。
const sniffLen = 8000

// DefaultMaxBytes 是默认的单文件大小上限（16 MiB）。
const DefaultMaxBytes int64 = 16 * 1024 * 1024

// DefaultExcludeDirs 是默认不进入的目录。
var DefaultExcludeDirs = []string{".git", "target", "node_modules"}

// ExcludeFunc 判断目录名是否需要整棵剪枝。
type ExcludeFunc func(dirName string) bool

// ExcludeDirs 根据 glob 模式构造目录排除谓词，模式只与目录名（不含父路径）匹配。
// 非法模式退化为字面量比较。
func ExcludeDirs(patterns []string) ExcludeFunc {
	cleaned := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if pattern != "" {
			cleaned = append(cleaned, pattern)
		}
	}

	return func(dirName string) bool {
		for _, pattern := range cleaned {
			matched, err := doublestar.Match(pattern, dirName)
			if err != nil {
				matched = pattern == dirName
			}
			if matched {
				return true
			}
		}
		return false
	}
}

// Verdict 是预过滤的判定结果。
type Verdict uint8

const (
	Proceed Verdict = iota
	SkipTooLarge
	SkipBinary
	SkipVendor
)

// String 返回判定原因，用于日志。
func (v Verdict) String() string {
	switch v {
	case SkipTooLarge:
		return "too large"
	case SkipBinary:
		return "binary"
	case SkipVendor:
		return "vendored"
	default:
		return "proceed"
	}
}

// Candidate 是交给预过滤器的候选文件。
type Candidate struct {
	Path string
	// Rel 是相对于扫描根目录、使用 / 分隔的路径。
	Rel  string
	Info os.FileInfo
}

// PreFilter 在分类器读取文件之前决定是否跳过该文件。
type PreFilter interface {
	Check(fsys afero.Fs, candidate Candidate) (Verdict, error)
}

// SizeBinaryFilter 按文件大小、二进制特征和 vendor 目录规则过滤。
type SizeBinaryFilter struct {
	// MaxBytes 为 0 表示不限制大小。
	MaxBytes   int64
	SkipBinary bool
	SkipVendor bool
}

// DefaultFilter 返回默认预过滤配置。
func DefaultFilter() SizeBinaryFilter {
	return SizeBinaryFilter{MaxBytes: DefaultMaxBytes, SkipBinary: true}
}

// Check 实现 PreFilter。
func (f SizeBinaryFilter) Check(fsys afero.Fs, candidate Candidate) (Verdict, error) {
	if f.MaxBytes > 0 && candidate.Info != nil && candidate.Info.Size() > f.MaxBytes {
		return SkipTooLarge, nil
	}

	if f.SkipVendor && enry.IsVendor(candidate.Rel) {
		return SkipVendor, nil
	}

	if !f.SkipBinary {
		return Proceed, nil
	}

	head, err := readHead(fsys, candidate.Path)
	if err != nil {
		return Proceed, err
	}
	// UTF-16 文本含大量 NUL，靠 BOM 识别后交给解码步骤处理。
	if hasUTF16BOM(head) {
		return Proceed, nil
	}
	if enry.IsBinary(head) {
		return SkipBinary, nil
	}
	return Proceed, nil
}

// readHead 读取文件前 sniffLen 个字节。
func readHead(fsys afero.Fs, path string) ([]byte, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open for sniffing: %w", err)
	}
	defer file.Close()

	buffer := make([]byte, sniffLen)
	n, err := io.ReadFull(file, buffer)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("read for sniffing: %w", err)
	}
	return buffer[:n], nil
}

func hasUTF16BOM(content []byte) bool {
	return bytes.HasPrefix(content, []byte{0xFF, 0xFE}) || bytes.HasPrefix(content, []byte{0xFE, 0xFF})
}
