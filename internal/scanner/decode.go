package scanner

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeContent 把文件内容统一转换为 UTF-8，返回转换后的内容和探测到的编码名。
// 合法 UTF-8 直接返回（去掉 BOM）；否则按 BOM / meta / windows-1252 兜底规则探测编码并转换。
// 转换失败时返回原始字节和错误，调用方可以选择继续按原始字节统计。
func DecodeContent(content []byte) ([]byte, string, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if utf8.Valid(content) {
		return content, "utf-8", nil
	}

	encoding, name, _ := charset.DetermineEncoding(content, "")
	if encoding == nil {
		return content, name, nil
	}

	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(content), encoding.NewDecoder()))
	if err != nil {
		return content, name, fmt.Errorf("decode from %s: %w", name, err)
	}
	return bytes.TrimPrefix(decoded, utf8BOM), name, nil
}
