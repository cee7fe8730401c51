// Package report 提供 gocloc 的输出能力。
// 支持 table（lipgloss 表格）、JSON 与 YAML 三种格式，并可导出到文件。
package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"gocloc/internal/languages"
	"gocloc/internal/model"
)

// 支持的输出格式。
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ErrUnsupportedFormat 表示未知的输出格式。
var ErrUnsupportedFormat = errors.New("unsupported format, allowed values: table, json, yaml")

// Render 按 format 把扫描结果写到 writer。byFile 只影响 table 格式。
func Render(writer io.Writer, format string, result model.ScanResult, byFile bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatTable:
		return PrintTable(writer, result, byFile)
	case FormatJSON:
		return PrintJSON(writer, result)
	case FormatYAML:
		return PrintYAML(writer, result)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// PrintTable 使用表格展示扫描结果。
// 语言按代码行数降序排列（相同则按名称），最后追加 SUM 汇总行。
func PrintTable(writer io.Writer, result model.ScanResult, byFile bool) error {
	if _, err := fmt.Fprintf(writer, "Scanned path: %s\n", result.ScannedPath); err != nil {
		return err
	}

	if byFile && len(result.Files) > 0 {
		rows := make([][]string, 0, len(result.Files))
		for _, item := range result.Files {
			rows = append(rows, []string{
				item.Path,
				item.Language,
				itoa(item.Metrics.Blank),
				itoa(item.Metrics.Comment),
				itoa(item.Metrics.Code),
			})
		}
		if err := printTable(writer, []string{"FILE", "LANGUAGE", "BLANK", "COMMENT", "CODE"}, rows, 0, false); err != nil {
			return err
		}
	}

	rows := make([][]string, 0, len(result.Languages)+1)
	for _, item := range sortByCode(result.Languages) {
		rows = append(rows, []string{
			item.Language,
			itoa(item.Files),
			itoa(item.Blank),
			itoa(item.Comment),
			itoa(item.Code),
		})
	}
	rows = append(rows, []string{
		"SUM",
		itoa(result.Total.Files),
		itoa(result.Total.Blank),
		itoa(result.Total.Comment),
		itoa(result.Total.Code),
	})
	if err := printTable(writer, []string{"LANGUAGE", "FILES", "BLANK", "COMMENT", "CODE"}, rows, 0, true); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Ignored files: %d, skipped files: %d\n", result.Ignored, result.Skipped); err != nil {
		return err
	}

	if len(result.Errors) > 0 {
		errorRows := make([][]string, 0, len(result.Errors))
		for _, item := range result.Errors {
			errorRows = append(errorRows, []string{item.Path, item.Error})
		}
		return printTable(writer, []string{"ERROR FILE", "MESSAGE"}, errorRows, 0, false)
	}
	return nil
}

// PrintJSON 把扫描结果按易读 JSON 输出到任意 writer。
func PrintJSON(writer io.Writer, result model.ScanResult) error {
	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	content = append(content, '\n')
	if _, err := writer.Write(content); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// PrintYAML 把扫描结果输出为 YAML。
func PrintYAML(writer io.Writer, result model.ScanResult) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return encoder.Close()
}

// WriteFile 将结果按 format 导出到指定路径。
// 如果目录不存在会自动创建。
func WriteFile(path string, format string, result model.ScanResult, byFile bool) error {
	var buffer bytes.Buffer
	if err := Render(&buffer, format, result, byFile); err != nil {
		return err
	}

	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if mkErr := os.MkdirAll(directory, 0o755); mkErr != nil {
			return fmt.Errorf("create output directory: %w", mkErr)
		}
	}

	if writeErr := os.WriteFile(path, buffer.Bytes(), 0o644); writeErr != nil {
		return fmt.Errorf("write output file: %w", writeErr)
	}
	return nil
}

// PrintLanguages 展示已注册的语言、方言与后缀。
func PrintLanguages(writer io.Writer, descriptors []languages.LanguageDescriptor) error {
	rows := make([][]string, 0, len(descriptors))
	for _, item := range descriptors {
		rows = append(rows, []string{item.Name, item.Dialect, strings.Join(item.Extensions, ", "), item.Note})
	}
	return printTable(writer, []string{"LANGUAGE", "DIALECT", "EXTENSIONS", "NOTE"}, rows, 0, false)
}

// sortByCode 返回按代码行降序、名称升序排列的副本。
func sortByCode(items []model.LanguageMetrics) []model.LanguageMetrics {
	sorted := append([]model.LanguageMetrics(nil), items...)
	sort.SliceStable(sorted, func(i int, j int) bool {
		if sorted[i].Code != sorted[j].Code {
			return sorted[i].Code > sorted[j].Code
		}
		return sorted[i].Language < sorted[j].Language
	})
	return sorted
}

func itoa(value int64) string {
	return strconv.FormatInt(value, 10)
}
