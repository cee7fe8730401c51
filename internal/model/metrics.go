// Package model 定义 gocloc 的核心数据模型。
// 这些结构会被扫描器、输出层和命令层共同使用。
package model

// LineMetrics 表示一组行级统计值。
//
// 注意：
// - Total 表示物理行数（每行计 1）
// - 每行只属于 Code/Comment/Blank 中的一类，因此 Blank + Comment + Code == Total
type LineMetrics struct {
	Total   int64 `json:"total" yaml:"total"`
	Code    int64 `json:"code" yaml:"code"`
	Comment int64 `json:"comment" yaml:"comment"`
	Blank   int64 `json:"blank" yaml:"blank"`
}

// Add 将另一个统计结果叠加到当前对象。
func (m *LineMetrics) Add(other LineMetrics) {
	m.Total += other.Total
	m.Code += other.Code
	m.Comment += other.Comment
	m.Blank += other.Blank
}

// Consistent 检查三类计数之和是否等于物理行数。
func (m LineMetrics) Consistent() bool {
	return m.Blank+m.Comment+m.Code == m.Total
}

// FileMetrics 表示单文件扫描结果。
type FileMetrics struct {
	Path     string      `json:"path" yaml:"path"`
	Language string      `json:"language" yaml:"language"`
	Metrics  LineMetrics `json:"metrics" yaml:"metrics"`
}

// LanguageTotals 是某个语言（或全局）的累加器。
// 在 LineMetrics 基础上额外增加 Files 字段。
type LanguageTotals struct {
	Files       int64 `json:"files" yaml:"files"`
	LineMetrics `yaml:",inline"`
}

// AddFileMetrics 累加一个文件的统计值。
func (t *LanguageTotals) AddFileMetrics(other LineMetrics) {
	t.Files++
	t.LineMetrics.Add(other)
}

// Merge 按字段相加合并另一个累加器。
func (t *LanguageTotals) Merge(other LanguageTotals) {
	t.Files += other.Files
	t.LineMetrics.Add(other.LineMetrics)
}

// LanguageMetrics 表示某个语言的聚合结果。
type LanguageMetrics struct {
	Language       string   `json:"language" yaml:"language"`
	Extensions     []string `json:"extensions" yaml:"extensions"`
	LanguageTotals `yaml:",inline"`
}

// ScanError 记录单文件扫描失败信息。
// 错误不阻断全量扫描，便于大仓库分析时容错。
type ScanError struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

// ScanResult 是 scan 命令的完整输出模型。
// 包含文件级明细、语言级汇总、全局总计、跳过计数和错误列表。
type ScanResult struct {
	ScannedPath string            `json:"scanned_path" yaml:"scanned_path"`
	Files       []FileMetrics     `json:"files" yaml:"files"`
	Languages   []LanguageMetrics `json:"languages" yaml:"languages"`
	Total       LanguageTotals    `json:"total" yaml:"total"`
	// Ignored 是后缀无法识别的文件数，Skipped 是被大小/二进制预过滤拒绝的文件数。
	Ignored int64       `json:"ignored" yaml:"ignored"`
	Skipped int64       `json:"skipped" yaml:"skipped"`
	Errors  []ScanError `json:"errors" yaml:"errors"`
}
