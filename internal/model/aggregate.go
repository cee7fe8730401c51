package model

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInconsistentTally 表示单文件统计不满足 blank + comment + code == total。
var ErrInconsistentTally = errors.New("inconsistent line tally")

// Totals 是按语言名聚合的结果。
//
// Fold 与 Merge 都只做按字段的整数加法，满足结合律和交换律：
// 无论文件以什么顺序折叠、如何切分到多个 worker 再合并，结果都完全一致。
// Totals 本身不加锁，每个 worker 持有自己的实例，最后统一 Merge。
type Totals map[string]LanguageTotals

// NewTotals 创建空的聚合结果。
func NewTotals() Totals {
	return make(Totals)
}

// Fold 把一个文件的统计折叠到 language 对应的累加器上。
// 统计不自洽时拒绝折叠，避免错误数据污染总数。
func (t Totals) Fold(language string, file LineMetrics) error {
	if !file.Consistent() {
		return fmt.Errorf("%w: %s blank=%d comment=%d code=%d total=%d",
			ErrInconsistentTally, language, file.Blank, file.Comment, file.Code, file.Total)
	}

	entry := t[language]
	entry.AddFileMetrics(file)
	t[language] = entry
	return nil
}

// Merge 把另一个聚合结果按语言逐字段加到当前结果上。
func (t Totals) Merge(other Totals) {
	for language, totals := range other {
		entry := t[language]
		entry.Merge(totals)
		t[language] = entry
	}
}

// Sum 返回所有语言的总计。
func (t Totals) Sum() LanguageTotals {
	var sum LanguageTotals
	for _, totals := range t {
		sum.Merge(totals)
	}
	return sum
}

// Languages 返回按名称排序的语言列表。
func (t Totals) Languages() []string {
	names := make([]string, 0, len(t))
	for language := range t {
		names = append(names, language)
	}
	sort.Strings(names)
	return names
}
