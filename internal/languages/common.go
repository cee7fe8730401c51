package languages

import (
	"strings"

	"gocloc/internal/model"
)

// normalizeLine 用于去除每行末尾的换行符。
// 该函数适配 Windows 的 \r\n 与 Unix 的 \n。
func normalizeLine(line string) string {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line
}

// TallyLine 根据单行分类结果更新统计值。
// 每次调用都代表处理完一整行，因此 Total 固定 +1，且三类计数互斥，
// 保证 Blank + Comment + Code == Total。
func TallyLine(metrics *model.LineMetrics, kind LineKind) {
	metrics.Total++

	switch kind {
	case Code:
		metrics.Code++
	case Comment:
		metrics.Comment++
	default:
		metrics.Blank++
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == '\v'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
