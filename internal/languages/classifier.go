package languages

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"gocloc/internal/model"
)

// LineKind 是单行的分类结果，三者互斥。
type LineKind uint8

const (
	Blank LineKind = iota
	Comment
	Code
)

// String 返回分类名称，用于 classify 子命令输出。
func (k LineKind) String() string {
	switch k {
	case Code:
		return "code"
	case Comment:
		return "comment"
	default:
		return "blank"
	}
}

// StateKind 表示跨行需要保留的结构。
type StateKind uint8

const (
	Normal StateKind = iota
	InBlockComment
	InTripleQuote
)

// State 是分类器在行与行之间传递的全部状态。
// Close 记录当前结构期待的闭合标记（例如 */、]]、"""）。
// 零值即 Normal，每个文件都从零值开始。
type State struct {
	Kind  StateKind
	Close string
}

// ClassifyLine 对单行（不含换行符）做分类，并返回下一行的起始状态。
//
// 规则：
//   - 处于块注释/三引号内部时先寻找闭合标记，找不到则整行为 Comment（包括纯空白行）
//   - 闭合之后的剩余内容按 Normal 状态继续扫描
//   - 字符串内的注释标记无效，字符串不跨行
//   - 只要出现任何代码 token，整行即为 Code
func ClassifyLine(dialect *Dialect, line string, state State) (LineKind, State) {
	sawCode := false
	sawComment := false
	pos := 0

	if state.Kind != Normal {
		end := strings.Index(line, state.Close)
		if end < 0 {
			return Comment, state
		}
		sawComment = true
		pos = end + len(state.Close)
		state = State{}
	}

	if dialect.LeadingLineComments && pos == 0 && dialect.leadingLineComment(line) {
		return Comment, state
	}

	var quote byte
	for pos < len(line) {
		current := line[pos]

		if quote != 0 {
			switch {
			case dialect.BackslashEscapes && current == '\\':
				pos += 2
			case current == quote:
				quote = 0
				pos++
			default:
				pos++
			}
			continue
		}

		// 三引号必须先于普通引号判断，否则 """ 会被当成空字符串加一个新字符串。
		if dialect.TripleQuotes {
			if delimiter, ok := tripleQuoteAt(line, pos); ok {
				sawComment = true
				body := pos + len(delimiter)
				end := strings.Index(line[body:], delimiter)
				if end < 0 {
					return lineKind(sawCode, sawComment), State{Kind: InTripleQuote, Close: delimiter}
				}
				pos = body + end + len(delimiter)
				continue
			}
		}

		// 块注释先于行注释判断，Lua 的 --[[ 依赖这一顺序。
		if block, ok := dialect.blockAt(line, pos); ok {
			sawComment = true
			body := pos + len(block.Open)
			end := strings.Index(line[body:], block.Close)
			if end < 0 {
				return lineKind(sawCode, sawComment), State{Kind: InBlockComment, Close: block.Close}
			}
			pos = body + end + len(block.Close)
			continue
		}

		if !dialect.LeadingLineComments && dialect.lineCommentAt(line, pos) {
			sawComment = true
			break
		}

		if dialect.isQuote(current) {
			quote = current
			sawCode = true
			pos++
			continue
		}

		if !isSpace(current) {
			sawCode = true
		}
		pos++
	}

	return lineKind(sawCode, sawComment), state
}

// Classify 流式读取 reader，对每一行调用 visit。
// 状态只在同一个 reader 内传递；文件结束时仍未闭合的结构直接丢弃。
func Classify(reader io.Reader, dialect *Dialect, visit func(line string, kind LineKind)) error {
	var state State

	// 按行流式读取，避免大文件造成内存压力。
	bufferedReader := bufio.NewReader(reader)

	for {
		line, err := bufferedReader.ReadString('\n')
		// 没有残留字符的 EOF 说明读取完成。
		if errors.Is(err, io.EOF) && len(line) == 0 {
			return nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}

		currentLine := normalizeLine(line)
		var kind LineKind
		kind, state = ClassifyLine(dialect, currentLine, state)
		visit(currentLine, kind)

		// 最后一行即使没有换行，也已完成统计。
		if errors.Is(err, io.EOF) {
			return nil
		}
	}
}

// Count 统计一个文件的 blank/comment/code 行数。
func Count(reader io.Reader, dialect *Dialect) (model.LineMetrics, error) {
	var metrics model.LineMetrics
	err := Classify(reader, dialect, func(_ string, kind LineKind) {
		TallyLine(&metrics, kind)
	})
	return metrics, err
}

func lineKind(sawCode bool, sawComment bool) LineKind {
	switch {
	case sawCode:
		return Code
	case sawComment:
		return Comment
	default:
		return Blank
	}
}

// tripleQuoteAt 判断 pos 处是否为 """ 或 '''。
func tripleQuoteAt(line string, pos int) (string, bool) {
	rest := line[pos:]
	switch {
	case strings.HasPrefix(rest, `"""`):
		return `"""`, true
	case strings.HasPrefix(rest, `'''`):
		return `'''`, true
	default:
		return "", false
	}
}
