package languages

import "strings"

// DialectKind 标识一种注释方言。方言集合是封闭的，
// 新语言只需要把后缀挂到已有方言上，而不是新增一套状态机。
type DialectKind uint8

const (
	DialectCLike DialectKind = iota
	DialectPHP
	DialectPython
	DialectLua
	DialectMarkup
	DialectCSS
	DialectSQL
	DialectHash
	DialectBatch
)

var dialectNames = [...]string{
	DialectCLike:  "c-like",
	DialectPHP:    "php",
	DialectPython: "python",
	DialectLua:    "lua",
	DialectMarkup: "markup",
	DialectCSS:    "css",
	DialectSQL:    "sql",
	DialectHash:   "hash",
	DialectBatch:  "batch",
}

// String 返回方言的展示名，用于 language 命令和 classify 汇总行。
func (k DialectKind) String() string {
	if int(k) < len(dialectNames) {
		return dialectNames[k]
	}
	return "unknown"
}

// BlockDelimiter 表示一对块注释定界符，例如 /* 与 */。
type BlockDelimiter struct {
	Open  string
	Close string
}

// Dialect 描述一种语言族的注释与字符串规则。
// 分类器只读取这些字段，所有方言共用同一个 FSM 实现。
type Dialect struct {
	Kind DialectKind

	// LineComments 是行注释标记，例如 //、#、--。
	LineComments []string
	// BlockComments 按声明顺序匹配，先声明者优先（Lua 依赖这一点区分 --[[ 与 --）。
	BlockComments []BlockDelimiter
	// Quotes 中的每个字符都会开启一个单行字符串字面量，字符串内的注释标记无效。
	Quotes string
	// BackslashEscapes 为 true 时，字符串内的反斜杠会吞掉下一个字符。
	BackslashEscapes bool
	// TripleQuotes 开启 Python 的 """ / ''' 跨行结构。
	TripleQuotes bool
	// LeadingLineComments 为 true 时，行注释只在行首（忽略前导空白）生效，且大小写不敏感。
	LeadingLineComments bool
}

var (
	cLikeDialect = &Dialect{
		Kind:             DialectCLike,
		LineComments:     []string{"//"},
		BlockComments:    []BlockDelimiter{{Open: "/*", Close: "*/"}},
		Quotes:           `"'`,
		BackslashEscapes: true,
	}

	phpDialect = &Dialect{
		Kind:             DialectPHP,
		LineComments:     []string{"//", "#"},
		BlockComments:    []BlockDelimiter{{Open: "/*", Close: "*/"}},
		Quotes:           `"'`,
		BackslashEscapes: true,
	}

	pythonDialect = &Dialect{
		Kind:             DialectPython,
		LineComments:     []string{"#"},
		Quotes:           `"'`,
		BackslashEscapes: true,
		TripleQuotes:     true,
	}

	luaDialect = &Dialect{
		Kind:             DialectLua,
		LineComments:     []string{"--"},
		BlockComments:    []BlockDelimiter{{Open: "--[[", Close: "]]"}},
		Quotes:           `"'`,
		BackslashEscapes: true,
	}

	markupDialect = &Dialect{
		Kind:          DialectMarkup,
		BlockComments: []BlockDelimiter{{Open: "<!--", Close: "-->"}},
	}

	cssDialect = &Dialect{
		Kind:          DialectCSS,
		BlockComments: []BlockDelimiter{{Open: "/*", Close: "*/"}},
	}

	sqlDialect = &Dialect{
		Kind:          DialectSQL,
		LineComments:  []string{"--"},
		BlockComments: []BlockDelimiter{{Open: "/*", Close: "*/"}},
		Quotes:        `'"`,
	}

	hashDialect = &Dialect{
		Kind:             DialectHash,
		LineComments:     []string{"#"},
		Quotes:           `"'`,
		BackslashEscapes: true,
	}

	batchDialect = &Dialect{
		Kind:                DialectBatch,
		LineComments:        []string{"REM", "::"},
		LeadingLineComments: true,
	}
)

// blockAt 判断 pos 处是否为块注释起始标记。
func (d *Dialect) blockAt(line string, pos int) (BlockDelimiter, bool) {
	for _, block := range d.BlockComments {
		if strings.HasPrefix(line[pos:], block.Open) {
			return block, true
		}
	}
	return BlockDelimiter{}, false
}

// lineCommentAt 判断 pos 处是否为行注释起始标记。
func (d *Dialect) lineCommentAt(line string, pos int) bool {
	for _, marker := range d.LineComments {
		if strings.HasPrefix(line[pos:], marker) {
			return true
		}
	}
	return false
}

// leadingLineComment 处理只允许出现在行首的行注释（批处理的 REM 与 ::）。
// 以字母结尾的标记后面必须是空白或行尾，避免把 REMOVE 之类的命令当成注释。
func (d *Dialect) leadingLineComment(line string) bool {
	trimmed := strings.TrimLeft(line, " \t\f\v")
	for _, marker := range d.LineComments {
		if len(trimmed) < len(marker) || !strings.EqualFold(trimmed[:len(marker)], marker) {
			continue
		}
		if !isLetter(marker[len(marker)-1]) || len(trimmed) == len(marker) || isSpace(trimmed[len(marker)]) {
			return true
		}
	}
	return false
}

// isQuote 判断字符是否会开启字符串字面量。
func (d *Dialect) isQuote(c byte) bool {
	return strings.IndexByte(d.Quotes, c) >= 0
}
