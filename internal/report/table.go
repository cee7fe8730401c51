package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	xterm "github.com/charmbracelet/x/term"
)

// defaultWidth 是无法探测终端宽度时使用的表格宽度。
const defaultWidth = 80

// printTable 用 lipgloss 渲染带边框的表格。
// width<=0 时自动探测终端宽度，失败则回退到 defaultWidth。
// 最后一行在 emphasizeLast 为 true 时加粗，用于 SUM 汇总行。
func printTable(w io.Writer, headers []string, rows [][]string, width int, emphasizeLast bool) error {
	if width <= 0 {
		width = detectTerminalWidth(w)
		if width <= 0 {
			width = defaultWidth
		}
	}

	re := lipgloss.NewRenderer(w)
	baseStyle := re.NewStyle().Padding(0, 1)
	headerStyle := baseStyle.Foreground(lipgloss.Color("252")).Bold(true)
	sumStyle := baseStyle.Bold(true)

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(re.NewStyle().Foreground(lipgloss.Color("238"))).
		Headers(headers...).
		Width(width).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case emphasizeLast && row == len(rows)-1:
				return sumStyle
			default:
				return baseStyle
			}
		})

	_, err := fmt.Fprintln(w, tbl)
	return err
}

// detectTerminalWidth 尝试从 writer 获取终端宽度，失败则返回 0
func detectTerminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if cols, _, err := xterm.GetSize(f.Fd()); err == nil && cols > 0 {
			return cols
		}
	}
	// 某些环境（CI、管道）只提供 COLUMNS
	if v := os.Getenv("COLUMNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 0
}
