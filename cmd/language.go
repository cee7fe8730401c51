package cmd

import (
	"github.com/spf13/cobra"

	"gocloc/internal/report"
)

// newLanguageCmd 创建 language 子命令。
// 命令用于展示当前支持的语言、注释方言以及对应文件后缀。
func newLanguageCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "language",
		Short: "展示支持的语言及后缀",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return report.PrintLanguages(cmd.OutOrStdout(), a.registry.Languages())
		},
	}
}
