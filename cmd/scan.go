package cmd

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"gocloc/internal/report"
	"gocloc/internal/scanner"
)

// newScanCmd 创建 scan 子命令。
// 示例：
//
//	gocloc scan .
//	gocloc scan ./project --format json --output result.json
//	gocloc scan ./project --exclude .git,vendor --workers 4 --by-file
func newScanCmd(a *app) *cobra.Command {
	scanCmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "扫描目录并输出按语言汇总的行数统计",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			absolute, err := filepath.Abs(root)
			if err != nil {
				return fmt.Errorf("resolve path %s: %w", root, err)
			}

			scanConfig := a.config.Scan
			filter := scanner.DefaultFilter()
			filter.MaxBytes = scanConfig.MaxBytes
			filter.SkipBinary = scanConfig.SkipBinary
			filter.SkipVendor = scanConfig.SkipVendor

			service := scanner.NewService(afero.NewOsFs(), a.registry, scanner.Options{
				Workers:  scanConfig.Workers,
				Parallel: scanConfig.Parallel,
				Exclude:  scanner.ExcludeDirs(scanConfig.ExcludeDirs),
				Filter:   filter,
			}, a.logger)

			result, err := service.Scan(cmd.Context(), absolute)
			if err != nil {
				return err
			}

			output := a.config.Output
			if err := report.Render(cmd.OutOrStdout(), output.Format, result, output.ByFile); err != nil {
				return err
			}

			if output.File != "" {
				if err := report.WriteFile(output.File, output.Format, result, output.ByFile); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Result exported to %s\n", output.File)
			}
			return nil
		},
	}

	flags := scanCmd.Flags()
	flags.Int("workers", runtime.NumCPU(), "并发分片数量")
	flags.Bool("parallel", true, "是否并行统计，关闭后顺序执行")
	flags.Int64("max-bytes", scanner.DefaultMaxBytes, "单文件大小上限（字节），0 表示不限制")
	flags.Bool("skip-binary", true, "跳过二进制文件")
	flags.Bool("skip-vendor", false, "跳过 vendor/依赖目录中的文件")
	flags.StringSlice("exclude", scanner.DefaultExcludeDirs, "排除的目录名，支持 glob")
	flags.String("format", report.FormatTable, "输出格式: table、json 或 yaml")
	flags.String("output", "", "导出文件路径，为空时不导出")
	flags.Bool("by-file", false, "table 格式下额外输出逐文件明细")

	bindings := map[string]string{
		"scan.workers":      "workers",
		"scan.parallel":     "parallel",
		"scan.max_bytes":    "max-bytes",
		"scan.skip_binary":  "skip-binary",
		"scan.skip_vendor":  "skip-vendor",
		"scan.exclude_dirs": "exclude",
		"output.format":     "format",
		"output.file":       "output",
		"output.by_file":    "by-file",
	}
	for key, name := range bindings {
		_ = a.viper.BindPFlag(key, flags.Lookup(name))
	}

	return scanCmd
}
