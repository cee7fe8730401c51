package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"gocloc/internal/languages"
	"gocloc/internal/model"
	"gocloc/internal/scanner"
)

// newClassifyCmd 创建 classify 子命令，逐行打印单个文件的分类结果，便于排查统计差异。
// 示例：
//
//	gocloc classify main.go
//	gocloc classify build.txt --language Python
func newClassifyCmd(a *app) *cobra.Command {
	var languageName string

	classifyCmd := &cobra.Command{
		Use:   "classify <file>",
		Short: "逐行展示单个文件的 code/comment/blank 分类",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			language, err := resolveLanguage(a.registry, path, languageName)
			if err != nil {
				return err
			}

			content, err := afero.ReadFile(afero.NewOsFs(), path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			decoded, encoding, err := scanner.DecodeContent(content)
			if err != nil {
				a.logger.Warn().Str("path", path).Str("encoding", encoding).Err(err).Msg("decode failed")
			}

			out := cmd.OutOrStdout()
			var metrics model.LineMetrics
			number := 0
			var writeErr error
			err = languages.Classify(bytes.NewReader(decoded), language.Dialect, func(line string, kind languages.LineKind) {
				number++
				languages.TallyLine(&metrics, kind)
				if writeErr == nil {
					_, writeErr = fmt.Fprintf(out, "%5d  %-7s  %s\n", number, kind, line)
				}
			})
			if err != nil {
				return err
			}
			if writeErr != nil {
				return writeErr
			}

			_, err = fmt.Fprintf(out, "\n%s (%s): total=%d code=%d comment=%d blank=%d\n",
				language.Name, language.Dialect.Kind, metrics.Total, metrics.Code, metrics.Comment, metrics.Blank)
			return err
		},
	}

	classifyCmd.Flags().StringVarP(&languageName, "language", "l", "", "强制使用指定语言，默认按后缀识别")
	return classifyCmd
}

// resolveLanguage 优先使用显式指定的语言名，否则按小写后缀识别。
func resolveLanguage(registry *languages.Registry, path string, name string) (*languages.Language, error) {
	if name != "" {
		language, ok := registry.ByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown language %q", name)
		}
		return language, nil
	}

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	language, ok := registry.Resolve(extension)
	if !ok {
		return nil, fmt.Errorf("no language registered for %s, use --language", filepath.Base(path))
	}
	return language, nil
}
