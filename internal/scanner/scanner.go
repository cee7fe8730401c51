// Package scanner 提供目录扫描与并发统计能力。
// 该层负责目录遍历、预过滤、分片执行和结果聚合，不负责注释语法细节。
package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"gocloc/internal/languages"
	"gocloc/internal/model"
)

var (
	// ErrEmptyPath 表示未提供扫描路径。
	ErrEmptyPath = errors.New("scan path is empty")
	// ErrNotDirectory 表示扫描根路径不是目录。
	ErrNotDirectory = errors.New("scan path is not a directory")
)

// Options 控制扫描行为。
type Options struct {
	// Workers 是并行模式下的分片数，<=0 时使用 CPU 数。
	Workers int
	// Parallel 为 false 时在调用方 goroutine 内顺序执行，结果与并行模式一致。
	Parallel bool
	// Exclude 为 nil 时不排除任何目录。
	Exclude ExcludeFunc
	// Filter 为 nil 时所有可识别文件都会被统计。
	Filter PreFilter
}

// Service 是扫描服务对象。
type Service struct {
	fs       afero.Fs
	registry *languages.Registry
	options  Options
	logger   zerolog.Logger
}

// scanTask 表示一个待分析文件任务。
type scanTask struct {
	candidate Candidate
	language  *languages.Language
}

// shardResult 是单个分片的产物，在交给合并步骤之前只归该分片所有。
type shardResult struct {
	totals  model.Totals
	files   []model.FileMetrics
	errors  []model.ScanError
	skipped int64
}

// NewService 创建扫描服务。
func NewService(fsys afero.Fs, registry *languages.Registry, options Options, logger zerolog.Logger) *Service {
	if options.Workers <= 0 {
		options.Workers = runtime.NumCPU()
	}
	return &Service{
		fs:       fsys,
		registry: registry,
		options:  options,
		logger:   logger.With().Str("component", "scanner").Logger(),
	}
}

// Scan 扫描 root 目录并返回按语言聚合的结果。
// 只有根路径不存在或不是目录时返回错误，单个文件或目录项的错误记录在结果中。
func (s *Service) Scan(ctx context.Context, root string) (model.ScanResult, error) {
	var result model.ScanResult

	trimmedRoot := strings.TrimSpace(root)
	if trimmedRoot == "" {
		return result, ErrEmptyPath
	}
	trimmedRoot = filepath.Clean(trimmedRoot)

	info, err := s.fs.Stat(trimmedRoot)
	if err != nil {
		return result, fmt.Errorf("stat path: %w", err)
	}
	if !info.IsDir() {
		return result, fmt.Errorf("%w: %s", ErrNotDirectory, trimmedRoot)
	}

	walkRoot, err := s.resolveRoot(trimmedRoot)
	if err != nil {
		return result, err
	}

	result.ScannedPath = trimmedRoot
	s.logger.Info().Str("path", trimmedRoot).Str("walk_root", walkRoot).Bool("parallel", s.options.Parallel).
		Int("workers", s.options.Workers).Msg("starting scan")

	tasks, walkErrors, ignored, err := s.discover(ctx, walkRoot)
	if err != nil {
		return result, err
	}
	result.Ignored = ignored

	merged, err := s.classifyAll(ctx, tasks)
	if err != nil {
		return result, err
	}
	merged.errors = append(merged.errors, walkErrors...)

	s.buildSummaries(&result, merged)
	s.logger.Info().Int64("files", result.Total.Files).Int64("ignored", result.Ignored).
		Int64("skipped", result.Skipped).Int("errors", len(result.Errors)).Msg("scan completed")
	return result, nil
}

// resolveRoot 在真实文件系统上解析根路径中的符号链接。
// afero.Walk 用 Lstat 读取根节点，链接形式的根目录不会被展开，因此需要先换成真实路径。
func (s *Service) resolveRoot(root string) (string, error) {
	if _, ok := s.fs.(*afero.OsFs); !ok {
		return root, nil
	}

	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", fmt.Errorf("resolve path %s: %w", root, err)
	}
	return resolved, nil
}

// discover 遍历目录树，剪掉被排除的目录，并为可识别语言的文件生成任务。
// 遍历顺序不影响最终结果。
func (s *Service) discover(ctx context.Context, root string) ([]scanTask, []model.ScanError, int64, error) {
	var (
		tasks   []scanTask
		errs    []model.ScanError
		ignored int64
	)

	walkErr := afero.Walk(s.fs, root, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			s.logger.Warn().Str("path", path).Err(walkErr).Msg("error accessing path during walk")
			errs = append(errs, model.ScanError{Path: displayPath(root, path), Error: walkErr.Error()})
			return nil
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if path != root && info.Mode()&os.ModeSymlink != 0 {
			s.logger.Debug().Str("path", path).Msg("skipping symbolic link")
			return nil
		}

		if info.IsDir() {
			if path != root && s.options.Exclude != nil && s.options.Exclude(info.Name()) {
				s.logger.Debug().Str("path", path).Msg("directory excluded")
				return filepath.SkipDir
			}
			return nil
		}

		language, ok := s.registry.Resolve(extensionOf(info.Name()))
		if !ok {
			ignored++
			return nil
		}

		tasks = append(tasks, scanTask{
			candidate: Candidate{Path: path, Rel: displayPath(root, path), Info: info},
			language:  language,
		})
		return nil
	})
	if walkErr != nil {
		return nil, nil, 0, fmt.Errorf("walk %s: %w", root, walkErr)
	}

	return tasks, errs, ignored, nil
}

// classifyAll 顺序或分片并行地处理全部任务，然后做一次合并。
func (s *Service) classifyAll(ctx context.Context, tasks []scanTask) (shardResult, error) {
	if !s.options.Parallel || s.options.Workers == 1 || len(tasks) <= 1 {
		return s.runShard(ctx, tasks)
	}

	shards := splitShards(tasks, s.options.Workers)
	partials := make([]shardResult, len(shards))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, shard := range shards {
		group.Go(func() error {
			partial, err := s.runShard(groupCtx, shard)
			if err != nil {
				return err
			}
			// 每个分片只写自己的下标，不需要加锁。
			partials[i] = partial
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return shardResult{}, err
	}

	merged := shardResult{totals: model.NewTotals()}
	for _, partial := range partials {
		merged.totals.Merge(partial.totals)
		merged.files = append(merged.files, partial.files...)
		merged.errors = append(merged.errors, partial.errors...)
		merged.skipped += partial.skipped
	}
	return merged, nil
}

// runShard 处理一个分片。只在上下文取消时返回错误。
func (s *Service) runShard(ctx context.Context, tasks []scanTask) (shardResult, error) {
	result := shardResult{totals: model.NewTotals()}

	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		rel := task.candidate.Rel
		if s.options.Filter != nil {
			verdict, err := s.options.Filter.Check(s.fs, task.candidate)
			if err != nil {
				s.logger.Warn().Str("path", rel).Err(err).Msg("pre-filter failed")
				result.errors = append(result.errors, model.ScanError{Path: rel, Error: err.Error()})
				continue
			}
			if verdict != Proceed {
				s.logger.Debug().Str("path", rel).Stringer("reason", verdict).Msg("file skipped")
				result.skipped++
				continue
			}
		}

		metrics, err := s.countFile(task)
		if err != nil {
			s.logger.Warn().Str("path", rel).Err(err).Msg("failed to count file")
			result.errors = append(result.errors, model.ScanError{Path: rel, Error: err.Error()})
			continue
		}

		if err := result.totals.Fold(task.language.Name, metrics); err != nil {
			result.errors = append(result.errors, model.ScanError{Path: rel, Error: err.Error()})
			continue
		}
		result.files = append(result.files, model.FileMetrics{
			Path:     rel,
			Language: task.language.Name,
			Metrics:  metrics,
		})
	}

	return result, nil
}

// countFile 读取文件、统一编码并交给分类器。
func (s *Service) countFile(task scanTask) (model.LineMetrics, error) {
	content, err := afero.ReadFile(s.fs, task.candidate.Path)
	if err != nil {
		return model.LineMetrics{}, fmt.Errorf("read file: %w", err)
	}

	decoded, encoding, err := DecodeContent(content)
	if err != nil {
		// 解码失败时按原始字节继续统计。
		s.logger.Debug().Str("path", task.candidate.Rel).Str("encoding", encoding).Err(err).Msg("decode failed")
	}

	return languages.Count(bytes.NewReader(decoded), task.language.Dialect)
}

// buildSummaries 计算语言级汇总和总计信息。
func (s *Service) buildSummaries(result *model.ScanResult, merged shardResult) {
	result.Files = merged.files
	if result.Files == nil {
		result.Files = make([]model.FileMetrics, 0)
	}
	result.Errors = merged.errors
	if result.Errors == nil {
		result.Errors = make([]model.ScanError, 0)
	}
	result.Skipped = merged.skipped

	sort.Slice(result.Files, func(i int, j int) bool {
		return result.Files[i].Path < result.Files[j].Path
	})

	sort.Slice(result.Errors, func(i int, j int) bool {
		return result.Errors[i].Path < result.Errors[j].Path
	})

	result.Total = merged.totals.Sum()
	result.Languages = make([]model.LanguageMetrics, 0, len(merged.totals))
	for _, name := range merged.totals.Languages() {
		result.Languages = append(result.Languages, model.LanguageMetrics{
			Language:       name,
			Extensions:     s.registry.ExtensionsForLanguage(name),
			LanguageTotals: merged.totals[name],
		})
	}
}

// splitShards 把任务切成至多 n 个连续且互不相交的分片。
func splitShards(tasks []scanTask, n int) [][]scanTask {
	if n > len(tasks) {
		n = len(tasks)
	}
	shards := make([][]scanTask, 0, n)
	size := (len(tasks) + n - 1) / n
	for start := 0; start < len(tasks); start += size {
		end := min(start+size, len(tasks))
		shards = append(shards, tasks[start:end])
	}
	return shards
}

// extensionOf 提取不带点号的小写后缀。
func extensionOf(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// displayPath 返回相对扫描根目录、使用 / 分隔的路径。
func displayPath(root string, path string) string {
	relativePath, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(relativePath)
}
