// Package cmd 提供 gocloc 的命令行入口与子命令编排。
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gocloc/internal/config"
	"gocloc/internal/languages"
	"gocloc/internal/logging"
)

// app 保存一次命令执行所需的共享状态。
// 配置和日志在 PersistentPreRunE 中初始化，子命令直接读取。
type app struct {
	version    string
	registry   *languages.Registry
	viper      *viper.Viper
	configPath string
	config     *config.Config
	logger     zerolog.Logger
}

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
// 收到中断信号时取消扫描上下文。
func Execute(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCmd(version, languages.NewRegistry())
	return rootCmd.ExecuteContext(ctx)
}

// newRootCmd 创建根命令并注册全部子命令。
func newRootCmd(version string, registry *languages.Registry) *cobra.Command {
	a := &app{
		version:  version,
		registry: registry,
		viper:    config.New(),
		logger:   zerolog.Nop(),
	}

	rootCmd := &cobra.Command{
		Use:   "gocloc",
		Short: "按语言统计代码行、注释行和空行",
		Long: "gocloc 递归扫描目录，按文件后缀识别语言，\n" +
			"用逐行状态机把每一行归类为 code/comment/blank，并按语言汇总。",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "配置文件路径，默认查找 .gocloc.{yaml,yml,json,toml}")
	flags.Bool("debug", false, "输出调试日志")
	flags.BoolP("verbose", "v", false, "输出详细日志")
	flags.BoolP("quiet", "q", false, "关闭全部日志")
	_ = a.viper.BindPFlag("app.debug", flags.Lookup("debug"))
	_ = a.viper.BindPFlag("app.verbose", flags.Lookup("verbose"))
	_ = a.viper.BindPFlag("app.quiet", flags.Lookup("quiet"))

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newLanguageCmd(a))
	rootCmd.AddCommand(newScanCmd(a))
	rootCmd.AddCommand(newClassifyCmd(a))

	return rootCmd
}

// init 加载配置并创建日志记录器，日志写到 stderr，stdout 只留给报告。
func (a *app) init(cmd *cobra.Command) error {
	loaded, err := config.Load(a.viper, a.configPath)
	if err != nil {
		return err
	}

	a.config = loaded
	a.logger = logging.New(loaded.Log, loaded.App, cmd.ErrOrStderr())
	a.logger.Debug().Str("command", cmd.Name()).Msg("configuration loaded")
	return nil
}
