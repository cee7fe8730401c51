// Package config 提供 gocloc 的配置加载能力。
// 配置来源优先级：命令行参数 > 环境变量（GOCLOC_ 前缀） > 配置文件 > 默认值。
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"gocloc/internal/scanner"
)

// ErrInvalidConfig 表示配置校验失败。
var ErrInvalidConfig = errors.New("invalid configuration")

// Config 是应用配置结构。
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Log    LogConfig    `mapstructure:"log"`
	Scan   ScanConfig   `mapstructure:"scan"`
	Output OutputConfig `mapstructure:"output"`
}

// AppConfig 控制运行模式。
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Debug   bool   `mapstructure:"debug"`
	Verbose bool   `mapstructure:"verbose"`
	Quiet   bool   `mapstructure:"quiet"` // 是否安静模式，禁止所有日志输出
}

// LogConfig 日志配置
// Mode 取值 console、file、both；MaxSize 单位为 MB，MaxAge 单位为天。
type LogConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
	JSON       bool   `mapstructure:"json"`
	Mode       string `mapstructure:"mode" validate:"oneof=console file both"`
	FilePath   string `mapstructure:"file_path" validate:"required_unless=Mode console"`
	MaxSize    int    `mapstructure:"max_size" validate:"min=1"`
	MaxBackups int    `mapstructure:"max_backups" validate:"min=0"`
	MaxAge     int    `mapstructure:"max_age" validate:"min=0"`
}

// ScanConfig 扫描配置，MaxBytes 为 0 表示不限制单文件大小。
type ScanConfig struct {
	Workers     int      `mapstructure:"workers" validate:"min=1"`
	Parallel    bool     `mapstructure:"parallel"`
	MaxBytes    int64    `mapstructure:"max_bytes" validate:"min=0"`
	SkipBinary  bool     `mapstructure:"skip_binary"`
	SkipVendor  bool     `mapstructure:"skip_vendor"`
	ExcludeDirs []string `mapstructure:"exclude_dirs" validate:"dive,required"`
}

// OutputConfig 输出配置
type OutputConfig struct {
	Format string `mapstructure:"format" validate:"oneof=table json yaml"`
	File   string `mapstructure:"file"`
	ByFile bool   `mapstructure:"by_file"`
}

// New 创建带默认值的 viper 实例。
// 每次调用返回独立实例，便于命令与测试之间互不干扰。
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("GOCLOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "gocloc")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.verbose", false)
	v.SetDefault("app.quiet", false)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.json", false)
	v.SetDefault("log.mode", "console")
	v.SetDefault("log.file_path", ".gocloc/gocloc.log")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)

	v.SetDefault("scan.workers", runtime.NumCPU())
	v.SetDefault("scan.parallel", true)
	v.SetDefault("scan.max_bytes", scanner.DefaultMaxBytes)
	v.SetDefault("scan.skip_binary", true)
	v.SetDefault("scan.skip_vendor", false)
	v.SetDefault("scan.exclude_dirs", append([]string(nil), scanner.DefaultExcludeDirs...))

	v.SetDefault("output.format", "table")
	v.SetDefault("output.file", "")
	v.SetDefault("output.by_file", false)
}

// Load 读取配置文件并解析为 Config。
// configPath 为空时在当前目录和 HOME 下查找 .gocloc.{yaml,yml,json,toml}，找不到则只使用默认值与环境变量。
func Load(v *viper.Viper, configPath string) (*Config, error) {
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configPath, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	config.Output.Format = strings.ToLower(strings.TrimSpace(config.Output.Format))
	config.Log.Mode = strings.ToLower(strings.TrimSpace(config.Log.Mode))
	config.Log.Level = strings.ToLower(strings.TrimSpace(config.Log.Level))

	if err := Validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate 按 struct tag 校验配置。
func Validate(config *Config) error {
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if config.App.Quiet && config.App.Verbose {
		return fmt.Errorf("%w: quiet and verbose are mutually exclusive", ErrInvalidConfig)
	}
	return nil
}

// findConfigFile 尝试查找不同格式的配置文件
func findConfigFile() string {
	searchPaths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, home, filepath.Join(home, ".config", "gocloc"))
	}

	for _, dir := range searchPaths {
		for _, ext := range []string{"yaml", "yml", "json", "toml"} {
			candidate := filepath.Join(dir, ".gocloc."+ext)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}
	return ""
}
