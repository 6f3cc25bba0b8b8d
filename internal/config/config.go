package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// デフォルト値
const (
	DefaultPort         = 8000
	DefaultMaxTries     = 10
	DefaultDataFile     = "DECE_CRUCE_X_Y_NUC_SAT.csv"
	DefaultEntryExt     = ".html"
	DefaultEntry        = "index-mejorado.html"
	DefaultAltEntry     = "index.html"
	DefaultReadTimeout  = 10 * time.Second
	DefaultShutdownWait = 5 * time.Second
)

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Static  StaticConfig  `mapstructure:"static" yaml:"static"`
	Browser BrowserConfig `mapstructure:"browser" yaml:"browser"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	// リッスンするホスト (空なら全インターフェース)
	Host string `mapstructure:"host" yaml:"host"`
	// 探索を開始するポート番号 (0はカーネルに任せる)
	Port int `mapstructure:"port" yaml:"port" validate:"gte=0,lte=65535"`
	// 探索するポートの数
	MaxTries int `mapstructure:"max_tries" yaml:"max_tries" validate:"gte=1,lte=1000"`

	// タイムアウト設定
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" validate:"gt=0"`
}

// StaticConfig は配信ディレクトリの設定
type StaticConfig struct {
	Root         string `mapstructure:"root" yaml:"root" validate:"required"`
	DataFile     string `mapstructure:"data_file" yaml:"data_file" validate:"required"`
	EntryExt     string `mapstructure:"entry_ext" yaml:"entry_ext" validate:"required,startswith=."`
	DefaultEntry string `mapstructure:"default_entry" yaml:"default_entry" validate:"required"`
	AltEntry     string `mapstructure:"alt_entry" yaml:"alt_entry"`
}

// BrowserConfig はブラウザ起動の設定
type BrowserConfig struct {
	Open bool `mapstructure:"open" yaml:"open"`
}

// LogConfig はログ出力の設定
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=console json"`
	Color  string `mapstructure:"color" yaml:"color" validate:"oneof=auto always never"`
}

var validate = validator.New()

// SetDefaults はviperにデフォルト値を登録する
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.max_tries", DefaultMaxTries)
	v.SetDefault("server.read_timeout", DefaultReadTimeout)
	v.SetDefault("server.write_timeout", time.Duration(0))
	v.SetDefault("server.shutdown_timeout", DefaultShutdownWait)

	v.SetDefault("static.root", "")
	v.SetDefault("static.data_file", DefaultDataFile)
	v.SetDefault("static.entry_ext", DefaultEntryExt)
	v.SetDefault("static.default_entry", DefaultEntry)
	v.SetDefault("static.alt_entry", DefaultAltEntry)

	v.SetDefault("browser.open", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.color", "auto")
}

// Load はデフォルト値だけで設定を読み込む
func Load() (*Config, error) {
	return LoadWith(viper.New())
}

// LoadWith は渡されたviperから設定を読み込む
// 環境変数は参照しない。上書きはフラグのバインドだけで行う
func LoadWith(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("設定の展開に失敗: %w", err)
	}

	if cfg.Static.Root == "" {
		cfg.Static.Root = defaultRoot()
	}
	if abs, err := filepath.Abs(cfg.Static.Root); err == nil {
		cfg.Static.Root = abs
	}

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return &cfg, nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("無効な設定: %w", err)
	}
	return nil
}

// ServerAddress は指定ポートでのリッスンアドレスを返す
func (c *Config) ServerAddress(port int) string {
	return fmt.Sprintf("%s:%d", c.Server.Host, port)
}

// BaseURL はブラウザから開くためのURLを返す
func (c *Config) BaseURL(port int) string {
	return fmt.Sprintf("http://localhost:%d", port)
}

// YAML は有効な設定をYAMLで返す
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("設定のYAML変換に失敗: %w", err)
	}
	return out, nil
}

// defaultRoot は実行ファイルのあるディレクトリを返す
func defaultRoot() string {
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
