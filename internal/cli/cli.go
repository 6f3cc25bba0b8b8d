// Package cli はコマンドラインの入口を提供する。
// 引数なしで起動すると既定の設定で配信を始める
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"localserve/internal/app"
	"localserve/internal/config"
	"localserve/internal/logger"
)

// runFunc は設定を受け取って配信を行う関数。テストで差し替える
type runFunc func(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error

// flagBindings はフラグ名と設定キーの対応
var flagBindings = map[string]string{
	"host":      "server.host",
	"port":      "server.port",
	"tries":     "server.max_tries",
	"root":      "static.root",
	"log-level": "log.level",
	"color":     "log.color",
}

// NewRootCommand はルートコマンドを作成する
func NewRootCommand() *cobra.Command {
	return newRootCommand(runApp)
}

func newRootCommand(run runFunc) *cobra.Command {
	var (
		noBrowser   bool
		printConfig bool
	)

	cmd := &cobra.Command{
		Use:           "localserve",
		Short:         "CORS制限なしでローカルのHTMLアプリを開くための静的ファイルサーバー",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				cmd.PrintErrln("❌ ", err)
				return err
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if err := bindFlags(v, cmd.Flags()); err != nil {
				cmd.PrintErrln("❌  フラグの読み込みに失敗しました:", err)
				return err
			}
			if noBrowser {
				v.Set("browser.open", false)
			}

			cfg, err := config.LoadWith(v)
			if err != nil {
				cmd.PrintErrln("❌ ", err)
				return err
			}

			if printConfig {
				out, err := cfg.YAML()
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}

			return run(cmd.Context(), cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("host", "", "リッスンするホスト (デフォルト: 全インターフェース)")
	flags.Int("port", config.DefaultPort, "探索を開始するポート")
	flags.Int("tries", config.DefaultMaxTries, "探索するポートの数")
	flags.String("root", "", "配信するディレクトリ (デフォルト: 実行ファイルのあるディレクトリ)")
	flags.String("log-level", "info", "運用ログのレベル (debug, info, warn, error)")
	flags.String("color", "auto", "アクセスログの色付け (auto, always, never)")
	flags.BoolVar(&noBrowser, "no-browser", false, "起動時にブラウザを開かない")
	flags.BoolVar(&printConfig, "print-config", false, "有効な設定をYAMLで表示して終了する")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.PrintErrln("❌ ", err)
		c.PrintErrln(c.UsageString())
		return err
	})

	return cmd
}

// bindFlags は変更されたフラグだけが設定を上書きするようにviperへバインドする
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagBindings {
		flag := flags.Lookup(name)
		if flag == nil {
			return fmt.Errorf("フラグ %q が定義されていません", name)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("フラグ %q のバインドに失敗: %w", name, err)
		}
	}
	return nil
}

func runApp(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	log, err := logger.New(cfg.Log)
	if err != nil {
		cmd.PrintErrln("❌  ロガーの作成に失敗しました:", err)
		return err
	}
	defer func() { _ = log.Sync() }()

	return app.New(cfg, log, app.WithOutput(cmd.OutOrStdout())).Run(ctx)
}

// Execute はルートコマンドを実行し、終了コードを返す
func Execute() int {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		return 1
	}
	return 0
}
