// Package app は起動手順をまとめる。
//
// バナー表示、データファイルと入口HTMLの確認、空きポートの探索、
// サーバーのバインド、案内の表示、ブラウザ起動、配信、停止時のあいさつまでを順に行う。
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"localserve/internal/browser"
	"localserve/internal/catalog"
	"localserve/internal/config"
	"localserve/internal/portprobe"
	"localserve/internal/server"
)

// App は起動処理に必要な依存をまとめたもの
type App struct {
	config     *config.Config
	logger     *zap.Logger
	out        io.Writer
	prober     *portprobe.Prober
	openURL    func(url string) error
	serverOpts []server.Option
}

// Option はAppの生成時オプション
type Option func(*App)

// WithOutput は案内表示の出力先を指定する
func WithOutput(w io.Writer) Option {
	return func(a *App) { a.out = w }
}

// WithProber はポート探索を差し替える
func WithProber(p *portprobe.Prober) Option {
	return func(a *App) { a.prober = p }
}

// WithBrowser はブラウザ起動関数を差し替える
func WithBrowser(open func(url string) error) Option {
	return func(a *App) { a.openURL = open }
}

// WithServerOptions はサーバー生成時のオプションを追加する
func WithServerOptions(opts ...server.Option) Option {
	return func(a *App) { a.serverOpts = append(a.serverOpts, opts...) }
}

// New は新しいAppを作成する
func New(cfg *config.Config, logger *zap.Logger, opts ...Option) *App {
	a := &App{
		config:  cfg,
		logger:  logger,
		out:     os.Stdout,
		prober:  portprobe.New(cfg.Server.Host),
		openURL: browser.Open,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run は起動から停止までを行う。
// 割り込みやコンテキストのキャンセルによる停止はnil、それ以外の失敗はエラーを返す
func (a *App) Run(ctx context.Context) error {
	a.printBanner()
	a.reportDataFile()
	a.reportEntryDocuments()

	port, err := a.choosePort()
	if err != nil {
		if errors.Is(err, portprobe.ErrNoAvailablePort) {
			a.printf("❌  %d から %d の間に利用可能なポートが見つかりませんでした\n",
				a.config.Server.Port, a.config.Server.Port+a.config.Server.MaxTries-1)
		} else {
			a.printf("❌  ポートの探索に失敗しました: %v\n", err)
		}
		return err
	}

	srv := server.New(a.config, a.logger, a.serverOpts...)
	if err := srv.Listen(port); err != nil {
		a.printf("\n❌  サーバーの起動に失敗しました: %v\n", err)
		return err
	}

	url := a.config.BaseURL(srv.Port())
	a.printReady(url)

	if a.config.Browser.Open {
		a.printf("🔄  ブラウザを開いています...\n")
		// ブラウザが開けなくても配信は続ける
		_ = a.openURL(url + "/" + a.config.Static.DefaultEntry)
	}

	if err := srv.Serve(ctx); err != nil {
		a.printf("\n❌  サーバーの実行中にエラーが発生しました: %v\n", err)
		return err
	}

	a.printFarewell()
	return nil
}

// choosePort は設定ポートから空きポートを探す。0はカーネルに任せる
func (a *App) choosePort() (int, error) {
	if a.config.Server.Port == 0 {
		return 0, nil
	}
	port, err := a.prober.Find(a.config.Server.Port, a.config.Server.MaxTries)
	if err != nil {
		return 0, err
	}
	if port != a.config.Server.Port {
		a.logger.Info("既定のポートは使用中のため別のポートを使います",
			zap.Int("requested", a.config.Server.Port),
			zap.Int("port", port),
		)
	}
	return port, nil
}

func (a *App) reportDataFile() {
	status, err := catalog.CheckDataFile(a.config.Static.Root, a.config.Static.DataFile)
	if err != nil {
		a.logger.Warn("データファイルを確認できませんでした", zap.Error(err))
	}

	if !status.Exists {
		a.printf("⚠️  警告: %s が見つかりません\n", a.config.Static.DataFile)
		a.printf("   探した場所: %s\n", status.Path)
		a.printf("   このファイルがないとアプリケーションは動作しません。\n\n")
		return
	}
	a.printf("✅  データファイルを確認しました: %s\n\n", humanize.Bytes(uint64(status.Size)))
}

func (a *App) reportEntryDocuments() {
	names, err := catalog.EntryDocuments(a.config.Static.Root, a.config.Static.EntryExt)
	if err != nil {
		a.logger.Warn("入口ドキュメントを列挙できませんでした", zap.Error(err))
		return
	}
	if len(names) == 0 {
		return
	}

	a.printf("📄  利用できるHTMLファイル:\n")
	for _, name := range names {
		a.printf("   - %s\n", name)
	}
	a.printf("\n")
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
