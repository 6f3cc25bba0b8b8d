package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"localserve/internal/config"
)

// Server は静的ファイル配信用のHTTPサーバーを管理する構造体
type Server struct {
	config     *config.Config
	logger     *zap.Logger
	engine     *gin.Engine
	httpServer *http.Server
	listener   net.Listener

	accessOut     io.Writer
	accessColored bool
	inject        func(http.Header)
	signals       []os.Signal
}

// Option はServerの生成時オプション
type Option func(*Server)

// WithAccessLog はアクセスログの出力先と色付けを指定する
func WithAccessLog(w io.Writer, colored bool) Option {
	return func(s *Server) {
		s.accessOut = w
		s.accessColored = colored
	}
}

// WithHeaderInjector はレスポンスヘッダーの付与関数を差し替える
func WithHeaderInjector(inject func(http.Header)) Option {
	return func(s *Server) {
		s.inject = inject
	}
}

// WithSignals は停止に使うシグナルを指定する。空ならシグナルを待たない
func WithSignals(sigs ...os.Signal) Option {
	return func(s *Server) {
		s.signals = sigs
	}
}

// New は新しいServerインスタンスを作成する
func New(cfg *config.Config, logger *zap.Logger, opts ...Option) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		config:        cfg,
		logger:        logger,
		accessOut:     os.Stdout,
		accessColored: ColorEnabled(cfg.Log.Color, os.Stdout),
		inject:        ApplyHeaders,
		signals:       []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.engine = gin.New()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Handler:      s.engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorLog:     zap.NewStdLog(logger),
	}
	return s
}

// setupRoutes はミドルウェアとルートを設定する
func (s *Server) setupRoutes() {
	s.engine.Use(
		AccessLog(s.accessOut, s.accessColored),
		InjectHeaders(s.inject),
		recovery(s.logger),
	)

	// すべてのパスとメソッドをファイル配信へ
	static := NewStaticHandler(s.config.Static.Root)
	s.engine.Any("/*filepath", static.Serve)
}

// Handler はリクエストを処理するhttp.Handlerを返す
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Listen は指定ポートにバインドする。0ならカーネルが選ぶ
func (s *Server) Listen(port int) error {
	if s.listener != nil {
		return errors.New("すでにバインドされています")
	}

	ln, err := net.Listen("tcp", s.config.ServerAddress(port))
	if err != nil {
		return fmt.Errorf("ポート %d のバインドに失敗: %w", port, err)
	}
	s.listener = ln
	s.logger.Debug("リスナーを作成しました", zap.String("addr", ln.Addr().String()))
	return nil
}

// Addr はバインド済みのアドレスを返す。未バインドならnil
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Port はバインド済みのポート番号を返す
func (s *Server) Port() int {
	if addr, ok := s.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}

// Start は設定のポートにバインドして配信を始める
func (s *Server) Start(ctx context.Context) error {
	if s.listener == nil {
		if err := s.Listen(s.config.Server.Port); err != nil {
			return err
		}
	}
	return s.Serve(ctx)
}

// Serve はバインド済みのリスナーで配信し、停止要求まで戻らない
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		return errors.New("リスナーがありません。先にListenを呼んでください")
	}

	// シャットダウン用のチャンネル
	serveErrCh := make(chan error, 1)

	// サーバーを別ゴルーチンで起動
	go func() {
		s.logger.Info("HTTPサーバーを起動しています",
			zap.String("addr", s.listener.Addr().String()),
			zap.String("root", s.config.Static.Root),
		)
		if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- fmt.Errorf("サーバーの起動に失敗: %w", err)
		}
	}()

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	if len(s.signals) > 0 {
		signal.Notify(sigCh, s.signals...)
		defer signal.Stop(sigCh)
	}

	select {
	case <-ctx.Done():
		s.logger.Info("コンテキストがキャンセルされました")
	case sig := <-sigCh:
		s.logger.Info("シグナルを受信しました", zap.Stringer("signal", sig))
	case err := <-serveErrCh:
		s.closeListener()
		return err
	}

	// グレースフルシャットダウン
	return s.Shutdown()
}

// Shutdown はサーバーをグレースフルにシャットダウンし、リスナーを解放する
func (s *Server) Shutdown() error {
	s.logger.Info("サーバーをシャットダウンしています...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	s.closeListener()
	if err != nil {
		return fmt.Errorf("サーバーのシャットダウンに失敗: %w", err)
	}

	s.logger.Info("サーバーが正常にシャットダウンされました")
	return nil
}

// Close は配信を始める前にリスナーだけを解放する
func (s *Server) Close() error {
	if s.listener == nil {
		return nil
	}
	if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("リスナーのクローズに失敗: %w", err)
	}
	return nil
}

func (s *Server) closeListener() {
	if err := s.Close(); err != nil {
		s.logger.Warn("リスナーを閉じられませんでした", zap.Error(err))
	}
}
