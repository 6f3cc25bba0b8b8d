// Package browser はOS既定のブラウザでURLを開く。
// 失敗しても致命的ではないため、呼び出し側はエラーを明示的に捨ててよい。
package browser

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// ErrUnsupportedPlatform はブラウザを開く方法がないOSで返される
var ErrUnsupportedPlatform = errors.New("ブラウザの起動に対応していないOSです")

// Starter はコマンドを起動して終了を待たない関数
type Starter func(name string, args ...string) error

// Launcher はOSに応じたコマンドでブラウザを起動する
type Launcher struct {
	goos  string
	start Starter
}

// New は実行中のOS向けのLauncherを作成する
func New() *Launcher {
	return &Launcher{goos: runtime.GOOS, start: startDetached}
}

// NewWith はOSと起動関数を指定してLauncherを作成する
func NewWith(goos string, start Starter) *Launcher {
	return &Launcher{goos: goos, start: start}
}

// Command はurlを開くためのコマンドと引数を返す
func (l *Launcher) Command(url string) (string, []string, error) {
	switch l.goos {
	case "darwin":
		return "open", []string{url}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris", "illumos":
		return "xdg-open", []string{url}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, l.goos)
	}
}

// Open はurlをブラウザで開く
func (l *Launcher) Open(url string) error {
	name, args, err := l.Command(url)
	if err != nil {
		return err
	}
	if err := l.start(name, args...); err != nil {
		return fmt.Errorf("ブラウザの起動に失敗 (%s): %w", name, err)
	}
	return nil
}

// Open は既定のLauncherでurlを開く
func Open(url string) error {
	return New().Open(url)
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// 子プロセスを回収してゾンビを残さない
	go func() { _ = cmd.Wait() }()
	return nil
}
