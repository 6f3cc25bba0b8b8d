// Package portprobe は連続したポート範囲から空いているポートを探す。
//
// 探索で開いたリスナーはすぐに閉じる。実際のサーバーは返されたポートを
// 改めてバインドするため、探索とバインドの間には短い競合の余地がある。
// 単一ユーザーのローカルツールでは許容する。
package portprobe

import (
	"errors"
	"fmt"
	"net"
	"strconv"
)

// ErrNoAvailablePort は範囲内に空きポートがなかったことを示す
var ErrNoAvailablePort = errors.New("利用可能なポートがありません")

// Listen はポートのバインドを試みる関数。テストで差し替える
type Listen func(network, address string) (net.Listener, error)

// Prober はポート探索を行う
type Prober struct {
	host   string
	listen Listen
}

// New はhost上を探索するProberを作成する。hostが空なら全インターフェース
func New(host string) *Prober {
	return &Prober{host: host, listen: net.Listen}
}

// WithListen はバインド関数を差し替えたProberを返す
func (p *Prober) WithListen(fn Listen) *Prober {
	return &Prober{host: p.host, listen: fn}
}

// Find は[start, start+maxTries)を昇順に試し、最初にバインドできたポートを返す
func (p *Prober) Find(start, maxTries int) (int, error) {
	for port := start; port < start+maxTries; port++ {
		if port < 1 || port > 65535 {
			continue
		}
		ln, err := p.listen("tcp", net.JoinHostPort(p.host, strconv.Itoa(port)))
		if err != nil {
			continue
		}
		if err := ln.Close(); err != nil {
			return 0, fmt.Errorf("探索用リスナーのクローズに失敗 (port %d): %w", port, err)
		}
		return port, nil
	}
	return 0, ErrNoAvailablePort
}

// FindAvailable はhost上で[start, start+maxTries)の最初の空きポートを返す
func FindAvailable(host string, start, maxTries int) (int, error) {
	return New(host).Find(start, maxTries)
}
