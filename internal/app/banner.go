package app

import "strings"

var rule = strings.Repeat("=", 70)

func (a *App) printBanner() {
	a.printf("\n%s\n", rule)
	a.printf("🚀  ローカルサーバー\n")
	a.printf("%s\n\n", rule)
}

func (a *App) printReady(url string) {
	a.printf("🌐  サーバーを起動しました: %s\n", url)
	a.printf("📁  配信ディレクトリ: %s\n", a.config.Static.Root)
	a.printf("\n%s\n", rule)
	a.printf("\n🎯  ブラウザで開いてください:\n\n")
	a.printf("   %s/%s\n", url, a.config.Static.DefaultEntry)
	if alt := a.config.Static.AltEntry; alt != "" && alt != a.config.Static.DefaultEntry {
		a.printf("   %s/%s\n", url, alt)
	}
	a.printf("\n%s\n", rule)
	a.printf("\n💡  Ctrl+C でサーバーを停止します\n\n")
}

func (a *App) printFarewell() {
	a.printf("\n\n🛑  サーバーを停止しました\n")
	a.printf("👋  お疲れさまでした\n\n")
}
