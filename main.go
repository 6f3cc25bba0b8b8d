package main

import (
	"os"

	"localserve/internal/cli"
)

func main() {
	// 引数なしなら既定の設定で起動する
	os.Exit(cli.Execute())
}
