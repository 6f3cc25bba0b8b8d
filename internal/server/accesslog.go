package server

import (
	"fmt"
	"io"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/mattn/go-isatty"
)

// Bucket はアクセスログの表示色を決める区分
type Bucket int

const (
	BucketSuccess     Bucket = iota // 200
	BucketNotModified               // 304
	BucketNotFound                  // 404
	BucketOther                     // それ以外
)

// ANSIカラーコード
const (
	colorGreen  = "\033[92m"
	colorBlue   = "\033[94m"
	colorYellow = "\033[93m"
	colorRed    = "\033[91m"
	colorReset  = "\033[0m"
)

// accessTimeFormat はアクセスログのタイムスタンプ書式
const accessTimeFormat = "02/Jan/2006 15:04:05"

// Classify はステータスコードから区分を決める。
// 描画後の文字列ではなくステータスそのものを見るので、パスに含まれる数字に影響されない
func Classify(status int) Bucket {
	switch status {
	case 200:
		return BucketSuccess
	case 304:
		return BucketNotModified
	case 404:
		return BucketNotFound
	default:
		return BucketOther
	}
}

// Color は区分の表示色を返す
func (b Bucket) Color() string {
	switch b {
	case BucketSuccess:
		return colorGreen
	case BucketNotModified:
		return colorBlue
	case BucketNotFound:
		return colorYellow
	default:
		return colorRed
	}
}

func (b Bucket) String() string {
	switch b {
	case BucketSuccess:
		return "success"
	case BucketNotModified:
		return "not-modified"
	case BucketNotFound:
		return "not-found"
	default:
		return "other"
	}
}

// FormatAccessLine はアクセスログ1行を組み立てる
func FormatAccessLine(param gin.LogFormatterParams, colored bool) string {
	requestURI := param.Path
	proto := "HTTP/1.1"
	if param.Request != nil {
		if param.Request.RequestURI != "" {
			requestURI = param.Request.RequestURI
		}
		if param.Request.Proto != "" {
			proto = param.Request.Proto
		}
	}

	size := "-"
	if param.BodySize >= 0 {
		size = fmt.Sprintf("%d", param.BodySize)
	}

	line := fmt.Sprintf("[%s] \"%s %s %s\" %d %s",
		param.TimeStamp.Format(accessTimeFormat),
		param.Method,
		requestURI,
		proto,
		param.StatusCode,
		size,
	)

	if !colored {
		return line + "\n"
	}
	return Classify(param.StatusCode).Color() + line + colorReset + "\n"
}

// AccessLog はアクセスログをwへ書くミドルウェア
func AccessLog(w io.Writer, colored bool) gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		Output: w,
		Formatter: func(param gin.LogFormatterParams) string {
			return FormatAccessLine(param, colored)
		},
	})
}

// ColorEnabled は色付けの指定(auto/always/never)と出力先から色を付けるか決める
func ColorEnabled(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
