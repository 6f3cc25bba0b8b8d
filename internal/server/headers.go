package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Header は付与するヘッダーの名前と値
type Header struct {
	Name  string
	Value string
}

// InjectedHeaders はすべてのレスポンスに付与する固定ヘッダー
var InjectedHeaders = []Header{
	{"Access-Control-Allow-Origin", "*"},
	{"Access-Control-Allow-Methods", "GET, POST, OPTIONS"},
	{"Access-Control-Allow-Headers", "*"},
	{"Cache-Control", "no-store, no-cache, must-revalidate"},
}

// ApplyHeaders はhに固定ヘッダーを設定する
func ApplyHeaders(h http.Header) {
	for _, hd := range InjectedHeaders {
		h.Set(hd.Name, hd.Value)
	}
}

// headerWriter はステータス行を書く直前に固定ヘッダーを設定する。
// FileServerはエラー応答でCache-Controlを消すため、事前の設定では残らない
type headerWriter struct {
	gin.ResponseWriter
	inject func(http.Header)
}

func (w *headerWriter) WriteHeader(code int) {
	w.inject(w.Header())
	w.ResponseWriter.WriteHeader(code)
}

func (w *headerWriter) WriteHeaderNow() {
	w.inject(w.Header())
	w.ResponseWriter.WriteHeaderNow()
}

func (w *headerWriter) Write(b []byte) (int, error) {
	w.inject(w.Header())
	return w.ResponseWriter.Write(b)
}

func (w *headerWriter) WriteString(s string) (int, error) {
	w.inject(w.Header())
	return w.ResponseWriter.WriteString(s)
}

// InjectHeaders はレスポンスライターを包んで固定ヘッダーを付与するミドルウェア
func InjectHeaders(inject func(http.Header)) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer = &headerWriter{ResponseWriter: c.Writer, inject: inject}
		c.Next()

		// 何も書かれなかった場合はgin自身がヘッダーを確定させる
		if !c.Writer.Written() {
			inject(c.Writer.Header())
		}
	}
}
