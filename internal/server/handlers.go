package server

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StaticHandler は静的ルート配下のファイルを配信する
type StaticHandler struct {
	root  http.FileSystem
	files http.Handler
}

// NewStaticHandler はrootを配信するハンドラを作成する
func NewStaticHandler(root string) *StaticHandler {
	fs := http.Dir(root)
	return &StaticHandler{root: fs, files: http.FileServer(fs)}
}

// Serve は通常ファイルならそのまま返し、それ以外はFileServerへ渡す。
// FileServerは/index.htmlを./へリダイレクトするため、通常ファイルは自前で返す。
// ディレクトリ一覧・存在しないファイル・権限エラーはFileServerがステータスで返す
func (h *StaticHandler) Serve(c *gin.Context) {
	if h.serveFile(c.Writer, c.Request) {
		return
	}
	h.files.ServeHTTP(c.Writer, c.Request)
}

func (h *StaticHandler) serveFile(w http.ResponseWriter, r *http.Request) bool {
	name := path.Clean("/" + r.URL.Path)

	f, err := h.root.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return true
}

// recovery はパニックを500に変換し、運用ログへ記録する
func recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, err any) {
		logger.Error("リクエスト処理中にパニックが発生しました",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", err),
		)
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}
