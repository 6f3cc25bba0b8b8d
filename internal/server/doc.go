// Package server は、ローカルの静的ファイルを配信するHTTPサーバーを管理します。
//
// このパッケージは、HTTPサーバーの起動と停止、静的ファイルの配信、
// レスポンスヘッダーの付与、アクセスログの出力を担当します。
//
// 責務:
//   - 指定ポートへのバインドとリスナーの保持
//   - 静的ルート配下のファイルをそのまま配信する
//   - すべてのレスポンスにCORSヘッダーとキャッシュ無効化ヘッダーを付与する
//   - リクエストごとにステータスで色分けしたアクセスログを標準出力へ書く
//   - グレースフルシャットダウン
//
// 仕様:
//   - ルーティングとミドルウェアはgin、ファイル配信はnet/httpのFileServer
//   - 動的なハンドラは持たない。すべてのメソッドをファイル配信に渡す
//   - リスナーはどの終了経路でも閉じる
package server
