// Package catalog は配信ディレクトリの中身を起動時に確認する。
// ファイルの中身は読まない。
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DataFileStatus はデータファイルの存在確認の結果
type DataFileStatus struct {
	Path   string
	Exists bool
	Size   int64
}

// CheckDataFile はroot直下のnameの有無とサイズを調べる
func CheckDataFile(root, name string) (DataFileStatus, error) {
	status := DataFileStatus{Path: filepath.Join(root, name)}

	info, err := os.Stat(status.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return status, nil
	}
	if err != nil {
		return status, fmt.Errorf("データファイルの確認に失敗: %w", err)
	}
	if info.IsDir() {
		return status, nil
	}

	status.Exists = true
	status.Size = info.Size()
	return status, nil
}

// EntryDocuments はroot直下で拡張子extを持つ通常ファイル名を名前順で返す
func EntryDocuments(root, ext string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("ディレクトリの読み込みに失敗: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ext) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
