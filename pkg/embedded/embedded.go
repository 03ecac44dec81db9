// Package embedded 提供嵌入数据与磁盘资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
//
// 路径规则：
//   - "data/" 开头：从嵌入的 dataFS 读取（未初始化时回退到磁盘）
//   - 其他路径：直接从磁盘读取（glb 模型体积较大，不嵌入二进制）
package embedded

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	dataFS      embed.FS
	initialized bool
)

// Init 初始化 embed.FS 变量
// 必须在 main() 开始时、任何资源加载之前调用
func Init(data embed.FS) {
	dataFS = data
	initialized = true
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径分隔符并移除 "./" 前缀（embed.FS 只接受正斜杠）
func normalize(path string) string {
	path = filepath.ToSlash(path)
	return strings.TrimPrefix(path, "./")
}

func isEmbedded(path string) bool {
	return initialized && strings.HasPrefix(path, "data/")
}

// Open 打开资源文件
func Open(path string) (fs.File, error) {
	path = normalize(path)
	if isEmbedded(path) {
		return dataFS.Open(path)
	}
	return os.Open(filepath.FromSlash(path))
}

// ReadFile 读取资源文件的全部内容
func ReadFile(path string) ([]byte, error) {
	path = normalize(path)
	if isEmbedded(path) {
		return fs.ReadFile(dataFS, path)
	}
	return os.ReadFile(filepath.FromSlash(path))
}

// Stat 返回资源文件信息，用于加载进度计算
func Stat(path string) (fs.FileInfo, error) {
	path = normalize(path)
	if isEmbedded(path) {
		return fs.Stat(dataFS, path)
	}
	return os.Stat(filepath.FromSlash(path))
}

// Exists 检查资源文件是否存在
func Exists(path string) bool {
	_, err := Stat(path)
	return err == nil
}
