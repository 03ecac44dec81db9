//go:build !android

package utils

// EnsureStorageDir 桌面与 iOS 上 gdata 自行创建设置目录，无需处理
func EnsureStorageDir() error {
	return nil
}

// GetStoragePath 非 Android 平台返回空字符串，由 gdata 决定位置
func GetStoragePath() string {
	return ""
}
