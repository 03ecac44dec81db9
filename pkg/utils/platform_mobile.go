//go:build mobile

package utils

// IsMobile 移动端构建（-tags mobile）始终返回 true
func IsMobile() bool {
	return true
}
