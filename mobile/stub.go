//go:build !mobile

// stub.go - 桌面构建时的占位文件
//
// 真正的绑定入口在 mobile.go 和 embed.go 中，仅在 -tags mobile 时编译；
// 保留该文件使 ./... 在桌面端也能正常构建和测试。
package mobile

// Dummy 与移动端保持相同的导出符号
func Dummy() {}
