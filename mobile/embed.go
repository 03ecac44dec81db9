//go:build mobile

// embed.go - 移动端数据嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// Makefile 中的 build-android 和 build-ios 目标会先运行 prepare-mobile，
// 把 data/ 复制到此目录，再使用 -tags mobile 构建。
//
// 手动构建：
//
//	make prepare-mobile
//	go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed data/campus.yaml data/college.json
var dataFS embed.FS
