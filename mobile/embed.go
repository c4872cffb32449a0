//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// 构建前需要先把仓库根目录的 data/ 复制到此目录。
//
// 手动构建：
//
//	cp -r data mobile/data
//	go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed data/camera_profiles.yaml
var dataFS embed.FS
