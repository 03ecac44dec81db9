package components

// SurfaceTag 场景网格的分类标签，加载时确定
type SurfaceTag int

const (
	SurfaceDefault SurfaceTag = iota
	// SurfaceProxy 不可见的可行走代理网格，存在时才允许移动
	SurfaceProxy
	// SurfaceGlass 半透明玻璃
	SurfaceGlass
	// SurfaceSkyBox 天空盒，不受光照
	SurfaceSkyBox
)

// String 返回标签名称
func (t SurfaceTag) String() string {
	switch t {
	case SurfaceProxy:
		return "proxy"
	case SurfaceGlass:
		return "glass"
	case SurfaceSkyBox:
		return "skybox"
	default:
		return "default"
	}
}
