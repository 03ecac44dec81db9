package game

import (
	"bytes"
	"fmt"

	"github.com/decker502/campusxr/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体标识，不需要磁盘文件
const (
	FontRegular = "builtin:regular"
	FontBold    = "builtin:bold"
)

// ResourceManager 管理 UI 字体
//
// 字体源按路径缓存，字体外观按 路径+字号 缓存。
type ResourceManager struct {
	sourceCache   map[string]*text.GoTextFaceSource
	fontFaceCache map[string]*text.GoTextFace
}

// NewResourceManager 创建资源管理器
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		sourceCache:   make(map[string]*text.GoTextFaceSource),
		fontFaceCache: make(map[string]*text.GoTextFace),
	}
}

// LoadFont 加载并缓存字体外观
//
// 参数：
//   - path: FontRegular / FontBold，或 ttf 文件路径
//   - size: 字号
func (rm *ResourceManager) LoadFont(path string, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", path, size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	source, err := rm.loadSource(path)
	if err != nil {
		return nil, err
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = face

	return face, nil
}

// MustLoadFont 加载内置字体，失败时 panic（内置字体数据损坏属于编译期问题）
func (rm *ResourceManager) MustLoadFont(path string, size float64) *text.GoTextFace {
	face, err := rm.LoadFont(path, size)
	if err != nil {
		panic(err)
	}
	return face
}

// GetFont 获取已缓存的字体外观，未加载时返回 nil
func (rm *ResourceManager) GetFont(path string, size float64) *text.GoTextFace {
	cacheKey := fmt.Sprintf("%s:%.1f", path, size)
	return rm.fontFaceCache[cacheKey]
}

func (rm *ResourceManager) loadSource(path string) (*text.GoTextFaceSource, error) {
	if source, ok := rm.sourceCache[path]; ok {
		return source, nil
	}

	var fontData []byte
	switch path {
	case FontRegular:
		fontData = goregular.TTF
	case FontBold:
		fontData = gobold.TTF
	default:
		data, err := embedded.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
		}
		fontData = data
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", path, err)
	}
	rm.sourceCache[path] = source
	return source, nil
}
