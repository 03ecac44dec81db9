package game

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// AnchorContent 信息板数据中的一条记录
//
// 数据格式（college.json）：
//
//	{
//	  "Library": {"name": "Library", "info": "Books here", "position": [15, 0, -5]}
//	}
//
// position 可选；省略时由同名场景节点的位置决定。
type AnchorContent struct {
	Name     string     `json:"name"`
	Info     string     `json:"info"`
	Position *[3]float64 `json:"position,omitempty"`
}

// ResolvedAnchor 已确定世界坐标的锚点
type ResolvedAnchor struct {
	Key      string // 数据中的键，同时是场景节点名
	Position mgl64.Vec3
	Title    string
	Body     string
}

// PositionLookup 按名称查询场景节点的世界坐标
type PositionLookup func(name string) (mgl64.Vec3, bool)

// AnchorStore 信息板数据源
//
// 启动时异步获取一次，加载完成前 Loaded 返回 false。
type AnchorStore struct {
	entries map[string]AnchorContent
	loaded  bool
	err     error
}

// NewAnchorStore 创建空的数据源
func NewAnchorStore() *AnchorStore {
	return &AnchorStore{}
}

// ParseAnchorData 解析信息板 JSON 数据
func ParseAnchorData(data []byte) (map[string]AnchorContent, error) {
	var entries map[string]AnchorContent
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse anchor data: %w", err)
	}
	for key, entry := range entries {
		if key == "" {
			return nil, fmt.Errorf("anchor with empty name")
		}
		// 标题缺省时使用键名
		if entry.Name == "" {
			entry.Name = key
			entries[key] = entry
		}
	}
	return entries, nil
}

// Fetch 通过加载器异步获取数据
func (s *AnchorStore) Fetch(loader *AssetLoader, path string) error {
	decode := func(data []byte) (any, error) {
		return ParseAnchorData(data)
	}
	return loader.Load(path, decode, func(result LoadResult) {
		if result.Err != nil {
			s.err = result.Err
			log.Printf("[AnchorStore] Anchor data unavailable: %v", result.Err)
			return
		}
		s.Set(result.Value.(map[string]AnchorContent))
	})
}

// Set 直接设置数据（Fetch 完成时调用，测试中也可直接使用）
func (s *AnchorStore) Set(entries map[string]AnchorContent) {
	s.entries = entries
	s.loaded = true
	s.err = nil
	log.Printf("[AnchorStore] Loaded %d anchors", len(entries))
}

// Loaded 数据是否已加载
func (s *AnchorStore) Loaded() bool {
	return s.loaded
}

// Err 返回最近一次加载失败的错误
func (s *AnchorStore) Err() error {
	return s.err
}

// Names 返回按名称排序的锚点键
func (s *AnchorStore) Names() []string {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve 为每条数据确定世界坐标
//
// 优先使用同名场景节点的位置，其次使用数据中的显式 position；
// 两者都没有的锚点被跳过（对应的场景对象不存在）。
// 未加载时返回 nil。
func (s *AnchorStore) Resolve(lookup PositionLookup) []ResolvedAnchor {
	if !s.loaded {
		return nil
	}

	anchors := make([]ResolvedAnchor, 0, len(s.entries))
	for _, key := range s.Names() {
		entry := s.entries[key]

		var pos mgl64.Vec3
		found := false
		if lookup != nil {
			pos, found = lookup(key)
		}
		if !found && entry.Position != nil {
			pos = mgl64.Vec3{entry.Position[0], entry.Position[1], entry.Position[2]}
			found = true
		}
		if !found {
			log.Printf("[AnchorStore] No scene object for anchor %q, skipping", key)
			continue
		}

		anchors = append(anchors, ResolvedAnchor{
			Key:      key,
			Position: pos,
			Title:    entry.Name,
			Body:     entry.Info,
		})
	}
	return anchors
}
