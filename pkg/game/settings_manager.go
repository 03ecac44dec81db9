package game

import (
	"fmt"
	"log"

	"github.com/decker502/campusxr/pkg/utils"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// WalkthroughSettings 用户偏好设置
//
// 只保存偏好，不保存漫游进度：每次启动都从 dolly 初始位置开始。
type WalkthroughSettings struct {
	MoveSpeedScale   float64 `yaml:"moveSpeedScale"`   // 移动速度倍率 0.25 ~ 3.0
	MouseSensitivity float64 `yaml:"mouseSensitivity"` // 弧度/像素
	ShowStats        bool    `yaml:"showStats"`        // 是否显示帧率面板
	StartImmersive   bool    `yaml:"startImmersive"`   // 启动后直接进入沉浸模式
}

// DefaultSettings 返回默认设置
func DefaultSettings() *WalkthroughSettings {
	return &WalkthroughSettings{
		MoveSpeedScale:   1.0,
		MouseSensitivity: 0.003,
		ShowStats:        true,
		StartImmersive:   false,
	}
}

// SettingsManager 设置管理器
// 负责用户偏好的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存设置）
	settings     *WalkthroughSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "walkthrough"
)

// 速度倍率范围
const (
	minMoveSpeedScale = 0.25
	maxMoveSpeedScale = 3.0
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不是致命错误，会记录日志并使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// OpenSettingsStorage 打开 gdata 存储
//
// 失败时返回 nil 和错误，调用方可以继续以降级模式运行。
func OpenSettingsStorage(appName string) (*gdata.Manager, error) {
	if err := utils.EnsureStorageDir(); err != nil {
		return nil, fmt.Errorf("failed to prepare settings storage: %w", err)
	}

	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open settings storage: %w", err)
	}
	if path := utils.GetStoragePath(); path != "" {
		log.Printf("[SettingsManager] Storage directory: %s", path)
	}
	return manager, nil
}

// Load 从 gdata 加载设置
//
// gdataManager 为 nil 或文件不存在时使用默认设置。
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 在默认值之上解析，旧版本文件缺少的字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	loaded.MoveSpeedScale = clampSpeedScale(loaded.MoveSpeedScale)
	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// gdataManager 为 nil 时直接返回 nil（降级模式，不报错）。
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *WalkthroughSettings {
	return sm.settings
}

// SetMoveSpeedScale 设置移动速度倍率（仅修改内存，需调用 Save 持久化）
func (sm *SettingsManager) SetMoveSpeedScale(scale float64) {
	sm.settings.MoveSpeedScale = clampSpeedScale(scale)
}

// SetShowStats 设置帧率面板开关
func (sm *SettingsManager) SetShowStats(show bool) {
	sm.settings.ShowStats = show
}

// SetStartImmersive 设置启动时是否进入沉浸模式
func (sm *SettingsManager) SetStartImmersive(enabled bool) {
	sm.settings.StartImmersive = enabled
}

// SetMouseSensitivity 设置鼠标视角灵敏度，非正值被忽略
func (sm *SettingsManager) SetMouseSensitivity(sensitivity float64) {
	if sensitivity > 0 {
		sm.settings.MouseSensitivity = sensitivity
	}
}

func clampSpeedScale(scale float64) float64 {
	if scale < minMoveSpeedScale {
		return minMoveSpeedScale
	}
	if scale > maxMoveSpeedScale {
		return maxMoveSpeedScale
	}
	return scale
}
