package scenes

import (
	"github.com/decker502/campusxr/pkg/config"
	"github.com/decker502/campusxr/pkg/game"
	"github.com/decker502/campusxr/pkg/systems"
)

// Services 所有场景共享的长生命周期对象
// 由 app 创建一次，场景切换时不会重建。
type Services struct {
	Config       *config.CampusConfig
	SceneManager *game.SceneManager
	Resources    *game.ResourceManager
	Settings     *game.SettingsManager
	Loader       *game.AssetLoader
	Anchors      *game.AnchorStore

	// Display 沉浸模式的显示操作，nil 表示不做任何显示变化（测试用）
	Display systems.DisplayDriver
	// Controllers 手柄事件来源，nil 表示只能使用注视模式
	Controllers systems.ControllerSource
}
