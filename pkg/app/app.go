// Package app 提供漫游应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/campusxr/pkg/components"
	"github.com/decker502/campusxr/pkg/config"
	"github.com/decker502/campusxr/pkg/game"
	"github.com/decker502/campusxr/pkg/scenes"
	"github.com/decker502/campusxr/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// appName gdata 存储使用的应用名
const appName = "campusxr"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 校园配置文件路径，默认 data/campus.yaml
	ConfigPath string
	// AssetsDir 覆盖配置中的模型目录（命令行优先于环境变量）
	AssetsDir string
	// EnvFiles 额外加载的 .env 文件，为空时只尝试当前目录的 .env
	EnvFiles []string
}

// App 是漫游应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	services     *scenes.Services
	verbose      bool
}

// NewApp 创建并初始化漫游应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	if err := config.LoadDotEnv(cfg.EnvFiles...); err != nil {
		return nil, fmt.Errorf("环境变量加载失败: %w", err)
	}

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = "data/campus.yaml"
	}
	campusConfig, err := config.LoadCampusConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("校园配置加载失败: %w", err)
	}
	if err := campusConfig.ApplyEnvOverrides(); err != nil {
		return nil, fmt.Errorf("环境变量覆盖失败: %w", err)
	}
	if cfg.AssetsDir != "" {
		campusConfig.Assets.Dir = cfg.AssetsDir
	}
	log.Printf("[Config] 加载校园配置: %s (模型目录 %s)", configPath, campusConfig.Assets.Dir)

	// 设置存储打不开时以内存设置继续运行
	storage, err := game.OpenSettingsStorage(appName)
	if err != nil {
		log.Printf("[App] Settings storage unavailable, using defaults: %v", err)
	}
	settingsManager := game.NewSettingsManager(storage)
	if err := settingsManager.Load(); err != nil {
		log.Printf("[App] Failed to load settings, using defaults: %v", err)
	}

	loader, err := game.NewAssetLoader(campusConfig.Loader.Workers)
	if err != nil {
		return nil, fmt.Errorf("加载器初始化失败: %w", err)
	}

	// 信息板数据只获取一次，与模型加载并行
	anchors := game.NewAnchorStore()
	if err := anchors.Fetch(loader, campusConfig.Assets.Boards); err != nil {
		log.Printf("[App] Failed to request anchor data: %v", err)
	}

	sceneManager := game.NewSceneManager()
	services := &scenes.Services{
		Config:       campusConfig,
		SceneManager: sceneManager,
		Resources:    game.NewResourceManager(),
		Settings:     settingsManager,
		Loader:       loader,
		Anchors:      anchors,
		Display:      systems.EbitenDisplay{},
		Controllers: systems.MultiSource{
			systems.NewGamepadControllerSource(),
			systems.KeyboardControllerSource{Slot: components.KeyboardSlot},
		},
	}

	sceneManager.SwitchTo(scenes.NewLoadingScene(services))

	return &App{
		sceneManager: sceneManager,
		services:     services,
		verbose:      cfg.Verbose,
	}, nil
}

// WindowConfig 返回窗口设置（main 在 RunGame 前使用）
func (a *App) WindowConfig() config.WindowConfig {
	return a.services.Config.Window
}

// Update 更新漫游逻辑
// 每个 tick 调用一次
func (a *App) Update() error {
	// F11 切换窗口全屏（与沉浸模式无关）
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 逻辑尺寸跟随窗口，尺寸变化时通知当前场景重建渲染目标
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		window := a.services.Config.Window
		outsideWidth, outsideHeight = window.Width, window.Height
	}
	a.sceneManager.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Close 保存设置并释放加载器
func (a *App) Close() {
	if err := a.services.Settings.Save(); err != nil {
		log.Printf("[App] Failed to save settings: %v", err)
	}
	a.services.Loader.Release()
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
