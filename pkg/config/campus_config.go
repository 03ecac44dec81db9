package config

import (
	"fmt"
	"time"

	"github.com/decker502/campusxr/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// CampusConfig 校园漫游配置
//
// 描述场景资源路径、用户 dolly 初始状态、交互参数（接近半径、面板超时、
// 注视模式宽限期）以及装饰道具的摆放。
//
// 配置文件位置: data/campus.yaml
type CampusConfig struct {
	Window      WindowConfig      `yaml:"window"`
	Assets      AssetsConfig      `yaml:"assets"`
	Dolly       DollyConfig       `yaml:"dolly"`
	Interaction InteractionConfig `yaml:"interaction"`
	Surfaces    SurfaceConfig     `yaml:"surfaces"`
	Lighting    LightingConfig    `yaml:"lighting"`
	Props       []PropConfig      `yaml:"props"`
	Loader      LoaderConfig      `yaml:"loader"`
}

// Vec3 配置文件中的三维坐标，写作 {x: 2, y: 0, z: -5}
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// WindowConfig 窗口设置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// AssetsConfig 资源路径
type AssetsConfig struct {
	// Dir glb 模型所在目录（磁盘路径）
	Dir string `yaml:"dir"`
	// College 校园主场景模型文件名（相对 Dir）
	College string `yaml:"college"`
	// Boards 信息板数据（JSON，名称 -> {name, info}）
	Boards string `yaml:"boards"`
}

// DollyConfig 用户移动参照系
type DollyConfig struct {
	Start       Vec3    `yaml:"start"`
	HeadHeight  float64 `yaml:"headHeight"`
	MoveSpeed   float64 `yaml:"moveSpeed"` // 单位/秒
	FieldOfView float64 `yaml:"fieldOfView"`
}

// InteractionConfig 交互参数
type InteractionConfig struct {
	ProximityRadius float64       `yaml:"proximityRadius"`
	PanelOffset     float64       `yaml:"panelOffset"` // 面板相对锚点的垂直偏移
	PanelTimeout    time.Duration `yaml:"panelTimeout"`
	GazeGracePeriod time.Duration `yaml:"gazeGracePeriod"`
	GazeDwell       time.Duration `yaml:"gazeDwell"`
	// GazeSteadyRate 头部角速度低于该值（弧度/秒）视为"注视"
	GazeSteadyRate float64 `yaml:"gazeSteadyRate"`
}

// SurfaceConfig 场景节点分类表
//
// 以精确名称（节点名或材质名）为键，在加载时为每个网格打上分类标签，
// 取代运行时按名称子串猜测行为的做法。
type SurfaceConfig struct {
	Proxy        []string `yaml:"proxy"`
	Glass        []string `yaml:"glass"`
	SkyBox       []string `yaml:"skybox"`
	GlassOpacity float64  `yaml:"glassOpacity"`
}

// RGB 颜色分量（0~1），写作 {r: 1, g: 1, b: 1}
type RGB struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
}

// LightingConfig 场景光照
//
// 环境光照亮所有网格，方向光模拟天空方向的明暗。
// glb 自带的光源会保留，这里的光照在其之上叠加。
type LightingConfig struct {
	AmbientColor  RGB     `yaml:"ambientColor"`
	AmbientEnergy float64 `yaml:"ambientEnergy"`
	SunColor      RGB     `yaml:"sunColor"`
	SunEnergy     float64 `yaml:"sunEnergy"`
	SunPitch      float64 `yaml:"sunPitch"` // 角度（度），负值朝下
	SunYaw        float64 `yaml:"sunYaw"`   // 角度（度）
}

// PropConfig 装饰道具
type PropConfig struct {
	Name     string  `yaml:"name"`
	Path     string  `yaml:"path"` // 相对 Assets.Dir
	Position Vec3    `yaml:"position"`
	Scale    float64 `yaml:"scale"`
	Yaw      float64 `yaml:"yaw"` // 角度（度）
}

// LoaderConfig 异步加载参数
type LoaderConfig struct {
	Workers int `yaml:"workers"`
}

// DefaultCampusConfig 返回默认配置
//
// 配置文件缺少的字段会保留这里的默认值。
func DefaultCampusConfig() *CampusConfig {
	return &CampusConfig{
		Window: WindowConfig{
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
			Title:  "Campus XR",
		},
		Assets: AssetsConfig{
			Dir:     "assets",
			College: "college.glb",
			Boards:  "data/college.json",
		},
		Dolly: DollyConfig{
			Start:       Vec3{X: 0, Y: 0, Z: 10},
			HeadHeight:  1.6,
			MoveSpeed:   2.0,
			FieldOfView: 60,
		},
		Interaction: InteractionConfig{
			ProximityRadius: DefaultProximityRadius,
			PanelOffset:     DefaultPanelOffset,
			PanelTimeout:    DefaultPanelTimeout,
			GazeGracePeriod: DefaultGazeGracePeriod,
			GazeDwell:       DefaultGazeDwell,
			GazeSteadyRate:  DefaultGazeSteadyRate,
		},
		Surfaces: SurfaceConfig{
			GlassOpacity: 0.1,
		},
		Lighting: LightingConfig{
			AmbientColor:  RGB{R: 1, G: 1, B: 1},
			AmbientEnergy: DefaultAmbientEnergy,
			SunColor:      RGB{R: 1, G: 1, B: 1},
			SunEnergy:     DefaultSunEnergy,
			SunPitch:      -45,
			SunYaw:        30,
		},
		Loader: LoaderConfig{
			Workers: 4,
		},
	}
}

// LoadCampusConfig 加载校园配置
//
// 参数:
//   - path: 配置文件路径（如 "data/campus.yaml"）
//
// 返回:
//   - *CampusConfig: 在默认值之上合并文件内容后的配置
//   - error: 读取、解析或验证失败
func LoadCampusConfig(path string) (*CampusConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read campus config: %w", err)
	}
	return ParseCampusConfig(data)
}

// ParseCampusConfig 解析 YAML 格式的校园配置
func ParseCampusConfig(data []byte) (*CampusConfig, error) {
	config := DefaultCampusConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse campus config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid campus config: %w", err)
	}

	return config, nil
}

// Validate 验证配置有效性
func (c *CampusConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive: %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Interaction.ProximityRadius <= 0 {
		return fmt.Errorf("proximityRadius must be positive, got %.2f", c.Interaction.ProximityRadius)
	}
	if c.Interaction.PanelTimeout <= 0 {
		return fmt.Errorf("panelTimeout must be positive, got %s", c.Interaction.PanelTimeout)
	}
	if c.Interaction.GazeGracePeriod < 0 {
		return fmt.Errorf("gazeGracePeriod must not be negative, got %s", c.Interaction.GazeGracePeriod)
	}
	if c.Dolly.MoveSpeed < 0 {
		return fmt.Errorf("dolly moveSpeed must not be negative, got %.2f", c.Dolly.MoveSpeed)
	}
	if c.Surfaces.GlassOpacity < 0 || c.Surfaces.GlassOpacity > 1 {
		return fmt.Errorf("glassOpacity must be in [0, 1], got %.2f", c.Surfaces.GlassOpacity)
	}
	if c.Lighting.AmbientEnergy < 0 || c.Lighting.SunEnergy < 0 {
		return fmt.Errorf("light energy must not be negative (ambient %.2f, sun %.2f)",
			c.Lighting.AmbientEnergy, c.Lighting.SunEnergy)
	}
	if c.Loader.Workers <= 0 {
		return fmt.Errorf("loader workers must be positive, got %d", c.Loader.Workers)
	}

	seen := make(map[string]bool, len(c.Props))
	for i, prop := range c.Props {
		if prop.Name == "" || prop.Path == "" {
			return fmt.Errorf("prop #%d: name and path are required", i)
		}
		if seen[prop.Name] {
			return fmt.Errorf("prop %q declared twice", prop.Name)
		}
		seen[prop.Name] = true
		if prop.Scale <= 0 {
			return fmt.Errorf("prop %q: scale must be positive, got %.2f", prop.Name, prop.Scale)
		}
	}

	return nil
}

// CollegePath 返回校园模型的完整路径
func (c *CampusConfig) CollegePath() string {
	return JoinAssetPath(c.Assets.Dir, c.Assets.College)
}

// PropPath 返回道具模型的完整路径
func (c *CampusConfig) PropPath(prop PropConfig) string {
	return JoinAssetPath(c.Assets.Dir, prop.Path)
}

// JoinAssetPath 拼接资源目录与相对路径
func JoinAssetPath(basePath, relativePath string) string {
	if basePath == "" {
		return relativePath
	}
	if len(relativePath) > 0 && relativePath[0] == '/' {
		return basePath + relativePath
	}
	return basePath + "/" + relativePath
}
