package config

import "time"

// 窗口默认尺寸（逻辑分辨率）
const (
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 720
)

// 交互默认参数
const (
	// DefaultProximityRadius 触发信息板的接近半径（世界单位）
	DefaultProximityRadius = 3.0
	// DefaultPanelOffset 信息板相对锚点的垂直偏移
	DefaultPanelOffset = 1.3
	// DefaultPanelTimeout 信息板自动隐藏时间
	DefaultPanelTimeout = 7000 * time.Millisecond
	// DefaultGazeGracePeriod 无手柄连接时切换到注视模式的宽限期
	DefaultGazeGracePeriod = 2000 * time.Millisecond
	// DefaultGazeDwell 注视多久后进入移动模式
	DefaultGazeDwell = 1500 * time.Millisecond
	// DefaultGazeSteadyRate 注视判定的头部角速度上限（弧度/秒）
	DefaultGazeSteadyRate = 0.35
)

// 光照默认参数
const (
	// DefaultAmbientEnergy 环境光强度，保证没有自带光源的 glb 也不会渲染成全黑
	DefaultAmbientEnergy = 0.8
	// DefaultSunEnergy 方向光强度
	DefaultSunEnergy = 0.6
)

// 环境变量覆盖项（可写在 .env 文件中）
const (
	EnvAssetsDir = "CAMPUS_ASSETS_DIR"
	EnvMoveSpeed = "CAMPUS_MOVE_SPEED"
	EnvBoards    = "CAMPUS_BOARDS"
)
