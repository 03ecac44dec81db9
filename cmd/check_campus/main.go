// check_campus 检查校园配置、信息板数据与模型文件是否一致
//
// 用法：
//
//	go run ./cmd/check_campus [--config data/campus.yaml] [--parse]
//
// --parse 会用 tetra3d 实际解析每个 glb，并检查信息板名称能否在场景中找到同名节点。
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decker502/campusxr/pkg/components"
	"github.com/decker502/campusxr/pkg/config"
	"github.com/decker502/campusxr/pkg/embedded"
	"github.com/decker502/campusxr/pkg/game"
	"github.com/decker502/campusxr/pkg/world"
	"github.com/solarlune/tetra3d"
)

var (
	configPath = flag.String("config", "data/campus.yaml", "校园配置文件路径")
	parseModel = flag.Bool("parse", false, "解析 glb 并检查锚点节点")
)

func main() {
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		fail("读取 .env 失败: %v", err)
	}

	cfg, err := config.LoadCampusConfig(*configPath)
	if err != nil {
		fail("%v", err)
	}
	if err := cfg.ApplyEnvOverrides(); err != nil {
		fail("%v", err)
	}
	fmt.Printf("✅ 配置有效: %s\n", *configPath)

	data, err := embedded.ReadFile(cfg.Assets.Boards)
	if err != nil {
		fail("读取信息板数据失败: %v", err)
	}
	entries, err := game.ParseAnchorData(data)
	if err != nil {
		fail("%v", err)
	}
	store := game.NewAnchorStore()
	store.Set(entries)
	fmt.Printf("✅ 信息板数量: %d\n", len(entries))

	missing := 0
	paths := []string{cfg.CollegePath()}
	for _, prop := range cfg.Props {
		paths = append(paths, cfg.PropPath(prop))
	}
	for _, path := range paths {
		if !embedded.Exists(path) {
			fmt.Printf("❌ 模型不存在: %s\n", path)
			missing++
		}
	}

	var w *world.World
	if *parseModel && missing == 0 {
		w = loadWorld(cfg)
	}

	// 没有同名节点、也没有显式 position 的锚点永远不会触发
	resolved := store.Resolve(w.NodePosition)
	if len(resolved) < len(entries) {
		fmt.Printf("❌ 有 %d 个信息板无法确定位置\n", len(entries)-len(resolved))
		missing++
	}

	if missing > 0 {
		os.Exit(1)
	}
	fmt.Printf("✅ 所有检查通过\n")
}

func loadWorld(cfg *config.CampusConfig) *world.World {
	data, err := embedded.ReadFile(cfg.CollegePath())
	if err != nil {
		fail("读取模型失败: %v", err)
	}
	decoded, err := world.DecodeLibrary(data)
	if err != nil {
		fail("%v", err)
	}

	w := world.NewWorld(decoded.(*tetra3d.Library), world.NewClassifier(cfg.Surfaces), cfg)
	counts := make(map[components.SurfaceTag]int)
	for _, tag := range w.Tags() {
		counts[tag]++
	}
	fmt.Printf("✅ 网格分类: proxy=%d glass=%d skybox=%d\n",
		counts[components.SurfaceProxy], counts[components.SurfaceGlass], counts[components.SurfaceSkyBox])
	if !w.HasProxy() {
		fmt.Printf("⚠️  场景中没有可行走代理网格，移动将被禁用\n")
	}
	fmt.Printf("✅ 光照: 环境光 %.2f, 方向光 %d 盏\n", w.AmbientEnergy(), w.SunLights())
	if w.AmbientEnergy() == 0 && w.SunLights() == 0 {
		fmt.Printf("⚠️  场景没有任何光源，模型将渲染为黑色\n")
	}
	return w
}

func fail(format string, args ...any) {
	fmt.Printf("❌ "+format+"\n", args...)
	os.Exit(1)
}
