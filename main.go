package main

import (
	"flag"
	"log"
	"os"

	"github.com/decker502/campusxr/pkg/app"
	"github.com/decker502/campusxr/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "data/campus.yaml", "校园配置文件路径")
	assetsDir  = flag.String("assets", "", "覆盖 glb 模型目录")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	campusApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		AssetsDir:  *assetsDir,
	})
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("初始化失败: %v", err)
	}
	defer campusApp.Close()

	window := campusApp.WindowConfig()
	ebiten.SetWindowSize(window.Width, window.Height)
	ebiten.SetWindowTitle(window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(campusApp); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}
