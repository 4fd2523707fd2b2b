package main

import (
	"errors"
	"flag"
	"log"

	"github.com/decker502/invites/pkg/app"
	"github.com/decker502/invites/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verboseFlag    = flag.Bool("verbose", false, "Enable verbose logging")
	routeFlag      = flag.String("route", "", "Page route the title is taken from (e.g. /launch-party/)")
	titleFlag      = flag.String("title", "", "Welcome title (overrides -route)")
	basePathFlag   = flag.String("base-path", "", "Deployment base path prefixed to asset paths")
	targetURLFlag  = flag.String("target-url", "", "URL opened after the exit sequence")
	configFlag     = flag.String("config", "", "Sequence YAML on disk (default: embedded data/sequence.yaml)")
	fullscreenFlag = flag.Bool("fullscreen", false, "Start in fullscreen")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（必须在任何配置加载之前）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		Route:      *routeFlag,
		Title:      *titleFlag,
		BasePath:   *basePathFlag,
		TargetURL:  *targetURLFlag,
		Fullscreen: *fullscreenFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer gameApp.Close()

	w, h := gameApp.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(gameApp.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(gameApp.StartFullscreen())

	if err := ebiten.RunGame(gameApp); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
