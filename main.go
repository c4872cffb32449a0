package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/vcam/pkg/app"
	"github.com/gonewx/vcam/pkg/embedded"
)

func main() {
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	profile := flag.String("profile", "", "camera profile to start with")
	flag.Parse()

	// 初始化嵌入资源,必须在任何资源加载之前
	embedded.Init(dataFS)

	a, err := app.NewApp(app.Config{
		Verbose: *verbose,
		Profile: *profile,
	})
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("vcam - 相机取景演示")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}
}
