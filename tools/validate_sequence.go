//go:build ignore

// validate_sequence 检查序列配置文件
//
//	go run tools/validate_sequence.go [data/sequence.yaml]
package main

import (
	"fmt"
	"os"

	"github.com/decker502/invites/pkg/config"
)

func main() {
	path := config.DefaultSequenceConfigPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.LoadSequenceConfigFile(path)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ YAML 格式正确: %s\n", path)
	fmt.Printf("✅ 窗口 %dx%d, 蓄力 %v, 跳转 %s\n", cfg.Window.Width, cfg.Window.Height, cfg.Detonation.Duration, cfg.TargetURL)
	fmt.Printf("✅ 入场阶段 %v / %v, 退出阶段 %v / %v / %v, 跳转 %v\n",
		cfg.Welcome.TitleMoveAt, cfg.Welcome.CardShowAt,
		cfg.Exit.CardHiddenAt, cfg.Exit.IconGrownAt, cfg.Exit.IconShrunkAt, cfg.Exit.NavigateAt)

	missing := 0
	for name, p := range map[string]string{
		"cueSound":     cfg.Assets.CueSound,
		"ambientMusic": cfg.Assets.AmbientMusic,
		"icon":         cfg.Assets.Icon,
	} {
		if p == "" {
			fmt.Printf("❌ assets.%s 为空\n", name)
			missing++
		}
	}
	if missing > 0 {
		os.Exit(1)
	}
}
