// Package main provides a preview tool for the detonation and welcome sequences.
//
// Usage:
//
//	go run ./cmd/preview [flags]
//
// Flags:
//
//	--skip-detonation   Start at the welcome scene
//	--speed <factor>    Time multiplier (default: 1)
//	--seed <n>          Shake random seed (0 = random)
//	--title <text>      Welcome title (default: "Preview")
//	--verbose           Enable verbose logging
//
// Controls:
//
//	R  - Restart from the beginning
//	Q  - Quit
//
// Run from the repository root: data/sequence.yaml is read from disk so edits
// take effect without rebuilding. The preview never opens a browser; navigation
// is printed instead.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decker502/invites/pkg/app"
	"github.com/decker502/invites/pkg/embedded"
	"github.com/decker502/invites/pkg/game"
	"github.com/decker502/invites/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var (
	skipDetonationFlag = flag.Bool("skip-detonation", false, "Start at the welcome scene")
	speedFlag          = flag.Float64("speed", 1, "Time multiplier")
	seedFlag           = flag.Uint64("seed", 0, "Shake random seed (0 = random)")
	titleFlag          = flag.String("title", "Preview", "Welcome title")
	verboseFlag        = flag.Bool("verbose", false, "Enable verbose logging")
)

// PreviewGame wraps app.App and reports sequence phase changes
type PreviewGame struct {
	app       *app.App
	lastState string
	frames    int
}

func newPreviewGame() (*PreviewGame, error) {
	a, err := app.NewApp(app.Config{
		Verbose:        *verboseFlag,
		Title:          *titleFlag,
		SkipDetonation: *skipDetonationFlag,
		Speed:          *speedFlag,
		Seed:           *seedFlag,
		Navigator: game.NavigatorFunc(func(url string) error {
			fmt.Printf("navigate -> %s\n", url)
			return nil
		}),
	})
	if err != nil {
		return nil, err
	}
	return &PreviewGame{app: a}, nil
}

// Update updates the wrapped app and prints state transitions
func (g *PreviewGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		fmt.Println("restart")
		g.app.Close()
		next, err := newPreviewGame()
		if err != nil {
			log.Printf("Failed to restart: %v", err)
		} else {
			*g = *next
			return nil
		}
	}

	if err := g.app.Update(); err != nil {
		return err
	}
	g.frames++

	if state := describe(g.app.GetSceneManager().GetCurrentScene()); state != g.lastState {
		fmt.Printf("[%6.2fs] %s\n", float64(g.frames)*(*speedFlag)/float64(ebiten.TPS()), state)
		g.lastState = state
	}
	return nil
}

// describe summarises the sequencer state of a scene
func describe(scene game.Scene) string {
	switch s := scene.(type) {
	case *scenes.DetonationScene:
		if child := s.Child(); child != nil {
			return fmt.Sprintf("detonation=%v %s", s.Phase(), describe(child))
		}
		return fmt.Sprintf("detonation=%v", s.Phase())
	case *scenes.WelcomeScene:
		seq := s.Sequencer()
		return fmt.Sprintf("stage=%v exit=%v navigated=%v", seq.Stage(), seq.ExitPhase(), seq.Navigated())
	default:
		return "no scene"
	}
}

// Draw draws the app and a debug line
func (g *PreviewGame) Draw(screen *ebiten.Image) {
	g.app.Draw(screen)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s | x%.1f | R restart, Q quit", g.lastState, *speedFlag))
}

// Layout delegates to the app
func (g *PreviewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.app.Layout(outsideWidth, outsideHeight)
}

func main() {
	flag.Parse()
	// 从仓库根目录运行，直接读取磁盘上的 data/sequence.yaml
	embedded.Init(os.DirFS("."))

	g, err := newPreviewGame()
	if err != nil {
		log.Fatalf("Failed to start preview: %v", err)
	}
	defer g.app.Close()

	w, h := g.app.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Invites Preview - " + g.app.Title())

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
