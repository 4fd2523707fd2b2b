// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端、移动端和预览工具共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand/v2"

	"github.com/decker502/invites/pkg/config"
	"github.com/decker502/invites/pkg/game"
	"github.com/decker502/invites/pkg/scenes"
	"github.com/decker502/invites/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// 应用名（gdata 存储目录）
const appName = "invites"

// 音频采样率
const sampleRate = 48000

// Config 定义应用启动配置
//
// 字符串字段为空表示不覆盖：命令行参数 > 环境变量 > sequence.yaml > 默认值
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 磁盘上的 sequence.yaml，为空则使用嵌入配置
	ConfigPath string
	// Route 当前路由（如 "/invites/launch-party/"），用于推导标题
	Route string
	// Title 直接指定欢迎页标题
	Title string
	// BasePath 部署子路径前缀
	BasePath string
	// TargetURL 退出序列结束后打开的地址
	TargetURL string
	// Fullscreen 以全屏启动
	Fullscreen bool

	// SkipDetonation 直接进入欢迎页（预览工具使用）
	SkipDetonation bool
	// Speed 时间倍率，<= 0 视为 1
	Speed float64
	// Seed 抖动随机种子，0 表示使用全局随机源
	Seed uint64
	// Navigator 为 nil 时使用系统浏览器
	Navigator game.Navigator
	// Environment 为 nil 时读取进程环境变量
	Environment map[string]string
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager    *game.SceneManager
	settingsManager *game.SettingsManager
	audioManager    *game.AudioManager
	sequence        *config.SequenceConfig
	title           string
	speed           float64
	verbose         bool

	finished                 bool // 已跳转，下一帧结束循环
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	seq, title, err := PrepareSequence(cfg)
	if err != nil {
		return nil, err
	}
	log.Printf("[App] Title %q, target %s, asset root %s (base %q)", title, seq.TargetURL, seq.Assets.Root, seq.Assets.BasePath)

	// 初始化音频上下文
	audioContext := audio.NewContext(sampleRate)

	// 创建资源管理器
	resourceManager := game.NewResourceManager(audioContext, seq.Assets)

	// 用户设置：gdata 不可用时降级为内存设置
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: %v", err)
	} else if dir := utils.GetStoragePath(); dir != "" {
		log.Printf("[App] Settings directory: %s", dir)
	}
	gdataManager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (settings will not persist)", err)
		gdataManager = nil
	}
	settingsManager := game.NewSettingsManager(gdataManager)
	if cfg.Fullscreen {
		settingsManager.SetFullscreen(true)
	}

	audioManager := game.NewAudioManager(resourceManager.AudioSource(), settingsManager)
	log.Printf("[App] AudioManager initialized")

	a := &App{
		sceneManager:    game.NewSceneManager(),
		settingsManager: settingsManager,
		audioManager:    audioManager,
		sequence:        seq,
		title:           title,
		speed:           cfg.Speed,
		verbose:         cfg.Verbose,
	}
	if a.speed <= 0 {
		a.speed = 1
	}

	navigator := cfg.Navigator
	if navigator == nil {
		navigator = game.NewBrowserNavigator()
	}

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}

	ctx := &scenes.SceneContext{
		Config:          seq,
		AudioManager:    audioManager,
		ResourceManager: resourceManager,
		Navigator:       navigator,
		Rand:            rng,
		Title:           title,
		OnNavigate:      a.finish,
	}

	// 根据配置决定启动场景
	if cfg.SkipDetonation {
		log.Printf("[App] SkipDetonation enabled, starting at welcome scene")
		welcome := scenes.NewWelcomeScene(ctx)
		welcome.Mount()
		a.sceneManager.SwitchTo(welcome)
	} else {
		a.sceneManager.SwitchTo(scenes.NewDetonationScene(ctx))
	}

	return a, nil
}

// PrepareSequence 加载序列配置并按优先级应用覆盖，返回配置和欢迎页标题
func PrepareSequence(cfg Config) (*config.SequenceConfig, string, error) {
	var (
		seq *config.SequenceConfig
		err error
	)
	if cfg.ConfigPath != "" {
		seq, err = config.LoadSequenceConfigFile(cfg.ConfigPath)
	} else {
		seq, err = config.LoadSequenceConfig(config.DefaultSequenceConfigPath)
	}
	if err != nil {
		return nil, "", fmt.Errorf("序列配置加载失败: %w", err)
	}

	var overrides config.EnvOverrides
	if cfg.Environment != nil {
		overrides, err = config.LoadEnvOverridesFrom(cfg.Environment)
	} else {
		overrides, err = config.LoadEnvOverrides()
	}
	if err != nil {
		return nil, "", err
	}
	overrides.Apply(seq)

	if cfg.BasePath != "" {
		seq.Assets.BasePath = cfg.BasePath
	}
	if cfg.TargetURL != "" {
		seq.TargetURL = cfg.TargetURL
	}
	if err := seq.Validate(); err != nil {
		return nil, "", fmt.Errorf("序列配置无效: %w", err)
	}

	return seq, resolveTitle(cfg, overrides, seq), nil
}

// resolveTitle 标题优先级：-title > INVITES_TITLE > 路由中的 id 段 > 窗口标题
func resolveTitle(cfg Config, overrides config.EnvOverrides, seq *config.SequenceConfig) string {
	if cfg.Title != "" {
		return cfg.Title
	}
	if overrides.Title != "" {
		return overrides.Title
	}
	route := cfg.Route
	if route == "" {
		route = overrides.Route
	}
	if title := utils.TitleFromRoute(route, seq.Assets.BasePath); title != "" {
		return title
	}
	return seq.Window.Title
}

// finish 退出序列跳转完成后调用
func (a *App) finish() {
	log.Printf("[App] Navigation done, stopping game loop")
	a.finished = true
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if a.finished {
		a.sceneManager.Close()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.sequence.Window.Width, a.sequence.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.sequence.Window.Width, a.sequence.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	deltaTime := a.speed / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	if !fullscreen {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}

	a.settingsManager.SetFullscreen(fullscreen)
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save settings: %v", err)
	}
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
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.sequence.Window.Width, a.sequence.Window.Height
}

// Close 卸载当前场景并暂停所有音频
func (a *App) Close() {
	a.sceneManager.Close()
	a.audioManager.PauseAll()
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Title 返回欢迎页标题
func (a *App) Title() string {
	return a.title
}

// WindowSize 返回配置的窗口尺寸
func (a *App) WindowSize() (int, int) {
	return a.sequence.Window.Width, a.sequence.Window.Height
}

// StartFullscreen 返回是否应以全屏启动
func (a *App) StartFullscreen() bool {
	return a.settingsManager.GetSettings().Fullscreen
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
