package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/decker502/invites/pkg/embedded"
	"github.com/decker502/invites/pkg/utils"
	"gopkg.in/yaml.v3"
)

// DefaultSequenceConfigPath 嵌入资源中的序列配置路径
const DefaultSequenceConfigPath = "data/sequence.yaml"

// DefaultTargetURL 退出序列结束后打开的外部地址
const DefaultTargetURL = "https://example.com/"

// SequenceConfig 引爆与欢迎序列的全部可调参数
//
// 结构对应 data/sequence.yaml，缺失的字段保留 DefaultSequenceConfig 中的默认值。
type SequenceConfig struct {
	Window     WindowConfig     `yaml:"window"`
	Assets     AssetsConfig     `yaml:"assets"`
	Palette    PaletteConfig    `yaml:"palette"`
	Detonation DetonationConfig `yaml:"detonation"`
	Reveal     RevealConfig     `yaml:"reveal"`
	Welcome    WelcomeConfig    `yaml:"welcome"`
	Exit       ExitConfig       `yaml:"exit"`
	TargetURL  string           `yaml:"targetUrl"` // 退出后打开的外部地址
}

// WindowConfig 窗口与逻辑屏幕尺寸
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// AssetsConfig 外部资源位置
//
// 磁盘路径 = Root + AssetPath(BasePath, 相对路径)
type AssetsConfig struct {
	Root         string `yaml:"root"`         // 资源根目录（磁盘）
	BasePath     string `yaml:"basePath"`     // 部署子路径前缀，如 "/invites"
	CueSound     string `yaml:"cueSound"`     // 引爆提示音
	AmbientMusic string `yaml:"ambientMusic"` // 欢迎页循环音乐
	Icon         string `yaml:"icon"`         // 欢迎页背景图标
}

// PaletteConfig 配色（十六进制字符串）
type PaletteConfig struct {
	Background string `yaml:"background"`
	Pink       string `yaml:"pink"`
	Green      string `yaml:"green"`
	Blue       string `yaml:"blue"`
}

// Transition 声明式过渡：时长 + 缓动
type Transition struct {
	Duration time.Duration `yaml:"duration"`
	Easing   string        `yaml:"easing"`
}

// DetonationConfig 蓄力引爆动画参数
type DetonationConfig struct {
	Duration          time.Duration `yaml:"duration"`          // 蓄力总时长
	ShakeMax          float64       `yaml:"shakeMax"`          // 最大抖动幅度（像素，乘以强度）
	ScaleGain         float64       `yaml:"scaleGain"`         // scale = 1 + ScaleGain * intensity
	RotationLinear    float64       `yaml:"rotationLinear"`    // 度/毫秒
	RotationQuadratic float64       `yaml:"rotationQuadratic"` // 度/毫秒²
	GlowOpacityFrom   float64       `yaml:"glowOpacityFrom"`
	GlowOpacityTo     float64       `yaml:"glowOpacityTo"`
	GlowBlurFrom      float64       `yaml:"glowBlurFrom"`
	GlowBlurTo        float64       `yaml:"glowBlurTo"`
	CueVolume         float64       `yaml:"cueVolume"`
	IdleSpinPeriod    time.Duration `yaml:"idleSpinPeriod"` // 待机时圆环旋转周期
	ButtonRadius      float64       `yaml:"buttonRadius"`
	Label             string        `yaml:"label"`
}

// RevealConfig 引爆后的揭示过渡
type RevealConfig struct {
	FlashOut  Transition `yaml:"flashOut"`  // 白色闪光淡出
	ContentIn Transition `yaml:"contentIn"` // 嵌套内容淡入
}

// WelcomeConfig 欢迎页入场参数
type WelcomeConfig struct {
	MusicVolume       float64       `yaml:"musicVolume"`
	IconSpinPeriod    time.Duration `yaml:"iconSpinPeriod"`
	TitleMoveAt       time.Duration `yaml:"titleMoveAt"`
	CardShowAt        time.Duration `yaml:"cardShowAt"`
	TitleMove         Transition    `yaml:"titleMove"`
	TitleOffset       float64       `yaml:"titleOffset"` // 上移距离占屏幕高度的比例
	BackgroundFade    Transition    `yaml:"backgroundFade"`
	BackgroundOpacity float64       `yaml:"backgroundOpacity"`
	CardSlide         Transition    `yaml:"cardSlide"`
	CardOffset        float64       `yaml:"cardOffset"` // 卡片初始下移距离占卡片高度的比例
	CardHeading       string        `yaml:"cardHeading"`
	CardBody          string        `yaml:"cardBody"`
	EnterLabel        string        `yaml:"enterLabel"`
}

// ExitConfig 退出序列参数（时刻均相对于点击 Enter）
type ExitConfig struct {
	CardHiddenAt time.Duration `yaml:"cardHiddenAt"`
	IconGrownAt  time.Duration `yaml:"iconGrownAt"`
	IconShrunkAt time.Duration `yaml:"iconShrunkAt"`
	NavigateAt   time.Duration `yaml:"navigateAt"`

	FadeInterval time.Duration `yaml:"fadeInterval"`
	FadeStep     float64       `yaml:"fadeStep"`
	RampInterval time.Duration `yaml:"rampInterval"`
	RampFactor   float64       `yaml:"rampFactor"`
	RampCap      float64       `yaml:"rampCap"`

	CardHide    Transition `yaml:"cardHide"`
	IconGrow    Transition `yaml:"iconGrow"`
	IconGrowTo  float64    `yaml:"iconGrowTo"`
	TitleShrink Transition `yaml:"titleShrink"`
	TitleScale  float64    `yaml:"titleScale"`
	IconShrink  Transition `yaml:"iconShrink"`
}

// DefaultSequenceConfig 返回内置默认配置
func DefaultSequenceConfig() *SequenceConfig {
	return &SequenceConfig{
		Window: WindowConfig{Width: 1280, Height: 720, Title: "Invites"},
		Assets: AssetsConfig{
			Root:         "assets",
			CueSound:     "sounds/bomb.wav",
			AmbientMusic: "sounds/song.mp3",
			Icon:         "images/icon.png",
		},
		Palette: PaletteConfig{
			Background: "#050505",
			Pink:       "#FE8EC1",
			Green:      "#AFEC8F",
			Blue:       "#98AFFD",
		},
		Detonation: DetonationConfig{
			Duration:          6 * time.Second,
			ShakeMax:          60,
			ScaleGain:         0.5,
			RotationLinear:    0.05,
			RotationQuadratic: 0.0008,
			GlowOpacityFrom:   0.4,
			GlowOpacityTo:     1.0,
			GlowBlurFrom:      30,
			GlowBlurTo:        70,
			CueVolume:         0.5,
			IdleSpinPeriod:    10 * time.Second,
			ButtonRadius:      80,
			Label:             "???",
		},
		Reveal: RevealConfig{
			FlashOut:  Transition{Duration: 2500 * time.Millisecond, Easing: "ease-out"},
			ContentIn: Transition{Duration: 3 * time.Second, Easing: "ease-in"},
		},
		Welcome: WelcomeConfig{
			MusicVolume:       0.25,
			IconSpinPeriod:    60 * time.Second,
			TitleMoveAt:       500 * time.Millisecond,
			CardShowAt:        3500 * time.Millisecond,
			TitleMove:         Transition{Duration: 3 * time.Second, Easing: "ease-in-out"},
			TitleOffset:       0.35,
			BackgroundFade:    Transition{Duration: 3 * time.Second, Easing: "ease-in-out"},
			BackgroundOpacity: 0.25,
			CardSlide:         Transition{Duration: time.Second, Easing: "ease-out"},
			CardOffset:        1.5,
			CardHeading:       "WELCOME",
			CardBody:          "The event has officially begun. We are thrilled to have you here. Prepare for what comes next.",
			EnterLabel:        "Enter Event",
		},
		Exit: ExitConfig{
			CardHiddenAt: 0,
			IconGrownAt:  1500 * time.Millisecond,
			IconShrunkAt: 3500 * time.Millisecond,
			NavigateAt:   4500 * time.Millisecond,
			FadeInterval: 100 * time.Millisecond,
			FadeStep:     0.01,
			RampInterval: 100 * time.Millisecond,
			RampFactor:   1.1,
			RampCap:      40,
			CardHide:     Transition{Duration: 700 * time.Millisecond, Easing: "ease-in"},
			IconGrow:     Transition{Duration: 1500 * time.Millisecond, Easing: "ease-out"},
			IconGrowTo:   1.3,
			TitleShrink:  Transition{Duration: 1500 * time.Millisecond, Easing: "ease-in-out"},
			TitleScale:   0.5,
			IconShrink:   Transition{Duration: time.Second, Easing: "ease-in"},
		},
		TargetURL: DefaultTargetURL,
	}
}

// LoadSequenceConfig 从嵌入资源加载序列配置
func LoadSequenceConfig(path string) (*SequenceConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sequence config %s: %w", path, err)
	}
	cfg, err := ParseSequenceConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid sequence config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadSequenceConfigFile 从磁盘加载序列配置（用于 -config 覆盖嵌入配置）
func LoadSequenceConfigFile(path string) (*SequenceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sequence config file %s: %w", path, err)
	}
	cfg, err := ParseSequenceConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid sequence config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseSequenceConfig 解析 YAML，未出现的字段保留默认值
func ParseSequenceConfig(data []byte) (*SequenceConfig, error) {
	cfg := DefaultSequenceConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse sequence YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查配置的合法性
func (c *SequenceConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	d := c.Detonation
	if d.Duration <= 0 {
		return fmt.Errorf("detonation.duration must be positive, got %v", d.Duration)
	}
	if d.ShakeMax < 0 || d.ScaleGain < 0 {
		return fmt.Errorf("detonation shakeMax/scaleGain cannot be negative")
	}
	if d.IdleSpinPeriod <= 0 {
		return fmt.Errorf("detonation.idleSpinPeriod must be positive, got %v", d.IdleSpinPeriod)
	}
	if err := checkVolume("detonation.cueVolume", d.CueVolume); err != nil {
		return err
	}

	w := c.Welcome
	if err := checkVolume("welcome.musicVolume", w.MusicVolume); err != nil {
		return err
	}
	if w.IconSpinPeriod <= 0 {
		return fmt.Errorf("welcome.iconSpinPeriod must be positive, got %v", w.IconSpinPeriod)
	}
	if w.TitleMoveAt < 0 || w.CardShowAt < w.TitleMoveAt {
		return fmt.Errorf("welcome stages must be ordered: titleMoveAt=%v cardShowAt=%v", w.TitleMoveAt, w.CardShowAt)
	}

	e := c.Exit
	if e.CardHiddenAt < 0 || e.IconGrownAt < e.CardHiddenAt || e.IconShrunkAt < e.IconGrownAt || e.NavigateAt < e.IconShrunkAt {
		return fmt.Errorf("exit phases must be ordered: %v, %v, %v, %v", e.CardHiddenAt, e.IconGrownAt, e.IconShrunkAt, e.NavigateAt)
	}
	if e.FadeInterval <= 0 || e.RampInterval <= 0 {
		return fmt.Errorf("exit fade/ramp intervals must be positive")
	}
	if e.FadeStep <= 0 {
		return fmt.Errorf("exit.fadeStep must be positive, got %v", e.FadeStep)
	}
	if e.RampFactor <= 1 || e.RampCap < 1 {
		return fmt.Errorf("exit ramp needs factor > 1 and cap >= 1, got %v / %v", e.RampFactor, e.RampCap)
	}

	transitions := map[string]Transition{
		"reveal.flashOut":        c.Reveal.FlashOut,
		"reveal.contentIn":       c.Reveal.ContentIn,
		"welcome.titleMove":      w.TitleMove,
		"welcome.backgroundFade": w.BackgroundFade,
		"welcome.cardSlide":      w.CardSlide,
		"exit.cardHide":          e.CardHide,
		"exit.iconGrow":          e.IconGrow,
		"exit.titleShrink":       e.TitleShrink,
		"exit.iconShrink":        e.IconShrink,
	}
	for name, tr := range transitions {
		if tr.Duration < 0 {
			return fmt.Errorf("%s.duration cannot be negative", name)
		}
		if _, err := utils.EasingByName(tr.Easing); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	for name, hex := range map[string]string{
		"palette.background": c.Palette.Background,
		"palette.pink":       c.Palette.Pink,
		"palette.green":      c.Palette.Green,
		"palette.blue":       c.Palette.Blue,
	} {
		if _, err := ParseHexColor(hex); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	if c.TargetURL == "" {
		return fmt.Errorf("targetUrl is required")
	}
	return nil
}

func checkVolume(name string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%s must be within [0, 1], got %v", name, v)
	}
	return nil
}

// ParseHexColor 解析 "#RRGGBB" 或 "#RRGGBBAA"
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xFF
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// MustColor 解析已通过 Validate 的颜色，失败时返回不透明黑色
func MustColor(s string) color.RGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		return color.RGBA{A: 0xFF}
	}
	return c
}

// EasingFunc 返回过渡对应的缓动函数，未知名称退化为线性
func (t Transition) EasingFunc() utils.EasingFunc {
	fn, err := utils.EasingByName(t.Easing)
	if err != nil {
		return utils.EaseLinear
	}
	return fn
}
