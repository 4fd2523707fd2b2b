package systems

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/decker502/invites/pkg/config"
	"github.com/decker502/invites/pkg/utils"
)

// DetonationFrame 蓄力动画某一帧的全部视觉通道
type DetonationFrame struct {
	Progress  float64 // 0 ~ 1
	Intensity float64 // progress⁴

	ShakeX float64 // 抖动偏移（像素），|ShakeX| <= ShakeMax × Intensity
	ShakeY float64
	Scale  float64 // 1 + ScaleGain × Intensity

	Rotation float64 // 圆环角度（度），线性项 + 二次加速项

	GlowOpacity float64 // 随 progress 线性增长
	GlowBlur    float64
}

// ComputeDetonationFrame 计算蓄力开始 elapsed 之后的一帧
//
// 纯函数：除 rng 外没有任何状态。rng 为 nil 时使用全局随机源，
// 测试传入固定种子的 rand.Rand 即可复现抖动。负的 elapsed 按 0 处理。
func ComputeDetonationFrame(elapsed time.Duration, rng *rand.Rand, cfg config.DetonationConfig) DetonationFrame {
	if elapsed < 0 {
		elapsed = 0
	}

	progress := 1.0
	if cfg.Duration > 0 {
		progress = utils.Clamp01(float64(elapsed) / float64(cfg.Duration))
	}
	intensity := utils.EaseInQuart(progress)

	shakeMax := cfg.ShakeMax * intensity
	ms := float64(elapsed) / float64(time.Millisecond)

	return DetonationFrame{
		Progress:    progress,
		Intensity:   intensity,
		ShakeX:      (sample(rng) - 0.5) * 2 * shakeMax,
		ShakeY:      (sample(rng) - 0.5) * 2 * shakeMax,
		Scale:       1 + cfg.ScaleGain*intensity,
		Rotation:    ms*cfg.RotationLinear + math.Pow(ms, 2)*cfg.RotationQuadratic,
		GlowOpacity: utils.Lerp(cfg.GlowOpacityFrom, cfg.GlowOpacityTo, progress),
		GlowBlur:    utils.Lerp(cfg.GlowBlurFrom, cfg.GlowBlurTo, progress),
	}
}

// sample 返回 [0, 1) 的随机数
func sample(rng *rand.Rand) float64 {
	if rng == nil {
		return rand.Float64()
	}
	return rng.Float64()
}
