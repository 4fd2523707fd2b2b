package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvOverrides 可通过环境变量覆盖的部署参数
//
// 优先级：命令行参数 > 环境变量 > sequence.yaml > 默认值
type EnvOverrides struct {
	BasePath  string `env:"INVITES_BASE_PATH"`
	AssetRoot string `env:"INVITES_ASSET_ROOT"`
	TargetURL string `env:"INVITES_TARGET_URL"`
	Title     string `env:"INVITES_TITLE"`
	Route     string `env:"INVITES_ROUTE"`
}

// LoadEnvOverrides 从进程环境读取覆盖参数
func LoadEnvOverrides() (EnvOverrides, error) {
	o, err := env.ParseAs[EnvOverrides]()
	if err != nil {
		return EnvOverrides{}, fmt.Errorf("failed to parse environment overrides: %w", err)
	}
	return o, nil
}

// LoadEnvOverridesFrom 从给定的键值表读取覆盖参数（测试与嵌入式入口使用）
func LoadEnvOverridesFrom(environment map[string]string) (EnvOverrides, error) {
	var o EnvOverrides
	if err := env.ParseWithOptions(&o, env.Options{Environment: environment}); err != nil {
		return EnvOverrides{}, fmt.Errorf("failed to parse environment overrides: %w", err)
	}
	return o, nil
}

// Apply 将非空的覆盖值写入配置
func (o EnvOverrides) Apply(cfg *SequenceConfig) {
	if o.BasePath != "" {
		cfg.Assets.BasePath = o.BasePath
	}
	if o.AssetRoot != "" {
		cfg.Assets.Root = o.AssetRoot
	}
	if o.TargetURL != "" {
		cfg.TargetURL = o.TargetURL
	}
}
