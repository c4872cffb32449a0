package config

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/vcam/internal/aim"
)

// CameraProfilesConfig 相机档案配置
//
// 一个档案(profile)描述一台相机的镜头参数和取景规则。
// 配置文件位置: data/camera_profiles.yaml
type CameraProfilesConfig struct {
	// DefaultProfile 默认档案名,必须存在于 Profiles 中
	DefaultProfile string `yaml:"defaultProfile"`

	// Profiles 档案名到档案的映射
	Profiles map[string]CameraProfile `yaml:"profiles"`
}

// CameraProfile 单台相机的完整取景配置
type CameraProfile struct {
	// Lens 镜头参数
	Lens LensConfig `yaml:"lens"`

	// Composition 屏幕构图参数
	Composition CompositionConfig `yaml:"composition"`

	// Lookahead 前瞻预测参数
	Lookahead LookaheadConfig `yaml:"lookahead"`

	// Damping 阻尼时间常数(秒)
	Damping DampingConfig `yaml:"damping"`

	// TrackedObjectOffset 目标局部空间的跟踪点偏移
	TrackedObjectOffset [3]float64 `yaml:"trackedObjectOffset"`

	// CenterOnActivate 激活时是否将目标对准到构图中心
	CenterOnActivate bool `yaml:"centerOnActivate"`
}

// LensConfig 镜头参数
type LensConfig struct {
	// Fov 垂直视场角(度),透视投影时使用
	Fov float64 `yaml:"fov"`

	// OrthoSize 正交视野半高(世界单位),正交投影时使用
	OrthoSize float64 `yaml:"orthoSize"`

	// Orthographic 是否使用正交投影
	Orthographic bool `yaml:"orthographic"`
}

// CompositionConfig 屏幕构图参数,所有尺寸为归一化屏幕单位
type CompositionConfig struct {
	// ScreenX/ScreenY 构图中心相对屏幕中心的偏移 [-1, 1]
	ScreenX float64 `yaml:"screenX"`
	ScreenY float64 `yaml:"screenY"`

	// DeadZoneWidth/DeadZoneHeight 死区尺寸 [0, 2]
	DeadZoneWidth  float64 `yaml:"deadZoneWidth"`
	DeadZoneHeight float64 `yaml:"deadZoneHeight"`

	// SoftZoneWidth/SoftZoneHeight 软区尺寸 [0, 2]
	SoftZoneWidth  float64 `yaml:"softZoneWidth"`
	SoftZoneHeight float64 `yaml:"softZoneHeight"`

	// BiasX/BiasY 软区相对死区的偏移系数 [-0.5, 0.5]
	BiasX float64 `yaml:"biasX"`
	BiasY float64 `yaml:"biasY"`
}

// LookaheadConfig 前瞻预测参数
type LookaheadConfig struct {
	// Enabled 是否启用前瞻
	Enabled bool `yaml:"enabled"`

	// Time 预测时长(秒) [0, 10]
	Time float64 `yaml:"time"`

	// Smoothing 速度估计平滑常数(秒) [0, 30]
	Smoothing float64 `yaml:"smoothing"`

	// IgnoreY 是否忽略垂直方向的预测运动
	IgnoreY bool `yaml:"ignoreY"`
}

// DampingConfig 阻尼时间常数(秒) [0, 20]
type DampingConfig struct {
	Horizontal float64 `yaml:"horizontal"`
	Vertical   float64 `yaml:"vertical"`
}

// LoadCameraProfilesConfig 从文件加载相机档案配置
func LoadCameraProfilesConfig(path string) (*CameraProfilesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read camera profiles config: %w", err)
	}
	return ParseCameraProfilesConfig(data)
}

// ParseCameraProfilesConfig 解析 YAML 格式的相机档案配置,
// 用于加载内嵌的默认配置
func ParseCameraProfilesConfig(data []byte) (*CameraProfilesConfig, error) {
	var config CameraProfilesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse camera profiles config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid camera profiles config: %w", err)
	}
	return &config, nil
}

// Validate 验证配置有效性
//
// 检查默认档案存在,且每个档案的镜头参数可用。
// 构图、阻尼等参数越界时不报错,由 Apply 时统一收拢到有效范围。
func (c *CameraProfilesConfig) Validate() error {
	if len(c.Profiles) == 0 {
		return fmt.Errorf("no camera profiles defined")
	}
	if c.DefaultProfile == "" {
		return fmt.Errorf("defaultProfile not set")
	}
	if _, ok := c.Profiles[c.DefaultProfile]; !ok {
		return fmt.Errorf("defaultProfile %q not found in profiles", c.DefaultProfile)
	}
	for name, p := range c.Profiles {
		if p.Lens.Orthographic {
			if p.Lens.OrthoSize <= 0 {
				return fmt.Errorf("profile %q: orthoSize must be positive, got %.2f", name, p.Lens.OrthoSize)
			}
		} else if p.Lens.Fov <= 0 || p.Lens.Fov >= 179 {
			return fmt.Errorf("profile %q: fov must be in (0, 179), got %.2f", name, p.Lens.Fov)
		}
	}
	return nil
}

// Profile 按名称查找档案,名称为空或不存在时回退到默认档案
func (c *CameraProfilesConfig) Profile(name string) CameraProfile {
	if p, ok := c.Profiles[name]; ok {
		return p
	}
	return c.Profiles[c.DefaultProfile]
}

// LensFor 构造该档案在给定宽高比下的镜头状态
func (p CameraProfile) LensFor(aspect float64) aim.LensState {
	return aim.LensState{
		FieldOfView:  p.Lens.Fov,
		OrthoSize:    p.Lens.OrthoSize,
		Aspect:       aspect,
		Orthographic: p.Lens.Orthographic,
	}
}

// Apply 把档案写入求解器,越界值在写入时收拢到有效范围
func (p CameraProfile) Apply(c *aim.Composer) {
	c.SetComposition(aim.CompositionSettings{
		ScreenPosition: mgl64.Vec2{p.Composition.ScreenX, p.Composition.ScreenY},
		DeadZoneSize:   mgl64.Vec2{p.Composition.DeadZoneWidth, p.Composition.DeadZoneHeight},
		SoftZoneSize:   mgl64.Vec2{p.Composition.SoftZoneWidth, p.Composition.SoftZoneHeight},
		Bias:           mgl64.Vec2{p.Composition.BiasX, p.Composition.BiasY},
	})

	lookahead := aim.LookaheadSettings{
		Enabled:   p.Lookahead.Enabled,
		Time:      p.Lookahead.Time,
		Smoothing: p.Lookahead.Smoothing,
		IgnoreY:   p.Lookahead.IgnoreY,
	}
	lookahead.Clamp()
	c.Lookahead = lookahead

	damping := aim.DampingSettings{
		Horizontal: p.Damping.Horizontal,
		Vertical:   p.Damping.Vertical,
	}
	damping.Clamp()
	c.Damping = damping

	c.TrackedObjectOffset = mgl64.Vec3{
		p.TrackedObjectOffset[0],
		p.TrackedObjectOffset[1],
		p.TrackedObjectOffset[2],
	}
	c.CenterOnActivate = p.CenterOnActivate
}
