// Package app 提供演示程序的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/vcam/internal/aim"
	"github.com/gonewx/vcam/pkg/components"
	"github.com/gonewx/vcam/pkg/config"
	"github.com/gonewx/vcam/pkg/ecs"
	"github.com/gonewx/vcam/pkg/embedded"
	"github.com/gonewx/vcam/pkg/game"
	"github.com/gonewx/vcam/pkg/systems"
	"github.com/gonewx/vcam/pkg/utils"
)

// 逻辑屏幕尺寸
const (
	ScreenWidth  = 960
	ScreenHeight = 540
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Profile 指定启动时使用的相机档案名,为空则使用保存的偏好或默认档案
	Profile string
}

// App 是演示程序的核心包装器，实现 ebiten.Game 接口
type App struct {
	entityManager *ecs.EntityManager
	aimSystem     *systems.AimSystem
	motionSystem  *systems.TargetMotionSystem

	profiles    *config.CameraProfilesConfig
	preferences *game.PreferencesManager

	cameraEntity ecs.EntityID
	targetEntity ecs.EntityID

	activeProfile string
	firstFrame    bool
	paused        bool
	stepOnce      bool
	verbose       bool
}

// NewApp 创建并初始化演示程序
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 加载内嵌的相机档案配置
	data, err := embedded.ReadFile("data/camera_profiles.yaml")
	if err != nil {
		return nil, fmt.Errorf("相机档案配置读取失败: %w", err)
	}
	profiles, err := config.ParseCameraProfilesConfig(data)
	if err != nil {
		return nil, fmt.Errorf("相机档案配置解析失败: %w", err)
	}
	log.Printf("[Config] 成功加载 %d 个相机档案", len(profiles.Profiles))

	// Android 上 gdata 的存储目录需要预先创建
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: storage dir unavailable: %v", err)
	}

	// 打开跨平台存储,失败时进入降级模式(仅内存偏好)
	gdataManager, err := gdata.Open(gdata.Config{AppName: "vcam_viewer"})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (preferences will not persist)", err)
		gdataManager = nil
	}
	preferences, err := game.NewPreferencesManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("偏好管理器初始化失败: %w", err)
	}

	// 确定启动档案: 命令行参数 > 保存的偏好 > 配置默认值
	profileName := cfg.Profile
	if profileName == "" {
		profileName = preferences.GetPreferences().ActiveProfile
	}
	if _, ok := profiles.Profiles[profileName]; !ok {
		profileName = profiles.DefaultProfile
	}
	log.Printf("[App] Starting with camera profile: %s", profileName)

	a := &App{
		entityManager: ecs.NewEntityManager(),
		profiles:      profiles,
		preferences:   preferences,
		activeProfile: profileName,
		firstFrame:    true,
		verbose:       cfg.Verbose,
	}
	a.aimSystem = systems.NewAimSystem(a.entityManager)
	a.motionSystem = systems.NewTargetMotionSystem(a.entityManager)
	a.buildScene()

	return a, nil
}

// buildScene 创建演示场景: 一个绕圈运动的目标和一台跟踪它的相机
func (a *App) buildScene() {
	em := a.entityManager

	a.targetEntity = em.CreateEntity()
	ecs.AddComponent(em, a.targetEntity, components.NewTransformComponent(mgl64.Vec3{8, 1, 0}))
	ecs.AddComponent(em, a.targetEntity, &components.OrbitMotionComponent{
		Center:       mgl64.Vec3{0, 1, 0},
		Radius:       8,
		AngularSpeed: 40,
		BobAmplitude: 1.5,
	})

	profile := a.profiles.Profile(a.activeProfile)
	a.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, a.cameraEntity, components.NewTransformComponent(mgl64.Vec3{0, 5, -16}))
	rig := components.NewCameraRigComponent(a.targetEntity, profile.LensFor(float64(ScreenWidth)/ScreenHeight))
	profile.Apply(rig.Composer)
	ecs.AddComponent(em, a.cameraEntity, rig)
}

// applyProfile 切换当前相机档案并保存偏好
func (a *App) applyProfile(name string) {
	profile := a.profiles.Profile(name)
	rig, ok := ecs.GetComponent[*components.CameraRigComponent](a.entityManager, a.cameraEntity)
	if !ok {
		return
	}
	profile.Apply(rig.Composer)
	rig.State.Lens = profile.LensFor(float64(ScreenWidth) / ScreenHeight)
	// 档案切换视为一次切镜,下一帧无阻尼对准
	rig.InvalidatePrevState()
	a.activeProfile = name
	a.preferences.SetActiveProfile(name)
	log.Printf("[App] Switched to camera profile: %s", name)
}

// profileNames 返回按字母序排列的档案名列表
func (a *App) profileNames() []string {
	names := make([]string, 0, len(a.profiles.Profiles))
	for name := range a.profiles.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Update 更新演示逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	a.handleInput()

	if a.paused && !a.stepOnce {
		return nil
	}
	a.stepOnce = false

	dt := 1.0 / 60.0
	a.motionSystem.Update(dt)
	if a.firstFrame {
		// 首帧请求无阻尼硬切,直接对准目标
		a.aimSystem.Update(-1)
		a.firstFrame = false
	} else {
		a.aimSystem.Update(dt)
	}
	a.entityManager.RemoveMarkedEntities()
	return nil
}

// handleInput 处理演示快捷键
func (a *App) handleInput() {
	// Tab 循环切换相机档案
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		names := a.profileNames()
		for i, name := range names {
			if name == a.activeProfile {
				a.applyProfile(names[(i+1)%len(names)])
				break
			}
		}
	}

	// 空格瞬移目标到轨道对侧,演示连续性处理
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.warpTargetAcross()
	}

	// 移动端用轻点屏幕代替空格键
	if utils.IsMobile() {
		if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
			a.warpTargetAcross()
		}
	}

	// G 切换取景框显示
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		prefs := a.preferences.GetPreferences()
		a.preferences.SetShowGuides(!prefs.ShowGuides)
	}

	// T 切换跟踪点标记显示
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		prefs := a.preferences.GetPreferences()
		a.preferences.SetShowTrackedPoint(!prefs.ShowTrackedPoint)
	}

	// P 暂停,N 暂停时单步推进一帧
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
	}
	if a.paused && inpututil.IsKeyJustPressed(ebiten.KeyN) {
		a.stepOnce = true
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
}

// warpTargetAcross 把目标瞬移到轨道对侧并通知跟踪相机
func (a *App) warpTargetAcross() {
	transform, ok := ecs.GetComponent[*components.TransformComponent](a.entityManager, a.targetEntity)
	if !ok {
		return
	}
	center := mgl64.Vec3{0, 1, 0}
	if orbit, ok := ecs.GetComponent[*components.OrbitMotionComponent](a.entityManager, a.targetEntity); ok {
		orbit.Angle += 180
		center = orbit.Center
	}
	delta := center.Sub(transform.Position).Mul(2)
	a.aimSystem.WarpTarget(a.targetEntity, delta)
	log.Printf("[App] Target warped by %v", delta)
}

// Draw 绘制演示画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 28, B: 34, A: 255})

	rig, ok := ecs.GetComponent[*components.CameraRigComponent](a.entityManager, a.cameraEntity)
	if !ok {
		return
	}
	cameraTransform, _ := ecs.GetComponent[*components.TransformComponent](a.entityManager, a.cameraEntity)

	// 地面参考点网格,提供运动参照
	for x := -20.0; x <= 20; x += 4 {
		for z := -20.0; z <= 20; z += 4 {
			if sx, sy, visible := a.project(rig, cameraTransform, mgl64.Vec3{x, 0, z}); visible {
				vector.DrawFilledCircle(screen, float32(sx), float32(sy), 1.5, color.RGBA{R: 60, G: 70, B: 82, A: 255}, true)
			}
		}
	}

	// 目标
	if targetTransform, ok := ecs.GetComponent[*components.TransformComponent](a.entityManager, a.targetEntity); ok {
		if sx, sy, visible := a.project(rig, cameraTransform, targetTransform.Position); visible {
			vector.DrawFilledCircle(screen, float32(sx), float32(sy), 8, color.RGBA{R: 235, G: 120, B: 90, A: 255}, true)
		}
	}

	prefs := a.preferences.GetPreferences()

	// 跟踪点标记(含前瞻偏移)
	if prefs.ShowTrackedPoint {
		if sx, sy, visible := a.project(rig, cameraTransform, rig.Composer.TrackedPoint()); visible {
			x, y := float32(sx), float32(sy)
			crossColor := color.RGBA{R: 120, G: 200, B: 255, A: 255}
			vector.StrokeLine(screen, x-6, y, x+6, y, 1, crossColor, true)
			vector.StrokeLine(screen, x, y-6, x, y+6, 1, crossColor, true)
		}
	}

	// 取景框: 死区绿色,软区黄色
	if prefs.ShowGuides {
		drawGuideRect(screen, rig.Composer.SoftGuideRect(), color.RGBA{R: 90, G: 220, B: 120, A: 200})
		drawGuideRect(screen, rig.Composer.HardGuideRect(), color.RGBA{R: 230, G: 200, B: 80, A: 160})
	}

	status := ""
	if a.paused {
		status = "  PAUSED ([N] step)"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"profile: %s  [Tab] switch  [Space] warp  [G] guides  [T] tracked point  [P] pause%s",
		a.activeProfile, status))
}

// drawGuideRect 把归一化屏幕矩形画到屏幕上
func drawGuideRect(screen *ebiten.Image, r aim.Rect, c color.RGBA) {
	// 屏幕Y轴向下,归一化坐标Y轴向上
	x := float32(r.XMin * ScreenWidth)
	y := float32((1 - r.YMax) * ScreenHeight)
	w := float32(r.Width() * ScreenWidth)
	h := float32(r.Height() * ScreenHeight)
	vector.StrokeRect(screen, x, y, w, h, 1, c, false)
}

// project 把世界坐标投影到屏幕像素坐标,返回是否在相机前方
func (a *App) project(rig *components.CameraRigComponent, cameraTransform *components.TransformComponent, p mgl64.Vec3) (float64, float64, bool) {
	view := cameraTransform.Rotation.Conjugate().Rotate(p.Sub(cameraTransform.Position))
	lens := rig.State.Lens

	var nx, ny float64
	if lens.Orthographic {
		if view[2] <= 0 {
			return 0, 0, false
		}
		ny = view[1] / lens.OrthoSize
		nx = view[0] / (lens.OrthoSize * lens.Aspect)
	} else {
		if view[2] <= 0.01 {
			return 0, 0, false
		}
		tanHalf := math.Tan(utils.DegToRad(lens.FieldOfView) / 2)
		ny = view[1] / (view[2] * tanHalf)
		nx = view[0] / (view[2] * tanHalf * lens.Aspect)
	}

	sx := (nx*0.5 + 0.5) * ScreenWidth
	sy := (1 - (ny*0.5 + 0.5)) * ScreenHeight
	return sx, sy, true
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
