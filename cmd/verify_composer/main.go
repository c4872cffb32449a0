package main

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gonewx/vcam/internal/aim"
	"github.com/gonewx/vcam/pkg/components"
	"github.com/gonewx/vcam/pkg/ecs"
	"github.com/gonewx/vcam/pkg/systems"
	"github.com/gonewx/vcam/pkg/utils"
)

// 无头验证工具: 运行固定的跟踪场景并打印每帧的取景残差,
// 用于在没有图形环境时确认求解行为
func main() {
	fmt.Println("=== 相机取景求解验证 ===")
	fmt.Println()

	em := ecs.NewEntityManager()
	aimSystem := systems.NewAimSystem(em)
	motionSystem := systems.NewTargetMotionSystem(em)

	// 场景: 目标绕圈运动,相机固定机位跟踪
	target := em.CreateEntity()
	ecs.AddComponent(em, target, components.NewTransformComponent(mgl64.Vec3{8, 1, 0}))
	ecs.AddComponent(em, target, &components.OrbitMotionComponent{
		Center:       mgl64.Vec3{0, 1, 0},
		Radius:       8,
		AngularSpeed: 60,
	})

	camera := em.CreateEntity()
	ecs.AddComponent(em, camera, components.NewTransformComponent(mgl64.Vec3{0, 5, -16}))
	rig := components.NewCameraRigComponent(target, aim.LensState{FieldOfView: 60, Aspect: 16.0 / 9})
	rig.Composer.SetComposition(aim.CompositionSettings{
		DeadZoneSize: mgl64.Vec2{0.1, 0.1},
		SoftZoneSize: mgl64.Vec2{0.6, 0.6},
	})
	rig.Composer.Damping = aim.DampingSettings{Horizontal: 0.5, Vertical: 0.5}
	ecs.AddComponent(em, camera, rig)

	residual := func() mgl64.Vec2 {
		camT, _ := ecs.GetComponent[*components.TransformComponent](em, camera)
		tgtT, _ := ecs.GetComponent[*components.TransformComponent](em, target)
		return utils.CameraRotationToTarget(camT.Rotation, tgtT.Position.Sub(camT.Position), mgl64.Vec3{0, 1, 0})
	}

	const dt = 1.0 / 60

	// 首帧硬切
	aimSystem.Update(-1)
	r := residual()
	fmt.Printf("硬切后残差: pitch=%.4f° yaw=%.4f°\n", r[0], r[1])
	fmt.Println()

	// 跟踪阶段: 目标运动,残差应始终有界
	fmt.Println("--- 跟踪阶段 (180 帧) ---")
	maxYaw, maxPitch := 0.0, 0.0
	for i := 0; i < 180; i++ {
		motionSystem.Update(dt)
		aimSystem.Update(dt)
		r = residual()
		maxPitch = math.Max(maxPitch, math.Abs(r[0]))
		maxYaw = math.Max(maxYaw, math.Abs(r[1]))
		if i%30 == 29 {
			fmt.Printf("帧 %3d: pitch=%+.3f° yaw=%+.3f°\n", i+1, r[0], r[1])
		}
	}
	fmt.Printf("最大残差: pitch=%.3f° yaw=%.3f°\n", maxPitch, maxYaw)

	// 硬边界检查: 完全接入时真实目标不得越过软区
	hardRect := rig.Composer.HardGuideRect()
	fmt.Printf("软区屏幕矩形: [%.2f, %.2f] x [%.2f, %.2f]\n",
		hardRect.XMin, hardRect.XMax, hardRect.YMin, hardRect.YMax)
	fmt.Println()

	// 瞬移阶段: 连续性处理后残差不应跳变
	fmt.Println("--- 瞬移阶段 ---")
	before := residual()
	aimSystem.WarpTarget(target, mgl64.Vec3{30, 0, -10})
	camT, _ := ecs.GetComponent[*components.TransformComponent](em, camera)
	camT.Position = camT.Position.Add(mgl64.Vec3{30, 0, -10})
	rig.Composer.ForcePose(camT.Position, camT.Rotation)
	aimSystem.Update(dt)
	after := residual()
	jump := math.Abs(after[1]-before[1]) + math.Abs(after[0]-before[0])
	fmt.Printf("瞬移前残差: pitch=%+.3f° yaw=%+.3f°\n", before[0], before[1])
	fmt.Printf("瞬移后残差: pitch=%+.3f° yaw=%+.3f°\n", after[0], after[1])
	fmt.Println()

	// 汇总
	ok := true
	if maxYaw > 40 || maxPitch > 40 {
		fmt.Println("❌ 跟踪残差超出预期范围")
		ok = false
	}
	if jump > 1.0 {
		fmt.Println("❌ 瞬移导致残差跳变")
		ok = false
	}
	if ok {
		fmt.Println("✅ 求解行为符合预期")
	}
}
