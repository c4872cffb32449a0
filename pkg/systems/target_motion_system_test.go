package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gonewx/vcam/pkg/components"
	"github.com/gonewx/vcam/pkg/ecs"
)

// TestTargetMotionSystem_Orbit 测试圆周运动推进到正确的相位位置
func TestTargetMotionSystem_Orbit(t *testing.T) {
	em := ecs.NewEntityManager()
	id := em.CreateEntity()
	ecs.AddComponent(em, id, components.NewTransformComponent(mgl64.Vec3{}))
	ecs.AddComponent(em, id, &components.OrbitMotionComponent{
		Center:       mgl64.Vec3{1, 0, 0},
		Radius:       5,
		AngularSpeed: 90,
	})

	s := NewTargetMotionSystem(em)
	s.Update(1.0)

	transform, _ := ecs.GetComponent[*components.TransformComponent](em, id)
	// 相位角90度: cos=0, sin=1
	want := mgl64.Vec3{1, 0, 5}
	for i := 0; i < 3; i++ {
		if math.Abs(transform.Position[i]-want[i]) > 1e-9 {
			t.Fatalf("Expected orbit position %v, got %v", want, transform.Position)
		}
	}
}

// TestTargetMotionSystem_ZeroDeltaTime 测试零帧时间不推进运动
func TestTargetMotionSystem_ZeroDeltaTime(t *testing.T) {
	em := ecs.NewEntityManager()
	id := em.CreateEntity()
	ecs.AddComponent(em, id, components.NewTransformComponent(mgl64.Vec3{7, 7, 7}))
	ecs.AddComponent(em, id, &components.OrbitMotionComponent{Radius: 5, AngularSpeed: 90})

	s := NewTargetMotionSystem(em)
	s.Update(0)

	transform, _ := ecs.GetComponent[*components.TransformComponent](em, id)
	if transform.Position != (mgl64.Vec3{7, 7, 7}) {
		t.Errorf("Expected no motion at zero delta time, got %v", transform.Position)
	}
}

// TestTargetMotionSystem_TeleportNotifiesTrackingRig 测试定时瞬移
// 会把目标移到轨道对侧并登记到跟踪相机
func TestTargetMotionSystem_TeleportNotifiesTrackingRig(t *testing.T) {
	em := ecs.NewEntityManager()
	target := em.CreateEntity()
	ecs.AddComponent(em, target, components.NewTransformComponent(mgl64.Vec3{}))
	ecs.AddComponent(em, target, &components.OrbitMotionComponent{
		Radius:           5,
		AngularSpeed:     0,
		TeleportInterval: 1,
	})

	camera := em.CreateEntity()
	ecs.AddComponent(em, camera, components.NewTransformComponent(mgl64.Vec3{}))
	rig := components.NewCameraRigComponent(target, testLens())
	ecs.AddComponent(em, camera, rig)

	s := NewTargetMotionSystem(em)
	s.Update(0.5)
	if _, ok := rig.ConsumePendingWarp(); ok {
		t.Fatal("Expected no warp before the teleport interval elapses")
	}

	s.Update(0.5)
	delta, ok := rig.ConsumePendingWarp()
	if !ok {
		t.Fatal("Expected a pending warp after the teleport interval")
	}

	// 对侧瞬移: 相位角从0跳到180,位置从(5,0,0)跳到(-5,0,0)
	transform, _ := ecs.GetComponent[*components.TransformComponent](em, target)
	if math.Abs(transform.Position[0]+5) > 1e-9 || math.Abs(transform.Position[2]) > 1e-9 {
		t.Errorf("Expected target at the opposite side, got %v", transform.Position)
	}
	if math.Abs(delta[0]+10) > 1e-9 {
		t.Errorf("Expected warp delta x -10, got %v", delta)
	}

	// 未跟踪该目标的相机不应收到通知
	other := em.CreateEntity()
	ecs.AddComponent(em, other, components.NewTransformComponent(mgl64.Vec3{}))
	otherRig := components.NewCameraRigComponent(ecs.InvalidEntity, testLens())
	ecs.AddComponent(em, other, otherRig)
	s.Update(1.1)
	if _, ok := otherRig.ConsumePendingWarp(); ok {
		t.Error("Expected no warp notification for a rig tracking another entity")
	}
}
