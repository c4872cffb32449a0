package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gonewx/vcam/pkg/components"
	"github.com/gonewx/vcam/pkg/ecs"
	"github.com/gonewx/vcam/pkg/utils"
)

// TargetMotionSystem 驱动演示目标的圆周运动与定时瞬移。
// 瞬移通过 NotifyTargetWarped 通知所有跟踪该目标的相机,
// 用于演示镜头连续性处理。
type TargetMotionSystem struct {
	entityManager *ecs.EntityManager
}

// NewTargetMotionSystem 创建目标运动系统。
func NewTargetMotionSystem(em *ecs.EntityManager) *TargetMotionSystem {
	return &TargetMotionSystem{entityManager: em}
}

// Update 推进所有轨道运动实体。
func (s *TargetMotionSystem) Update(dt float64) {
	if dt <= 0 {
		return
	}
	ids := ecs.GetEntitiesWith2[*components.TransformComponent, *components.OrbitMotionComponent](s.entityManager)
	for _, id := range ids {
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		orbit, _ := ecs.GetComponent[*components.OrbitMotionComponent](s.entityManager, id)

		orbit.Angle += orbit.AngularSpeed * dt
		if orbit.Angle >= 360 {
			orbit.Angle -= 360
		}
		transform.Position = orbitPosition(orbit)

		if orbit.TeleportInterval > 0 {
			orbit.TeleportTimer += dt
			if orbit.TeleportTimer >= orbit.TeleportInterval {
				orbit.TeleportTimer = 0
				s.teleportAcross(id, transform, orbit)
			}
		}
	}
}

// orbitPosition 计算当前相位角对应的世界坐标
func orbitPosition(orbit *components.OrbitMotionComponent) mgl64.Vec3 {
	rad := utils.DegToRad(orbit.Angle)
	pos := orbit.Center.Add(mgl64.Vec3{
		orbit.Radius * math.Cos(rad),
		orbit.BobAmplitude * math.Sin(2*rad),
		orbit.Radius * math.Sin(rad),
	})
	return pos
}

// teleportAcross 将实体瞬移到轨道对侧,并通知跟踪它的相机
func (s *TargetMotionSystem) teleportAcross(id ecs.EntityID, transform *components.TransformComponent, orbit *components.OrbitMotionComponent) {
	orbit.Angle += 180
	if orbit.Angle >= 360 {
		orbit.Angle -= 360
	}
	newPos := orbitPosition(orbit)
	delta := newPos.Sub(transform.Position)
	transform.Position = newPos

	for _, camID := range s.entityManager.GetEntitiesWith(ecs.TypeOf[*components.CameraRigComponent]()) {
		rig, _ := ecs.GetComponent[*components.CameraRigComponent](s.entityManager, camID)
		if rig.LookAtTarget == id {
			rig.NotifyTargetWarped(delta)
		}
	}
}
