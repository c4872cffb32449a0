package systems

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gonewx/vcam/internal/aim"
	"github.com/gonewx/vcam/pkg/components"
	"github.com/gonewx/vcam/pkg/ecs"
)

// CompositionModifier 在每帧求解前通过 aim.CompositionProvider
// 读取并覆写取景构图参数,用于实现档案混合、运行时构图动画等外部逻辑。
type CompositionModifier interface {
	ModifyComposition(p aim.CompositionProvider, dt float64)
}

// AimSystem 每帧驱动所有相机的朝向求解。
// 对每个同时拥有 TransformComponent 和 CameraRigComponent 的实体,
// 先解析跟踪点(目标解析阶段),再求解并写回相机朝向(取景阶段)。
type AimSystem struct {
	entityManager *ecs.EntityManager
	modifiers     []CompositionModifier
}

// NewAimSystem 创建镜头取景系统。
func NewAimSystem(em *ecs.EntityManager) *AimSystem {
	return &AimSystem{entityManager: em}
}

// AddCompositionModifier 注册一个构图修改器,求解每个相机前按注册顺序调用。
func (s *AimSystem) AddCompositionModifier(m CompositionModifier) {
	s.modifiers = append(s.modifiers, m)
}

// Update 更新所有相机的朝向。dt 为本帧耗时(秒),
// 负值表示请求一次无阻尼硬切。
func (s *AimSystem) Update(dt float64) {
	rigs := ecs.GetEntitiesWith2[*components.TransformComponent, *components.CameraRigComponent](s.entityManager)
	for _, id := range rigs {
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		rig, _ := ecs.GetComponent[*components.CameraRigComponent](s.entityManager, id)
		s.solveRig(rig, transform, dt)
	}
}

// solveRig 对单个相机执行一帧完整的两阶段求解。
func (s *AimSystem) solveRig(rig *components.CameraRigComponent, transform *components.TransformComponent, dt float64) {
	in := aim.FrameInput{
		DeltaTime:      dt,
		Attachment:     rig.Attachment,
		TargetChanged:  rig.ConsumeTargetChange(),
		PrevStateValid: rig.PrevStateValid(),
	}

	if rig.LookAtTarget != ecs.InvalidEntity {
		if target, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, rig.LookAtTarget); ok {
			in.LookAtPosition = target.Position
			in.LookAtRotation = target.Rotation
			in.HasLookAt = true
		}
	}

	if !rig.Composer.IsValid(in.HasLookAt) {
		return
	}

	// 目标瞬移在求解前转发,保证瞬移不被当作运动
	if delta, ok := rig.ConsumePendingWarp(); ok {
		rig.Composer.OnTargetWarped(delta)
	}

	for _, m := range s.modifiers {
		m.ModifyComposition(rig.Composer, dt)
	}

	state := &rig.State
	state.Position = transform.Position
	state.Orientation = transform.Rotation

	rig.Composer.ResolveTrackedPoint(state, in)
	rig.Composer.ComposeOrientation(state, in)

	transform.Rotation = state.Orientation
	rig.MarkSolved()
}

// WarpTarget 将目标实体瞬移 delta,并通知所有跟踪它的相机,
// 使瞬移不会被阻尼和预测当作一次高速运动。
func (s *AimSystem) WarpTarget(target ecs.EntityID, delta mgl64.Vec3) {
	transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, target)
	if !ok {
		return
	}
	transform.Position = transform.Position.Add(delta)

	for _, id := range s.entityManager.GetEntitiesWith(ecs.TypeOf[*components.CameraRigComponent]()) {
		rig, _ := ecs.GetComponent[*components.CameraRigComponent](s.entityManager, id)
		if rig.LookAtTarget == target {
			rig.NotifyTargetWarped(delta)
		}
	}
}

// WarpCamera 将相机实体瞬移 delta,同时覆写求解器的历史位姿,
// 避免下一帧把瞬移当作相机运动回拉
func (s *AimSystem) WarpCamera(camera ecs.EntityID, delta mgl64.Vec3) {
	transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, camera)
	if !ok {
		return
	}
	transform.Position = transform.Position.Add(delta)

	if rig, ok := ecs.GetComponent[*components.CameraRigComponent](s.entityManager, camera); ok {
		rig.Composer.ForcePose(transform.Position, transform.Rotation)
	}
}
