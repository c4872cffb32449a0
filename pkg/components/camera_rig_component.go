package components

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gonewx/vcam/internal/aim"
	"github.com/gonewx/vcam/pkg/ecs"
)

// CameraRigComponent 将一台相机与它的取景求解器绑定在一起。
// 相机的位置由 TransformComponent 提供,朝向每帧由 AimSystem
// 通过 Composer 求解后写回 TransformComponent.Rotation。
type CameraRigComponent struct {
	// State 是求解器读写的相机状态快照
	State aim.CameraState

	// Composer 是该相机专属的朝向求解器,不可在相机间共享
	Composer *aim.Composer

	// LookAtTarget 被跟踪实体的ID,InvalidEntity 表示无目标
	LookAtTarget ecs.EntityID

	// Attachment 相机在混合中的接入进度 [0,1],1 表示完全接管
	Attachment float64

	// lastTarget 上一帧的跟踪目标,用于检测目标切换
	lastTarget ecs.EntityID

	// prevStateValid 上一帧状态是否有效(首帧和切镜后为 false)
	prevStateValid bool

	// pendingWarp 本帧待处理的目标瞬移量
	pendingWarp    mgl64.Vec3
	hasPendingWarp bool
}

// NewCameraRigComponent 创建一个跟踪 target 的相机绑定组件
func NewCameraRigComponent(target ecs.EntityID, lens aim.LensState) *CameraRigComponent {
	return &CameraRigComponent{
		State: aim.CameraState{
			Orientation: mgl64.QuatIdent(),
			ReferenceUp: mgl64.Vec3{0, 1, 0},
			Lens:        lens,
		},
		Composer:     aim.NewComposer(),
		LookAtTarget: target,
		Attachment:   1,
	}
}

// ConsumeTargetChange 返回目标是否在上一帧后发生了切换,并记录当前目标
func (c *CameraRigComponent) ConsumeTargetChange() bool {
	changed := c.lastTarget != c.LookAtTarget
	c.lastTarget = c.LookAtTarget
	return changed
}

// PrevStateValid 返回上一帧求解结果是否可作为本帧的延续
func (c *CameraRigComponent) PrevStateValid() bool {
	return c.prevStateValid
}

// MarkSolved 记录本帧完成了一次有效求解
func (c *CameraRigComponent) MarkSolved() {
	c.prevStateValid = true
}

// InvalidatePrevState 使上一帧状态失效,下一帧将无阻尼硬切
func (c *CameraRigComponent) InvalidatePrevState() {
	c.prevStateValid = false
}

// NotifyTargetWarped 登记一次目标瞬移,在下一次求解前转发给 Composer
func (c *CameraRigComponent) NotifyTargetWarped(delta mgl64.Vec3) {
	c.pendingWarp = c.pendingWarp.Add(delta)
	c.hasPendingWarp = true
}

// ConsumePendingWarp 取出并清空累计的瞬移量
func (c *CameraRigComponent) ConsumePendingWarp() (mgl64.Vec3, bool) {
	if !c.hasPendingWarp {
		return mgl64.Vec3{}, false
	}
	delta := c.pendingWarp
	c.pendingWarp = mgl64.Vec3{}
	c.hasPendingWarp = false
	return delta, true
}
