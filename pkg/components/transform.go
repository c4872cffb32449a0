package components

import "github.com/go-gl/mathgl/mgl64"

// TransformComponent 存储实体在世界空间中的位姿
type TransformComponent struct {
	// Position 世界坐标位置
	Position mgl64.Vec3

	// Rotation 世界空间旋转
	Rotation mgl64.Quat
}

// NewTransformComponent 创建一个位于 pos、无旋转的变换组件
func NewTransformComponent(pos mgl64.Vec3) *TransformComponent {
	return &TransformComponent{
		Position: pos,
		Rotation: mgl64.QuatIdent(),
	}
}

// Forward 返回当前朝向的前向向量(+Z 为基准)
func (t *TransformComponent) Forward() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{0, 0, 1})
}
