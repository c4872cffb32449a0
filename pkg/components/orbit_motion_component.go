package components

import "github.com/go-gl/mathgl/mgl64"

// OrbitMotionComponent 驱动演示场景中目标实体的运动:
// 围绕中心点做水平圆周运动,并可按固定间隔瞬移到对侧,
// 用于演示镜头的阻尼跟随与瞬移连续性
type OrbitMotionComponent struct {
	// Center 圆周运动中心
	Center mgl64.Vec3

	// Radius 圆周半径
	Radius float64

	// AngularSpeed 角速度(度/秒)
	AngularSpeed float64

	// Angle 当前相位角(度)
	Angle float64

	// BobAmplitude 垂直浮动幅度,0 表示不浮动
	BobAmplitude float64

	// TeleportInterval 瞬移间隔(秒),0 表示不瞬移
	TeleportInterval float64

	// TeleportTimer 距下次瞬移的累计时间
	TeleportTimer float64
}
