// Package utils 提供框架通用的数学工具函数
//
// 所有三维运算基于 mgl64（float64 精度），约定右手坐标系：
// 前方 +Z、上方 +Y、右方 +X。角度一律使用度（degree），
// 仅在调用三角函数时临时转换为弧度。
package utils

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon 全局"近似为零"容差
//
// 所有退化几何判断（零向量、零距离、零时间步长）统一使用该值，
// 避免各处散落不同的 ad-hoc 容差导致行为不可复现。
const Epsilon = 0.0001

// AlmostZero 判断标量是否近似为零
func AlmostZero(v float64) bool {
	return math.Abs(v) < Epsilon
}

// VecAlmostZero 判断向量是否近似为零向量
// 使用平方模长与 Epsilon² 比较，避免开方
func VecAlmostZero(v mgl64.Vec3) bool {
	return v.Dot(v) < Epsilon*Epsilon
}

// Clamp 将 v 限制在 [min, max] 范围内
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Clamp01 将 v 限制在 [0, 1] 范围内
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Lerp 标量线性插值
// t=0 返回 a，t=1 返回 b（t 不做范围限制）
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVec 向量线性插值
func LerpVec(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// DegToRad 角度转弧度
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg 弧度转角度
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// ProjectOntoPlane 将向量投影到以 normal 为法线的平面上
// normal 必须是单位向量
func ProjectOntoPlane(v, normal mgl64.Vec3) mgl64.Vec3 {
	return v.Sub(normal.Mul(v.Dot(normal)))
}

// Angle 计算两个向量之间的无符号夹角（度）
// 任一向量近似为零时返回 0
func Angle(a, b mgl64.Vec3) float64 {
	if VecAlmostZero(a) || VecAlmostZero(b) {
		return 0
	}
	cross := a.Cross(b)
	return RadToDeg(math.Atan2(cross.Len(), a.Dot(b)))
}

// SignedAngle 计算从 from 旋转到 to 的带符号夹角（度）
//
// 符号由 axis 决定：叉积方向与 axis 同向时为正。
// 参数:
//   - from: 起始方向
//   - to: 目标方向
//   - axis: 旋转参考轴
func SignedAngle(from, to, axis mgl64.Vec3) float64 {
	cross := from.Cross(to)
	angle := RadToDeg(math.Atan2(cross.Len(), from.Dot(to)))
	if cross.Dot(axis) < 0 {
		return -angle
	}
	return angle
}

// LookRotation 构造朝向 dir、以 up 为参考上方向的旋转
//
// 返回的四元数将局部 +Z 轴映射到 dir 方向。
// dir 与 up 近似平行时自动选取替代右方向，保证结果正交。
// dir 近似为零时返回单位四元数。
func LookRotation(dir, up mgl64.Vec3) mgl64.Quat {
	if VecAlmostZero(dir) {
		return mgl64.QuatIdent()
	}
	z := dir.Normalize()
	x := up.Cross(z)
	if VecAlmostZero(x) {
		// dir 与 up 平行，用世界 X/Z 轴兜底
		x = mgl64.Vec3{1, 0, 0}.Cross(z)
		if VecAlmostZero(x) {
			x = mgl64.Vec3{0, 0, 1}.Cross(z)
		}
	}
	x = x.Normalize()
	y := z.Cross(x)
	m := mgl64.Mat4{
		x[0], x[1], x[2], 0,
		y[0], y[1], y[2], 0,
		z[0], z[1], z[2], 0,
		0, 0, 0, 1,
	}
	return mgl64.Mat4ToQuat(m).Normalize()
}

// CameraRotationToTarget 计算让相机正对目标方向所需的俯仰/偏航角
//
// 返回 Vec2{pitch, yaw}（度）：
//   - pitch 为正表示目标在画面中心上方
//   - yaw 为正表示目标在画面中心右方
//
// 目标方向与上方向近似平行时，俯仰角取 ±90°，偏航角为 0。
// 方向近似为零时返回零向量。
func CameraRotationToTarget(orient mgl64.Quat, dir, worldUp mgl64.Vec3) mgl64.Vec2 {
	if VecAlmostZero(dir) {
		return mgl64.Vec2{}
	}
	toLocal := orient.Inverse()
	upL := toLocal.Rotate(worldUp)
	dirL := toLocal.Rotate(dir)

	fwd := mgl64.Vec3{0, 0, 1}
	left := mgl64.Vec3{-1, 0, 0}

	dirH := ProjectOntoPlane(dirL, upL)
	if VecAlmostZero(dirH) {
		// 目标在正上方或正下方，偏航角无意义
		if dirL.Dot(upL) > 0 {
			return mgl64.Vec2{90, 0}
		}
		return mgl64.Vec2{-90, 0}
	}
	yaw := SignedAngle(fwd, dirH, upL)
	q := mgl64.QuatRotate(DegToRad(yaw), upL)
	pitch := SignedAngle(q.Rotate(fwd), dirL, q.Rotate(left))
	return mgl64.Vec2{pitch, yaw}
}

// ApplyCameraRotation 将俯仰/偏航修正量应用到相机旋转上
//
// rot 为 Vec2{pitch, yaw}（度），与 CameraRotationToTarget 的返回值
// 互为逆操作：俯仰绕局部左轴旋转，偏航绕世界上方向旋转。
// 修正量近似为零时原样返回。
func ApplyCameraRotation(orient mgl64.Quat, rot mgl64.Vec2, worldUp mgl64.Vec3) mgl64.Quat {
	if rot.Dot(rot) < Epsilon*Epsilon {
		return orient
	}
	pitchQ := mgl64.QuatRotate(DegToRad(rot[0]), mgl64.Vec3{-1, 0, 0})
	yawQ := mgl64.QuatRotate(DegToRad(rot[1]), worldUp)
	return yawQ.Mul(orient).Mul(pitchQ)
}
