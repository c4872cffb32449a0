package utils

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// 浮点比较容差（测试用，比 Epsilon 宽松）
const testTol = 1e-9

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func vecAlmostEqual(a, b mgl64.Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}

// TestAlmostZero 测试近似为零判断
func TestAlmostZero(t *testing.T) {
	testCases := []struct {
		name     string
		v        float64
		expected bool
	}{
		{"zero", 0, true},
		{"below_epsilon", 0.00005, true},
		{"negative_below_epsilon", -0.00005, true},
		{"at_epsilon", Epsilon, false},
		{"large", 1.0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AlmostZero(tc.v); got != tc.expected {
				t.Errorf("AlmostZero(%v) = %v, want %v", tc.v, got, tc.expected)
			}
		})
	}
}

// TestVecAlmostZero 测试向量近似为零判断
func TestVecAlmostZero(t *testing.T) {
	if !VecAlmostZero(mgl64.Vec3{}) {
		t.Error("zero vector should be almost zero")
	}
	if !VecAlmostZero(mgl64.Vec3{0.00001, 0.00001, 0.00001}) {
		t.Error("tiny vector should be almost zero")
	}
	if VecAlmostZero(mgl64.Vec3{0.001, 0, 0}) {
		t.Error("0.001 vector should not be almost zero")
	}
}

// TestClamp 测试范围限制
func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 1); got != 1 {
		t.Errorf("Clamp(5,0,1) = %v, want 1", got)
	}
	if got := Clamp(-5, 0, 1); got != 0 {
		t.Errorf("Clamp(-5,0,1) = %v, want 0", got)
	}
	if got := Clamp(0.5, 0, 1); got != 0.5 {
		t.Errorf("Clamp(0.5,0,1) = %v, want 0.5", got)
	}
}

// TestLerp 测试线性插值端点和中点
func TestLerp(t *testing.T) {
	if got := Lerp(2, 4, 0); got != 2 {
		t.Errorf("Lerp(2,4,0) = %v, want 2", got)
	}
	if got := Lerp(2, 4, 1); got != 4 {
		t.Errorf("Lerp(2,4,1) = %v, want 4", got)
	}
	if got := Lerp(2, 4, 0.5); got != 3 {
		t.Errorf("Lerp(2,4,0.5) = %v, want 3", got)
	}
}

// TestProjectOntoPlane 测试平面投影
func TestProjectOntoPlane(t *testing.T) {
	up := mgl64.Vec3{0, 1, 0}
	v := mgl64.Vec3{1, 2, 3}
	p := ProjectOntoPlane(v, up)

	// 投影结果应与法线垂直
	if !almostEqual(p.Dot(up), 0, testTol) {
		t.Errorf("projection not perpendicular to normal: dot = %v", p.Dot(up))
	}
	// 水平分量应保持不变
	if !vecAlmostEqual(p, mgl64.Vec3{1, 0, 3}, testTol) {
		t.Errorf("projection = %v, want (1,0,3)", p)
	}
}

// TestSignedAngle 测试带符号夹角的方向性
func TestSignedAngle(t *testing.T) {
	fwd := mgl64.Vec3{0, 0, 1}
	right := mgl64.Vec3{1, 0, 0}
	up := mgl64.Vec3{0, 1, 0}

	// 前方到右方，绕上轴为 +90°
	if got := SignedAngle(fwd, right, up); !almostEqual(got, 90, testTol) {
		t.Errorf("SignedAngle(fwd,right,up) = %v, want 90", got)
	}
	// 反向参考轴时符号翻转
	if got := SignedAngle(fwd, right, up.Mul(-1)); !almostEqual(got, -90, testTol) {
		t.Errorf("SignedAngle(fwd,right,-up) = %v, want -90", got)
	}
	// 同向为 0
	if got := SignedAngle(fwd, fwd, up); !almostEqual(got, 0, testTol) {
		t.Errorf("SignedAngle(fwd,fwd,up) = %v, want 0", got)
	}
}

// TestLookRotation 测试朝向旋转的构造
func TestLookRotation(t *testing.T) {
	up := mgl64.Vec3{0, 1, 0}
	fwd := mgl64.Vec3{0, 0, 1}

	testCases := []struct {
		name string
		dir  mgl64.Vec3
	}{
		{"forward", mgl64.Vec3{0, 0, 1}},
		{"right", mgl64.Vec3{1, 0, 0}},
		{"diagonal", mgl64.Vec3{1, 0.5, 1}},
		{"backward", mgl64.Vec3{0, 0, -1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := LookRotation(tc.dir, up)
			got := q.Rotate(fwd)
			want := tc.dir.Normalize()
			if !vecAlmostEqual(got, want, 1e-9) {
				t.Errorf("LookRotation forward = %v, want %v", got, want)
			}
		})
	}

	// 方向与上方向平行时不应产生 NaN
	q := LookRotation(up, up)
	v := q.Rotate(fwd)
	if math.IsNaN(v[0]) || math.IsNaN(v[1]) || math.IsNaN(v[2]) {
		t.Errorf("LookRotation(up, up) produced NaN: %v", v)
	}
}

// TestCameraRotationToTarget 测试俯仰/偏航分解的符号约定
func TestCameraRotationToTarget(t *testing.T) {
	up := mgl64.Vec3{0, 1, 0}
	orient := mgl64.QuatIdent() // 正对 +Z

	testCases := []struct {
		name      string
		dir       mgl64.Vec3
		wantPitch float64
		wantYaw   float64
	}{
		{"dead_ahead", mgl64.Vec3{0, 0, 1}, 0, 0},
		{"right_45", mgl64.Vec3{1, 0, 1}, 0, 45},
		{"left_90", mgl64.Vec3{-1, 0, 0}, 0, -90},
		{"up_45", mgl64.Vec3{0, 1, 1}, 45, 0},
		{"down_45", mgl64.Vec3{0, -1, 1}, -45, 0},
		{"straight_up", mgl64.Vec3{0, 1, 0}, 90, 0},
		{"straight_down", mgl64.Vec3{0, -1, 0}, -90, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := CameraRotationToTarget(orient, tc.dir, up)
			if !almostEqual(got[0], tc.wantPitch, 1e-9) || !almostEqual(got[1], tc.wantYaw, 1e-9) {
				t.Errorf("CameraRotationToTarget(%v) = (%.4f, %.4f), want (%.1f, %.1f)",
					tc.dir, got[0], got[1], tc.wantPitch, tc.wantYaw)
			}
		})
	}
}

// TestApplyCameraRotation_Roundtrip 测试旋转分解与应用互为逆操作
func TestApplyCameraRotation_Roundtrip(t *testing.T) {
	up := mgl64.Vec3{0, 1, 0}
	fwd := mgl64.Vec3{0, 0, 1}
	orient := mgl64.QuatIdent()

	dirs := []mgl64.Vec3{
		{1, 0, 1},
		{0, 1, 2},
		{-1, -0.5, 1},
		{2, 1, -1},
	}

	for _, dir := range dirs {
		rot := CameraRotationToTarget(orient, dir, up)
		result := ApplyCameraRotation(orient, rot, up)
		got := result.Rotate(fwd)
		want := dir.Normalize()
		if !vecAlmostEqual(got, want, 1e-6) {
			t.Errorf("roundtrip for %v: forward = %v, want %v", dir, got, want)
		}
	}
}

// TestApplyCameraRotation_ZeroIsNoop 测试零修正量不改变旋转
func TestApplyCameraRotation_ZeroIsNoop(t *testing.T) {
	up := mgl64.Vec3{0, 1, 0}
	orient := mgl64.QuatRotate(0.7, mgl64.Vec3{0, 1, 0})
	result := ApplyCameraRotation(orient, mgl64.Vec2{}, up)
	if result != orient {
		t.Errorf("zero rotation should return orientation unchanged")
	}
}

// TestAngle 测试无符号夹角
func TestAngle(t *testing.T) {
	a := mgl64.Vec3{0, 0, 1}
	b := mgl64.Vec3{0, 1, 0}
	if got := Angle(a, b); !almostEqual(got, 90, testTol) {
		t.Errorf("Angle = %v, want 90", got)
	}
	// 零向量返回 0
	if got := Angle(a, mgl64.Vec3{}); got != 0 {
		t.Errorf("Angle with zero vector = %v, want 0", got)
	}
}
