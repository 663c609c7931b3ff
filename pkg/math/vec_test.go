package math

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
	}
}

func TestVec2Normalize(t *testing.T) {
	v := Vec2{3, 4}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}
}

func TestVec2Cross(t *testing.T) {
	a := Vec2{1, 0}
	b := Vec2{0, 1}
	if got := a.Cross(b); got != 1 {
		t.Errorf("Vec2.Cross() = %v, want 1", got)
	}
	if got := b.Cross(a); got != -1 {
		t.Errorf("Vec2.Cross() reversed = %v, want -1", got)
	}
}

func TestVec2AngleSigned(t *testing.T) {
	a := Vec2{1, 0}
	b := Vec2{0, 1}
	// Counter-clockwise rotation yields a negative angle.
	got := a.AngleSigned(b)
	want := -math32.Pi / 2
	if math32.Abs(got-want) > 1e-6 {
		t.Errorf("Vec2.AngleSigned(ccw) = %v, want %v", got, want)
	}
	got = b.AngleSigned(a)
	if math32.Abs(got+want) > 1e-6 {
		t.Errorf("Vec2.AngleSigned(cw) = %v, want %v", got, -want)
	}
}

func TestRotation2(t *testing.T) {
	m := Rotation2(math32.Pi / 2)
	got := m.MulVec2(Vec2{1, 0})
	want := Vec2{0, 1}
	if math32.Abs(got.X-want.X) > 1e-6 || math32.Abs(got.Y-want.Y) > 1e-6 {
		t.Errorf("Rotation2(pi/2) * (1,0) = %v, want %v", got, want)
	}
}

func TestVec3Dot(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Vec3.Dot() = %v, want 32", got)
	}
}
