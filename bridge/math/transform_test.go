package math

import "testing"

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Fatalf("Clamp(5,0,10) = %d", got)
	}
	if got := Clamp(-1, 0, 10); got != 0 {
		t.Fatalf("Clamp(-1,0,10) = %d", got)
	}
	if got := Clamp(11, 0, 10); got != 10 {
		t.Fatalf("Clamp(11,0,10) = %d", got)
	}
	if got := Clamp(1.5, 0.0, 1.0); got != 1.0 {
		t.Fatalf("Clamp(1.5,0,1) = %g", got)
	}
}

func TestTransformLocalAppliesTranslation(t *testing.T) {
	tr := TransformFromPosition(NewVec3(1, 2, 3))
	p := NewVec3Zero().Transform(tr.GetLocal())
	if !p.Compare(NewVec3(1, 2, 3), 1e-9) {
		t.Fatalf("transformed point = %+v", p)
	}
}

func TestTransformLocalAppliesScale(t *testing.T) {
	tr := TransformCreate()
	tr.SetScale(NewVec3(2, 2, 2))
	p := NewVec3(1, 1, 1).Transform(tr.GetLocal())
	if !p.Compare(NewVec3(2, 2, 2), 1e-9) {
		t.Fatalf("transformed point = %+v", p)
	}
}

func TestTransformCloneIsIndependent(t *testing.T) {
	tr := TransformFromPosition(NewVec3(1, 0, 0))
	c := tr.Clone()
	c.SetPosition(NewVec3(9, 9, 9))
	if tr.Position.X != 1 {
		t.Fatal("Clone mutated the source transform")
	}
	if !c.Position.Compare(NewVec3(9, 9, 9), 1e-9) {
		t.Fatalf("clone position = %+v", c.Position)
	}
}

func TestQuaternionIdentityRotation(t *testing.T) {
	m := NewQuatIdentity().ToMat4()
	p := NewVec3(1, 2, 3).Transform(m)
	if !p.Compare(NewVec3(1, 2, 3), 1e-9) {
		t.Fatalf("identity rotation moved the point: %+v", p)
	}
}

func TestVec3Normalized(t *testing.T) {
	v := NewVec3(3, 0, 4).Normalized()
	if !v.Compare(NewVec3(0.6, 0, 0.8), 1e-9) {
		t.Fatalf("Normalized = %+v", v)
	}
	z := NewVec3Zero().Normalized()
	if !z.Compare(NewVec3Zero(), 1e-9) {
		t.Fatal("normalizing zero vector changed it")
	}
}
