package player

import "testing"

func TestNewDefaults(t *testing.T) {
	p := New("c1", "alpha")

	if p.ID != "c1" || p.Room != "alpha" {
		t.Fatalf("unexpected identity: %+v", p)
	}
	if p.X != 0 || p.Y != 0 || p.Z != 0 {
		t.Fatalf("expected origin position, got (%v,%v,%v)", p.X, p.Y, p.Z)
	}
	if p.Camp != CampUnassigned {
		t.Fatalf("expected unassigned camp, got %q", p.Camp)
	}
	if p.Health != DefaultHealth {
		t.Fatalf("expected health %d, got %d", DefaultHealth, p.Health)
	}
}

func TestUpdatePosition(t *testing.T) {
	p := New("c1", "alpha")
	p.UpdatePosition(1.5, -2, 3)

	if p.X != 1.5 || p.Y != -2 || p.Z != 3 {
		t.Fatalf("unexpected position: (%v,%v,%v)", p.X, p.Y, p.Z)
	}
}

func TestSetHealth(t *testing.T) {
	p := New("c1", "alpha")
	p.SetHealth(40)

	if p.Health != 40 {
		t.Fatalf("expected health 40, got %d", p.Health)
	}
}
