package sim

import "testing"

func TestRespawnGuard(t *testing.T) {
	type probe struct {
		y, now float64
		want   bool
	}

	tests := []struct {
		name   string
		probes []probe
	}{
		{"above never fires", []probe{{0, 0, false}, {-19, 10, false}, {-19.9, 30, false}}},
		{"fires after delay", []probe{{-25, 1, false}, {-40, 8.9, false}, {-60, 9, true}}},
		{"threshold is inclusive", []probe{{-20, 0, false}, {-20, 8, true}}},
		{"rising disarms", []probe{{-25, 0, false}, {-25, 5, false}, {-10, 5.5, false}, {-25, 6, false}, {-25, 13.9, false}, {-25, 14, true}}},
		{"fires once then rearms", []probe{{-25, 0, false}, {-25, 8, true}, {-25, 8.1, false}, {-25, 16, false}, {-25, 16.5, true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewRespawnGuard(0)
			for i, p := range tt.probes {
				if got := g.Check(p.y, p.now); got != p.want {
					t.Errorf("probe %d (y=%v t=%v): got %v, want %v", i, p.y, p.now, got, p.want)
				}
			}
		})
	}
}

func TestRespawnGuardRearm(t *testing.T) {
	g := NewRespawnGuard(200)
	if g.Threshold() != 180 {
		t.Fatalf("expected threshold 180, got %v", g.Threshold())
	}

	g.Check(0, 0)
	if falling, _ := g.Falling(); !falling {
		t.Fatal("expected timer armed")
	}

	g.Rearm(5)
	if falling, _ := g.Falling(); falling {
		t.Error("expected timer cleared by rearm")
	}
	if g.Check(0, 100) {
		t.Error("0 is above the new threshold -15")
	}
}
