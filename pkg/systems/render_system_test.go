package systems

import (
	"math"
	"testing"
)

func TestEllipseRows(t *testing.T) {
	rows := EllipseRows(10, 20, 100, 40, 2)
	if len(rows) != 20 {
		t.Fatalf("expected 20 rows, got %d", len(rows))
	}

	widest := 0.0
	for i, r := range rows {
		// 每条都关于椭圆中心线对称
		if math.Abs((r.X+r.Width/2)-60) > 1e-9 {
			t.Errorf("row %d not centered: x=%g w=%g", i, r.X, r.Width)
		}
		if r.Width > 100 {
			t.Errorf("row %d wider than ellipse: %g", i, r.Width)
		}
		widest = math.Max(widest, r.Width)
	}
	if widest < 99 {
		t.Errorf("middle rows should span nearly the full width, got %g", widest)
	}
	if rows[0].Width >= rows[len(rows)/2].Width {
		t.Errorf("top row should be narrower than the middle row")
	}

	if rows := EllipseRows(0, 0, 0, 10, 2); rows != nil {
		t.Errorf("zero-width ellipse should have no rows, got %d", len(rows))
	}
}
