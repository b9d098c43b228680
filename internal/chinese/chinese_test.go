package chinese

import "testing"

func TestPointsForChineseSizeKnown(t *testing.T) {
	t.Parallel()
	pt, err := PointsForChineseSize("小四")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pt != 12.0 {
		t.Errorf("小四 = %v, want 12.0", pt)
	}
}

func TestPointsForChineseSizeUnknown(t *testing.T) {
	t.Parallel()
	if _, err := PointsForChineseSize("超大号"); err == nil {
		t.Fatal("expected error for unknown size name")
	}
}
