package workload

import "testing"

func TestGaussianProducesExactSampleCount(t *testing.T) {
	x := Gaussian(1000, 8)
	if len(x) != 1000 {
		t.Fatalf("got %d samples, want 1000", len(x))
	}
}

func TestGaussianBucketsAreInRange(t *testing.T) {
	const intervals = 10
	x := Gaussian(5000, intervals)
	for _, v := range x {
		if v < 0 || v >= intervals {
			t.Fatalf("sample %v outside [0,%d)", v, intervals)
		}
	}
}

func TestGaussianIsBellShaped(t *testing.T) {
	const intervals = 8
	x := Gaussian(10000, intervals)

	counts := make([]int, intervals)
	for _, v := range x {
		counts[int(v)]++
	}

	mid := intervals / 2
	for i := 0; i < mid-1; i++ {
		if counts[i] > counts[i+1] {
			t.Errorf("left half not increasing toward center: counts[%d]=%d > counts[%d]=%d", i, counts[i], i+1, counts[i+1])
		}
	}
	for i := mid + 1; i < intervals-1; i++ {
		if counts[i] < counts[i+1] {
			t.Errorf("right half not decreasing away from center: counts[%d]=%d < counts[%d]=%d", i, counts[i], i+1, counts[i+1])
		}
	}
}

func TestGaussianPanicsOnNonPositiveArgs(t *testing.T) {
	cases := []struct{ n, intervals int }{{0, 4}, {-1, 4}, {4, 0}, {4, -1}}
	for _, c := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Gaussian(%d,%d) did not panic", c.n, c.intervals)
				}
			}()
			Gaussian(c.n, c.intervals)
		}()
	}
}

func TestSkewedAssignsHotShareToIndexZero(t *testing.T) {
	costs := Skewed(100, 0.99)
	if len(costs) != 100 {
		t.Fatalf("got %d costs, want 100", len(costs))
	}
	if costs[0] != 0.99 {
		t.Errorf("costs[0] = %v, want 0.99", costs[0])
	}

	var total float64
	for _, c := range costs {
		total += c
	}
	if diff := total - 1.0; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("total cost = %v, want 1.0", total)
	}

	for i := 1; i < len(costs); i++ {
		if costs[i] >= costs[0] {
			t.Errorf("costs[%d] = %v should be far below the hot index's %v", i, costs[i], costs[0])
		}
	}
}

func TestSkewedPanicsOnDegenerateArgs(t *testing.T) {
	cases := []struct {
		n        int
		hotShare float64
	}{{1, 0.5}, {0, 0.5}, {10, 0}, {10, 1}, {10, -0.1}}
	for _, c := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Skewed(%d,%v) did not panic", c.n, c.hotShare)
				}
			}()
			Skewed(c.n, c.hotShare)
		}()
	}
}
