package pipeline

import (
	"math"
	"testing"

	"slidecast/types"
)

func TestReconcilePolicy(t *testing.T) {
	cases := []struct {
		name         string
		requested    float64
		hasRequested bool
		synthesized  float64
		want         float64
	}{
		{"no requested duration", 0, false, 6.0, 6.0},
		{"requested longer holds slide", 8.0, true, 5.0, 8.0},
		{"speech runs long, never truncated", 5.0, true, 7.5, 7.5},
		{"equal values", 4.0, true, 4.0, 4.0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			seg := &types.Segment{
				RequestedSeconds:   c.requested,
				HasRequested:       c.hasRequested,
				SynthesizedSeconds: c.synthesized,
			}
			if err := Reconcile([]*types.Segment{seg}); err != nil {
				t.Fatalf("Reconcile returned error: %v", err)
			}

			if seg.FinalSeconds < seg.SynthesizedSeconds {
				t.Errorf("final %.4f < synthesized %.4f", seg.FinalSeconds, seg.SynthesizedSeconds)
			}
			if c.hasRequested && seg.FinalSeconds < c.requested {
				t.Errorf("final %.4f < requested %.4f", seg.FinalSeconds, c.requested)
			}
			if math.Abs(seg.FinalSeconds-c.want) > 1.0/FrameRate {
				t.Errorf("final = %.4f, want ~%.4f", seg.FinalSeconds, c.want)
			}
		})
	}
}

func TestReconcileFrameAlignment(t *testing.T) {
	seg := &types.Segment{SynthesizedSeconds: 3.001}
	if err := Reconcile([]*types.Segment{seg}); err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}

	frames := seg.FinalSeconds * FrameRate
	if math.Abs(frames-math.Round(frames)) > 1e-6 {
		t.Errorf("final duration %.6f is not a whole number of frames", seg.FinalSeconds)
	}
	if seg.FinalSeconds < 3.001 {
		t.Errorf("rounding went down: %.6f", seg.FinalSeconds)
	}
}

func TestReconcileExactFrameBoundaryUnchanged(t *testing.T) {
	seg := &types.Segment{SynthesizedSeconds: 2.0}
	if err := Reconcile([]*types.Segment{seg}); err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}
	if seg.FinalSeconds != 2.0 {
		t.Errorf("on-boundary duration changed: %.6f", seg.FinalSeconds)
	}
}

func TestReconcileRejectsMissingSynthesis(t *testing.T) {
	seg := &types.Segment{Index: 3}
	if err := Reconcile([]*types.Segment{seg}); err == nil {
		t.Fatal("want error for segment without synthesized duration")
	}
}
