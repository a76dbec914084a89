package audio

import "testing"

func TestRenderChime(t *testing.T) {
	pcm := renderChime()

	if len(pcm) == 0 {
		t.Fatal("expected rendered samples")
	}
	if len(pcm)%2 != 0 {
		t.Fatalf("expected whole 16-bit samples, got %d bytes", len(pcm))
	}

	// The figure ends in silence so the loop has a pause.
	tail := pcm[len(pcm)-1000:]
	for i, b := range tail {
		if b != 0 {
			t.Fatalf("expected silent tail, byte %d is %d", i, b)
		}
	}
}

func TestChimeRenderedOnce(t *testing.T) {
	a := chime()
	b := chime()

	if &a[0] != &b[0] {
		t.Error("chime should be rendered once and cached")
	}
}
