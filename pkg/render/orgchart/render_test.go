package orgchart

import (
	"context"
	"testing"

	"github.com/matzehuels/orgchart/pkg/errors"
)

func TestRenderPNG(t *testing.T) {
	chart := Build(chain(5), WithName("BfDI"))

	png, err := RenderPNG(context.Background(), chart.Graph.Bytes())
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	if !IsPNG(png) {
		t.Errorf("RenderPNG() output lacks PNG signature (%d bytes)", len(png))
	}
}

func TestRenderPNGInvalidDOT(t *testing.T) {
	_, err := RenderPNG(context.Background(), []byte(`not valid DOT {{{`))
	if err == nil {
		t.Fatal("RenderPNG() should return error for invalid DOT")
	}
	if !errors.Is(err, errors.ErrCodeRenderEngine) {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeRenderEngine)
	}
}

func TestRenderPNGCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := RenderPNG(ctx, Build(chain(1)).Graph.Bytes()); err == nil {
		t.Error("RenderPNG() should fail on a cancelled context")
	}
}

func TestIsPNG(t *testing.T) {
	if IsPNG([]byte("GIF89a")) {
		t.Error("IsPNG(GIF) = true")
	}
	if !IsPNG(append([]byte("\x89PNG\r\n\x1a\n"), 0, 0)) {
		t.Error("IsPNG(PNG) = false")
	}
}
