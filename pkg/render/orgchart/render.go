package orgchart

import (
	"bytes"
	"context"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/orgchart/pkg/errors"
)

// pngMagic is the signature every PNG file starts with.
var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// RenderPNG lays out DOT source with the Graphviz dot engine and rasterizes
// it to PNG. Graphviz runs in-process; no external binary is needed.
//
// Failures carry the code RENDER_ENGINE and wrap an [errors.EngineError]
// naming the stage that failed.
func RenderPNG(ctx context.Context, src []byte) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, engineError("init", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(src)
	if err != nil {
		return nil, engineError("parse", err)
	}
	defer g.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.PNG, &buf); err != nil {
		return nil, engineError("render", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		return nil, engineError("render", errors.New(errors.ErrCodeInternal, "engine produced %d bytes without PNG signature", buf.Len()))
	}
	return buf.Bytes(), nil
}

// IsPNG reports whether data starts with the PNG signature.
func IsPNG(data []byte) bool {
	return bytes.HasPrefix(data, pngMagic)
}

func engineError(stage string, err error) error {
	return errors.Wrap(errors.ErrCodeRenderEngine, &errors.EngineError{Stage: stage, Err: err}, "render png")
}
