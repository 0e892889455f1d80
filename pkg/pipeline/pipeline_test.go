package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orgchart/pkg/cache"
	"github.com/matzehuels/orgchart/pkg/errors"
	pkgio "github.com/matzehuels/orgchart/pkg/io"
	"github.com/matzehuels/orgchart/pkg/observability"
)

const sampleDoc = `{
  "data": {
    "organisationEntity": {
      "id": "R",
      "name": "Root",
      "children": [
        {"id": "B", "name": "Bravo", "children": [
          {"id": "B1", "name": "Bravo Eins", "children": [
            {"id": "B11", "name": "Bravo Elf", "children": [
              {"id": "B111", "name": "Tief"}
            ]}
          ]}
        ]},
        {"id": "A", "name": "Alpha", "shortName": "A1", "reverseClaims": [
          {"claimType": {"name": "headOf"}, "entity": {"position": "Leiterin", "name": "Erika"}}
        ]}
      ]
    }
  }
}`

var fakePNG = append([]byte("\x89PNG\r\n\x1a\n"), "fake"...)

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "organigramm.json")
	if err := os.WriteFile(path, []byte(sampleDoc), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// fakeRunner returns a runner whose renderer counts calls instead of
// invoking Graphviz.
func fakeRunner(c cache.Cache) (*Runner, *int) {
	r := NewRunner(c, nil)
	calls := 0
	r.render = func(ctx context.Context, src []byte) ([]byte, error) {
		calls++
		return fakePNG, nil
	}
	return r, &calls
}

func TestValidateAndSetDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if o.Input != DefaultInput || o.OutputDir != DefaultOutputDir || o.Name != DefaultName {
		t.Errorf("defaults = %+v", o)
	}
	if o.Sort != DefaultSort || o.JointDepth != 3 {
		t.Errorf("Sort = %q, JointDepth = %d", o.Sort, o.JointDepth)
	}
	if got, want := o.PNGPath(), filepath.Join("output", "BfDI.gv.png"); got != want {
		t.Errorf("PNGPath() = %q, want %q", got, want)
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad sort", Options{Sort: "size"}, errors.ErrCodeInvalidInput},
		{"negative depth", Options{JointDepth: -1}, errors.ErrCodeInvalidInput},
		{"path in name", Options{Name: "../x"}, errors.ErrCodeInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestRun(t *testing.T) {
	out := t.TempDir()
	r, calls := fakeRunner(cache.NewNullCache())

	result, err := r.Run(context.Background(), Options{
		Input:     writeSample(t),
		OutputDir: out,
		Comment:   DefaultComment,
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if *calls != 1 {
		t.Errorf("render calls = %d, want 1", *calls)
	}

	if result.Paths.DOT != filepath.Join(out, "BfDI.gv") || result.Paths.PNG != filepath.Join(out, "BfDI.gv.png") {
		t.Errorf("Paths = %+v", result.Paths)
	}
	dot, err := os.ReadFile(result.Paths.DOT)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(dot, result.DOT) {
		t.Error("written DOT differs from result DOT")
	}
	png, _ := os.ReadFile(result.Paths.PNG)
	if !bytes.Equal(png, fakePNG) {
		t.Error("written PNG differs from rendered PNG")
	}

	text := string(result.DOT)
	for _, want := range []string{
		"// " + DefaultComment,
		"digraph BfDI {",
		"R [label=Root]",
		`A [label=<<B>A1</B><BR/>Alpha<BR/><BR/>Leiterin Erika>]`,
		"B11 -> B11_B111_intermediate",
		"B11_B111_intermediate -> B111",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("DOT missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "B11 -> B111") {
		t.Error("depth 3 edge should be routed through a joint")
	}

	// name order puts "A1Alpha" before "Bravo"
	if strings.Index(text, "\tA [") > strings.Index(text, "\tB [") {
		t.Error("siblings should be sorted by short name")
	}

	if result.Stats.Joints != 1 {
		t.Errorf("Joints = %d, want 1", result.Stats.Joints)
	}
	if result.Stats.Nodes != 7 {
		t.Errorf("Nodes = %d, want 7", result.Stats.Nodes)
	}
	if result.Stats.Vacant != 4 {
		t.Errorf("Vacant = %d, want 4", result.Stats.Vacant)
	}
}

func TestRunSourceOrder(t *testing.T) {
	r, _ := fakeRunner(nil)

	result, err := r.Run(context.Background(), Options{
		Input:   writeSample(t),
		Sort:    "source",
		NoWrite: true,
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	text := string(result.DOT)
	if strings.Index(text, "\tB [") > strings.Index(text, "\tA [") {
		t.Error("source order should keep Bravo before Alpha")
	}
	if result.Paths != (Paths{}) {
		t.Errorf("NoWrite should not write files: %+v", result.Paths)
	}
}

// unitLines returns the per-unit debug lines from text log output.
func unitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		msg, ok := strings.CutPrefix(line, "DEBU ")
		if ok && strings.HasSuffix(msg, ")") {
			lines = append(lines, msg)
		}
	}
	return lines
}

func TestBuildLogsUnits(t *testing.T) {
	root, err := pkgio.ReadJSON(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		sort string
		want []string
	}{
		{"name", []string{
			"R Root ()",
			"A Alpha (A1)",
			"B Bravo ()",
			"B1 Bravo Eins ()",
			"B11 Bravo Elf ()",
			"B111 Tief ()",
		}},
		{"source", []string{
			"R Root ()",
			"B Bravo ()",
			"B1 Bravo Eins ()",
			"B11 Bravo Elf ()",
			"B111 Tief ()",
			"A Alpha (A1)",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			var buf bytes.Buffer
			r := NewRunner(nil, log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
			if _, err := r.Build(root, Options{Sort: tt.sort, NoWrite: true}); err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			if got := unitLines(buf.String()); !slices.Equal(got, tt.want) {
				t.Errorf("unit lines = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildLogsNothingAtInfo(t *testing.T) {
	root, err := pkgio.ReadJSON(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	r := NewRunner(nil, log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel}))
	if _, err := r.Build(root, Options{}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("Build() at info level logged %q", buf.String())
	}
}

func TestRunIdempotent(t *testing.T) {
	r, _ := fakeRunner(nil)
	opts := Options{Input: writeSample(t), NoWrite: true}

	first, err := r.Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.DOT, second.DOT) {
		t.Error("repeated runs should produce identical DOT")
	}
}

func TestRunCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r, calls := fakeRunner(c)
	opts := Options{Input: writeSample(t), NoWrite: true}

	first, err := r.Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached {
		t.Error("first run should miss the cache")
	}

	second, err := r.Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached {
		t.Error("second run should hit the cache")
	}
	if *calls != 1 {
		t.Errorf("render calls = %d, want 1", *calls)
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte(`{"data": {}}`), 0644)
	style := filepath.Join(dir, "style.toml")
	os.WriteFile(style, []byte("[cluster]\ncolor = \"red\"\n"), 0644)

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"missing input", Options{Input: filepath.Join(dir, "nope.json")}, errors.ErrCodeFileNotFound},
		{"malformed input", Options{Input: bad}, errors.ErrCodeMalformedInput},
		{"bad style", Options{Input: writeSample(t), StylePath: style}, errors.ErrCodeInvalidConfig},
	}

	r, calls := fakeRunner(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.NoWrite = true
			_, err := r.Run(context.Background(), tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
	if *calls != 0 {
		t.Errorf("failed runs should not render, got %d calls", *calls)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r, calls := fakeRunner(nil)

	_, err := r.Run(ctx, Options{Input: writeSample(t), NoWrite: true})
	if err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if *calls != 0 {
		t.Error("cancelled run should not render")
	}
}

func TestRunGraphviz(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Graphviz render in short mode")
	}
	r := NewRunner(nil, nil)

	result, err := r.Run(context.Background(), Options{Input: writeSample(t), OutputDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !bytes.HasPrefix(result.PNG, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks
	events []string
}

func (h *recordingHooks) OnLoadComplete(_ context.Context, _ string, entities int, _ time.Duration, err error) {
	h.events = append(h.events, fmt.Sprintf("load %d %v", entities, err == nil))
}

func (h *recordingHooks) OnBuildComplete(_ context.Context, name string, nodes, _, joints int, _ time.Duration) {
	h.events = append(h.events, fmt.Sprintf("build %s %d %d", name, nodes, joints))
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, format string, size int, _ time.Duration, _ error) {
	h.events = append(h.events, fmt.Sprintf("render %s %d", format, size))
}

func (h *recordingHooks) OnCacheHit(context.Context, string)  { h.events = append(h.events, "hit") }
func (h *recordingHooks) OnCacheMiss(context.Context, string) { h.events = append(h.events, "miss") }
func (h *recordingHooks) OnCacheSet(_ context.Context, _ string, size int) {
	h.events = append(h.events, fmt.Sprintf("set %d", size))
}

func TestRunHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	c, _ := cache.NewFileCache(t.TempDir())
	r, _ := fakeRunner(c)
	opts := Options{Input: writeSample(t), NoWrite: true}
	for range 2 {
		if _, err := r.Run(context.Background(), opts); err != nil {
			t.Fatal(err)
		}
	}

	size := len(fakePNG)
	want := []string{
		"load 6 true", "build BfDI 7 1", "miss", fmt.Sprintf("render png %d", size), fmt.Sprintf("set %d", size),
		"load 6 true", "build BfDI 7 1", "hit",
	}
	if !slices.Equal(hooks.events, want) {
		t.Errorf("events = %q\nwant     %q", hooks.events, want)
	}
}

func TestRunExample(t *testing.T) {
	r, _ := fakeRunner(nil)

	result, err := r.Run(context.Background(), Options{
		Input:     filepath.Join("..", "..", "examples", "organigramm.json"),
		StylePath: filepath.Join("..", "..", "examples", "style.toml"),
		NoWrite:   true,
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	text := string(result.DOT)
	for _, want := range []string{
		`node [shape=box width=4.3 height=0.6 fontname=Helvetica color="#4a4a4a"]`,
		`<B>Z 1</B><BR/>Referat Z 1,<BR/>Personal,<BR/>Haushalt<BR/><BR/>NN`,
		`"T3JnOjIxMQ==" -> "xMQ==_xMTE=_intermediate"`,
		`"xMQ==_xMTE=_intermediate" -> "xMQ==_xMTI=_intermediate"`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("DOT missing %q:\n%s", want, text)
		}
	}
	if result.Stats.Joints != 2 {
		t.Errorf("Joints = %d, want 2", result.Stats.Joints)
	}
}
