package pipeline

import (
	"context"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/pixelforge/pkg/asset"
	"github.com/matzehuels/pixelforge/pkg/dag"
	"github.com/matzehuels/pixelforge/pkg/effect"
	"github.com/matzehuels/pixelforge/pkg/errors"
	"github.com/matzehuels/pixelforge/pkg/observability"
	"github.com/matzehuels/pixelforge/pkg/palette"
	"github.com/matzehuels/pixelforge/pkg/render"
)

// Runner executes builds.
//
// The Runner is stateless apart from its configuration, so one Runner may
// run several builds concurrently.
type Runner struct {
	Logger *log.Logger
	// Workers bounds the number of assets rendered at once.
	Workers int
}

// NewRunner creates a runner. A nil logger means log.Default(); workers
// below 1 means one worker per CPU.
func NewRunner(logger *log.Logger, workers int) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Runner{Logger: logger, Workers: workers}
}

// status tracks the outcome of every asset of one build.
type status struct {
	mu      sync.Mutex
	failed  map[asset.ID]bool
	skipped map[asset.ID]bool
	errs    []error
}

func (s *status) fail(id asset.ID, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed[id] = true
	if err != nil {
		s.errs = append(s.errs, err)
	}
}

// blocked reports whether a dependency of id failed or was skipped.
func (s *status) blocked(g *dag.Graph, id asset.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, dep := range g.Dependencies(id) {
		if s.failed[dep] || s.skipped[dep] {
			return true
		}
	}
	return false
}

func (s *status) report(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = append(s.errs, err)
}

func (s *status) isFailed(id asset.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed[id]
}

func (s *status) skip(id asset.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skipped[id] = true
}

// build is the state of one Build call.
type build struct {
	id     string
	reg    *asset.Registry
	cfg    settings
	shader *asset.Shader
	shapes *render.ShapeRenderer
	store  *Store
	status *status
	logger *log.Logger
}

// Build renders every asset of reg and encodes the artifacts of the
// selected target.
//
// Setup problems (unknown target, shader or palette, an unparsable dither
// name, a dependency cycle) fail the build before anything is rendered and
// return a nil Result. Per-asset failures do not: the returned Result holds
// everything that could be built and the error joins every failure.
func (r *Runner) Build(ctx context.Context, reg *asset.Registry, opts Options) (*Result, error) {
	start := time.Now()
	buildID := uuid.NewString()
	logger := r.logger().With("build", buildID[:8])

	cfg, err := opts.resolve(reg)
	if err != nil {
		return nil, err
	}

	shader, err := asset.FlattenShader(reg.Shaders, cfg.shader)
	if err != nil {
		return nil, err
	}
	if err := effect.Validate(shader.Effects); err != nil {
		return nil, err
	}

	st := &status{failed: make(map[asset.ID]bool), skipped: make(map[asset.ID]bool)}
	palettes, palErr := palette.ResolveAll(reg.Palettes)
	active, ok := palettes[shader.Palette]
	if !ok {
		return nil, errors.Join(
			errors.New(errors.ErrCodeNotFound, "palette %q of shader %q is not available", shader.Palette, shader.Name),
			palErr)
	}
	if palErr != nil {
		st.errs = append(st.errs, palErr)
		for name := range reg.Palettes {
			if _, ok := palettes[name]; !ok {
				st.failed[asset.NewID(asset.KindPalette, name)] = true
			}
		}
	}
	if shader.Variant != "" && !active.HasVariant(shader.Variant) {
		logger.Warn("unknown palette variant, using base colours",
			"palette", active.Name(), "variant", shader.Variant)
	}

	graph := dag.FromRegistry(reg)
	levels, err := graph.Levels()
	if err != nil {
		return nil, err
	}

	b := &build{
		id:     buildID,
		reg:    reg,
		cfg:    cfg,
		shader: shader,
		shapes: render.NewShapeRenderer(reg.Stamps, reg.Brushes, active, shader.Variant),
		store:  NewStore(),
		status: st,
		logger: logger,
	}

	result := &Result{
		BuildID:   buildID,
		Target:    cfg.target,
		Shader:    shader,
		Metadata:  make(map[asset.ID]render.Metadata),
		Artifacts: make(map[string][]byte),
	}
	for _, level := range levels {
		result.Order = append(result.Order, level...)
	}
	result.Stats.Assets = len(result.Order)

	hooks := observability.Build()
	hooks.OnBuildStart(ctx, buildID, cfg.target.Name, len(result.Order))
	logger.Info("building",
		"target", cfg.target.Name,
		"shader", shader.Name,
		"palette", active.Name(),
		"assets", len(result.Order),
		"waves", len(levels))

	for i, level := range levels {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "build cancelled before wave %d", i+1)
		}
		b.runWave(ctx, level, graph, r.workers())
	}

	b.collect(result)
	b.encode(result)

	result.Stats.Duration = time.Since(start)
	result.logSummary(logger)

	err = errors.Join(st.errs...)
	hooks.OnBuildComplete(ctx, buildID, result.Stats.Rendered, result.Stats.Duration, err)
	return result, err
}

// runWave builds the members of one wave concurrently. Members whose
// dependencies failed are skipped.
func (b *build) runWave(ctx context.Context, level []asset.ID, graph *dag.Graph, workers int) {
	var g errgroup.Group
	g.SetLimit(workers)
	for _, id := range level {
		if b.status.isFailed(id) {
			continue
		}
		if b.status.blocked(graph, id) {
			b.status.skip(id)
			b.logger.Warn("skipped", "asset", id, "reason", "dependency failed")
			continue
		}
		g.Go(func() error {
			start := time.Now()
			err := b.buildAsset(id)
			if err != nil {
				b.status.fail(id, err)
				b.logger.Error("failed", "asset", id, "err", err)
			}
			observability.Build().OnAssetComplete(ctx, b.id, id, time.Since(start), err)
			return nil
		})
	}
	_ = g.Wait()
}

// buildAsset builds one asset. Only shapes, prefabs and maps produce
// images; shaders are checked so that their failure skips their dependents.
// Palettes were resolved up front.
func (b *build) buildAsset(id asset.ID) error {
	switch id.Kind {
	case asset.KindShader:
		s, err := asset.FlattenShader(b.reg.Shaders, id.Name)
		if err != nil {
			return err
		}
		return effect.Validate(s.Effects)
	case asset.KindShape:
		return b.renderShape(id)
	case asset.KindPrefab, asset.KindMap:
		return b.renderComposite(id)
	}
	return nil
}

func (b *build) renderShape(id asset.ID) error {
	s := b.reg.Shapes[id.Name]
	img, err := effect.Apply(b.shapes.Render(s), b.shader.Effects)
	if err != nil {
		return err
	}
	b.logger.Debug("rendered", "asset", id, "size", [2]int{img.Width, img.Height})
	return b.store.Publish(id, img, nil)
}

func (b *build) renderComposite(id asset.ID) error {
	c, _ := b.reg.Composite(id)
	cp := &render.Compositor{Rendered: b.store.Lookup(b.reg)}
	img, meta, err := cp.Render(c)
	if err != nil {
		return err
	}
	b.logger.Debug("composited", "asset", id, "size", meta.Size, "pieces", len(meta.Shapes))
	return b.store.Publish(id, img, &meta)
}

// collect copies published images into the result in build order.
func (b *build) collect(result *Result) {
	b.status.mu.Lock()
	defer b.status.mu.Unlock()
	for _, id := range result.Order {
		switch {
		case b.status.failed[id]:
			result.Failed = append(result.Failed, id)
		case b.status.skipped[id]:
			result.Skipped = append(result.Skipped, id)
		}
		img, ok := b.store.Get(id)
		if !ok {
			continue
		}
		result.Images = append(result.Images, Rendered{ID: id, Image: img})
		if meta, ok := b.store.Metadata(id); ok {
			result.Metadata[id] = meta
		}
	}
	result.Stats.Rendered = len(result.Images)
	slices.SortFunc(result.Failed, asset.ID.Compare)
	slices.SortFunc(result.Skipped, asset.ID.Compare)
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}

func (r *Runner) workers() int {
	if r.Workers < 1 {
		return runtime.GOMAXPROCS(0)
	}
	return r.Workers
}
