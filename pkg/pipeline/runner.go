package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/archview/archview/pkg/cache"
	"github.com/archview/archview/pkg/errors"
	"github.com/archview/archview/pkg/observability"
	"github.com/archview/archview/pkg/render/nodelink"
	"github.com/archview/archview/pkg/view"
	"github.com/archview/archview/pkg/workspace"
)

// Runner executes the compose and render pipeline with caching.
// A nil cache disables artifact caching; a nil logger disables logging.
type Runner struct {
	cache  cache.Cache
	logger *log.Logger

	// ArtifactTTL is how long rendered artifacts stay cached. Zero means
	// no expiry, which is safe because artifact keys are content-addressed.
	ArtifactTTL time.Duration
}

// NewRunner creates a pipeline runner with the given cache and logger.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Runner{cache: c, logger: logger}
}

// Close releases the runner's cache resources.
func (r *Runner) Close() error {
	return r.cache.Close()
}

// Compose binds a component view to the container named in opts and fills
// its membership. An existing view for the container is reused and topped
// up rather than rebuilt, so repeated composition is idempotent.
func (r *Runner) Compose(ctx context.Context, ws *workspace.Workspace, opts Options) (*view.ComponentView, error) {
	start := time.Now()

	c, err := ws.FindContainer(opts.Container)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeContainerNotFound, err, "container %q", opts.Container)
	}

	v := ws.ViewForContainer(c.ID())
	if v == nil {
		v, err = ws.AddComponentView(c, opts.Description)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidWorkspace, err, "composing view for container %q", opts.Container)
		}
	}

	observability.Pipeline().OnComposeStart(ctx, v.Name())

	if opts.All {
		v.AddAllElements()
	} else {
		v.AddAllComponents()
	}
	if opts.Expand {
		v.AddDirectDependencies()
	}

	elements := len(v.Elements())
	relationships := len(v.Relationships())
	observability.Pipeline().OnComposeComplete(ctx, v.Name(), elements, relationships, time.Since(start))
	r.debugf("composed view",
		"view", v.Name(),
		"elements", elements,
		"relationships", relationships,
		"expand", opts.Expand,
	)
	return v, nil
}

// Render generates the requested output formats for a composed view.
// SVG and PNG artifacts are content-addressed in the cache: the key is
// derived from the DOT source, so any membership change misses and any
// repeat render hits. Returned map keys are format names.
func (r *Runner) Render(ctx context.Context, v *view.ComponentView, opts Options) (map[string][]byte, error) {
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, v.Name(), opts.Formats)

	dot := nodelink.ToDOT(v, nodelink.Options{Detailed: opts.Detailed})
	viewHash := cache.Hash([]byte(dot))

	artifacts := make(map[string][]byte, len(opts.Formats))
	var renderErr error
	for _, format := range opts.Formats {
		data, err := r.renderFormat(ctx, v, dot, viewHash, format, opts.Namespace)
		if err != nil {
			renderErr = errors.Wrap(errors.ErrCodeRender, err, "rendering %s for view %q", format, v.Name())
			break
		}
		artifacts[format] = data
	}

	observability.Pipeline().OnRenderComplete(ctx, v.Name(), opts.Formats, time.Since(start), renderErr)
	if renderErr != nil {
		return nil, renderErr
	}
	r.debugf("rendered view", "view", v.Name(), "formats", opts.Formats, "duration", time.Since(start))
	return artifacts, nil
}

func (r *Runner) renderFormat(ctx context.Context, v *view.ComponentView, dot, viewHash, format, namespace string) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatJSON:
		return MarshalView(v)
	}

	key := cache.Scoped(namespace, cache.ArtifactKey(viewHash, format))
	if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, "artifact")
		r.debugf("artifact cache hit", "key", key)
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		data, err = nodelink.RenderSVG(dot)
	case FormatPNG:
		data, err = nodelink.RenderPNG(dot)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, data, r.ArtifactTTL); err != nil {
		// Cache failures degrade to a render-every-time pipeline.
		r.debugf("artifact cache set failed", "key", key, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return data, nil
}

func (r *Runner) debugf(msg string, kv ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, kv...)
	}
}
