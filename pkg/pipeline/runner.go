package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/concatimg/pkg/cache"
	"github.com/matzehuels/concatimg/pkg/codec"
	"github.com/matzehuels/concatimg/pkg/concat"
	"github.com/matzehuels/concatimg/pkg/errors"
	"github.com/matzehuels/concatimg/pkg/loader"
	"github.com/matzehuels/concatimg/pkg/observability"
	"github.com/matzehuels/concatimg/pkg/raster"
)

const outputKeyType = "output"

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete key → load → encode → save pipeline.
//
// Cancellation is checked between stages; a decode that has started runs
// to completion. On any error the output path is left untouched.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:  uuid.NewString(),
		Output: opts.Output,
		Format: opts.Format,
	}
	result.Stats.Images = len(opts.Inputs)
	logger := opts.Logger.With("run", result.RunID[:8])

	// Stage 1: Key
	if !opts.NoCache {
		hashStart := time.Now()
		key, err := r.OutputKey(opts)
		if err != nil {
			return nil, fmt.Errorf("hash inputs: %w", err)
		}
		result.CacheInfo.Key = key
		result.Stats.HashTime = time.Since(hashStart)

		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, outputKeyType)
				logger.Debug("cache hit", "key", key[:min(len(key), 24)])
				result.CacheInfo.Hit = true
				if err := r.save(ctx, result, opts.Format, data); err != nil {
					return nil, err
				}
				return result, nil
			}
			observability.Cache().OnCacheMiss(ctx, outputKeyType)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Load
	loadStart := time.Now()
	canvas, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Width, result.Height = canvas.Width(), canvas.Height()
	result.Stats.LoadTime = time.Since(loadStart)

	logger.Info("concatenated images",
		"images", len(opts.Inputs),
		"policy", opts.Policy,
		"width", canvas.Width(),
		"height", canvas.Height())

	// Stage 3: Encode
	encodeStart := time.Now()
	var buf bytes.Buffer
	if err := codec.Encode(&buf, canvas, opts.Format, codec.EncodeOptions{Quality: opts.Quality}); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	result.Stats.EncodeTime = time.Since(encodeStart)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 4: Save
	if err := r.save(ctx, result, opts.Format, buf.Bytes()); err != nil {
		return nil, err
	}

	if result.CacheInfo.Key != "" {
		if err := r.Cache.Set(ctx, result.CacheInfo.Key, buf.Bytes(), cache.TTLOutput); err != nil {
			logger.Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, outputKeyType, buf.Len())
		}
	}

	return result, nil
}

// Load decodes and composites opts.Inputs without touching the cache.
func (r *Runner) Load(ctx context.Context, opts Options) (*raster.Image, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	policy := opts.Policy.String()
	observability.Pipeline().OnLoadStart(ctx, policy, len(opts.Inputs))
	start := time.Now()

	canvas, err := concat.Run(opts.Inputs, opts.Policy, LoaderOptions(opts)...)

	var w, h int
	if canvas != nil {
		w, h = canvas.Width(), canvas.Height()
	}
	observability.Pipeline().OnLoadComplete(ctx, policy, w, h, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return canvas, nil
}

// LoaderOptions translates validated run options into loader options.
func LoaderOptions(opts Options) []loader.Option {
	return []loader.Option{
		loader.WithFormat(opts.pixel),
		loader.WithBackground(opts.background),
		loader.WithWorkers(opts.Workers),
		loader.WithLogger(opts.Logger),
	}
}

// OutputKey hashes every input file and combines the hashes with the
// output options. Input files that cannot be read fail here, before any
// decoding.
func (r *Runner) OutputKey(opts Options) (string, error) {
	hashes := make([]string, len(opts.Inputs))
	for i, in := range opts.Inputs {
		h, err := cache.HashFile(in)
		if err != nil {
			return "", &errors.PathOpenError{Path: in, Cause: err}
		}
		hashes[i] = h
	}
	return r.Keyer.OutputKey(hashes, opts.OutputKeyOpts()), nil
}

// save writes encoded bytes to the output path and records timing.
func (r *Runner) save(ctx context.Context, result *Result, format string, data []byte) error {
	observability.Pipeline().OnSaveStart(ctx, format)
	start := time.Now()
	err := codec.WriteFile(result.Output, data)
	result.Stats.SaveTime = time.Since(start)
	observability.Pipeline().OnSaveComplete(ctx, format, len(data), result.Stats.SaveTime, err)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	result.Bytes = len(data)
	return nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
