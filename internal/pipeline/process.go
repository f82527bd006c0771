package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"recipegraph/internal"
	"recipegraph/internal/aggregate"
	"recipegraph/internal/classify"
	"recipegraph/internal/config"
	"recipegraph/internal/dom"
	"recipegraph/internal/extract"
	"recipegraph/internal/resolve"
)

type Runner struct {
	cfg        config.Config
	rules      config.Rules
	loader     Loader
	classifier *classify.Classifier
	registry   *extract.Registry
	resolver   *resolve.Resolver
	log        *slog.Logger
}

func NewRunner(cfg config.Config, rules config.Rules, loader Loader, log *slog.Logger) (*Runner, error) {
	classifier, err := classify.New(rules)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Runner{
		cfg:        cfg,
		rules:      rules,
		loader:     loader,
		classifier: classifier,
		registry:   extract.Default(),
		resolver:   resolve.New(cfg.MaxExpansions),
		log:        log,
	}, nil
}

type RunResult struct {
	Summary         internal.RunSummary
	Items           []*internal.Item
	Transformations []internal.Transformation
}

type pageResult struct {
	missing         bool
	elements        int
	excluded        int
	malformed       int
	drafts          int
	warnings        int
	transformations []internal.Transformation
}

// Run processes pages in parallel and aggregates the results in page order
// once every page is done. Nil pages means every page named by the rules.
func (r *Runner) Run(ctx context.Context, pages []string) (RunResult, error) {
	if pages == nil {
		pages = r.rules.Pages()
	}
	summary := internal.RunSummary{ID: uuid.NewString(), StartedAt: time.Now(), Pages: len(pages)}
	r.log.Info("run started", "run", summary.ID, "pages", len(pages), "workers", r.cfg.Workers)

	results := make([]pageResult, len(pages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for i, page := range pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.processPage(page)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return RunResult{}, err
	}

	agg := aggregate.New()
	for _, res := range results {
		if res.missing {
			summary.MissingPages++
		}
		summary.Elements += res.elements
		summary.Excluded += res.excluded
		summary.Malformed += res.malformed
		summary.Drafts += res.drafts
		summary.Warnings += res.warnings
		agg.Add(res.transformations...)
	}
	items, ts := agg.Result()
	summary.Items = len(items)
	summary.Transformations = len(ts)
	summary.Duplicates = agg.Duplicates
	summary.FinishedAt = time.Now()

	r.log.Info("run finished",
		"run", summary.ID,
		"items", summary.Items,
		"transformations", summary.Transformations,
		"excluded", summary.Excluded,
		"warnings", summary.Warnings,
		"elapsed", summary.FinishedAt.Sub(summary.StartedAt).String(),
	)
	return RunResult{Summary: summary, Items: items, Transformations: ts}, nil
}

func (r *Runner) processPage(page string) pageResult {
	var res pageResult
	doc, err := r.loader.Load(page)
	if err != nil {
		res.missing = true
		res.warnings++
		r.log.Warn("page skipped", "page", page, "reason", err)
		return res
	}

	for _, src := range r.rules.SourcesFor(page) {
		t, err := internal.ParseTransformationType(src.Type)
		if err != nil {
			continue
		}
		ex, ok := r.registry.ForType(t)
		if !ok {
			continue
		}
		selector := src.Selector
		if selector == "" {
			selector = ex.Selector()
		}
		for _, h := range doc.Find(selector) {
			r.processElement(&res, doc, page, ex, h)
		}
	}
	return res
}

func (r *Runner) processElement(res *pageResult, doc *dom.Document, page string, ex extract.Extractor, h dom.Handle) {
	res.elements++
	sec := r.classifier.Classify(doc, h)
	if sec.Excluded {
		res.excluded++
		r.log.Debug("element excluded", "page", page, "type", ex.Type(), "heading", sec.ExcludedBy)
		return
	}

	el := extract.Element{Doc: doc, Handle: h, Page: page, Category: sec.Category, BaseURL: r.cfg.WikiBaseURL}
	if len(sec.Headings) > 0 {
		el.Heading = sec.Headings[0].Text
	}

	drafts, err := ex.Extract(el)
	if err != nil {
		if errors.Is(err, internal.ErrMalformed) {
			res.malformed++
		}
		res.warnings++
		r.log.Warn("element skipped", "page", page, "type", ex.Type(), "reason", err)
	}

	for _, d := range drafts {
		res.drafts++
		out := r.resolver.Resolve(d)
		for _, w := range out.Warnings {
			res.warnings++
			r.log.Warn("draft resolution", "page", page, "type", d.Type, "reason", w)
		}
		res.transformations = append(res.transformations, out.Transformations...)
	}
}
