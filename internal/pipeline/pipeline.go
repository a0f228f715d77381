// Package pipeline orchestrates a full fact-check run: fetch, extract,
// discover, verify per source, aggregate and score.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mkravets/factlens/internal/cache"
	"github.com/mkravets/factlens/internal/compare"
	"github.com/mkravets/factlens/internal/facts"
	"github.com/mkravets/factlens/internal/llm"
	"github.com/mkravets/factlens/internal/model"
	"github.com/mkravets/factlens/internal/query"
	"github.com/mkravets/factlens/internal/score"
	"github.com/mkravets/factlens/internal/search"
	"github.com/mkravets/factlens/internal/source"
	"github.com/mkravets/factlens/internal/util"
	"github.com/mkravets/factlens/internal/worker"
)

// Searcher is the discovery dependency; search.Multi satisfies it
type Searcher interface {
	SearchAll(ctx context.Context, queries []string, perQuery int) []search.Result
}

// Pipeline runs complete analysis runs
type Pipeline struct {
	cfg        *model.Config
	fetcher    *Fetcher
	provider   llm.Provider
	searcher   Searcher
	classifier *source.Classifier
	filter     source.Filter
	scorer     *score.Scorer
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	log        *logrus.Entry
}

// New assembles a pipeline from configuration
func New(cfg *model.Config) (*Pipeline, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("init llm provider: %w", err)
	}

	var fetchCache cache.Cache = cache.Noop{}
	if cfg.Cache.Enabled {
		fetchCache = cache.NewLayered(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	var clients []search.Client
	if cfg.Search.NewsAPIKey != "" {
		clients = append(clients, search.NewNewsAPI(cfg.Search.NewsAPIKey, cfg.Search.NewsBaseURL, cfg.HTTP.Timeout))
	}
	if cfg.Search.GoogleAPIKey != "" && cfg.Search.GoogleEngineID != "" {
		clients = append(clients, search.NewGoogleCSE(cfg.Search.GoogleAPIKey, cfg.Search.GoogleEngineID, cfg.Search.GoogleBaseURL, cfg.HTTP.Timeout))
	}

	return &Pipeline{
		cfg:        cfg,
		fetcher:    NewFetcher(cfg.HTTP, fetchCache),
		provider:   provider,
		searcher:   search.NewMulti(clients...),
		classifier: source.NewClassifier(),
		filter:     source.NewFilter(cfg.Scoring.RelevanceThreshold),
		scorer:     score.NewScorer(cfg.Scoring),
		robots:     util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout),
		limiter:    worker.NewLimiter(cfg.Concurrency.RequestsPerSec, cfg.Concurrency.RequestBurst),
		log:        logrus.WithField("component", "pipeline"),
	}, nil
}

// AnalyzeURL fact-checks one article and returns the scored report
func (p *Pipeline) AnalyzeURL(ctx context.Context, articleURL string) (*model.ScoredReport, error) {
	runID := uuid.NewString()
	log := p.log.WithFields(logrus.Fields{"run_id": runID, "article": articleURL})
	log.Info("starting analysis")

	doc, err := p.fetcher.FetchWithRetry(ctx, articleURL)
	if err != nil {
		return nil, fmt.Errorf("fetch article: %w", err)
	}

	raw, err := p.provider.ExtractFacts(ctx, doc.Title, doc.Text)
	if err != nil {
		return nil, fmt.Errorf("extract article facts: %w", err)
	}
	hierarchy, err := facts.Parse(model.OriginalSourceID, raw)
	if err != nil {
		return nil, fmt.Errorf("parse article facts: %w", err)
	}
	log.WithFields(logrus.Fields{
		"what_facts": len(hierarchy.WhatFacts),
		"claims":     len(hierarchy.Claims),
	}).Info("extracted fact hierarchy")

	candidates := p.discover(ctx, hierarchy, doc, log)
	outcomes := p.verifySources(ctx, hierarchy, candidates)

	return p.assemble(runID, doc, hierarchy, outcomes), nil
}

// discover builds prioritized queries and turns search hits into deduplicated
// pending sources, capped at the configured maximum.
func (p *Pipeline) discover(ctx context.Context, h model.FactHierarchy, doc *Document, log *logrus.Entry) []model.Source {
	queries := query.Prioritize(h, p.cfg.Analysis.MaxQueries)
	if len(queries) == 0 {
		log.Warn("no queryable facts extracted")
		return nil
	}

	hits := p.searcher.SearchAll(ctx, queries, p.cfg.Search.ResultsPerQuery)
	candidates := make([]model.Source, 0, len(hits))
	for _, hit := range hits {
		candidates = append(candidates, model.Source{
			URL:     hit.URL,
			Domain:  hit.Domain,
			Title:   hit.Title,
			Snippet: hit.Snippet,
			Type:    p.classifier.Classify(hit.URL),
			Status:  model.StatusPending,
		})
	}

	candidates = source.Dedupe(candidates, doc.URL, doc.FinalURL)
	if max := p.cfg.Analysis.MaxSources; max > 0 && len(candidates) > max {
		candidates = candidates[:max]
	}
	log.WithField("candidates", len(candidates)).Info("discovered sources")
	return candidates
}

// verifySources runs per-source verification on the worker pool. Each source
// gets its own timeout so one slow host cannot stall the run.
func (p *Pipeline) verifySources(ctx context.Context, original model.FactHierarchy, candidates []model.Source) []*sourceOutcome {
	if len(candidates) == 0 {
		return nil
	}

	pool := worker.NewPool(p.cfg.Concurrency.SourceWorkers)
	pool.Start()
	for i := range candidates {
		pool.Submit(&sourceJob{
			pipeline: p,
			original: original,
			source:   candidates[i],
			parent:   ctx,
		})
	}

	results := pool.Drain()
	outcomes := make([]*sourceOutcome, len(results))
	for i, res := range results {
		outcomes[i] = res.(*sourceOutcome)
	}
	return outcomes
}

type sourceJob struct {
	pipeline *Pipeline
	original model.FactHierarchy
	source   model.Source
	parent   context.Context
}

type sourceOutcome struct {
	source    model.Source
	breakdown *model.SourceBreakdown
	err       error
}

func (o *sourceOutcome) Err() error { return o.err }

// Execute verifies one source end to end. Failures never abort the run; they
// mark the source fetch_failed and move on.
func (j *sourceJob) Execute(_ context.Context) worker.Result {
	p := j.pipeline
	s := j.source
	log := p.log.WithField("source", s.URL)

	ctx := j.parent
	if t := p.cfg.Analysis.SourceTimeout; t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}

	fail := func(reason string, err error) worker.Result {
		log.WithError(err).Warn(reason)
		s.Status = model.StatusFetchFailed
		s.FailReason = reason
		return &sourceOutcome{source: s}
	}

	if !p.robots.IsAllowed(ctx, s.URL) {
		return fail("disallowed by robots.txt", nil)
	}
	if err := p.limiter.Wait(ctx, s.URL); err != nil {
		return fail("rate limit wait", err)
	}

	doc, err := p.fetcher.FetchWithRetry(ctx, s.URL)
	if err != nil {
		return fail("fetch failed", err)
	}

	raw, err := p.provider.ExtractFacts(ctx, doc.Title, doc.Text)
	if err != nil {
		return fail("extraction failed", err)
	}
	hierarchy, err := facts.Parse(s.URL, raw)
	if err != nil {
		return fail("malformed extraction", err)
	}
	s.Hierarchy = &hierarchy

	cmp, err := p.provider.CompareFacts(ctx, j.original, hierarchy)
	if err != nil {
		return fail("comparison failed", err)
	}

	relevance := source.NormalizeRelevance(cmp.Relevance)
	if !p.filter.Apply(&s, relevance) {
		log.WithField("relevance", relevance).Info("source filtered")
		return &sourceOutcome{source: s}
	}
	s.Verdicts = cmp.Verdicts

	agg, err := compare.Aggregate(cmp.Verdicts, j.original.ComparableCount())
	if err != nil {
		return fail("verdict aggregation rejected", err)
	}

	s.Status = model.StatusAnalyzed
	return &sourceOutcome{
		source: s,
		breakdown: &model.SourceBreakdown{
			URL:            s.URL,
			Domain:         s.Domain,
			Type:           s.Type,
			Status:         model.StatusAnalyzed,
			RelevanceScore: s.RelevanceScore,
			AgreementRatio: agg.AgreementRatio,
			LowSignal:      agg.LowSignal,
			Matched:        agg.Matched,
			Conflicting:    agg.Conflicting,
		},
	}
}

// assemble folds the per-source outcomes into the final report
func (p *Pipeline) assemble(runID string, doc *Document, h model.FactHierarchy, outcomes []*sourceOutcome) *model.ScoredReport {
	var analyzed []model.SourceBreakdown
	var filtered, failed int
	breakdowns := make([]model.SourceBreakdown, 0, len(outcomes))

	for _, o := range outcomes {
		switch o.source.Status {
		case model.StatusAnalyzed:
			analyzed = append(analyzed, *o.breakdown)
			breakdowns = append(breakdowns, *o.breakdown)
		case model.StatusFiltered:
			filtered++
			breakdowns = append(breakdowns, model.SourceBreakdown{
				URL:            o.source.URL,
				Domain:         o.source.Domain,
				Type:           o.source.Type,
				Status:         o.source.Status,
				RelevanceScore: o.source.RelevanceScore,
			})
		default:
			failed++
			breakdowns = append(breakdowns, model.SourceBreakdown{
				URL:    o.source.URL,
				Domain: o.source.Domain,
				Type:   o.source.Type,
				Status: model.StatusFetchFailed,
			})
		}
	}

	result := p.scorer.Calculate(analyzed)

	// Calculate fills reliability weights into its input; copy them back to
	// the rendered breakdowns.
	weighted := make(map[string]float64, len(analyzed))
	for _, b := range analyzed {
		weighted[b.URL] = b.ReliabilityWeight
	}
	for i := range breakdowns {
		if w, ok := weighted[breakdowns[i].URL]; ok {
			breakdowns[i].ReliabilityWeight = w
		}
	}

	report := &model.ScoredReport{
		RunID:             runID,
		ArticleURL:        doc.URL,
		ArticleTitle:      doc.Title,
		GeneratedAt:       time.Now().UTC(),
		OverallScore:      result.Overall,
		ConfidenceLevel:   result.Confidence,
		SourcesConsidered: len(analyzed),
		SourcesFiltered:   filtered,
		SourcesFailed:     failed,
		Summary:           result.Summary,
		Recommendations:   result.Recommendations,
		Facts:             h,
		Sources:           breakdowns,
	}

	if s, ok := report.DisplayScore(); ok {
		p.log.WithFields(logrus.Fields{"run_id": runID, "score": s, "confidence": result.Confidence}).Info("analysis complete")
	} else {
		p.log.WithField("run_id", runID).Info("analysis complete: unverifiable")
	}
	return report
}
