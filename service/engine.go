// Package service 组装推荐引擎：模型代管理、五个推荐操作、重训编排。
package service

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/rushteam/stayrec/core"
	"github.com/rushteam/stayrec/filter"
	"github.com/rushteam/stayrec/model"
	"github.com/rushteam/stayrec/pipeline"
	"github.com/rushteam/stayrec/popularity"
	"github.com/rushteam/stayrec/profile"
	"github.com/rushteam/stayrec/rank"
	"github.com/rushteam/stayrec/recall"
	"github.com/rushteam/stayrec/rerank"
	"github.com/rushteam/stayrec/store"
)

// Options 是引擎的行为参数。零值字段取缺省。
type Options struct {
	Weights             rank.Weights
	MaxFeatures         int
	RecallTimeout       time.Duration
	DiversityMaxPerType int
}

// Engine 持有当前模型代并执行五个推荐操作。
//
// 模型代换代用 atomic.Pointer：请求路径永远读到完整的一代，
// 重训在后台拟合新代，成功后一次性替换指针。重训失败保留旧代继续服务。
type Engine struct {
	docs      core.DocStore
	artifacts *store.Artifacts
	opts      Options

	content atomic.Pointer[model.ContentModel]
	collab  atomic.Pointer[model.CollabModel]

	scorer   *popularity.Scorer
	builder  *profile.Builder
	trending *store.TrendingCache

	// retrainMu 串行化重训：同一时刻最多一次拟合在跑
	retrainMu sync.Mutex

	log     zerolog.Logger
	metrics *Metrics
}

// NewEngine 构造引擎。artifacts 可为 nil（工件不持久化）。
func NewEngine(docs core.DocStore, artifacts *store.Artifacts, opts Options, log zerolog.Logger) *Engine {
	if opts.Weights == (rank.Weights{}) {
		opts.Weights = rank.DefaultWeights()
	}
	if opts.MaxFeatures <= 0 {
		opts.MaxFeatures = 1000
	}
	e := &Engine{
		docs:      docs,
		artifacts: artifacts,
		opts:      opts,
		scorer:    popularity.NewScorer(docs),
		builder:   profile.NewBuilder(docs),
		log:       log,
		metrics:   NewMetrics(),
	}
	if artifacts != nil {
		e.trending = store.NewTrendingCache(artifacts.Store, 0)
	}
	return e
}

// Metrics 暴露引擎的 Prometheus 指标集。
func (e *Engine) Metrics() *Metrics { return e.metrics }

// Ready 判断是否至少有一个内容模型代在服务。健康检查用。
func (e *Engine) Ready() bool {
	return e.content.Load() != nil
}

// ContentModel 返回当前内容模型代，可能为 nil。
func (e *Engine) ContentModel() *model.ContentModel { return e.content.Load() }

// CollabModel 返回当前协同过滤模型代，可能为 nil。
func (e *Engine) CollabModel() *model.CollabModel { return e.collab.Load() }

// LoadArtifacts 启动时尝试从工件存储还原模型代。
// 快照不存在不算错误（首次启动走冷训练）。
func (e *Engine) LoadArtifacts(ctx context.Context) error {
	if e.artifacts == nil {
		return nil
	}
	cm, err := e.artifacts.LoadContent(ctx)
	if err != nil && !core.IsStoreNotFound(err) {
		return err
	}
	if cm != nil {
		e.content.Store(cm)
		e.log.Info().Int("hotels", cm.Len()).Time("fitted_at", cm.FittedAt).Msg("content model restored from artifacts")
	}
	km, err := e.artifacts.LoadCollab(ctx)
	if err != nil && !core.IsStoreNotFound(err) {
		return err
	}
	if km != nil {
		e.collab.Store(km)
		e.log.Info().Int("users", km.Len()).Time("fitted_at", km.FittedAt).Msg("collab model restored from artifacts")
	}
	return nil
}

// Recommend 个性化推荐：三路信号融合 + 硬约束过滤 + Top-N。
//
// 冷启动（画像为空且用户不在交互矩阵）直接短路到热门兜底，
// 不浪费两路模型调用。部分信号源失败时带着幸存信号降级返回。
func (e *Engine) Recommend(ctx context.Context, userID core.UserID, limit int, criteria *core.Criteria) (*core.Result, error) {
	start := time.Now()
	if userID == "" {
		return core.InputErrorResult("userId is required"), nil
	}
	if limit <= 0 {
		limit = 10
	}

	fnode, err := filter.FromCriteria(criteria)
	if err != nil {
		return core.InputErrorResult("invalid rule: " + err.Error()), nil
	}

	rctx := &core.RecommendContext{UserID: userID, Limit: limit, Criteria: criteria}

	// 画像构建失败按"无画像"降级：剩余信号继续服务，不升级成硬错误
	query, err := e.builder.BuildQuery(ctx, userID)
	profileFailed := err != nil
	if profileFailed {
		e.log.Warn().Err(err).Str("user", string(userID)).Msg("profile build failed, continuing without profile")
		query = ""
	}
	km := e.collab.Load()
	coldStart := query == "" && (km == nil || !km.HasUser(userID))
	if coldStart {
		items, err := e.fallback(ctx, rctx, fnode)
		if err != nil {
			return nil, err
		}
		reason := "cold_start"
		if profileFailed {
			reason = "profile_unavailable"
		}
		e.observe("recommend", core.StatusDegraded, start)
		e.log.Info().Str("user", string(userID)).Int("count", len(items)).Msg("cold start fallback")
		return core.DegradedResult(items, reason), nil
	}

	nodes := []pipeline.Node{
		&recall.Fanout{
			Timeout: e.opts.RecallTimeout,
			Sources: []recall.Source{
				&recall.ContentRecall{Model: e.content.Load, Profile: e.builder},
				&recall.CollabRecall{Model: e.collab.Load},
			},
		},
		&rank.Hybrid{Weights: e.opts.Weights, Scorer: e.scorer, Store: e.docs},
		fnode,
	}
	if e.opts.DiversityMaxPerType > 0 {
		nodes = append(nodes, &rerank.Diversity{MaxPerType: e.opts.DiversityMaxPerType})
	}
	nodes = append(nodes, &rerank.TopNNode{N: limit})

	items, err := (&pipeline.Pipeline{Nodes: nodes}).Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}

	if lbl, ok := rctx.GetLabel(recall.DegradedLabel); ok {
		e.observe("recommend", core.StatusDegraded, start)
		e.log.Warn().Str("user", string(userID)).Str("sources", lbl.Value).Msg("recall degraded")
		return core.DegradedResult(items, "recall_failed:"+lbl.Value), nil
	}
	if lbl, ok := rctx.GetLabel(rank.DegradedLabel); ok {
		e.observe("recommend", core.StatusDegraded, start)
		e.log.Warn().Str("user", string(userID)).Str("hotels", lbl.Value).Msg("rank hotel lookup degraded")
		return core.DegradedResult(items, "hotel_lookup_failed"), nil
	}

	// 两路召回都没有信号（比如画像全是词表外 token）也走热门兜底
	if len(items) == 0 {
		items, err = e.fallback(ctx, rctx, fnode)
		if err != nil {
			return nil, err
		}
		e.observe("recommend", core.StatusDegraded, start)
		return core.DegradedResult(items, "no_signal"), nil
	}

	if profileFailed {
		e.observe("recommend", core.StatusDegraded, start)
		return core.DegradedResult(items, "profile_unavailable"), nil
	}

	e.observe("recommend", core.StatusOK, start)
	return core.OKResult(items), nil
}

// fallback 热门兜底列表，仍然经过请求约束过滤与截断。
func (e *Engine) fallback(ctx context.Context, rctx *core.RecommendContext, fnode *filter.FilterNode) ([]*core.Item, error) {
	p := &pipeline.Pipeline{Nodes: []pipeline.Node{
		&recall.Fanout{Sources: []recall.Source{&recall.PopularRecall{Scorer: e.scorer}}},
		fnode,
		&rerank.TopNNode{N: rctx.Limit},
	}}
	return p.Run(ctx, rctx, nil)
}

// Similar 同款推荐：返回与指定酒店内容最相似的酒店。
// 酒店不在当前模型代里时返回空列表（ok），不报错。
func (e *Engine) Similar(ctx context.Context, hotelID core.HotelID, limit int) (*core.Result, error) {
	start := time.Now()
	if hotelID == "" {
		return core.InputErrorResult("hotelId is required"), nil
	}
	if limit <= 0 {
		limit = 10
	}

	m := e.content.Load()
	if m == nil {
		e.observe("similar", core.StatusDegraded, start)
		return core.DegradedResult(nil, "model_not_fitted"), nil
	}

	scored := m.SimilarTo(hotelID, limit)
	items := make([]*core.Item, 0, len(scored))
	for _, s := range scored {
		hotel, err := e.docs.GetHotel(ctx, s.HotelID)
		if core.IsStoreNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		it := core.NewItem(s.HotelID)
		it.Hotel = hotel
		it.Score = s.Score
		it.Components.Content = s.Score
		it.Components.HasContent = true
		it.AddReason(rank.ReasonContent)
		items = append(items, it)
	}

	e.observe("similar", core.StatusOK, start)
	return core.OKResult(items), nil
}

// Trending 趋势榜：近 7 天交互聚合。先 2x 超采再做城市过滤，
// 避免城市约束把榜单掏空。
func (e *Engine) Trending(ctx context.Context, limit int, city string) (*core.Result, error) {
	start := time.Now()
	if limit <= 0 {
		limit = 10
	}

	// 缓存的是城市过滤之前的聚合结果，不同城市共享同一份榜单。
	overFetch := limit * 2
	entries, cached := e.cachedTrending(ctx, overFetch)
	if !cached {
		var err error
		entries, err = e.scorer.Trending(ctx, overFetch)
		if err != nil {
			return nil, err
		}
		if e.trending != nil {
			if err := e.trending.Put(ctx, overFetch, entries); err != nil {
				e.log.Warn().Err(err).Msg("trending cache write failed")
			}
		}
	}

	items := make([]*core.Item, 0, len(entries))
	var lookupFailed bool
	for _, entry := range entries {
		hotel, err := e.docs.GetHotel(ctx, entry.HotelID)
		if core.IsStoreNotFound(err) {
			continue
		}
		if err != nil {
			// 单个快照读取失败不打挂整个榜单
			e.log.Warn().Err(err).Str("hotel", string(entry.HotelID)).Msg("trending hotel lookup failed")
			lookupFailed = true
			continue
		}
		if city != "" && !strings.EqualFold(hotel.City, city) {
			continue
		}
		it := core.NewItem(entry.HotelID)
		it.Hotel = hotel
		it.Score = entry.Score
		it.Meta["interactions"] = entry.Interactions
		it.Meta["uniqueUsers"] = entry.UniqueUsers
		it.AddReason(rank.ReasonTrending)
		items = append(items, it)
		if len(items) >= limit {
			break
		}
	}

	if lookupFailed {
		e.observe("trending", core.StatusDegraded, start)
		return core.DegradedResult(items, "hotel_lookup_failed"), nil
	}
	e.observe("trending", core.StatusOK, start)
	return core.OKResult(items), nil
}

func (e *Engine) cachedTrending(ctx context.Context, n int) ([]popularity.TrendingEntry, bool) {
	if e.trending == nil {
		return nil, false
	}
	return e.trending.Get(ctx, n)
}

// AnalyzeProfile 返回用户画像分析。
func (e *Engine) AnalyzeProfile(ctx context.Context, userID core.UserID) (*profile.Analysis, error) {
	if userID == "" {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput, "userId is required")
	}
	return e.builder.Analyze(ctx, userID)
}

// Check 暴露存储连通性（健康检查用）。
func (e *Engine) Check(ctx context.Context) error {
	_, err := e.docs.ListHotels(ctx)
	return err
}
