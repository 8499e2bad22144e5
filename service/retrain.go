package service

import (
	"context"
	"time"

	"github.com/rushteam/stayrec/core"
	"github.com/rushteam/stayrec/model"
)

// RetrainScope 指定重训哪些模型族。
type RetrainScope string

const (
	ScopeAll           RetrainScope = "all"
	ScopeContent       RetrainScope = "content"
	ScopeCollaborative RetrainScope = "collaborative"
)

// ParseScope 解析重训范围，空串按 all 处理。
func ParseScope(s string) (RetrainScope, error) {
	switch RetrainScope(s) {
	case "", ScopeAll:
		return ScopeAll, nil
	case ScopeContent:
		return ScopeContent, nil
	case ScopeCollaborative:
		return ScopeCollaborative, nil
	}
	return "", core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput,
		"scope must be one of all/content/collaborative")
}

// FamilyReport 是单个模型族的重训结果。
type FamilyReport struct {
	Status   string    `json:"status"` // ok / failed / skipped
	Size     int       `json:"size"`   // 内容模型：酒店数；协同模型：用户数
	FittedAt time.Time `json:"fittedAt,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// RetrainReport 是一次重训的汇总：两个模型族各自独立成败。
type RetrainReport struct {
	Content  FamilyReport  `json:"content"`
	Collab   FamilyReport  `json:"collab"`
	Duration time.Duration `json:"-"`
}

// Retrain 按范围重训模型族，成功的族原子换代，失败的族保留旧代。
//
// 内容模型失败不影响协同模型换代，反之亦然。整个过程请求路径
// 始终在旧代上服务，换代点之外没有中间状态。并发调用串行执行。
func (e *Engine) Retrain(ctx context.Context, scope RetrainScope) (*RetrainReport, error) {
	e.retrainMu.Lock()
	defer e.retrainMu.Unlock()

	start := time.Now()
	report := &RetrainReport{
		Content: FamilyReport{Status: "skipped"},
		Collab:  FamilyReport{Status: "skipped"},
	}

	if scope == ScopeAll || scope == ScopeContent {
		report.Content = e.retrainContent(ctx)
	}
	if scope == ScopeAll || scope == ScopeCollaborative {
		report.Collab = e.retrainCollab(ctx)
	}

	report.Duration = time.Since(start)
	e.metrics.RetrainDuration.Observe(report.Duration.Seconds())
	e.log.Info().
		Str("content", report.Content.Status).
		Str("collab", report.Collab.Status).
		Dur("duration", report.Duration).
		Msg("retrain finished")
	return report, nil
}

func (e *Engine) retrainContent(ctx context.Context) FamilyReport {
	hotels, err := e.docs.ListHotels(ctx)
	if err != nil {
		e.metrics.RetrainTotal.WithLabelValues("content", "failed").Inc()
		e.log.Error().Err(err).Msg("content retrain: list hotels")
		return FamilyReport{Status: "failed", Error: err.Error()}
	}
	if len(hotels) == 0 {
		e.metrics.RetrainTotal.WithLabelValues("content", "skipped").Inc()
		return FamilyReport{Status: "skipped", Error: "no hotels"}
	}

	m := model.FitContent(hotels, e.opts.MaxFeatures)
	e.content.Store(m)
	e.metrics.ContentModelSize.Set(float64(m.Len()))
	e.metrics.RetrainTotal.WithLabelValues("content", "ok").Inc()

	if e.artifacts != nil {
		if err := e.artifacts.SaveContent(ctx, m); err != nil {
			// 持久化失败不回滚换代：新代已经在服务，下次重训再补快照
			e.log.Warn().Err(err).Msg("content artifact save failed")
		}
	}
	return FamilyReport{Status: "ok", Size: m.Len(), FittedAt: m.FittedAt}
}

func (e *Engine) retrainCollab(ctx context.Context) FamilyReport {
	interactions, err := e.docs.ListInteractions(ctx)
	if err != nil {
		e.metrics.RetrainTotal.WithLabelValues("collab", "failed").Inc()
		e.log.Error().Err(err).Msg("collab retrain: list interactions")
		return FamilyReport{Status: "failed", Error: err.Error()}
	}
	if len(interactions) == 0 {
		e.metrics.RetrainTotal.WithLabelValues("collab", "skipped").Inc()
		return FamilyReport{Status: "skipped", Error: "no interactions"}
	}

	m := model.FitCollab(interactions)
	e.collab.Store(m)
	e.metrics.CollabModelSize.Set(float64(m.Len()))
	e.metrics.RetrainTotal.WithLabelValues("collab", "ok").Inc()

	if e.artifacts != nil {
		if err := e.artifacts.SaveCollab(ctx, m); err != nil {
			e.log.Warn().Err(err).Msg("collab artifact save failed")
		}
	}
	return FamilyReport{Status: "ok", Size: m.Len(), FittedAt: m.FittedAt}
}

// RetrainLoop 周期性重训，直到 ctx 取消。interval<=0 时直接返回。
func (e *Engine) RetrainLoop(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := e.Retrain(ctx, ScopeAll); err != nil {
				e.log.Error().Err(err).Msg("periodic retrain failed")
			}
		}
	}
}
