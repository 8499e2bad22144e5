package filter

import (
	"context"

	"github.com/rushteam/stayrec/core"
	"github.com/rushteam/stayrec/pkg/dsl"
)

// RuleFilter 按 CEL 业务规则表达式过滤，表达式求值为 false 的候选剔除。
// 表达式在构造时编译一次，请求路径只做求值。
type RuleFilter struct {
	rule *dsl.Rule
}

// NewRuleFilter 编译表达式。表达式非法时报错，不生成过滤器。
func NewRuleFilter(expr string) (*RuleFilter, error) {
	rule, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &RuleFilter{rule: rule}, nil
}

func (f *RuleFilter) Name() string { return "filter.rule" }

func (f *RuleFilter) ShouldFilter(
	_ context.Context, _ *core.RecommendContext, item *core.Item,
) (bool, error) {
	keep, err := f.rule.Evaluate(item)
	if err != nil {
		// 求值错误（如访问缺失字段）按"不通过"处理，不让单个脏候选拖垮请求
		return true, nil
	}
	return !keep, nil
}
