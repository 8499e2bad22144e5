package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/stayrec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("hotel", cel.DynType),
		cel.Variable("item", cel.DynType),
		cel.Variable("label", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Rule 是过滤规则解释器，使用 CEL (Common Expression Language) 实现。
// 表达式在 Compile 时编译一次，之后可以并发地对任意候选求值。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：hotel.price < 200.0 / hotel.rating >= 4.0
//   - 字符串：hotel.city == "paris" / hotel.type != "cabin"
//   - 集合："wifi" in hotel.amenities
//   - 逻辑：hotel.rating >= 4.0 && hotel.price < 300.0
//   - 候选分数：item.score > 0.5
//   - 标签：label.recall_source.contains("content")
type Rule struct {
	expr string
	prg  cel.Program
}

// Compile 编译 DSL 表达式。空表达式返回 nil Rule（永真）。
func Compile(expr string) (*Rule, error) {
	if expr == "" {
		return nil, nil
	}

	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %v", err)
	}

	return &Rule{expr: expr, prg: prg}, nil
}

// Expr 返回原始表达式。
func (r *Rule) Expr() string {
	if r == nil {
		return ""
	}
	return r.expr
}

// Evaluate 对单个候选求值，返回布尔结果。nil Rule 恒为 true。
func (r *Rule) Evaluate(item *core.Item) (bool, error) {
	if r == nil {
		return true, nil
	}

	out, _, err := r.prg.Eval(buildInput(item))
	if err != nil {
		// 访问不存在的 key 时 CEL 会报错；调用方应按"不通过"处理并记录
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}

	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func buildInput(item *core.Item) map[string]any {
	labels := make(map[string]any, len(item.Labels))
	for k, v := range item.Labels {
		labels[k] = v.Value
	}

	hotel := map[string]any{}
	if item.Hotel != nil {
		amenities := make([]any, len(item.Hotel.Amenities))
		for i, a := range item.Hotel.Amenities {
			amenities[i] = a
		}
		hotel = map[string]any{
			"id":        string(item.Hotel.ID),
			"name":      item.Hotel.Name,
			"type":      item.Hotel.Type,
			"city":      item.Hotel.City,
			"rating":    item.Hotel.Rating,
			"price":     item.Hotel.Price,
			"amenities": amenities,
		}
	}

	return map[string]any{
		"hotel": hotel,
		"item": map[string]any{
			"id":    string(item.ID),
			"score": item.Score,
		},
		"label": labels,
	}
}
