// Package model 实现推荐引擎的两类可拟合模型：
// 基于 TF-IDF 的内容模型和基于 KNN 的协同过滤模型。
// 拟合产物（generation）一经构建即为只读，重训时整体替换，从不原地修改。
package model

import (
	"math"
	"sort"
	"strings"
)

// TFIDFVectorizer 是词频-逆文档频率向量化器。
//
// 语义对齐通用实现：
//   - 词表上限 MaxFeatures（按语料词频取 Top N）
//   - unigram + bigram
//   - 常见英文停用词剔除
//   - smooth idf: ln((1+n)/(1+df)) + 1
//   - 输出向量做 L2 归一化，余弦相似度退化为点积
type TFIDFVectorizer struct {
	// MaxFeatures 词表上限，<=0 表示不设限
	MaxFeatures int

	// Vocabulary term -> 列下标，Fit 之后不可变
	Vocabulary map[string]int

	// IDF 按列下标排列的逆文档频率
	IDF []float64
}

// NewTFIDFVectorizer 创建向量化器，词表上限默认 1000。
func NewTFIDFVectorizer(maxFeatures int) *TFIDFVectorizer {
	if maxFeatures == 0 {
		maxFeatures = 1000
	}
	return &TFIDFVectorizer{MaxFeatures: maxFeatures}
}

// SparseVector 是稀疏的加权词向量：列下标 -> 权重。
type SparseVector map[int]float64

// Dot 计算两个稀疏向量的点积。
func (v SparseVector) Dot(other SparseVector) float64 {
	a, b := v, other
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for idx, va := range a {
		if vb, ok := b[idx]; ok {
			dot += va * vb
		}
	}
	return dot
}

// Fit 在语料上构建词表与 IDF。
func (v *TFIDFVectorizer) Fit(docs []string) {
	df := make(map[string]int)
	tf := make(map[string]int)

	for _, doc := range docs {
		terms := extractTerms(doc)
		seen := make(map[string]bool, len(terms))
		for _, term := range terms {
			tf[term]++
			if !seen[term] {
				df[term]++
				seen[term] = true
			}
		}
	}

	// 词表截断：按语料词频降序取 Top N，平频按字典序
	terms := make([]string, 0, len(tf))
	for term := range tf {
		terms = append(terms, term)
	}
	if v.MaxFeatures > 0 && len(terms) > v.MaxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if tf[terms[i]] != tf[terms[j]] {
				return tf[terms[i]] > tf[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:v.MaxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(docs))
	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	for i, term := range terms {
		v.Vocabulary[term] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
}

// Transform 把文本转换为 L2 归一化的稀疏向量。
// 词表外的文本产出空向量，调用方应视为"无信号"。
func (v *TFIDFVectorizer) Transform(text string) SparseVector {
	if len(v.Vocabulary) == 0 {
		return SparseVector{}
	}

	counts := make(map[int]float64)
	for _, term := range extractTerms(text) {
		if idx, ok := v.Vocabulary[term]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return SparseVector{}
	}

	vec := make(SparseVector, len(counts))
	var norm float64
	for idx, count := range counts {
		w := count * v.IDF[idx]
		vec[idx] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for idx := range vec {
			vec[idx] /= norm
		}
	}
	return vec
}

// extractTerms 分词并生成 unigram+bigram。
// 规则：小写化、按非字母数字切分、丢弃单字符 token 与停用词，
// bigram 由停用词剔除后的相邻 token 构成。
func extractTerms(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 || stopWords[f] {
			continue
		}
		tokens = append(tokens, f)
	}

	terms := make([]string, 0, 2*len(tokens))
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

// stopWords 是常见英文停用词表（语料为英文酒店文案）。
var stopWords = map[string]bool{
	"about": true, "above": true, "after": true, "again": true, "all": true,
	"am": true, "an": true, "and": true, "any": true, "are": true, "as": true,
	"at": true, "be": true, "because": true, "been": true, "before": true,
	"being": true, "below": true, "between": true, "both": true, "but": true,
	"by": true, "can": true, "did": true, "do": true, "does": true,
	"doing": true, "down": true, "during": true, "each": true, "few": true,
	"for": true, "from": true, "further": true, "had": true, "has": true,
	"have": true, "having": true, "he": true, "her": true, "here": true,
	"hers": true, "him": true, "his": true, "how": true, "if": true,
	"in": true, "into": true, "is": true, "it": true, "its": true,
	"just": true, "me": true, "more": true, "most": true, "my": true,
	"no": true, "nor": true, "not": true, "now": true, "of": true,
	"off": true, "on": true, "once": true, "only": true, "or": true,
	"other": true, "our": true, "ours": true, "out": true, "over": true,
	"own": true, "same": true, "she": true, "so": true, "some": true,
	"such": true, "than": true, "that": true, "the": true, "their": true,
	"theirs": true, "them": true, "then": true, "there": true, "these": true,
	"they": true, "this": true, "those": true, "through": true, "to": true,
	"too": true, "under": true, "until": true, "up": true, "very": true,
	"was": true, "we": true, "were": true, "what": true, "when": true,
	"where": true, "which": true, "while": true, "who": true, "whom": true,
	"why": true, "will": true, "with": true, "you": true, "your": true,
	"yours": true,
}
