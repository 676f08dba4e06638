// Package search ranks registered response codes against free-text queries.
//
// Each code is indexed as one document whose text joins its category, code
// name, default message and status. Code names are split on camelCase and
// snake/kebab boundaries, so "notFound" matches the query "not found".
//
// Scoring is Jaccard similarity between the query token set and a document
// token set: score = |Q ∩ D| / |Q ∪ D|. Ties break on the shorter document,
// then on the key, which keeps results stable across rebuilds.
//
// An index is immutable after construction and safe for concurrent use.
package search

import (
	"sort"
	"strings"
	"unicode"
)

// Document is one searchable item. Key must be unique within an index.
type Document struct {
	Key  string
	Text string
}

// Result is a ranked document key with its similarity score.
type Result struct {
	Key   string
	Score float64
}

// Index is the read side shared by all index implementations.
type Index interface {
	TopK(query string, k int) []Result
	Len() int
}

// DefaultK is used by TopK when k <= 0.
const DefaultK = 10

// ----------------------------------------------------------------------------
// Options

type Option func(*config)

type config struct {
	stopwords map[string]struct{}
	maxDocs   int
	minScore  float64
}

func defaultConfig() config {
	return config{}
}

// WithStopwords drops the given words from both documents and queries.
func WithStopwords(words []string) Option {
	return func(c *config) {
		m := make(map[string]struct{}, len(words))
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w != "" {
				m[w] = struct{}{}
			}
		}
		if len(m) > 0 {
			c.stopwords = m
		}
	}
}

// WithMaxDocs caps how many documents are indexed. Non-positive is ignored.
func WithMaxDocs(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDocs = n
		}
	}
}

// WithMinScore hides results scoring below s. Values outside (0, 1] are ignored.
func WithMinScore(s float64) Option {
	return func(c *config) {
		if s > 0 && s <= 1 {
			c.minScore = s
		}
	}
}

// ----------------------------------------------------------------------------
// Implementation

type doc struct {
	key    string
	tokens map[string]struct{}
}

type index struct {
	cfg  config
	docs []doc
}

// New builds an Index over docs. Documents without a key or without any
// token are skipped, as are repeated keys after the first.
func New(docs []Document, opts ...Option) Index {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	out := make([]doc, 0, len(docs))
	seen := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		if d.Key == "" {
			continue
		}
		if _, dup := seen[d.Key]; dup {
			continue
		}
		toks := Tokenize(d.Text, cfg.stopwords)
		if len(toks) == 0 {
			continue
		}
		seen[d.Key] = struct{}{}
		out = append(out, doc{key: d.Key, tokens: toks})
		if cfg.maxDocs > 0 && len(out) >= cfg.maxDocs {
			break
		}
	}
	return &index{cfg: cfg, docs: out}
}

func (i *index) Len() int { return len(i.docs) }

// TopK returns up to k best-matching documents by Jaccard similarity.
func (i *index) TopK(q string, k int) []Result {
	if len(i.docs) == 0 || strings.TrimSpace(q) == "" {
		return nil
	}
	if k <= 0 {
		k = DefaultK
	}
	qTokens := Tokenize(q, i.cfg.stopwords)
	if len(qTokens) == 0 {
		return nil
	}
	qLen := len(qTokens)

	type scored struct {
		key   string
		score float64
		size  int
	}

	buf := make([]scored, 0, min(k*4, len(i.docs)))
	for _, d := range i.docs {
		over := overlap(qTokens, d.tokens)
		if over == 0 {
			continue
		}
		score := float64(over) / float64(qLen+len(d.tokens)-over)
		if score < i.cfg.minScore {
			continue
		}
		buf = append(buf, scored{key: d.key, score: score, size: len(d.tokens)})
	}
	if len(buf) == 0 {
		return nil
	}

	sort.SliceStable(buf, func(a, b int) bool {
		if buf[a].score != buf[b].score {
			return buf[a].score > buf[b].score
		}
		if buf[a].size != buf[b].size {
			return buf[a].size < buf[b].size
		}
		return buf[a].key < buf[b].key
	})

	if k > len(buf) {
		k = len(buf)
	}
	out := make([]Result, k)
	for n := 0; n < k; n++ {
		out[n] = Result{Key: buf[n].key, Score: buf[n].score}
	}
	return out
}

// ----------------------------------------------------------------------------
// Helpers

// Tokenize lowercases s and splits it into a set of words. Letters and
// digits form words; a lower-to-upper case change starts a new word.
func Tokenize(s string, stop map[string]struct{}) map[string]struct{} {
	var (
		out  map[string]struct{}
		cur  strings.Builder
		prev rune
	)
	flush := func() {
		if cur.Len() == 0 {
			return
		}
		w := cur.String()
		cur.Reset()
		if _, skip := stop[w]; skip {
			return
		}
		if out == nil {
			out = make(map[string]struct{})
		}
		out[w] = struct{}{}
	}
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
				flush()
			}
			cur.WriteRune(unicode.ToLower(r))
		default:
			flush()
		}
		prev = r
	}
	flush()
	return out
}

func overlap(a, b map[string]struct{}) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(a) > len(b) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}
