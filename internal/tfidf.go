package internal

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// stopWords is the term exclusion set for vectorization. Filtered from
// the token stream before n-grams are formed.
var stopWords = map[string]bool{
	"a": true, "about": true, "above": true, "after": true, "again": true,
	"all": true, "am": true, "an": true, "and": true, "any": true,
	"are": true, "as": true, "at": true, "be": true, "because": true,
	"been": true, "before": true, "being": true, "below": true, "between": true,
	"both": true, "but": true, "by": true, "can": true, "could": true,
	"did": true, "do": true, "does": true, "doing": true, "down": true,
	"during": true, "each": true, "few": true, "for": true, "from": true,
	"further": true, "had": true, "has": true, "have": true, "having": true,
	"he": true, "her": true, "here": true, "hers": true, "him": true,
	"his": true, "how": true, "i": true, "if": true, "in": true,
	"into": true, "is": true, "it": true, "its": true, "just": true,
	"me": true, "more": true, "most": true, "my": true, "no": true,
	"nor": true, "not": true, "now": true, "of": true, "off": true,
	"on": true, "once": true, "only": true, "or": true, "other": true,
	"our": true, "ours": true, "out": true, "over": true, "own": true,
	"same": true, "she": true, "should": true, "so": true, "some": true,
	"such": true, "than": true, "that": true, "the": true, "their": true,
	"theirs": true, "them": true, "then": true, "there": true, "these": true,
	"they": true, "this": true, "those": true, "through": true, "to": true,
	"too": true, "under": true, "until": true, "up": true, "very": true,
	"was": true, "we": true, "were": true, "what": true, "when": true,
	"where": true, "which": true, "while": true, "who": true, "whom": true,
	"why": true, "will": true, "with": true, "would": true, "you": true,
	"your": true, "yours": true,
}

// pruneMinDocs guards document-share pruning: with tiny corpora every
// term appears in most documents and pruning would empty the vocabulary.
const pruneMinDocs = 10

// tfidfModel is a term-frequency / inverse-document-frequency weighting
// over unigrams and bigrams, fitted once on the corpus. Rows are
// l2-normalized so cosine on the weight space is well defined.
type tfidfModel struct {
	maxFeatures int
	maxDocShare float64

	terms []string
	vocab map[string]int
	idf   []float64
}

func newTFIDFModel(maxFeatures int) *tfidfModel {
	if maxFeatures <= 0 {
		maxFeatures = 2000
	}
	return &tfidfModel{
		maxFeatures: maxFeatures,
		maxDocShare: 0.9,
	}
}

// ngrams tokenizes normalized text into stop-word-filtered unigrams
// plus bigrams.
func ngrams(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if !stopWords[f] {
			tokens = append(tokens, f)
		}
	}

	grams := make([]string, 0, 2*len(tokens))
	grams = append(grams, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		grams = append(grams, tokens[i]+" "+tokens[i+1])
	}
	return grams
}

// fit learns the vocabulary and idf weights from the corpus and returns
// the weighted document-term matrix (one row per text).
func (m *tfidfModel) fit(texts []string) *mat.Dense {
	n := len(texts)

	docGrams := make([][]string, n)
	df := make(map[string]int)
	total := make(map[string]int)

	for i, text := range texts {
		grams := ngrams(text)
		docGrams[i] = grams

		seen := make(map[string]bool, len(grams))
		for _, g := range grams {
			total[g]++
			if !seen[g] {
				seen[g] = true
				df[g]++
			}
		}
	}

	candidates := make([]string, 0, len(df))
	for term, count := range df {
		if n >= pruneMinDocs && float64(count)/float64(n) > m.maxDocShare {
			continue
		}
		candidates = append(candidates, term)
	}

	// Cap the vocabulary at maxFeatures, keeping the most frequent
	// terms. Ties break lexically so fitting is deterministic.
	sort.Slice(candidates, func(i, j int) bool {
		if total[candidates[i]] != total[candidates[j]] {
			return total[candidates[i]] > total[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})
	if len(candidates) > m.maxFeatures {
		candidates = candidates[:m.maxFeatures]
	}
	sort.Strings(candidates)

	m.terms = candidates
	m.vocab = make(map[string]int, len(candidates))
	for i, term := range candidates {
		m.vocab[term] = i
	}

	m.idf = make([]float64, len(candidates))
	for i, term := range candidates {
		m.idf[i] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}

	if len(m.terms) == 0 {
		return nil
	}

	weights := mat.NewDense(n, len(m.terms), nil)
	for i, grams := range docGrams {
		row := m.weigh(grams)
		weights.SetRow(i, row)
	}
	return weights
}

// transform weights a single normalized text against the fitted
// vocabulary. Terms outside the vocabulary are ignored.
func (m *tfidfModel) transform(text string) []float64 {
	if len(m.terms) == 0 {
		return nil
	}
	return m.weigh(ngrams(text))
}

func (m *tfidfModel) weigh(grams []string) []float64 {
	row := make([]float64, len(m.terms))
	for _, g := range grams {
		if col, ok := m.vocab[g]; ok {
			row[col] += m.idf[col]
		}
	}
	if norm := floats.Norm(row, 2); norm > 0 {
		floats.Scale(1/norm, row)
	}
	return row
}

func (m *tfidfModel) vocabSize() int {
	return len(m.terms)
}
