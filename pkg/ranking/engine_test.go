package ranking_test

import (
	"encoding/json"
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/papercomputeco/pixelo/pkg/ranking"
	testutils "github.com/papercomputeco/pixelo/pkg/utils/test"
)

func ranksOf(t *ranking.Table) map[string]int {
	out := make(map[string]int, t.Len())
	for _, e := range t.Top(t.Len()) {
		out[e.Word] = e.Rank
	}
	return out
}

var _ = Describe("Engine", func() {
	var words []string
	var embeddings *mat.Dense

	BeforeEach(func() {
		c := testutils.AnimalCorpus()
		words = c.Words
		embeddings = c.Embeddings
	})

	It("ranks by descending cosine similarity", func() {
		table, err := ranking.Rank(0, embeddings, words)
		Expect(err).NotTo(HaveOccurred())
		Expect(ranksOf(table)).To(Equal(map[string]int{"cat": 0, "dog": 1, "car": 2}))
		Expect(table.Target()).To(Equal("cat"))
	})

	It("ranks from the other end of the corpus", func() {
		table, err := ranking.Rank(2, embeddings, words)
		Expect(err).NotTo(HaveOccurred())
		Expect(ranksOf(table)).To(Equal(map[string]int{"car": 0, "dog": 1, "cat": 2}))
	})

	It("ignores vector magnitude", func() {
		scaled := mat.DenseCopyOf(embeddings)
		scaled.Scale(37, scaled)

		a, err := ranking.Rank(1, embeddings, words)
		Expect(err).NotTo(HaveOccurred())
		b, err := ranking.Rank(1, scaled, words)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.Words()).To(Equal(a.Words()))
	})

	It("keeps corpus order for equal similarities", func() {
		cols := testutils.Columns(
			[]float64{0, 1},
			[]float64{1, 0},
			[]float64{1, 0},
			[]float64{0, 1},
			[]float64{2, 0},
		)
		table, err := ranking.Rank(0, cols, []string{"t", "a", "b", "c", "d"})
		Expect(err).NotTo(HaveOccurred())
		Expect(table.Words()).To(Equal([]string{"t", "c", "a", "b", "d"}))
	})

	It("keeps the target at rank 0 when an earlier word shares its embedding", func() {
		cols := testutils.Columns(
			[]float64{1, 0},
			[]float64{0, 1},
			[]float64{1, 0},
			[]float64{1, 0},
		)
		table, err := ranking.Rank(2, cols, []string{"a", "x", "t", "b"})
		Expect(err).NotTo(HaveOccurred())
		Expect(table.Words()).To(Equal([]string{"t", "a", "b", "x"}))
		Expect(table.Target()).To(Equal("t"))
	})

	It("gives the target rank 0 when its embedding is zero", func() {
		cols := testutils.Columns(
			[]float64{1, 1},
			[]float64{0, 0},
			[]float64{0, 3},
		)
		table, err := ranking.Rank(1, cols, []string{"a", "zero", "b"})
		Expect(err).NotTo(HaveOccurred())
		Expect(table.Words()).To(Equal([]string{"zero", "a", "b"}))
	})

	It("scores zero vectors as 0 without NaN", func() {
		cols := testutils.Columns(
			[]float64{1, 0},
			[]float64{0, 0},
		)
		table, err := ranking.Rank(0, cols, []string{"a", "zero"})
		Expect(err).NotTo(HaveOccurred())
		Expect(table.Words()).To(Equal([]string{"a", "zero"}))
	})

	It("produces a permutation of [0, N-1]", func() {
		rng := rand.New(rand.NewPCG(1, 2))
		const n, d = 200, 8

		m := mat.NewDense(d, n, nil)
		words := make([]string, n)
		for j := range n {
			words[j] = string(rune('A'+j%26)) + string(rune('a'+j/26))
			for i := range d {
				m.Set(i, j, rng.NormFloat64())
			}
		}

		table, err := ranking.Rank(17, m, words)
		Expect(err).NotTo(HaveOccurred())
		Expect(table.Len()).To(Equal(n))

		seen := make([]bool, n)
		for _, w := range words {
			r, ok := table.Rank(w)
			Expect(ok).To(BeTrue())
			Expect(seen[r]).To(BeFalse())
			seen[r] = true
		}
		Expect(table.Target()).To(Equal(words[17]))
	})

	It("is deterministic byte for byte", func() {
		a, err := ranking.Rank(1, embeddings, words)
		Expect(err).NotTo(HaveOccurred())
		b, err := ranking.Rank(1, embeddings, words)
		Expect(err).NotTo(HaveOccurred())

		ab, err := json.Marshal(a)
		Expect(err).NotTo(HaveOccurred())
		bb, err := json.Marshal(b)
		Expect(err).NotTo(HaveOccurred())
		Expect(ab).To(Equal(bb))
	})

	It("rejects out-of-range targets", func() {
		_, err := ranking.Rank(3, embeddings, words)
		Expect(err).To(MatchError(ranking.ErrInvalidIndex))

		_, err = ranking.Rank(-1, embeddings, words)
		Expect(err).To(MatchError(ranking.ErrInvalidIndex))
	})

	It("rejects mismatched word counts", func() {
		_, err := ranking.Rank(0, embeddings, []string{"cat", "dog"})
		Expect(err).To(MatchError(ranking.ErrDimensionMismatch))
	})

	Describe("NewEngine", func() {
		It("reuses the normalized matrix across targets", func() {
			engine, err := ranking.NewEngine(testutils.AnimalCorpus())
			Expect(err).NotTo(HaveOccurred())
			Expect(engine.Len()).To(Equal(3))

			for target := range engine.Len() {
				table, err := engine.Rank(target)
				Expect(err).NotTo(HaveOccurred())
				Expect(table.Target()).To(Equal(words[target]))
			}
		})

		It("exposes symmetric scores", func() {
			engine, err := ranking.NewEngine(testutils.AnimalCorpus())
			Expect(err).NotTo(HaveOccurred())

			catScores, err := engine.Scores(0)
			Expect(err).NotTo(HaveOccurred())
			dogScores, err := engine.Scores(1)
			Expect(err).NotTo(HaveOccurred())

			Expect(catScores[0]).To(BeNumerically("~", 1, 1e-12))
			Expect(catScores[1]).To(BeNumerically("~", dogScores[0], 1e-12))
			Expect(catScores[2]).To(BeNumerically("~", 0, 1e-12))
		})
	})
})
