package vector_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/pixelo/pkg/vector"
	"github.com/papercomputeco/pixelo/pkg/vector/hnsw"
	testutils "github.com/papercomputeco/pixelo/pkg/utils/test"
)

var _ = Describe("Index", func() {
	It("normalizes vectors", func() {
		v := vector.Normalize([]float32{3, 4})
		Expect(v[0]).To(BeNumerically("~", 0.6, 1e-6))
		Expect(v[1]).To(BeNumerically("~", 0.8, 1e-6))
		Expect(vector.Normalize([]float32{0, 0})).To(Equal([]float32{0, 0}))
	})

	It("computes cosine similarity", func() {
		Expect(vector.Cosine([]float32{1, 0}, []float32{5, 0})).To(BeNumerically("~", 1, 1e-6))
		Expect(vector.Cosine([]float32{1, 0}, []float32{0, 2})).To(BeNumerically("~", 0, 1e-6))
		Expect(vector.Cosine([]float32{0, 0}, []float32{1, 1})).To(BeZero())
	})

	It("indexes a corpus in batches and finds neighbours", func() {
		ctx := context.Background()
		c := testutils.AnimalCorpus()

		d, err := hnsw.NewDriver(hnsw.Config{})
		Expect(err).NotTo(HaveOccurred())
		defer d.Close()

		var calls []int
		Expect(vector.Index(ctx, d, c, 2, func(done, _ int) { calls = append(calls, done) })).To(Succeed())
		Expect(calls).To(Equal([]int{2, 3}))
		Expect(d.Len()).To(Equal(3))

		results, err := vector.Neighbors(ctx, d, c, "cat", 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(1))
		Expect(results[0].Word).To(Equal("dog"))
	})

	It("rejects words outside the corpus", func() {
		d, err := hnsw.NewDriver(hnsw.Config{})
		Expect(err).NotTo(HaveOccurred())

		_, err = vector.Neighbors(context.Background(), d, testutils.AnimalCorpus(), "zebra", 3)
		Expect(err).To(MatchError(vector.ErrNotFound))
	})
})
