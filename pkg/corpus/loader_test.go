package corpus_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/papercomputeco/pixelo/pkg/corpus"
	"github.com/papercomputeco/pixelo/pkg/logger"
	testutils "github.com/papercomputeco/pixelo/pkg/utils/test"
)

var _ = Describe("Loader", func() {
	var (
		ctx    context.Context
		dir    string
		buf    *bytes.Buffer
		loader *corpus.Loader
	)

	BeforeEach(func() {
		ctx = context.Background()
		dir = GinkgoT().TempDir()
		buf = &bytes.Buffer{}
		loader = corpus.NewLoader(logger.New(logger.WithWriter(buf), logger.WithDebug(true)))
	})

	It("loads a saved corpus", func() {
		src, err := testutils.WriteCorpus(dir, []string{"cat", "dog"}, testutils.Columns([]float64{1, 0}, []float64{0, 1}))
		Expect(err).NotTo(HaveOccurred())

		c, err := loader.Load(ctx, src)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Words).To(Equal([]string{"cat", "dog"}))
		Expect(c.Dims()).To(Equal(2))
		Expect(buf.String()).To(ContainSubstring("corpus loaded"))
	})

	It("warns when the sources disagree in length", func() {
		src, err := testutils.WriteCorpus(dir, []string{"cat", "dog", "car"}, testutils.Columns([]float64{1, 0}, []float64{0, 1}))
		Expect(err).NotTo(HaveOccurred())

		c, err := loader.Load(ctx, src)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Len()).To(Equal(2))
		Expect(buf.String()).To(ContainSubstring("truncating to common prefix"))
	})

	It("reports missing files as unavailable", func() {
		_, err := loader.Load(ctx, corpus.Source{
			WordListPath:   filepath.Join(dir, "missing.txt"),
			EmbeddingsPath: filepath.Join(dir, "missing.npy"),
		})
		Expect(err).To(MatchError(corpus.ErrDataUnavailable))
	})

	It("honors a cancelled context", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := loader.Load(cctx, corpus.Source{})
		Expect(err).To(MatchError(context.Canceled))
	})

	Describe("LoadWithFallback", func() {
		var fallback corpus.Source

		BeforeEach(func() {
			fbDir := filepath.Join(dir, "fallback")
			Expect(os.MkdirAll(fbDir, 0o755)).To(Succeed())

			var err error
			fallback, err = testutils.WriteCorpus(fbDir, []string{"sun"}, testutils.Columns([]float64{1}))
			Expect(err).NotTo(HaveOccurred())
		})

		It("uses the fallback when the primary is missing", func() {
			c, err := loader.LoadWithFallback(ctx, corpus.Source{
				WordListPath:   filepath.Join(dir, "nope.txt"),
				EmbeddingsPath: filepath.Join(dir, "nope.npy"),
			}, fallback)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Words).To(Equal([]string{"sun"}))
			Expect(buf.String()).To(ContainSubstring("using fallback"))
		})

		It("prefers the primary when present", func() {
			primary, err := testutils.WriteCorpus(dir, []string{"moon"}, testutils.Columns([]float64{2}))
			Expect(err).NotTo(HaveOccurred())

			c, err := loader.LoadWithFallback(ctx, primary, fallback)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Words).To(Equal([]string{"moon"}))
		})

		It("fails when both are missing", func() {
			_, err := loader.LoadWithFallback(ctx, corpus.Source{}, corpus.Source{
				WordListPath:   filepath.Join(dir, "a.txt"),
				EmbeddingsPath: filepath.Join(dir, "b.npy"),
			})
			Expect(err).To(MatchError(corpus.ErrDataUnavailable))
		})
	})
})

var _ = Describe("Builder", func() {
	It("embeds every word into one column", func() {
		embedder := testutils.NewMockEmbedder()
		embedder.Embeddings["cat"] = []float32{1, 0}
		embedder.Embeddings["dog"] = []float32{0, 1}

		var progress []int
		b := corpus.NewBuilder(embedder, nil)
		b.Progress = func(done, _ int) { progress = append(progress, done) }

		c, err := b.Build(context.Background(), []string{"cat", "dog"})
		Expect(err).NotTo(HaveOccurred())
		Expect(mat.Equal(c.Embeddings, testutils.Columns([]float64{1, 0}, []float64{0, 1}))).To(BeTrue())
		Expect(progress).To(Equal([]int{1, 2}))
	})

	It("rejects inconsistent dimensions", func() {
		embedder := testutils.NewMockEmbedder()
		embedder.Embeddings["cat"] = []float32{1, 0}

		_, err := corpus.NewBuilder(embedder, nil).Build(context.Background(), []string{"cat", "dog"})
		Expect(err).To(MatchError(ContainSubstring("expected 2")))
	})

	It("surfaces embedder failures", func() {
		embedder := testutils.NewMockEmbedder()
		embedder.FailOn = "dog"

		_, err := corpus.NewBuilder(embedder, nil).Build(context.Background(), []string{"cat", "dog"})
		Expect(err).To(HaveOccurred())
	})

	It("saves a corpus the loader can read back", func() {
		dir := GinkgoT().TempDir()
		dst := corpus.Source{
			WordListPath:   filepath.Join(dir, "out", corpus.DefaultWordListPath),
			EmbeddingsPath: filepath.Join(dir, "out", corpus.DefaultEmbeddingsPath),
		}

		c := testutils.AnimalCorpus()
		Expect(c.Save(dst)).To(Succeed())

		loaded, err := corpus.NewLoader(nil).Load(context.Background(), dst)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Words).To(Equal(c.Words))
		Expect(mat.Equal(loaded.Embeddings, c.Embeddings)).To(BeTrue())
	})
})
