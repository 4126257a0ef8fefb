package rankcmder_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	pixelocmder "github.com/papercomputeco/pixelo/cmd/pixelo"
	"github.com/papercomputeco/pixelo/pkg/corpus"
	"github.com/papercomputeco/pixelo/pkg/storage/fsdriver"
	testutils "github.com/papercomputeco/pixelo/pkg/utils/test"
)

var _ = Describe("rank", func() {
	var (
		tmpDir string
		src    corpus.Source
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "pixelo-rank-test-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { os.RemoveAll(tmpDir) })

		c := testutils.AnimalCorpus()
		src, err = testutils.WriteCorpus(tmpDir, c.Words, c.Embeddings)
		Expect(err).NotTo(HaveOccurred())
	})

	run := func(args ...string) (string, string, error) {
		base := []string{
			"rank",
			"--config-dir", tmpDir,
			"--word-list", src.WordListPath,
			"--embeddings", src.EmbeddingsPath,
		}
		return testutils.Execute(pixelocmder.NewPixeloCmd(), append(base, args...)...)
	}

	It("writes the lookup table to stdout", func() {
		stdout, _, err := run("cat")
		Expect(err).NotTo(HaveOccurred())
		Expect(stdout).To(Equal(`{"cat":0,"dog":1,"car":2}` + "\n"))
	})

	It("trims the target word", func() {
		stdout, _, err := run("  car ")
		Expect(err).NotTo(HaveOccurred())
		Expect(stdout).To(HavePrefix(`{"car":0,`))
	})

	It("looks the target up case-sensitively", func() {
		_, _, err := run("CAR")
		Expect(err).To(MatchError(ContainSubstring(`"CAR" is not in the corpus`)))
	})

	It("writes the lookup table to a file", func() {
		out := filepath.Join(tmpDir, "lookup.json")
		stdout, _, err := run("dog", "--output", out)
		Expect(err).NotTo(HaveOccurred())
		Expect(stdout).To(BeEmpty())

		data, err := os.ReadFile(out)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal(`{"dog":0,"cat":1,"car":2}`))
	})

	It("prints the closest words", func() {
		stdout, _, err := run("cat", "--top", "2")
		Expect(err).NotTo(HaveOccurred())
		Expect(stdout).To(Equal("     0  cat\n     1  dog\n"))
	})

	It("stores the table under the given id", func() {
		pregen := filepath.Join(tmpDir, "pregen")
		_, _, err := run("cat", "--store", "--id", "2026-10-17",
			"--storage", "fs", "--storage-target", pregen)
		Expect(err).NotTo(HaveOccurred())

		Expect(filepath.Join(pregen, "2026-10-17", fsdriver.LookupFile)).To(BeARegularFile())

		d, err := fsdriver.NewOSDriver(pregen)
		Expect(err).NotTo(HaveOccurred())
		table, err := d.Get(context.Background(), "2026-10-17")
		Expect(err).NotTo(HaveOccurred())
		Expect(table.Target()).To(Equal("cat"))
	})

	It("rejects words outside the corpus", func() {
		_, _, err := run("zebra")
		Expect(err).To(MatchError(ContainSubstring(`"zebra" is not in the corpus`)))
	})

	It("fails when the corpus is missing", func() {
		_, _, err := run("cat", "--word-list", filepath.Join(tmpDir, "nope.txt"))
		Expect(err).To(MatchError(corpus.ErrDataUnavailable))
	})

	It("requires a word", func() {
		_, _, err := testutils.Execute(pixelocmder.NewPixeloCmd(), "rank", "--config-dir", tmpDir)
		Expect(err).To(HaveOccurred())
	})
})
