package generatecmder

import (
	"context"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/pixelo/pkg/corpus"
	"github.com/papercomputeco/pixelo/pkg/puzzle"
	"github.com/papercomputeco/pixelo/pkg/storage/fsdriver"
	testutils "github.com/papercomputeco/pixelo/pkg/utils/test"
)

var _ = Describe("generate", func() {
	var (
		tmpDir   string
		pregen   string
		allow    string
		src      corpus.Source
		today    = time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
		fixedNow = func() time.Time { return today }
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "pixelo-generate-test-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { os.RemoveAll(tmpDir) })

		c := testutils.AnimalCorpus()
		src, err = testutils.WriteCorpus(tmpDir, c.Words, c.Embeddings)
		Expect(err).NotTo(HaveOccurred())

		allow = filepath.Join(tmpDir, "drawable.txt")
		Expect(os.WriteFile(allow, []byte("cat\ndog\ncar\n"), 0o600)).To(Succeed())

		pregen = filepath.Join(tmpDir, "pregen")
	})

	run := func(args ...string) (string, error) {
		cmd := newGenerateCmd(fixedNow)
		cmd.Flags().String("config-dir", tmpDir, "")
		base := []string{
			"--word-list", src.WordListPath,
			"--embeddings", src.EmbeddingsPath,
			"--drawable", allow,
			"--storage", "fs",
			"--storage-target", pregen,
		}
		stdout, _, err := testutils.Execute(cmd, append(base, args...)...)
		return stdout, err
	}

	targets := func(ids ...string) []string {
		d, err := fsdriver.NewOSDriver(pregen)
		Expect(err).NotTo(HaveOccurred())

		words := make([]string, 0, len(ids))
		for _, id := range ids {
			table, err := d.Get(context.Background(), id)
			Expect(err).NotTo(HaveOccurred())
			words = append(words, table.Target())
		}
		return words
	}

	It("generates the scheduled days and the fallback puzzle", func() {
		stdout, err := run("--days", "2", "--seed", "7")
		Expect(err).NotTo(HaveOccurred())
		Expect(stdout).To(ContainSubstring("3 generated, 0 failed"))

		words := targets("2026-10-17", "2026-10-18", puzzle.FallbackID)
		Expect(words).To(ConsistOf("cat", "dog", "car"))
	})

	It("skips days that already exist", func() {
		_, err := run("--days", "2", "--seed", "7")
		Expect(err).NotTo(HaveOccurred())

		stdout, err := run("--days", "2", "--seed", "7")
		Expect(err).NotTo(HaveOccurred())
		Expect(stdout).To(ContainSubstring("Nothing to generate."))
	})

	It("honours the start offset", func() {
		_, err := run("--days", "1", "--start-offset", "3", "--fallback=false", "--seed", "1")
		Expect(err).NotTo(HaveOccurred())

		d, err := fsdriver.NewOSDriver(pregen)
		Expect(err).NotTo(HaveOccurred())
		Expect(d.List(context.Background())).To(Equal([]string{"2026-10-20"}))
	})

	It("reproduces a plan from its seed", func() {
		_, err := run("--days", "2", "--seed", "99", "--fallback=false")
		Expect(err).NotTo(HaveOccurred())
		first := targets("2026-10-17", "2026-10-18")

		_, err = run("--days", "2", "--seed", "99", "--fallback=false", "--overwrite")
		Expect(err).NotTo(HaveOccurred())
		Expect(targets("2026-10-17", "2026-10-18")).To(Equal(first))
	})

	It("fails when there are fewer targets than days", func() {
		_, err := run("--days", "5", "--fallback=false")
		Expect(err).To(MatchError(puzzle.ErrNotEnoughTargets))
	})
})
