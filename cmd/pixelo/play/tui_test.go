package playcmder

import (
	"os"

	bubbletea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/pixelo/pkg/dotdir"
	"github.com/papercomputeco/pixelo/pkg/game"
	testutils "github.com/papercomputeco/pixelo/pkg/utils/test"
)

var _ = Describe("Play TUI", func() {
	var (
		tmpDir string
		p      *player
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "pixelo-tui-test-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { os.RemoveAll(tmpDir) })

		p, err = newPlayer("2026-10-17", testutils.NewTable("cat", "dog", "car"), dotdir.NewManager(), tmpDir)
		Expect(err).NotTo(HaveOccurred())
	})

	guess := func(m playModel, word string) playModel {
		m.input.SetValue(word)
		next, _ := m.Update(bubbletea.KeyMsg{Type: bubbletea.KeyEnter})
		return next.(playModel)
	}

	It("scores a guess on enter and clears the input", func() {
		m := guess(newPlayModel(p), "dog")
		Expect(m.input.Value()).To(BeEmpty())
		Expect(m.message).To(ContainSubstring("dog is ranked"))
		Expect(m.latest).To(Equal("dog"))
		Expect(p.session.Score()).To(Equal(1))
		Expect(m.View()).To(ContainSubstring("closest guesses"))
	})

	It("ignores blank input", func() {
		m := guess(newPlayModel(p), "   ")
		Expect(m.message).To(BeEmpty())
		Expect(p.session.Score()).To(BeZero())
	})

	It("reports unknown words without scoring them", func() {
		m := guess(newPlayModel(p), "zebra")
		Expect(m.message).To(ContainSubstring("zebra is not in the word list"))
		Expect(m.latest).To(BeEmpty())
		Expect(p.session.Score()).To(BeZero())
	})

	It("stops accepting guesses once solved", func() {
		m := guess(newPlayModel(p), "cat")
		Expect(m.message).To(ContainSubstring("Solved in 1 guesses"))

		m = guess(m, "dog")
		Expect(m.message).To(ContainSubstring("Already solved: cat"))
		Expect(p.session.Score()).To(Equal(1))
	})

	It("quits on esc", func() {
		_, cmd := newPlayModel(p).Update(bubbletea.KeyMsg{Type: bubbletea.KeyEsc})
		Expect(cmd).NotTo(BeNil())
		Expect(cmd()).To(Equal(bubbletea.Quit()))
	})

	It("tracks the window width", func() {
		next, _ := newPlayModel(p).Update(bubbletea.WindowSizeMsg{Width: 100, Height: 40})
		Expect(next.(playModel).width).To(Equal(100))
	})

	It("mentions resumed progress", func() {
		_, err := p.guess("car")
		Expect(err).NotTo(HaveOccurred())

		resumed, err := newPlayer("2026-10-17", testutils.NewTable("cat", "dog", "car"), dotdir.NewManager(), tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(newPlayModel(resumed).message).To(Equal("Resumed with 1 guesses."))
	})
})

var _ = Describe("Play helpers", func() {
	It("orders guesses closest first", func() {
		history := []game.Attempt{{Word: "car", Rank: 2}, {Word: "cat", Rank: 0}, {Word: "dog", Rank: 1}}
		Expect(closest(history, 2)).To(Equal([]game.Attempt{{Word: "cat", Rank: 0}, {Word: "dog", Rank: 1}}))
		Expect(history[0].Word).To(Equal("car"))
	})

	It("draws longer heat bars for closer ranks", func() {
		filled := func(rank int) int {
			n := 0
			for _, r := range heatBar(rank) {
				if r == '█' {
					n++
				}
			}
			return n
		}
		Expect(filled(0)).To(Equal(20))
		Expect(filled(100)).To(BeNumerically(">", filled(1000)))
		Expect(filled(5000)).To(Equal(1))
	})

	It("describes duplicate guesses", func() {
		res := game.Result{Status: game.StatusDuplicate, Attempt: game.Attempt{Word: "zebra", Rank: -1}}
		Expect(formatResult(res)).To(Equal("zebra was already guessed"))
	})
})
