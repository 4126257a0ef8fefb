package testutils

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/pixelo/pkg/ranking"
	"github.com/papercomputeco/pixelo/pkg/storage"
)

// NewTable builds a table from words in rank order and fails the current
// spec on error.
func NewTable(words ...string) *ranking.Table {
	t, err := ranking.NewTable(words)
	Expect(err).NotTo(HaveOccurred())
	return t
}

// DriverBehaviors registers the specs every storage.Driver must pass.
// newDriver is called once per spec; the driver is closed afterwards.
func DriverBehaviors(newDriver func() storage.Driver) {
	var (
		driver storage.Driver
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		driver = newDriver()
		DeferCleanup(func() {
			Expect(driver.Close()).To(Succeed())
		})
	})

	Describe("Put and Get", func() {
		It("returns the stored table", func() {
			Expect(driver.Put(ctx, "2025-01-02", NewTable("cat", "dog", "car"))).To(Succeed())

			got, err := driver.Get(ctx, "2025-01-02")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Words()).To(Equal([]string{"cat", "dog", "car"}))
			Expect(got.Target()).To(Equal("cat"))
		})

		It("overwrites an existing table", func() {
			Expect(driver.Put(ctx, "1", NewTable("cat", "dog"))).To(Succeed())
			Expect(driver.Put(ctx, "1", NewTable("sun", "moon", "star"))).To(Succeed())

			got, err := driver.Get(ctx, "1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Words()).To(Equal([]string{"sun", "moon", "star"}))
		})

		It("rejects a nil table", func() {
			Expect(driver.Put(ctx, "1", nil)).NotTo(Succeed())
		})

		It("rejects ids that are not a single path element", func() {
			Expect(driver.Put(ctx, "../escape", NewTable("a"))).To(MatchError(storage.ErrInvalidID))
			Expect(driver.Put(ctx, "", NewTable("a"))).To(MatchError(storage.ErrInvalidID))
		})

		It("returns NotFoundError for a missing puzzle", func() {
			_, err := driver.Get(ctx, "2030-01-01")
			Expect(storage.IsNotFound(err)).To(BeTrue())
		})
	})

	Describe("Has", func() {
		It("reports presence", func() {
			Expect(driver.Put(ctx, "2025-01-02", NewTable("a", "b"))).To(Succeed())

			ok, err := driver.Has(ctx, "2025-01-02")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())

			ok, err = driver.Has(ctx, "2025-01-03")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})
	})

	Describe("List", func() {
		It("is empty for a new store", func() {
			ids, err := driver.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(BeEmpty())
		})

		It("returns ids in ascending order", func() {
			for _, id := range []string{"2025-01-03", "1", "2025-01-01"} {
				Expect(driver.Put(ctx, id, NewTable("a", "b"))).To(Succeed())
			}

			ids, err := driver.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(Equal([]string{"1", "2025-01-01", "2025-01-03"}))
		})
	})

	Describe("Delete", func() {
		It("removes a puzzle", func() {
			Expect(driver.Put(ctx, "1", NewTable("a"))).To(Succeed())
			Expect(driver.Delete(ctx, "1")).To(Succeed())

			ok, err := driver.Has(ctx, "1")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("returns NotFoundError for a missing puzzle", func() {
			Expect(storage.IsNotFound(driver.Delete(ctx, "1"))).To(BeTrue())
		})
	})
}
