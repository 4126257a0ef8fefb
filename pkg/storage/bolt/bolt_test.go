package bolt_test

import (
	"context"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/pixelo/pkg/storage"
	"github.com/papercomputeco/pixelo/pkg/storage/bolt"
	testutils "github.com/papercomputeco/pixelo/pkg/utils/test"
)

var _ = Describe("Driver", func() {
	testutils.DriverBehaviors(func() storage.Driver {
		driver, err := bolt.NewDriver(filepath.Join(GinkgoT().TempDir(), "pixelo.db"))
		Expect(err).NotTo(HaveOccurred())
		return driver
	})

	It("keeps tables across reopen", func() {
		ctx := context.Background()
		path := filepath.Join(GinkgoT().TempDir(), "pixelo.db")

		d, err := bolt.NewDriver(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Put(ctx, "2025-06-01", testutils.NewTable("sun", "moon"))).To(Succeed())
		Expect(d.Close()).To(Succeed())

		d, err = bolt.NewDriver(path)
		Expect(err).NotTo(HaveOccurred())
		defer d.Close()

		got, err := d.Get(ctx, "2025-06-01")
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Words()).To(Equal([]string{"sun", "moon"}))
	})
})
