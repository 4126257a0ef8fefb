package postgres_test

import (
	"context"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/pixelo/pkg/storage"
	"github.com/papercomputeco/pixelo/pkg/storage/postgres"
	testutils "github.com/papercomputeco/pixelo/pkg/utils/test"
)

// connStr returns the PostgreSQL connection string from environment or skips the test.
func connStr() string {
	dsn := os.Getenv("PIXELO_TEST_POSTGRES_DSN")
	if dsn == "" {
		Skip("PIXELO_TEST_POSTGRES_DSN not set, skipping PostgreSQL tests")
	}
	return dsn
}

var _ = Describe("Driver", func() {
	testutils.DriverBehaviors(func() storage.Driver {
		ctx := context.Background()

		driver, err := postgres.NewDriver(ctx, connStr())
		Expect(err).NotTo(HaveOccurred())

		// Clean all puzzles before each test for isolation.
		Expect(driver.DB.Exec(ctx, "DELETE FROM puzzle_ranks", []any{}, nil)).To(Succeed())
		Expect(driver.DB.Exec(ctx, "DELETE FROM puzzles", []any{}, nil)).To(Succeed())

		return driver
	})
})
