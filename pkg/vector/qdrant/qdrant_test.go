package qdrant

import (
	"context"
	"os"
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/qdrant/go-client/qdrant"

	"github.com/papercomputeco/pixelo/pkg/vector"
)

var _ = Describe("Driver", func() {
	Describe("point conversion", func() {
		It("stores the corpus index as the point id and the word as payload", func() {
			p := toPoint(vector.Document{ID: 42, Word: "owl", Embedding: []float32{1, 0}})
			Expect(p.GetId().GetNum()).To(Equal(uint64(42)))
			Expect(p.GetPayload()[wordKey].GetStringValue()).To(Equal("owl"))
		})

		It("reads scored points back", func() {
			r := fromScoredPoint(&qdrant.ScoredPoint{
				Id:      qdrant.NewIDNum(7),
				Score:   0.5,
				Payload: qdrant.NewValueMap(map[string]any{wordKey: "cat"}),
			})
			Expect(r.ID).To(Equal(uint32(7)))
			Expect(r.Word).To(Equal("cat"))
			Expect(r.Score).To(Equal(float32(0.5)))
		})
	})

	It("requires a host", func() {
		_, err := NewDriver(context.Background(), Config{}, nil)
		Expect(err).To(MatchError(ContainSubstring("host is required")))
	})

	Context("against a live server", func() {
		var driver *Driver

		BeforeEach(func() {
			host := os.Getenv("PIXELO_TEST_QDRANT_HOST")
			if host == "" {
				Skip("PIXELO_TEST_QDRANT_HOST not set, skipping Qdrant tests")
			}
			port, _ := strconv.Atoi(os.Getenv("PIXELO_TEST_QDRANT_PORT"))

			var err error
			driver, err = NewDriver(context.Background(), Config{
				Host:       host,
				Port:       port,
				Collection: "pixelo_test_words",
				Dimensions: 2,
			}, nil)
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(driver.Close)
		})

		It("returns the nearest words first", func() {
			ctx := context.Background()
			Expect(driver.Add(ctx, []vector.Document{
				{ID: 0, Word: "cat", Embedding: []float32{1, 0}},
				{ID: 1, Word: "dog", Embedding: []float32{0.9, 0.1}},
				{ID: 2, Word: "car", Embedding: []float32{0, 1}},
			})).To(Succeed())

			results, err := driver.Query(ctx, []float32{1, 0}, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(2))
			Expect(results[0].Word).To(Equal("cat"))
			Expect(results[1].Word).To(Equal("dog"))
		})
	})
})
