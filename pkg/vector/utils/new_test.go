package vectorutils

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/pixelo/pkg/vector"
	"github.com/papercomputeco/pixelo/pkg/vector/hnsw"
)

var _ = Describe("NewVectorDriver", func() {
	It("defaults to an in-memory hnsw index", func() {
		d, err := NewVectorDriver(context.Background(), &NewVectorDriverOpts{})
		Expect(err).NotTo(HaveOccurred())
		Expect(d).To(BeAssignableToTypeOf(&hnsw.Driver{}))
	})

	It("persists an hnsw index to the target file", func() {
		ctx := context.Background()
		target := filepath.Join(GinkgoT().TempDir(), "nested", "words.hnsw")

		d, err := NewVectorDriver(ctx, &NewVectorDriverOpts{ProviderType: "hnsw", Target: target})
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Add(ctx, []vector.Document{{ID: 0, Word: "cat", Embedding: []float32{1, 0}}})).To(Succeed())
		Expect(d.Close()).To(Succeed())

		_, err = os.Stat(target)
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects unknown providers", func() {
		_, err := NewVectorDriver(context.Background(), &NewVectorDriverOpts{ProviderType: "chroma"})
		Expect(err).To(MatchError(ContainSubstring("unsupported vector store provider")))
	})
})

var _ = Describe("splitHostPort", func() {
	It("parses host and port", func() {
		host, port, err := splitHostPort("qdrant.internal:7000")
		Expect(err).NotTo(HaveOccurred())
		Expect(host).To(Equal("qdrant.internal"))
		Expect(port).To(Equal(7000))
	})

	It("defaults the port", func() {
		host, port, err := splitHostPort("qdrant")
		Expect(err).NotTo(HaveOccurred())
		Expect(host).To(Equal("qdrant"))
		Expect(port).To(Equal(6334))
	})

	It("rejects a bad port", func() {
		_, _, err := splitHostPort("qdrant:http")
		Expect(err).To(HaveOccurred())
	})
})
