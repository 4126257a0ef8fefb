package eventstreamutils_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/pixelo/pkg/eventstream/kafka"
	"github.com/papercomputeco/pixelo/pkg/eventstream/nop"
	eventstreamutils "github.com/papercomputeco/pixelo/pkg/eventstream/utils"
)

var _ = Describe("NewPublisher", func() {
	It("builds a no-op publisher by default", func() {
		p, err := eventstreamutils.NewPublisher(&eventstreamutils.NewPublisherOpts{})
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(BeAssignableToTypeOf(&nop.Publisher{}))
	})

	It("builds a kafka publisher", func() {
		p, err := eventstreamutils.NewPublisher(&eventstreamutils.NewPublisherOpts{
			Provider: "kafka",
			Brokers:  []string{"localhost:9092"},
			Topic:    "pixelo.puzzles",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(BeAssignableToTypeOf(&kafka.Publisher{}))
		Expect(p.Close()).To(Succeed())
	})

	It("passes kafka validation errors through", func() {
		_, err := eventstreamutils.NewPublisher(&eventstreamutils.NewPublisherOpts{Provider: "kafka", Topic: "t"})
		Expect(err).To(MatchError(ContainSubstring("at least one broker")))
	})

	It("rejects unknown providers", func() {
		_, err := eventstreamutils.NewPublisher(&eventstreamutils.NewPublisherOpts{Provider: "nats"})
		Expect(err).To(MatchError("unsupported event provider: nats"))
	})
})
