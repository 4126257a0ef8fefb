package corpus_test

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/papercomputeco/pixelo/pkg/corpus"
	testutils "github.com/papercomputeco/pixelo/pkg/utils/test"
)

// npyFile assembles a version 1.0 .npy file around a little-endian payload.
func npyFile(descr string, fortran bool, shape string, payload any) []byte {
	order := "False"
	if fortran {
		order = "True"
	}
	header := fmt.Sprintf("{'descr': '%s', 'fortran_order': %s, 'shape': %s, }", descr, order, shape)
	for (10+len(header)+1)%64 != 0 {
		header += " "
	}
	header += "\n"

	var buf bytes.Buffer
	buf.WriteString("\x93NUMPY")
	buf.Write([]byte{1, 0})
	Expect(binary.Write(&buf, binary.LittleEndian, uint16(len(header)))).To(Succeed())
	buf.WriteString(header)
	Expect(binary.Write(&buf, binary.LittleEndian, payload)).To(Succeed())
	return buf.Bytes()
}

var _ = Describe("Corpus", func() {
	Describe("New", func() {
		It("pairs each word with its column", func() {
			c, err := corpus.New([]string{"a", "b"}, testutils.Columns([]float64{1, 2, 3}, []float64{4, 5, 6}))
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Len()).To(Equal(2))
			Expect(c.Dims()).To(Equal(3))
			Expect(c.Truncation).To(BeNil())
			Expect(c.Vector(1)).To(Equal([]float64{4, 5, 6}))
			Expect(c.Vector32(0)).To(Equal([]float32{1, 2, 3}))

			i, ok := c.Index("b")
			Expect(ok).To(BeTrue())
			Expect(i).To(Equal(1))

			_, ok = c.Index("zebra")
			Expect(ok).To(BeFalse())
		})

		It("truncates extra words to the column count", func() {
			c, err := corpus.New([]string{"a", "b", "c"}, testutils.Columns([]float64{1}, []float64{2}))
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Words).To(Equal([]string{"a", "b"}))
			Expect(c.Truncation).To(Equal(&corpus.Truncation{Words: 3, Columns: 2, Kept: 2}))
		})

		It("truncates extra columns to the word count", func() {
			c, err := corpus.New([]string{"a"}, testutils.Columns([]float64{1, 1}, []float64{2, 2}, []float64{3, 3}))
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Len()).To(Equal(1))
			_, cols := c.Embeddings.Dims()
			Expect(cols).To(Equal(1))
			Expect(c.Vector(0)).To(Equal([]float64{1, 1}))
		})

		It("rejects duplicate words", func() {
			_, err := corpus.New([]string{"a", "a"}, testutils.Columns([]float64{1}, []float64{2}))
			Expect(err).To(MatchError(corpus.ErrDataUnavailable))
		})

		It("rejects empty inputs", func() {
			_, err := corpus.New(nil, testutils.Columns([]float64{1}))
			Expect(err).To(MatchError(corpus.ErrDataUnavailable))

			_, err = corpus.New([]string{"a"}, nil)
			Expect(err).To(MatchError(corpus.ErrDataUnavailable))
		})
	})

	Describe("ReadWordList", func() {
		It("trims lines and skips blanks", func() {
			words, err := corpus.ReadWordList(strings.NewReader("cat\n  dog \n\n\ncar\r\n"))
			Expect(err).NotTo(HaveOccurred())
			Expect(words).To(Equal([]string{"cat", "dog", "car"}))
		})

		It("fails on an empty list", func() {
			_, err := corpus.ReadWordList(strings.NewReader("\n \n"))
			Expect(err).To(MatchError(corpus.ErrDataUnavailable))
		})

		It("reads what WriteWordList writes", func() {
			var buf bytes.Buffer
			Expect(corpus.WriteWordList(&buf, []string{"x", "y"})).To(Succeed())
			Expect(buf.String()).To(Equal("x\ny\n"))
		})
	})

	Describe("ReadMatrix", func() {
		It("decodes a C-ordered float64 matrix", func() {
			m := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})

			var buf bytes.Buffer
			Expect(corpus.WriteMatrix(&buf, m)).To(Succeed())

			got, err := corpus.ReadMatrix(&buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(mat.Equal(got, m)).To(BeTrue())
		})

		It("decodes a Fortran-ordered float32 matrix", func() {
			// Column-major [[1, 2], [3, 4]].
			data := npyFile("<f4", true, "(2, 2)", []float32{1, 3, 2, 4})

			got, err := corpus.ReadMatrix(bytes.NewReader(data))
			Expect(err).NotTo(HaveOccurred())
			Expect(mat.Equal(got, mat.NewDense(2, 2, []float64{1, 2, 3, 4}))).To(BeTrue())
		})

		It("decodes a C-ordered float32 matrix", func() {
			data := npyFile("<f4", false, "(2, 3)", []float32{1, 2, 3, 4, 5, 6})

			got, err := corpus.ReadMatrix(bytes.NewReader(data))
			Expect(err).NotTo(HaveOccurred())
			Expect(mat.Equal(got, mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6}))).To(BeTrue())
		})

		It("rejects non-finite values", func() {
			data := npyFile("<f8", false, "(2, 2)", []float64{1, math.NaN(), 3, 4})
			_, err := corpus.ReadMatrix(bytes.NewReader(data))
			Expect(err).To(MatchError(corpus.ErrDataUnavailable))

			data = npyFile("<f4", false, "(1, 2)", []float32{float32(math.Inf(1)), 0})
			_, err = corpus.ReadMatrix(bytes.NewReader(data))
			Expect(err).To(MatchError(corpus.ErrDataUnavailable))
		})

		It("rejects a payload shorter than its shape", func() {
			data := npyFile("<f8", false, "(2, 2)", []float64{1, 2, 3})
			_, err := corpus.ReadMatrix(bytes.NewReader(data))
			Expect(err).To(MatchError(corpus.ErrDataUnavailable))
		})

		It("rejects arrays that are not 2-D", func() {
			data := npyFile("<f8", false, "(3,)", []float64{1, 2, 3})
			_, err := corpus.ReadMatrix(bytes.NewReader(data))
			Expect(err).To(MatchError(corpus.ErrDataUnavailable))
		})

		It("rejects garbage", func() {
			_, err := corpus.ReadMatrix(strings.NewReader("not a numpy file"))
			Expect(err).To(MatchError(corpus.ErrDataUnavailable))
		})
	})
})
