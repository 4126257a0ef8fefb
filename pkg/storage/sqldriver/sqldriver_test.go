package sqldriver

import (
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("statements", func() {
	words := func(n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = fmt.Sprintf("w%d", i)
		}
		return out
	}

	It("numbers Postgres placeholders", func() {
		d := &Driver{builder: entsql.Dialect(dialect.Postgres)}

		stmts := d.insertRanks("1", []string{"cat", "dog"})
		Expect(stmts).To(HaveLen(1))
		Expect(stmts[0].query).To(ContainSubstring("$6"))
		Expect(stmts[0].query).NotTo(ContainSubstring("?"))
		Expect(stmts[0].args).To(Equal([]any{"1", "cat", 0, "1", "dog", 1}))
	})

	It("uses ? placeholders for SQLite", func() {
		d := &Driver{builder: entsql.Dialect(dialect.SQLite)}

		del := d.deletePuzzle("1")
		Expect(del).To(HaveLen(2))
		Expect(del[0].query).To(ContainSubstring("puzzle_ranks"))
		Expect(del[0].query).To(ContainSubstring("?"))
		Expect(del[1].args).To(Equal([]any{"1"}))
	})

	It("splits large tables into bounded inserts", func() {
		d := &Driver{builder: entsql.Dialect(dialect.SQLite)}

		stmts := d.insertRanks("1", words(2*rankBatch+1))
		Expect(stmts).To(HaveLen(3))
		Expect(stmts[0].args).To(HaveLen(3 * rankBatch))
		Expect(stmts[2].args).To(Equal([]any{"1", fmt.Sprintf("w%d", 2*rankBatch), 2 * rankBatch}))
	})

	It("builds nothing for an empty table", func() {
		d := &Driver{builder: entsql.Dialect(dialect.SQLite)}
		Expect(d.insertRanks("1", nil)).To(BeEmpty())
	})
})

var _ = Describe("Tables", func() {
	It("cascades rank deletes from puzzles", func() {
		Expect(Tables).To(ConsistOf(PuzzlesTable, PuzzleRanksTable))
		fk := PuzzleRanksTable.ForeignKeys[0]
		Expect(fk.RefTable).To(BeIdenticalTo(PuzzlesTable))
		Expect(PuzzleRanksTable.PrimaryKey).To(HaveLen(2))
	})
})
