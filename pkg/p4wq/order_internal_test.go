package p4wq

import (
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Ordering", func() {
	Context("treeLess", func() {
		It("should put higher priority above lower priority", func() {
			low := &Work{Priority: 1, seq: 1}
			high := &Work{Priority: 2, seq: 2}

			Expect(treeLess(low, high)).To(BeTrue())
			Expect(treeLess(high, low)).To(BeFalse())
		})

		It("should put the earlier deadline above the later one on equal priority", func() {
			early := &Work{Priority: 3, Deadline: 10, seq: 2}
			late := &Work{Priority: 3, Deadline: 20, seq: 1}

			Expect(treeLess(late, early)).To(BeTrue())
			Expect(treeLess(early, late)).To(BeFalse())
		})

		// Given random items sharing a handful of priority/deadline pairs
		// When every pair of distinct items is compared
		// Then exactly one direction holds
		It("should never tie two distinct items", func() {
			items := make([]*Work, 200)
			for i := range items {
				items[i] = &Work{
					Priority: rand.IntN(2),
					Deadline: int64(rand.IntN(2)),
					seq:      uint64(i + 1),
				}
			}

			for i, a := range items {
				Expect(treeLess(a, a)).To(BeFalse())
				for _, b := range items[i+1:] {
					Expect(treeLess(a, b)).NotTo(Equal(treeLess(b, a)))
				}
			}
		})
	})

	Context("beatsOrTies", func() {
		It("should count equal priority and deadline as a tie", func() {
			a := &Work{Priority: 5, Deadline: 7, seq: 1}
			b := &Work{Priority: 5, Deadline: 7, seq: 2}

			Expect(beatsOrTies(a, b)).To(BeTrue())
			Expect(beatsOrTies(b, a)).To(BeTrue())
		})

		It("should not let a later deadline beat an earlier one", func() {
			early := &Work{Priority: 5, Deadline: 1}
			late := &Work{Priority: 5, Deadline: 2}

			Expect(beatsOrTies(early, late)).To(BeTrue())
			Expect(beatsOrTies(late, early)).To(BeFalse())
		})

		It("should ignore deadlines across priorities", func() {
			urgent := &Work{Priority: 9, Deadline: 1000}
			relaxed := &Work{Priority: 1, Deadline: 0}

			Expect(beatsOrTies(urgent, relaxed)).To(BeTrue())
			Expect(beatsOrTies(relaxed, urgent)).To(BeFalse())
		})
	})
})
