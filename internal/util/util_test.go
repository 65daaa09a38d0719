package util_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/p4wq/internal/util"
)

var _ = Describe("ParseCPUList", func() {
	DescribeTable("valid lists",
		func(in string, expected []int) {
			cpus, err := util.ParseCPUList(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(cpus).To(Equal(expected))
		},
		Entry("empty", "", []int(nil)),
		Entry("single", "2", []int{2}),
		Entry("range", "0-3", []int{0, 1, 2, 3}),
		Entry("mixed with spaces", " 6, 0-1 ", []int{0, 1, 6}),
		Entry("overlap", "1-2,2-3", []int{1, 2, 3}),
	)

	DescribeTable("invalid lists",
		func(in string) {
			_, err := util.ParseCPUList(in)
			Expect(err).To(HaveOccurred())
		},
		Entry("reversed range", "3-1"),
		Entry("negative", "-1"),
		Entry("garbage", "a"),
		Entry("trailing comma", "1,"),
	)
})

var _ = Describe("Ratio", func() {
	It("should round to two decimals", func() {
		Expect(util.Ratio(1, 3)).To(Equal(0.33))
	})

	It("should return zero for an empty total", func() {
		Expect(util.Ratio(5, 0)).To(Equal(0.0))
	})
})
