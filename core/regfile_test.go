package core

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RegisterFile", func() {
	It("should read unwritten registers as zero", func() {
		r := NewRegisterFile()

		Expect(r.Read("a")).To(Equal(int64(0)))
		Expect(r.Len()).To(Equal(0))
	})

	It("should list written registers by name", func() {
		r := NewRegisterFile()
		r.Write("p", 1)
		r.Write("a", -5)
		r.Write("f", 0)

		Expect(r.Snapshot()).To(Equal([]RegisterValue{
			{Name: "a", Value: -5},
			{Name: "f", Value: 0},
			{Name: "p", Value: 1},
		}))
	})
})
