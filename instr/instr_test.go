package instr

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type mapRegs map[string]int64

func (m mapRegs) Read(name string) int64 {
	return m[name]
}

var _ = Describe("Operand", func() {
	It("should resolve a literal to itself", func() {
		Expect(Lit(-7).Resolve(mapRegs{})).To(Equal(int64(-7)))
		Expect(Lit(-7).IsLiteral()).To(BeTrue())
	})

	It("should resolve a register through the register file", func() {
		regs := mapRegs{"a": 3}

		Expect(Reg("a").Resolve(regs)).To(Equal(int64(3)))
		Expect(Reg("b").Resolve(regs)).To(Equal(int64(0)))
		Expect(Reg("a").IsRegister()).To(BeTrue())
	})

	It("should refuse an empty register name", func() {
		Expect(func() { Reg("") }).To(Panic())
	})

	It("should refuse to resolve an absent operand", func() {
		Expect(func() { Operand{}.Resolve(mapRegs{}) }).To(Panic())
	})
})

var _ = Describe("Inst", func() {
	It("should place operands by opcode", func() {
		Expect(Snd(Reg("a")).Operands()).To(Equal([]Operand{Reg("a")}))
		Expect(Rcv("b").Operands()).To(Equal([]Operand{Reg("b")}))
		Expect(Jgz(Lit(1), Reg("c")).Operands()).To(Equal([]Operand{Lit(1), Reg("c")}))
	})

	It("should print in assembly form", func() {
		prog := Program{
			Set("a", Lit(1)),
			Mod("a", Reg("b")),
			Jgz(Reg("a"), Lit(-2)),
		}

		Expect(prog.String()).To(Equal("set a 1\nmod a b\njgz a -2"))
	})

	It("should report arities", func() {
		Expect(OpSnd.Arity()).To(Equal(1))
		Expect(OpRcv.Arity()).To(Equal(1))
		Expect(OpJgz.Arity()).To(Equal(2))
		Expect(func() { OpInvalid.Arity() }).To(Panic())
	})
})
