package core

import (
	"bytes"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/duet/instr"
)

// set a 1; add a 2; mul a a; mod a 5; snd a; set a 0; rcv a; jgz a -1;
// set a 1; jgz a -2
var recoverProgram = instr.Program{
	instr.Set("a", instr.Lit(1)),
	instr.Add("a", instr.Lit(2)),
	instr.Mul("a", instr.Reg("a")),
	instr.Mod("a", instr.Lit(5)),
	instr.Snd(instr.Reg("a")),
	instr.Set("a", instr.Lit(0)),
	instr.Rcv("a"),
	instr.Jgz(instr.Reg("a"), instr.Lit(-1)),
	instr.Set("a", instr.Lit(1)),
	instr.Jgz(instr.Reg("a"), instr.Lit(-2)),
}

// snd 1; snd 2; snd p; rcv a; rcv b; rcv c; rcv d
var exchangeProgram = instr.Program{
	instr.Snd(instr.Lit(1)),
	instr.Snd(instr.Lit(2)),
	instr.Snd(instr.Reg("p")),
	instr.Rcv("a"),
	instr.Rcv("b"),
	instr.Rcv("c"),
	instr.Rcv("d"),
}

var _ = Describe("Machine", func() {
	var (
		mockCtrl *gomock.Controller
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	Context("when running solo", func() {
		It("should recover the last frequency", func() {
			m := NewBuilder().WithProgram(recoverProgram).Build("Solo")

			Expect(m.Mode()).To(Equal(SoloMode))
			Expect(m.Step()).To(Equal(Halted))

			freq, ok := m.Frequency()
			Expect(ok).To(BeTrue())
			Expect(freq).To(Equal(int64(4)))
			Expect(m.Recovered()).To(BeTrue())
			Expect(m.Registers().Read("a")).To(Equal(int64(4)))
		})

		It("should not seed the id register", func() {
			m := NewBuilder().WithProgram(recoverProgram).Build("Solo")

			Expect(m.Registers().Len()).To(Equal(0))
		})

		It("should halt when the program runs off the end", func() {
			m := NewBuilder().
				WithProgram(instr.Program{instr.Set("a", instr.Lit(1))}).
				Build("Solo")

			Expect(m.Step()).To(Equal(Halted))
			Expect(m.Steps()).To(Equal(1))
			Expect(m.Recovered()).To(BeFalse())
		})

		It("should halt when a jump goes before the first instruction", func() {
			m := NewBuilder().
				WithProgram(instr.Program{
					instr.Set("a", instr.Lit(1)),
					instr.Jgz(instr.Reg("a"), instr.Lit(-5)),
				}).
				Build("Solo")

			Expect(m.Step()).To(Equal(Halted))
			Expect(m.PC()).To(Equal(-4))
			Expect(m.Steps()).To(Equal(2))
		})

		It("should halt at once on an empty program", func() {
			m := NewBuilder().WithProgram(instr.Program{}).Build("Solo")

			Expect(m.Exec()).To(Equal(Halted))
			Expect(m.Steps()).To(Equal(0))
		})

		It("should halt with a fault on mod by zero", func() {
			m := NewBuilder().
				WithProgram(instr.Program{
					instr.Set("a", instr.Lit(3)),
					instr.Mod("a", instr.Reg("b")),
				}).
				Build("Solo")

			Expect(m.Step()).To(Equal(Halted))
			Expect(m.Fault()).To(MatchError(ErrModuloByZero))
			Expect(m.Steps()).To(Equal(1))
		})

		It("should stay halted", func() {
			m := NewBuilder().WithProgram(recoverProgram).Build("Solo")
			m.Step()
			steps := m.Steps()

			Expect(m.Exec()).To(Equal(Halted))
			Expect(m.Step()).To(Equal(Halted))
			Expect(m.Steps()).To(Equal(steps))
		})

		It("should yield when the quantum is used up", func() {
			m := NewBuilder().
				WithProgram(instr.Program{
					instr.Jgz(instr.Lit(1), instr.Lit(0)),
				}).
				WithQuantum(10).
				Build("Solo")

			Expect(m.Step()).To(Equal(Continuing))
			Expect(m.Steps()).To(Equal(10))
			Expect(m.Step()).To(Equal(Continuing))
			Expect(m.Steps()).To(Equal(20))
		})
	})

	Context("when running as a duet", func() {
		var (
			c01, c10 *Channel
			m0, m1   *Machine
		)

		BeforeEach(func() {
			c01 = NewChannel("0->1")
			c10 = NewChannel("1->0")

			b := NewBuilder().WithProgram(exchangeProgram)
			m0 = b.WithID(0).WithInbound(c10).WithOutbound(c01).Build("M0")
			m1 = b.WithID(1).WithInbound(c01).WithOutbound(c10).Build("M1")
		})

		It("should seed the id register", func() {
			Expect(m0.Mode()).To(Equal(DuetMode))
			Expect(m0.Registers().Read("p")).To(Equal(int64(0)))
			Expect(m0.Registers().Len()).To(Equal(1))
			Expect(m1.Registers().Read("p")).To(Equal(int64(1)))
		})

		It("should block and resume on the same receive", func() {
			Expect(m0.Step()).To(Equal(Blocked))
			Expect(m0.PC()).To(Equal(3))
			Expect(m0.SentCount()).To(Equal(3))
			Expect(c01.Values()).To(Equal([]int64{1, 2, 0}))

			Expect(m1.Step()).To(Equal(Blocked))
			Expect(m1.PC()).To(Equal(6))
			Expect(m1.Registers().Read("c")).To(Equal(int64(0)))

			Expect(m0.Step()).To(Equal(Blocked))
			Expect(m0.PC()).To(Equal(6))
			Expect(m0.Registers().Read("a")).To(Equal(int64(1)))
			Expect(m0.Registers().Read("b")).To(Equal(int64(2)))
			Expect(m0.Registers().Read("c")).To(Equal(int64(1)))

			Expect(m0.SentCount()).To(Equal(3))
			Expect(m1.SentCount()).To(Equal(3))
			Expect(c01.Empty()).To(BeTrue())
			Expect(c10.Empty()).To(BeTrue())
		})

		It("should report blocks and executed instructions to hooks", func() {
			hook := NewMockHook(mockCtrl)
			m0.AcceptHook(hook)

			executed, blocked := 0, 0
			hook.EXPECT().Func(gomock.Any()).Do(func(ctx sim.HookCtx) {
				Expect(ctx.Domain).To(BeIdenticalTo(m0))
				switch ctx.Pos {
				case HookPosInstExecuted:
					executed++
				case HookPosMachineBlocked:
					blocked++
				}
			}).AnyTimes()

			m0.Step()
			m0.Step()

			Expect(executed).To(Equal(3))
			Expect(blocked).To(Equal(2))
		})

		It("should panic if only one channel is set", func() {
			Expect(func() {
				NewBuilder().
					WithProgram(exchangeProgram).
					WithInbound(c01).
					Build("Broken")
			}).To(Panic())
		})

		It("should panic without a program", func() {
			Expect(func() { NewBuilder().Build("Broken") }).To(Panic())
		})
	})

	It("should print the state of machines", func() {
		m := NewBuilder().WithProgram(recoverProgram).Build("Solo")
		m.Step()

		var buf bytes.Buffer
		PrintState(&buf, m)

		Expect(buf.String()).To(ContainSubstring("Solo"))
		Expect(buf.String()).To(ContainSubstring("Steps"))
		Expect(m.String()).To(Equal("Solo(id=0, pc=6, sent=0)"))
	})

	It("should keep the hooks of builders derived from one base apart", func() {
		base := NewBuilder().
			WithProgram(recoverProgram).
			WithHook(NewMockHook(mockCtrl)).
			WithHook(NewMockHook(mockCtrl)).
			WithHook(NewMockHook(mockCtrl))
		hookX := NewMockHook(mockCtrl)
		hookY := NewMockHook(mockCtrl)

		x := base.WithHook(hookX)
		y := base.WithHook(hookY)

		Expect(base.hooks).To(HaveLen(3))
		Expect(x.hooks[3]).To(BeIdenticalTo(hookX))
		Expect(y.hooks[3]).To(BeIdenticalTo(hookY))
	})
})
