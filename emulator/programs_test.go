package emulator_test

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mipsim/mipsim/cpu"
	"github.com/mipsim/mipsim/emulator"
)

// primality leaves 1 in $v0 if $a0 is prime, by trial division.
const primality = `
	.text
main:	li $v0, 0
	slti $t0, $a0, 2
	bnez $t0, done
	li $t1, 2
loop:	mult $t1, $t1
	mflo $t2
	slt $t0, $a0, $t2	# divisor squared past the candidate?
	bnez $t0, prime
	divu $a0, $t1
	mfhi $t3
	beqz $t3, done
	addiu $t1, $t1, 1
	j loop
prime:	li $v0, 1
done:
`

// strlen counts the bytes of msg into $v0.
const strlen = `
	.text
	la $a0, msg
	li $v0, 0
count:	lbu $t0, ($a0)
	beqz $t0, exit
	addiu $a0, $a0, 1
	addiu $v0, $v0, 1
	b count

	.data
msg:	.asciiz "hello, world"
	.align 2
exit:
`

// factorial computes 10! recursively, with a stack frame per call.
const factorial = `
	li $sp, 0x10000
	li $a0, 10
	jal fact
	move $s0, $v0
	j end

fact:	addiu $sp, $sp, -8
	sw $ra, 4($sp)
	sw $a0, 0($sp)
	li $v0, 1
	blez $a0, ret
	addiu $a0, $a0, -1
	jal fact
	lw $a0, 0($sp)
	mult $v0, $a0
	mflo $v0
ret:	lw $ra, 4($sp)
	addiu $sp, $sp, 8
	jr $ra
end:
`

var _ = Describe("Emulator", func() {
	var emu *emulator.Emulator

	BeforeEach(func() {
		emu = emulator.NewEmulator()
	})

	load := func(code string) {
		emu.Code = code
		Expect(emu.Reset()).To(Succeed())
	}

	run := func() {
		Expect(emu.Run(context.Background())).To(Succeed())
	}

	Describe("Primality", func() {
		for _, entry := range []struct {
			n     uint32
			prime bool
		}{
			{0, false},
			{1, false},
			{2, true},
			{3, true},
			{4, false},
			{91, false},
			{97, true},
			{7919, true},
			{7921, false},
		} {
			It(fmt.Sprintf("should classify %d", entry.n), func() {
				load(primality)
				emu.Registers.Set(cpu.REG_A0, entry.n)
				run()

				expected := uint32(0)
				if entry.prime {
					expected = 1
				}
				Expect(emu.Registers.Get(cpu.REG_V0)).To(Equal(expected))
			})
		}

		It("should end at the terminate word", func() {
			load(primality)
			emu.Registers.Set(cpu.REG_A0, 13)
			run()

			Expect(emu.Pc).To(Equal(emu.Result.Labels["done"]))
			Expect(emu.Memory.LoadWord(emu.Pc)).To(Equal(cpu.TERMINATE))
		})
	})

	Describe("Strlen", func() {
		BeforeEach(func() {
			load(strlen)
		})

		It("should place the string after the code", func() {
			Expect(emu.Result.Labels).To(HaveKeyWithValue("msg", uint32(36)))
			Expect(emu.Result.Labels).To(HaveKeyWithValue("exit", uint32(52)))
			Expect(emu.Memory.Byte(36)).To(Equal(byte('h')))
			Expect(emu.Memory.Byte(48)).To(Equal(byte(0)))
		})

		It("should count the bytes", func() {
			run()
			Expect(emu.Registers.Get(cpu.REG_V0)).To(Equal(uint32(12)))
			Expect(emu.Registers.Get(cpu.REG_A0)).To(Equal(uint32(48)))
		})
	})

	Describe("Factorial", func() {
		It("should recurse through the stack", func() {
			load(factorial)
			run()

			Expect(emu.Registers.Get(cpu.REG_S0)).To(Equal(uint32(3628800)))
			Expect(emu.Registers.Get(cpu.REG_SP)).To(Equal(uint32(0x10000)))
			Expect(emu.Memory.LoadWord(0x10000 - 8)).To(Equal(uint32(10)))
		})
	})

	Describe("Faults", func() {
		It("should report the line of a division by zero", func() {
			load("li $t0, 1\n\ndiv $t0, $zero\n")

			err := emu.Run(context.Background())
			Expect(err).To(MatchError(cpu.ErrDivideByZero))

			var rt *emulator.ErrRuntime
			Expect(errors.As(err, &rt)).To(BeTrue())
			Expect(rt.LineNo).To(Equal(3))
		})

		It("should refuse to run a program that did not assemble", func() {
			emu.Code = "li $t0\n"
			Expect(emu.Reset()).To(MatchError(emulator.ErrAssembly))
			Expect(emu.Result.Messages).To(ContainElement(HaveField("IsError", BeTrue())))

			done, err := emu.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(done).To(BeTrue())
		})
	})
})
