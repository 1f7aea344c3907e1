package cmd

import (
	"bufio"
	"fmt"
	"io"

	"github.com/etnz/allocator"
	"github.com/shopspring/decimal"
)

// prompter asks the user for missing amounts.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// amount asks for a positive amount until one is typed.
func (p *prompter) amount(question string) (decimal.Decimal, error) {
	for {
		fmt.Fprintf(p.out, "%s: ", question)
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return decimal.Zero, err
			}
			return decimal.Zero, io.ErrUnexpectedEOF
		}
		d, err := allocator.ParseAmount(p.in.Text())
		if err != nil {
			fmt.Fprintln(p.out, "please type a number")
			continue
		}
		if !d.IsPositive() {
			fmt.Fprintln(p.out, "please type a positive number")
			continue
		}
		return d, nil
	}
}
