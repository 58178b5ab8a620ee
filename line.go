package gctrace

import (
	"math"
	"strconv"
	"strings"
)

type Letter byte

// Param is one letter/value word on a program line, such as X10.5 or F600.
type Param struct {
	Letter Letter
	Value  float64
}

func (p Param) String() string {
	return string(p.Letter) + strconv.FormatFloat(p.Value, 'f', -1, 64)
}

// Line is a single tokenized program line. Lines are produced by a tokenizer,
// such as Parser, and are never modified by the interpreter.
type Line struct {
	Number  int
	Code    int  // Primary G code; only meaningful when HasCode is set.
	HasCode bool
	Params  []Param
}

func (ln Line) String() string {
	var sb strings.Builder
	sb.WriteString("N")
	sb.WriteString(strconv.Itoa(ln.Number))
	if ln.HasCode {
		sb.WriteString(" G")
		sb.WriteString(strconv.Itoa(ln.Code))
	}
	for _, p := range ln.Params {
		sb.WriteByte(' ')
		sb.WriteString(p.String())
	}
	return sb.String()
}

// Lookup returns the value of the last parameter with letter.
func (ln Line) Lookup(letter Letter) (float64, bool) {
	for pdx := len(ln.Params) - 1; pdx >= 0; pdx -= 1 {
		if ln.Params[pdx].Letter == letter {
			return ln.Params[pdx].Value, true
		}
	}
	return 0.0, false
}

func (ln Line) Has(letter Letter) bool {
	_, ok := ln.Lookup(letter)
	return ok
}

// GNumbers returns the primary code, if any, followed by every integral G
// parameter in the order listed.
func (ln Line) GNumbers() []int {
	var nums []int
	if ln.HasCode {
		nums = append(nums, ln.Code)
	}
	for _, p := range ln.Params {
		if n, ok := asInteger(p.Value); ok && p.Letter == 'G' {
			nums = append(nums, n)
		}
	}
	return nums
}

func (ln Line) hasInteger(letter Letter, num int) bool {
	for _, p := range ln.Params {
		if n, ok := asInteger(p.Value); ok && p.Letter == letter && n == num {
			return true
		}
	}
	return false
}

func asInteger(v float64) (int, bool) {
	if v != math.Trunc(v) || math.IsInf(v, 0) || v > math.MaxInt32 || v < math.MinInt32 {
		return 0, false
	}
	return int(v), true
}
