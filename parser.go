package gctrace

import (
	"fmt"
	"io"
	"math"
	"runtime"
	"strconv"
	"strings"
)

// Parser splits program text into Lines. It understands words (a letter
// followed by a number), N line numbers, *nnn checksums, and comments: line
// end comments start with ; or %, inline comments are delimited by ( and ).
// Expressions and parameters are not supported.
type Parser struct {
	Scanner io.ByteScanner

	// LineEndComment is called when line end comments are parsed.
	LineEndComment func(comment string) error

	// InlineComment is called when inline comments are parsed.
	InlineComment func(comment string) error

	physicalLine int  // Count of lines
	virtualLine  int  // Lines as tracked by Nnnn
	eof          bool // The scanner is exhausted; it reads as a final newline.
	last         byte
	unread       bool
}

// Parse returns the next line that has at least one word on it. It returns
// io.EOF once the input is exhausted.
func (p *Parser) Parse() (ln Line, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); ok {
				panic(r)
			}
			err = r.(error)
			ln = Line{}
		}
	}()

	for {
		var ok bool
		ln, ok = p.parseLine()
		if ok {
			return ln, nil
		}
	}
}

// ParseLines parses all of s.
func ParseLines(s string) ([]Line, error) {
	p := Parser{Scanner: strings.NewReader(s)}
	var lines []Line
	for {
		ln, err := p.Parse()
		if err == io.EOF {
			return lines, nil
		} else if err != nil {
			return nil, err
		}
		lines = append(lines, ln)
	}
}

func MustParseLines(s string) []Line {
	lines, err := ParseLines(s)
	if err != nil {
		panic(err)
	}
	return lines
}

func (p *Parser) error(msg string) {
	panic(fmt.Errorf("%s: %s", p.where(), msg))
}

func (p *Parser) readByte() byte {
	if p.unread {
		p.unread = false
		return p.last
	}
	if p.eof {
		p.last = '\n'
		return p.last
	}

	b, err := p.Scanner.ReadByte()
	if err == io.EOF {
		p.eof = true
		b = '\n'
	} else if err != nil {
		p.error(err.Error())
	}
	p.last = b
	return b
}

func (p *Parser) unreadByte() {
	p.unread = true
}

func (p *Parser) where() string {
	if p.physicalLine == p.virtualLine {
		return fmt.Sprintf("%d", p.physicalLine)
	}
	return fmt.Sprintf("%d(%d)", p.physicalLine, p.virtualLine)
}

func (p *Parser) skipBlanks() {
	b := p.readByte()
	for b == ' ' || b == '\t' {
		b = p.readByte()
	}
	p.unreadByte()
}

func isLineEnd(b byte) bool {
	return b == '\n' || b == '\r'
}

// endOfLine consumes the rest of a line ending that started with b.
func (p *Parser) endOfLine(b byte) {
	if b == '\r' && p.readByte() != '\n' {
		p.unreadByte()
	}
}

// readComment returns the text up to end, or up to the end of the line when
// end is a newline.
func (p *Parser) readComment(end byte) string {
	var sb strings.Builder
	for {
		b := p.readByte()
		if isLineEnd(b) {
			if end != '\n' {
				p.error("inline comments must be on one line")
			}
			p.endOfLine(b)
			return sb.String()
		} else if b == end {
			return sb.String()
		}
		sb.WriteByte(b)
	}
}

func (p *Parser) comment(fn func(string) error, text string) {
	if fn == nil {
		return
	}
	if err := fn(text); err != nil {
		p.error(err.Error())
	}
}

func (p *Parser) parseLine() (Line, bool) {
	if p.eof && !p.unread {
		panic(io.EOF)
	}

	p.physicalLine += 1
	p.virtualLine += 1

	var ln Line
	var words, numbered, checksum bool
	for {
		p.skipBlanks()
		b := upcaseByte(p.readByte())

		switch {
		case isLineEnd(b):
			p.endOfLine(b)
			ln.Number = p.virtualLine
			return ln, words
		case b == ';' || b == '%':
			p.comment(p.LineEndComment, p.readComment('\n'))
			ln.Number = p.virtualLine
			return ln, words
		case b == '(':
			p.comment(p.InlineComment, p.readComment(')'))
		case b == '*':
			// Checksums are read and dropped; nothing but comments may follow.
			p.skipBlanks()
			p.wantInteger()
			checksum = true
		case b < 'A' || b > 'Z':
			p.error(fmt.Sprintf("unexpected character: %q", b))
		case checksum:
			p.error("checksum (*nnn) must be at end of line")
		case b == 'N':
			if words || numbered {
				p.error("N code must be first on line")
			}
			p.skipBlanks()
			num := p.wantInteger()
			if num < p.virtualLine {
				p.error(fmt.Sprintf("N%d invalid", num))
			}
			p.virtualLine = num
			numbered = true
		default:
			val := p.parseNumber()
			words = true
			if num, ok := asInteger(val); ok && b == 'G' && !ln.HasCode {
				ln.Code = num
				ln.HasCode = true
			} else {
				ln.Params = append(ln.Params, Param{Letter: Letter(b), Value: val})
			}
		}
	}
}

// digits appends a run of decimal digits to sb and returns how many there
// were.
func (p *Parser) digits(sb *strings.Builder) int {
	var n int
	for b := p.readByte(); b >= '0' && b <= '9'; b = p.readByte() {
		sb.WriteByte(b)
		n += 1
	}
	p.unreadByte()
	return n
}

// parseNumber reads an optionally signed decimal number; either side of the
// point may be empty, but not both.
func (p *Parser) parseNumber() float64 {
	p.skipBlanks()

	var sb strings.Builder
	if b := p.readByte(); b == '-' || b == '+' {
		sb.WriteByte(b)
	} else {
		p.unreadByte()
	}

	n := p.digits(&sb)
	if p.readByte() == '.' {
		sb.WriteByte('.')
		n += p.digits(&sb)
	} else {
		p.unreadByte()
	}
	if n == 0 {
		p.error("expected a number")
	}

	num, err := strconv.ParseFloat(sb.String(), 64)
	if err != nil {
		p.error(err.Error())
	}
	return num
}

func (p *Parser) wantInteger() int {
	var sb strings.Builder
	if p.digits(&sb) == 0 {
		p.error("expected a number")
	}

	num, err := strconv.ParseInt(sb.String(), 10, 64)
	if err != nil || num > math.MaxInt32 {
		p.error("number too big")
	}
	return int(num)
}

func upcaseByte(b byte) byte {
	if 'a' <= b && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
