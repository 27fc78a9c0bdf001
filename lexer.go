package meval

import (
	"io"
	"iter"
	"strings"
	"unicode/utf8"
)

// TokenType identifies the lexical class of a Token.
type TokenType int

const (
	TokNumber TokenType = iota
	TokIdent
	TokOperator
	TokLParen
	TokRParen
)

var tokenTypeNames = [...]string{
	TokNumber:   "number",
	TokIdent:    "identifier",
	TokOperator: "operator",
	TokLParen:   "(",
	TokRParen:   ")",
}

func (t TokenType) String() string {
	if t < 0 || int(t) >= len(tokenTypeNames) {
		return "unknown"
	}
	return tokenTypeNames[t]
}

// Token is a lexical token. End is the byte offset in the source right
// after the matched text.
type Token struct {
	Type  TokenType
	Value string
	End   int
}

// NewToken creates a Token.
func NewToken(t TokenType, value string, end int) Token {
	return Token{Type: t, Value: value, End: end}
}

// Start returns the byte offset of the first character of the token.
func (t Token) Start() int {
	return t.End - len(t.Value)
}

func (t Token) String() string {
	return t.Type.String() + ":" + t.Value
}

// static data

const numeric = "0123456789"

const alphabetic = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

const operatorRunes = "*+-/^!"

// scanner holds the position of a single NextToken call.
type scanner struct {
	input      string
	start, pos int
}

func (s *scanner) peek() byte {
	if s.pos >= len(s.input) {
		return 0
	}
	return s.input[s.pos]
}

func (s *scanner) peekAt(offset int) byte {
	if s.pos+offset >= len(s.input) {
		return 0
	}
	return s.input[s.pos+offset]
}

func (s *scanner) accept(valid string) bool {
	c := s.peek()
	if c != 0 && strings.IndexByte(valid, c) >= 0 {
		s.pos++
		return true
	}
	return false
}

func (s *scanner) acceptRun(valid string) {
	for s.accept(valid) {
	}
}

func (s *scanner) emit(t TokenType) Token {
	return NewToken(t, s.input[s.start:s.pos], s.pos)
}

// NextToken scans the token starting at byte offset start of src. It
// returns io.EOF when only spaces remain.
func NextToken(src string, start int) (Token, error) {
	s := &scanner{input: src, pos: start}
	for s.peek() == ' ' {
		s.pos++
	}
	s.start = s.pos
	if s.pos >= len(src) {
		return Token{}, io.EOF
	}

	c := s.peek()
	switch {
	case strings.IndexByte(numeric, c) >= 0 ||
		c == '.' && strings.IndexByte(numeric, s.peekAt(1)) >= 0:
		s.acceptRun(numeric)
		if s.accept(".") {
			s.acceptRun(numeric)
		}
		return s.emit(TokNumber), nil
	case strings.IndexByte(alphabetic, c) >= 0:
		s.acceptRun(alphabetic + numeric)
		return s.emit(TokIdent), nil
	case s.accept(operatorRunes):
		return s.emit(TokOperator), nil
	case s.accept("("):
		return s.emit(TokLParen), nil
	case s.accept(")"):
		return s.emit(TokRParen), nil
	}

	ru, _ := utf8.DecodeRuneInString(src[s.pos:])
	return Token{}, &LexError{Char: ru, Col: s.pos + 1}
}

// Lexer produces the tokens of an input one at a time. Once Next has
// returned an error (io.EOF included) it keeps returning that error.
type Lexer struct {
	input string
	pos   int
	err   error
}

// NewLexer creates a Lexer reading input from its start.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Next returns the next token, io.EOF at the end of the input, or a
// *LexError.
func (l *Lexer) Next() (Token, error) {
	if l.err != nil {
		return Token{}, l.err
	}
	t, err := NextToken(l.input, l.pos)
	if err != nil {
		l.err = err
		return Token{}, err
	}
	l.pos = t.End
	return t, nil
}

// Tokens returns the token sequence of src. Iteration stops after the
// first lexical error, which is yielded with a zero Token. Each call to
// the returned function starts over from the beginning of src.
func Tokens(src string) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		l := NewLexer(src)
		for {
			t, err := l.Next()
			if err == io.EOF {
				return
			}
			if !yield(t, err) || err != nil {
				return
			}
		}
	}
}
