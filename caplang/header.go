package caplang

import (
	"fmt"
	"go/scanner"
	"go/token"

	"github.com/reusee/lambdas/capvm"
)

type header struct {
	spec   capvm.CaptureSpec
	params []capvm.Param
	// offsets of the opening brace of the body and just past its closing brace
	bodyOffset int
	bodyEnd    int
}

type tokenStream struct {
	file    *token.File
	scanner scanner.Scanner
	errs    scanner.ErrorList

	pos token.Pos
	tok token.Token
	lit string
}

func newTokenStream(src string) *tokenStream {
	fset := token.NewFileSet()
	s := &tokenStream{
		file: fset.AddFile("lambda", -1, len(src)),
	}
	s.scanner.Init(s.file, []byte(src), func(pos token.Position, msg string) {
		s.errs.Add(pos, msg)
	}, 0)
	s.next()
	return s
}

func (s *tokenStream) next() {
	for {
		s.pos, s.tok, s.lit = s.scanner.Scan()
		// skip automatically inserted semicolons
		if s.tok == token.SEMICOLON && s.lit == "\n" {
			continue
		}
		return
	}
}

func (s *tokenStream) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: offset %d: %s", ErrSyntax, s.file.Offset(s.pos), fmt.Sprintf(format, args...))
}

func (s *tokenStream) expect(tok token.Token) error {
	if s.tok != tok {
		return s.errorf("expecting %s, got %s", tok, s.describe())
	}
	s.next()
	return nil
}

func (s *tokenStream) describe() string {
	if s.lit != "" {
		return s.lit
	}
	return s.tok.String()
}

func parseHeader(src string) (*header, error) {
	s := newTokenStream(src)
	h := new(header)

	spec, err := parseCaptures(s)
	if err != nil {
		return nil, err
	}
	h.spec = spec

	// parameters
	if s.tok == token.LPAREN {
		s.next()
		for s.tok != token.RPAREN {
			param, err := parseParam(s)
			if err != nil {
				return nil, err
			}
			h.params = append(h.params, param)
			if s.tok == token.COMMA {
				s.next()
			} else if s.tok != token.RPAREN {
				return nil, s.errorf("expecting , or ), got %s", s.describe())
			}
		}
		s.next()
	}

	if s.tok == token.IDENT && s.lit == "mutable" {
		h.spec.Mutable = true
		s.next()
	}

	if s.tok != token.LBRACE {
		return nil, s.errorf("expecting body, got %s", s.describe())
	}
	h.bodyOffset = s.file.Offset(s.pos)

	// matching brace, the scanner skips strings and comments
	for depth := 0; ; s.next() {
		switch s.tok {
		case token.LBRACE:
			depth++
		case token.RBRACE:
			depth--
		case token.EOF:
			return nil, s.errorf("unterminated body")
		}
		if depth == 0 {
			h.bodyEnd = s.file.Offset(s.pos) + 1
			break
		}
	}

	if len(s.errs) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, s.errs.Err())
	}
	return h, nil
}

func parseCaptures(s *tokenStream) (spec capvm.CaptureSpec, err error) {
	if err := s.expect(token.LBRACK); err != nil {
		return spec, err
	}
	for i := 0; s.tok != token.RBRACK; i++ {
		switch s.tok {

		case token.ASSIGN:
			if i != 0 {
				return spec, s.errorf("capture default must come first")
			}
			spec.Default = capvm.DefaultValue
			s.next()

		case token.AND:
			s.next()
			if s.tok == token.IDENT {
				spec.Explicit = append(spec.Explicit, capvm.Capture{
					Name:        s.lit,
					ByReference: true,
				})
				s.next()
			} else {
				if i != 0 {
					return spec, s.errorf("capture default must come first")
				}
				spec.Default = capvm.DefaultReference
			}

		case token.IDENT:
			spec.Explicit = append(spec.Explicit, capvm.Capture{
				Name: s.lit,
			})
			s.next()

		default:
			return spec, s.errorf("unexpected %s in capture list", s.describe())
		}

		if s.tok == token.COMMA {
			s.next()
		} else if s.tok != token.RBRACK {
			return spec, s.errorf("expecting , or ], got %s", s.describe())
		}
	}
	s.next()
	return spec, nil
}

func parseParam(s *tokenStream) (param capvm.Param, err error) {
	param.Kind = capvm.ParamValue
	if s.tok == token.CONST {
		s.next()
		if s.tok != token.AND {
			return param, s.errorf("const parameter must be a reference")
		}
		param.Kind = capvm.ParamConstReference
		s.next()
	} else if s.tok == token.AND {
		param.Kind = capvm.ParamReference
		s.next()
	}
	if s.tok != token.IDENT {
		return param, s.errorf("expecting parameter name, got %s", s.describe())
	}
	param.Name = s.lit
	s.next()
	return param, nil
}
