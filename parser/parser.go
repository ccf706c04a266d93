// Package parser implements tinyc's recursive-descent parser: it drives
// the lexer, builds an AST of fixed-shape nodes, and resolves identifier
// occurrences against the symbol table as they are first seen.
package parser

import (
	"github.com/skx/tinyc/ast"
	"github.com/skx/tinyc/compileerr"
	"github.com/skx/tinyc/lexer"
	"github.com/skx/tinyc/symtab"
	"github.com/skx/tinyc/token"
)

// Parser holds the parse-time state: the lexer producing tokens, the AST
// arena nodes are allocated into, the symbol table identifiers resolve
// against, and the single-token lookahead.
type Parser struct {
	lex     *lexer.Lexer
	pool    *ast.Pool
	symbols *symtab.Table

	tok token.Token
}

// New returns a Parser reading from lex, allocating nodes into pool, and
// resolving identifiers against symbols.
func New(lex *lexer.Lexer, pool *ast.Pool, symbols *symtab.Table) *Parser {
	return &Parser{lex: lex, pool: pool, symbols: symbols}
}

// Parse parses a whole program - a sequence of zero or more top-level
// statements, exactly like the block-statement body at LBRACE below, but
// terminated by EOF instead of '}' - and returns the index of its PROG
// node. This lets a program consist of several top-level "void" function
// definitions, as the mandatory S5 scenario requires.
func (p *Parser) Parse() (int, error) {
	if err := p.advance(); err != nil {
		return 0, err
	}

	x, err := p.newNode(ast.EMPTY, ast.NoNode, ast.NoNode, ast.NoNode, 0)
	if err != nil {
		return 0, err
	}
	for p.tok.Type != token.EOF {
		stmt, err := p.statement()
		if err != nil {
			return 0, err
		}
		x, err = p.newNode(ast.SEQ, x, stmt, ast.NoNode, 0)
		if err != nil {
			return 0, err
		}
	}

	return p.newNode(ast.PROG, x, ast.NoNode, ast.NoNode, 0)
}

// advance stages the next token as the lookahead.
func (p *Parser) advance() error {
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) newNode(kind ast.Kind, o1, o2, o3, payload int) (int, error) {
	return p.pool.New(kind, o1, o2, o3, payload)
}

func (p *Parser) syntaxErrorf(message string) error {
	return &compileerr.SyntaxError{Pos: p.lex.Offset(), Message: message}
}

// expect consumes the current token if it matches typ, or returns a
// SyntaxError.
func (p *Parser) expect(typ token.Type) error {
	if p.tok.Type != typ {
		return p.syntaxErrorf("expected '" + string(typ) + "', found '" + string(p.tok.Type) + "'")
	}
	return p.advance()
}

// statement := "if" "(" expr ")" statement [ "else" statement ]
//            | "while" "(" expr ")" statement
//            | "do" statement "while" "(" expr ")" ";"
//            | "return" ";"
//            | "{" { statement } "}"
//            | "void" FUNC "{" statement "}"
//            | FUNC ";"
//            | ";"
//            | expr ";"
func (p *Parser) statement() (int, error) {
	switch p.tok.Type {
	case token.IF:
		if err := p.advance(); err != nil {
			return 0, err
		}
		cond, err := p.parenExpr()
		if err != nil {
			return 0, err
		}
		then, err := p.statement()
		if err != nil {
			return 0, err
		}
		if p.tok.Type == token.ELSE {
			if err := p.advance(); err != nil {
				return 0, err
			}
			els, err := p.statement()
			if err != nil {
				return 0, err
			}
			return p.newNode(ast.IF2, cond, then, els, 0)
		}
		return p.newNode(ast.IF1, cond, then, ast.NoNode, 0)

	case token.WHILE:
		if err := p.advance(); err != nil {
			return 0, err
		}
		cond, err := p.parenExpr()
		if err != nil {
			return 0, err
		}
		body, err := p.statement()
		if err != nil {
			return 0, err
		}
		return p.newNode(ast.WHILE, cond, body, ast.NoNode, 0)

	case token.DO:
		if err := p.advance(); err != nil {
			return 0, err
		}
		body, err := p.statement()
		if err != nil {
			return 0, err
		}
		if err := p.expect(token.WHILE); err != nil {
			return 0, err
		}
		cond, err := p.parenExpr()
		if err != nil {
			return 0, err
		}
		if err := p.expect(token.SEMI); err != nil {
			return 0, err
		}
		return p.newNode(ast.DO, body, cond, ast.NoNode, 0)

	case token.RETURN:
		if err := p.advance(); err != nil {
			return 0, err
		}
		if err := p.expect(token.SEMI); err != nil {
			return 0, err
		}
		return p.newNode(ast.RET, ast.NoNode, ast.NoNode, ast.NoNode, 0)

	case token.SEMI:
		if err := p.advance(); err != nil {
			return 0, err
		}
		return p.newNode(ast.EMPTY, ast.NoNode, ast.NoNode, ast.NoNode, 0)

	case token.LBRACE:
		if err := p.advance(); err != nil {
			return 0, err
		}
		x, err := p.newNode(ast.EMPTY, ast.NoNode, ast.NoNode, ast.NoNode, 0)
		if err != nil {
			return 0, err
		}
		for p.tok.Type != token.RBRACE {
			if p.tok.Type == token.EOF {
				return 0, p.syntaxErrorf("unexpected end of input, expected '}'")
			}
			stmt, err := p.statement()
			if err != nil {
				return 0, err
			}
			x, err = p.newNode(ast.SEQ, x, stmt, ast.NoNode, 0)
			if err != nil {
				return 0, err
			}
		}
		if err := p.advance(); err != nil {
			return 0, err
		}
		return x, nil

	case token.VOID:
		if err := p.advance(); err != nil {
			return 0, err
		}
		if p.tok.Type != token.FUNC {
			return 0, p.syntaxErrorf("expected a function name followed by '()' after 'void'")
		}
		name := p.tok.Name
		if p.symbols.Find(name, symtab.Func) != 0 {
			return 0, p.syntaxErrorf("function '" + name + "' is already defined")
		}
		idx, err := p.symbols.Insert(name, symtab.Func)
		if err != nil {
			return 0, err
		}
		if err := p.advance(); err != nil {
			return 0, err
		}
		if p.tok.Type != token.LBRACE {
			return 0, p.syntaxErrorf("expected '{' to start the body of '" + name + "'")
		}
		// The function body is parsed as a single statement, which -
		// since it starts with "{" - takes the ordinary block-statement
		// path above and consumes both braces itself.
		body, err := p.statement()
		if err != nil {
			return 0, err
		}
		return p.newNode(ast.FUNC_DEF, body, ast.NoNode, ast.NoNode, idx)

	case token.FUNC:
		name := p.tok.Name
		idx := p.symbols.Find(name, symtab.Func)
		if idx == 0 {
			return 0, p.syntaxErrorf("undefined function '" + name + "'")
		}
		if err := p.advance(); err != nil {
			return 0, err
		}
		if err := p.expect(token.SEMI); err != nil {
			return 0, err
		}
		return p.newNode(ast.FUNC_CALL, ast.NoNode, ast.NoNode, ast.NoNode, idx)

	default:
		e, err := p.expr()
		if err != nil {
			return 0, err
		}
		if err := p.expect(token.SEMI); err != nil {
			return 0, err
		}
		return p.newNode(ast.EXPR, e, ast.NoNode, ast.NoNode, 0)
	}
}

// parenExpr := "(" expr ")"
func (p *Parser) parenExpr() (int, error) {
	if err := p.expect(token.LPAREN); err != nil {
		return 0, err
	}
	e, err := p.expr()
	if err != nil {
		return 0, err
	}
	if err := p.expect(token.RPAREN); err != nil {
		return 0, err
	}
	return e, nil
}

// expr := test | ID "=" expr
//
// Implemented by first parsing a test; if the result is a VAR node and
// the current token is "=", it is re-wrapped as SET(lhs, expr()).
func (p *Parser) expr() (int, error) {
	x, err := p.test()
	if err != nil {
		return 0, err
	}
	if p.tok.Type == token.ASSIGN && p.pool.Get(x).Kind == ast.VAR {
		if err := p.advance(); err != nil {
			return 0, err
		}
		rhs, err := p.expr()
		if err != nil {
			return 0, err
		}
		return p.newNode(ast.SET, x, rhs, ast.NoNode, 0)
	}
	return x, nil
}

// test := sum [ ("<"|">") sum ]
func (p *Parser) test() (int, error) {
	x, err := p.sum()
	if err != nil {
		return 0, err
	}
	switch p.tok.Type {
	case token.LT:
		if err := p.advance(); err != nil {
			return 0, err
		}
		rhs, err := p.sum()
		if err != nil {
			return 0, err
		}
		return p.newNode(ast.LT, x, rhs, ast.NoNode, 0)
	case token.GT:
		if err := p.advance(); err != nil {
			return 0, err
		}
		rhs, err := p.sum()
		if err != nil {
			return 0, err
		}
		return p.newNode(ast.GT, x, rhs, ast.NoNode, 0)
	}
	return x, nil
}

var sumOps = map[token.Type]ast.Kind{
	token.PLUS:     ast.ADD,
	token.MINUS:    ast.SUB,
	token.ASTERISK: ast.MUL,
	token.SLASH:    ast.DIV,
}

// sum := term { ("+"|"-"|"*"|"/") term }
//
// All four operators share one precedence level and are folded
// left-associatively into a left-heavy tree; this is a known quirk of the
// design, preserved deliberately.
func (p *Parser) sum() (int, error) {
	x, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		kind, ok := sumOps[p.tok.Type]
		if !ok {
			return x, nil
		}
		if err := p.advance(); err != nil {
			return 0, err
		}
		rhs, err := p.term()
		if err != nil {
			return 0, err
		}
		x, err = p.newNode(kind, x, rhs, ast.NoNode, 0)
		if err != nil {
			return 0, err
		}
	}
}

// term := ID | INT | "(" expr ")"
func (p *Parser) term() (int, error) {
	switch p.tok.Type {
	case token.IDENT:
		name := p.tok.Name
		idx := p.symbols.Find(name, symtab.Var)
		if idx == 0 {
			var err error
			idx, err = p.symbols.Insert(name, symtab.Var)
			if err != nil {
				return 0, err
			}
		}
		if err := p.advance(); err != nil {
			return 0, err
		}
		return p.newNode(ast.VAR, ast.NoNode, ast.NoNode, ast.NoNode, idx)

	case token.NUMBER:
		v := p.tok.IntVal
		if err := p.advance(); err != nil {
			return 0, err
		}
		return p.newNode(ast.CST, ast.NoNode, ast.NoNode, ast.NoNode, v)

	case token.LPAREN:
		return p.parenExpr()
	}
	return 0, p.syntaxErrorf("expected an identifier, a number, or '(', found '" + string(p.tok.Type) + "'")
}
