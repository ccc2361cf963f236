package parser

import "fmt"

// ParseError is a syntax error, collected rather than raised eagerly so the
// CLI can report every problem in a source file at once.
type ParseError struct {
	Message string
	Pos     Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Parser is a recursive-descent parser with one token of lookahead,
// consuming a Lexer's token stream directly.
type Parser struct {
	lex *Lexer

	cur  Token
	peek Token

	errors []ParseError
}

// NewParser creates a Parser over the given source text.
func NewParser(input string) *Parser {
	p := &Parser{lex: NewLexer(input)}
	p.next()
	p.next()
	return p
}

// Errors returns every syntax error encountered so far, plus any lexical
// errors surfaced by the underlying Lexer.
func (p *Parser) Errors() []ParseError {
	errs := make([]ParseError, 0, len(p.errors))
	for _, le := range p.lex.Errors() {
		errs = append(errs, ParseError{Message: le.Message, Pos: le.Pos})
	}
	errs = append(errs, p.errors...)
	return errs
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) errorf(pos Position, format string, args ...any) {
	p.errors = append(p.errors, ParseError{Message: fmt.Sprintf(format, args...), Pos: pos})
}

func (p *Parser) expect(t TokenType) Token {
	tok := p.cur
	if p.cur.Type != t {
		p.errorf(p.cur.Pos, "expected %s, got %s", t, p.cur.Type)
	}
	p.next()
	return tok
}

// skipNewlines consumes any run of blank NEWLINE tokens, which can appear
// between top-level task definitions.
func (p *Parser) skipNewlines() {
	for p.cur.Type == TOKEN_NEWLINE {
		p.next()
	}
}

// ParseProgram parses an entire source file into a Program.
func (p *Parser) ParseProgram() *Program {
	prog := &Program{Pos: p.cur.Pos}
	p.skipNewlines()
	for p.cur.Type != TOKEN_EOF {
		task := p.parseTaskDef()
		if task != nil {
			prog.Tasks = append(prog.Tasks, task)
		}
		p.skipNewlines()
	}
	return prog
}

func (p *Parser) parseTaskDef() *TaskDef {
	pos := p.cur.Pos
	p.expect(TOKEN_KW_TASK)
	name := p.expect(TOKEN_IDENT).Literal

	var count Expr
	if p.cur.Type == TOKEN_LBRACKET {
		p.next()
		count = p.parseExpr()
		p.expect(TOKEN_RBRACKET)
	}

	body := p.parseBlock()
	return &TaskDef{Pos: pos, Name: name, Count: count, Body: body}
}

// parseBlock parses an indented block that is expected immediately after a
// task/if/while/loop header: NEWLINE INDENT stmt* DEDENT.
func (p *Parser) parseBlock() *Body {
	pos := p.cur.Pos
	if p.cur.Type != TOKEN_NEWLINE {
		p.errorf(p.cur.Pos, "expected newline before indented block, got %s", p.cur.Type)
	} else {
		p.next()
	}
	if p.cur.Type != TOKEN_INDENT {
		p.errorf(p.cur.Pos, "expected an indented block, got %s", p.cur.Type)
		return &Body{Pos: pos}
	}
	p.next()

	body := &Body{Pos: pos}
	for p.cur.Type != TOKEN_DEDENT && p.cur.Type != TOKEN_EOF {
		if p.cur.Type == TOKEN_NEWLINE {
			p.next()
			continue
		}
		stmt := p.parseStmt()
		if stmt != nil {
			body.Stmts = append(body.Stmts, stmt)
		}
	}
	if p.cur.Type == TOKEN_DEDENT {
		p.next()
	} else {
		p.errorf(p.cur.Pos, "unterminated block")
	}
	return body
}

func (p *Parser) parseStmt() Stmt {
	switch p.cur.Type {
	case TOKEN_KW_IF:
		return p.parseIf()
	case TOKEN_KW_WHILE:
		return p.parseWhile()
	case TOKEN_KW_LOOP:
		return p.parseLoop()
	case TOKEN_KW_EXIT:
		pos := p.cur.Pos
		p.next()
		return &Exit{Pos: pos}
	case TOKEN_IDENT:
		return p.parseIdentStmt()
	default:
		pos := p.cur.Pos
		expr := p.parseExpr()
		if p.cur.Type == TOKEN_SEND_ARROW {
			p.next()
			channel := p.parseChannelExpr()
			return &Send{Pos: pos, Value: expr, Channel: channel}
		}
		if !p.atStmtEnd() {
			p.errorf(pos, "unexpected token %s at start of statement", p.cur.Type)
		}
		return &ExprStmt{Pos: pos, Expr: expr}
	}
}

// atStmtEnd reports whether the current token legally closes a statement.
// A bare expression with no trailing `->` is valid wherever a block's tail
// value can be produced (spec.md's scenario 1 `12 + 3`), so the default
// and parseIdentStmt fallbacks only flag a real syntax error, not every
// bare expression.
func (p *Parser) atStmtEnd() bool {
	return p.cur.Type == TOKEN_NEWLINE || p.cur.Type == TOKEN_DEDENT || p.cur.Type == TOKEN_EOF
}

// parseIdentStmt disambiguates the three statement forms that start with a
// bare identifier: `x = expr`, `x <- channel`/`x <- ?peer`, and `expr ->
// channel` where expr happens to start with an identifier (e.g. `x -> Out`
// or `x + 1 -> Out`).
func (p *Parser) parseIdentStmt() Stmt {
	pos := p.cur.Pos
	name := p.cur.Literal
	if p.peek.Type == TOKEN_ASSIGN {
		p.next()
		p.next()
		value := p.parseExpr()
		return &Assign{Pos: pos, Target: name, Value: value}
	}
	if p.peek.Type == TOKEN_RECV_ARROW {
		p.next()
		p.next()
		return p.parseReceiveTail(pos, name)
	}

	expr := p.parseExpr()
	if p.cur.Type == TOKEN_SEND_ARROW {
		p.next()
		channel := p.parseChannelExpr()
		return &Send{Pos: pos, Value: expr, Channel: channel}
	}
	if !p.atStmtEnd() {
		p.errorf(pos, "unexpected token %s at start of statement", p.cur.Type)
	}
	return &ExprStmt{Pos: pos, Expr: expr}
}

func (p *Parser) parseReceiveTail(pos Position, target string) Stmt {
	if p.cur.Type == TOKEN_QUESTION {
		p.next()
		peer := p.expect(TOKEN_IDENT).Literal
		return &Receive{Pos: pos, Target: target, Select: true, PeerVar: peer}
	}
	channel := p.parseChannelExpr()
	return &Receive{Pos: pos, Target: target, Channel: channel}
}

func (p *Parser) parseIf() Stmt {
	pos := p.cur.Pos
	p.next()
	cond := p.parseExpr()
	thenBody := p.parseBlock()
	return &If{Pos: pos, Cond: cond, Then: thenBody}
}

func (p *Parser) parseWhile() Stmt {
	pos := p.cur.Pos
	p.next()
	cond := p.parseExpr()
	body := p.parseBlock()
	return &While{Pos: pos, Cond: cond, Body: body}
}

// parseLoop desugars `loop` followed by an indented body into `While{Cond: true, Body: body}`.
func (p *Parser) parseLoop() Stmt {
	pos := p.cur.Pos
	p.next()
	body := p.parseBlock()
	return &While{Pos: pos, Cond: &BooleanLiteral{Pos: pos, Val: true}, Body: body}
}

// parseChannelExpr parses a Send/Receive channel target: an identifier,
// optionally indexed (e.g. `Worker[i]`), at the same precedence as a
// postfix expression.
func (p *Parser) parseChannelExpr() Expr {
	return p.parsePostfix()
}

// --- expressions, lowest to highest precedence ---

func (p *Parser) parseExpr() Expr {
	return p.parseRange()
}

func (p *Parser) parseRange() Expr {
	left := p.parseComparison()
	if p.cur.Type == TOKEN_RANGE {
		pos := p.cur.Pos
		p.next()
		right := p.parseComparison()
		return &RangeExpr{Pos: pos, Begin: left, End: right}
	}
	return left
}

func (p *Parser) parseComparison() Expr {
	left := p.parseAdditive()
	for p.cur.Type == TOKEN_EQ || p.cur.Type == TOKEN_LT || p.cur.Type == TOKEN_GT {
		op := p.cur
		p.next()
		right := p.parseAdditive()
		left = &BinaryOp{Pos: op.Pos, Op: opFromToken(op.Type), Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() Expr {
	left := p.parseMultiplicative()
	for p.cur.Type == TOKEN_PLUS || p.cur.Type == TOKEN_MINUS {
		op := p.cur
		p.next()
		right := p.parseMultiplicative()
		left = &BinaryOp{Pos: op.Pos, Op: opFromToken(op.Type), Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() Expr {
	left := p.parseUnary()
	for p.cur.Type == TOKEN_STAR || p.cur.Type == TOKEN_SLASH {
		op := p.cur
		p.next()
		right := p.parseUnary()
		left = &BinaryOp{Pos: op.Pos, Op: opFromToken(op.Type), Left: left, Right: right}
	}
	return left
}

// parseUnary handles unary minus by desugaring `-x` into `0 - x`.
func (p *Parser) parseUnary() Expr {
	if p.cur.Type == TOKEN_MINUS {
		pos := p.cur.Pos
		p.next()
		operand := p.parseUnary()
		return &BinaryOp{Pos: pos, Op: OpSub, Left: &IntegerLiteral{Pos: pos, Val: 0}, Right: operand}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() Expr {
	expr := p.parseAtom()
	for p.cur.Type == TOKEN_LBRACKET {
		pos := p.cur.Pos
		p.next()
		index := p.parseExpr()
		p.expect(TOKEN_RBRACKET)
		expr = &Index{Pos: pos, Base: expr, Index: index}
	}
	return expr
}

func (p *Parser) parseAtom() Expr {
	pos := p.cur.Pos
	switch p.cur.Type {
	case TOKEN_INT:
		val := p.cur.IntValue
		p.next()
		return &IntegerLiteral{Pos: pos, Val: val}
	case TOKEN_KW_TRUE:
		p.next()
		return &BooleanLiteral{Pos: pos, Val: true}
	case TOKEN_KW_FALSE:
		p.next()
		return &BooleanLiteral{Pos: pos, Val: false}
	case TOKEN_KW_NULL:
		p.next()
		return &NullLiteral{Pos: pos}
	case TOKEN_IDENT:
		name := p.cur.Literal
		p.next()
		return &Identifier{Pos: pos, Name: name}
	case TOKEN_LPAREN:
		p.next()
		expr := p.parseExpr()
		p.expect(TOKEN_RPAREN)
		return expr
	case TOKEN_LBRACKET:
		return p.parseArrayLiteral()
	default:
		p.errorf(pos, "unexpected token %s in expression", p.cur.Type)
		p.next()
		return &NullLiteral{Pos: pos}
	}
}

func (p *Parser) parseArrayLiteral() Expr {
	pos := p.cur.Pos
	p.next()
	lit := &ArrayLiteral{Pos: pos}
	for p.cur.Type != TOKEN_RBRACKET && p.cur.Type != TOKEN_EOF {
		lit.Elements = append(lit.Elements, p.parseExpr())
		if p.cur.Type == TOKEN_COMMA {
			p.next()
			continue
		}
		break
	}
	p.expect(TOKEN_RBRACKET)
	return lit
}

func opFromToken(t TokenType) BinaryOpKind {
	switch t {
	case TOKEN_PLUS:
		return OpAdd
	case TOKEN_MINUS:
		return OpSub
	case TOKEN_STAR:
		return OpMul
	case TOKEN_SLASH:
		return OpDiv
	case TOKEN_EQ:
		return OpEq
	case TOKEN_LT:
		return OpLt
	case TOKEN_GT:
		return OpGt
	default:
		return OpAdd
	}
}
