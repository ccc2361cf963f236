package parser

import "testing"

func parseOK(t *testing.T, src string) *Program {
	t.Helper()
	p := NewParser(src)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	return prog
}

func TestParserTaskDef(t *testing.T) {
	prog := parseOK(t, "task X\n    1\n")
	if len(prog.Tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(prog.Tasks))
	}
	task := prog.Tasks[0]
	if task.Name != "X" {
		t.Errorf("name = %q, want X", task.Name)
	}
	if task.Count != nil {
		t.Errorf("count = %v, want nil for an unreplicated task", task.Count)
	}
	if len(task.Body.Stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(task.Body.Stmts))
	}
	if _, ok := task.Body.Stmts[0].(*ExprStmt); !ok {
		t.Errorf("statement = %T, want *ExprStmt", task.Body.Stmts[0])
	}
}

func TestParserReplicatedTaskDef(t *testing.T) {
	prog := parseOK(t, "task Worker[5]\n    1\n")
	task := prog.Tasks[0]
	count, ok := task.Count.(*IntegerLiteral)
	if !ok {
		t.Fatalf("count = %T, want *IntegerLiteral", task.Count)
	}
	if count.Val != 5 {
		t.Errorf("count = %d, want 5", count.Val)
	}
}

func TestParserBareExpressionStatementIsNotAnError(t *testing.T) {
	// A bare expression (no send arrow) is the only way to produce a
	// task's tail value, and must parse cleanly.
	parseOK(t, "task X\n    12 + 3\n")
}

func TestParserArithmeticPrecedence(t *testing.T) {
	prog := parseOK(t, "task X\n    1 + 2 * 3\n")
	stmt := prog.Tasks[0].Body.Stmts[0].(*ExprStmt)
	op, ok := stmt.Expr.(*BinaryOp)
	if !ok {
		t.Fatalf("expr = %T, want *BinaryOp", stmt.Expr)
	}
	if op.Op != OpAdd {
		t.Fatalf("top-level op = %v, want OpAdd (multiplication should bind tighter)", op.Op)
	}
	right, ok := op.Right.(*BinaryOp)
	if !ok || right.Op != OpMul {
		t.Errorf("right operand = %#v, want a multiplication", op.Right)
	}
}

func TestParserParenthesesOverridePrecedence(t *testing.T) {
	prog := parseOK(t, "task X\n    (1 + 2) * 3\n")
	stmt := prog.Tasks[0].Body.Stmts[0].(*ExprStmt)
	op := stmt.Expr.(*BinaryOp)
	if op.Op != OpMul {
		t.Fatalf("top-level op = %v, want OpMul", op.Op)
	}
	if _, ok := op.Left.(*BinaryOp); !ok {
		t.Errorf("left operand = %#v, want the parenthesized addition", op.Left)
	}
}

func TestParserUnaryMinusDesugarsToSubtractionFromZero(t *testing.T) {
	prog := parseOK(t, "task X\n    -5\n")
	stmt := prog.Tasks[0].Body.Stmts[0].(*ExprStmt)
	op, ok := stmt.Expr.(*BinaryOp)
	if !ok || op.Op != OpSub {
		t.Fatalf("expr = %#v, want a subtraction", stmt.Expr)
	}
	left, ok := op.Left.(*IntegerLiteral)
	if !ok || left.Val != 0 {
		t.Errorf("left operand = %#v, want IntegerLiteral(0)", op.Left)
	}
}

func TestParserRangeIndex(t *testing.T) {
	prog := parseOK(t, "task X\n    a[-3 .. -1]\n")
	stmt := prog.Tasks[0].Body.Stmts[0].(*ExprStmt)
	idx, ok := stmt.Expr.(*Index)
	if !ok {
		t.Fatalf("expr = %T, want *Index", stmt.Expr)
	}
	if _, ok := idx.Index.(*RangeExpr); !ok {
		t.Errorf("index = %T, want *RangeExpr", idx.Index)
	}
}

func TestParserIfHasNoElseClause(t *testing.T) {
	prog := parseOK(t, "task X\n    if true\n        1\n")
	stmt := prog.Tasks[0].Body.Stmts[0].(*If)
	if stmt.Then == nil {
		t.Fatal("Then body is nil")
	}
	if len(stmt.Then.Stmts) != 1 {
		t.Errorf("Then has %d statements, want 1", len(stmt.Then.Stmts))
	}
}

func TestParserLoopDesugarsToWhileTrue(t *testing.T) {
	prog := parseOK(t, "task X\n    loop\n        exit\n")
	stmt := prog.Tasks[0].Body.Stmts[0].(*While)
	cond, ok := stmt.Cond.(*BooleanLiteral)
	if !ok || cond.Val != true {
		t.Fatalf("cond = %#v, want BooleanLiteral(true)", stmt.Cond)
	}
}

func TestParserAssign(t *testing.T) {
	prog := parseOK(t, "task X\n    total = 0\n")
	stmt := prog.Tasks[0].Body.Stmts[0].(*Assign)
	if stmt.Target != "total" {
		t.Errorf("target = %q, want total", stmt.Target)
	}
}

func TestParserDirectedSend(t *testing.T) {
	prog := parseOK(t, "task X\n    1 -> Worker[i]\n")
	stmt := prog.Tasks[0].Body.Stmts[0].(*Send)
	if _, ok := stmt.Channel.(*Index); !ok {
		t.Errorf("channel = %T, want *Index (Worker[i])", stmt.Channel)
	}
}

func TestParserDirectedReceive(t *testing.T) {
	prog := parseOK(t, "task X\n    x <- Worker\n")
	stmt := prog.Tasks[0].Body.Stmts[0].(*Receive)
	if stmt.Select {
		t.Error("Select = true, want a directed (non-select) receive")
	}
	if stmt.Target != "x" {
		t.Errorf("target = %q, want x", stmt.Target)
	}
}

func TestParserSelectReceiveAlwaysBindsAPeerVariable(t *testing.T) {
	prog := parseOK(t, "task X\n    v <- ?src\n")
	stmt := prog.Tasks[0].Body.Stmts[0].(*Receive)
	if !stmt.Select {
		t.Fatal("Select = false, want true")
	}
	if stmt.PeerVar != "src" {
		t.Errorf("peer var = %q, want src", stmt.PeerVar)
	}
}

func TestParserBareQuestionMarkWithNoPeerIsAnError(t *testing.T) {
	p := NewParser("task X\n    v <- ?\n")
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Error("expected a parse error for a bare `?` with no peer variable")
	}
}

func TestParserExit(t *testing.T) {
	prog := parseOK(t, "task X\n    exit\n")
	if _, ok := prog.Tasks[0].Body.Stmts[0].(*Exit); !ok {
		t.Fatalf("statement = %T, want *Exit", prog.Tasks[0].Body.Stmts[0])
	}
}

func TestParserArrayLiteral(t *testing.T) {
	prog := parseOK(t, "task X\n    [ 1, 2, 3 ]\n")
	stmt := prog.Tasks[0].Body.Stmts[0].(*ExprStmt)
	lit, ok := stmt.Expr.(*ArrayLiteral)
	if !ok {
		t.Fatalf("expr = %T, want *ArrayLiteral", stmt.Expr)
	}
	if len(lit.Elements) != 3 {
		t.Errorf("got %d elements, want 3", len(lit.Elements))
	}
}

func TestParserArrayLiteralTrailingComma(t *testing.T) {
	parseOK(t, "task X\n    [ 1, 2, ]\n")
}

func TestParserNestedBlocks(t *testing.T) {
	prog := parseOK(t, "task X\n    while true\n        if true\n            exit\n")
	while := prog.Tasks[0].Body.Stmts[0].(*While)
	ifStmt := while.Body.Stmts[0].(*If)
	if _, ok := ifStmt.Then.Stmts[0].(*Exit); !ok {
		t.Errorf("innermost statement = %T, want *Exit", ifStmt.Then.Stmts[0])
	}
}

func TestParserTaskHeaderHasNoColon(t *testing.T) {
	// A trailing colon after the task header is not part of the grammar.
	p := NewParser("task X:\n    1\n")
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Error("expected a parse error for a colon after the task header")
	}
}
