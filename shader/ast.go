package shader

// The syntax tree of the shader language. The grammar is deliberately
// small: function declarations, let/const bindings, if/else, return, and
// expressions built from arithmetic, comparisons, calls and method
// calls. There is no assignment, loop, or any way to reach outside the
// algebra, so a compiled program is closed by construction.

type expr interface {
	exprNode()
	pos() (line, col int)
}

type stmt interface {
	stmtNode()
	pos() (line, col int)
}

// position is embedded in every node for error reporting.
type position struct {
	Line, Col int
}

func (p position) pos() (int, int) { return p.Line, p.Col }

type numberLit struct {
	position
	Value float64
}

type stringLit struct {
	position
	Value string
}

type boolLit struct {
	position
	Value bool
}

type identExpr struct {
	position
	Name string
}

type unaryExpr struct {
	position
	Op tokenKind // tokMinus or tokNot
	X  expr
}

type binaryExpr struct {
	position
	Op   tokenKind
	X, Y expr
}

// callExpr is a call of either a name or a member, e.g. lerp(a, b, t) or
// uv.add(half).
type callExpr struct {
	position
	Callee expr
	Args   []expr
}

// memberExpr selects a method or static by name, e.g. Vector3.fromHex.
type memberExpr struct {
	position
	X    expr
	Name string
}

func (numberLit) exprNode()  {}
func (stringLit) exprNode()  {}
func (boolLit) exprNode()    {}
func (identExpr) exprNode()  {}
func (unaryExpr) exprNode()  {}
func (binaryExpr) exprNode() {}
func (callExpr) exprNode()   {}
func (memberExpr) exprNode() {}

type letStmt struct {
	position
	Name  string
	Value expr
	Const bool
}

type returnStmt struct {
	position
	Value expr
}

type exprStmt struct {
	position
	X expr
}

type ifStmt struct {
	position
	Cond expr
	Then []stmt
	Else []stmt // nil when absent; a single ifStmt for "else if"
}

type funcDecl struct {
	position
	Name   string
	Params []string
	Body   []stmt
}

func (letStmt) stmtNode()    {}
func (returnStmt) stmtNode() {}
func (exprStmt) stmtNode()   {}
func (ifStmt) stmtNode()     {}
func (funcDecl) stmtNode()   {}

// file is a parsed shader source: top-level declarations in order.
type file struct {
	Decls []stmt
}
