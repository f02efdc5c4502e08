package cppast

// Attribute keys set by the syntax builder.
const (
	// AttrStmtKind holds a StmtKind on NodeStatement.
	AttrStmtKind = "stmt-kind"
	// AttrDeclKind holds a DeclKind on NodeDeclaration.
	AttrDeclKind = "decl-kind"
	// AttrBlockKind holds a BlockKind on NodeBlock.
	AttrBlockKind = "block-kind"
	// AttrCastKind holds a CastKind on a cast NodeExpression.
	AttrCastKind = "cast-kind"

	AttrName      = "name"          // declared or referenced name
	AttrNameToken = "name-token"    // token index of the declarator name
	AttrLabel     = "label"         // goto target or label name
	AttrKeyword   = "keyword-token" // token index of the leading keyword

	AttrType         = "type"          // type specifier text of a declaration
	AttrSpecifiers   = "specifiers"    // []string of decl specifiers (static, register, ...)
	AttrPointerDepth = "pointer-depth" // number of * in the declarator
	AttrReference    = "reference"     // declarator is & or &&
	AttrArray        = "array"         // declarator has [ ]
	AttrArrayToken   = "array-token"   // token index of the first [
	AttrHasInit      = "has-init"
	AttrInitFirst    = "init-first" // first token index of the initializer
	AttrInitLast     = "init-last"
	AttrParameter    = "parameter"

	AttrScoped   = "scoped"    // enum class / enum struct
	AttrClassKey = "class-key" // class, struct or union
	AttrBases    = "bases"     // []string base class names
	AttrAccess   = "access"    // public, protected or private

	AttrVirtual  = "has-virtual"
	AttrOverride = "has-override"
	AttrFinal    = "has-final"
	AttrPure     = "is-pure"
	AttrDeleted  = "is-deleted"
	AttrStatic   = "is-static"

	AttrHasElse     = "has-else"
	AttrElseIf      = "else-if" // the else branch is itself an if
	AttrElseToken   = "else-token"
	AttrCompound    = "body-compound" // the body is a block
	AttrElseCompnd  = "else-compound"
	AttrCondFirst   = "cond-first"
	AttrCondLast    = "cond-last"
	AttrThrowsValue = "throws-value" // throw has an operand

	AttrOperandFirst = "operand-first" // first token index of a return/throw operand
	AttrOperandLast  = "operand-last"
	AttrMaybeUnused  = "maybe-unused" // [[maybe_unused]] on the declaration

	// AttrRole names the part a child plays in its parent statement.
	AttrRole = "role"

	AttrDirective   = "directive"     // preprocessor directive name
	AttrMacro       = "macro"         // macro name for define/undef
	AttrMacroOffset = "macro-offset"  // byte offset of the macro name in the file
	AttrMacroBody   = "macro-body"    // replacement list text
	AttrFunctionMac = "function-like" // #define NAME( ... )
)

// StmtKind classifies a NodeStatement.
type StmtKind string

// Statement kinds.
const (
	StmtExpr     StmtKind = "expr"
	StmtDecl     StmtKind = "decl"
	StmtReturn   StmtKind = "return"
	StmtThrow    StmtKind = "throw"
	StmtGoto     StmtKind = "goto"
	StmtBreak    StmtKind = "break"
	StmtContinue StmtKind = "continue"
	StmtIf       StmtKind = "if"
	StmtFor      StmtKind = "for"
	StmtWhile    StmtKind = "while"
	StmtDo       StmtKind = "do"
	StmtSwitch   StmtKind = "switch"
	StmtLabel    StmtKind = "label"
	StmtCase     StmtKind = "case"
	StmtTry      StmtKind = "try"
	StmtEmpty    StmtKind = "empty"
)

// DeclKind classifies a NodeDeclaration.
type DeclKind string

// Declaration kinds.
const (
	DeclVariable DeclKind = "variable"
	DeclFunction DeclKind = "function"
	DeclTypedef  DeclKind = "typedef"
	DeclUsing    DeclKind = "using"
	DeclEnum     DeclKind = "enum"
	DeclAccess   DeclKind = "access"
	DeclFriend   DeclKind = "friend"
	DeclOther    DeclKind = "other"
)

// BlockKind classifies a NodeBlock.
type BlockKind string

// Block kinds.
const (
	BlockCompound  BlockKind = "compound"
	BlockBody      BlockKind = "body" // function body
	BlockNamespace BlockKind = "namespace"
	BlockLinkage   BlockKind = "linkage" // extern "C" { }
	BlockClass     BlockKind = "class"
	BlockCatch     BlockKind = "catch"
)

// CastKind classifies a cast expression.
type CastKind string

// Cast kinds.
const (
	CastStatic      CastKind = "static"
	CastDynamic     CastKind = "dynamic"
	CastConst       CastKind = "const"
	CastReinterpret CastKind = "reinterpret"
	CastCStyle      CastKind = "c-style"
)

// Child roles stored under AttrRole.
const (
	RoleThen    = "then"
	RoleElse    = "else"
	RoleBody    = "body"
	RoleInit    = "init"
	RoleHandler = "handler"
	RoleParam   = "param"
)

// SetAttr stores an attribute, allocating the map on first use.
func (n *Node) SetAttr(key string, value any) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]any)
	}
	n.Attrs[key] = value
}

// Attr returns the raw attribute value.
func (n *Node) Attr(key string) (any, bool) {
	if n == nil || n.Attrs == nil {
		return nil, false
	}
	v, ok := n.Attrs[key]
	return v, ok
}

// AttrString returns a string attribute or "".
func (n *Node) AttrString(key string) string {
	v, _ := n.Attr(key)
	switch s := v.(type) {
	case string:
		return s
	case StmtKind:
		return string(s)
	case DeclKind:
		return string(s)
	case BlockKind:
		return string(s)
	case CastKind:
		return string(s)
	default:
		return ""
	}
}

// AttrBool returns a boolean attribute or false.
func (n *Node) AttrBool(key string) bool {
	v, _ := n.Attr(key)
	b, _ := v.(bool)
	return b
}

// AttrInt returns an integer attribute or def when unset.
func (n *Node) AttrInt(key string, def int) int {
	v, ok := n.Attr(key)
	if !ok {
		return def
	}
	i, ok := v.(int)
	if !ok {
		return def
	}
	return i
}

// AttrStrings returns a string-slice attribute or nil.
func (n *Node) AttrStrings(key string) []string {
	v, _ := n.Attr(key)
	s, _ := v.([]string)
	return s
}

// StmtKind returns the statement kind, or "" for non-statements.
func (n *Node) StmtKind() StmtKind {
	if n == nil || n.Kind != NodeStatement {
		return ""
	}
	v, _ := n.Attr(AttrStmtKind)
	k, _ := v.(StmtKind)
	return k
}

// DeclKind returns the declaration kind, or "" for non-declarations.
func (n *Node) DeclKind() DeclKind {
	if n == nil || n.Kind != NodeDeclaration {
		return ""
	}
	v, _ := n.Attr(AttrDeclKind)
	k, _ := v.(DeclKind)
	return k
}

// BlockKind returns the block kind, or "" for non-blocks.
func (n *Node) BlockKind() BlockKind {
	if n == nil || n.Kind != NodeBlock {
		return ""
	}
	v, _ := n.Attr(AttrBlockKind)
	k, _ := v.(BlockKind)
	return k
}

// CastKind returns the cast kind of an expression, or "".
func (n *Node) CastKind() CastKind {
	if n == nil || n.Kind != NodeExpression {
		return ""
	}
	v, _ := n.Attr(AttrCastKind)
	k, _ := v.(CastKind)
	return k
}

// ChildByRole returns the first direct child with the given role, or nil.
func (n *Node) ChildByRole(role string) *Node {
	if n == nil {
		return nil
	}
	for child := n.FirstChild; child != nil; child = child.Next {
		if child.AttrString(AttrRole) == role {
			return child
		}
	}
	return nil
}

// ChildrenByRole returns every direct child with the given role.
func (n *Node) ChildrenByRole(role string) []*Node {
	var out []*Node
	if n == nil {
		return out
	}
	for child := n.FirstChild; child != nil; child = child.Next {
		if child.AttrString(AttrRole) == role {
			out = append(out, child)
		}
	}
	return out
}
