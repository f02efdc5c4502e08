package parser

import "github.com/yaklabco/autosarlint/pkg/cppast"

// stmt creates a statement node of the given kind over [first, last].
func (b *builder) stmt(kind cppast.StmtKind, first, last int) *cppast.Node {
	n := b.node(cppast.NodeStatement, first, last)
	n.SetAttr(cppast.AttrStmtKind, kind)
	n.SetAttr(cppast.AttrKeyword, b.idx(first))
	return n
}

// parseBlock parses a brace-delimited block whose '{' is at p.
func (b *builder) parseBlock(p int, kind cppast.BlockKind) (*cppast.Node, int) {
	blk := b.node(cppast.NodeBlock, p, p)
	blk.SetAttr(cppast.AttrBlockKind, kind)
	return b.fillBlock(blk, p+1)
}

// fillBlock parses statements into blk from q until the closing brace.
func (b *builder) fillBlock(blk *cppast.Node, q int) (*cppast.Node, int) {
	for q < b.n() && !b.is(q, "}") {
		st, next := b.parseStatement(q)
		cppast.AppendChild(blk, st)
		q = b.advance(q, next)
	}
	if q >= b.n() {
		b.extend(blk, b.n()-1)
		return blk, b.n()
	}
	b.extend(blk, q)
	return blk, q + 1
}

// parseStatement parses one statement at p. It never returns nil.
func (b *builder) parseStatement(p int) (*cppast.Node, int) {
	tok := b.tok(p)
	switch {
	case tok.Is("{"):
		return b.parseBlock(p, cppast.BlockCompound)
	case tok.Is(";"):
		return b.stmt(cppast.StmtEmpty, p, p), p + 1
	case tok.Kind == cppast.TokKeyword:
		if st, next, ok := b.parseKeywordStatement(p); ok {
			return st, next
		}
	case tok.Kind == cppast.TokIdentifier && b.is(p+1, ":"):
		st := b.stmt(cppast.StmtLabel, p, p+1)
		st.SetAttr(cppast.AttrLabel, tok.Text)
		return st, p + 2
	}

	if b.startsDeclarationUnit(p) {
		nodes, next := b.parseDeclarationUnit(p, ctxLocal)
		return b.wrapDecl(p, next, nodes), next
	}

	if b.looksLikeDeclaration(p) {
		if res, ok := b.parseSimpleDeclaration(p, b.n(), ctxLocal); ok && b.is(res.end, ";") {
			st := b.stmt(cppast.StmtDecl, p, res.end)
			for _, decl := range b.declNodes(res, ctxLocal) {
				cppast.AppendChild(st, decl)
			}
			return st, res.end + 1
		}
	}

	return b.parseExpressionStatement(p)
}

func (b *builder) wrapDecl(p, next int, nodes []*cppast.Node) *cppast.Node {
	if len(nodes) == 1 && nodes[0].Kind == cppast.NodeOpaque {
		return nodes[0]
	}
	last := next - 1
	if last < p {
		last = p
	}
	st := b.stmt(cppast.StmtDecl, p, last)
	for _, n := range nodes {
		cppast.AppendChild(st, n)
	}
	return st
}

func (b *builder) parseExpressionStatement(p int) (*cppast.Node, int) {
	end, ok := b.findStmtEnd(p)
	if !ok {
		return b.opaque(p)
	}
	st := b.stmt(cppast.StmtExpr, p, end)
	b.scanCasts(st, p, end-1)
	return st, end + 1
}

// looksLikeDeclaration reports whether a local statement at p starts with
// a type: a specifier or builtin keyword, or a (qualified) type name
// followed by an optional ptr-operator and a declarator name.
func (b *builder) looksLikeDeclaration(p int) bool {
	q, _ := b.skipAttributes(p)
	if q != p {
		return true
	}
	tok := b.tok(q)
	switch {
	case tok.Kind == cppast.TokKeyword:
		return declSpecifierKeywords[tok.Text] || builtinTypeKeywords[tok.Text] ||
			tok.Text == "decltype" || isClassKey(tok) || tok.Text == "enum"
	case tok.Kind == cppast.TokIdentifier || tok.Is("::"):
		end, _, _, ok := b.skipQualifiedName(q, b.n())
		if !ok {
			return false
		}
		r := end
		for b.is(r, "*") || b.is(r, "&") || b.is(r, "&&") ||
			b.tok(r).IsKeyword("const") || b.tok(r).IsKeyword("volatile") {
			r++
		}
		if !b.isIdent(r) {
			return false
		}
		next := b.tok(r + 1)
		return next.Is("=") || next.Is(";") || next.Is(",") || next.Is("[") ||
			next.Is("(") || next.Is("{") || next.Is(":")
	}
	return false
}

// parseKeywordStatement handles statements introduced by a keyword. It
// reports false for keywords that start declarations or expressions.
func (b *builder) parseKeywordStatement(p int) (*cppast.Node, int, bool) {
	switch b.tok(p).Text {
	case "if":
		st, next := b.parseIf(p)
		return st, next, true
	case "for":
		st, next := b.parseFor(p)
		return st, next, true
	case "while":
		st, next := b.parseConditional(p, cppast.StmtWhile)
		return st, next, true
	case "switch":
		st, next := b.parseConditional(p, cppast.StmtSwitch)
		return st, next, true
	case "do":
		st, next := b.parseDo(p)
		return st, next, true
	case "return", "co_return":
		st, next := b.parseJump(p, cppast.StmtReturn)
		return st, next, true
	case "throw":
		st, next := b.parseJump(p, cppast.StmtThrow)
		return st, next, true
	case "goto":
		st, next := b.parseJump(p, cppast.StmtGoto)
		return st, next, true
	case "break":
		st, next := b.parseJump(p, cppast.StmtBreak)
		return st, next, true
	case "continue":
		st, next := b.parseJump(p, cppast.StmtContinue)
		return st, next, true
	case "case":
		colon := b.findAtDepth(p+1, b.n(), ":")
		if colon < 0 {
			n, next := b.opaque(p)
			return n, next, true
		}
		return b.stmt(cppast.StmtCase, p, colon), colon + 1, true
	case "default":
		if b.is(p+1, ":") {
			return b.stmt(cppast.StmtCase, p, p+1), p + 2, true
		}
	case "try":
		st, next := b.parseTry(p)
		return st, next, true
	case "else":
		n, next := b.opaque(p)
		return n, next, true
	}
	return nil, p, false
}

// hasBody reports whether a statement body can start at p.
func (b *builder) hasBody(p int) bool {
	return p < b.n() && !b.is(p, "}")
}

// body parses the body statement at p, tags its role and records on st
// whether it is a compound statement.
func (b *builder) body(st *cppast.Node, p int, role, compoundAttr string) int {
	child, next := b.parseStatement(p)
	child.SetAttr(cppast.AttrRole, role)
	st.SetAttr(compoundAttr, child.Kind == cppast.NodeBlock)
	cppast.AppendChild(st, child)
	b.extend(st, next-1)
	return next
}

func (b *builder) setCond(st *cppast.Node, open, closePos int) {
	if closePos <= open+1 {
		return
	}
	st.SetAttr(cppast.AttrCondFirst, b.idx(open+1))
	st.SetAttr(cppast.AttrCondLast, b.idx(closePos-1))
}

func (b *builder) parseIf(p int) (*cppast.Node, int) {
	q := p + 1
	if b.tok(q).IsKeyword("constexpr") {
		q++
	}
	if !b.is(q, "(") {
		return b.opaque(p)
	}
	closePos := b.closer(q)
	st := b.stmt(cppast.StmtIf, p, closePos)
	b.setCond(st, q, closePos)
	b.condition(st, q+1, closePos)

	next := closePos + 1
	if !b.hasBody(next) {
		return st, next
	}
	next = b.body(st, next, cppast.RoleThen, cppast.AttrCompound)

	if !b.tok(next).IsKeyword("else") {
		return st, next
	}
	st.SetAttr(cppast.AttrHasElse, true)
	st.SetAttr(cppast.AttrElseToken, b.idx(next))
	b.extend(st, next)
	if !b.hasBody(next + 1) {
		return st, next + 1
	}
	next = b.body(st, next+1, cppast.RoleElse, cppast.AttrElseCompnd)
	st.SetAttr(cppast.AttrElseIf, st.ChildByRole(cppast.RoleElse).StmtKind() == cppast.StmtIf)
	return st, next
}

// condition handles an if/while/switch condition in [first, limit). A
// declaration in the condition becomes an init child.
func (b *builder) condition(st *cppast.Node, first, limit int) {
	if first >= limit {
		return
	}
	if semi := b.findAtDepth(first, limit, ";"); semi >= 0 {
		b.forInit(st, first, semi)
		first = semi + 1
	}
	if b.looksLikeDeclaration(first) {
		if res, ok := b.parseSimpleDeclaration(first, limit, ctxLocal); ok && res.end == limit {
			for _, decl := range b.declNodes(res, ctxLocal) {
				decl.SetAttr(cppast.AttrRole, cppast.RoleInit)
				cppast.AppendChild(st, decl)
			}
			return
		}
	}
	b.scanCasts(st, first, limit-1)
}

func (b *builder) parseFor(p int) (*cppast.Node, int) {
	q := p + 1
	if !b.is(q, "(") {
		return b.opaque(p)
	}
	closePos := b.closer(q)
	st := b.stmt(cppast.StmtFor, p, closePos)

	if semi := b.findAtDepth(q+1, closePos, ";"); semi >= 0 {
		b.forInit(st, q+1, semi)
		b.scanCasts(st, semi+1, closePos-1)
	} else if colon := b.findAtDepth(q+1, closePos, ":"); colon >= 0 {
		b.forInit(st, q+1, colon)
		b.scanCasts(st, colon+1, closePos-1)
	} else {
		b.scanCasts(st, q+1, closePos-1)
	}

	next := closePos + 1
	if !b.hasBody(next) {
		return st, next
	}
	return st, b.body(st, next, cppast.RoleBody, cppast.AttrCompound)
}

// forInit parses the init-statement in [first, term) where term is the
// terminating ';' or ':'.
func (b *builder) forInit(st *cppast.Node, first, term int) {
	if first >= term {
		return
	}
	if b.looksLikeDeclaration(first) {
		if res, ok := b.parseSimpleDeclaration(first, term, ctxLocal); ok && res.end == term {
			for _, decl := range b.declNodes(res, ctxLocal) {
				decl.SetAttr(cppast.AttrRole, cppast.RoleInit)
				cppast.AppendChild(st, decl)
			}
			return
		}
	}
	b.scanCasts(st, first, term-1)
}

// parseConditional handles while and switch.
func (b *builder) parseConditional(p int, kind cppast.StmtKind) (*cppast.Node, int) {
	q := p + 1
	if !b.is(q, "(") {
		return b.opaque(p)
	}
	closePos := b.closer(q)
	st := b.stmt(kind, p, closePos)
	b.setCond(st, q, closePos)
	b.condition(st, q+1, closePos)

	next := closePos + 1
	if !b.hasBody(next) {
		return st, next
	}
	return st, b.body(st, next, cppast.RoleBody, cppast.AttrCompound)
}

func (b *builder) parseDo(p int) (*cppast.Node, int) {
	st := b.stmt(cppast.StmtDo, p, p)
	q := p + 1
	if b.hasBody(q) {
		q = b.body(st, q, cppast.RoleBody, cppast.AttrCompound)
	}
	if b.tok(q).IsKeyword("while") && b.is(q+1, "(") {
		closePos := b.closer(q + 1)
		b.setCond(st, q+1, closePos)
		b.scanCasts(st, q+2, closePos-1)
		q = closePos + 1
		if b.is(q, ";") {
			q++
		}
		b.extend(st, q-1)
	}
	return st, q
}

// parseJump handles return, throw, goto, break and continue.
func (b *builder) parseJump(p int, kind cppast.StmtKind) (*cppast.Node, int) {
	end, ok := b.findStmtEnd(p + 1)
	last, next := end, end+1
	if !ok {
		last, next = end-1, end
	}
	if last < p {
		last = p
	}
	st := b.stmt(kind, p, last)

	operandLast := end - 1
	switch kind {
	case cppast.StmtReturn, cppast.StmtThrow:
		if operandLast >= p+1 {
			st.SetAttr(cppast.AttrOperandFirst, b.idx(p+1))
			st.SetAttr(cppast.AttrOperandLast, b.idx(operandLast))
			if kind == cppast.StmtThrow {
				st.SetAttr(cppast.AttrThrowsValue, true)
			}
			b.scanCasts(st, p+1, operandLast)
		}
	case cppast.StmtGoto:
		if b.isIdent(p + 1) {
			st.SetAttr(cppast.AttrLabel, b.tok(p+1).Text)
		}
	}
	return st, next
}

func (b *builder) parseTry(p int) (*cppast.Node, int) {
	q := p + 1
	if !b.is(q, "{") {
		return b.opaque(p)
	}
	st := b.stmt(cppast.StmtTry, p, p)
	blk, next := b.parseBlock(q, cppast.BlockCompound)
	blk.SetAttr(cppast.AttrRole, cppast.RoleBody)
	cppast.AppendChild(st, blk)
	q = next

	for b.tok(q).IsKeyword("catch") && b.is(q+1, "(") {
		closePos := b.closer(q + 1)
		if !b.is(closePos+1, "{") {
			break
		}
		handler := b.node(cppast.NodeBlock, q, closePos+1)
		handler.SetAttr(cppast.AttrBlockKind, cppast.BlockCatch)
		handler.SetAttr(cppast.AttrRole, cppast.RoleHandler)
		if !(closePos == q+3 && b.is(q+2, "...")) && closePos > q+2 {
			b.catchParam(handler, q+2, closePos)
		}
		_, q = b.fillBlock(handler, closePos+2)
		cppast.AppendChild(st, handler)
	}

	b.extend(st, q-1)
	return st, q
}

func (b *builder) catchParam(handler *cppast.Node, first, closePos int) {
	spec, ok := b.parseDeclSpecifiers(first, closePos)
	if !ok {
		return
	}
	d, ok := b.parseDeclarator(spec.end, closePos, ctxParam)
	if !ok {
		return
	}
	n := b.node(cppast.NodeDeclaration, first, closePos-1)
	b.setDeclAttrs(n, spec, d)
	n.SetAttr(cppast.AttrDeclKind, cppast.DeclVariable)
	n.SetAttr(cppast.AttrParameter, true)
	n.SetAttr(cppast.AttrRole, cppast.RoleParam)
	cppast.AppendChild(handler, n)
}
