package parser

import (
	"strings"

	"github.com/yaklabco/autosarlint/pkg/cppast"
)

// declContext is the scope a declaration appears in.
type declContext uint8

const (
	ctxFile declContext = iota
	ctxClass
	ctxLocal
	ctxParam
)

var declSpecifierKeywords = map[string]bool{
	"const": true, "volatile": true, "static": true, "extern": true, "register": true,
	"mutable": true, "thread_local": true, "inline": true, "constexpr": true,
	"consteval": true, "constinit": true, "virtual": true, "explicit": true,
	"friend": true, "typedef": true, "typename": true,
}

var builtinTypeKeywords = map[string]bool{
	"void": true, "bool": true, "char": true, "char8_t": true, "char16_t": true,
	"char32_t": true, "wchar_t": true, "short": true, "int": true, "long": true,
	"signed": true, "unsigned": true, "float": true, "double": true, "auto": true,
}

func isClassKey(tok cppast.Token) bool {
	return tok.IsKeyword("class") || tok.IsKeyword("struct") || tok.IsKeyword("union")
}

func isAccessKeyword(tok cppast.Token) bool {
	return tok.IsKeyword("public") || tok.IsKeyword("protected") || tok.IsKeyword("private")
}

// specInfo describes a decl-specifier sequence.
type specInfo struct {
	start       int
	end         int // first position after the specifiers
	typeText    string
	specifiers  []string
	typeSeen    bool
	maybeUnused bool
}

func (s specInfo) has(spec string) bool {
	for _, sp := range s.specifiers {
		if sp == spec {
			return true
		}
	}
	return false
}

// declarator describes one declarator of a declaration. Positions are
// builder positions; nameTok is a token index.
type declarator struct {
	start      int
	end        int
	name       string
	nameTok    int
	depth      int
	ref        bool
	array      bool
	arrayTok   int
	binding    bool
	isFunc     bool
	funcPtr    bool
	paramOpen  int
	paramClose int
	hasInit    bool
	initFirst  int
	initLast   int
	override   bool
	final      bool
	pure       bool
	deleted    bool
}

// simpleDecl is a decl-specifier sequence with its declarators. end is the
// position of the token that stopped the declarator list.
type simpleDecl struct {
	spec  specInfo
	decls []declarator
	end   int
}

// parseDeclarationUnit parses one namespace-, class- or keyword-led local
// declaration starting at p.
func (b *builder) parseDeclarationUnit(p int, ctx declContext) ([]*cppast.Node, int) {
	tok := b.tok(p)
	switch {
	case tok.Is(";"):
		return nil, p + 1
	case tok.Is("}"):
		n, next := b.opaque(p)
		return []*cppast.Node{n}, next
	case ctx == ctxClass && isAccessKeyword(tok) && b.is(p+1, ":"):
		n := b.node(cppast.NodeDeclaration, p, p+1)
		n.SetAttr(cppast.AttrDeclKind, cppast.DeclAccess)
		n.SetAttr(cppast.AttrAccess, tok.Text)
		return []*cppast.Node{n}, p + 2
	case tok.IsKeyword("namespace"),
		tok.IsKeyword("inline") && b.tok(p+1).IsKeyword("namespace"):
		return b.parseNamespace(p)
	case tok.IsKeyword("extern") && b.tok(p+1).Kind == cppast.TokStringLiteral && b.is(p+2, "{"):
		return b.parseLinkage(p)
	case tok.IsKeyword("template"):
		return b.parseTemplate(p, ctx)
	case tok.IsKeyword("using"):
		return b.parseUsing(p)
	case tok.IsKeyword("static_assert"):
		last, next := b.toSemicolon(p)
		n := b.node(cppast.NodeDeclaration, p, last)
		n.SetAttr(cppast.AttrDeclKind, cppast.DeclOther)
		return []*cppast.Node{n}, next
	case tok.IsKeyword("typedef") && b.typedefDefinesType(p):
		return b.parseTypedefDefinition(p)
	case isClassKey(tok) && b.isClassDefinition(p):
		return b.parseClassWithDeclarators(p, ctx)
	case tok.IsKeyword("enum"):
		return b.parseEnumWithDeclarators(p, ctx)
	}
	return b.parseSimpleUnit(p, ctx)
}

// startsDeclarationUnit reports whether a local statement at p is one of the
// keyword-led declarations handled by parseDeclarationUnit.
func (b *builder) startsDeclarationUnit(p int) bool {
	tok := b.tok(p)
	switch {
	case tok.IsKeyword("using"), tok.IsKeyword("static_assert"), tok.IsKeyword("template"),
		tok.IsKeyword("enum"), tok.IsKeyword("namespace"):
		return true
	case tok.IsKeyword("typedef"):
		return b.typedefDefinesType(p)
	case isClassKey(tok):
		return b.isClassDefinition(p)
	}
	return false
}

// toSemicolon returns the last position of a construct ending at the next
// ';' and the position after it.
func (b *builder) toSemicolon(p int) (int, int) {
	end, ok := b.findStmtEnd(p)
	if ok {
		return end, end + 1
	}
	if end-1 < p {
		return p, p + 1
	}
	return end - 1, end
}

func (b *builder) parseSimpleUnit(p int, ctx declContext) ([]*cppast.Node, int) {
	res, ok := b.parseSimpleDeclaration(p, b.n(), ctx)
	if !ok {
		n, next := b.opaque(p)
		return []*cppast.Node{n}, next
	}

	q := res.end
	if len(res.decls) == 1 && res.decls[0].isFunc && ctx != ctxLocal &&
		(b.is(q, "{") || b.is(q, ":") || b.tok(q).IsKeyword("try")) {
		fn, next := b.parseFunctionDef(res, q)
		return []*cppast.Node{fn}, next
	}

	if !b.is(q, ";") {
		n, next := b.opaque(p)
		return []*cppast.Node{n}, next
	}

	nodes := b.declNodes(res, ctx)
	if len(nodes) == 0 {
		n := b.node(cppast.NodeDeclaration, p, q)
		n.SetAttr(cppast.AttrDeclKind, cppast.DeclOther)
		n.SetAttr(cppast.AttrType, res.spec.typeText)
		return []*cppast.Node{n}, q + 1
	}
	b.extend(nodes[len(nodes)-1], q)
	return nodes, q + 1
}

// parseSimpleDeclaration parses specifiers and a declarator list within
// [p, limit).
func (b *builder) parseSimpleDeclaration(p, limit int, ctx declContext) (simpleDecl, bool) {
	spec, ok := b.parseDeclSpecifiers(p, limit)
	if !ok {
		return simpleDecl{}, false
	}
	if b.is(spec.end, ";") {
		return simpleDecl{spec: spec, end: spec.end}, spec.typeSeen
	}
	return b.parseDeclaratorList(spec, spec.end, limit, ctx)
}

func (b *builder) parseDeclaratorList(spec specInfo, p, limit int, ctx declContext) (simpleDecl, bool) {
	res := simpleDecl{spec: spec}
	q := p
	for q < limit {
		d, ok := b.parseDeclarator(q, limit, ctx)
		if !ok || d.end < d.start {
			break
		}
		res.decls = append(res.decls, d)
		q = d.end + 1
		if d.isFunc && (b.is(q, "{") || b.is(q, ":") || b.tok(q).IsKeyword("try")) {
			break
		}
		if b.is(q, ",") {
			q++
			continue
		}
		break
	}
	res.end = q
	return res, len(res.decls) > 0
}

// parseDeclSpecifiers consumes storage classes, cv-qualifiers, attributes
// and at most one type name.
func (b *builder) parseDeclSpecifiers(p, limit int) (specInfo, bool) {
	spec := specInfo{start: p}
	var typeParts []string
	q := p

loop:
	for q < limit {
		tok := b.tok(q)
		if (tok.Is("[") && b.is(q+1, "[")) || tok.IsKeyword("alignas") {
			next, maybeUnused := b.skipAttributes(q)
			spec.maybeUnused = spec.maybeUnused || maybeUnused
			q = next
			continue
		}

		switch {
		case tok.Kind == cppast.TokKeyword && declSpecifierKeywords[tok.Text]:
			spec.specifiers = append(spec.specifiers, tok.Text)
			q++
		case tok.Kind == cppast.TokKeyword && builtinTypeKeywords[tok.Text]:
			spec.typeSeen = true
			typeParts = append(typeParts, tok.Text)
			q++
		case tok.IsKeyword("decltype") && b.is(q+1, "("):
			end := b.closer(q + 1)
			typeParts = append(typeParts, b.textRange(q, end))
			spec.typeSeen = true
			q = end + 1
		case isClassKey(tok) || tok.IsKeyword("enum"):
			r := q + 1
			if tok.IsKeyword("enum") && (b.tok(r).IsKeyword("class") || b.tok(r).IsKeyword("struct")) {
				r++
			}
			if spec.typeSeen {
				break loop
			}
			end, name, _, ok := b.skipQualifiedName(r, limit)
			if !ok {
				break loop
			}
			typeParts = append(typeParts, tok.Text+" "+name)
			spec.typeSeen = true
			q = end
		case tok.Kind == cppast.TokStringLiteral && spec.has("extern"):
			q++
		case !spec.typeSeen && (tok.Kind == cppast.TokIdentifier || tok.Is("::")):
			end, _, _, ok := b.skipQualifiedName(q, limit)
			if !ok || b.is(end, "(") {
				// Constructor, destructor or a call-like declarator.
				break loop
			}
			typeParts = append(typeParts, b.textRange(q, end-1))
			spec.typeSeen = true
			q = end
		default:
			break loop
		}
	}

	spec.end = q
	spec.typeText = strings.Join(typeParts, " ")
	if spec.typeSeen || len(spec.specifiers) > 0 {
		return spec, true
	}
	return spec, b.startsBareDeclarator(q, limit)
}

// startsBareDeclarator reports whether a declarator without a type begins
// at p: constructors, destructors and conversion operators.
func (b *builder) startsBareDeclarator(p, limit int) bool {
	switch {
	case b.is(p, "~") && b.isIdent(p+1):
		return true
	case b.tok(p).IsKeyword("operator"):
		return true
	case b.isIdent(p) || b.is(p, "::"):
		end, _, _, ok := b.skipQualifiedName(p, limit)
		return ok && b.is(end, "(")
	}
	return false
}

// parseDeclarator parses ptr-operators, a name and array/function
// suffixes, then an optional initializer.
func (b *builder) parseDeclarator(p, limit int, ctx declContext) (declarator, bool) {
	d := declarator{
		start: p, nameTok: -1, arrayTok: -1,
		paramOpen: -1, paramClose: -1, initFirst: -1, initLast: -1,
	}
	q := p

ptrs:
	for q < limit {
		tok := b.tok(q)
		switch {
		case tok.Is("*"):
			d.depth++
			q++
		case tok.Is("&"), tok.Is("&&"):
			d.ref = true
			q++
		case (tok.IsKeyword("const") || tok.IsKeyword("volatile")) && (d.depth > 0 || d.ref):
			q++
		case tok.Is("[") && b.is(q+1, "["):
			q, _ = b.skipAttributes(q)
		default:
			break ptrs
		}
	}

	switch {
	case q >= limit:
		if ctx != ctxParam {
			return d, false
		}
	case b.is(q, "(") && (b.is(q+1, "*") || b.is(q+1, "&") || b.is(q+1, "&&")):
		end := b.closer(q)
		inner, ok := b.parseDeclarator(q+1, end, ctx)
		if !ok {
			return d, false
		}
		d.depth += inner.depth
		d.ref = d.ref || inner.ref
		d.name, d.nameTok = inner.name, inner.nameTok
		d.array, d.arrayTok = inner.array, inner.arrayTok
		q = end + 1
		if b.is(q, "(") {
			d.funcPtr = true
			q = b.closer(q) + 1
		}
	case b.is(q, "~") && b.isIdent(q+1):
		d.name = "~" + b.tok(q+1).Text
		d.nameTok = b.idx(q + 1)
		q += 2
	case b.tok(q).IsKeyword("operator"):
		end := b.skipOperatorName(q)
		d.nameTok = b.idx(q)
		d.name = strings.ReplaceAll(b.textRange(q, end-1), " ", "")
		q = end
	case b.isIdent(q) || b.is(q, "::"):
		end, name, nameTok, ok := b.skipQualifiedName(q, limit)
		if !ok {
			return d, false
		}
		d.name, d.nameTok = name, nameTok
		q = end
	case b.is(q, "[") && ctx != ctxParam && !b.is(q+1, "["):
		d.binding = true
		q = b.closer(q) + 1
	default:
		if ctx != ctxParam {
			return d, false
		}
	}

suffixes:
	for q < limit {
		tok := b.tok(q)
		switch {
		case tok.Is("[") && !b.is(q+1, "["):
			if !d.array && !d.binding {
				d.array = true
				d.arrayTok = b.idx(q)
			}
			q = b.closer(q) + 1
		case tok.Is("(") && !d.isFunc && !d.funcPtr:
			closePos := b.closer(q)
			if (ctx == ctxLocal || ctx == ctxFile) && !b.looksLikeParams(q+1, closePos, ctx) {
				break suffixes
			}
			d.isFunc = true
			d.paramOpen, d.paramClose = q, closePos
			q = b.skipFunctionTrailer(closePos+1, limit, &d)
			break suffixes
		default:
			break suffixes
		}
	}

	if ctx == ctxClass && b.is(q, ":") {
		q++
		for q < limit && !b.is(q, ",") && !b.is(q, ";") && !b.is(q, "=") && !b.is(q, "{") {
			q++
		}
	}

	if !d.isFunc && q < limit {
		switch {
		case b.is(q, "="):
			q++
			d.hasInit = true
			d.initFirst = q
			q = b.skipInitializer(q, limit)
			d.initLast = q - 1
		case b.is(q, "{"):
			end := b.closer(q)
			d.hasInit = true
			d.initFirst, d.initLast = q, end
			q = end + 1
		case b.is(q, "(") && ctx != ctxClass:
			end := b.closer(q)
			d.hasInit = true
			d.initFirst, d.initLast = q, end
			q = end + 1
		}
	}

	if q > limit {
		q = limit
	}
	d.end = q - 1
	return d, true
}

// skipFunctionTrailer consumes cv/ref qualifiers, exception
// specifications, virt-specifiers, trailing return types and pure or
// deleted markers after a parameter list.
func (b *builder) skipFunctionTrailer(q, limit int, d *declarator) int {
	for q < limit {
		tok := b.tok(q)
		switch {
		case tok.IsKeyword("const"), tok.IsKeyword("volatile"), tok.Is("&"), tok.Is("&&"):
			q++
		case tok.IsKeyword("noexcept"), tok.IsKeyword("throw"):
			q++
			if b.is(q, "(") {
				q = b.closer(q) + 1
			}
		case tok.Kind == cppast.TokIdentifier && tok.Text == "override":
			d.override = true
			q++
		case tok.Kind == cppast.TokIdentifier && tok.Text == "final":
			d.final = true
			q++
		case tok.Is("[") && b.is(q+1, "["):
			q, _ = b.skipAttributes(q)
		case tok.Is("->"):
			q = b.skipTrailingReturn(q+1, limit)
		case tok.Is("=") && b.tok(q+1).Text == "0":
			d.pure = true
			q += 2
		case tok.Is("=") && (b.tok(q+1).IsKeyword("delete") || b.tok(q+1).IsKeyword("default")):
			d.deleted = b.tok(q + 1).IsKeyword("delete")
			q += 2
		default:
			return q
		}
	}
	return q
}

func (b *builder) skipTrailingReturn(q, limit int) int {
	for q < limit {
		tok := b.tok(q)
		switch {
		case tok.Is("{"), tok.Is(";"), tok.Is("="), tok.Is(","):
			return q
		case tok.Kind == cppast.TokIdentifier && (tok.Text == "override" || tok.Text == "final"):
			return q
		case tok.Is("<"):
			if end, ok := b.skipAngles(q, limit, false); ok {
				q = end
				continue
			}
			q++
		case isOpener(tok):
			q = b.closer(q) + 1
		default:
			q++
		}
	}
	return q
}

// skipInitializer scans an initializer expression up to a ',' or ';' at
// depth zero. A '<' after an identifier is taken as a template argument
// list only when a call, brace or scope operator follows it.
func (b *builder) skipInitializer(q, limit int) int {
	for q < limit && q < b.n() {
		tok := b.tok(q)
		switch {
		case tok.Is(","), tok.Is(";"), isCloser(tok):
			return q
		case tok.Is("<") && b.isIdent(q-1):
			if end, ok := b.skipAngles(q, limit, true); ok && (b.is(end, "(") || b.is(end, "{") || b.is(end, "::")) {
				q = end
				continue
			}
			q++
		case isOpener(tok):
			q = b.closer(q) + 1
		default:
			q++
		}
	}
	if q > limit {
		return limit
	}
	return q
}

// looksLikeParams decides whether the parenthesised range [first, closePos)
// after a declarator name is a parameter list or constructor arguments.
func (b *builder) looksLikeParams(first, closePos int, ctx declContext) bool {
	if first >= closePos {
		return true
	}
	tok := b.tok(first)
	switch {
	case tok.Is("..."):
		return true
	case tok.Kind == cppast.TokKeyword:
		return declSpecifierKeywords[tok.Text] || builtinTypeKeywords[tok.Text] ||
			isClassKey(tok) || tok.Text == "enum" || tok.Text == "decltype"
	case tok.Kind == cppast.TokIdentifier || tok.Is("::"):
		end, _, _, ok := b.skipQualifiedName(first, closePos)
		if !ok {
			return false
		}
		next := b.tok(end)
		switch {
		case next.Kind == cppast.TokIdentifier, next.Is("*"), next.Is("&"), next.Is("&&"),
			next.IsKeyword("const"), next.Is("..."):
			return true
		case end >= closePos || next.Is(","):
			// A lone name is a parameter type at file scope and an
			// argument at block scope.
			return ctx == ctxFile
		}
	}
	return false
}

// skipQualifiedName consumes [::] name [<args>] (:: name [<args>])*. It
// returns the position after the name, the last component and its token
// index.
func (b *builder) skipQualifiedName(p, limit int) (int, string, int, bool) {
	q := p
	if b.is(q, "::") {
		q++
	}
	last, lastTok := "", -1

	for q < limit {
		tok := b.tok(q)
		switch {
		case tok.Kind == cppast.TokIdentifier:
			last, lastTok = tok.Text, b.idx(q)
			q++
			if b.is(q, "<") {
				if end, ok := b.skipAngles(q, limit, true); ok {
					q = end
				}
			}
		case tok.Is("~") && b.isIdent(q+1) && lastTok >= 0:
			last, lastTok = "~"+b.tok(q+1).Text, b.idx(q+1)
			q += 2
		case tok.IsKeyword("operator") && lastTok >= 0:
			end := b.skipOperatorName(q)
			return end, strings.ReplaceAll(b.textRange(q, end-1), " ", ""), b.idx(q), true
		case tok.IsKeyword("template") && lastTok >= 0:
			q++
			continue
		default:
			return q, last, lastTok, lastTok >= 0
		}

		next := b.tok(q + 1)
		if b.is(q, "::") && (next.Kind == cppast.TokIdentifier || next.Is("~") ||
			next.IsKeyword("operator") || next.IsKeyword("template")) {
			q++
			continue
		}
		break
	}
	return q, last, lastTok, lastTok >= 0
}

// skipOperatorName consumes an operator-function-id or conversion-function
// id starting at the operator keyword at p.
func (b *builder) skipOperatorName(p int) int {
	r := p + 1
	tok := b.tok(r)
	switch {
	case tok.Is("(") && b.is(r+1, ")"), tok.Is("[") && b.is(r+1, "]"):
		return r + 2
	case tok.IsKeyword("new"), tok.IsKeyword("delete"):
		r++
		if b.is(r, "[") && b.is(r+1, "]") {
			r += 2
		}
		return r
	case tok.Kind == cppast.TokOperator, tok.Is(","), tok.Kind == cppast.TokStringLiteral:
		return r + 1
	}
	for r < b.n() && !b.is(r, "(") && !b.is(r, ";") {
		r++
	}
	return r
}

// declNodes turns a parsed declaration into one node per declarator.
func (b *builder) declNodes(res simpleDecl, ctx declContext) []*cppast.Node {
	nodes := make([]*cppast.Node, 0, len(res.decls))
	for i, d := range res.decls {
		first := res.spec.start
		if i > 0 {
			first = d.start
		}
		n := b.node(cppast.NodeDeclaration, first, d.end)

		kind := cppast.DeclVariable
		switch {
		case res.spec.has("typedef"):
			kind = cppast.DeclTypedef
		case res.spec.has("friend"):
			kind = cppast.DeclFriend
		case d.isFunc && ctx != ctxParam:
			kind = cppast.DeclFunction
		}
		b.setDeclAttrs(n, res.spec, d)
		n.SetAttr(cppast.AttrDeclKind, kind)

		if kind == cppast.DeclFunction || (kind == cppast.DeclFriend && d.isFunc) {
			b.parseParams(n, d)
		}
		if d.hasInit {
			b.scanCasts(n, d.initFirst, d.initLast)
		}
		nodes = append(nodes, n)
	}
	return nodes
}

func (b *builder) setDeclAttrs(n *cppast.Node, spec specInfo, d declarator) {
	if d.name != "" {
		n.SetAttr(cppast.AttrName, d.name)
	}
	if d.nameTok >= 0 {
		n.SetAttr(cppast.AttrNameToken, d.nameTok)
	}
	n.SetAttr(cppast.AttrType, spec.typeText)
	if len(spec.specifiers) > 0 {
		n.SetAttr(cppast.AttrSpecifiers, spec.specifiers)
	}
	if d.depth > 0 {
		n.SetAttr(cppast.AttrPointerDepth, d.depth)
	}
	if d.ref {
		n.SetAttr(cppast.AttrReference, true)
	}
	if d.array {
		n.SetAttr(cppast.AttrArray, true)
		n.SetAttr(cppast.AttrArrayToken, d.arrayTok)
	}
	if d.hasInit && d.initFirst >= 0 && d.initLast >= d.initFirst {
		n.SetAttr(cppast.AttrHasInit, true)
		n.SetAttr(cppast.AttrInitFirst, b.idx(d.initFirst))
		n.SetAttr(cppast.AttrInitLast, b.idx(d.initLast))
	}
	if spec.has("virtual") {
		n.SetAttr(cppast.AttrVirtual, true)
	}
	if spec.has("static") {
		n.SetAttr(cppast.AttrStatic, true)
	}
	if d.override {
		n.SetAttr(cppast.AttrOverride, true)
	}
	if d.final {
		n.SetAttr(cppast.AttrFinal, true)
	}
	if d.pure {
		n.SetAttr(cppast.AttrPure, true)
	}
	if d.deleted {
		n.SetAttr(cppast.AttrDeleted, true)
	}
	if spec.maybeUnused {
		n.SetAttr(cppast.AttrMaybeUnused, true)
	}
}

type posRange struct{ first, last int }

// splitParams splits [first, closePos) on commas outside brackets and
// template argument lists.
func (b *builder) splitParams(first, closePos int) []posRange {
	var out []posRange
	start := first
	for q := first; q < closePos; {
		tok := b.tok(q)
		switch {
		case isOpener(tok):
			q = b.closer(q) + 1
			continue
		case tok.Is("<") && (b.isIdent(q-1) || b.tok(q-1).IsKeyword("template")):
			if end, ok := b.skipAngles(q, closePos, false); ok {
				q = end
				continue
			}
		case tok.Is(","):
			out = append(out, posRange{start, q - 1})
			start = q + 1
		}
		q++
	}
	return append(out, posRange{start, closePos - 1})
}

// parseParams appends a parameter declaration node for every named or
// unnamed parameter of d.
func (b *builder) parseParams(parent *cppast.Node, d declarator) {
	if d.paramOpen < 0 || d.paramClose <= d.paramOpen+1 {
		return
	}
	for _, r := range b.splitParams(d.paramOpen+1, d.paramClose) {
		if r.first > r.last {
			continue
		}
		if r.first == r.last && (b.tok(r.first).IsKeyword("void") || b.is(r.first, "...")) {
			continue
		}
		spec, ok := b.parseDeclSpecifiers(r.first, r.last+1)
		if !ok {
			continue
		}
		pd, ok := b.parseDeclarator(spec.end, r.last+1, ctxParam)
		if !ok {
			continue
		}
		n := b.node(cppast.NodeDeclaration, r.first, r.last)
		b.setDeclAttrs(n, spec, pd)
		n.SetAttr(cppast.AttrDeclKind, cppast.DeclVariable)
		n.SetAttr(cppast.AttrParameter, true)
		n.SetAttr(cppast.AttrRole, cppast.RoleParam)
		if pd.hasInit {
			b.scanCasts(n, pd.initFirst, pd.initLast)
		}
		cppast.AppendChild(parent, n)
	}
}

// parseFunctionDef builds a FunctionDef for a single function declarator
// whose body (or constructor initializer list) starts at q.
func (b *builder) parseFunctionDef(res simpleDecl, q int) (*cppast.Node, int) {
	d := res.decls[0]
	fn := b.node(cppast.NodeFunctionDef, res.spec.start, q)
	b.setDeclAttrs(fn, res.spec, d)
	b.parseParams(fn, d)

	if b.is(q, ":") {
		brace := b.skipCtorInitializers(q + 1)
		if !b.is(brace, "{") && !b.tok(brace).IsKeyword("try") {
			if found := b.findAtDepth(brace, b.n(), "{"); found >= 0 {
				brace = found
			}
		}
		b.scanCasts(fn, q+1, brace-1)
		q = brace
	}

	var body *cppast.Node
	var next int
	switch {
	case b.tok(q).IsKeyword("try"):
		body = b.node(cppast.NodeBlock, q, q)
		body.SetAttr(cppast.AttrBlockKind, cppast.BlockBody)
		st, after := b.parseStatement(q)
		cppast.AppendChild(body, st)
		b.extend(body, after-1)
		next = after
	case b.is(q, "{"):
		body, next = b.parseBlock(q, cppast.BlockBody)
	default:
		b.extend(fn, q-1)
		return fn, q
	}

	body.SetAttr(cppast.AttrRole, cppast.RoleBody)
	cppast.AppendChild(fn, body)
	b.extend(fn, next-1)
	return fn, next
}

func (b *builder) skipCtorInitializers(q int) int {
	for q < b.n() {
		end, _, _, ok := b.skipQualifiedName(q, b.n())
		if !ok {
			break
		}
		q = end
		if b.is(q, "(") || b.is(q, "{") {
			q = b.closer(q) + 1
		}
		if b.is(q, "...") {
			q++
		}
		if b.is(q, ",") {
			q++
			continue
		}
		break
	}
	return q
}

func (b *builder) parseNamespace(p int) ([]*cppast.Node, int) {
	q := p
	if b.tok(q).IsKeyword("inline") {
		q++
	}
	q++ // namespace

	if b.isIdent(q) && b.is(q+1, "=") {
		last, next := b.toSemicolon(p)
		n := b.node(cppast.NodeDeclaration, p, last)
		n.SetAttr(cppast.AttrDeclKind, cppast.DeclOther)
		n.SetAttr(cppast.AttrName, b.tok(q).Text)
		return []*cppast.Node{n}, next
	}

	var name []string
	for b.isIdent(q) || b.is(q, "::") || b.tok(q).IsKeyword("inline") {
		if b.isIdent(q) {
			name = append(name, b.tok(q).Text)
		}
		q++
	}
	q, _ = b.skipAttributes(q)
	if !b.is(q, "{") {
		n, next := b.opaque(p)
		return []*cppast.Node{n}, next
	}

	blk := b.node(cppast.NodeBlock, p, q)
	blk.SetAttr(cppast.AttrBlockKind, cppast.BlockNamespace)
	blk.SetAttr(cppast.AttrName, strings.Join(name, "::"))
	return b.fillScope(blk, q+1, ctxFile)
}

func (b *builder) parseLinkage(p int) ([]*cppast.Node, int) {
	blk := b.node(cppast.NodeBlock, p, p+2)
	blk.SetAttr(cppast.AttrBlockKind, cppast.BlockLinkage)
	return b.fillScope(blk, p+3, ctxFile)
}

// fillScope parses declarations into blk until the closing brace.
func (b *builder) fillScope(blk *cppast.Node, q int, ctx declContext) ([]*cppast.Node, int) {
	for q < b.n() && !b.is(q, "}") {
		nodes, next := b.parseDeclarationUnit(q, ctx)
		for _, n := range nodes {
			cppast.AppendChild(blk, n)
		}
		q = b.advance(q, next)
	}
	if q >= b.n() {
		b.extend(blk, b.n()-1)
		return []*cppast.Node{blk}, b.n()
	}
	b.extend(blk, q)
	return []*cppast.Node{blk}, q + 1
}

func (b *builder) parseTemplate(p int, ctx declContext) ([]*cppast.Node, int) {
	q := p + 1
	if b.is(q, "<") {
		end, ok := b.skipAngles(q, b.n(), false)
		if !ok {
			n, next := b.opaque(p)
			return []*cppast.Node{n}, next
		}
		q = end
	}
	if q >= b.n() {
		n, next := b.opaque(p)
		return []*cppast.Node{n}, next
	}
	nodes, next := b.parseDeclarationUnit(q, ctx)
	if len(nodes) > 0 {
		nodes[0].FirstToken = b.idx(p)
	}
	return nodes, next
}

func (b *builder) parseUsing(p int) ([]*cppast.Node, int) {
	last, next := b.toSemicolon(p)
	n := b.node(cppast.NodeDeclaration, p, last)
	n.SetAttr(cppast.AttrDeclKind, cppast.DeclUsing)
	if b.isIdent(p+1) && b.is(p+2, "=") {
		n.SetAttr(cppast.AttrName, b.tok(p+1).Text)
		n.SetAttr(cppast.AttrNameToken, b.idx(p+1))
	}
	return []*cppast.Node{n}, next
}

// typedefDefinesType reports whether the typedef at p defines a class or
// enum inline.
func (b *builder) typedefDefinesType(p int) bool {
	next := b.tok(p + 1)
	if isClassKey(next) {
		return b.isClassDefinition(p + 1)
	}
	if next.IsKeyword("enum") {
		end := b.findAtDepth(p+1, b.n(), ";")
		brace := b.findAtDepth(p+1, b.n(), "{")
		return brace >= 0 && (end < 0 || brace < end)
	}
	return false
}

func (b *builder) parseTypedefDefinition(p int) ([]*cppast.Node, int) {
	var inner *cppast.Node
	var q int
	if isClassKey(b.tok(p + 1)) {
		inner, q = b.parseClass(p + 1)
	} else {
		var ok bool
		inner, q, ok = b.parseEnum(p + 1)
		if !ok {
			return b.parseSimpleUnit(p, ctxFile)
		}
	}

	last, next := b.toSemicolon(q)
	n := b.node(cppast.NodeDeclaration, p, last)
	n.SetAttr(cppast.AttrDeclKind, cppast.DeclTypedef)
	n.SetAttr(cppast.AttrSpecifiers, []string{"typedef"})
	for r := q; r <= last; r++ {
		if b.isIdent(r) {
			n.SetAttr(cppast.AttrName, b.tok(r).Text)
			n.SetAttr(cppast.AttrNameToken, b.idx(r))
			break
		}
	}
	cppast.AppendChild(n, inner)
	return []*cppast.Node{n}, next
}

// isClassDefinition reports whether the class-key at p starts a class
// body rather than an elaborated type or forward declaration.
func (b *builder) isClassDefinition(p int) bool {
	for q := p + 1; q < b.n(); q++ {
		tok := b.tok(q)
		switch {
		case tok.Is("{"):
			return true
		case tok.Is(";"), tok.Is("("), tok.Is("="), tok.Is(")"), tok.Is("}"),
			tok.Is("*"), tok.Is("&"), tok.Is(","):
			if tok.Is(",") && b.inBaseClause(p, q) {
				continue
			}
			return false
		case tok.Is("<"):
			if end, ok := b.skipAngles(q, b.n(), false); ok {
				q = end - 1
			}
		case tok.Is("["):
			q = b.closer(q)
		}
	}
	return false
}

func (b *builder) inBaseClause(p, q int) bool {
	return b.findAtDepth(p+1, q, ":") >= 0
}

func (b *builder) parseClass(p int) (*cppast.Node, int) {
	key := b.tok(p).Text
	cls := b.node(cppast.NodeClassDef, p, p)
	cls.SetAttr(cppast.AttrClassKey, key)

	q, _ := b.skipAttributes(p + 1)
	if b.isIdent(q) || b.is(q, "::") {
		if end, last, lastTok, ok := b.skipQualifiedName(q, b.n()); ok {
			cls.SetAttr(cppast.AttrName, last)
			cls.SetAttr(cppast.AttrNameToken, lastTok)
			q = end
		}
	}
	if b.isIdent(q) && b.tok(q).Text == "final" {
		cls.SetAttr(cppast.AttrFinal, true)
		q++
	}

	var bases []string
	if b.is(q, ":") {
		q++
		for q < b.n() && !b.is(q, "{") {
			tok := b.tok(q)
			if tok.IsKeyword("virtual") || isAccessKeyword(tok) || tok.Is(",") || tok.Is("...") {
				q++
				continue
			}
			end, last, _, ok := b.skipQualifiedName(q, b.n())
			if !ok {
				q++
				continue
			}
			bases = append(bases, last)
			q = end
		}
	}
	if len(bases) > 0 {
		cls.SetAttr(cppast.AttrBases, bases)
	}

	body := b.node(cppast.NodeBlock, q, q)
	body.SetAttr(cppast.AttrBlockKind, cppast.BlockClass)
	access := "private"
	if key != "class" {
		access = "public"
	}

	q++
	for q < b.n() && !b.is(q, "}") {
		nodes, next := b.parseDeclarationUnit(q, ctxClass)
		for _, member := range nodes {
			if member.DeclKind() == cppast.DeclAccess {
				access = member.AttrString(cppast.AttrAccess)
			} else {
				member.SetAttr(cppast.AttrAccess, access)
			}
			cppast.AppendChild(body, member)
		}
		q = b.advance(q, next)
	}

	end := q
	if end >= b.n() {
		end = b.n() - 1
	}
	b.extend(body, end)
	cppast.AppendChild(cls, body)
	b.extend(cls, end)
	if q >= b.n() {
		return cls, b.n()
	}
	return cls, q + 1
}

func (b *builder) parseClassWithDeclarators(p int, ctx declContext) ([]*cppast.Node, int) {
	cls, q := b.parseClass(p)
	spec := specInfo{start: q, end: q, typeText: cls.AttrString(cppast.AttrName), typeSeen: true}
	return b.trailingDeclarators(cls, spec, q, ctx)
}

// trailingDeclarators handles "} a, *b;" after a class or enum body.
func (b *builder) trailingDeclarators(head *cppast.Node, spec specInfo, q int, ctx declContext) ([]*cppast.Node, int) {
	nodes := []*cppast.Node{head}
	if b.is(q, ";") {
		return nodes, q + 1
	}
	if q >= b.n() || b.is(q, "}") {
		return nodes, q
	}
	res, ok := b.parseDeclaratorList(spec, q, b.n(), ctx)
	if ok && b.is(res.end, ";") {
		decls := b.declNodes(res, ctx)
		b.extend(decls[len(decls)-1], res.end)
		return append(nodes, decls...), res.end + 1
	}
	n, next := b.opaque(q)
	return append(nodes, n), next
}

// parseEnum parses an enum definition or opaque enum declaration. It
// reports false for an elaborated type use such as "enum E e;".
func (b *builder) parseEnum(p int) (*cppast.Node, int, bool) {
	q := p + 1
	scoped := false
	if b.tok(q).IsKeyword("class") || b.tok(q).IsKeyword("struct") {
		scoped = true
		q++
	}
	q, _ = b.skipAttributes(q)

	n := b.node(cppast.NodeDeclaration, p, p)
	n.SetAttr(cppast.AttrDeclKind, cppast.DeclEnum)
	n.SetAttr(cppast.AttrScoped, scoped)
	if b.isIdent(q) || b.is(q, "::") {
		if end, last, lastTok, ok := b.skipQualifiedName(q, b.n()); ok {
			n.SetAttr(cppast.AttrName, last)
			n.SetAttr(cppast.AttrNameToken, lastTok)
			q = end
		}
	}
	if b.is(q, ":") {
		for q < b.n() && !b.is(q, "{") && !b.is(q, ";") {
			q++
		}
	}

	switch {
	case b.is(q, "{"):
		end := b.closer(q)
		b.extend(n, end)
		return n, end + 1, true
	case b.is(q, ";"):
		b.extend(n, q-1)
		return n, q, true
	default:
		return nil, p, false
	}
}

func (b *builder) parseEnumWithDeclarators(p int, ctx declContext) ([]*cppast.Node, int) {
	n, q, ok := b.parseEnum(p)
	if !ok {
		return b.parseSimpleUnit(p, ctx)
	}
	if b.is(q, ";") {
		b.extend(n, q)
		return []*cppast.Node{n}, q + 1
	}
	spec := specInfo{start: q, end: q, typeText: "enum " + n.AttrString(cppast.AttrName), typeSeen: true}
	return b.trailingDeclarators(n, spec, q, ctx)
}
