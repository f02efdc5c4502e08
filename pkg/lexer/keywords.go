package lexer

var keywords = map[string]struct{}{
	"alignas": {}, "alignof": {}, "asm": {}, "auto": {}, "bool": {}, "break": {},
	"case": {}, "catch": {}, "char": {}, "char8_t": {}, "char16_t": {}, "char32_t": {},
	"class": {}, "concept": {}, "const": {}, "consteval": {}, "constexpr": {},
	"constinit": {}, "const_cast": {}, "continue": {}, "co_await": {}, "co_return": {},
	"co_yield": {}, "decltype": {}, "default": {}, "delete": {}, "do": {}, "double": {},
	"dynamic_cast": {}, "else": {}, "enum": {}, "explicit": {}, "export": {},
	"extern": {}, "false": {}, "float": {}, "for": {}, "friend": {}, "goto": {},
	"if": {}, "inline": {}, "int": {}, "long": {}, "mutable": {}, "namespace": {},
	"new": {}, "noexcept": {}, "nullptr": {}, "operator": {}, "private": {},
	"protected": {}, "public": {}, "register": {}, "reinterpret_cast": {},
	"requires": {}, "return": {}, "short": {}, "signed": {}, "sizeof": {},
	"static": {}, "static_assert": {}, "static_cast": {}, "struct": {}, "switch": {},
	"template": {}, "this": {}, "thread_local": {}, "throw": {}, "true": {},
	"try": {}, "typedef": {}, "typeid": {}, "typename": {}, "union": {},
	"unsigned": {}, "using": {}, "virtual": {}, "void": {}, "volatile": {},
	"wchar_t": {}, "while": {},
}

// IsKeyword reports whether word is a reserved C++ keyword. The contextual
// identifiers override and final are not keywords.
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}
