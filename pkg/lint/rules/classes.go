package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/cppast"
	"github.com/yaklabco/autosarlint/pkg/lint"
)

// VirtualSpecifierRule checks the virt-specifiers of member functions.
type VirtualSpecifierRule struct {
	lint.BaseRule
}

// NewVirtualSpecifierRule creates the virtual-specifier rule.
func NewVirtualSpecifierRule() *VirtualSpecifierRule {
	return &VirtualSpecifierRule{
		BaseRule: lint.NewBaseRule("A10-3-1", "virtual-specifier",
			"Virtual function declaration shall contain exactly one of the three specifiers: (1) virtual, (2) override, (3) final",
			catClasses, config.SeverityWarning, false),
	}
}

// Apply reports members carrying several specifiers and members that
// override a virtual function of a base class defined in the same file
// without override or final.
func (r *VirtualSpecifierRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	classes := ctx.Nodes().Classes()
	idx := classIndex{
		virtuals: make(map[string]map[string]bool, len(classes)),
		bases:    make(map[string][]string, len(classes)),
	}
	for _, cls := range classes {
		name := cls.AttrString(cppast.AttrName)
		if name == "" {
			continue
		}
		idx.bases[name] = append(idx.bases[name], cls.AttrStrings(cppast.AttrBases)...)
		set := idx.virtuals[name]
		if set == nil {
			set = make(map[string]bool)
			idx.virtuals[name] = set
		}
		for _, member := range members(cls) {
			if isMemberFunction(member) && lint.IsVirtualFunction(member) {
				set[member.AttrString(cppast.AttrName)] = true
			}
		}
	}

	var diags []lint.Diagnostic
	for _, cls := range classes {
		if ctx.Cancelled() {
			return diags, errCancelled(ctx)
		}
		inherited := idx.inherited(cls)
		for _, member := range members(cls) {
			if !isMemberFunction(member) {
				continue
			}
			name := member.AttrString(cppast.AttrName)
			specs := virtSpecifiers(member)
			switch {
			case len(specs) > 1:
				diags = append(diags, nameDiagnostic(ctx, r.ID(), member,
					fmt.Sprintf("'%s' combines %s; use exactly one", name, strings.Join(specs, ", "))))
			case inherited[name] && !strings.HasPrefix(name, "~") &&
				!member.AttrBool(cppast.AttrOverride) && !member.AttrBool(cppast.AttrFinal):
				diags = append(diags, nameDiagnostic(ctx, r.ID(), member,
					fmt.Sprintf("'%s' overrides a virtual function but is not marked override or final", name)))
			}
		}
	}
	return diags, nil
}

func virtSpecifiers(fn *cppast.Node) []string {
	var specs []string
	if fn.AttrBool(cppast.AttrVirtual) {
		specs = append(specs, "virtual")
	}
	if fn.AttrBool(cppast.AttrOverride) {
		specs = append(specs, "override")
	}
	if fn.AttrBool(cppast.AttrFinal) {
		specs = append(specs, "final")
	}
	return specs
}

// classIndex maps in-file class names to their virtual function names
// and base class names.
type classIndex struct {
	virtuals map[string]map[string]bool
	bases    map[string][]string
}

// inherited collects the virtual function names of all in-file base
// classes of cls, transitively.
func (idx classIndex) inherited(cls *cppast.Node) map[string]bool {
	out := make(map[string]bool)
	seen := map[string]bool{cls.AttrString(cppast.AttrName): true}
	queue := append([]string(nil), cls.AttrStrings(cppast.AttrBases)...)
	for len(queue) > 0 {
		base := queue[0]
		queue = queue[1:]
		if seen[base] {
			continue
		}
		seen[base] = true
		for name := range idx.virtuals[base] {
			out[name] = true
		}
		queue = append(queue, idx.bases[base]...)
	}
	return out
}

// members returns the member declarations of a class.
func members(cls *cppast.Node) []*cppast.Node {
	body := classBody(cls)
	if body == nil {
		return nil
	}
	return body.Children()
}

// StructPODRule flags structs that are not plain data.
type StructPODRule struct {
	lint.BaseRule
}

// NewStructPODRule creates the struct-is-pod rule.
func NewStructPODRule() *StructPODRule {
	return &StructPODRule{
		BaseRule: lint.NewBaseRule("A11-0-1", "struct-is-pod",
			"A non-POD type should be defined as class", catClasses, config.SeverityInfo, false),
	}
}

// Apply reports structs with base classes, virtual functions or
// non-public members.
func (r *StructPODRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	for _, cls := range ctx.Nodes().Classes() {
		if cls.AttrString(cppast.AttrClassKey) != "struct" {
			continue
		}
		reason := nonPODReason(cls)
		if reason == "" {
			continue
		}
		name := cls.AttrString(cppast.AttrName)
		if name == "" {
			name = "<anonymous>"
		}
		kw := ctx.Token(cls.FirstToken)
		end := kw
		if tok, ok := lint.NameToken(cls); ok {
			end = tok
		}
		diags = append(diags, lint.NewDiagnosticAt(r.ID(), ctx.File.Path, cppast.SpanOf(kw, end),
			fmt.Sprintf("struct '%s' %s; define it as a class", name, reason)).Build())
	}
	return diags, nil
}

func nonPODReason(cls *cppast.Node) string {
	if len(cls.AttrStrings(cppast.AttrBases)) > 0 {
		return "has base classes"
	}
	for _, member := range members(cls) {
		if member.DeclKind() == cppast.DeclAccess {
			continue
		}
		if isMemberFunction(member) && lint.IsVirtualFunction(member) {
			return "has virtual functions"
		}
		if access := member.AttrString(cppast.AttrAccess); access != "" && access != "public" {
			return "has " + access + " members"
		}
	}
	return ""
}
