package rules

import (
	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/lint"
)

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	// Lexical rules
	registry.Register(NewTrigraphRule())            // A2-5-1
	registry.Register(NewCommentContinuationRule()) // A2-7-1
	registry.Register(NewNestedCommentRule())       // M2-7-1
	registry.Register(NewEscapeSequenceRule())      // A2-13-1
	registry.Register(NewVolatileRule())            // A2-11-1
	registry.Register(NewWcharRule())               // A2-13-3
	registry.Register(NewHexUppercaseRule())        // A2-13-5
	registry.Register(NewOctalRule())               // M2-13-2
	registry.Register(NewLiteralSuffixRule())       // M2-13-4
	registry.Register(NewLongDoubleRule())          // A0-4-2
	registry.Register(NewFixedWidthIntegerRule())   // A3-9-1

	// Library usage rules
	registry.Register(NewNullptrRule())    // A4-10-1
	registry.Register(NewRegisterRule())   // A7-1-4
	registry.Register(NewVectorBoolRule()) // A18-1-2
	registry.Register(NewNewDeleteRule())  // A18-5-2
	registry.Register(NewErrnoRule())      // M19-3-1
	registry.Register(NewRandRule())       // A26-5-1

	// Statement rules
	registry.Register(NewGotoRule())      // A6-6-1
	registry.Register(NewDoWhileRule())   // A6-5-3
	registry.Register(NewLoopBodyRule())  // M6-3-1
	registry.Register(NewIfBodyRule())    // M6-4-1
	registry.Register(NewFinalElseRule()) // M6-4-2

	// Declaration rules
	registry.Register(NewTypedefRule())      // A7-1-6
	registry.Register(NewScopedEnumRule())   // A7-2-3
	registry.Register(NewCArrayRule())       // A18-1-1
	registry.Register(NewPointerDepthRule()) // A5-0-3
	registry.Register(NewShadowingRule())    // A2-10-1

	// Cast rules
	registry.Register(NewDynamicCastRule())     // A5-2-1
	registry.Register(NewCStyleCastRule())      // A5-2-2
	registry.Register(NewConstCastRule())       // A5-2-3
	registry.Register(NewReinterpretCastRule()) // A5-2-4

	// Class and exception rules
	registry.Register(NewVirtualSpecifierRule()) // A10-3-1
	registry.Register(NewStructPODRule())        // A11-0-1
	registry.Register(NewThrowRule())            // A15-1-1

	// Preprocessor rules
	registry.Register(NewDefineRule())             // A16-2-1
	registry.Register(NewReservedIdentifierRule()) // A17-0-1

	// Cross-reference rules
	registry.Register(NewUnreachableCodeRule()) // M0-1-1
	registry.Register(NewUnusedVariableRule())  // M0-1-3
	registry.Register(NewUnusedParameterRule()) // A0-1-4
}

// RegisterLegacyAliases registers clang-tidy check names for the rules
// that enforce the same thing, so configuration written for clang-tidy
// can address the catalog.
func RegisterLegacyAliases(registry *lint.Registry) {
	registry.RegisterAlias("modernize-use-nullptr", "A4-10-1")
	registry.RegisterAlias("modernize-use-using", "A7-1-6")
	registry.RegisterAlias("modernize-use-override", "A10-3-1")
	registry.RegisterAlias("cppcoreguidelines-avoid-goto", "A6-6-1")
	registry.RegisterAlias("cppcoreguidelines-avoid-c-arrays", "A18-1-1")
	registry.RegisterAlias("cppcoreguidelines-pro-type-cstyle-cast", "A5-2-2")
	registry.RegisterAlias("cppcoreguidelines-pro-type-const-cast", "A5-2-3")
	registry.RegisterAlias("cppcoreguidelines-pro-type-reinterpret-cast", "A5-2-4")
	registry.RegisterAlias("hicpp-exception-baseclass", "A15-1-1")
	registry.RegisterAlias("misc-unused-parameters", "A0-1-4")
}

// RuleInfos converts the descriptors of registry for config templates.
func RuleInfos(registry *lint.Registry) []config.RuleInfo {
	descs := registry.Descriptors()
	infos := make([]config.RuleInfo, 0, len(descs))
	for _, d := range descs {
		infos = append(infos, config.RuleInfo{
			ID:          d.ID,
			Name:        d.Name,
			Category:    d.Category,
			Description: d.Summary,
			Enabled:     d.DefaultEnabled,
			Severity:    d.DefaultSeverity,
			CanFix:      d.Fixable,
		})
	}
	return infos
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterLegacyAliases(lint.DefaultRegistry)
	config.DefaultRuleInfoProvider = func() []config.RuleInfo {
		return RuleInfos(lint.DefaultRegistry)
	}
}
