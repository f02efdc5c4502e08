// Package rules provides the built-in AUTOSAR C++14 detectors.
//
// # Rule Groups
//
// Detectors fall into three families by the input they consume:
//
//   - Lexical detectors scan the token stream: trigraphs (A2-5-1),
//     comment continuations (A2-7-1, M2-7-1), escapes and literals
//     (A2-13-1, A2-13-5, M2-13-2, M2-13-4), banned keywords and library
//     names (A2-11-1, A2-13-3, A0-4-2, A3-9-1, A4-10-1, A7-1-4, A18-1-2,
//     A18-5-2, M19-3-1, A26-5-1).
//
//   - Structural detectors read node shape from the forest: statements
//     (A6-6-1, A6-5-3, M6-3-1, M6-4-1, M6-4-2), declarations (A7-1-6,
//     A7-2-3, A18-1-1, A5-0-3, A2-10-1), casts (A5-2-1 to A5-2-4), classes
//     (A10-3-1, A11-0-1), exceptions (A15-1-1) and preprocessor directives
//     (A16-2-1, A17-0-1).
//
//   - Cross-reference detectors track names within one function body:
//     unreachable statements (M0-1-1), unused locals (M0-1-3) and unused
//     parameters (A0-1-4).
//
// # Rule IDs
//
// IDs follow the AUTOSAR guideline numbering: an A prefix for rules new
// in AUTOSAR, M for rules adopted from MISRA C++:2008. Each rule also has
// a kebab-case name usable wherever an ID is accepted.
//
// # Rule Packs
//
// Packs are configuration presets:
//
//   - required: every rule at its default severity
//   - strict: every rule as an error, A3-9-1 included
//   - relaxed: lexical hygiene and the rules most likely to hide defects
//
// Use PackByName or Packs to access pack definitions programmatically.
//
// # Registration
//
// Rules are registered with the default registry by init. Detectors are
// stateless; everything they learn lives in the RuleContext of one file.
package rules
