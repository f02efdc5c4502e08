package config

// FormatRuleID formats a rule identifier based on the given format.
// Falls back to the ID if name is empty.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	if ruleName == "" {
		return ruleID
	}

	switch format {
	case RuleFormatName:
		return ruleName
	case RuleFormatCombined:
		return ruleID + "/" + ruleName
	default:
		return ruleID
	}
}
