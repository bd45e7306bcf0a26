package services

import "strings"

// The instruction block below is part of the external contract with the
// completion service: existing callers parse the three fields it requests,
// so the wording must not drift.
const analysisInstructions = "Given the following list of food ingredients, generate a JSON object with the following fields:\n" +
	"1. 'ingredient_risks': an array where each object contains: 'ingredient', 'risk' (one of: 'safe', 'moderate', 'avoid'), and a brief 'reason'.\n" +
	"2. 'healthy_alternatives': an array of 3-5 healthy alternative suggestions (not brands or products), each as an object with 'suggestion' and 'reason' fields. For example: { 'suggestion': 'fresh fruit', 'reason': 'Naturally sweet and high in fiber' }.\n" +
	"3. 'ailment_explanations': an array where each object contains: 'ailment' (from the user's profile) and 'why_bad' (explain why this product or its ingredients may be problematic for that ailment).\n"

// BuildAnalysisPrompt renders the analysis instruction for a resolved
// ingredient list and an optional free-text health profile. Output is
// deterministic: identical inputs yield byte-identical prompts.
func BuildAnalysisPrompt(ingredients, profile string) string {
	var b strings.Builder
	if profile != "" {
		b.WriteString("The user has the following health profile, allergies, dietary preferences, and ailments: ")
		b.WriteString(profile)
		b.WriteString(". ")
	}
	b.WriteString(analysisInstructions)
	b.WriteString("Ingredients: ")
	b.WriteString(ingredients)
	b.WriteString("\nRespond ONLY with the JSON object.")
	return b.String()
}
