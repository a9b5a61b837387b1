package types

// SkillTaxonomy is the fixed skill vocabulary a ranking run is scored
// against. It is ordinary configuration passed in at call time, so parallel
// runs can use different taxonomies without interference.
type SkillTaxonomy struct {
	Required        []string `json:"required"`         // Partitioned into matched/missing per resume
	Preferred       []string `json:"preferred"`        // Folded into skill coverage at a minority weight
	AIKeywords      []string `json:"ai_keywords"`      // Drive the AI relevance density score
	SupportKeywords []string `json:"support_keywords"` // Drive the support relevance density score
	DegreeFields    []string `json:"degree_fields"`    // Degree fields counted as a full education match
}
