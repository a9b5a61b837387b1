// Package types defines the shared data structures for resume scoring and ranking evaluation.
package types

// FactBundle holds the rule-derived signal for a single resume, produced by
// the deterministic extractor. All coverage and relevance scores are in [0,1].
type FactBundle struct {
	YearsExperience    float64  `json:"years_experience"`    // Non-negative; max of mention and date-range heuristics
	MatchedRequired    []string `json:"matched_required"`    // Required skills found in the resume text
	MissingRequired    []string `json:"missing_required"`    // Required skills not found
	MatchedPreferred   []string `json:"matched_preferred"`   // Preferred skills found
	AIRelevance        float64  `json:"ai_relevance"`        // AI/domain keyword density, 0-1
	SupportRelevance   float64  `json:"support_relevance"`   // Support keyword density, 0-1
	EducationRelevance float64  `json:"education_relevance"` // Degree-field match, 0-1
}

// JudgeOutput is the structured verdict returned by the LLM judge for one
// (job description, resume) pair. It is treated as an opaque signal: the
// core clamps Score to [0,1] but never re-derives its internal consistency.
type JudgeOutput struct {
	Score         float64            `json:"score"`
	Reasoning     string             `json:"reasoning"`
	MatchedSkills []string           `json:"matched_skills"`
	MissingSkills []string           `json:"missing_skills"`
	SubScores     map[string]float64 `json:"sub_scores,omitempty"` // skill_alignment, experience_depth, domain_fit; display only
}

// ScoreBreakdown records the normalized sub-factor values that fed the
// deterministic score, so the explanation can restate them exactly.
type ScoreBreakdown struct {
	SkillCoverage    float64 `json:"skill_coverage"`
	AIRelevance      float64 `json:"ai_relevance"`
	Experience       float64 `json:"experience"`
	SupportRelevance float64 `json:"support_relevance"`
	Education        float64 `json:"education"`
}

// ScoredCandidate is the final per-resume record produced by the hybrid
// scorer. It is immutable once created; a re-evaluation produces a fresh
// record rather than mutating an existing one.
type ScoredCandidate struct {
	ID                 string         `json:"id"`
	FinalScore         float64        `json:"final_score"`         // round3(wLLM*llm + wDet*det)
	DeterministicScore float64        `json:"deterministic_score"` // 0-1
	LLMScore           float64        `json:"llm_score"`           // judge score after clamping
	LLMScoreClamped    bool           `json:"llm_score_clamped"`   // true when the raw judge score was out of [0,1]
	Explanation        string         `json:"explanation"`
	Breakdown          ScoreBreakdown `json:"breakdown"`
}

// GroundTruth maps candidate ID to its human-assigned graded relevance label.
// Labels are typically drawn from {0.0, 0.5, 1.0} but any value in [0,1] is accepted.
type GroundTruth map[string]float64

// EvaluationReport aggregates the ranking-quality metrics for one batch run.
type EvaluationReport struct {
	RunID            string  `json:"run_id"`
	K                int     `json:"k"`
	NDCGAtK          float64 `json:"ndcg_at_k"`
	PrecisionAt1     float64 `json:"precision_at_1"`
	RecallAtK        float64 `json:"recall_at_k"`
	PairwiseAccuracy float64 `json:"pairwise_accuracy"`
	Excluded         int     `json:"excluded"` // scored candidates with no ground-truth label
}
