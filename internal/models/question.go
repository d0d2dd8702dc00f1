package models

import "fmt"

type Section string

const (
	SectionReadingAndWriting Section = "reading_and_writing"
	SectionMath              Section = "math"
)

type Domain string

const (
	// Reading and writing
	DomainInformationAndIdeas        Domain = "information_and_ideas"
	DomainCraftAndStructure          Domain = "craft_and_structure"
	DomainExpressionOfIdeas          Domain = "expression_of_ideas"
	DomainStandardEnglishConventions Domain = "standard_english_conventions"

	// Math
	DomainAlgebra                       Domain = "algebra"
	DomainAdvancedMath                  Domain = "advanced_math"
	DomainProblemSolvingAndDataAnalysis Domain = "problem_solving_and_data_analysis"
	DomainGeometryAndTrigonometry       Domain = "geometry_and_trigonometry"
)

type Skill string

const (
	SkillCommandOfEvidenceTextual      Skill = "command_of_evidence_textual"
	SkillCommandOfEvidenceQuantitative Skill = "command_of_evidence_quantitative"
	SkillCentralIdeasAndDetails        Skill = "central_ideas_and_details"
	SkillInferences                    Skill = "inferences"

	SkillWordInContext           Skill = "word_in_context"
	SkillTextStructureAndPurpose Skill = "text_structure_and_purpose"
	SkillCrossTextConnections    Skill = "cross_text_connections"

	SkillTransitions         Skill = "transitions"
	SkillRhetoricalSynthesis Skill = "rhetorical_synthesis"

	SkillBoundaries            Skill = "boundaries"
	SkillFormStructureAndSense Skill = "form_structure_and_sense"

	SkillLinearEquationsInOneVariable              Skill = "linear_equations_in_one_variable"
	SkillLinearFunctions                           Skill = "linear_functions"
	SkillLinearEquationsInTwoVariables             Skill = "linear_equations_in_two_variables"
	SkillSystemsOfTwoLinearEquationsInTwoVariables Skill = "systems_of_two_linear_equations_in_two_variables"
	SkillLinearInequalitiesInOneOrTwoVariables     Skill = "linear_inequalities_in_one_or_two_variables"

	SkillNonlinearFunctions                                                 Skill = "nonlinear_functions"
	SkillNonlinearEquationsInOneVariableAndSystemsOfEquationsInTwoVariables Skill = "nonlinear_equations_in_one_variable_and_systems_of_equations_in_two_variables"
	SkillEquivalentExpressions                                              Skill = "equivalent_expressions"

	SkillRatiosRatesProportionalRelationshipsAndUnits                  Skill = "ratios_rates_proportional_relationships_and_units"
	SkillPercentages                                                   Skill = "percentages"
	SkillOneVariableDataDistributionsAndMeasuresOfCenterAndSpread      Skill = "one_variable_data_distributions_and_measures_of_center_and_spread"
	SkillTwoVariableDataModelsAndScatterplots                          Skill = "two_variable_data_models_and_scatterplots"
	SkillProbabilityAndConditionalProbability                          Skill = "probability_and_conditional_probability"
	SkillInferenceFromSampleStatisticsAndMarginOfError                 Skill = "inference_from_sample_statistics_and_margin_of_error"
	SkillEvaluatingStatisticalClaimsObservationalStudiesAndExperiments Skill = "evaluating_statistical_claims_observational_studies_and_experiments"

	SkillAreaAndVolume                 Skill = "area_and_volume"
	SkillLinesAnglesAndTriangles       Skill = "lines_angles_and_triangles"
	SkillRightTrianglesAndTrigonometry Skill = "right_triangles_and_trigonometry"
	SkillCircles                       Skill = "circles"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	ShortAnswer    QuestionType = "short_answer"
)

// Option is one answer choice of a multiple choice question.
type Option struct {
	Label       string  `json:"label" validate:"required"`
	Text        string  `json:"text" validate:"required"`
	Explanation *string `json:"explanation"`
}

// Question is one extracted exam item. Optional fields are pointers so that
// an absent value round-trips as JSON null.
type Question struct {
	Section       Section       `json:"section" validate:"required,section"`
	Domain        *Domain       `json:"domain" validate:"omitempty,domain"`
	Skill         *Skill        `json:"skill" validate:"omitempty,skill"`
	Difficulty    *Difficulty   `json:"difficulty" validate:"omitempty,difficulty"`
	Type          *QuestionType `json:"type" validate:"omitempty,question_type"`
	Passage       *string       `json:"passage"`
	ImagePage     *string       `json:"imagePage"`
	QuestionText  string        `json:"questionText" validate:"required"`
	Options       []Option      `json:"options" validate:"omitempty,dive"`
	CorrectAnswer *string       `json:"correctAnswer"`
}

// EnumError is returned when a closed-set field carries a value outside its set.
type EnumError struct {
	Field string
	Value string
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

func (s Section) IsValid() bool {
	switch s {
	case SectionReadingAndWriting, SectionMath:
		return true
	}
	return false
}

func (s *Section) UnmarshalText(b []byte) error {
	v := Section(b)
	if !v.IsValid() {
		return &EnumError{Field: "section", Value: string(b)}
	}
	*s = v
	return nil
}

func (d Domain) IsValid() bool {
	switch d {
	case DomainInformationAndIdeas, DomainCraftAndStructure, DomainExpressionOfIdeas,
		DomainStandardEnglishConventions, DomainAlgebra, DomainAdvancedMath,
		DomainProblemSolvingAndDataAnalysis, DomainGeometryAndTrigonometry:
		return true
	}
	return false
}

func (d *Domain) UnmarshalText(b []byte) error {
	v := Domain(b)
	if !v.IsValid() {
		return &EnumError{Field: "domain", Value: string(b)}
	}
	*d = v
	return nil
}

func (s Skill) IsValid() bool {
	for _, known := range allSkills {
		if s == known {
			return true
		}
	}
	return false
}

func (s *Skill) UnmarshalText(b []byte) error {
	v := Skill(b)
	if !v.IsValid() {
		return &EnumError{Field: "skill", Value: string(b)}
	}
	*s = v
	return nil
}

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

func (d *Difficulty) UnmarshalText(b []byte) error {
	v := Difficulty(b)
	if !v.IsValid() {
		return &EnumError{Field: "difficulty", Value: string(b)}
	}
	*d = v
	return nil
}

func (t QuestionType) IsValid() bool {
	switch t {
	case MultipleChoice, ShortAnswer:
		return true
	}
	return false
}

func (t *QuestionType) UnmarshalText(b []byte) error {
	v := QuestionType(b)
	if !v.IsValid() {
		return &EnumError{Field: "type", Value: string(b)}
	}
	*t = v
	return nil
}

var allSkills = []Skill{
	SkillCommandOfEvidenceTextual,
	SkillCommandOfEvidenceQuantitative,
	SkillCentralIdeasAndDetails,
	SkillInferences,
	SkillWordInContext,
	SkillTextStructureAndPurpose,
	SkillCrossTextConnections,
	SkillTransitions,
	SkillRhetoricalSynthesis,
	SkillBoundaries,
	SkillFormStructureAndSense,
	SkillLinearEquationsInOneVariable,
	SkillLinearFunctions,
	SkillLinearEquationsInTwoVariables,
	SkillSystemsOfTwoLinearEquationsInTwoVariables,
	SkillLinearInequalitiesInOneOrTwoVariables,
	SkillNonlinearFunctions,
	SkillNonlinearEquationsInOneVariableAndSystemsOfEquationsInTwoVariables,
	SkillEquivalentExpressions,
	SkillRatiosRatesProportionalRelationshipsAndUnits,
	SkillPercentages,
	SkillOneVariableDataDistributionsAndMeasuresOfCenterAndSpread,
	SkillTwoVariableDataModelsAndScatterplots,
	SkillProbabilityAndConditionalProbability,
	SkillInferenceFromSampleStatisticsAndMarginOfError,
	SkillEvaluatingStatisticalClaimsObservationalStudiesAndExperiments,
	SkillAreaAndVolume,
	SkillLinesAnglesAndTriangles,
	SkillRightTrianglesAndTrigonometry,
	SkillCircles,
}

func AllSections() []Section {
	return []Section{SectionReadingAndWriting, SectionMath}
}

func AllDomains() []Domain {
	return []Domain{
		DomainInformationAndIdeas,
		DomainCraftAndStructure,
		DomainExpressionOfIdeas,
		DomainStandardEnglishConventions,
		DomainAlgebra,
		DomainAdvancedMath,
		DomainProblemSolvingAndDataAnalysis,
		DomainGeometryAndTrigonometry,
	}
}

func AllSkills() []Skill {
	out := make([]Skill, len(allSkills))
	copy(out, allSkills)
	return out
}

func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

func AllQuestionTypes() []QuestionType {
	return []QuestionType{MultipleChoice, ShortAnswer}
}
