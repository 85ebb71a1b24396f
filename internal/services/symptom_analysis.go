package services

import "strings"

const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// SymptomAnalysis aggregates the catalog guidance for a set of reported
// symptoms. Severity is the maximum across matched symptoms.
type SymptomAnalysis struct {
	Symptoms             []string `json:"symptoms"`
	Severity             string   `json:"severity"`
	Recommendations      []string `json:"recommendations"`
	SuggestedMedications []string `json:"suggested_medications"`
	EmergencyAdvice      string   `json:"emergency_advice,omitempty"`
}

type symptomGuidance struct {
	severity        string
	recommendations []string
	medications     []string
	emergency       string
}

// symptomCatalog holds the built-in guidance per known symptom. Unknown
// symptoms contribute nothing and leave severity at low.
var symptomCatalog = map[string]symptomGuidance{
	"headache": {
		severity: SeverityMedium,
		recommendations: []string{
			"Stay hydrated - drink plenty of water",
			"Rest in a quiet, dark room",
			"Apply a cold or warm compress",
			"Consider over-the-counter pain relief",
		},
		medications: []string{"Paracetamol", "Ibuprofen"},
		emergency:   "If headache is severe, sudden, or accompanied by fever, vision changes, or neck stiffness, seek immediate medical attention",
	},
	"fever": {
		severity: SeverityHigh,
		recommendations: []string{
			"Monitor your temperature regularly",
			"Stay hydrated with water and clear fluids",
			"Rest and avoid strenuous activity",
			"Use fever reducers as directed",
		},
		medications: []string{"Paracetamol", "Ibuprofen"},
		emergency:   "Seek immediate medical attention if fever exceeds 103°F (39.4°C), or if you experience difficulty breathing, chest pain, or severe symptoms",
	},
	"fatigue": {
		severity: SeverityMedium,
		recommendations: []string{
			"Get adequate rest and sleep",
			"Eat iron-rich foods",
			"Stay hydrated",
			"Light exercise can help boost energy",
		},
		medications: []string{"Iron supplement", "Vitamin B12"},
		emergency:   "If fatigue is severe and persistent, consult a healthcare professional",
	},
	"nausea": {
		severity: SeverityMedium,
		recommendations: []string{
			"Eat small, frequent meals",
			"Avoid spicy or greasy foods",
			"Stay hydrated with clear fluids",
			"Try ginger tea or ginger candies",
		},
		medications: []string{"Antacids", "Ginger supplements"},
		emergency:   "If nausea is severe and persistent, or accompanied by severe abdominal pain, seek medical attention",
	},
	"cough": {
		severity: SeverityLow,
		recommendations: []string{
			"Stay hydrated",
			"Use a humidifier",
			"Avoid irritants like smoke",
			"Try honey and warm water",
		},
		medications: []string{"Cough syrup", "Throat lozenges"},
		emergency:   "If cough is severe, persistent, or accompanied by blood, seek medical attention",
	},
}

// AnalyzeSymptoms looks each symptom up in the catalog and merges guidance:
// highest severity wins, recommendations and medications are deduplicated in
// first-seen order, and emergency advice lines are joined.
func AnalyzeSymptoms(symptoms []string) SymptomAnalysis {
	analysis := SymptomAnalysis{
		Symptoms:             symptoms,
		Severity:             SeverityLow,
		Recommendations:      []string{},
		SuggestedMedications: []string{},
	}

	emergencyAdvice := make([]string, 0)
	for _, symptom := range symptoms {
		guidance, known := symptomCatalog[strings.ToLower(strings.TrimSpace(symptom))]
		if !known {
			continue
		}

		if guidance.severity == SeverityHigh {
			analysis.Severity = SeverityHigh
		} else if guidance.severity == SeverityMedium && analysis.Severity != SeverityHigh {
			analysis.Severity = SeverityMedium
		}

		analysis.Recommendations = appendUnique(analysis.Recommendations, guidance.recommendations...)
		analysis.SuggestedMedications = appendUnique(analysis.SuggestedMedications, guidance.medications...)
		if guidance.emergency != "" {
			emergencyAdvice = append(emergencyAdvice, guidance.emergency)
		}
	}

	analysis.EmergencyAdvice = strings.Join(emergencyAdvice, " ")
	return analysis
}

func appendUnique(values []string, additions ...string) []string {
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		seen[value] = struct{}{}
	}
	for _, addition := range additions {
		if _, exists := seen[addition]; exists {
			continue
		}
		seen[addition] = struct{}{}
		values = append(values, addition)
	}
	return values
}
