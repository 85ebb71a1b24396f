package services

import (
	"reflect"
	"strings"
	"testing"
)

func TestAnalyzeSymptoms_SeverityIsMaximum(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		symptoms     []string
		wantSeverity string
	}{
		{name: "no symptoms", symptoms: nil, wantSeverity: SeverityLow},
		{name: "unknown symptom", symptoms: []string{"hiccups"}, wantSeverity: SeverityLow},
		{name: "low only", symptoms: []string{"cough"}, wantSeverity: SeverityLow},
		{name: "medium beats low", symptoms: []string{"cough", "headache"}, wantSeverity: SeverityMedium},
		{name: "high beats medium", symptoms: []string{"headache", "fever"}, wantSeverity: SeverityHigh},
		{name: "high stays high regardless of order", symptoms: []string{"fever", "cough"}, wantSeverity: SeverityHigh},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			analysis := AnalyzeSymptoms(testCase.symptoms)
			if analysis.Severity != testCase.wantSeverity {
				t.Fatalf("expected severity %q, got %q", testCase.wantSeverity, analysis.Severity)
			}
		})
	}
}

func TestAnalyzeSymptoms_DeduplicatesMedications(t *testing.T) {
	t.Parallel()

	// Headache and fever both suggest Paracetamol and Ibuprofen.
	analysis := AnalyzeSymptoms([]string{"headache", "fever"})

	want := []string{"Paracetamol", "Ibuprofen"}
	if !reflect.DeepEqual(analysis.SuggestedMedications, want) {
		t.Fatalf("expected medications %v, got %v", want, analysis.SuggestedMedications)
	}
}

func TestAnalyzeSymptoms_NormalizesCaseAndSpacing(t *testing.T) {
	t.Parallel()

	analysis := AnalyzeSymptoms([]string{"  Fever  "})
	if analysis.Severity != SeverityHigh {
		t.Fatalf("expected high severity, got %q", analysis.Severity)
	}
	if len(analysis.Recommendations) != 4 {
		t.Fatalf("expected 4 recommendations, got %d", len(analysis.Recommendations))
	}
}

func TestAnalyzeSymptoms_JoinsEmergencyAdvice(t *testing.T) {
	t.Parallel()

	analysis := AnalyzeSymptoms([]string{"headache", "nausea"})
	if !strings.Contains(analysis.EmergencyAdvice, "neck stiffness") {
		t.Fatalf("expected headache advice in %q", analysis.EmergencyAdvice)
	}
	if !strings.Contains(analysis.EmergencyAdvice, "abdominal pain") {
		t.Fatalf("expected nausea advice in %q", analysis.EmergencyAdvice)
	}
}
