package records

import (
	"encoding/json"
	"testing"
)

func TestMedicalRecord_Normalize(t *testing.T) {
	rec := &MedicalRecord{}
	rec.normalize()

	if rec.Diagnosis == nil || len(rec.Diagnosis) != 0 {
		t.Error("expected empty diagnosis sequence")
	}
	if rec.Prescriptions == nil || rec.LabResults == nil || rec.Attachments == nil {
		t.Error("expected all nested sequences to be initialized")
	}
	if rec.VitalSigns != nil {
		t.Error("expected vital signs to stay nil")
	}
}

func TestMedicalRecord_Normalize_KeepsExisting(t *testing.T) {
	rec := &MedicalRecord{
		Diagnosis: []Diagnosis{{Code: "I10", Description: "Hypertension", Severity: "moderate", Status: "chronic"}},
	}
	rec.normalize()

	if len(rec.Diagnosis) != 1 {
		t.Errorf("expected existing diagnosis to survive, got %d entries", len(rec.Diagnosis))
	}
}

func TestMedicalRecord_OmitsNilVitalSigns(t *testing.T) {
	rec := &MedicalRecord{PatientID: "patient-1"}
	rec.normalize()

	raw, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := m["vital_signs"]; ok {
		t.Error("expected vital_signs to be omitted when absent")
	}
	if string(m["diagnosis"]) != "[]" {
		t.Errorf("expected diagnosis to serialize as [], got %s", m["diagnosis"])
	}
}
