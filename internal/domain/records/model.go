package records

import (
	"time"

	"github.com/google/uuid"
)

// Record types classifying a medical record's purpose.
const (
	TypeConsultation = "consultation"
	TypeDiagnosis    = "diagnosis"
	TypePrescription = "prescription"
	TypeLabResult    = "lab_result"
	TypeImaging      = "imaging"
)

// MedicalRecord maps to the medical_records table. The nested sequences and
// vital signs are stored as JSONB documents; everything else is a scalar
// column.
type MedicalRecord struct {
	ID             uuid.UUID      `db:"id" json:"id"`
	PatientID      string         `db:"patient_id" json:"patient_id" validate:"required"`
	DoctorID       string         `db:"doctor_id" json:"doctor_id" validate:"required"`
	AppointmentID  string         `db:"appointment_id" json:"appointment_id"`
	RecordType     string         `db:"record_type" json:"record_type" validate:"required,oneof=consultation diagnosis prescription lab_result imaging"`
	Title          string         `db:"title" json:"title" validate:"required"`
	Description    string         `db:"description" json:"description"`
	Diagnosis      []Diagnosis    `db:"diagnosis" json:"diagnosis" validate:"omitempty,dive"`
	Prescriptions  []Prescription `db:"prescriptions" json:"prescriptions" validate:"omitempty,dive"`
	LabResults     []LabResult    `db:"lab_results" json:"lab_results" validate:"omitempty,dive"`
	VitalSigns     *VitalSigns    `db:"vital_signs" json:"vital_signs,omitempty"`
	Attachments    []Attachment   `db:"attachments" json:"attachments" validate:"omitempty,dive"`
	IsConfidential bool           `db:"is_confidential" json:"is_confidential"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
	CreatedBy      string         `db:"created_by" json:"created_by"`
	LastModifiedBy string         `db:"last_modified_by" json:"last_modified_by"`
}

// Diagnosis is one entry in a record's diagnosis sequence.
type Diagnosis struct {
	Code          string    `json:"code" validate:"required"`
	Description   string    `json:"description" validate:"required"`
	Severity      string    `json:"severity" validate:"oneof=mild moderate severe critical"`
	Status        string    `json:"status" validate:"oneof=active resolved chronic"`
	DateDiagnosed time.Time `json:"date_diagnosed"`
}

// Prescription is one entry in a record's prescriptions sequence.
type Prescription struct {
	MedicationName string    `json:"medication_name" validate:"required"`
	Dosage         string    `json:"dosage" validate:"required"`
	Frequency      string    `json:"frequency" validate:"required"`
	Duration       string    `json:"duration"`
	Instructions   string    `json:"instructions"`
	PrescribedDate time.Time `json:"prescribed_date"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
}

// LabResult is one entry in a record's lab results sequence.
type LabResult struct {
	TestName       string    `json:"test_name" validate:"required"`
	TestCode       string    `json:"test_code"`
	Result         string    `json:"result" validate:"required"`
	Unit           string    `json:"unit"`
	ReferenceRange string    `json:"reference_range"`
	Status         string    `json:"status" validate:"oneof=normal abnormal critical"`
	TestDate       time.Time `json:"test_date"`
	LabName        string    `json:"lab_name"`
}

// VitalSigns is an optional one-per-record measurement set.
type VitalSigns struct {
	BloodPressureSystolic  int       `json:"blood_pressure_systolic"`
	BloodPressureDiastolic int       `json:"blood_pressure_diastolic"`
	HeartRate              int       `json:"heart_rate"`
	Temperature            float64   `json:"temperature"`
	RespiratoryRate        int       `json:"respiratory_rate"`
	OxygenSaturation       int       `json:"oxygen_saturation"`
	Weight                 float64   `json:"weight"`
	Height                 float64   `json:"height"`
	BMI                    float64   `json:"bmi"`
	MeasuredAt             time.Time `json:"measured_at"`
}

// Attachment is one entry in a record's attachments sequence.
type Attachment struct {
	FileName    string    `json:"file_name" validate:"required"`
	FileType    string    `json:"file_type" validate:"required"`
	FileSize    int64     `json:"file_size"`
	StoragePath string    `json:"storage_path"`
	UploadedAt  time.Time `json:"uploaded_at"`
	Description string    `json:"description"`
}

// PatientSummary is the on-demand aggregate over all records of one patient.
type PatientSummary struct {
	PatientID          string    `json:"patient_id"`
	TotalRecords       int       `json:"total_records"`
	RecordTypes        []string  `json:"record_types"`
	LatestRecord       time.Time `json:"latest_record"`
	TotalDiagnoses     int       `json:"total_diagnoses"`
	TotalPrescriptions int       `json:"total_prescriptions"`
	TotalLabResults    int       `json:"total_lab_results"`
}

// normalize replaces nil nested sequences with empty ones so a freshly
// created record serializes them as [] rather than null.
func (r *MedicalRecord) normalize() {
	if r.Diagnosis == nil {
		r.Diagnosis = []Diagnosis{}
	}
	if r.Prescriptions == nil {
		r.Prescriptions = []Prescription{}
	}
	if r.LabResults == nil {
		r.LabResults = []LabResult{}
	}
	if r.Attachments == nil {
		r.Attachments = []Attachment{}
	}
}
