package records

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows a listing to one patient and/or one record type.
// Empty fields match everything.
type ListFilter struct {
	PatientID  string
	RecordType string
}

type Repository interface {
	Create(ctx context.Context, rec *MedicalRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*MedicalRecord, error)
	Update(ctx context.Context, rec *MedicalRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*MedicalRecord, int, error)
	PatientSummary(ctx context.Context, patientID string) (*PatientSummary, error)
}
