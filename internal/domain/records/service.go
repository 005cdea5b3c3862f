package records

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Per-operation deadlines. Listing and summaries scan more data than a
// single-document lookup, so they get the longer budget.
const (
	lookupTimeout = 10 * time.Second
	listTimeout   = 30 * time.Second
)

type Service struct {
	repo     Repository
	validate *validator.Validate
}

func NewService(repo Repository) *Service {
	v := validator.New()
	// Report violations under the wire names clients actually send.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &Service{repo: repo, validate: v}
}

func (s *Service) validateRecord(rec *MedicalRecord) error {
	err := s.validate.Struct(rec)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return &ValidationError{Fields: fields}
}

func (s *Service) CreateRecord(ctx context.Context, rec *MedicalRecord) error {
	if err := s.validateRecord(rec); err != nil {
		return err
	}
	rec.normalize()
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()
	return s.repo.Create(ctx, rec)
}

func (s *Service) GetRecord(ctx context.Context, id uuid.UUID) (*MedicalRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()
	return s.repo.GetByID(ctx, id)
}

// UpdateRecord replaces the stored document with rec, keeping the original
// identity and creation audit fields. The updated document is re-read from
// the store so the caller sees exactly what was persisted.
func (s *Service) UpdateRecord(ctx context.Context, id uuid.UUID, rec *MedicalRecord) (*MedicalRecord, error) {
	if err := s.validateRecord(rec); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rec.ID = id
	rec.CreatedAt = existing.CreatedAt
	rec.CreatedBy = existing.CreatedBy
	rec.UpdatedAt = time.Now().UTC()
	rec.normalize()

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListRecords(ctx context.Context, filter ListFilter, limit, offset int) ([]*MedicalRecord, int, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()
	return s.repo.List(ctx, filter, limit, offset)
}

// GetPatientSummary aggregates across all of a patient's records. A patient
// with no records at all is reported as not found.
func (s *Service) GetPatientSummary(ctx context.Context, patientID string) (*PatientSummary, error) {
	if patientID == "" {
		return nil, &ValidationError{Fields: []string{"patient_id (required)"}}
	}

	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	sum, err := s.repo.PatientSummary(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if sum.TotalRecords == 0 {
		return nil, ErrNotFound
	}
	return sum, nil
}
