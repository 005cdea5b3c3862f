package records

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const recCols = `id, patient_id, doctor_id, appointment_id, record_type, title, description,
	diagnosis, prescriptions, lab_results, vital_signs, attachments,
	is_confidential, created_at, updated_at, created_by, last_modified_by`

func (r *repoPG) Create(ctx context.Context, rec *MedicalRecord) error {
	rec.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO medical_records (
			id, patient_id, doctor_id, appointment_id, record_type, title, description,
			diagnosis, prescriptions, lab_results, vital_signs, attachments,
			is_confidential, created_at, updated_at, created_by, last_modified_by
		) VALUES (
			$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17
		)`,
		rec.ID, rec.PatientID, rec.DoctorID, rec.AppointmentID, rec.RecordType, rec.Title, rec.Description,
		rec.Diagnosis, rec.Prescriptions, rec.LabResults, rec.VitalSigns, rec.Attachments,
		rec.IsConfidential, rec.CreatedAt, rec.UpdatedAt, rec.CreatedBy, rec.LastModifiedBy,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*MedicalRecord, error) {
	rec, err := scanRec(r.pool.QueryRow(ctx, `SELECT `+recCols+` FROM medical_records WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

func (r *repoPG) Update(ctx context.Context, rec *MedicalRecord) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE medical_records SET
			patient_id=$2, doctor_id=$3, appointment_id=$4, record_type=$5, title=$6, description=$7,
			diagnosis=$8, prescriptions=$9, lab_results=$10, vital_signs=$11, attachments=$12,
			is_confidential=$13, updated_at=$14, last_modified_by=$15
		WHERE id = $1`,
		rec.ID, rec.PatientID, rec.DoctorID, rec.AppointmentID, rec.RecordType, rec.Title, rec.Description,
		rec.Diagnosis, rec.Prescriptions, rec.LabResults, rec.VitalSigns, rec.Attachments,
		rec.IsConfidential, rec.UpdatedAt, rec.LastModifiedBy,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM medical_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*MedicalRecord, int, error) {
	where := ""
	args := []interface{}{}
	if filter.PatientID != "" {
		args = append(args, filter.PatientID)
		where = fmt.Sprintf(" WHERE patient_id = $%d", len(args))
	}
	if filter.RecordType != "" {
		args = append(args, filter.RecordType)
		if where == "" {
			where = fmt.Sprintf(" WHERE record_type = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND record_type = $%d", len(args))
		}
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM medical_records`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM medical_records%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
			recCols, where, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var recs []*MedicalRecord
	for rows.Next() {
		rec, err := scanRec(rows)
		if err != nil {
			return nil, 0, err
		}
		recs = append(recs, rec)
	}
	if recs == nil {
		recs = []*MedicalRecord{}
	}
	return recs, total, rows.Err()
}

func (r *repoPG) PatientSummary(ctx context.Context, patientID string) (*PatientSummary, error) {
	var (
		sum    = PatientSummary{PatientID: patientID}
		latest *time.Time
		types  []string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
			COALESCE(ARRAY_AGG(DISTINCT record_type), '{}'),
			MAX(created_at),
			COALESCE(SUM(jsonb_array_length(COALESCE(diagnosis, '[]'::jsonb))), 0),
			COALESCE(SUM(jsonb_array_length(COALESCE(prescriptions, '[]'::jsonb))), 0),
			COALESCE(SUM(jsonb_array_length(COALESCE(lab_results, '[]'::jsonb))), 0)
		FROM medical_records WHERE patient_id = $1`, patientID,
	).Scan(&sum.TotalRecords, &types, &latest,
		&sum.TotalDiagnoses, &sum.TotalPrescriptions, &sum.TotalLabResults)
	if err != nil {
		return nil, err
	}
	sum.RecordTypes = types
	if sum.RecordTypes == nil {
		sum.RecordTypes = []string{}
	}
	if latest != nil {
		sum.LatestRecord = *latest
	}
	return &sum, nil
}

func scanRec(row pgx.Row) (*MedicalRecord, error) {
	var rec MedicalRecord
	err := row.Scan(
		&rec.ID, &rec.PatientID, &rec.DoctorID, &rec.AppointmentID, &rec.RecordType, &rec.Title, &rec.Description,
		&rec.Diagnosis, &rec.Prescriptions, &rec.LabResults, &rec.VitalSigns, &rec.Attachments,
		&rec.IsConfidential, &rec.CreatedAt, &rec.UpdatedAt, &rec.CreatedBy, &rec.LastModifiedBy,
	)
	if err != nil {
		return nil, err
	}
	rec.normalize()
	return &rec, nil
}
