package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"pet-care-scheduler/internal/domain/careevents"
)

// CareEventsRepo persiste eventos de cuidado en la tabla pet_care_events.
// La tabla lleva un índice único sobre (pet_id, schedule_rule_id, due_date):
// dos corridas concurrentes del motor sobre la misma mascota chocan ahí y
// la segunda falla como PersistenceError en vez de duplicar.
type CareEventsRepo struct {
	db *sql.DB
}

func NewCareEventsRepo(db *sql.DB) *CareEventsRepo {
	return &CareEventsRepo{db: db}
}

// BulkInsert inserta el lote dentro de una transacción: todo o nada.
func (r *CareEventsRepo) BulkInsert(ctx context.Context, evs []careevents.CareEvent) error {
	if len(evs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, e := range evs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO pet_care_events (
				id, pet_id, owner_user_id,
				title, description, due_date,
				type, priority,
				schedule_rule_id, status,
				created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		`,
			e.ID,
			e.PetID,
			e.OwnerUserID,
			e.Title,
			e.Description,
			e.DueDate,
			string(e.Type),
			string(e.Priority),
			e.ScheduleRuleID,
			string(e.Status),
			e.CreatedAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *CareEventsRepo) GetByID(ctx context.Context, id string) (careevents.CareEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return careevents.CareEvent{}, careevents.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, pet_id, owner_user_id,
			title, description, due_date,
			type, priority,
			schedule_rule_id, status,
			created_at
		FROM pet_care_events
		WHERE id = $1
	`, id)

	e, err := scanCareEvent(row)
	if err == sql.ErrNoRows {
		return careevents.CareEvent{}, careevents.ErrNotFound
	}
	return e, err
}

func (r *CareEventsRepo) ListWithSource(ctx context.Context, petID string) ([]careevents.CareEvent, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, pet_id, owner_user_id,
			title, description, due_date,
			type, priority,
			schedule_rule_id, status,
			created_at
		FROM pet_care_events
		WHERE pet_id = $1 AND schedule_rule_id <> ''
		ORDER BY due_date ASC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCareEvents(rows)
}

func (r *CareEventsRepo) ListByPet(ctx context.Context, petID string, filter careevents.ListFilter) ([]careevents.CareEvent, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}

	// Base query
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			id, pet_id, owner_user_id,
			title, description, due_date,
			type, priority,
			schedule_rule_id, status,
			created_at
		FROM pet_care_events
		WHERE pet_id = $1
	`)

	args := []any{petID}
	argN := 2

	// types filter
	if len(filter.Types) > 0 {
		placeholders := make([]string, 0, len(filter.Types))
		for _, t := range filter.Types {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(t))
			argN++
		}
		sb.WriteString(" AND type IN (" + strings.Join(placeholders, ",") + ")")
	}

	if filter.Status != "" {
		sb.WriteString(fmt.Sprintf(" AND status = $%d", argN))
		args = append(args, string(filter.Status))
		argN++
	}

	// from/to sobre due_date
	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND due_date >= $%d", argN))
		args = append(args, careevents.DateOnly(*filter.From))
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND due_date <= $%d", argN))
		args = append(args, careevents.DateOnly(*filter.To))
		argN++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	sb.WriteString(" ORDER BY due_date ASC")
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCareEvents(rows)
}

func (r *CareEventsRepo) Complete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return careevents.ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE pet_care_events
		SET status = 'completed'
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return careevents.ErrNotFound
	}
	return nil
}

func collectCareEvents(rows *sql.Rows) ([]careevents.CareEvent, error) {
	out := make([]careevents.CareEvent, 0)
	for rows.Next() {
		e, err := scanCareEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanCareEvent(row rowScanner) (careevents.CareEvent, error) {
	var e careevents.CareEvent
	var typ, priority, status string

	if err := row.Scan(
		&e.ID,
		&e.PetID,
		&e.OwnerUserID,
		&e.Title,
		&e.Description,
		&e.DueDate,
		&typ,
		&priority,
		&e.ScheduleRuleID,
		&status,
		&e.CreatedAt,
	); err != nil {
		return careevents.CareEvent{}, err
	}

	e.Type = careevents.EventType(typ)
	e.Priority = careevents.Priority(priority)
	e.Status = careevents.Status(status)

	// due_date es columna DATE; normalizamos a medianoche UTC.
	e.DueDate = careevents.DateOnly(e.DueDate)

	return e, nil
}
