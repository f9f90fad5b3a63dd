package store

import (
	"database/sql"
	"fmt"
	"strings"
)

// Rule says "remind DaysBefore days in advance, at Hour o'clock".
// DaysBefore is unique across all rules; two rules with the same offset
// would send the same reminder twice.
type Rule struct {
	ID         int64
	DaysBefore int
	Hour       int
}

func (r Rule) String() string {
	return fmt.Sprintf("remind %d days before at %02d:00", r.DaysBefore, r.Hour)
}

// CreateRule inserts a new rule, or returns ErrDuplicateRule if a rule
// with the same days_before offset already exists.
func (db *DB) CreateRule(daysBefore, hour int) (*Rule, error) {
	var existing int64
	err := db.QueryRow(
		`SELECT id FROM rules WHERE days_before = ?`, daysBefore,
	).Scan(&existing)
	if err == nil {
		return nil, fmt.Errorf("days_before=%d: %w", daysBefore, ErrDuplicateRule)
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("check duplicate rule: %w", err)
	}

	result, err := db.Exec(
		`INSERT INTO rules (days_before, hour) VALUES (?, ?)`,
		daysBefore, hour,
	)
	if err != nil {
		// UNIQUE constraint is the backstop for concurrent creates.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, fmt.Errorf("days_before=%d: %w", daysBefore, ErrDuplicateRule)
		}
		return nil, fmt.Errorf("create rule: %w", err)
	}

	id, _ := result.LastInsertId()
	return &Rule{ID: id, DaysBefore: daysBefore, Hour: hour}, nil
}

// GetRule returns a rule by id, or ErrRuleNotFound.
func (db *DB) GetRule(id int64) (*Rule, error) {
	var r Rule
	err := db.QueryRow(
		`SELECT id, days_before, hour FROM rules WHERE id = ?`, id,
	).Scan(&r.ID, &r.DaysBefore, &r.Hour)
	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get rule %d: %w", id, err)
	}
	return &r, nil
}

// ListRules returns all rules ordered by days_before.
func (db *DB) ListRules() ([]Rule, error) {
	return db.queryRules(`SELECT id, days_before, hour FROM rules ORDER BY days_before`)
}

// ListRulesByHour returns all rules configured to fire at the given hour.
func (db *DB) ListRulesByHour(hour int) ([]Rule, error) {
	return db.queryRules(
		`SELECT id, days_before, hour FROM rules WHERE hour = ? ORDER BY days_before`,
		hour,
	)
}

// UpdateRule applies a partial update: nil fields are left untouched.
// Returns ErrRuleNotFound for an unknown id, and ErrDuplicateRule when
// the new days_before collides with a different rule; in that case the
// target rule is left unmodified.
func (db *DB) UpdateRule(id int64, daysBefore, hour *int) (*Rule, error) {
	r, err := db.GetRule(id)
	if err != nil {
		return nil, err
	}

	if daysBefore != nil {
		var existing int64
		err := db.QueryRow(
			`SELECT id FROM rules WHERE days_before = ? AND id != ?`, *daysBefore, id,
		).Scan(&existing)
		if err == nil {
			return nil, fmt.Errorf("days_before=%d: %w", *daysBefore, ErrDuplicateRule)
		}
		if err != sql.ErrNoRows {
			return nil, fmt.Errorf("check duplicate rule: %w", err)
		}
		r.DaysBefore = *daysBefore
	}
	if hour != nil {
		r.Hour = *hour
	}

	_, err = db.Exec(
		`UPDATE rules SET days_before = ?, hour = ? WHERE id = ?`,
		r.DaysBefore, r.Hour, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update rule %d: %w", id, err)
	}
	return r, nil
}

// DeleteRule removes a rule, or returns ErrRuleNotFound.
func (db *DB) DeleteRule(id int64) error {
	result, err := db.Exec(`DELETE FROM rules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete rule %d: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrRuleNotFound
	}
	return nil
}

func (db *DB) queryRules(query string, args ...any) ([]Rule, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query rules: %w", err)
	}
	defer rows.Close()

	var rules []Rule
	for rows.Next() {
		var r Rule
		if err := rows.Scan(&r.ID, &r.DaysBefore, &r.Hour); err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}
