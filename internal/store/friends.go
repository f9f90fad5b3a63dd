package store

import (
	"database/sql"
	"fmt"
	"time"
)

// birthdayLayout is the ISO storage format for birthdays. Lexicographic
// order matches chronological order, and strftime can pull month/day out.
const birthdayLayout = "2006-01-02"

// Friend is a tracked contact. Only the month and day of Birthday
// participate in reminder matching; the year is kept but never compared.
type Friend struct {
	ID       int64
	FullName string
	Birthday time.Time
}

// CreateFriend inserts a new friend and returns it with its assigned id.
func (db *DB) CreateFriend(fullName string, birthday time.Time) (*Friend, error) {
	result, err := db.Exec(
		`INSERT INTO friends (full_name, birthday) VALUES (?, ?)`,
		fullName, birthday.Format(birthdayLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("create friend: %w", err)
	}

	id, _ := result.LastInsertId()
	return &Friend{ID: id, FullName: fullName, Birthday: birthday}, nil
}

// GetFriend returns a friend by id, or ErrFriendNotFound.
func (db *DB) GetFriend(id int64) (*Friend, error) {
	f, err := scanFriend(db.QueryRow(
		`SELECT id, full_name, birthday FROM friends WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, ErrFriendNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get friend %d: %w", id, err)
	}
	return f, nil
}

// ListFriends returns friends ordered by id, with offset/limit paging.
func (db *DB) ListFriends(offset, limit int) ([]Friend, error) {
	rows, err := db.Query(
		`SELECT id, full_name, birthday FROM friends ORDER BY id LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	defer rows.Close()

	var friends []Friend
	for rows.Next() {
		f, err := scanFriend(rows)
		if err != nil {
			return nil, fmt.Errorf("scan friend: %w", err)
		}
		friends = append(friends, *f)
	}
	return friends, rows.Err()
}

// FindFriendsByMonthDay returns all friends whose birthday falls on the
// given month and day, regardless of birth year. An empty result is not
// an error.
func (db *DB) FindFriendsByMonthDay(month, day int) ([]Friend, error) {
	rows, err := db.Query(`
		SELECT id, full_name, birthday FROM friends
		WHERE CAST(strftime('%m', birthday) AS INTEGER) = ?
		  AND CAST(strftime('%d', birthday) AS INTEGER) = ?
		ORDER BY id
	`, month, day)
	if err != nil {
		return nil, fmt.Errorf("find friends by month/day: %w", err)
	}
	defer rows.Close()

	var friends []Friend
	for rows.Next() {
		f, err := scanFriend(rows)
		if err != nil {
			return nil, fmt.Errorf("scan friend: %w", err)
		}
		friends = append(friends, *f)
	}
	return friends, rows.Err()
}

// UpdateFriend applies a partial update: nil fields are left untouched.
// Returns the updated friend, or ErrFriendNotFound.
func (db *DB) UpdateFriend(id int64, fullName *string, birthday *time.Time) (*Friend, error) {
	f, err := db.GetFriend(id)
	if err != nil {
		return nil, err
	}

	if fullName != nil {
		f.FullName = *fullName
	}
	if birthday != nil {
		f.Birthday = *birthday
	}

	_, err = db.Exec(
		`UPDATE friends SET full_name = ?, birthday = ? WHERE id = ?`,
		f.FullName, f.Birthday.Format(birthdayLayout), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update friend %d: %w", id, err)
	}
	return f, nil
}

// DeleteFriend removes a friend, or returns ErrFriendNotFound.
func (db *DB) DeleteFriend(id int64) error {
	result, err := db.Exec(`DELETE FROM friends WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete friend %d: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrFriendNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFriend(row rowScanner) (*Friend, error) {
	var f Friend
	var birthday string
	if err := row.Scan(&f.ID, &f.FullName, &birthday); err != nil {
		return nil, err
	}
	t, err := time.Parse(birthdayLayout, birthday)
	if err != nil {
		return nil, fmt.Errorf("parse birthday %q: %w", birthday, err)
	}
	f.Birthday = t
	return &f, nil
}
