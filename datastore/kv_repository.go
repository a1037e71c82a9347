package datastore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// KeyValueRepository stores string values under string keys
type KeyValueRepository interface {
	Get(key string) (string, error)
	Set(key string, value string) error
	Delete(key string) error
	Keys(prefix string) ([]string, error)
}

type NoRowsError struct {
	NoRows bool
	Err    error
}

func (nr NoRowsError) Error() string {
	return fmt.Sprintf("%v: no rows returned for scan: %v", nr.NoRows, nr.Err)
}

func (nr NoRowsError) Unwrap() error { return nr.Err }

// IsNotFound reports whether err means the requested key does not exist
func IsNotFound(err error) bool {
	var nr NoRowsError
	return errors.As(err, &nr) && nr.NoRows
}

type KeyValueDatabase struct {
	database *sql.DB
	dialect  Dialect
}

func NewKeyValueDatabase(db *sql.DB, dialect Dialect) (KeyValueDatabase, error) {
	if db == nil {
		return KeyValueDatabase{}, errors.New("nil database")
	}
	return KeyValueDatabase{database: db, dialect: dialect}, nil
}

// Get returns the value for key or a NoRowsError
func (kvdb KeyValueDatabase) Get(key string) (string, error) {
	db := kvdb.database

	sqlStatement := kvdb.dialect.Rebind(`SELECT store_value FROM kv_store WHERE store_key = ?`)

	var value string
	err := db.QueryRow(sqlStatement, key).Scan(&value)

	switch err {
	case sql.ErrNoRows:
		return "", NoRowsError{true, err}
	case nil:
		return value, nil
	default:
		return "", err
	}
}

// Set inserts or replaces the value for key
func (kvdb KeyValueDatabase) Set(key string, value string) error {
	db := kvdb.database

	sqlStatement := kvdb.dialect.Rebind(`
		INSERT INTO kv_store (store_key, store_value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (store_key) DO UPDATE
		SET store_value = excluded.store_value, updated_at = excluded.updated_at`)

	if _, err := db.Exec(sqlStatement, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to set %s: %v", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (kvdb KeyValueDatabase) Delete(key string) error {
	db := kvdb.database

	sqlStatement := kvdb.dialect.Rebind(`DELETE FROM kv_store WHERE store_key = ?`)
	_, err := db.Exec(sqlStatement, key)

	return err
}

// Keys lists keys starting with prefix in ascending order
func (kvdb KeyValueDatabase) Keys(prefix string) ([]string, error) {
	db := kvdb.database

	sqlStatement := kvdb.dialect.Rebind(`
		SELECT store_key FROM kv_store
		WHERE substr(store_key, 1, ?) = ?
		ORDER BY store_key`)

	rows, err := db.Query(sqlStatement, len(prefix), prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}
