package postgres

import "database/sql"

// requireRow converts an update that touched no rows into sql.ErrNoRows so
// services can map it to a not-found error.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
