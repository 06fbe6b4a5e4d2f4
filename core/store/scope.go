package store

import (
	"record-sync/core/database"
)

// Scope resolves a connection name and table into a Store using the registry.
func Scope(reg *database.Registry, connection, table, keyColumn string) (Store, error) {
	db, err := reg.Get(connection)
	if err != nil {
		return nil, err
	}
	return NewGorm(db, table, keyColumn)
}

// RunOn executes fn against a store routed at the given connection and table.
// Every store call made inside fn (count, lookup, insert, update,
// transaction) resolves against that location rather than any default.
func RunOn(reg *database.Registry, connection, table, keyColumn string, fn func(Store) error) error {
	s, err := Scope(reg, connection, table, keyColumn)
	if err != nil {
		return err
	}
	return fn(s)
}
