package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrCardNotFound is returned when a query or delete targets a card
	// (identified by id and owner) that does not exist in the database.
	// A card owned by a different user produces the same error, so callers
	// can never learn whether a foreign record exists.
	ErrCardNotFound = errors.New("card was not found")

	// ErrDuplicateCard is returned when an insert violates the uniqueness of
	// (owner, card number) — the user already stores this card.
	ErrDuplicateCard = errors.New("card already exists for this user")

	// ErrCardNotSaved is returned when an INSERT completes without error but
	// the number of affected rows is zero, indicating that no data was
	// actually persisted.
	ErrCardNotSaved = errors.New("card was not saved")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan card row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan card rows")
)
