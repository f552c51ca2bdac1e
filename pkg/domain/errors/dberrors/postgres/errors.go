package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	domerr "github.com/opst/mealplanner/pkg/domain/errors"
)

// requested data is missing.
type Missing struct {
	Table    string
	Identity string
}

var _ error = Missing{}

func (m Missing) Error() string {
	return fmt.Sprintf("%s is not found in %s", m.Identity, m.Table)
}

func (m Missing) Unwrap() error {
	return domerr.ErrMissing
}

// a row violates a unique constraint.
type Duplicated struct {
	Constraint string
	cause      error
}

var _ error = Duplicated{}

func (d Duplicated) Error() string {
	return fmt.Sprintf("duplicated on %s: %v", d.Constraint, d.cause)
}

func (d Duplicated) Unwrap() []error {
	return []error{domerr.ErrConflict, d.cause}
}

// IsUniqueViolation tells err is caused by unique constraint violation.
func IsUniqueViolation(err error) bool {
	pgerr := new(pgconn.PgError)
	return errors.As(err, &pgerr) && pgerr.Code == pgerrcode.UniqueViolation
}

// IsForeignKeyViolation tells err is caused by foreign key violation.
func IsForeignKeyViolation(err error) bool {
	pgerr := new(pgconn.PgError)
	return errors.As(err, &pgerr) && pgerr.Code == pgerrcode.ForeignKeyViolation
}

// Translate converts well-known postgres errors into domain errors.
//
// Unique violations become Duplicated (ErrConflict), and foreign key violations are
// reported as ErrMissing since they mean a referenced row has gone.
// Other errors are returned as they are.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	pgerr := new(pgconn.PgError)
	if !errors.As(err, &pgerr) {
		return err
	}
	switch pgerr.Code {
	case pgerrcode.UniqueViolation:
		return Duplicated{Constraint: pgerr.ConstraintName, cause: err}
	case pgerrcode.ForeignKeyViolation:
		return fmt.Errorf("%w: %s", domerr.ErrMissing, pgerr.Detail)
	case pgerrcode.CheckViolation:
		return fmt.Errorf("%w: %s", domerr.ErrInvalidParam, pgerr.ConstraintName)
	}
	return err
}
