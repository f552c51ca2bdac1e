package mock

import (
	"context"

	dbschema "github.com/opst/mealplanner/pkg/domain/schema/db"
)

// SchemaInterface is a fake schema.
//
// Upgrade sets Current to Newest, unless UpgradeErr is set.
type SchemaInterface struct {
	Current    int
	Newest     int
	UpgradeErr error

	Calls struct {
		Upgrade uint
	}
}

var _ dbschema.SchemaInterface = &SchemaInterface{}

func (s *SchemaInterface) Upgrade(context.Context) error {
	s.Calls.Upgrade += 1
	if s.UpgradeErr != nil {
		return s.UpgradeErr
	}
	s.Current = s.Newest
	return nil
}

func (s *SchemaInterface) Version(context.Context) (int, error) {
	return s.Current, nil
}

func (s *SchemaInterface) Latest() (int, error) {
	return s.Newest, nil
}

func (s *SchemaInterface) Context(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithCancel(ctx)
}
