package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestConstraintViolations(t *testing.T) {
	unique := &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "appointments_slot_key"}
	fk := &pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: "animals_owner_id_fkey"}

	tests := []struct {
		name       string
		err        error
		wantUnique bool
		wantFK     bool
	}{
		{name: "unique", err: unique, wantUnique: true},
		{name: "wrapped unique", err: fmt.Errorf("insert: %w", unique), wantUnique: true},
		{name: "foreign key", err: fk, wantFK: true},
		{name: "other constraint", err: &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "other"}},
		{name: "plain error", err: errors.New("boom")},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantUnique, isUniqueViolation(tt.err, "appointments_slot_key"))
			assert.Equal(t, tt.wantFK, isForeignKeyViolation(tt.err, "animals_owner_id_fkey"))
		})
	}
}

func TestSchemaDeclaresConstraints(t *testing.T) {
	for _, name := range []string{
		"animals_owner_id_fkey",
		"veterinarians_license_number_key",
		"appointments_animal_id_fkey",
		"appointments_veterinarian_id_fkey",
		"appointments_slot_key",
		"ON DELETE CASCADE",
	} {
		assert.Contains(t, schema, name)
	}
}
