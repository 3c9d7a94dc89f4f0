package db

import (
	"errors"
	"testing"
)

func TestIsUniqueViolation(t *testing.T) {
	pg := errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`)
	lite := errors.New("UNIQUE constraint failed: users.email")

	if !IsUniqueViolation(pg, "") {
		t.Fatal("expected postgres duplicate key to match")
	}
	if !IsUniqueViolation(lite, "") {
		t.Fatal("expected sqlite unique violation to match")
	}
	if !IsUniqueViolation(pg, "idx_users_email") {
		t.Fatal("expected named constraint to match")
	}
	if IsUniqueViolation(pg, "idx_invoices_number") {
		t.Fatal("did not expect unrelated constraint to match")
	}
	if IsUniqueViolation(nil, "") {
		t.Fatal("nil error should not match")
	}
	if IsUniqueViolation(errors.New("connection refused"), "") {
		t.Fatal("unrelated error should not match")
	}
}
