package repository

import (
	"errors"
	"fmt"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
)

// constraintMessages maps schema constraint names to caller-facing messages.
var constraintMessages = map[string]string{
	"clients_email_key":                   "a client with this email already exists",
	"clients_id_number_key":               "a client with this ID number already exists",
	"rooms_number_key":                    "a room with this number already exists",
	"payments_reference_key":              "this transaction reference is already used",
	"stays_reservation_id_key":            "this reservation already has a stay",
	"reservation_services_unique_service": "this service is already attached to the reservation",
	"staff_users_username_key":            "this username is already taken",
}

// translate maps pgx errors onto the domain taxonomy.
func translate(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return &domain.Error{Kind: domain.KindNotFound, Message: entity + " not found", Err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateUniqueViolation:
			msg, ok := constraintMessages[pgErr.ConstraintName]
			if !ok {
				msg = fmt.Sprintf("%s violates a uniqueness constraint", entity)
			}
			return domain.Integrity(msg, err)
		case sqlStateForeignKeyViolation:
			return domain.Integrity(fmt.Sprintf("%s is still referenced by other records", entity), err)
		}
	}
	return err
}
