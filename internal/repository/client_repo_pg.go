package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/jackc/pgx/v5"
)

const clientColumns = `id, last_name, first_name, email, phone, address, city, country, id_document_type, id_number, birth_date, registered_at`

type PGClientRepository struct {
	db DBTX
}

func NewClientRepository(db DBTX) ClientRepository {
	return &PGClientRepository{db: db}
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var c domain.Client
	if err := row.Scan(&c.ID, &c.LastName, &c.FirstName, &c.Email, &c.Phone, &c.Address, &c.City, &c.Country, &c.IDDocumentType, &c.IDNumber, &c.BirthDate, &c.RegisteredAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PGClientRepository) Create(ctx context.Context, c *domain.Client) error {
	err := r.db.QueryRow(ctx, `INSERT INTO clients (last_name, first_name, email, phone, address, city, country, id_document_type, id_number, birth_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, registered_at`,
		c.LastName, c.FirstName, c.Email, c.Phone, c.Address, c.City, c.Country, c.IDDocumentType, c.IDNumber, c.BirthDate).
		Scan(&c.ID, &c.RegisteredAt)
	return translate(err, "client")
}

func (r *PGClientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	c, err := scanClient(r.db.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id=$1`, id))
	if err != nil {
		return nil, translate(err, "client")
	}
	return c, nil
}

func (r *PGClientRepository) Update(ctx context.Context, c *domain.Client) error {
	cmd, err := r.db.Exec(ctx, `UPDATE clients SET last_name=$1, first_name=$2, email=$3, phone=$4, address=$5, city=$6, country=$7,
		id_document_type=$8, id_number=$9, birth_date=$10 WHERE id=$11`,
		c.LastName, c.FirstName, c.Email, c.Phone, c.Address, c.City, c.Country, c.IDDocumentType, c.IDNumber, c.BirthDate, c.ID)
	if err != nil {
		return translate(err, "client")
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundf("client not found")
	}
	return nil
}

func (r *PGClientRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id=$1`, id)
	if err != nil {
		return translate(err, "client")
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundf("client not found")
	}
	return nil
}

func (r *PGClientRepository) Search(ctx context.Context, query string) ([]domain.Client, error) {
	rows, err := r.db.Query(ctx, `SELECT `+clientColumns+` FROM clients
		WHERE $1 = '' OR last_name ILIKE '%' || $1 || '%' OR first_name ILIKE '%' || $1 || '%'
			OR email ILIKE '%' || $1 || '%' OR phone ILIKE '%' || $1 || '%'
		ORDER BY registered_at DESC`, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]domain.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}

func (r *PGClientRepository) Exists(ctx context.Context, field ClientField, value string, excludeID int64) (bool, error) {
	switch field {
	case ClientFieldEmail, ClientFieldPhone, ClientFieldIDNumber:
	default:
		return false, fmt.Errorf("unknown client field %q", field)
	}
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM clients WHERE `+string(field)+`=$1 AND id<>$2)`, value, excludeID).Scan(&exists)
	return exists, err
}

var _ ClientRepository = (*PGClientRepository)(nil)
