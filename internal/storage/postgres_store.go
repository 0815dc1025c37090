package storage

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/lib/pq"

	"github.com/example/agent-assist/internal/models"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	// quick ping
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (p *PostgresStore) SaveOrder(o *models.Order) error {
	req, err := json.Marshal(o.Request)
	if err != nil {
		return err
	}
	qt, err := json.Marshal(o.Quote)
	if err != nil {
		return err
	}
	_, err = p.db.Exec(`INSERT INTO orders(id, service_type, scheduled_date, customer_name, customer_phone, customer_email, request, quote, total, status, created_at, updated_at) VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		o.ID, string(o.Request.ServiceType), o.Request.ScheduledDate, o.Contact.Name, o.Contact.Phone, o.Contact.Email, req, qt, o.Quote.Total, o.Status, o.CreatedAt, o.UpdatedAt)
	return err
}

func (p *PostgresStore) UpdateOrder(o *models.Order) error {
	_, err := p.db.Exec(`UPDATE orders SET status=$1, updated_at=$2 WHERE id=$3`, o.Status, time.Now(), o.ID)
	return err
}
