package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgres_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	s := &Postgres{db: db}
	defer s.Close()

	mock.ExpectPing()

	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgres_PingFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	s := &Postgres{db: db}
	defer s.Close()

	wantErr := errors.New("connection refused")
	mock.ExpectPing().WillReturnError(wantErr)

	if err := s.Ping(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("Ping error = %v, want %v", err, wantErr)
	}
}

func TestPostgres_Close(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	s := &Postgres{db: db}

	mock.ExpectClose()

	if err := s.Close(); err != nil {
		t.Errorf("Close error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
