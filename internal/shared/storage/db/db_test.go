package db

import (
	"context"
	"database/sql"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func TestConnectAppliesWorkerPoolOptions(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	mock.ExpectPing()

	orig := openDB
	openDB = func(driver, dsn string) (*sql.DB, error) { return mockDB, nil }
	defer func() { openDB = orig }()

	opts := DefaultWorkerOptions()
	conn, err := Connect(context.Background(), "postgres://worker", opts)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer conn.Close()

	if got := conn.Stats().MaxOpenConnections; got != opts.MaxOpenConns {
		t.Fatalf("MaxOpenConnections = %d, want %d", got, opts.MaxOpenConns)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConnectRejectsEmptyURL(t *testing.T) {
	if _, err := Connect(context.Background(), "   ", DefaultServerOptions()); err == nil {
		t.Fatal("expected error for empty database url")
	}
}

func TestWorkerOptionsAreSmallerThanServerOptions(t *testing.T) {
	worker := DefaultWorkerOptions()
	server := DefaultServerOptions()
	if worker.MaxOpenConns >= server.MaxOpenConns {
		t.Fatalf("worker MaxOpenConns = %d, want below server %d", worker.MaxOpenConns, server.MaxOpenConns)
	}
	if worker.MaxIdleConns >= server.MaxIdleConns {
		t.Fatalf("worker MaxIdleConns = %d, want below server %d", worker.MaxIdleConns, server.MaxIdleConns)
	}
}
