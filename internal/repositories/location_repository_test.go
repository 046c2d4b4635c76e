package repositories

import (
	"testing"

	"backend/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestLocationCreateDefaultsTimezone(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO locations").
		WithArgs("PDB", "Padang Bai", "Karangasem", "Indonesia", "UTC", true).
		WillReturnResult(sqlmock.NewResult(4, 1))

	repo := LocationRepository{DB: db}
	id, err := repo.Create(models.Location{
		Code:     "pdb",
		Name:     "Padang Bai",
		City:     "Karangasem",
		Country:  "Indonesia",
		Timezone: "  ",
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("expected insert to succeed, got %v", err)
	}
	if id != 4 {
		t.Fatalf("expected id 4, got %d", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func TestLocationCreateKeepsExplicitTimezone(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO locations").
		WithArgs("GLM", "Gili Meno", "Lombok Utara", "Indonesia", "Asia/Makassar", true).
		WillReturnResult(sqlmock.NewResult(5, 1))

	repo := LocationRepository{DB: db}
	if _, err := repo.Create(models.Location{
		Code:     "GLM",
		Name:     "Gili Meno",
		City:     "Lombok Utara",
		Country:  "Indonesia",
		Timezone: "Asia/Makassar",
		IsActive: true,
	}); err != nil {
		t.Fatalf("expected insert to succeed, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}
