package repositories

import (
	"testing"

	"backend/internal/domain"
	"backend/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestUserCreateDuplicateEmailIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	repo := UserRepository{DB: db}
	_, err = repo.Create(models.User{
		Email:        "made@example.com",
		PasswordHash: "x",
		FirstName:    "Made",
		LastName:     "Putra",
		Role:         models.RoleCustomer,
	})
	if !domain.IsConflict(err) {
		t.Fatalf("duplicate email must surface as conflict, got %v", err)
	}
}

func TestUserCreateLowercasesEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WithArgs("made@example.com", "x", "Made", "Putra", nil, "customer", "en", true).
		WillReturnResult(sqlmock.NewResult(7, 1))

	repo := UserRepository{DB: db}
	id, err := repo.Create(models.User{
		Email:             "  MADE@Example.COM ",
		PasswordHash:      "x",
		FirstName:         "Made",
		LastName:          "Putra",
		Role:              models.RoleCustomer,
		PreferredLanguage: "en",
		IsActive:          true,
	})
	if err != nil {
		t.Fatalf("expected insert to succeed, got %v", err)
	}
	if id != 7 {
		t.Fatalf("expected id 7, got %d", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}
