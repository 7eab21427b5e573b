package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestResolveUserUpsertsAndStoresUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	now := time.Now()
	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("idp_abc", "Greta", "greta@example.com", model.RoleGuest).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectQuery(`FROM users WHERE id = \?`).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "external_id", "name", "email", "role", "created_at", "updated_at",
		}).AddRow(5, "idp_abc", "Greta", "greta@example.com", model.RoleGuest, now, now))

	c, rec := newContext()
	c.Set(ctxExternalID, "idp_abc")
	c.Set(ctxClaimName, "Greta")
	c.Set(ctxClaimEmail, "greta@example.com")

	h := ResolveUser(repository.NewUserRepo(db))(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body)
	}
	u := UserFrom(c)
	if u == nil || u.ID != 5 || u.ExternalID != "idp_abc" {
		t.Errorf("resolved user = %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestResolveUserWithoutExternalID(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	c, rec := newContext()
	h := ResolveUser(repository.NewUserRepo(db))(func(c echo.Context) error {
		t.Error("next handler must not run")
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name   string
		user   *model.User
		status int
	}{
		{"owner allowed", &model.User{Role: model.RoleHotelOwner}, http.StatusOK},
		{"plain user rejected", &model.User{Role: model.RoleUser}, http.StatusForbidden},
		{"guest rejected", &model.User{Role: model.RoleGuest}, http.StatusForbidden},
		{"no user rejected", nil, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newContext()
			if tc.user != nil {
				c.Set(ctxUser, tc.user)
			}
			h := RequireRole(model.RoleHotelOwner)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})
			if err := h(c); err != nil {
				t.Fatalf("middleware: %v", err)
			}
			if rec.Code != tc.status {
				t.Errorf("status = %d, want %d", rec.Code, tc.status)
			}
		})
	}
}
