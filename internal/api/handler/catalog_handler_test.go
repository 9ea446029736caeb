package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/catalogshop/catalog-api/internal/core/domain"
)

const bookID = "507f1f77bcf86cd799439011"

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

func TestCatalogHandler_GetByID_Found(t *testing.T) {
	e := newTestEcho()
	svc := &stubCatalogService[*domain.Book]{
		findByIDFn: func(ctx context.Context, id string) (*domain.Book, bool, error) {
			b := &domain.Book{Title: "Alpha"}
			b.ID = id
			return b, true, nil
		},
	}
	h := NewBookHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/books/"+bookID, nil)
	req.Host = "catalog.test"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(bookID)

	if err := h.GetByID(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got domain.Book
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.ID != bookID || got.Title != "Alpha" {
		t.Fatalf("unexpected body: %+v", got)
	}

	link := rec.Header().Get("Link")
	if !strings.Contains(link, `<http://catalog.test/books/`+bookID+`>; rel="self"`) ||
		!strings.Contains(link, `<http://catalog.test/books>; rel="list"`) {
		t.Fatalf("unexpected Link header: %q", link)
	}
}

func TestCatalogHandler_GetByID_NotFound(t *testing.T) {
	e := newTestEcho()
	h := NewBookHandler(&stubCatalogService[*domain.Book]{
		findByIDFn: func(ctx context.Context, id string) (*domain.Book, bool, error) {
			return nil, false, nil
		},
	})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/books/"+bookID, nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(bookID)

	if err := h.GetByID(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalogHandler_GetByID_InvalidID(t *testing.T) {
	e := newTestEcho()
	h := NewBookHandler(&stubCatalogService[*domain.Book]{
		findByIDFn: func(ctx context.Context, id string) (*domain.Book, bool, error) {
			return nil, false, domain.ValidateID(id)
		},
	})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/books/xyz", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("xyz")

	if err := h.GetByID(c); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestCatalogHandler_GetByQuery(t *testing.T) {
	e := newTestEcho()
	var seen map[string]string
	h := NewBookHandler(&stubCatalogService[*domain.Book]{
		findFn: func(ctx context.Context, query map[string]string) ([]*domain.Book, error) {
			seen = query
			a, b := &domain.Book{Title: "Alpha"}, &domain.Book{Title: "Beta"}
			a.ID, b.ID = "000000000000000000000001", "000000000000000000000002"
			return []*domain.Book{a, b}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/books?title=a&javascript=true", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GetByQuery(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if seen["title"] != "a" || seen["javascript"] != "true" {
		t.Fatalf("unexpected query passed: %v", seen)
	}

	var got []domain.Book
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 books, got %d", len(got))
	}
	link := rec.Header().Get("Link")
	if !strings.Contains(link, `000000000000000000000001>; rel="first"`) || !strings.Contains(link, `000000000000000000000002>; rel="last"`) {
		t.Fatalf("unexpected Link header: %q", link)
	}
}

func TestCatalogHandler_GetByQuery_EmptyIsNotFound(t *testing.T) {
	e := newTestEcho()
	h := NewBookHandler(&stubCatalogService[*domain.Book]{
		findFn: func(ctx context.Context, query map[string]string) ([]*domain.Book, error) {
			if query != nil {
				t.Fatalf("expected nil query, got %v", query)
			}
			return nil, nil
		},
	})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/books", nil), httptest.NewRecorder())

	if err := h.GetByQuery(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalogHandler_Post_Created(t *testing.T) {
	e := newTestEcho()
	h := NewBookHandler(&stubCatalogService[*domain.Book]{
		saveFn: func(ctx context.Context, b *domain.Book) (*domain.Book, error) {
			if b.Title != "Alpha" || len(b.Authors) != 1 || b.Keywords[0] != domain.TagJavaScript {
				t.Fatalf("unexpected entity: %+v", b)
			}
			b.ID = bookID
			return b, nil
		},
	})

	body := `{"title":"Alpha","publisher":"Foo","price":10,"rating":4,"keywords":["javascript"],"authors":[{"lastName":"Doe","firstName":"Jo"}]}`
	req := httptest.NewRequest(http.MethodPost, "/books", jsonBody(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Host = "catalog.test"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Post(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "http://catalog.test/books/"+bookID {
		t.Fatalf("unexpected Location: %q", loc)
	}
}

func TestCatalogHandler_Post_NotJSON(t *testing.T) {
	e := newTestEcho()
	h := NewBookHandler(&stubCatalogService[*domain.Book]{
		saveFn: func(ctx context.Context, b *domain.Book) (*domain.Book, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader("title=Alpha"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	c := e.NewContext(req, httptest.NewRecorder())

	if code := httpCode(t, h.Post(c)); code != http.StatusNotAcceptable {
		t.Fatalf("expected 406, got %d", code)
	}
}

func TestCatalogHandler_Post_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing title", `{"publisher":"Foo"}`, "title is required"},
		{"title start", `{"title":"!Alpha","publisher":"Foo"}`, "title must start with"},
		{"rating range", `{"title":"Alpha","publisher":"Foo","rating":7}`, "rating must be at most 5"},
		{"kind enum", `{"title":"Alpha","publisher":"Foo","kind":"SCROLL"}`, "kind must be one of"},
		{"email", `{"title":"Alpha","publisher":"Foo","email":"nope"}`, "email must be a valid email"},
		{"bad json", `{"title":`, "invalid payload"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho()
			h := NewBookHandler(&stubCatalogService[*domain.Book]{
				saveFn: func(ctx context.Context, b *domain.Book) (*domain.Book, error) {
					t.Fatalf("should not be called")
					return nil, nil
				},
			})

			req := httptest.NewRequest(http.MethodPost, "/books", jsonBody(tc.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			c := e.NewContext(req, httptest.NewRecorder())

			err := h.Post(c)
			if code := httpCode(t, err); code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", code)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in %q", tc.want, err.Error())
			}
		})
	}
}

func TestCatalogHandler_Post_UniqueKeyExists(t *testing.T) {
	e := newTestEcho()
	h := NewFilmHandler(&stubCatalogService[*domain.Film]{
		saveFn: func(ctx context.Context, f *domain.Film) (*domain.Film, error) {
			return nil, domain.ErrUniqueKeyExists
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/films", jsonBody(`{"title":"Alpha","medium":"DVD"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	if err := h.Post(c); !errors.Is(err, domain.ErrUniqueKeyExists) {
		t.Fatalf("expected ErrUniqueKeyExists, got %v", err)
	}
}

func TestCatalogHandler_Put(t *testing.T) {
	e := newTestEcho()
	h := NewCustomerHandler(&stubCatalogService[*domain.Customer]{
		updateFn: func(ctx context.Context, cu *domain.Customer) (*domain.Customer, error) {
			if cu.ID != bookID || cu.Name != "Doe" || cu.Address.ZipCode != "12345" {
				t.Fatalf("unexpected entity: %+v", cu)
			}
			return cu, nil
		},
	})

	body := `{"name":"Doe","firstName":"Jo","address":{"zipCode":"12345","city":"Springfield"}}`
	req := httptest.NewRequest(http.MethodPut, "/customers/"+bookID, jsonBody(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON+"; charset=utf-8")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(bookID)

	if err := h.Put(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestCatalogHandler_Put_InvalidID(t *testing.T) {
	e := newTestEcho()
	h := NewPublisherHandler(&stubCatalogService[*domain.Publisher]{
		updateFn: func(ctx context.Context, p *domain.Publisher) (*domain.Publisher, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPut, "/publishers/42", jsonBody(`{"name":"Foo"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := h.Put(c); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestCatalogHandler_Delete(t *testing.T) {
	e := newTestEcho()
	removed := ""
	h := NewFanArticleHandler(&stubCatalogService[*domain.FanArticle]{
		removeFn: func(ctx context.Context, id string) error {
			removed = id
			return nil
		},
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/fan-articles/"+bookID, nil), rec)
	c.SetParamNames("id")
	c.SetParamValues(bookID)

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || removed != bookID {
		t.Fatalf("expected 204 for %s, got %d for %q", bookID, rec.Code, removed)
	}
}
