package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/hackmir/partsbot/internal/domain"
)

type fakeDirectory struct {
	yards   []domain.Scrapyard
	listErr error
	created []domain.Scrapyard
	updated []domain.Scrapyard
	deleted []int64
}

func (f *fakeDirectory) List(ctx context.Context) ([]domain.Scrapyard, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.yards, nil
}

func (f *fakeDirectory) Get(ctx context.Context, id int64) (domain.Scrapyard, error) {
	for _, y := range f.yards {
		if y.ID == id {
			return y, nil
		}
	}
	return domain.Scrapyard{}, errors.New("scrapyard not found")
}

func (f *fakeDirectory) Create(ctx context.Context, yard domain.Scrapyard) (int64, error) {
	f.created = append(f.created, yard)
	return int64(len(f.created)), nil
}

func (f *fakeDirectory) Update(ctx context.Context, yard domain.Scrapyard) error {
	f.updated = append(f.updated, yard)
	return nil
}

func (f *fakeDirectory) Delete(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeCatalog struct {
	parts []domain.Part
	err   error
}

func (f *fakeCatalog) List(ctx context.Context) ([]domain.Part, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.parts, nil
}

func newTestServer(t *testing.T, yards *fakeDirectory, parts *fakeCatalog) http.Handler {
	t.Helper()
	srv, err := NewServer(yards, parts)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv.Router()
}

func TestIndexListsScrapyards(t *testing.T) {
	yards := &fakeDirectory{yards: []domain.Scrapyard{
		{ID: 1, Name: "AutoDoc 24", VehicleType: "passenger", Location: "Riga", Contact: "+371 2000000"},
	}}
	h := newTestServer(t, yards, &fakeCatalog{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "AutoDoc 24") {
		t.Fatalf("body does not contain scrapyard name: %s", rec.Body.String())
	}
}

func TestIndexStoreErrorReturns500(t *testing.T) {
	yards := &fakeDirectory{listErr: errors.New("db down")}
	h := newTestServer(t, yards, &fakeCatalog{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestAddCreatesAndRedirects(t *testing.T) {
	yards := &fakeDirectory{}
	h := newTestServer(t, yards, &fakeCatalog{})

	form := url.Values{
		"name":         {"Metal & Sons"},
		"vehicle_type": {"truck"},
		"location":     {"Daugavpils"},
		"contact":      {"+371 2111111"},
	}
	req := httptest.NewRequest(http.MethodPost, "/add", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if len(yards.created) != 1 {
		t.Fatalf("created = %d entries, want 1", len(yards.created))
	}
	if yards.created[0].Name != "Metal & Sons" || yards.created[0].VehicleType != "truck" {
		t.Fatalf("unexpected created scrapyard: %+v", yards.created[0])
	}
}

func TestAddWithoutNameRejected(t *testing.T) {
	yards := &fakeDirectory{}
	h := newTestServer(t, yards, &fakeCatalog{})

	req := httptest.NewRequest(http.MethodPost, "/add", strings.NewReader("location=Riga"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if len(yards.created) != 0 {
		t.Fatalf("created = %d entries, want 0", len(yards.created))
	}
}

func TestEditFormShowsExistingValues(t *testing.T) {
	yards := &fakeDirectory{yards: []domain.Scrapyard{
		{ID: 7, Name: "Old Iron", VehicleType: "passenger", Location: "Liepaja", Contact: "x"},
	}}
	h := newTestServer(t, yards, &fakeCatalog{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/edit/7", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Old Iron") {
		t.Fatalf("body does not contain existing name: %s", rec.Body.String())
	}
}

func TestEditUpdatesWithPathID(t *testing.T) {
	yards := &fakeDirectory{yards: []domain.Scrapyard{{ID: 7, Name: "Old Iron"}}}
	h := newTestServer(t, yards, &fakeCatalog{})

	form := url.Values{"name": {"New Iron"}}
	req := httptest.NewRequest(http.MethodPost, "/edit/7", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if len(yards.updated) != 1 {
		t.Fatalf("updated = %d entries, want 1", len(yards.updated))
	}
	if yards.updated[0].ID != 7 || yards.updated[0].Name != "New Iron" {
		t.Fatalf("unexpected update: %+v", yards.updated[0])
	}
}

func TestDeleteRedirects(t *testing.T) {
	yards := &fakeDirectory{}
	h := newTestServer(t, yards, &fakeCatalog{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/delete/3", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if len(yards.deleted) != 1 || yards.deleted[0] != 3 {
		t.Fatalf("deleted = %v, want [3]", yards.deleted)
	}
}

func TestBadIDIsNotFound(t *testing.T) {
	h := newTestServer(t, &fakeDirectory{}, &fakeCatalog{})

	for _, path := range []string{"/edit/abc", "/edit/0", "/delete/-1"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: status = %d, want %d", path, rec.Code, http.StatusNotFound)
		}
	}
}

func TestPartsPageRendersCatalog(t *testing.T) {
	parts := &fakeCatalog{parts: []domain.Part{
		{ID: 1, Name: "brake pad", Condition: "new", Price: 25.5},
	}}
	h := newTestServer(t, &fakeDirectory{}, parts)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/parts", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "brake pad") || !strings.Contains(body, "25.50") {
		t.Fatalf("body missing part row: %s", body)
	}
}
