package service

import (
	"context"
	"errors"
	"testing"

	"github.com/hackmir/partsbot/internal/domain"
)

type fakeScrapyardStore struct {
	yards []domain.Scrapyard
	err   error
	query string
}

func (f *fakeScrapyardStore) List(_ context.Context) ([]domain.Scrapyard, error) {
	return f.yards, f.err
}

func (f *fakeScrapyardStore) Search(_ context.Context, query string) ([]domain.Scrapyard, error) {
	f.query = query
	return f.yards, f.err
}

type fakePartStore struct {
	parts []domain.Part
	err   error
}

func (f *fakePartStore) SearchByName(_ context.Context, _ string) ([]domain.Part, error) {
	return f.parts, f.err
}

func TestDirectoryLookupDegradesToEmpty(t *testing.T) {
	dir := NewDirectory(&fakeScrapyardStore{err: errors.New("connection refused")})
	if got := dir.Lookup(context.Background(), ""); len(got) != 0 {
		t.Fatalf("expected empty result on storage failure, got %v", got)
	}
}

func TestDirectoryLookupRoutesQuery(t *testing.T) {
	store := &fakeScrapyardStore{yards: []domain.Scrapyard{{ID: 1, Name: "Riga Auto"}}}
	dir := NewDirectory(store)

	got := dir.Lookup(context.Background(), "riga")
	if store.query != "riga" {
		t.Fatalf("query not forwarded, got %q", store.query)
	}
	if len(got) != 1 || got[0].Name != "Riga Auto" {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestPartsSearchDegradesToEmpty(t *testing.T) {
	parts := NewParts(&fakePartStore{err: errors.New("timeout")})
	if got := parts.Search(context.Background(), "brake"); len(got) != 0 {
		t.Fatalf("expected empty result on storage failure, got %v", got)
	}
}

func TestPartsSearchReturnsMatches(t *testing.T) {
	parts := NewParts(&fakePartStore{parts: []domain.Part{{Name: "brake pad", Condition: "new", Price: 10}}})
	got := parts.Search(context.Background(), "brake")
	if len(got) != 1 || got[0].Name != "brake pad" {
		t.Fatalf("unexpected result: %v", got)
	}
}
