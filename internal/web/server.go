// Package web serves the admin panel: a thin HTML CRUD over the scrapyard
// directory plus a read-only view of the parts catalog.
package web

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/hackmir/partsbot/core/logger"
	"github.com/hackmir/partsbot/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// DirectoryStore is the storage surface the panel mutates.
type DirectoryStore interface {
	List(ctx context.Context) ([]domain.Scrapyard, error)
	Get(ctx context.Context, id int64) (domain.Scrapyard, error)
	Create(ctx context.Context, yard domain.Scrapyard) (int64, error)
	Update(ctx context.Context, yard domain.Scrapyard) error
	Delete(ctx context.Context, id int64) error
}

// CatalogStore is the read-only parts surface shown by the panel.
type CatalogStore interface {
	List(ctx context.Context) ([]domain.Part, error)
}

// Server renders and mutates the directory.
type Server struct {
	yards     DirectoryStore
	parts     CatalogStore
	templates *template.Template
}

// NewServer parses the embedded templates and builds the panel server.
func NewServer(yards DirectoryStore, parts CatalogStore) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Server{yards: yards, parts: parts, templates: tmpl}, nil
}

// Router builds the chi route tree for the panel.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/", s.index)
	r.Get("/add", s.addForm)
	r.Post("/add", s.add)
	r.Get("/edit/{id}", s.editForm)
	r.Post("/edit/{id}", s.edit)
	r.Get("/delete/{id}", s.delete)
	r.Get("/parts", s.listParts)
	return r
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		logger.Error(context.Background(), "web", "web.render",
			slog.String("template", name),
			slog.String("err", err.Error()),
		)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	yards, err := s.yards.List(r.Context())
	if err != nil {
		logger.Error(r.Context(), "web", "web.index",
			slog.String("err", err.Error()),
		)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.render(w, "index.html", yards)
}

func (s *Server) addForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, "add.html", nil)
}

func (s *Server) add(w http.ResponseWriter, r *http.Request) {
	yard, ok := scrapyardFromForm(r)
	if !ok {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if _, err := s.yards.Create(r.Context(), yard); err != nil {
		logger.Error(r.Context(), "web", "web.add",
			slog.String("err", err.Error()),
		)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) editForm(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	yard, err := s.yards.Get(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	s.render(w, "edit.html", yard)
}

func (s *Server) edit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	yard, formOK := scrapyardFromForm(r)
	if !formOK {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	yard.ID = id
	if err := s.yards.Update(r.Context(), yard); err != nil {
		logger.Error(r.Context(), "web", "web.edit",
			slog.Int64("scrapyard_id", id),
			slog.String("err", err.Error()),
		)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := s.yards.Delete(r.Context(), id); err != nil {
		logger.Error(r.Context(), "web", "web.delete",
			slog.Int64("scrapyard_id", id),
			slog.String("err", err.Error()),
		)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) listParts(w http.ResponseWriter, r *http.Request) {
	parts, err := s.parts.List(r.Context())
	if err != nil {
		logger.Error(r.Context(), "web", "web.parts",
			slog.String("err", err.Error()),
		)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.render(w, "parts.html", parts)
}

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func scrapyardFromForm(r *http.Request) (domain.Scrapyard, bool) {
	if err := r.ParseForm(); err != nil {
		return domain.Scrapyard{}, false
	}
	yard := domain.Scrapyard{
		Name:        r.PostFormValue("name"),
		VehicleType: r.PostFormValue("vehicle_type"),
		Location:    r.PostFormValue("location"),
		Contact:     r.PostFormValue("contact"),
	}
	if yard.Name == "" {
		return domain.Scrapyard{}, false
	}
	return yard, true
}
