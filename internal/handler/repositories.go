package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"gitbrowse/internal/codec"
	"gitbrowse/internal/domain"
	"gitbrowse/internal/service"
)

// SortResponse echoes the sort a listing was produced with
type SortResponse struct {
	Key   string `json:"key"`
	Order string `json:"order"`
}

// Links point at neighbouring windows of the same listing
type Links struct {
	First    string `json:"first"`
	Previous string `json:"previous,omitempty"`
	Next     string `json:"next,omitempty"`
}

// ListResponse is one window of the repository listing
type ListResponse struct {
	Items []codec.Row      `json:"items"`
	Sort  SortResponse     `json:"sort"`
	Meta  service.PageMeta `json:"meta"`
	Links Links            `json:"links"`
}

// RepositoryResponse is a single repository with its extra properties
type RepositoryResponse struct {
	codec.Row
	Properties map[string]any `json:"properties,omitempty"`
}

// List returns one sorted window of repositories.
// Query: sort=field[:asc|desc], page & page_size, or offset & limit.
func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	req, err := h.parsePageRequest(r.URL.Query())
	if err != nil {
		h.writeError(w, "Invalid request", err.Error(), http.StatusBadRequest)
		return
	}

	page, err := h.listing.Page(r.Context(), req)
	if err != nil {
		h.fail(w, "Failed to list repositories", err)
		return
	}

	h.writeJSON(w, ListResponse{
		Items: codec.NewRows(page.Items, h.listing.Now()),
		Sort:  SortResponse{Key: page.Sort.Key.String(), Order: page.Sort.Order()},
		Meta:  page.Meta,
		Links: pageLinks(r.URL.Path, page.Sort, page.Meta, req.Page > 0),
	}, http.StatusOK)
}

// Get returns a single repository
func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		h.writeError(w, "Invalid repository name", "Repository name is required", http.StatusBadRequest)
		return
	}

	repo, err := h.listing.Get(r.Context(), name)
	if err != nil {
		h.fail(w, "Failed to get repository", err)
		return
	}

	h.writeJSON(w, RepositoryResponse{
		Row:        codec.NewRow(*repo, h.listing.Now()),
		Properties: repo.Properties,
	}, http.StatusOK)
}

// Export writes the full sorted listing as json, yaml or table
func (h *ListingHandler) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sort, err := service.ParseSort(q.Get("sort"), h.listing.DefaultSort())
	if err != nil {
		h.fail(w, "Invalid sort", err)
		return
	}

	exp, err := codec.ForFormat(q.Get("format"), h.listing.Now())
	if err != nil {
		h.fail(w, "Invalid format", err)
		return
	}

	var buf bytes.Buffer
	if err := h.listing.Export(r.Context(), sort, exp, &buf); err != nil {
		h.fail(w, "Failed to export repositories", err)
		return
	}

	w.Header().Set("Content-Type", exp.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=repositories.%s", exp.Format()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Warn().Err(err).Msg("failed to write export")
	}
}

// SettingsResponse carries the page-level settings of the listing
type SettingsResponse struct {
	RepositoriesMessage string     `json:"repositories_message,omitempty"`
	ShowAdmin           bool       `json:"show_admin"`
	LastImport          *time.Time `json:"last_import,omitempty"`
}

// Settings returns the listing banner and whether admin links are offered
func (h *ListingHandler) Settings(w http.ResponseWriter, r *http.Request) {
	resp := SettingsResponse{
		RepositoriesMessage: h.cfg.Web.RepositoriesMessage,
		ShowAdmin:           h.cfg.ShowAdmin(h.auth.CanAdmin(r)),
	}

	last, err := h.catalog.LastImport(r.Context())
	if err != nil {
		h.fail(w, "Failed to read settings", err)
		return
	}
	if !last.IsZero() {
		resp.LastImport = &last
	}

	h.writeJSON(w, resp, http.StatusOK)
}

// Upsert creates or replaces a repository. Administrators only.
func (h *ListingHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var repo domain.Repository
	if err := json.NewDecoder(r.Body).Decode(&repo); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	repo.Name = r.PathValue("name")

	if err := h.catalog.Upsert(r.Context(), &repo); err != nil {
		h.fail(w, "Failed to save repository", err)
		return
	}

	h.writeJSON(w, RepositoryResponse{
		Row:        codec.NewRow(repo, h.listing.Now()),
		Properties: repo.Properties,
	}, http.StatusOK)
}

// Delete removes a repository. Administrators only.
func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	if err := h.catalog.Delete(r.Context(), r.PathValue("name")); err != nil {
		h.fail(w, "Failed to delete repository", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// requireAdmin writes 403 or 401 and returns false unless the request may
// administer repositories
func (h *ListingHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if !h.cfg.Web.AllowAdministration {
		h.writeError(w, "Forbidden", "administration is disabled", http.StatusForbidden)
		return false
	}
	if !h.auth.CanAdmin(r) {
		w.Header().Set("WWW-Authenticate", `Basic realm="gitbrowse"`)
		h.writeError(w, "Unauthorized", "administrator credentials required", http.StatusUnauthorized)
		return false
	}
	return true
}

func (h *ListingHandler) parsePageRequest(q url.Values) (service.PageRequest, error) {
	var req service.PageRequest

	sort, err := service.ParseSort(q.Get("sort"), h.listing.DefaultSort())
	if err != nil {
		return req, err
	}
	req.Sort = sort

	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"page", &req.Page},
		{"page_size", &req.PageSize},
		{"offset", &req.Offset},
		{"limit", &req.Limit},
	} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("%s must be an integer, got %q", p.name, v)
		}
		*p.dst = n
	}

	return req, nil
}

// pageLinks builds first/previous/next links in the paging mode the
// request used. Links always carry the effective sort.
func pageLinks(path string, sort domain.SortState, meta service.PageMeta, pageMode bool) Links {
	link := func(pos int) string {
		q := url.Values{}
		q.Set("sort", sort.String())
		if pageMode {
			q.Set("page", strconv.Itoa(pos))
			q.Set("page_size", strconv.Itoa(meta.PageSize))
		} else {
			q.Set("offset", strconv.Itoa(pos))
			q.Set("limit", strconv.Itoa(meta.PageSize))
		}
		return path + "?" + q.Encode()
	}

	var links Links
	if pageMode {
		links.First = link(1)
		if meta.HasPrevious {
			links.Previous = link(max(meta.CurrentPage-1, 1))
		}
		if meta.HasNext {
			links.Next = link(meta.CurrentPage + 1)
		}
		return links
	}

	links.First = link(0)
	if meta.HasPrevious {
		links.Previous = link(max(meta.Offset-meta.PageSize, 0))
	}
	if meta.HasNext {
		links.Next = link(meta.Offset + meta.PageSize)
	}
	return links
}
