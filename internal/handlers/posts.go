package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"inkpress/internal/cache"
	"inkpress/internal/middleware"
	"inkpress/internal/models"
	"inkpress/internal/store"
)

// Posts groups the post HTTP handlers.
type Posts struct {
	store *store.PostStore
	cache *cache.ListCache
}

// NewPosts creates a new Posts handler group.
func NewPosts(s *store.PostStore, c *cache.ListCache) *Posts {
	return &Posts{store: s, cache: c}
}

// Create handles POST /posts → 201 {slug}, 400, 409. Creation may upsert a
// category and subcategories, so every list cache is purged.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	var body models.PostInput
	if !decodeBody(w, r, &body) {
		return
	}
	if msg := validatePost(body.Title, body.Body, body.Category, body.Subcategories); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	slug, err := h.store.Create(body, middleware.UsernameFromCtx(r.Context()))
	if err != nil {
		writeStoreError(w, err, "post", "posts", "a post with the same title already exists")
		return
	}

	h.cache.Purge(r.Context(), cache.PostsKey, cache.CategoriesKey, cache.SubcategoriesKey)
	writeJSON(w, http.StatusCreated, slugBody{Slug: slug})
}

// List handles GET /posts?category=&subcategories=a,b → 200 []PostView.
// Public; each filter combination is cached under its own key.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	var subcategories []string
	if raw := r.URL.Query().Get("subcategories"); raw != "" {
		for _, sc := range strings.Split(raw, ",") {
			if sc = strings.TrimSpace(sc); sc != "" {
				subcategories = append(subcategories, sc)
			}
		}
	}

	cacheKey := cache.PostsKey
	if r.URL.RawQuery != "" {
		cacheKey += "?" + r.URL.RawQuery
	}
	if payload, ok := h.cache.Get(r.Context(), cacheKey); ok {
		writeRawJSON(w, http.StatusOK, payload)
		return
	}

	items, err := h.store.List(category, subcategories)
	if err != nil {
		writeStoreError(w, err, "post", "posts", "")
		return
	}
	if items == nil {
		items = []models.PostView{}
	}

	payload, err := json.Marshal(items)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.cache.Set(r.Context(), cacheKey, payload)
	writeRawJSON(w, http.StatusOK, payload)
}

// Delete handles DELETE /posts/{slug} → 200, 404, 403.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	err := h.store.Delete(slug, middleware.UsernameFromCtx(r.Context()))
	if err != nil {
		writeStoreError(w, err, "post", "posts", "")
		return
	}

	h.cache.Purge(r.Context(), cache.PostsKey)
	w.WriteHeader(http.StatusOK)
}
