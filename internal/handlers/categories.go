// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkpress/internal/cache"
	"inkpress/internal/middleware"
	"inkpress/internal/models"
	"inkpress/internal/store"
)

// Categories groups the category HTTP handlers.
type Categories struct {
	store *store.CategoryStore
	cache *cache.ListCache
}

// NewCategories creates a new Categories handler group.
func NewCategories(s *store.CategoryStore, c *cache.ListCache) *Categories {
	return &Categories{store: s, cache: c}
}

// nameBody is the request body for category creation.
type nameBody struct {
	Name string `json:"name"`
}

// slugBody is the response body for successful creations.
type slugBody struct {
	Slug string `json:"slug"`
}

// Create handles POST /categories → 201 {slug}, 400, 409.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var body nameBody
	if !decodeBody(w, r, &body) {
		return
	}
	if msg := validateName(body.Name); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	slug, err := h.store.Create(body.Name, middleware.UsernameFromCtx(r.Context()))
	if err != nil {
		writeStoreError(w, err, "category", "categories", "a category with the same name already exists")
		return
	}

	h.cache.Purge(r.Context(), cache.CategoriesKey)
	writeJSON(w, http.StatusCreated, slugBody{Slug: slug})
}

// List handles GET /categories → 200 [{slug,name}]. Public, cached.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	if payload, ok := h.cache.Get(r.Context(), cache.CategoriesKey); ok {
		writeRawJSON(w, http.StatusOK, payload)
		return
	}

	items, err := h.store.List()
	if err != nil {
		writeStoreError(w, err, "category", "categories", "")
		return
	}
	if items == nil {
		items = []models.CategoryRef{}
	}

	payload, err := json.Marshal(items)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.cache.Set(r.Context(), cache.CategoriesKey, payload)
	writeRawJSON(w, http.StatusOK, payload)
}

// Delete handles DELETE /categories/{slug} → 200, 404, 403. The cascade
// touches subcategories and posts, so all three list caches are purged.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	err := h.store.Delete(slug, middleware.UsernameFromCtx(r.Context()))
	if err != nil {
		writeStoreError(w, err, "category", "categories", "")
		return
	}

	h.cache.Purge(r.Context(), cache.CategoriesKey, cache.SubcategoriesKey, cache.PostsKey)
	w.WriteHeader(http.StatusOK)
}
