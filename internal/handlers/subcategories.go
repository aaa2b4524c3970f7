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

// Subcategories groups the subcategory HTTP handlers.
type Subcategories struct {
	store *store.SubcategoryStore
	cache *cache.ListCache
}

// NewSubcategories creates a new Subcategories handler group.
func NewSubcategories(s *store.SubcategoryStore, c *cache.ListCache) *Subcategories {
	return &Subcategories{store: s, cache: c}
}

// subcategoryBody is the request body for subcategory creation.
type subcategoryBody struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Create handles POST /sub-categories → 201 {slug}, 400, 409. A missing
// parent category is auto-created, so the category cache is purged too.
func (h *Subcategories) Create(w http.ResponseWriter, r *http.Request) {
	var body subcategoryBody
	if !decodeBody(w, r, &body) {
		return
	}
	if msg := validateName(body.Name); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validateName(body.Category); msg != "" {
		writeError(w, http.StatusBadRequest, "category: "+msg)
		return
	}

	slug, err := h.store.Create(body.Name, body.Category, middleware.UsernameFromCtx(r.Context()))
	if err != nil {
		writeStoreError(w, err, "subcategory", "subcategories", "a subcategory with the same name already exists")
		return
	}

	h.cache.Purge(r.Context(), cache.SubcategoriesKey, cache.CategoriesKey)
	writeJSON(w, http.StatusCreated, slugBody{Slug: slug})
}

// List handles GET /sub-categories → 200 [{slug,name}]. Public, cached.
func (h *Subcategories) List(w http.ResponseWriter, r *http.Request) {
	if payload, ok := h.cache.Get(r.Context(), cache.SubcategoriesKey); ok {
		writeRawJSON(w, http.StatusOK, payload)
		return
	}

	items, err := h.store.List()
	if err != nil {
		writeStoreError(w, err, "subcategory", "subcategories", "")
		return
	}
	if items == nil {
		items = []models.SubcategoryRef{}
	}

	payload, err := json.Marshal(items)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.cache.Set(r.Context(), cache.SubcategoriesKey, payload)
	writeRawJSON(w, http.StatusOK, payload)
}

// Delete handles DELETE /sub-categories/{slug} → 200, 404, 403. Posts lose
// a linked subcategory, so the post cache is purged alongside.
func (h *Subcategories) Delete(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	err := h.store.Delete(slug, middleware.UsernameFromCtx(r.Context()))
	if err != nil {
		writeStoreError(w, err, "subcategory", "subcategories", "")
		return
	}

	h.cache.Purge(r.Context(), cache.SubcategoriesKey, cache.PostsKey)
	w.WriteHeader(http.StatusOK)
}
