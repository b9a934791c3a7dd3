package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/Furkanefeabus/teklif-backend/internal/model"
	"github.com/Furkanefeabus/teklif-backend/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCRUD(t *testing.T) {
	e := newTestServer(t)
	_, token := newTestUser(t, "products@example.com")

	rec := doRequest(e, http.MethodPost, "/api/products", token, map[string]interface{}{
		"name":     "Steel Bracket",
		"category": "hardware",
		"price":    "12.50",
		"stock":    40,
	})
	requireStatus(t, rec, http.StatusCreated)

	var created model.Product
	decodeBody(t, rec, &created)
	require.NotZero(t, created.ID)
	assert.True(t, created.Price.Equal(decimal.RequireFromString("12.50")))
	// unit defaults when omitted
	assert.Equal(t, "pcs", created.Unit)

	rec = doRequest(e, http.MethodPut, fmt.Sprintf("/api/products/%d", created.ID), token, map[string]interface{}{
		"name":  "Steel Bracket",
		"price": "13.00",
		"unit":  "box",
	})
	requireStatus(t, rec, http.StatusOK)

	var updated model.Product
	decodeBody(t, rec, &updated)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("13.00")))
	assert.Equal(t, "box", updated.Unit)

	rec = doRequest(e, http.MethodDelete, fmt.Sprintf("/api/products/%d", created.ID), token, nil)
	requireStatus(t, rec, http.StatusOK)

	requireStatus(t, doRequest(e, http.MethodGet, fmt.Sprintf("/api/products/%d", created.ID), token, nil), http.StatusNotFound)
}

func TestProductCategoryFilter(t *testing.T) {
	e := newTestServer(t)
	user, token := newTestUser(t, "filter@example.com")

	for _, p := range []model.Product{
		{UserID: user.ID, Name: "Valve", Category: "plumbing", Unit: "pcs"},
		{UserID: user.ID, Name: "Pipe", Category: "plumbing", Unit: "m"},
		{UserID: user.ID, Name: "Cable", Category: "electrical", Unit: "m"},
	} {
		require.NoError(t, database.GetDB().Create(&p).Error)
	}

	rec := doRequest(e, http.MethodGet, "/api/products?category=plumbing", token, nil)
	requireStatus(t, rec, http.StatusOK)

	var list []model.Product
	decodeBody(t, rec, &list)
	assert.Len(t, list, 2)
	for _, p := range list {
		assert.Equal(t, "plumbing", p.Category)
	}
}

func TestProductCrossTenant(t *testing.T) {
	e := newTestServer(t)
	owner, _ := newTestUser(t, "prodowner@example.com")
	_, intruder := newTestUser(t, "prodintruder@example.com")

	product := model.Product{UserID: owner.ID, Name: "Secret Widget", Unit: "pcs"}
	require.NoError(t, database.GetDB().Create(&product).Error)

	path := fmt.Sprintf("/api/products/%d", product.ID)
	requireStatus(t, doRequest(e, http.MethodGet, path, intruder, nil), http.StatusNotFound)
	requireStatus(t, doRequest(e, http.MethodDelete, path, intruder, nil), http.StatusNotFound)
}

func TestListCategories(t *testing.T) {
	e := newTestServer(t)
	user, token := newTestUser(t, "categories@example.com")

	for _, p := range []model.Product{
		{UserID: user.ID, Name: "Valve", Category: "plumbing", Unit: "pcs"},
		{UserID: user.ID, Name: "Pipe", Category: "plumbing", Unit: "m"},
		{UserID: user.ID, Name: "Cable", Category: "electrical", Unit: "m"},
		{UserID: user.ID, Name: "Misc", Unit: "pcs"}, // uncategorized, must not appear
	} {
		require.NoError(t, database.GetDB().Create(&p).Error)
	}

	rec := doRequest(e, http.MethodGet, "/api/catalog/categories", token, nil)
	requireStatus(t, rec, http.StatusOK)

	var body struct {
		Categories []string `json:"categories"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, []string{"electrical", "plumbing"}, body.Categories)
}

func TestListCategoriesEmpty(t *testing.T) {
	e := newTestServer(t)
	_, token := newTestUser(t, "nocategories@example.com")

	rec := doRequest(e, http.MethodGet, "/api/catalog/categories", token, nil)
	requireStatus(t, rec, http.StatusOK)
	assert.JSONEq(t, `{"categories":[]}`, rec.Body.String())
}
