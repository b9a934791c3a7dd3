package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/Furkanefeabus/teklif-backend/internal/model"
	"github.com/Furkanefeabus/teklif-backend/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerCRUD(t *testing.T) {
	e := newTestServer(t)
	_, token := newTestUser(t, "crud@example.com")

	rec := doRequest(e, http.MethodPost, "/api/customers", token, map[string]interface{}{
		"name":    "Acme Corp",
		"email":   "billing@acme.test",
		"phone":   "+1 555 0100",
		"address": "1 Acme Way",
	})
	requireStatus(t, rec, http.StatusCreated)

	var created model.Customer
	decodeBody(t, rec, &created)
	require.NotZero(t, created.ID)
	assert.Equal(t, "Acme Corp", created.Name)

	rec = doRequest(e, http.MethodGet, fmt.Sprintf("/api/customers/%d", created.ID), token, nil)
	requireStatus(t, rec, http.StatusOK)

	rec = doRequest(e, http.MethodPut, fmt.Sprintf("/api/customers/%d", created.ID), token, map[string]interface{}{
		"name":  "Acme Corp",
		"email": "accounts@acme.test",
	})
	requireStatus(t, rec, http.StatusOK)

	var updated model.Customer
	decodeBody(t, rec, &updated)
	assert.Equal(t, "accounts@acme.test", updated.Email)

	rec = doRequest(e, http.MethodGet, "/api/customers", token, nil)
	requireStatus(t, rec, http.StatusOK)
	var list []model.Customer
	decodeBody(t, rec, &list)
	assert.Len(t, list, 1)

	rec = doRequest(e, http.MethodDelete, fmt.Sprintf("/api/customers/%d", created.ID), token, nil)
	requireStatus(t, rec, http.StatusOK)

	rec = doRequest(e, http.MethodGet, fmt.Sprintf("/api/customers/%d", created.ID), token, nil)
	requireStatus(t, rec, http.StatusNotFound)
}

func TestCustomerCrossTenant(t *testing.T) {
	e := newTestServer(t)
	owner, _ := newTestUser(t, "owner@example.com")
	_, intruder := newTestUser(t, "intruder@example.com")

	customer := model.Customer{UserID: owner.ID, Name: "Private Ltd"}
	require.NoError(t, database.GetDB().Create(&customer).Error)

	path := fmt.Sprintf("/api/customers/%d", customer.ID)
	requireStatus(t, doRequest(e, http.MethodGet, path, intruder, nil), http.StatusNotFound)
	requireStatus(t, doRequest(e, http.MethodPut, path, intruder, map[string]interface{}{"name": "Hijacked"}), http.StatusNotFound)
	requireStatus(t, doRequest(e, http.MethodDelete, path, intruder, nil), http.StatusNotFound)

	// the intruder's list does not leak it either
	rec := doRequest(e, http.MethodGet, "/api/customers", intruder, nil)
	requireStatus(t, rec, http.StatusOK)
	var list []model.Customer
	decodeBody(t, rec, &list)
	assert.Empty(t, list)

	// and the record is untouched
	var reloaded model.Customer
	require.NoError(t, database.GetDB().First(&reloaded, customer.ID).Error)
	assert.Equal(t, "Private Ltd", reloaded.Name)
}

func TestCustomerValidation(t *testing.T) {
	e := newTestServer(t)
	_, token := newTestUser(t, "validate@example.com")

	rec := doRequest(e, http.MethodPost, "/api/customers", token, map[string]interface{}{
		"email": "no-name@example.com",
	})
	requireStatus(t, rec, http.StatusBadRequest)
}
