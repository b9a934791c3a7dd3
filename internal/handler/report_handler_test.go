package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/Furkanefeabus/teklif-backend/internal/model"
	"github.com/Furkanefeabus/teklif-backend/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsEndpoint(t *testing.T) {
	e := newTestServer(t)
	user, token := newTestUser(t, "stats@example.com")
	customer := seedHandlerCustomer(t, user.ID)

	paid := createQuotation(t, e, token, customer.ID)
	createQuotation(t, e, token, customer.ID) // stays unpaid

	rec := doRequest(e, http.MethodPut, fmt.Sprintf("/api/quotations/%d/payment", paid.ID), token, map[string]interface{}{
		"payment_status": "paid",
	})
	requireStatus(t, rec, http.StatusOK)

	rec = doRequest(e, http.MethodGet, "/api/statistics", token, nil)
	requireStatus(t, rec, http.StatusOK)

	var stats service.DashboardStats
	decodeBody(t, rec, &stats)
	assert.EqualValues(t, 1, stats.TotalCustomers)
	assert.EqualValues(t, 0, stats.TotalProducts)
	assert.EqualValues(t, 2, stats.TotalQuotations)
	assert.True(t, stats.TotalRevenue.Equal(decimal.RequireFromString("180")), "revenue %s", stats.TotalRevenue)
	assert.True(t, stats.PendingPayments.Equal(decimal.RequireFromString("180")), "pending %s", stats.PendingPayments)
}

func TestPaymentEndpoints(t *testing.T) {
	e := newTestServer(t)
	user, token := newTestUser(t, "payreport@example.com")
	customer := seedHandlerCustomer(t, user.ID)

	paid := createQuotation(t, e, token, customer.ID)
	pending := createQuotation(t, e, token, customer.ID)

	// partial payment recorded against the paid one
	rec := doRequest(e, http.MethodPut, fmt.Sprintf("/api/quotations/%d/payment", paid.ID), token, map[string]interface{}{
		"payment_status": "paid",
		"payment_amount": "150.00",
	})
	requireStatus(t, rec, http.StatusOK)

	rec = doRequest(e, http.MethodGet, "/api/payments/pending", token, nil)
	requireStatus(t, rec, http.StatusOK)
	var pendingList []model.Quotation
	decodeBody(t, rec, &pendingList)
	require.Len(t, pendingList, 1)
	assert.Equal(t, pending.ID, pendingList[0].ID)
	require.NotNil(t, pendingList[0].Customer)

	rec = doRequest(e, http.MethodGet, "/api/payments/paid", token, nil)
	requireStatus(t, rec, http.StatusOK)
	var paidList []model.Quotation
	decodeBody(t, rec, &paidList)
	require.Len(t, paidList, 1)
	assert.Equal(t, paid.ID, paidList[0].ID)

	rec = doRequest(e, http.MethodGet, "/api/payments/statistics", token, nil)
	requireStatus(t, rec, http.StatusOK)
	var stats service.PaymentStats
	decodeBody(t, rec, &stats)
	assert.True(t, stats.TotalExpected.Equal(decimal.RequireFromString("360")), "expected %s", stats.TotalExpected)
	assert.True(t, stats.TotalReceived.Equal(decimal.RequireFromString("150")), "received %s", stats.TotalReceived)
	assert.True(t, stats.TotalPending.Equal(decimal.RequireFromString("180")), "pending %s", stats.TotalPending)
	assert.EqualValues(t, 1, stats.OverdueCount)
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/health", "", nil)
	requireStatus(t, rec, http.StatusOK)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "connected", body["database"])
}
