package handler

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/Furkanefeabus/teklif-backend/internal/model"
	"github.com/Furkanefeabus/teklif-backend/pkg/database"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createQuotation(t *testing.T, e *echo.Echo, token string, customerID uint) model.Quotation {
	t.Helper()

	rec := doRequest(e, http.MethodPost, "/api/quotations", token, map[string]interface{}{
		"customer_id": customerID,
		"tax_rate":    20,
		"items": []map[string]interface{}{
			{"product_name": "Installation", "quantity": 2, "unit": "hr", "unit_price": "50.00", "total": "100.00"},
			{"product_name": "Cabling", "quantity": 5, "unit": "m", "unit_price": "10.00", "total": "50.00"},
		},
	})
	requireStatus(t, rec, http.StatusOK)

	var q model.Quotation
	decodeBody(t, rec, &q)
	return q
}

func seedHandlerCustomer(t *testing.T, userID uint) *model.Customer {
	t.Helper()
	customer := &model.Customer{UserID: userID, Name: "Acme Corp", Email: "billing@acme.test"}
	require.NoError(t, database.GetDB().Create(customer).Error)
	return customer
}

func TestCreateQuotationComputesAmounts(t *testing.T) {
	e := newTestServer(t)
	user, token := newTestUser(t, "quote@example.com")
	customer := seedHandlerCustomer(t, user.ID)

	q := createQuotation(t, e, token, customer.ID)

	assert.Regexp(t, `^Q-\d{14}-\d{4}$`, q.QuotationNumber)
	assert.True(t, q.Subtotal.Equal(decimal.RequireFromString("150")), "subtotal %s", q.Subtotal)
	assert.True(t, q.TaxAmount.Equal(decimal.RequireFromString("30")), "tax %s", q.TaxAmount)
	assert.True(t, q.Total.Equal(decimal.RequireFromString("180")), "total %s", q.Total)
	assert.Equal(t, "pending", q.Status)
	assert.Equal(t, model.PaymentStatusUnpaid, q.PaymentStatus)
	assert.Len(t, q.Items, 2)
	require.NotNil(t, q.Customer)
	assert.Equal(t, "Acme Corp", q.Customer.Name)
}

func TestCreateQuotationWithoutItems(t *testing.T) {
	e := newTestServer(t)
	user, token := newTestUser(t, "noitems@example.com")
	customer := seedHandlerCustomer(t, user.ID)

	rec := doRequest(e, http.MethodPost, "/api/quotations", token, map[string]interface{}{
		"customer_id": customer.ID,
		"items":       []map[string]interface{}{},
	})
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestQuotationCrossTenant(t *testing.T) {
	e := newTestServer(t)
	owner, ownerToken := newTestUser(t, "qowner@example.com")
	_, intruder := newTestUser(t, "qintruder@example.com")
	customer := seedHandlerCustomer(t, owner.ID)

	q := createQuotation(t, e, ownerToken, customer.ID)
	path := fmt.Sprintf("/api/quotations/%d", q.ID)

	requireStatus(t, doRequest(e, http.MethodGet, path, intruder, nil), http.StatusNotFound)
	requireStatus(t, doRequest(e, http.MethodDelete, path, intruder, nil), http.StatusNotFound)
	requireStatus(t, doRequest(e, http.MethodPut, path+"/payment", intruder, map[string]interface{}{
		"payment_status": "paid",
	}), http.StatusNotFound)
	requireStatus(t, doRequest(e, http.MethodGet, path+"/pdf", intruder, nil), http.StatusNotFound)

	// the owner still sees it
	requireStatus(t, doRequest(e, http.MethodGet, path, ownerToken, nil), http.StatusOK)
}

func TestUpdateQuotationPaymentEndpoint(t *testing.T) {
	e := newTestServer(t)
	user, token := newTestUser(t, "qpay@example.com")
	customer := seedHandlerCustomer(t, user.ID)
	q := createQuotation(t, e, token, customer.ID)

	rec := doRequest(e, http.MethodPut, fmt.Sprintf("/api/quotations/%d/payment", q.ID), token, map[string]interface{}{
		"payment_status": "paid",
		"payment_amount": "180.00",
	})
	requireStatus(t, rec, http.StatusOK)

	var updated model.Quotation
	decodeBody(t, rec, &updated)
	assert.Equal(t, model.PaymentStatusPaid, updated.PaymentStatus)
	require.NotNil(t, updated.PaymentAmount)
	assert.True(t, updated.PaymentAmount.Equal(decimal.RequireFromString("180")))
	// amounts are untouched by a payment update
	assert.True(t, updated.Total.Equal(q.Total))

	rec = doRequest(e, http.MethodPut, fmt.Sprintf("/api/quotations/%d/payment", q.ID), token, map[string]interface{}{})
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestDeleteQuotationEndpoint(t *testing.T) {
	e := newTestServer(t)
	user, token := newTestUser(t, "qdelete@example.com")
	customer := seedHandlerCustomer(t, user.ID)
	q := createQuotation(t, e, token, customer.ID)

	path := fmt.Sprintf("/api/quotations/%d", q.ID)
	requireStatus(t, doRequest(e, http.MethodDelete, path, token, nil), http.StatusOK)
	requireStatus(t, doRequest(e, http.MethodGet, path, token, nil), http.StatusNotFound)

	var itemCount int64
	database.GetDB().Model(&model.QuotationItem{}).Where("quotation_id = ?", q.ID).Count(&itemCount)
	assert.Zero(t, itemCount)
}

func TestDownloadQuotationPDF(t *testing.T) {
	e := newTestServer(t)
	user, token := newTestUser(t, "qpdf@example.com")
	customer := seedHandlerCustomer(t, user.ID)
	q := createQuotation(t, e, token, customer.ID)

	rec := doRequest(e, http.MethodGet, fmt.Sprintf("/api/quotations/%d/pdf", q.ID), token, nil)
	requireStatus(t, rec, http.StatusOK)

	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t,
		fmt.Sprintf("attachment; filename=quotation_%s.pdf", q.QuotationNumber),
		rec.Header().Get(echo.HeaderContentDisposition))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"), "body does not look like a PDF")
}

func TestListQuotationsNewestFirst(t *testing.T) {
	e := newTestServer(t)
	user, token := newTestUser(t, "qlist@example.com")
	customer := seedHandlerCustomer(t, user.ID)

	first := createQuotation(t, e, token, customer.ID)
	second := createQuotation(t, e, token, customer.ID)

	rec := doRequest(e, http.MethodGet, "/api/quotations", token, nil)
	requireStatus(t, rec, http.StatusOK)

	var list []model.Quotation
	decodeBody(t, rec, &list)
	require.Len(t, list, 2)
	assert.Equal(t, []uint{second.ID, first.ID}, []uint{list[0].ID, list[1].ID})
}
