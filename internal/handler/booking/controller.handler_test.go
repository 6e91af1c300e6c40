package booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	conversionService "portrait-backend/internal/service/conversion"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockConversion struct {
	inputs []*conversionService.ReportInput
	out    conversionService.Outcome
}

func (m *mockConversion) ReportPurchase(_ context.Context, in *conversionService.ReportInput) conversionService.Outcome {
	m.inputs = append(m.inputs, in)
	return m.out
}

func (m *mockConversion) ConsumeBookingConfirmed(context.Context, []byte) error {
	return nil
}

func newRouter(svc conversionService.IService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).NewRoutes(r.Group("/api"))
	return r
}

func TestReportPurchase_PassesCookies(t *testing.T) {
	svc := &mockConversion{out: conversionService.Outcome{Success: true}}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/b-1/purchase-report", nil)
	req.AddCookie(&http.Cookie{Name: "_fbc", Value: "fb.1.1.click"})
	req.AddCookie(&http.Cookie{Name: "_fbp", Value: "fb.1.1.browser"})
	req.Header.Set("Referer", "https://istanbulportrait.com/checkout/success")
	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	require.Len(t, svc.inputs, 1)
	assert.Equal(t, &conversionService.ReportInput{
		BookingID:      "b-1",
		FBC:            "fb.1.1.click",
		FBP:            "fb.1.1.browser",
		EventSourceURL: "https://istanbulportrait.com/checkout/success",
	}, svc.inputs[0])
}

func TestReportPurchase_FailureIsStill200(t *testing.T) {
	svc := &mockConversion{out: conversionService.Outcome{Reason: conversionService.ReasonBookingNotFound}}

	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/bookings/missing/purchase-report", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":false}`, w.Body.String())
	assert.Empty(t, svc.inputs[0].FBC)
}
