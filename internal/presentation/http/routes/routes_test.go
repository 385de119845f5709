package routes

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rgbilling/gst-billing/internal/app"
	"github.com/rgbilling/gst-billing/internal/config"
	"github.com/rgbilling/gst-billing/internal/infrastructure/database"
	"github.com/rgbilling/gst-billing/internal/presentation/http/handler"
	"github.com/rgbilling/gst-billing/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewInMemoryDB()
	require.NoError(t, err)

	cfg := &config.Config{
		App:    config.AppConfig{Name: "gst-billing"},
		Upload: config.UploadConfig{MaxSize: 1 << 20},
		Issuer: config.IssuerConfig{
			Name:            "Raju Generator",
			SignatoryName:   "Pappu Bhardwaj",
			DefaultNote1:    "Goods once sold will not be taken back.",
			DefaultCGSTRate: 9,
			DefaultSGSTRate: 9,
			DefaultIGSTRate: 28,
		},
	}

	a := app.Wire(db, &cfg.Issuer, storage.NewFileDestination(t.TempDir()))
	require.NoError(t, a.Profiles.Load(context.Background()))
	t.Cleanup(func() { a.Close() })

	return Setup(&Handlers{
		Invoice: handler.NewInvoiceHandler(a.Invoices, a.Exports),
		Profile: handler.NewProfileHandler(a.Profiles, cfg.Upload.MaxSize),
	}, cfg)
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func invoiceBody(no string, items int) map[string]interface{} {
	rows := make([]map[string]interface{}, 0, items)
	for i := 0; i < items; i++ {
		rows = append(rows, map[string]interface{}{
			"description": fmt.Sprintf("Service visit %d", i+1),
			"hsn":         "998719",
			"qty":         "1",
			"rate":        1000,
			"tax_type":    "CGST_SGST",
		})
	}
	return map[string]interface{}{
		"invoice_no":    no,
		"date":          "15-10-2026",
		"customer_name": "Patna Cold Storage",
		"items":         rows,
	}
}

type invoiceData struct {
	ID         uint    `json:"id"`
	InvoiceNo  string  `json:"invoice_no"`
	GrandTotal float64 `json:"grand_total"`
	Note1      string  `json:"note1"`
	Items      []struct {
		SlNo int    `json:"sl_no"`
		Unit string `json:"unit"`
	} `json:"items"`
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestComputeIsLenient(t *testing.T) {
	r := newTestRouter(t)
	body := `{"cgst_rate":"9","sgst_rate":9,"igst_rate":"abc","items":[
		{"description":"a","qty":"2","rate":"500"},
		{"description":"b","qty":"x","rate":100},
		{"description":"c","qty":1,"rate":-50,"tax_type":"IGST"}]}`

	var data struct {
		TaxableAmount float64 `json:"taxable_amount"`
		CGSTAmount    float64 `json:"cgst_amount"`
		IGSTAmount    float64 `json:"igst_amount"`
		GrandTotal    float64 `json:"grand_total"`
		AmountInWords string  `json:"amount_in_words"`
		Items         []struct {
			Unit string  `json:"unit"`
			Qty  float64 `json:"qty"`
		} `json:"items"`
	}
	w := do(t, r, http.MethodPost, "/api/v1/invoices/compute", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := decode(t, w, &data)

	assert.True(t, env.Success)
	assert.NotEmpty(t, env.Meta.RequestID)
	assert.Equal(t, 1000.0, data.TaxableAmount)
	assert.Equal(t, 90.0, data.CGSTAmount)
	assert.Zero(t, data.IGSTAmount)
	assert.Equal(t, 1180.0, data.GrandTotal)
	assert.Equal(t, "One thousand one hundred eighty rupees only", data.AmountInWords)
	require.Len(t, data.Items, 3)
	assert.Equal(t, "Nos.", data.Items[0].Unit)
	assert.Zero(t, data.Items[1].Qty)
}

func TestInvoiceLifecycle(t *testing.T) {
	r := newTestRouter(t)

	var created invoiceData
	w := do(t, r, http.MethodPost, "/api/v1/invoices", invoiceBody("RG-1", 3))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	decode(t, w, &created)
	require.NotZero(t, created.ID)
	assert.Equal(t, 3540.0, created.GrandTotal)
	assert.Equal(t, "Goods once sold will not be taken back.", created.Note1)
	require.Len(t, created.Items, 3)
	assert.Equal(t, 3, created.Items[2].SlNo)

	path := fmt.Sprintf("/api/v1/invoices/%d", created.ID)

	var got invoiceData
	w = do(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &got)
	assert.Equal(t, "RG-1", got.InvoiceNo)

	var updated invoiceData
	w = do(t, r, http.MethodPut, path, invoiceBody("RG-1A", 1))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &updated)
	assert.Equal(t, "RG-1A", updated.InvoiceNo)
	assert.Len(t, updated.Items, 1)
	assert.Equal(t, 1180.0, updated.GrandTotal)

	w = do(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decode(t, w, nil)
	assert.False(t, env.Success)
	assert.Equal(t, "Invoice not found", env.Message)

	w = do(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvoiceUpdateErrors(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPut, "/api/v1/invoices/0", invoiceBody("RG-1", 1))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing invoice id for update.", decode(t, w, nil).Message)

	w = do(t, r, http.MethodPut, "/api/v1/invoices/77", invoiceBody("RG-1", 1))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/invoices/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/invoices", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, strings.HasPrefix(decode(t, w, nil).Message, "Invalid request body"))
}

func TestInvoiceValidationErrors(t *testing.T) {
	r := newTestRouter(t)

	body := invoiceBody(strings.Repeat("9", 101), 1)
	body["state_code"] = strings.Repeat("1", 11)
	w := do(t, r, http.MethodPost, "/api/v1/invoices", body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

	env := decode(t, w, nil)
	assert.False(t, env.Success)
	fields := map[string]string{}
	for _, fe := range env.Errors {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, map[string]string{
		"invoice_no": "must be at most 100 characters",
		"state_code": "must be at most 10 characters",
	}, fields)

	// Nothing was saved.
	var list []invoiceData
	decode(t, do(t, r, http.MethodGet, "/api/v1/invoices", nil), &list)
	assert.Empty(t, list)
}

func TestUnknownRouteAndPanicUseEnvelope(t *testing.T) {
	r := newTestRouter(t)
	r.GET("/api/v1/boom", func(c *gin.Context) { panic("boom") })

	w := do(t, r, http.MethodGet, "/api/v1/nothing-here", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decode(t, w, nil)
	assert.False(t, env.Success)
	assert.Equal(t, "Route not found", env.Message)

	w = do(t, r, http.MethodGet, "/api/v1/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env = decode(t, w, nil)
	assert.False(t, env.Success)
	assert.Equal(t, "Internal server error", env.Message)
}

func TestListFiltersAndOrder(t *testing.T) {
	r := newTestRouter(t)
	for _, no := range []string{"RG-1", "RG-2", "CASH-1"} {
		w := do(t, r, http.MethodPost, "/api/v1/invoices", invoiceBody(no, 1))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	var all []invoiceData
	decode(t, do(t, r, http.MethodGet, "/api/v1/invoices", nil), &all)
	require.Len(t, all, 3)
	assert.Equal(t, "CASH-1", all[0].InvoiceNo)

	var filtered []invoiceData
	decode(t, do(t, r, http.MethodGet, "/api/v1/invoices?invoice_no=rg", nil), &filtered)
	assert.Len(t, filtered, 2)

	var byDate []invoiceData
	decode(t, do(t, r, http.MethodGet, "/api/v1/invoices?date=2026-10-15", nil), &byDate)
	assert.Len(t, byDate, 3)

	var none []invoiceData
	decode(t, do(t, r, http.MethodGet, "/api/v1/invoices?date=2026-10-16", nil), &none)
	assert.Empty(t, none)
}

func TestInvoicePDFAndExport(t *testing.T) {
	r := newTestRouter(t)

	var created invoiceData
	decode(t, do(t, r, http.MethodPost, "/api/v1/invoices", invoiceBody("RG-9", 40)), &created)

	w := do(t, r, http.MethodGet, fmt.Sprintf("/api/v1/invoices/%d/pdf", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Invoice-RG-9.pdf"`, w.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	var res struct {
		FileName string `json:"file_name"`
		Location string `json:"location"`
		Pages    int    `json:"pages"`
	}
	w = do(t, r, http.MethodPost, fmt.Sprintf("/api/v1/invoices/%d/export", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &res)
	assert.Equal(t, "Invoice-RG-9.pdf", res.FileName)
	assert.NotEmpty(t, res.Location)
	assert.Greater(t, res.Pages, 1)

	w = do(t, r, http.MethodGet, "/api/v1/invoices/999/pdf", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPreviewDraft(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/api/v1/invoices/preview.pdf", invoiceBody("", 2))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `inline; filename="Invoice-draft.pdf"`, w.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func signaturePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 3, 3))))
	return buf.Bytes()
}

type profileData struct {
	Name         string `json:"name"`
	HasSignature bool   `json:"has_signature"`
}

func TestProfileSignatureUpload(t *testing.T) {
	r := newTestRouter(t)

	var p profileData
	decode(t, do(t, r, http.MethodGet, "/api/v1/profile", nil), &p)
	assert.Equal(t, "Raju Generator", p.Name)
	assert.False(t, p.HasSignature)

	w := do(t, r, http.MethodPut, "/api/v1/profile/signature", map[string]string{"data_url": "data:image/png;base64,bm9wZQ=="})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("signature", "sign.png")
	require.NoError(t, err)
	_, err = part.Write(signaturePNG(t))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile/signature", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &p)
	assert.True(t, p.HasSignature)

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(signaturePNG(t))
	w = do(t, r, http.MethodPut, "/api/v1/profile/signature", map[string]string{"data_url": dataURL})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodDelete, "/api/v1/profile/signature", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &p)
	assert.False(t, p.HasSignature)
}

func TestProfileUpdate(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPut, "/api/v1/profile", map[string]interface{}{"gstin": "x"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decode(t, w, nil)
	assert.Equal(t, "Validation failed", env.Message)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "name", env.Errors[0].Field)
	assert.Equal(t, "is required", env.Errors[0].Message)

	w = do(t, r, http.MethodPut, "/api/v1/profile", map[string]interface{}{
		"name":              "Raju Generators",
		"default_cgst_rate": "6",
		"default_sgst_rate": 6,
		"default_igst_rate": 12,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		CGSTAmount float64 `json:"cgst_amount"`
		IGSTAmount float64 `json:"igst_amount"`
	}
	body := `{"items":[{"qty":1,"rate":100},{"qty":1,"rate":100,"tax_type":"IGST"}]}`
	decode(t, do(t, r, http.MethodPost, "/api/v1/invoices/compute", body), &data)
	assert.Equal(t, 6.0, data.CGSTAmount)
	assert.Equal(t, 12.0, data.IGSTAmount)
}
