package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/rackwise/rackwise/internal/catalog/repository"
	"github.com/rackwise/rackwise/internal/catalog/service"
	"github.com/rackwise/rackwise/internal/catalog/testutil"
)

func setupAPI(t *testing.T) *gin.Engine {
	t.Helper()

	repos := repository.NewRepositories(testutil.SetupTestDB(t))
	capacity := service.NewCapacityService(repos.Basket, nil)
	svc := &service.Services{
		Basket:   service.NewBasketService(repos.Basket, capacity, nil, ""),
		Project:  service.NewProjectService(repos.Project),
		Capacity: capacity,
	}
	h := NewHandlers(svc)

	r := testutil.SetupRouter()
	api := testutil.AuthGroup(r, "/api/v1")

	baskets := api.Group("/baskets")
	baskets.POST("/import", h.Basket.Import)
	baskets.GET("", h.Basket.List)
	baskets.GET("/:id", h.Basket.Get)
	baskets.GET("/:id/export", h.Basket.Export)
	baskets.DELETE("/:id", h.Basket.Delete)

	api.GET("/capacity/summary", h.Capacity.Summary)

	projects := api.Group("/projects")
	projects.GET("", h.Project.List)
	projects.GET("/:id", h.Project.Get)
	projects.POST("", h.Project.Create)
	projects.PUT("/:id", h.Project.Update)
	projects.DELETE("/:id", h.Project.Delete)

	return r
}

func dellUpload(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	rows := [][]interface{}{
		{"Lot Name", "Description", "SKU", "Qty", "Net Price"},
		{"Compute Lot A", nil, "210-BFVW", nil, 3292},
		{nil, "Intel Xeon Silver 4410Y Processor", "338-BSTV", 2, nil},
		{nil, "32GB RDIMM 4800MT/s", "370-AGZP", 8, nil},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	xlsx, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", "dell_q3.xlsx")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(xlsx.Bytes()); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	for k, v := range fields {
		w.WriteField(k, v)
	}
	w.Close()
	return body, w.FormDataContentType()
}

func importBasket(t *testing.T, r *gin.Engine, token string) string {
	t.Helper()

	body, contentType := dellUpload(t, map[string]string{
		"vendor":   "dell",
		"quarter":  "Q3",
		"year":     "2026",
		"currency": "USD",
	})
	w := testutil.DoMultipart(r, http.MethodPost, "/api/v1/baskets/import", body, contentType, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("import status = %d, body %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	basket := data["basket"].(map[string]interface{})
	return basket["id"].(string)
}

func TestImportEndpoint(t *testing.T) {
	r := setupAPI(t)
	token := testutil.DefaultTestToken()

	body, contentType := dellUpload(t, map[string]string{
		"vendor":   "dell",
		"quarter":  "Q3",
		"year":     "2026",
		"currency": "USD",
	})
	w := testutil.DoMultipart(r, http.MethodPost, "/api/v1/baskets/import", body, contentType, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	report := data["report"].(map[string]interface{})
	if report["models_created"].(float64) != 1 {
		t.Errorf("models_created = %v", report["models_created"])
	}
	if report["configurations_created"].(float64) != 2 {
		t.Errorf("configurations_created = %v", report["configurations_created"])
	}
}

func TestImportRequiresAuth(t *testing.T) {
	r := setupAPI(t)

	body, contentType := dellUpload(t, map[string]string{
		"vendor": "dell", "quarter": "Q3", "year": "2026", "currency": "USD",
	})
	w := testutil.DoMultipart(r, http.MethodPost, "/api/v1/baskets/import", body, contentType, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestImportMissingFile(t *testing.T) {
	r := setupAPI(t)
	token := testutil.DefaultTestToken()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	mw.WriteField("vendor", "dell")
	mw.Close()

	w := testutil.DoMultipart(r, http.MethodPost, "/api/v1/baskets/import", body, mw.FormDataContentType(), token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestImportUnreadableFile(t *testing.T) {
	r := setupAPI(t)
	token := testutil.DefaultTestToken()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, _ := mw.CreateFormFile("file", "garbage.xlsx")
	part.Write([]byte("not a spreadsheet"))
	mw.WriteField("vendor", "dell")
	mw.WriteField("quarter", "Q3")
	mw.WriteField("year", "2026")
	mw.WriteField("currency", "USD")
	mw.Close()

	w := testutil.DoMultipart(r, http.MethodPost, "/api/v1/baskets/import", body, mw.FormDataContentType(), token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
	}
}

func TestBasketListAndGet(t *testing.T) {
	r := setupAPI(t)
	token := testutil.DefaultTestToken()
	id := importBasket(t, r, token)

	w := testutil.DoRequest(r, http.MethodGet, "/api/v1/baskets?vendor=dell", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["total"].(float64) != 1 {
		t.Errorf("total = %v, want 1", data["total"])
	}

	w = testutil.DoRequest(r, http.MethodGet, "/api/v1/baskets/"+id, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	resp = testutil.ParseResponse(w)
	basket := resp["data"].(map[string]interface{})
	models := basket["models"].([]interface{})
	if len(models) != 1 {
		t.Fatalf("models = %d, want 1", len(models))
	}
}

func TestBasketGetMissing(t *testing.T) {
	r := setupAPI(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(r, http.MethodGet, "/api/v1/baskets/no-such-id", nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestBasketExportEndpoint(t *testing.T) {
	r := setupAPI(t)
	token := testutil.DefaultTestToken()
	id := importBasket(t, r, token)

	w := testutil.DoRequest(r, http.MethodGet, "/api/v1/baskets/"+id+"/export", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("content type = %q", ct)
	}

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("exported file unreadable: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Catalog")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("rows = %d, want header plus 2 configurations", len(rows))
	}
}

func TestBasketDeleteEndpoint(t *testing.T) {
	r := setupAPI(t)
	token := testutil.DefaultTestToken()
	id := importBasket(t, r, token)

	w := testutil.DoRequest(r, http.MethodDelete, "/api/v1/baskets/"+id, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}

	w = testutil.DoRequest(r, http.MethodGet, "/api/v1/baskets/"+id, nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status after delete = %d, want 404", w.Code)
	}
}

func TestCapacitySummaryEndpoint(t *testing.T) {
	r := setupAPI(t)
	token := testutil.DefaultTestToken()
	importBasket(t, r, token)

	w := testutil.DoRequest(r, http.MethodGet, "/api/v1/capacity/summary", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	vendors := data["vendors"].([]interface{})
	if len(vendors) != 1 {
		t.Fatalf("vendors = %d, want 1", len(vendors))
	}
	stat := vendors[0].(map[string]interface{})
	if stat["vendor"].(string) != "dell" {
		t.Errorf("vendor = %v", stat["vendor"])
	}
	if stat["net_spend"].(float64) != 3292 {
		t.Errorf("net_spend = %v, want 3292", stat["net_spend"])
	}
}
