package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/salonhq/ledger/internal/domain/models"
	repo "github.com/salonhq/ledger/internal/repository/mongodb"
	"github.com/salonhq/ledger/internal/service/reporting"
)

// stubReportingStore serves a fixed set of March 2024 records.
type stubReportingStore struct{}

func (stubReportingStore) marchRecords() []models.ServiceRecord {
	staff := primitive.NewObjectID()
	return []models.ServiceRecord{
		{ID: primitive.NewObjectID(), StaffID: staff, Amount: 80, PaymentType: "cash", OccurredAt: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)},
		{ID: primitive.NewObjectID(), StaffID: staff, Amount: 20, PaymentType: "online", OccurredAt: time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC)},
	}
}

func (s stubReportingStore) inRange(f repo.ServiceFilter) []models.ServiceRecord {
	var out []models.ServiceRecord
	for _, r := range s.marchRecords() {
		if r.OccurredAt.Before(f.Start) || r.OccurredAt.After(f.End) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (s stubReportingStore) CountServices(_ context.Context, f repo.ServiceFilter) (int64, error) {
	return int64(len(s.inRange(f))), nil
}

func (s stubReportingStore) SumServiceAmounts(_ context.Context, f repo.ServiceFilter) (float64, error) {
	var total float64
	for _, r := range s.inRange(f) {
		total += r.Amount
	}
	return total, nil
}

func (s stubReportingStore) FindServicesPage(_ context.Context, f repo.ServiceFilter, skip, limit int64) ([]models.ServiceWithStaff, error) {
	var out []models.ServiceWithStaff
	for _, r := range s.inRange(f) {
		out = append(out, models.ServiceWithStaff{ServiceRecord: r, StaffUsername: "priya", StaffEmail: "priya@example.com"})
	}
	return out, nil
}

func (s stubReportingStore) GroupServicesByDay(_ context.Context, f repo.ServiceFilter) ([]models.DayGroup, error) {
	byDay := map[string]*models.DayGroup{}
	for _, r := range s.inRange(f) {
		key := r.OccurredAt.UTC().Format("2006-01-02")
		g, ok := byDay[key]
		if !ok {
			g = &models.DayGroup{Day: key}
			byDay[key] = g
		}
		g.TotalAmount += r.Amount
		g.Count++
		g.StaffIDs = append(g.StaffIDs, r.StaffID)
	}
	var out []models.DayGroup
	for _, g := range byDay {
		out = append(out, *g)
	}
	return out, nil
}

func (stubReportingStore) SumExpensesForMonth(_ context.Context, year, month int) (float64, error) {
	if year == 2024 && month == 3 {
		return 120, nil
	}
	return 0, nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := reporting.NewService(stubReportingStore{}, time.UTC, nil)
	h := NewReportHandler(svc, nil)

	r := gin.New()
	r.GET("/user/all-services", h.ListServices)
	r.GET("/user/graph-services", h.GraphServices)
	r.GET("/user/profit", h.MonthlyProfit)
	return r
}

func TestMonthlyProfitEndpoint(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user/profit?year=2024&month=3", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var report models.ProfitReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("cannot decode body: %v", err)
	}
	if report.TotalServices != 100 || report.TotalExpenses != 120 || report.Profit != -20 {
		t.Errorf("report = %+v, want services=100 expenses=120 profit=-20", report)
	}
}

func TestMonthlyProfitEndpointRequiresParams(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user/profit?year=2024", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGraphServicesEndpointGapFills(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user/graph-services?startDate=2024-03-10&endDate=2024-03-12", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Days []models.DayBucket `json:"days"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("cannot decode body: %v", err)
	}
	if len(body.Days) != 3 {
		t.Fatalf("got %d days, want 3", len(body.Days))
	}
	if body.Days[1].Date != "2024-03-11" || body.Days[1].Count != 0 {
		t.Errorf("middle day = %+v, want gap-filled 2024-03-11", body.Days[1])
	}
}

func TestGraphServicesEndpointRejectsBadRange(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user/graph-services?startDate=2024-03-12&endDate=2024-03-10", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestListServicesEndpointNotFound(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user/all-services?startDate=2030-01-01&endDate=2030-01-07", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestListServicesEndpointTotals(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user/all-services?page=1&limit=10&startDate=2024-03-01&endDate=2024-03-31", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Total       int64   `json:"total"`
		TotalAmount float64 `json:"totalAmount"`
		Page        int64   `json:"page"`
		Limit       int64   `json:"limit"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("cannot decode body: %v", err)
	}
	if body.Total != 2 || body.TotalAmount != 100 || body.Page != 1 || body.Limit != 10 {
		t.Errorf("body = %+v, want total=2 totalAmount=100 page=1 limit=10", body)
	}
}
