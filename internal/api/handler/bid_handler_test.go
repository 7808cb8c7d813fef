package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskbid/marketplace/internal/core/domain"
	"github.com/taskbid/marketplace/internal/core/ports"
)

type stubBidService struct {
	submitFn       func(ctx context.Context, input ports.SubmitBidInput) (*domain.Bid, error)
	listForTaskFn  func(ctx context.Context, taskID string) ([]*domain.Bid, error)
	listBySellerFn func(ctx context.Context, seller string) ([]*domain.Bid, error)
}

func (s *stubBidService) Submit(ctx context.Context, input ports.SubmitBidInput) (*domain.Bid, error) {
	return s.submitFn(ctx, input)
}

func (s *stubBidService) ListForTask(ctx context.Context, taskID string) ([]*domain.Bid, error) {
	return s.listForTaskFn(ctx, taskID)
}

func (s *stubBidService) ListBySeller(ctx context.Context, seller string) ([]*domain.Bid, error) {
	return s.listBySellerFn(ctx, seller)
}

func TestBidHandler_Submit_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubBidService{
		submitFn: func(ctx context.Context, input ports.SubmitBidInput) (*domain.Bid, error) {
			if input.TaskID != "TSK-0000000A" || input.Seller != "bob" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Bid{
				ID: "BID-0000000B", TaskID: input.TaskID, TaskTitle: "Fix bug",
				Seller: input.Seller, Message: input.Message,
			}, nil
		},
	}
	handler := NewBidHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/v1/tasks/TSK-0000000A/bids", strings.NewReader(`{"message":"I can do it"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "bob")
	c.SetParamNames("id")
	c.SetParamValues("TSK-0000000A")

	if err := handler.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp bidResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != "BID-0000000B" || resp.Seller != "bob" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestBidHandler_Submit_SelfBid(t *testing.T) {
	e := newTestEcho()
	stub := &stubBidService{
		submitFn: func(ctx context.Context, input ports.SubmitBidInput) (*domain.Bid, error) {
			return nil, domain.ErrSelfBid
		},
	}
	handler := NewBidHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/v1/tasks/TSK-0000000A/bids", strings.NewReader(`{"message":"me"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "alice")
	c.SetParamNames("id")
	c.SetParamValues("TSK-0000000A")

	_ = handler.Submit(c)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestBidHandler_Submit_Duplicate(t *testing.T) {
	e := newTestEcho()
	stub := &stubBidService{
		submitFn: func(ctx context.Context, input ports.SubmitBidInput) (*domain.Bid, error) {
			return nil, domain.ErrDuplicateBid
		},
	}
	handler := NewBidHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/v1/tasks/TSK-0000000A/bids", strings.NewReader(`{"message":"again"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "bob")
	c.SetParamNames("id")
	c.SetParamValues("TSK-0000000A")

	_ = handler.Submit(c)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestBidHandler_Submit_EmptyMessage(t *testing.T) {
	e := newTestEcho()
	stub := &stubBidService{
		submitFn: func(ctx context.Context, input ports.SubmitBidInput) (*domain.Bid, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewBidHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/v1/tasks/TSK-0000000A/bids", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "bob")
	c.SetParamNames("id")
	c.SetParamValues("TSK-0000000A")

	_ = handler.Submit(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestBidHandler_ListForTask(t *testing.T) {
	e := newTestEcho()
	stub := &stubBidService{
		listForTaskFn: func(ctx context.Context, taskID string) ([]*domain.Bid, error) {
			return []*domain.Bid{
				{ID: "BID-00000001", TaskID: taskID, Seller: "bob", Message: "first"},
				{ID: "BID-00000002", TaskID: taskID, Seller: "carol", Message: "second"},
			}, nil
		},
	}
	handler := NewBidHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/tasks/TSK-0000000A/bids", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "alice")
	c.SetParamNames("id")
	c.SetParamValues("TSK-0000000A")

	if err := handler.ListForTask(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp listBidsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 2 || resp.Data[0].Seller != "bob" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
