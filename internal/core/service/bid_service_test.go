package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/taskbid/marketplace/internal/core/domain"
	"github.com/taskbid/marketplace/internal/core/ports"
)

func TestBidService_Submit_Success(t *testing.T) {
	taskRepo := newStubTaskRepo()
	bidRepo := newStubBidRepo()
	engine := newTestEngine(taskRepo, bidRepo, nil)
	svc := NewBidService(bidRepo, taskRepo, discardLogger)

	task := mustCreateTask(t, engine, "alice", "Fix bug", 10)

	bid, err := svc.Submit(context.Background(), ports.SubmitBidInput{
		TaskID: task.ID, Seller: "bob", Message: "I can do it",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !strings.HasPrefix(bid.ID, "BID-") || len(bid.ID) != len("BID-")+16 {
		t.Errorf("bid id format wrong: %s", bid.ID)
	}
	if bid.TaskTitle != "Fix bug" {
		t.Errorf("bid must carry the task title, got %q", bid.TaskTitle)
	}
	if bid.CreatedAt.IsZero() {
		t.Error("CreatedAt must not be zero")
	}
}

func TestBidService_Submit_Duplicate(t *testing.T) {
	taskRepo := newStubTaskRepo()
	bidRepo := newStubBidRepo()
	engine := newTestEngine(taskRepo, bidRepo, nil)
	svc := NewBidService(bidRepo, taskRepo, discardLogger)

	task := mustCreateTask(t, engine, "alice", "Fix bug", 10)

	input := ports.SubmitBidInput{TaskID: task.ID, Seller: "bob", Message: "first"}
	if _, err := svc.Submit(context.Background(), input); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	input.Message = "second"
	if _, err := svc.Submit(context.Background(), input); !errors.Is(err, domain.ErrDuplicateBid) {
		t.Fatalf("expected ErrDuplicateBid, got %v", err)
	}
}

func TestBidService_Submit_SelfBid(t *testing.T) {
	taskRepo := newStubTaskRepo()
	bidRepo := newStubBidRepo()
	engine := newTestEngine(taskRepo, bidRepo, nil)
	svc := NewBidService(bidRepo, taskRepo, discardLogger)

	task := mustCreateTask(t, engine, "alice", "Fix bug", 10)

	_, err := svc.Submit(context.Background(), ports.SubmitBidInput{
		TaskID: task.ID, Seller: "alice", Message: "me please",
	})
	if !errors.Is(err, domain.ErrSelfBid) {
		t.Fatalf("expected ErrSelfBid, got %v", err)
	}
}

func TestBidService_Submit_TaskNotOpen(t *testing.T) {
	taskRepo := newStubTaskRepo()
	bidRepo := newStubBidRepo()
	engine := newTestEngine(taskRepo, bidRepo, nil)
	svc := NewBidService(bidRepo, taskRepo, discardLogger)

	task := mustCreateTask(t, engine, "alice", "Fix bug", 10)
	mustBid(t, bidRepo, task.ID, task.Title, "bob")
	if _, err := engine.AcceptBid(context.Background(), task.ID, "bob", "alice"); err != nil {
		t.Fatalf("accept: %v", err)
	}

	_, err := svc.Submit(context.Background(), ports.SubmitBidInput{
		TaskID: task.ID, Seller: "carol", Message: "too late",
	})
	if !errors.Is(err, domain.ErrTaskNotOpen) {
		t.Fatalf("expected ErrTaskNotOpen, got %v", err)
	}
}

func TestBidService_Submit_UnknownTask(t *testing.T) {
	taskRepo := newStubTaskRepo()
	bidRepo := newStubBidRepo()
	svc := NewBidService(bidRepo, taskRepo, discardLogger)

	_, err := svc.Submit(context.Background(), ports.SubmitBidInput{
		TaskID: "TSK-DEADBEEF", Seller: "bob", Message: "hello",
	})
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestBidService_ListForTask_PreservesOrder(t *testing.T) {
	taskRepo := newStubTaskRepo()
	bidRepo := newStubBidRepo()
	engine := newTestEngine(taskRepo, bidRepo, nil)
	svc := NewBidService(bidRepo, taskRepo, discardLogger)

	task := mustCreateTask(t, engine, "alice", "Fix bug", 10)
	for _, seller := range []string{"bob", "carol", "dave"} {
		if _, err := svc.Submit(context.Background(), ports.SubmitBidInput{
			TaskID: task.ID, Seller: seller, Message: "bid from " + seller,
		}); err != nil {
			t.Fatalf("submit for %s: %v", seller, err)
		}
	}

	bids, err := svc.ListForTask(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(bids) != 3 {
		t.Fatalf("expected 3 bids, got %d", len(bids))
	}
	for i, seller := range []string{"bob", "carol", "dave"} {
		if bids[i].Seller != seller {
			t.Errorf("position %d: expected %s, got %s", i, seller, bids[i].Seller)
		}
	}
}

func TestBidService_ListBySeller(t *testing.T) {
	taskRepo := newStubTaskRepo()
	bidRepo := newStubBidRepo()
	engine := newTestEngine(taskRepo, bidRepo, nil)
	svc := NewBidService(bidRepo, taskRepo, discardLogger)

	first := mustCreateTask(t, engine, "alice", "Fix bug", 5)
	second := mustCreateTask(t, engine, "alice", "Write docs", 5)

	for _, taskID := range []string{first.ID, second.ID} {
		if _, err := svc.Submit(context.Background(), ports.SubmitBidInput{
			TaskID: taskID, Seller: "bob", Message: "on it",
		}); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	if _, err := svc.Submit(context.Background(), ports.SubmitBidInput{
		TaskID: first.ID, Seller: "carol", Message: "me too",
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	mine, err := svc.ListBySeller(context.Background(), "bob")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 bids for bob, got %d", len(mine))
	}
}
