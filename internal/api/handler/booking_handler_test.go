package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tourhub/marketplace/internal/api/middleware"
	"github.com/tourhub/marketplace/internal/core/domain"
)

type stubBookingService struct {
	getFn     func(ctx context.Context, id string, caller *domain.Identity) (*domain.Booking, error)
	voucherFn func(ctx context.Context, id string, caller *domain.Identity) ([]byte, error)
}

func (s *stubBookingService) GetBooking(ctx context.Context, id string, caller *domain.Identity) (*domain.Booking, error) {
	return s.getFn(ctx, id, caller)
}

func (s *stubBookingService) Voucher(ctx context.Context, id string, caller *domain.Identity) ([]byte, error) {
	return s.voucherFn(ctx, id, caller)
}

func TestBookingHandler_Get(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookingService{
		getFn: func(_ context.Context, id string, caller *domain.Identity) (*domain.Booking, error) {
			if id != "recBK1" || caller.RecordID != "recAlice" {
				t.Fatalf("unexpected args: %s %+v", id, caller)
			}
			return &domain.Booking{ID: id, Reference: "TH-1001"}, nil
		},
	}
	handler := NewBookingHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("recBK1")
	middleware.SetIdentity(c, &domain.Identity{UserID: "usr_1", RecordID: "recAlice"})

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestBookingHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookingService{
		getFn: func(context.Context, string, *domain.Identity) (*domain.Booking, error) {
			return nil, domain.ErrBookingNotFound
		},
	}
	handler := NewBookingHandler(stub)

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	middleware.SetIdentity(c, &domain.Identity{UserID: "usr_1"})

	if err := handler.Get(c); err != domain.ErrBookingNotFound {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestBookingHandler_Voucher(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookingService{
		voucherFn: func(context.Context, string, *domain.Identity) ([]byte, error) {
			return []byte("%PDF-1.3"), nil
		},
	}
	handler := NewBookingHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("recBK1")
	middleware.SetIdentity(c, &domain.Identity{UserID: "usr_1"})

	if err := handler.Voucher(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="voucher-recBK1.pdf"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if rec.Body.String() != "%PDF-1.3" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestBookingHandler_RequiresIdentity(t *testing.T) {
	e := newTestEcho()
	handler := NewBookingHandler(&stubBookingService{})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if err := handler.Get(c); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
