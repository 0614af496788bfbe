package airtable

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/tourhub/marketplace/internal/core/domain"
)

func TestContentRepository_ListListings(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/appTEST/Listings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		want := `AND({Published} = TRUE(), {Destination Slug} = "lisbon")`
		if got := r.URL.Query().Get("filterByFormula"); got != want {
			t.Errorf("unexpected formula %q", got)
		}
		writeJSON(w, http.StatusOK, `{"records":[{"id":"recL1","fields":{
			"Slug":"sunset-kayak","Title":"Sunset Kayak","Destination Slug":["lisbon"],
			"Price":79.5,"Currency":"EUR","Max Guests":8,"Featured":true,
			"Images":[{"url":"https://cdn.example.com/1.jpg"},{"url":"https://cdn.example.com/2.jpg"}],
			"Provider":["recP1"]}}]}`)
	})
	repo := NewContentRepository(client, ContentTables{Listings: "Listings", Destinations: "Destinations", Blog: "Blog"})

	listings, err := repo.ListListings(context.Background(), domain.ListingFilter{Destination: "lisbon"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(listings))
	}
	l := listings[0]
	if l.Slug != "sunset-kayak" || l.Destination != "lisbon" || l.Price != 79.5 || l.MaxGuests != 8 || !l.Featured {
		t.Fatalf("unexpected listing: %+v", l)
	}
	if len(l.Images) != 2 || l.ProviderRecordID != "recP1" {
		t.Fatalf("unexpected images/provider: %+v", l)
	}
}

func TestContentRepository_FindListingBySlug_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"records":[]}`)
	})
	repo := NewContentRepository(client, ContentTables{Listings: "Listings"})

	if _, err := repo.FindListingBySlug(context.Background(), "nope"); err != domain.ErrListingNotFound {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
}

func TestContentRepository_ListListingsByProvider(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		want := `FIND("recP1", ARRAYJOIN({Provider Record ID}))`
		if got := r.URL.Query().Get("filterByFormula"); got != want {
			t.Errorf("unexpected formula %q", got)
		}
		writeJSON(w, http.StatusOK, `{"records":[{"id":"recL1","fields":{"Slug":"draft"}}]}`)
	})
	repo := NewContentRepository(client, ContentTables{Listings: "Listings"})

	listings, err := repo.ListListingsByProvider(context.Background(), "recP1")
	if err != nil || len(listings) != 1 {
		t.Fatalf("unexpected result: %+v %v", listings, err)
	}
	if listings[0].Images == nil {
		t.Fatalf("expected empty, non-nil images")
	}
}

func TestContentRepository_Destinations(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"records":[{"id":"recD1","fields":{"Slug":"lisbon","Name":"Lisbon","Country":"Portugal","Hero Image":"https://cdn.example.com/l.jpg"}}]}`)
	})
	repo := NewContentRepository(client, ContentTables{Destinations: "Destinations"})

	dests, err := repo.ListDestinations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dests) != 1 || dests[0].Name != "Lisbon" || dests[0].HeroImage != "https://cdn.example.com/l.jpg" {
		t.Fatalf("unexpected destinations: %+v", dests)
	}
}

func TestContentRepository_Blog(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("maxRecords") == "1" {
			if got := r.URL.Query().Get("filterByFormula"); got != `AND({Published} = TRUE(), {Slug} = "packing-list")` {
				t.Errorf("unexpected formula %q", got)
			}
		}
		writeJSON(w, http.StatusOK, `{"records":[{"id":"recB1","fields":{"Slug":"packing-list","Title":"Packing list","Author":["Jo"],"Body":"...","Published At":"2025-03-04"}}]}`)
	})
	repo := NewContentRepository(client, ContentTables{Blog: "Blog"})

	posts, err := repo.ListBlogPosts(context.Background())
	if err != nil || len(posts) != 1 {
		t.Fatalf("unexpected result: %+v %v", posts, err)
	}
	post, err := repo.FindBlogPostBySlug(context.Background(), "packing-list")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.Author != "Jo" || !post.PublishedAt.Equal(time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected post: %+v", post)
	}
}

func TestBookingRepository_FindByID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/appTEST/Bookings/recBK1":
			writeJSON(w, http.StatusOK, `{"id":"recBK1","createdTime":"2025-05-01T09:00:00.000Z","fields":{
				"Reference":"TH-1001","User":["recAlice"],"Listing":["recL1"],"Listing Name":["Sunset Kayak"],
				"Guests":2,"Total Price":159,"Payment Status":"Paid","Contact Name":"Alice B",
				"Contact Email":"a@b.com","Experience Date":"2025-07-14"}}`)
		default:
			writeJSON(w, http.StatusNotFound, `{"error":"NOT_FOUND"}`)
		}
	})
	repo := NewBookingRepository(client, "Bookings")

	b, err := repo.FindByID(context.Background(), "recBK1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.UserRecordID != "recAlice" || b.ListingName != "Sunset Kayak" || b.Guests != 2 || b.Currency != "USD" {
		t.Fatalf("unexpected booking: %+v", b)
	}
	if b.ExperienceDate.Day() != 14 || b.CreatedAt.Month() != time.May {
		t.Fatalf("unexpected dates: %+v", b)
	}

	if _, err := repo.FindByID(context.Background(), "recNope"); err != domain.ErrBookingNotFound {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}
