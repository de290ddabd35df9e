package listing

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mgallina/casaviva/internal/db"
)

func testSetup(t *testing.T) (*Repository, *sql.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})

	people := []struct{ username, name string }{
		{"carla", "Carla Bianchi"},
		{"marco", "Marco Rossi"},
	}
	for _, p := range people {
		if _, err := d.Exec(
			"INSERT INTO people (username, email, name, landlord, password) VALUES (?, ?, ?, 1, 'x')",
			p.username, p.username+"@example.com", p.name,
		); err != nil {
			t.Fatalf("insert person %s: %v", p.username, err)
		}
	}

	return NewRepository(d), d
}

func sampleListing(landlord string) *Listing {
	return &Listing{
		Address:     "Via Roma 1, Torino",
		Title:       "Bright two-bedroom flat",
		Description: "Close to the metro.",
		Rooms:       3,
		Type:        Flat,
		Furnished:   true,
		Rent:        850.5,
		Available:   true,
		Landlord:    landlord,
	}
}

func TestCreateAndGet(t *testing.T) {
	repo, _ := testSetup(t)

	created, err := repo.Create(sampleListing("carla"), []string{"a.jpg", "b.jpg"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected non-zero ID")
	}

	raw, err := repo.GetRawByID(created.ID)
	if err != nil {
		t.Fatalf("get raw: %v", err)
	}
	if raw.Landlord != "carla" {
		t.Errorf("landlord = %q, want carla", raw.Landlord)
	}
	if raw.Rent != 850.5 {
		t.Errorf("rent = %v, want 850.5", raw.Rent)
	}

	images, err := repo.ImagesOf(created.ID)
	if err != nil {
		t.Fatalf("images: %v", err)
	}
	if len(images) != 2 || images[0] != "a.jpg" || images[1] != "b.jpg" {
		t.Errorf("images = %v, want [a.jpg b.jpg]", images)
	}
}

func TestCreateValidation(t *testing.T) {
	repo, _ := testSetup(t)

	tests := []struct {
		name   string
		mutate func(*Listing)
	}{
		{"bad type", func(l *Listing) { l.Type = "castle" }},
		{"zero rooms", func(l *Listing) { l.Rooms = 0 }},
		{"negative rent", func(l *Listing) { l.Rent = -1 }},
		{"no landlord", func(l *Listing) { l.Landlord = "" }},
	}
	for _, tt := range tests {
		l := sampleListing("carla")
		tt.mutate(l)
		if _, err := repo.Create(l, nil); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestCreateTooManyImages(t *testing.T) {
	repo, _ := testSetup(t)

	paths := []string{"1.jpg", "2.jpg", "3.jpg", "4.jpg", "5.jpg", "6.jpg"}
	if _, err := repo.Create(sampleListing("carla"), paths); err == nil {
		t.Fatal("expected error for more than 5 images")
	}
}

func TestGetByIDDecorated(t *testing.T) {
	repo, _ := testSetup(t)

	created, err := repo.Create(sampleListing("carla"), []string{"front.jpg"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	view, err := repo.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.Rooms != "3" {
		t.Errorf("rooms = %q, want %q", view.Rooms, "3")
	}
	if view.Type != "Appartamento" {
		t.Errorf("type = %q, want Appartamento", view.Type)
	}
	if view.Furniture != "Arredato" {
		t.Errorf("furniture = %q, want Arredato", view.Furniture)
	}
	if view.Rent != "850,50" {
		t.Errorf("rent = %q, want 850,50", view.Rent)
	}
	if view.LandlordName != "Carla Bianchi" {
		t.Errorf("landlord name = %q, want Carla Bianchi", view.LandlordName)
	}
	if view.Image != "front.jpg" {
		t.Errorf("image = %q, want front.jpg", view.Image)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo, _ := testSetup(t)

	_, err := repo.GetByID(9999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestListPublicFiltersUnavailable(t *testing.T) {
	repo, _ := testSetup(t)

	if _, err := repo.Create(sampleListing("carla"), []string{"a.jpg"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	hidden := sampleListing("marco")
	hidden.Available = false
	if _, err := repo.Create(hidden, nil); err != nil {
		t.Fatalf("create hidden: %v", err)
	}

	views, err := repo.ListPublic(SortByPrice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("got %d listings, want 1", len(views))
	}
	if views[0].Landlord != "carla" {
		t.Errorf("listing owner = %q, want carla", views[0].Landlord)
	}
}

func TestListPublicSortOrders(t *testing.T) {
	repo, _ := testSetup(t)

	cases := []struct {
		rooms int
		rent  float64
	}{
		{7, 400}, // rooms label clamps to "5+" but must sort numerically
		{2, 900},
		{4, 650},
	}
	for _, s := range cases {
		l := sampleListing("carla")
		l.Rooms = s.rooms
		l.Rent = s.rent
		if _, err := repo.Create(l, nil); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	byPrice, err := repo.ListPublic(SortByPrice)
	if err != nil {
		t.Fatalf("list by price: %v", err)
	}
	wantRents := []string{"900,00", "650,00", "400,00"}
	for i, want := range wantRents {
		if byPrice[i].Rent != want {
			t.Errorf("price sort [%d] = %q, want %q", i, byPrice[i].Rent, want)
		}
	}

	byRooms, err := repo.ListPublic(SortByRooms)
	if err != nil {
		t.Fatalf("list by rooms: %v", err)
	}
	wantRooms := []string{"2", "4", "5+"}
	for i, want := range wantRooms {
		if byRooms[i].Rooms != want {
			t.Errorf("rooms sort [%d] = %q, want %q", i, byRooms[i].Rooms, want)
		}
	}
}

func TestUpdatePreservesImagesOnEmptySet(t *testing.T) {
	repo, _ := testSetup(t)

	created, err := repo.Create(sampleListing("carla"), []string{"a.jpg", "b.jpg"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.Title = "Renamed flat"
	replaced, err := repo.Update(created, nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(replaced) != 0 {
		t.Errorf("replaced = %v, want none", replaced)
	}

	raw, err := repo.GetRawByID(created.ID)
	if err != nil {
		t.Fatalf("get raw: %v", err)
	}
	if raw.Title != "Renamed flat" {
		t.Errorf("title = %q, want %q", raw.Title, "Renamed flat")
	}

	images, err := repo.ImagesOf(created.ID)
	if err != nil {
		t.Fatalf("images: %v", err)
	}
	if len(images) != 2 {
		t.Errorf("got %d images, want 2 untouched", len(images))
	}
}

func TestUpdateReplacesImages(t *testing.T) {
	repo, _ := testSetup(t)

	created, err := repo.Create(sampleListing("carla"), []string{"old1.jpg", "old2.jpg"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	replaced, err := repo.Update(created, []string{"new.jpg"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(replaced) != 2 {
		t.Fatalf("replaced = %v, want the two old paths", replaced)
	}

	images, err := repo.ImagesOf(created.ID)
	if err != nil {
		t.Fatalf("images: %v", err)
	}
	if len(images) != 1 || images[0] != "new.jpg" {
		t.Errorf("images = %v, want [new.jpg]", images)
	}
}

func TestUpdateWrongLandlordReportsNotFound(t *testing.T) {
	repo, _ := testSetup(t)

	created, err := repo.Create(sampleListing("carla"), nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.Landlord = "marco"
	created.Title = "Hijacked"
	_, err = repo.Update(created, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}

	raw, err := repo.GetRawByID(created.ID)
	if err != nil {
		t.Fatalf("get raw: %v", err)
	}
	if raw.Title == "Hijacked" {
		t.Error("update by non-owner must not change the row")
	}
}

func TestListByLandlord(t *testing.T) {
	repo, _ := testSetup(t)

	if _, err := repo.Create(sampleListing("carla"), nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	hidden := sampleListing("carla")
	hidden.Available = false
	if _, err := repo.Create(hidden, nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(sampleListing("marco"), nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	mine, err := repo.ListByLandlord("carla")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("got %d listings, want 2 (including unavailable)", len(mine))
	}
}

func TestOwnerOf(t *testing.T) {
	repo, _ := testSetup(t)

	created, err := repo.Create(sampleListing("carla"), nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	owner, err := repo.OwnerOf(created.ID)
	if err != nil {
		t.Fatalf("owner: %v", err)
	}
	if owner != "carla" {
		t.Errorf("owner = %q, want carla", owner)
	}

	if _, err := repo.OwnerOf(9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
