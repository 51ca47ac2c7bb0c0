package viewdb

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"nyiyui.ca/hato/hakoniwa/camera"
)

func TestStore(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %s", err)
	}
	defer s.Close()

	o := camera.New(mgl32.Vec3{15, 15, 0})
	o.Rotate(3)
	first, err := s.Save(View{Name: "station", Camera: o, Created: time.Unix(100, 0).UTC()})
	if err != nil {
		t.Fatalf("Save: %s", err)
	}
	if first.ID == (uuid.UUID{}) {
		t.Fatalf("no ID assigned")
	}
	second, err := s.Save(View{Name: "overview", Camera: camera.New(mgl32.Vec3{}), Created: time.Unix(200, 0).UTC()})
	if err != nil {
		t.Fatalf("Save: %s", err)
	}

	got, err := s.Get(first.ID)
	if err != nil {
		t.Fatalf("Get: %s", err)
	}
	if diff := cmp.Diff(first, got); diff != "" {
		t.Fatalf("Get (-want +got):\n%s", diff)
	}

	views, err := s.List()
	if err != nil {
		t.Fatalf("List: %s", err)
	}
	if diff := cmp.Diff([]View{first, second}, views); diff != "" {
		t.Fatalf("List (-want +got):\n%s", diff)
	}

	if err := s.Delete(first.ID); err != nil {
		t.Fatalf("Delete: %s", err)
	}
	if _, err := s.Get(first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "views.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %s", err)
	}
	v, err := s.Save(View{Name: "corner", Camera: camera.New(mgl32.Vec3{5, 5, 0})})
	if err != nil {
		t.Fatalf("Save: %s", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %s", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %s", err)
	}
	defer s.Close()
	got, err := s.Get(v.ID)
	if err != nil {
		t.Fatalf("Get: %s", err)
	}
	if got.Name != "corner" || got.Camera != v.Camera || !got.Created.Equal(v.Created) {
		t.Fatalf("expected %+v, got %+v", v, got)
	}
}
