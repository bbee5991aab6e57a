package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/railreport/pkg/errors"
	"github.com/matzehuels/railreport/pkg/material"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(
		material.Record{MaterialID: "B002", FittingType: "Liner"},
		material.Record{MaterialID: "A001", FittingType: "Elastic Rail Clip"},
	)

	rec, err := s.Get(ctx, " A001 ")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if rec.FittingType != "Elastic Rail Clip" {
		t.Errorf("FittingType = %q", rec.FittingType)
	}

	rec.FittingType = "mutated"
	again, _ := s.Get(ctx, "A001")
	if again.FittingType != "Elastic Rail Clip" {
		t.Error("Get returned a record aliasing the stored one")
	}

	if _, err := s.Get(ctx, "ZZZ"); !errors.Is(err, errors.ErrCodeMaterialNotFound) {
		t.Errorf("Get(missing) error = %v, want MATERIAL_NOT_FOUND", err)
	}
	if _, err := s.Get(ctx, "../etc"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Get(traversal) error = %v, want INVALID_INPUT", err)
	}
	if err := s.Put(material.Record{}); err == nil {
		t.Error("Put(record without id) should fail")
	}

	list, err := s.List(ctx, 1)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(list) != 1 || list[0].MaterialID != "A001" {
		t.Errorf("List(1) = %+v, want [A001]", list)
	}
}

func TestDirStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, dir, "XYZ0007.json", `{"materialId":"XYZ0007","failureCount":3,"unknownKey":true}`)
	writeFile(t, dir, "ABC1234.yaml", "materialId: ABC1234\ndepotCode: NDLS-04\n")
	writeFile(t, dir, "NOID01.toml", "fittingType = \"Sleeper\"\n")
	writeFile(t, dir, "broken.json", "{")
	writeFile(t, dir, "README.md", "ignored")

	s, err := NewDirStore(dir, nil)
	if err != nil {
		t.Fatalf("NewDirStore() error: %v", err)
	}

	tests := []struct {
		id       string
		wantCode errors.Code
		check    func(*material.Record) bool
	}{
		{"XYZ0007", "", func(r *material.Record) bool { return r.FailureCount != nil && *r.FailureCount == 3 }},
		{"ABC1234", "", func(r *material.Record) bool { return r.DepotCode == "NDLS-04" }},
		{"NOID01", "", func(r *material.Record) bool { return r.MaterialID == "NOID01" && r.FittingType == "Sleeper" }},
		{"MISSING", errors.ErrCodeMaterialNotFound, nil},
		{"broken", errors.ErrCodeInvalidFormat, nil},
		{"", errors.ErrCodeInvalidInput, nil},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			rec, err := s.Get(ctx, tt.id)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("Get(%q) error = %v, want %s", tt.id, err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Get(%q) error: %v", tt.id, err)
			}
			if !tt.check(rec) {
				t.Errorf("Get(%q) = %+v", tt.id, rec)
			}
		})
	}

	list, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	var ids []string
	for _, r := range list {
		ids = append(ids, r.MaterialID)
	}
	want := []string{"ABC1234", "NOID01", "XYZ0007"}
	if len(ids) != len(want) {
		t.Fatalf("List() ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestNewDirStoreRejectsFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.json")
	writeFile(t, filepath.Dir(f), "file.json", "{}")
	if _, err := NewDirStore(f, nil); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("NewDirStore(file) error = %v, want INVALID_PATH", err)
	}
	if _, err := NewDirStore(filepath.Join(t.TempDir(), "nope"), nil); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("NewDirStore(missing) error = %v, want INVALID_PATH", err)
	}
}

func TestMongoStoreRequiresURI(t *testing.T) {
	if _, err := NewMongoStore(context.Background(), MongoConfig{}); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("NewMongoStore() error = %v, want INVALID_CONFIG", err)
	}
}

func TestMongoStoreIntegration(t *testing.T) {
	uri := os.Getenv("RAILREPORT_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("RAILREPORT_TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	coll := "materials_test_" + time.Now().Format("150405")
	s, err := NewMongoStore(ctx, MongoConfig{URI: uri, Database: "railreport_test", Collection: coll})
	if err != nil {
		t.Fatalf("NewMongoStore() error: %v", err)
	}
	defer s.Close(ctx)
	defer s.coll.Drop(ctx)

	if _, err := s.coll.InsertOne(ctx, material.Record{MaterialID: "XYZ0007", FailureCount: material.Int(3)}); err != nil {
		t.Fatalf("InsertOne: %v", err)
	}

	rec, err := s.Get(ctx, "XYZ0007")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if rec.FailureCount == nil || *rec.FailureCount != 3 {
		t.Errorf("FailureCount = %v, want 3", rec.FailureCount)
	}
	if _, err := s.Get(ctx, "MISSING"); !errors.Is(err, errors.ErrCodeMaterialNotFound) {
		t.Errorf("Get(missing) error = %v", err)
	}
	list, err := s.List(ctx, 10)
	if err != nil || len(list) != 1 {
		t.Errorf("List() = %v, %v", list, err)
	}
}
