package models_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"quantumtie/internal/domain"
	"quantumtie/internal/runtime"
	"quantumtie/internal/runtime/runtimetest"
	"quantumtie/internal/services/models"
	"quantumtie/internal/store"
)

func setup(t *testing.T, devices ...string) (*models.Service, *store.ModelFileStore) {
	t.Helper()
	fake := runtimetest.New()
	for _, d := range devices {
		fake.AddDevice(runtimetest.Device{Name: d, Qubits: 133, Operational: true})
	}
	srv := httptest.NewServer(fake.Handler())
	t.Cleanup(srv.Close)

	client := runtime.New(domain.Account{Channel: domain.ChannelQuantum, Token: "t"}, runtime.Config{BaseURL: srv.URL, HTTP: srv.Client()})
	ms := store.NewModelFileStore(filepath.Join(t.TempDir(), "models"))
	connect := func(context.Context) (domain.RuntimeService, error) { return client, nil }
	return models.New(ms, connect, nil), ms
}

func TestUpdate_SkipsFailures(t *testing.T) {
	svc, ms := setup(t, "ibm_torino", "ibm_brisbane")

	recs, err := svc.Update(context.Background(), nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("updated %d records, want 2 (sherbrooke is missing)", len(recs))
	}

	rec, ok, err := ms.LoadModel("heron_model.json")
	if err != nil || !ok {
		t.Fatalf("heron model not cached: ok=%v err=%v", ok, err)
	}
	if rec.Backend != "ibm_torino" || rec.Properties["backend_name"] != "ibm_torino" || rec.Configuration == nil {
		t.Fatalf("unexpected record %+v", rec)
	}

	list, err := svc.List()
	if err != nil || len(list) != 2 {
		t.Fatalf("list = %v, %v", list, err)
	}
}

func TestUpdate_AllFail(t *testing.T) {
	svc, _ := setup(t)
	_, err := svc.Update(context.Background(), map[string]string{"ibm_nowhere": ""})
	if !errors.Is(err, models.ErrNoModelsUpdated) {
		t.Fatalf("err = %v", err)
	}
}

func TestUpdate_ConnectError(t *testing.T) {
	boom := errors.New("no account")
	svc := models.New(store.NewModelFileStore(t.TempDir()), func(context.Context) (domain.RuntimeService, error) { return nil, boom }, nil)
	if _, err := svc.Update(context.Background(), nil); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestFind(t *testing.T) {
	svc, _ := setup(t, "ibm_torino", "ibm_fez")
	if _, err := svc.Update(context.Background(), map[string]string{"ibm_torino": "heron_model.json", "ibm_fez": ""}); err != nil {
		t.Fatalf("update: %v", err)
	}
	for _, name := range []string{"heron_model", "heron_model.json", "ibm_torino"} {
		rec, ok, err := svc.Find(name)
		if err != nil || !ok || rec.Backend != "ibm_torino" {
			t.Fatalf("Find(%q) = %+v, %v, %v", name, rec, ok, err)
		}
	}
	if rec, ok, _ := svc.Find("ibm_fez"); !ok || filepath.Base(svc.Path(rec)) != "ibm_fez.json" {
		t.Fatalf("Find(ibm_fez) = %+v, %v", rec, ok)
	}
	if _, ok, _ := svc.Find("ibm_unknown"); ok {
		t.Fatal("unknown model found")
	}
}
