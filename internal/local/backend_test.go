package local_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"quantumtie/internal/domain"
	"quantumtie/internal/local"
)

// TestHelperProcess stands in for the Python runner.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	mode := os.Args[len(os.Args)-1]

	var req map[string]any
	_ = json.NewDecoder(os.Stdin).Decode(&req)

	switch mode {
	case "ok":
		fmt.Printf(`{"counts": {"10 101": 30, "00000": 2}, "backend": "aer_simulator", "num_qubits": 5, "kind": %q}`, req["kind"])
	case "fail":
		fmt.Print(`{"error": "QASM2ParseError: bad token"}`)
	case "crash":
		fmt.Fprintln(os.Stderr, "Traceback (most recent call last):\nModuleNotFoundError: No module named 'qiskit'")
		os.Exit(1)
	case "sleep":
		time.Sleep(30 * time.Second)
	case "transpile":
		cfg, _ := req["configuration"].(map[string]any)
		if req["kind"] != "transpile" || cfg == nil {
			fmt.Printf(`{"error": "unexpected request kind %v"}`, req["kind"])
			break
		}
		_, hasProps := req["properties"]
		out, _ := json.Marshal(map[string]any{
			"qasm":       fmt.Sprintf("OPENQASM 3.0;\n// isa for %v props=%v\n", cfg["backend_name"], hasProps),
			"backend":    cfg["backend_name"],
			"num_qubits": 5,
		})
		os.Stdout.Write(out)
	}
	os.Exit(0)
}

func helper(mode string) func(ctx context.Context, name string, args ...string) *exec.Cmd {
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess", "--", mode)
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1")
		return cmd
	}
}

func waitFinal(t *testing.T, j domain.Job) domain.JobStatus {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		st, err := j.Status(context.Background())
		if err != nil {
			t.Fatalf("status: %v", err)
		}
		if st.Final() {
			return st
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("job did not finish")
	return ""
}

func circuit() domain.Circuit {
	return domain.Circuit{Source: "OPENQASM 2.0;\nqreg q[5];", NumQubits: 5, Shots: 32}
}

func TestSubmit_Done(t *testing.T) {
	dir := t.TempDir()
	r := &local.Runner{Dir: dir, Command: helper("ok")}
	b := local.NewBackend(r, local.Aer, "")

	job, err := b.Submit(context.Background(), circuit())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if st := waitFinal(t, job); st != domain.JobDone {
		t.Fatalf("status = %s", st)
	}
	counts, err := job.Result(context.Background())
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if counts["10101"] != 30 || counts["00000"] != 2 {
		t.Fatalf("counts = %v", counts)
	}

	script, err := os.ReadFile(filepath.Join(dir, "runner.py"))
	if err != nil {
		t.Fatalf("runner script not installed: %v", err)
	}
	if !strings.Contains(string(script), "AerSimulator") {
		t.Fatal("unexpected runner script")
	}
}

func TestSubmit_RunnerError(t *testing.T) {
	for _, mode := range []string{"fail", "crash"} {
		r := &local.Runner{Dir: t.TempDir(), Command: helper(mode)}
		job, err := local.NewBackend(r, local.FakeManila, "").Submit(context.Background(), circuit())
		if err != nil {
			t.Fatalf("%s: submit: %v", mode, err)
		}
		if st := waitFinal(t, job); st != domain.JobError {
			t.Fatalf("%s: status = %s", mode, st)
		}
		_, err = job.Result(context.Background())
		if err == nil {
			t.Fatalf("%s: expected result error", mode)
		}
		if mode == "crash" && !strings.Contains(err.Error(), "No module named") {
			t.Fatalf("crash error lost stderr: %v", err)
		}
	}
}

func TestSubmit_Cancel(t *testing.T) {
	r := &local.Runner{Dir: t.TempDir(), Command: helper("sleep")}
	job, err := local.NewBackend(r, local.Aer, "").Submit(context.Background(), circuit())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := job.Cancel(context.Background()); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if st, _ := job.Status(context.Background()); st != domain.JobCancelled {
		t.Fatalf("status = %s, want cancelled", st)
	}
	if _, err := job.Result(context.Background()); err == nil {
		t.Fatal("expected error for cancelled job")
	}
}

func TestSubmit_Validation(t *testing.T) {
	r := &local.Runner{Dir: t.TempDir(), Command: helper("ok")}

	wide := circuit()
	wide.NumQubits = 12
	if _, err := local.NewBackend(r, local.FakeManila, "").Submit(context.Background(), wide); err == nil {
		t.Fatal("fake_manila should reject 12 qubits")
	}
	if _, err := local.NewBackend(r, local.AerModel, "").Submit(context.Background(), circuit()); err == nil {
		t.Fatal("aer_model without a model should fail")
	}
}

func TestBackend_Names(t *testing.T) {
	r := &local.Runner{}
	cases := map[string]*local.Backend{
		"aer_simulator":                   local.NewBackend(r, local.Aer, ""),
		"fake_manila":                     local.NewBackend(r, local.FakeManila, ""),
		"aer_simulator_from(heron_model)": local.NewBackend(r, local.AerModel, "/cache/heron_model.json"),
	}
	for want, b := range cases {
		if b.Name() != want || !b.Local() || !b.Simulator() {
			t.Fatalf("backend %s: name %s", want, b.Name())
		}
	}
}

func TestResult_NotFinished(t *testing.T) {
	r := &local.Runner{Dir: t.TempDir(), Command: helper("sleep")}
	job, err := local.NewBackend(r, local.Aer, "").Submit(context.Background(), circuit())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	defer job.Cancel(context.Background())
	if _, err := job.Result(context.Background()); !errors.Is(err, local.ErrNotFinished) {
		t.Fatalf("err = %v, want ErrNotFinished", err)
	}
}

func TestTranspile(t *testing.T) {
	r := &local.Runner{Dir: t.TempDir(), Command: helper("transpile")}
	cfg := map[string]any{"backend_name": "ibm_fez", "n_qubits": 156}

	got, err := r.Transpile(context.Background(), circuit().Source, cfg, map[string]any{"qubits": []any{}})
	if err != nil {
		t.Fatalf("transpile: %v", err)
	}
	if got != "OPENQASM 3.0;\n// isa for ibm_fez props=true\n" {
		t.Fatalf("transpiled = %q", got)
	}

	got, err = r.Transpile(context.Background(), circuit().Source, cfg, nil)
	if err != nil || !strings.Contains(got, "props=false") {
		t.Fatalf("transpile without properties = %q, %v", got, err)
	}
}

func TestTranspile_Errors(t *testing.T) {
	r := &local.Runner{Dir: t.TempDir(), Command: helper("fail")}
	if _, err := r.Transpile(context.Background(), circuit().Source, map[string]any{"backend_name": "ibm_fez"}, nil); err == nil {
		t.Fatal("expected runner error")
	}
	if _, err := r.Transpile(context.Background(), circuit().Source, nil, nil); err == nil {
		t.Fatal("expected error without configuration")
	}

	empty := &local.Runner{Dir: t.TempDir(), Command: helper("ok")}
	if _, err := empty.Transpile(context.Background(), circuit().Source, map[string]any{"backend_name": "ibm_fez"}, nil); err == nil {
		t.Fatal("expected error when no circuit comes back")
	}
}
