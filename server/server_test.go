package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Daniel-dg-conta1/math-Suite/config"
	"github.com/Daniel-dg-conta1/math-Suite/exercise"
	"github.com/Daniel-dg-conta1/math-Suite/paginate"
)

func floatEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Generator.Seed = 11
	return New(cfg, nil)
}

func do(t *testing.T, s *Server, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, data
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/health/live", "/health/ready"} {
		resp, _ := do(t, s, http.MethodGet, path, "")
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: status %d", path, resp.StatusCode)
		}
	}
}

func TestResolve(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name string
		body string
		x, y float64
		mag  float64
	}{
		{"polar", `{"kind":"polar","p1":10,"p2":"30"}`, 8.660, 5, 10},
		{"cartesian text", `{"kind":"cartesian","p1":"3","p2":"4"}`, 3, 4, 5},
		{"half typed", `{"kind":"cartesian","p1":"-","p2":"4"}`, 0, 4, 4},
		{"legs", `{"kind":"legs","p1":10,"p2":3,"p3":4}`, 6, 8, 10},
		{"default kind", `{"p1":1,"p2":1}`, 1, 1, math.Sqrt2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := do(t, s, http.MethodPost, "/api/resolve", tt.body)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status %d: %s", resp.StatusCode, data)
			}
			var out resolveResponse
			if err := json.Unmarshal(data, &out); err != nil {
				t.Fatal(err)
			}
			if !floatEqual(out.X, tt.x) || !floatEqual(out.Y, tt.y) || !floatEqual(out.Magnitude, tt.mag) {
				t.Errorf("got (%v, %v) |%v|, want (%v, %v) |%v|", out.X, out.Y, out.Magnitude, tt.x, tt.y, tt.mag)
			}
		})
	}
}

func TestResolveRotation(t *testing.T) {
	s := newTestServer(t)
	_, data := do(t, s, http.MethodPost, "/api/resolve", `{"kind":"cartesian","p1":0,"p2":10,"rotation":90}`)
	var out resolveResponse
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if !floatEqual(out.Rotated.X, 10) || !floatEqual(out.Rotated.Y, 0) {
		t.Errorf("rotated = %+v, want (10, 0)", out.Rotated)
	}
	if out.Display.Angle != "90" || out.Display.Magnitude != "10" {
		t.Errorf("display = %+v", out.Display)
	}
}

func TestResolveErrors(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		body string
		code int
	}{
		{"", http.StatusBadRequest},
		{"{", http.StatusBadRequest},
		{`{"kind":"spherical"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		resp, data := do(t, s, http.MethodPost, "/api/resolve", tt.body)
		if resp.StatusCode != tt.code {
			t.Errorf("body %q: status %d, want %d", tt.body, resp.StatusCode, tt.code)
		}
		if !bytes.Contains(data, []byte(`"error"`)) {
			t.Errorf("body %q: no error field in %s", tt.body, data)
		}
	}
}

func TestInverse(t *testing.T) {
	s := newTestServer(t)
	_, data := do(t, s, http.MethodPost, "/api/inverse", `{"kind":"polar","x":0,"y":5}`)
	var out inverseResponse
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Kind != "polar" || len(out.Params) != 2 || !floatEqual(out.Params[0], 5) || !floatEqual(out.Params[1], 90) {
		t.Errorf("inverse = %+v", out)
	}
}

func TestSolve(t *testing.T) {
	s := newTestServer(t)
	resp, data := do(t, s, http.MethodPost, "/api/solve", `{"case":"SSS","v1":3,"v2":4,"v3":5}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, data)
	}
	var out struct {
		Solution map[string]any `json:"solution"`
		Rounded  map[string]any `json:"rounded"`
		Given    []struct {
			Label string `json:"label"`
		} `json:"given"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Rounded["C"].(float64) != 90 || out.Solution["area"].(float64) != 6 {
		t.Errorf("solution = %v", out.Solution)
	}
	if len(out.Given) != 3 || out.Given[0].Label != "a" {
		t.Errorf("given = %+v", out.Given)
	}
}

func TestSolveStatus(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name string
		body string
		code int
	}{
		{"triangle inequality", `{"case":"SSS","v1":1,"v2":2,"v3":10}`, http.StatusUnprocessableEntity},
		{"angle sum", `{"case":"ASA","v1":100,"v2":5,"v3":90}`, http.StatusUnprocessableEntity},
		{"unknown case", `{"case":"SSA","v1":1,"v2":2,"v3":3}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := do(t, s, http.MethodPost, "/api/solve", tt.body)
			if resp.StatusCode != tt.code {
				t.Errorf("status %d, want %d: %s", resp.StatusCode, tt.code, data)
			}
		})
	}
}

func TestVectorExercises(t *testing.T) {
	s := newTestServer(t)
	resp, data := do(t, s, http.MethodPost, "/api/exercises/vectors", `{"count":4,"seed":3,"kinds":["missing"]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, data)
	}
	var b exercise.Batch[exercise.VectorExercise]
	if err := json.Unmarshal(data, &b); err != nil {
		t.Fatal(err)
	}
	if b.Requested != 4 || len(b.Items)+b.Dropped != 4 {
		t.Errorf("batch requested %d, %d items, %d dropped", b.Requested, len(b.Items), b.Dropped)
	}
	for _, ex := range b.Items {
		if ex.Kind != exercise.KindMissing || ex.Target == nil {
			t.Errorf("exercise %d: kind %q, target %v", ex.Number, ex.Kind, ex.Target)
		}
	}

	_, again := do(t, s, http.MethodPost, "/api/exercises/vectors", `{"count":4,"seed":3,"kinds":["missing"]}`)
	if !bytes.Equal(data, again) {
		t.Error("same seed should produce the same batch")
	}
}

func TestExercisesBadConfig(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		path string
		body string
	}{
		{"/api/exercises/vectors", `{"kinds":["7"]}`},
		{"/api/exercises/vectors", `{"count":100000}`},
		{"/api/exercises/triangles", `{"cases":["SSA"]}`},
		{"/api/exercises/triangles", `{"minSide":9,"maxSide":2}`},
	}
	for _, tt := range tests {
		resp, data := do(t, s, http.MethodPost, tt.path, tt.body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s %s: status %d: %s", tt.path, tt.body, resp.StatusCode, data)
		}
	}
}

func TestTriangleExercisesDefaults(t *testing.T) {
	s := newTestServer(t)
	resp, data := do(t, s, http.MethodPost, "/api/exercises/triangles", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, data)
	}
	var b exercise.Batch[exercise.TriangleExercise]
	if err := json.Unmarshal(data, &b); err != nil {
		t.Fatal(err)
	}
	if b.Requested != 5 {
		t.Errorf("requested = %d, want the configured 5", b.Requested)
	}
	for _, ex := range b.Items {
		if !ex.Solution.Valid {
			t.Errorf("exercise %d is not solvable", ex.Number)
		}
	}
}

func TestRegenerateKeepsIdentity(t *testing.T) {
	s := newTestServer(t)
	_, data := do(t, s, http.MethodPost, "/api/exercises/triangles", `{"count":2,"seed":5}`)
	var b exercise.Batch[exercise.TriangleExercise]
	if err := json.Unmarshal(data, &b); err != nil {
		t.Fatal(err)
	}
	if len(b.Items) == 0 {
		t.Fatal("no exercises")
	}
	orig := b.Items[0]
	exJSON, err := json.Marshal(orig)
	if err != nil {
		t.Fatal(err)
	}
	resp, data := do(t, s, http.MethodPost, "/api/exercises/triangles/regenerate", `{"seed":99,"exercise":`+string(exJSON)+`}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, data)
	}
	var out struct {
		Exercise    exercise.TriangleExercise `json:"exercise"`
		Regenerated bool                      `json:"regenerated"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Exercise.ID != orig.ID || out.Exercise.Number != orig.Number || out.Exercise.Case != orig.Case {
		t.Errorf("identity changed: %v/%d/%v -> %v/%d/%v",
			orig.ID, orig.Number, orig.Case, out.Exercise.ID, out.Exercise.Number, out.Exercise.Case)
	}
}

func TestRegenerateVectorNeedsKind(t *testing.T) {
	s := newTestServer(t)
	resp, _ := do(t, s, http.MethodPost, "/api/exercises/vectors/regenerate", `{"exercise":{"number":1}}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status %d, want 400", resp.StatusCode)
	}
}

func TestSheets(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		path string
		body string
		file string
	}{
		{"/api/sheets/vectors", `{"count":3,"seed":1,"date":"2024-03-07"}`, "vectors.pdf"},
		{"/api/sheets/vectors", `{"count":3,"teacher":true,"mode":"grid","perPage":4}`, "vectors-answer-key.pdf"},
		{"/api/sheets/triangles", `{"count":5,"locale":"en","pageSize":"letter"}`, "triangles.pdf"},
		{"/api/sheets/triangles", "", "triangles.pdf"},
	}
	for _, tt := range tests {
		resp, data := do(t, s, http.MethodPost, tt.path, tt.body)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s %s: status %d: %s", tt.path, tt.body, resp.StatusCode, data)
		}
		if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("content type = %q", ct)
		}
		if !strings.Contains(resp.Header.Get("Content-Disposition"), tt.file) {
			t.Errorf("disposition = %q, want %s", resp.Header.Get("Content-Disposition"), tt.file)
		}
		if !bytes.HasPrefix(data, []byte("%PDF-1.4")) || !bytes.HasSuffix(bytes.TrimSpace(data), []byte("%%EOF")) {
			t.Errorf("%s: not a PDF", tt.path)
		}
	}
}

func TestSheetFromClientBatch(t *testing.T) {
	s := newTestServer(t)
	_, data := do(t, s, http.MethodPost, "/api/exercises/vectors", `{"count":2,"seed":8}`)
	var b exercise.Batch[exercise.VectorExercise]
	if err := json.Unmarshal(data, &b); err != nil {
		t.Fatal(err)
	}
	items, err := json.Marshal(b.Items)
	if err != nil {
		t.Fatal(err)
	}
	resp, pdf := do(t, s, http.MethodPost, "/api/sheets/vectors", `{"teacher":true,"exercises":`+string(items)+`}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, pdf)
	}
	if resp.Header.Get("X-Exercises-Dropped") != "" {
		t.Error("client batch should not be regenerated")
	}
}

func TestSheetBadOptions(t *testing.T) {
	s := newTestServer(t)
	for _, body := range []string{`{"mode":"poster"}`, `{"pageSize":"B9"}`, `{"date":"07/03/2024"}`} {
		resp, data := do(t, s, http.MethodPost, "/api/sheets/vectors", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status %d: %s", body, resp.StatusCode, data)
		}
	}
}

func TestSheetPageTooSmall(t *testing.T) {
	s := newTestServer(t)
	body := `{"count":3,"pageSize":"a5-landscape","mode":"full","teacher":true}`
	resp, data := do(t, s, http.MethodPost, "/api/sheets/vectors", body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("vectors: status %d: %s", resp.StatusCode, data)
	}
	if !bytes.Contains(data, []byte("footprint")) {
		t.Errorf("error body = %s", data)
	}

	resp, data = do(t, s, http.MethodPost, "/api/sheets/triangles", body)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("triangles: status %d: %s", resp.StatusCode, data)
	}
}

func TestStatusForPagination(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("plan: %w", paginate.ErrFootprintTooLarge), http.StatusBadRequest},
		{fmt.Errorf("plan: %w", paginate.ErrInvalidArea), http.StatusBadRequest},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestPreviewVectors(t *testing.T) {
	s := newTestServer(t)
	body := `{"size":240,"resultant":true,"vectors":[
		{"id":0,"label":"V1","kind":"polar","params":[5,30]},
		{"id":1,"label":"V2","kind":"cartesian","params":[0,4]}]}`
	resp, data := do(t, s, http.MethodPost, "/api/preview/vectors", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, data)
	}
	if resp.Header.Get("Content-Type") != "image/svg+xml" {
		t.Errorf("content type = %q", resp.Header.Get("Content-Type"))
	}
	if !bytes.Contains(data, []byte("<svg")) || !bytes.Contains(data, []byte("R=")) {
		t.Error("svg missing diagram content")
	}

	resp, _ = do(t, s, http.MethodPost, "/api/preview/vectors", `{"vectors":[]}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty preview: status %d", resp.StatusCode)
	}
}

func TestPreviewTriangle(t *testing.T) {
	s := newTestServer(t)
	resp, data := do(t, s, http.MethodPost, "/api/preview/triangle", `{"case":"Right","v1":3,"v2":4}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, data)
	}
	if !bytes.Contains(data, []byte("<polygon")) {
		t.Error("svg missing triangle")
	}

	resp, _ = do(t, s, http.MethodPost, "/api/preview/triangle", `{"case":"SSS","v1":1,"v2":1,"v3":5}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("invalid triangle: status %d", resp.StatusCode)
	}
}

func TestNotFound(t *testing.T) {
	s := newTestServer(t)
	resp, data := do(t, s, http.MethodGet, "/api/nothing", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status %d", resp.StatusCode)
	}
	if !bytes.Contains(data, []byte(`"error"`)) {
		t.Errorf("body = %s", data)
	}
}
