package sheet

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zlib"
	"golang.org/x/text/language"

	"github.com/Daniel-dg-conta1/math-Suite/exercise"
	"github.com/Daniel-dg-conta1/math-Suite/pdf/layout"
	"github.com/Daniel-dg-conta1/math-Suite/trig"
)

var testDate = time.Date(2024, 3, 7, 9, 0, 0, 0, time.UTC)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"", ModeFull},
		{"Full", ModeFull},
		{"grid", ModeGrid},
		{"simple", ModeGrid},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseMode(%q) = %q, %v", tt.in, got, err)
		}
	}
	if _, err := ParseMode("poster"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
}

func TestPlanVectors(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		perPage int
		cols    int
	}{
		{"full student", Options{}, 2, 1},
		{"full teacher", Options{Teacher: true}, 1, 1},
		{"grid", Options{Mode: ModeGrid, ItemsPerPage: 4}, 4, 2},
		{"grid clamped", Options{Mode: ModeGrid, ItemsPerPage: 10}, 4, 2},
		{"grid below capacity", Options{Mode: ModeGrid, ItemsPerPage: 3}, 3, 2},
		{"grid on A5", Options{Mode: ModeGrid, ItemsPerPage: 4, PageSize: layout.A5}, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := PlanVectors(tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if l.ItemsPerPage != tt.perPage || l.Cols != tt.cols {
				t.Errorf("layout = %+v, want %d per page in %d columns", l, tt.perPage, tt.cols)
			}
		})
	}
}

func TestPlanTriangles(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		perPage int
		rows    int
	}{
		{"full", Options{}, 4, 4},
		{"grid eight", Options{Mode: ModeGrid, ItemsPerPage: 8}, 8, 4},
		{"grid capped at eight", Options{Mode: ModeGrid, ItemsPerPage: 20}, 8, 4},
		{"grid two", Options{Mode: ModeGrid, ItemsPerPage: 2}, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := PlanTriangles(tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if l.ItemsPerPage != tt.perPage || l.Rows != tt.rows {
				t.Errorf("layout = %+v, want %d per page in %d rows", l, tt.perPage, tt.rows)
			}
		})
	}
}

func TestLocaleNumbers(t *testing.T) {
	pt := NewLocale(language.BrazilianPortuguese)
	en := NewLocale(language.English)
	tests := []struct {
		loc    Locale
		v      float64
		number string
		fixed  string
	}{
		{pt, 36.87, "36,9", "36,9"},
		{en, 36.87, "36.9", "36.9"},
		{pt, 5, "5", "5,0"},
		{pt, 0.1234, "0,123", "0,123"},
		{pt, -7.26, "-7,3", "-7,3"},
		{en, 0.000001, "0", "0.000"},
		{pt, 1500, "1500", "1500,0"},
	}
	for _, tt := range tests {
		if got := tt.loc.Number(tt.v); got != tt.number {
			t.Errorf("%v Number(%v) = %q, want %q", tt.loc.Tag, tt.v, got, tt.number)
		}
		if got := tt.loc.Fixed(tt.v); got != tt.fixed {
			t.Errorf("%v Fixed(%v) = %q, want %q", tt.loc.Tag, tt.v, got, tt.fixed)
		}
	}
}

func TestLocaleText(t *testing.T) {
	pt, err := ParseLocale("pt-BR")
	if err != nil {
		t.Fatal(err)
	}
	if got := pt.T("Question %d", 3); got != "Questão 3" {
		t.Errorf("pt question = %q", got)
	}
	if got := pt.Date(testDate); got != "07/03/2024" {
		t.Errorf("pt date = %q", got)
	}
	if got := pt.CaseName(trig.AAS); got != "Lado-Ângulo-Ângulo" {
		t.Errorf("pt AAS = %q", got)
	}

	en, err := ParseLocale("en-GB")
	if err != nil {
		t.Fatal(err)
	}
	if en.Tag != language.English {
		t.Errorf("en-GB matched %v", en.Tag)
	}
	if got := en.Date(testDate); got != "03/07/2024" {
		t.Errorf("en date = %q", got)
	}
	if got := en.T("Question %d", 3); got != "Question 3" {
		t.Errorf("en question = %q", got)
	}

	if _, err := ParseLocale("not a tag!"); err == nil {
		t.Error("expected parse error")
	}
}

func TestAnswerText(t *testing.T) {
	pt := NewLocale(language.BrazilianPortuguese)
	got := answerText(pt, exercise.VectorSolution{Label: "R", X: 6, Y: 8, Magnitude: 10, Angle: 53.13})
	want := "Resposta: R = (6; 8)   |R| = 10   ângulo = 53,1°"
	if got != want {
		t.Errorf("answerText = %q, want %q", got, want)
	}
}

func vectorBatch(t *testing.T, n int) []exercise.VectorExercise {
	t.Helper()
	cfg := exercise.DefaultVectorConfig()
	cfg.Questions = n
	cfg.Kinds = []exercise.VectorKind{exercise.KindTwo, exercise.KindMissing}
	b := exercise.NewGenerator(exercise.NewSource(21)).Vectors(cfg)
	if len(b.Items) == 0 {
		t.Fatal("generator produced nothing")
	}
	return b.Items
}

func triangleBatch(t *testing.T, n int) []exercise.TriangleExercise {
	t.Helper()
	cfg := exercise.DefaultTriangleConfig()
	cfg.Questions = n
	b := exercise.NewGenerator(exercise.NewSource(22)).Triangles(cfg)
	if len(b.Items) == 0 {
		t.Fatal("generator produced nothing")
	}
	return b.Items
}

// pageText inflates every content stream of a written document.
func pageText(t *testing.T, data []byte) string {
	t.Helper()
	var out strings.Builder
	for {
		start := bytes.Index(data, []byte("/FlateDecode"))
		if start < 0 {
			return out.String()
		}
		data = data[start:]
		begin := bytes.Index(data, []byte("stream\n")) + len("stream\n")
		end := bytes.Index(data, []byte("\nendstream"))
		zr, err := zlib.NewReader(bytes.NewReader(data[begin:end]))
		if err != nil {
			t.Fatal(err)
		}
		plain, err := io.ReadAll(zr)
		if err != nil {
			t.Fatal(err)
		}
		out.Write(plain)
		data = data[end:]
	}
}

func TestVectorsPages(t *testing.T) {
	items := vectorBatch(t, 5)
	tests := []struct {
		opts Options
		per  int
	}{
		{Options{Date: testDate}, 2},
		{Options{Date: testDate, Teacher: true}, 1},
		{Options{Date: testDate, Mode: ModeGrid, ItemsPerPage: 4}, 4},
	}
	for _, tt := range tests {
		doc, err := Vectors(items, tt.opts)
		if err != nil {
			t.Fatal(err)
		}
		want := (len(items) + tt.per - 1) / tt.per
		if doc.PageCount() != want {
			t.Errorf("%+v: %d pages, want %d", tt.opts, doc.PageCount(), want)
		}
	}
}

func TestVectorsAnswerKeyContent(t *testing.T) {
	items := vectorBatch(t, 3)
	var buf bytes.Buffer
	if err := WriteVectors(&buf, items, Options{Teacher: true, Date: testDate}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("(Gabarito Oficial)")) {
		t.Error("document title missing")
	}
	text := pageText(t, buf.Bytes())
	for _, want := range []string{"Resposta: ", "Data: 07/03/2024", "/F1 ", " re\nf\n"} {
		if !strings.Contains(text, want) {
			t.Errorf("page content missing %q", want)
		}
	}
}

func TestVectorsStudentHidesAnswers(t *testing.T) {
	items := vectorBatch(t, 4)
	var buf bytes.Buffer
	if err := WriteVectors(&buf, items, Options{Locale: NewLocale(language.English), Date: testDate}); err != nil {
		t.Fatal(err)
	}
	text := pageText(t, buf.Bytes())
	if strings.Contains(text, "Answer: ") {
		t.Error("student sheet shows answers")
	}
	if !strings.Contains(text, "Space for calculations:") || !strings.Contains(text, "Question 1") {
		t.Error("student sheet missing question text")
	}
}

func TestTrianglesPages(t *testing.T) {
	items := triangleBatch(t, 9)
	tests := []struct {
		opts Options
		per  int
	}{
		{Options{Date: testDate}, 4},
		{Options{Date: testDate, Mode: ModeGrid, ItemsPerPage: 8}, 8},
		{Options{Date: testDate, Mode: ModeGrid, ItemsPerPage: 20, Teacher: true}, 8},
	}
	for _, tt := range tests {
		doc, err := Triangles(items, tt.opts)
		if err != nil {
			t.Fatal(err)
		}
		want := (len(items) + tt.per - 1) / tt.per
		if doc.PageCount() != want {
			t.Errorf("%+v: %d pages, want %d", tt.opts, doc.PageCount(), want)
		}
	}
}

func TestTrianglesContent(t *testing.T) {
	items := triangleBatch(t, 2)
	var buf bytes.Buffer
	opts := Options{Teacher: true, Locale: NewLocale(language.English), Date: testDate}
	if err := WriteTriangles(&buf, items, opts); err != nil {
		t.Fatal(err)
	}
	text := pageText(t, buf.Bytes())
	for _, want := range []string{"Complete Solution:", "Given: ", "Perimeter = ", "Question 2 \\("} {
		if !strings.Contains(text, want) {
			t.Errorf("page content missing %q", want)
		}
	}
}

func TestEmptySheet(t *testing.T) {
	if _, err := Vectors(nil, Options{}); !errors.Is(err, ErrNoExercises) {
		t.Errorf("expected ErrNoExercises, got %v", err)
	}
	if err := WriteTriangles(io.Discard, nil, Options{}); !errors.Is(err, ErrNoExercises) {
		t.Errorf("expected ErrNoExercises, got %v", err)
	}
}

func TestDocumentLanguage(t *testing.T) {
	items := vectorBatch(t, 1)
	tests := []struct {
		locale Locale
		want   string
	}{
		{Locale{}, "/Lang (pt-BR)"},
		{NewLocale(language.English), "/Lang (en)"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := WriteVectors(&buf, items, Options{Date: testDate, Locale: tt.locale}); err != nil {
			t.Fatal(err)
		}
		if !bytes.Contains(buf.Bytes(), []byte(tt.want)) {
			t.Errorf("document missing %q", tt.want)
		}
		if !bytes.Contains(buf.Bytes(), []byte("<xmp:CreateDate>2024-03-07T09:00:00Z</xmp:CreateDate>")) {
			t.Error("XMP packet missing creation date")
		}
	}
}

func TestVectorDiagramSeparation(t *testing.T) {
	ex := vectorBatch(t, 1)[0]
	moved := func(opts Options) bool {
		for _, a := range vectorDiagram(ex, 0, 0, opts).Arrows {
			if a.Placement.Moved() {
				return true
			}
		}
		return false
	}
	if moved(Options{Teacher: true, MinSeparation: -1}) {
		t.Error("arrows spread with spreading disabled")
	}
	if !moved(Options{Teacher: true, MinSeparation: 180}) {
		t.Error("configured separation was not applied")
	}
}
