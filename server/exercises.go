package server

import (
	"bytes"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Daniel-dg-conta1/math-Suite/config"
	"github.com/Daniel-dg-conta1/math-Suite/diagram"
	"github.com/Daniel-dg-conta1/math-Suite/exercise"
	"github.com/Daniel-dg-conta1/math-Suite/geom"
	"github.com/Daniel-dg-conta1/math-Suite/preview"
	"github.com/Daniel-dg-conta1/math-Suite/sheet"
	"github.com/Daniel-dg-conta1/math-Suite/trig"
)

// vectorBatchRequest overrides the configured vector generator. Zero
// fields keep the configured value.
type vectorBatchRequest struct {
	Count            int      `json:"count"`
	Seed             uint64   `json:"seed"`
	Kinds            []string `json:"kinds"`
	MinMagnitude     int      `json:"minMagnitude"`
	MaxMagnitude     int      `json:"maxMagnitude"`
	MinSeparation    float64  `json:"minSeparation"`
	HalfSteps        *bool    `json:"halfSteps"`
	Parametrizations []string `json:"parametrizations"`
}

func (r vectorBatchRequest) config(base config.VectorsConfig) (exercise.VectorConfig, error) {
	if r.Count != 0 {
		base.Questions = r.Count
	}
	if len(r.Kinds) > 0 {
		base.Kinds = r.Kinds
	}
	if r.MinMagnitude != 0 {
		base.MinMagnitude = r.MinMagnitude
	}
	if r.MaxMagnitude != 0 {
		base.MaxMagnitude = r.MaxMagnitude
	}
	if r.MinSeparation != 0 {
		base.MinSeparation = r.MinSeparation
	}
	if r.HalfSteps != nil {
		base.HalfSteps = r.HalfSteps
	}
	if len(r.Parametrizations) > 0 {
		base.Parametrizations = r.Parametrizations
	}
	return base.Generator()
}

// triangleBatchRequest overrides the configured triangle generator.
type triangleBatchRequest struct {
	Count    int      `json:"count"`
	Seed     uint64   `json:"seed"`
	Cases    []string `json:"cases"`
	MinSide  int      `json:"minSide"`
	MaxSide  int      `json:"maxSide"`
	MinAngle int      `json:"minAngle"`
	MaxAngle int      `json:"maxAngle"`
}

func (r triangleBatchRequest) config(base config.TrianglesConfig) (exercise.TriangleConfig, error) {
	if r.Count != 0 {
		base.Questions = r.Count
	}
	if len(r.Cases) > 0 {
		base.Cases = r.Cases
	}
	if r.MinSide != 0 {
		base.MinSide = r.MinSide
	}
	if r.MaxSide != 0 {
		base.MaxSide = r.MaxSide
	}
	if r.MinAngle != 0 {
		base.MinAngle = r.MinAngle
	}
	if r.MaxAngle != 0 {
		base.MaxAngle = r.MaxAngle
	}
	return base.Generator()
}

func (s *Server) generator(seed uint64) *exercise.Generator {
	return exercise.NewGenerator(s.cfg.Generator.Source(seed),
		exercise.WithMaxAttempts(s.cfg.Generator.MaxAttempts),
		exercise.WithLogger(s.logger))
}

func (s *Server) vectorBatch(req vectorBatchRequest) (exercise.Batch[exercise.VectorExercise], error) {
	cfg, err := req.config(s.cfg.Generator.Vectors)
	if err != nil {
		return exercise.Batch[exercise.VectorExercise]{}, err
	}
	b := s.generator(req.Seed).Vectors(cfg)
	if b.Dropped > 0 {
		s.logger.Warn("vector exercises dropped", "requested", b.Requested, "dropped", b.Dropped)
	}
	return b, nil
}

func (s *Server) triangleBatch(req triangleBatchRequest) (exercise.Batch[exercise.TriangleExercise], error) {
	cfg, err := req.config(s.cfg.Generator.Triangles)
	if err != nil {
		return exercise.Batch[exercise.TriangleExercise]{}, err
	}
	b := s.generator(req.Seed).Triangles(cfg)
	if b.Dropped > 0 {
		s.logger.Warn("triangle exercises dropped", "requested", b.Requested, "dropped", b.Dropped)
	}
	return b, nil
}

func (s *Server) vectorExercises(c fiber.Ctx) error {
	var req vectorBatchRequest
	if len(c.Body()) > 0 {
		if err := decode(c, &req); err != nil {
			return err
		}
	}
	b, err := s.vectorBatch(req)
	if err != nil {
		return err
	}
	return c.JSON(b)
}

func (s *Server) triangleExercises(c fiber.Ctx) error {
	var req triangleBatchRequest
	if len(c.Body()) > 0 {
		if err := decode(c, &req); err != nil {
			return err
		}
	}
	b, err := s.triangleBatch(req)
	if err != nil {
		return err
	}
	return c.JSON(b)
}

type regenerateVectorRequest struct {
	vectorBatchRequest
	Exercise exercise.VectorExercise `json:"exercise"`
}

type regenerateResponse[T any] struct {
	Exercise    T    `json:"exercise"`
	Regenerated bool `json:"regenerated"`
}

// regenerateVector replaces one exercise, keeping its ID and number.
func (s *Server) regenerateVector(c fiber.Ctx) error {
	var req regenerateVectorRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	if _, err := exercise.ParseVectorKind(string(req.Exercise.Kind)); err != nil {
		return err
	}
	cfg, err := req.config(s.cfg.Generator.Vectors)
	if err != nil {
		return err
	}
	ex, ok := s.generator(req.Seed).RegenerateVector(req.Exercise, cfg)
	return c.JSON(regenerateResponse[exercise.VectorExercise]{Exercise: ex, Regenerated: ok})
}

type regenerateTriangleRequest struct {
	triangleBatchRequest
	Exercise exercise.TriangleExercise `json:"exercise"`
}

func (s *Server) regenerateTriangle(c fiber.Ctx) error {
	var req regenerateTriangleRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	cfg, err := req.config(s.cfg.Generator.Triangles)
	if err != nil {
		return err
	}
	ex, ok := s.generator(req.Seed).RegenerateTriangle(req.Exercise, cfg)
	return c.JSON(regenerateResponse[exercise.TriangleExercise]{Exercise: ex, Regenerated: ok})
}

// sheetRequest selects the worksheet layout. Empty fields keep the
// configured value.
type sheetRequest struct {
	Teacher  bool   `json:"teacher"`
	Mode     string `json:"mode"`
	PerPage  int    `json:"perPage"`
	PageSize string `json:"pageSize"`
	Locale   string `json:"locale"`
	Title    string `json:"title"`
	Date     string `json:"date"` // YYYY-MM-DD
}

func (r sheetRequest) options(base config.SheetConfig) (sheet.Options, error) {
	if r.Mode != "" {
		base.Mode = r.Mode
	}
	if r.PerPage != 0 {
		base.ItemsPerPage = r.PerPage
	}
	if r.PageSize != "" {
		base.PageSize = r.PageSize
	}
	if r.Locale != "" {
		base.Locale = r.Locale
	}
	opts, err := base.Options(r.Teacher)
	if err != nil {
		return opts, err
	}
	opts.Title = r.Title
	if r.Date != "" {
		d, err := time.Parse(time.DateOnly, r.Date)
		if err != nil {
			return opts, badRequest{err}
		}
		opts.Date = d
	}
	return opts, nil
}

type vectorSheetRequest struct {
	vectorBatchRequest
	sheetRequest
	// Exercises renders a batch the client already holds instead of
	// generating a new one.
	Exercises []exercise.VectorExercise `json:"exercises"`
}

func (s *Server) vectorSheet(c fiber.Ctx) error {
	var req vectorSheetRequest
	if len(c.Body()) > 0 {
		if err := decode(c, &req); err != nil {
			return err
		}
	}
	opts, err := req.options(s.cfg.Sheet)
	if err != nil {
		return err
	}
	if opts.Title == "" {
		opts.Title = s.cfg.Sheet.VectorTitle
	}
	opts.MinSeparation = s.cfg.Diagram.MinSeparation
	items := req.Exercises
	if len(items) == 0 {
		b, err := s.vectorBatch(req.vectorBatchRequest)
		if err != nil {
			return err
		}
		items = b.Items
		c.Set("X-Exercises-Dropped", strconv.Itoa(b.Dropped))
	}
	var buf bytes.Buffer
	if err := sheet.WriteVectors(&buf, items, opts); err != nil {
		return err
	}
	return sendPDF(c, "vectors", opts.Teacher, buf.Bytes())
}

type triangleSheetRequest struct {
	triangleBatchRequest
	sheetRequest
	Exercises []exercise.TriangleExercise `json:"exercises"`
}

func (s *Server) triangleSheet(c fiber.Ctx) error {
	var req triangleSheetRequest
	if len(c.Body()) > 0 {
		if err := decode(c, &req); err != nil {
			return err
		}
	}
	opts, err := req.options(s.cfg.Sheet)
	if err != nil {
		return err
	}
	if opts.Title == "" {
		opts.Title = s.cfg.Sheet.TriangleTitle
	}
	items := req.Exercises
	if len(items) == 0 {
		b, err := s.triangleBatch(req.triangleBatchRequest)
		if err != nil {
			return err
		}
		items = b.Items
		c.Set("X-Exercises-Dropped", strconv.Itoa(b.Dropped))
	}
	var buf bytes.Buffer
	if err := sheet.WriteTriangles(&buf, items, opts); err != nil {
		return err
	}
	return sendPDF(c, "triangles", opts.Teacher, buf.Bytes())
}

func sendPDF(c fiber.Ctx, name string, teacher bool, data []byte) error {
	if teacher {
		name += "-answer-key"
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+name+`.pdf"`)
	return c.Send(data)
}

type previewVectorsRequest struct {
	Vectors []geom.ParametrizedVector `json:"vectors"`
	// Resultant adds the sum of the vectors as R.
	Resultant bool `json:"resultant"`
	Size      int  `json:"size"`
}

func (s *Server) previewVectors(c fiber.Ctx) error {
	var req previewVectorsRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	specs := make([]diagram.VectorSpec, 0, len(req.Vectors)+1)
	vs := make([]geom.Vector2, len(req.Vectors))
	for i, pv := range req.Vectors {
		vs[i] = pv.Vector()
		specs = append(specs, diagram.VectorSpec{ID: pv.ID, Label: pv.Label, V: vs[i], Role: diagram.RoleGiven})
	}
	if req.Resultant && len(req.Vectors) > 0 {
		specs = append(specs, diagram.VectorSpec{ID: -1, Label: "R", V: geom.Sum(vs...), Role: diagram.RoleResultant})
	}
	var buf bytes.Buffer
	err := preview.Vectors(&buf, specs, preview.Options{Size: req.Size, MinSeparation: s.cfg.Diagram.MinSeparation})
	if err != nil {
		return err
	}
	return sendSVG(c, buf.Bytes())
}

type previewTriangleRequest struct {
	solveRequest
	Size int `json:"size"`
}

func (s *Server) previewTriangle(c fiber.Ctx) error {
	var req previewTriangleRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	cs, err := trig.ParseCase(req.Case)
	if err != nil {
		return err
	}
	sol, err := trig.Solve(cs, req.V1.Float(), req.V2.Float(), req.V3.Float())
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := preview.Triangle(&buf, sol, preview.Options{Size: req.Size}); err != nil {
		return err
	}
	return sendSVG(c, buf.Bytes())
}

func sendSVG(c fiber.Ctx, data []byte) error {
	c.Set("Content-Type", "image/svg+xml")
	return c.Send(data)
}
