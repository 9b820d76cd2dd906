package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/Daniel-dg-conta1/math-Suite/config"
	"github.com/Daniel-dg-conta1/math-Suite/exercise"
	"github.com/Daniel-dg-conta1/math-Suite/geom"
	"github.com/Daniel-dg-conta1/math-Suite/paginate"
	"github.com/Daniel-dg-conta1/math-Suite/pdf/layout"
	"github.com/Daniel-dg-conta1/math-Suite/preview"
	"github.com/Daniel-dg-conta1/math-Suite/sheet"
	"github.com/Daniel-dg-conta1/math-Suite/trig"
)

var (
	errEmptyBody   = errors.New("empty body")
	errInvalidJSON = errors.New("invalid json")
)

// badRequest marks client input errors that have no sentinel of their own.
type badRequest struct {
	err error
}

func (e badRequest) Error() string { return e.err.Error() }
func (e badRequest) Unwrap() error { return e.err }

// decode unmarshals the JSON body into v.
func decode(c fiber.Ctx, v any) error {
	body := c.Body()
	if len(body) == 0 {
		return badRequest{errEmptyBody}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return badRequest{fmt.Errorf("%w: %v", errInvalidJSON, err)}
	}
	return nil
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var (
		ce *config.ConfigError
		br badRequest
	)
	switch {
	case errors.Is(err, trig.ErrInvalidGeometry):
		return http.StatusUnprocessableEntity
	case errors.As(err, &br),
		errors.As(err, &ce),
		errors.Is(err, trig.ErrUnknownCase),
		errors.Is(err, geom.ErrUnknownKind),
		errors.Is(err, exercise.ErrUnknownVectorKind),
		errors.Is(err, sheet.ErrUnknownMode),
		errors.Is(err, sheet.ErrNoExercises),
		errors.Is(err, layout.ErrUnknownPageSize),
		errors.Is(err, paginate.ErrFootprintTooLarge),
		errors.Is(err, paginate.ErrInvalidArea),
		errors.Is(err, preview.ErrNoVectors):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// scalar is a form value sent either as a JSON number or as text. Text
// follows the editor rule: anything unparseable counts as zero.
type scalar string

func (s *scalar) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = scalar(text)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = scalar(n.String())
	return nil
}

func (s scalar) Float() float64 {
	return geom.ParseScalarOrZero(string(s))
}
