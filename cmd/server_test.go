package main

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/Abraxas-365/skillbridge/pkg/errx"
	"github.com/Abraxas-365/skillbridge/recruitment/job"
	"github.com/gofiber/fiber/v2"
)

func TestGlobalErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: globalErrorHandler})
	app.Get("/conflict", func(*fiber.Ctx) error {
		return errx.Wrap(job.ErrIngestionAlreadyRunning(), "trigger rejected", errx.TypeInternal)
	})
	app.Get("/fiber", func(*fiber.Ctx) error {
		return fiber.NewError(fiber.StatusUnauthorized, "Missing authorization header")
	})
	app.Get("/plain", func(*fiber.Ctx) error {
		return errors.New("boom")
	})

	cases := []struct {
		path   string
		status int
		code   any
	}{
		{"/conflict", fiber.StatusConflict, "INGESTION.ALREADY_RUNNING"},
		{"/fiber", fiber.StatusUnauthorized, float64(fiber.StatusUnauthorized)},
		{"/plain", fiber.StatusInternalServerError, "INTERNAL_ERROR"},
		{"/missing", fiber.StatusNotFound, float64(fiber.StatusNotFound)},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != tc.status {
			t.Errorf("%s: status = %d, want %d", tc.path, resp.StatusCode, tc.status)
		}
		var body map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("%s: %v", tc.path, err)
		}
		if body["code"] != tc.code {
			t.Errorf("%s: code = %v, want %v", tc.path, body["code"], tc.code)
		}
	}
}
