// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

package validation

import (
	"strings"
	"testing"
)

type testItem struct {
	Name string   `json:"name" validate:"required"`
	Tags []string `json:"tags" validate:"required"`
}

type testRequest struct {
	Items     []testItem `json:"items" validate:"required,min=1,dive"`
	Threshold *float64   `json:"threshold,omitempty" validate:"omitempty,gte=0,lte=1"`
	Label     string     `json:"label" validate:"omitempty,max=5"`
	Internal  string     `json:"-"`
}

func float(v float64) *float64 { return &v }

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input testRequest
	}{
		{"single item", testRequest{Items: []testItem{{Name: "Billing", Tags: []string{"invoice"}}}}},
		{"empty tags slice", testRequest{Items: []testItem{{Name: "Billing", Tags: []string{}}}}},
		{"threshold bounds", testRequest{Items: []testItem{{Name: "A", Tags: []string{"x"}}}, Threshold: float(1)}},
		{"zero threshold", testRequest{Items: []testItem{{Name: "A", Tags: []string{"x"}}}, Threshold: float(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateStruct(&tt.input); err != nil {
				t.Errorf("ValidateStruct() = %v, want nil", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		input     testRequest
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{
			name:      "missing items",
			input:     testRequest{},
			wantField: "items",
			wantTag:   "required",
			wantMsg:   "items is required",
		},
		{
			name:      "empty items",
			input:     testRequest{Items: []testItem{}},
			wantField: "items",
			wantTag:   "min",
			wantMsg:   "items must contain at least 1 items",
		},
		{
			name:      "nested name",
			input:     testRequest{Items: []testItem{{Name: "A", Tags: []string{"x"}}, {Tags: []string{"y"}}}},
			wantField: "items[1].name",
			wantTag:   "required",
			wantMsg:   "items[1].name is required",
		},
		{
			name:      "threshold above range",
			input:     testRequest{Items: []testItem{{Name: "A", Tags: []string{"x"}}}, Threshold: float(1.5)},
			wantField: "threshold",
			wantTag:   "lte",
			wantMsg:   "threshold must be less than or equal to 1",
		},
		{
			name:      "long label",
			input:     testRequest{Items: []testItem{{Name: "A", Tags: []string{"x"}}}, Label: "abcdefg"},
			wantField: "label",
			wantTag:   "max",
			wantMsg:   "label must contain at most 5 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.input)
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
			if errs[0].Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestRequestValidationError_ToAPIError(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		verr := ValidateStruct(&testRequest{})
		apiErr := verr.ToAPIError()
		if apiErr.Code != "VALIDATION_ERROR" {
			t.Errorf("Code = %q", apiErr.Code)
		}
		if apiErr.Message != "items is required" {
			t.Errorf("Message = %q", apiErr.Message)
		}
		if apiErr.Details["field"] != "items" {
			t.Errorf("Details = %v", apiErr.Details)
		}
	})

	t.Run("multiple", func(t *testing.T) {
		verr := ValidateStruct(&testRequest{Items: []testItem{{}}})
		if verr == nil {
			t.Fatal("expected errors")
		}
		apiErr := verr.ToAPIError()
		fields, ok := apiErr.Details["fields"].([]map[string]interface{})
		if !ok || len(fields) != 2 {
			t.Fatalf("Details[fields] = %v", apiErr.Details["fields"])
		}
		if !strings.Contains(apiErr.Message, "items[0].name is required") ||
			!strings.Contains(apiErr.Message, "items[0].tags is required") {
			t.Errorf("Message = %q", apiErr.Message)
		}
	})

	t.Run("empty", func(t *testing.T) {
		apiErr := (&RequestValidationError{}).ToAPIError()
		if apiErr.Message != "Validation failed" {
			t.Errorf("Message = %q", apiErr.Message)
		}
	})
}

func TestValidateStruct_NonStruct(t *testing.T) {
	verr := ValidateStruct("not a struct")
	if verr == nil {
		t.Fatal("expected error for non-struct input")
	}
	if verr.Errors()[0].Field() != "unknown" {
		t.Errorf("Field() = %q, want unknown", verr.Errors()[0].Field())
	}
}
