// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package validation

import (
	"strings"
	"testing"
)

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

func TestValidateStruct_Requests(t *testing.T) {
	yes := true
	badID := int64(0)

	tests := []struct {
		name      string
		input     interface{}
		wantField string
		wantTag   string
	}{
		{"list ok", &ListToolsRequest{Limit: 50}, "", ""},
		{"list limit too high", &ListToolsRequest{Limit: 501}, "limit", "max"},
		{"list negative offset", &ListToolsRequest{Limit: 1, Offset: -1}, "offset", "min"},
		{"search ok", &SearchToolsRequest{Query: "llm", Source: "github", OpenSource: &yes, Limit: 10}, "", ""},
		{"search missing query", &SearchToolsRequest{Limit: 10}, "q", "required"},
		{"search unknown source", &SearchToolsRequest{Query: "x", Source: "myspace", Limit: 10}, "source", "source"},
		{"category missing", &CategoryRequest{}, "category", "required"},
		{"survey all", &TriggerSurveyRequest{}, "", ""},
		{"survey one", &TriggerSurveyRequest{Source: "arxiv"}, "", ""},
		{"survey unknown", &TriggerSurveyRequest{Source: "reddit"}, "source", "source"},
		{"analyze missing path", &AnalyzeProjectRequest{Name: "x"}, "path", "required"},
		{"generate missing project", &GenerateRecommendationsRequest{}, "project_id", "required"},
		{"recommendations bad status", &ListRecommendationsRequest{Status: "archived"}, "status", "oneof"},
		{"recommendations bad project", &ListRecommendationsRequest{ProjectID: &badID}, "project_id", "min"},
		{"recommendations ok", &ListRecommendationsRequest{Status: "accepted"}, "", ""},
		{"profile ok", &SetProfileRequest{Key: "interests", Value: "rag, agents"}, "", ""},
		{"profile unknown key", &SetProfileRequest{Key: "shoe_size", Value: "44"}, "key", "profilekey"},
		{"profile empty value", &SetProfileRequest{Key: "skills"}, "value", "required"},
		{"schedule ok", &ScheduleRequest{Times: []string{"09:00", "21:30"}}, "", ""},
		{"schedule bad time", &ScheduleRequest{Times: []string{"09:00", "24:61"}}, "times[1]", "timeofday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if tt.wantTag == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors: %v", len(errs), err)
			}
			if errs[0].Field() != tt.wantField || errs[0].Tag() != tt.wantTag {
				t.Errorf("field/tag = %s/%s, want %s/%s", errs[0].Field(), errs[0].Tag(), tt.wantField, tt.wantTag)
			}
		})
	}
}

func TestToAPIError_Single(t *testing.T) {
	err := ValidateStruct(&TriggerSurveyRequest{Source: "reddit"})
	if err == nil {
		t.Fatal("expected error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != CodeValidation {
		t.Errorf("code = %q", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "huggingface") {
		t.Errorf("message should list known sources: %q", apiErr.Message)
	}
	if apiErr.Details["field"] != "source" || apiErr.Details["value"] != "reddit" {
		t.Errorf("details = %v", apiErr.Details)
	}
}

func TestToAPIError_Multiple(t *testing.T) {
	err := ValidateStruct(&SearchToolsRequest{Limit: 0})
	if err == nil {
		t.Fatal("expected error")
	}

	apiErr := err.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("details = %v", apiErr.Details)
	}
	if !strings.Contains(apiErr.Message, "q: q is required") || !strings.Contains(apiErr.Message, "limit: limit must be at least 1") {
		t.Errorf("message = %q", apiErr.Message)
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("Error() should join messages: %q", err.Error())
	}
}

func TestTranslateMessages(t *testing.T) {
	tests := []struct {
		input interface{}
		want  string
	}{
		{&AnalyzeProjectRequest{Path: strings.Repeat("a", 4097)}, "path must be at most 4096 characters"},
		{&ListRecommendationsRequest{Status: "x"}, "status must be one of: pending accepted dismissed"},
		{&ScheduleRequest{Times: []string{"noon"}}, "times[0] must be a time of day in HH:MM format"},
		{&SetProfileRequest{Key: "x", Value: "v"}, "key must be a known profile key"},
	}
	for _, tt := range tests {
		err := ValidateStruct(tt.input)
		if err == nil {
			t.Fatalf("%T: expected error", tt.input)
		}
		if got := err.Errors()[0].Error(); got != tt.want {
			t.Errorf("message = %q, want %q", got, tt.want)
		}
	}
}

func TestValidateStruct_NonStruct(t *testing.T) {
	err := ValidateStruct("not a struct")
	if err == nil {
		t.Fatal("expected error for non-struct input")
	}
	if err.Errors()[0].Field() != "unknown" {
		t.Errorf("field = %q", err.Errors()[0].Field())
	}
}
