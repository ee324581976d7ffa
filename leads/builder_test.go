package leads

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"leads-service/classifier"
	"leads-service/models"
)

var testCampaigns = []string{"Wind Oceanica", "Tresor Camboinhas"}

func testBuilder(t *testing.T) *Builder {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("loading timezone: %v", err)
	}
	b := NewBuilder(testCampaigns, loc)
	b.now = func() time.Time {
		return time.Date(2024, 1, 15, 14, 30, 45, 0, loc)
	}
	return b
}

func validGeneralRequest() *models.GeneralCaptureRequest {
	return &models.GeneralCaptureRequest{
		UserName:      "Maria Silva",
		UserPhone:     "21999990000",
		Reference:     "AP205",
		VisitInterest: "Sim",
		Summary:       "Quer visitar no sábado",
	}
}

func validLaunchRequest() *models.LaunchCaptureRequest {
	return &models.LaunchCaptureRequest{
		UserName:      "João Souza",
		UserPhone:     "21988887777",
		Launch:        "Wind Oceanica",
		VisitInterest: "Sim",
		Summary:       "Pediu tabela de preços",
	}
}

func TestBuildGeneralLead(t *testing.T) {
	b := testBuilder(t)

	lead, err := b.BuildGeneralLead(validGeneralRequest())
	if err != nil {
		t.Fatalf("BuildGeneralLead() error = %v", err)
	}

	if lead.Timestamp != "15/01/2024 14:30:45" {
		t.Errorf("Timestamp = %q, want formatted São Paulo time", lead.Timestamp)
	}
	if lead.Source != SourceGeneral {
		t.Errorf("Source = %q, want %q", lead.Source, SourceGeneral)
	}
	if lead.Status != StatusNew {
		t.Errorf("Status = %q, want %q", lead.Status, StatusNew)
	}
	if lead.PropertyType != classifier.Apartment {
		t.Errorf("PropertyType = %v, want %v", lead.PropertyType, classifier.Apartment)
	}
	if !strings.HasPrefix(lead.ID, "IMV_20240115143045_") {
		t.Errorf("ID = %q, want IMV_20240115143045_ prefix", lead.ID)
	}
}

func TestBuildGeneralLeadMissingFields(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*models.GeneralCaptureRequest)
		expectField string
	}{
		{
			name:        "missing user_name",
			mutate:      func(r *models.GeneralCaptureRequest) { r.UserName = "" },
			expectField: "user_name",
		},
		{
			name:        "missing user_phone",
			mutate:      func(r *models.GeneralCaptureRequest) { r.UserPhone = "" },
			expectField: "user_phone",
		},
		{
			name:        "missing imovel_referencia",
			mutate:      func(r *models.GeneralCaptureRequest) { r.Reference = "" },
			expectField: "imovel_referencia",
		},
		{
			name:        "missing visit_interest",
			mutate:      func(r *models.GeneralCaptureRequest) { r.VisitInterest = "" },
			expectField: "visit_interest",
		},
		{
			name:        "missing summary",
			mutate:      func(r *models.GeneralCaptureRequest) { r.Summary = "" },
			expectField: "summary",
		},
		{
			name: "first missing field wins",
			mutate: func(r *models.GeneralCaptureRequest) {
				r.UserPhone = ""
				r.Summary = ""
			},
			expectField: "user_phone",
		},
	}

	b := testBuilder(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validGeneralRequest()
			tt.mutate(req)

			_, err := b.BuildGeneralLead(req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("BuildGeneralLead() error = %v, want *ValidationError", err)
			}
			if verr.Field != tt.expectField {
				t.Errorf("ValidationError.Field = %q, want %q", verr.Field, tt.expectField)
			}
			if !strings.Contains(verr.Message, tt.expectField) {
				t.Errorf("ValidationError.Message = %q, should name %q", verr.Message, tt.expectField)
			}
		})
	}
}

func TestBuildLaunchLead(t *testing.T) {
	b := testBuilder(t)

	lead, err := b.BuildLaunchLead(validLaunchRequest())
	if err != nil {
		t.Fatalf("BuildLaunchLead() error = %v", err)
	}

	if lead.Reference != "Wind Oceanica" {
		t.Errorf("Reference = %q, want launch name", lead.Reference)
	}
	if lead.PropertyType != classifier.Launch {
		t.Errorf("PropertyType = %v, want %v", lead.PropertyType, classifier.Launch)
	}
	if lead.Source != SourceLaunch {
		t.Errorf("Source = %q, want %q", lead.Source, SourceLaunch)
	}
}

func TestBuildLaunchLeadInvalidName(t *testing.T) {
	tests := []struct {
		name   string
		launch string
	}{
		{"suffix not exact", "Wind Oceanica Tower"},
		{"wrong case", "wind oceanica"},
		{"unknown launch", "Solaris Niteroi"},
	}

	b := testBuilder(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validLaunchRequest()
			req.Launch = tt.launch

			_, err := b.BuildLaunchLead(req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("BuildLaunchLead(%q) error = %v, want *ValidationError", tt.launch, err)
			}
			if verr.Field != "lancamento" {
				t.Errorf("ValidationError.Field = %q, want lancamento", verr.Field)
			}
		})
	}
}

func TestGenerateIDFormat(t *testing.T) {
	b := testBuilder(t)
	pattern := regexp.MustCompile(`^IMV_\d{14}_[A-Z0-9]{4}$`)

	id := b.generateID(b.now())
	if !pattern.MatchString(id) {
		t.Errorf("generateID() = %q, want IMV_<14 digits>_<4 uppercase alphanumerics>", id)
	}
}

func TestGenerateIDDistinctWithinSecond(t *testing.T) {
	b := testBuilder(t)
	now := b.now()

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		seen[b.generateID(now)] = true
	}
	// 200 draws from 36^4 suffixes; a handful of collisions is plausible,
	// all 200 colliding into a few values is not.
	if len(seen) < 190 {
		t.Errorf("generateID() produced only %d distinct ids in 200 calls", len(seen))
	}
}

func TestRowOrderMatchesHeader(t *testing.T) {
	b := testBuilder(t)
	lead, err := b.BuildGeneralLead(validGeneralRequest())
	if err != nil {
		t.Fatalf("BuildGeneralLead() error = %v", err)
	}

	row := lead.Row()
	if len(row) != len(models.Header) {
		t.Fatalf("Row() has %d fields, header has %d", len(row), len(models.Header))
	}
	if row[0] != lead.Timestamp || row[7] != lead.ID || row[9] != string(lead.PropertyType) {
		t.Errorf("Row() positions do not match the canonical header order: %v", row)
	}
}

func TestParseTimestamp(t *testing.T) {
	loc, _ := time.LoadLocation("America/Sao_Paulo")

	ts, err := ParseTimestamp("02/01/2024 08:15:00", loc)
	if err != nil {
		t.Fatalf("ParseTimestamp() error = %v", err)
	}
	if ts.Day() != 2 || ts.Month() != time.January || ts.Hour() != 8 {
		t.Errorf("ParseTimestamp() = %v, want 2 Jan 2024 08:15", ts)
	}

	if _, err := ParseTimestamp("2024-01-02 08:15", loc); err == nil {
		t.Error("ParseTimestamp() should reject non-legacy layouts")
	}
}
