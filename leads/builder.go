package leads

import (
	"fmt"
	"strings"
	"time"

	"leads-service/classifier"
	"leads-service/models"
)

const (
	// SourceGeneral and SourceLaunch are the legacy origin labels written
	// to the store by the two intake flows.
	SourceGeneral = "IA Gabriela - Imóvel"
	SourceLaunch  = "IA Gabriela - Lançamento"

	// StatusNew is the initial status of every captured lead.
	StatusNew = "Novo"

	// TimestampLayout is the display format used for the Data/Hora column.
	TimestampLayout = "02/01/2006 15:04:05"
)

// ValidationError reports the first missing or invalid request field.
// It maps to a 400 response at the HTTP boundary.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func missingField(field string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("Campo obrigatório ausente: %s", field),
	}
}

// Builder turns raw capture payloads into canonical lead records. The
// campaign list and timezone come from configuration, not process state.
type Builder struct {
	campaigns []string
	loc       *time.Location
	now       func() time.Time
}

// NewBuilder creates a builder for the given launch campaign names and
// civil timezone.
func NewBuilder(campaigns []string, loc *time.Location) *Builder {
	return &Builder{
		campaigns: campaigns,
		loc:       loc,
		now:       time.Now,
	}
}

// BuildGeneralLead validates a general-property capture and returns the
// canonical record. The property type is derived from the reference.
func (b *Builder) BuildGeneralLead(req *models.GeneralCaptureRequest) (*models.Lead, error) {
	required := []struct{ field, value string }{
		{"user_name", req.UserName},
		{"user_phone", req.UserPhone},
		{"imovel_referencia", req.Reference},
		{"visit_interest", req.VisitInterest},
		{"summary", req.Summary},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, missingField(r.field)
		}
	}

	now := b.now().In(b.loc)
	return &models.Lead{
		Timestamp:     now.Format(TimestampLayout),
		Name:          req.UserName,
		Phone:         req.UserPhone,
		Reference:     req.Reference,
		VisitInterest: req.VisitInterest,
		Summary:       req.Summary,
		Source:        SourceGeneral,
		ID:            b.generateID(now),
		Status:        StatusNew,
		PropertyType:  classifier.Classify(req.Reference),
	}, nil
}

// BuildLaunchLead validates a campaign capture. The launch name must be an
// exact, case-sensitive member of the configured campaign list; on success
// the property type is fixed to Launch rather than derived.
func (b *Builder) BuildLaunchLead(req *models.LaunchCaptureRequest) (*models.Lead, error) {
	required := []struct{ field, value string }{
		{"user_name", req.UserName},
		{"user_phone", req.UserPhone},
		{"lancamento", req.Launch},
		{"visit_interest", req.VisitInterest},
		{"summary", req.Summary},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, missingField(r.field)
		}
	}

	valid := false
	for _, name := range b.campaigns {
		if req.Launch == name {
			valid = true
			break
		}
	}
	if !valid {
		return nil, &ValidationError{
			Field:   "lancamento",
			Message: fmt.Sprintf("Lançamento deve ser: %s", strings.Join(b.campaigns, " ou ")),
		}
	}

	now := b.now().In(b.loc)
	return &models.Lead{
		Timestamp:     now.Format(TimestampLayout),
		Name:          req.UserName,
		Phone:         req.UserPhone,
		Reference:     req.Launch,
		VisitInterest: req.VisitInterest,
		Summary:       req.Summary,
		Source:        SourceLaunch,
		ID:            b.generateID(now),
		Status:        StatusNew,
		PropertyType:  classifier.Launch,
	}, nil
}

// ParseTimestamp parses a stored Data/Hora value in the service timezone.
func ParseTimestamp(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, value, loc)
}
