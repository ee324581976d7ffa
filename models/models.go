package models

import (
	"leads-service/classifier"
)

// Header is the canonical column header of the leads store, in the exact
// order rows are persisted. Positions must not be reordered.
var Header = []string{
	"Data/Hora",
	"Nome",
	"Telefone",
	"Imóvel/Referência",
	"Interesse Visita",
	"Resumo Conversa",
	"Origem",
	"ID",
	"Status",
	"Tipo Imóvel",
}

// Lead is the canonical record produced at intake time. It is immutable
// once built; downstream status edits happen outside this service.
type Lead struct {
	Timestamp     string                  `json:"Data/Hora"`
	Name          string                  `json:"Nome"`
	Phone         string                  `json:"Telefone"`
	Reference     string                  `json:"Imóvel/Referência"`
	VisitInterest string                  `json:"Interesse Visita"`
	Summary       string                  `json:"Resumo Conversa"`
	Source        string                  `json:"Origem"`
	ID            string                  `json:"ID"`
	Status        string                  `json:"Status"`
	PropertyType  classifier.PropertyType `json:"Tipo Imóvel"`
}

// Row returns the lead as an ordered tuple matching Header.
func (l *Lead) Row() []string {
	return []string{
		l.Timestamp,
		l.Name,
		l.Phone,
		l.Reference,
		l.VisitInterest,
		l.Summary,
		l.Source,
		l.ID,
		l.Status,
		string(l.PropertyType),
	}
}

// GeneralCaptureRequest is the payload of POST /captura-imovel-geral.
type GeneralCaptureRequest struct {
	UserName      string `json:"user_name"`
	UserPhone     string `json:"user_phone"`
	Reference     string `json:"imovel_referencia"`
	VisitInterest string `json:"visit_interest"`
	Summary       string `json:"summary"`
}

// LaunchCaptureRequest is the payload of POST /captura-lancamento.
type LaunchCaptureRequest struct {
	UserName      string `json:"user_name"`
	UserPhone     string `json:"user_phone"`
	Launch        string `json:"lancamento"`
	VisitInterest string `json:"visit_interest"`
	Summary       string `json:"summary"`
}

// CaptureResponse acknowledges a successful capture, echoing the id,
// the identifying reference and the formatted timestamp.
type CaptureResponse struct {
	Status       int    `json:"status"`
	Message      string `json:"message"`
	LeadID       string `json:"lead_id"`
	Reference    string `json:"imovel_referencia,omitempty"`
	PropertyType string `json:"tipo_imovel,omitempty"`
	Launch       string `json:"lancamento,omitempty"`
	Timestamp    string `json:"timestamp"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

// DashboardDataResponse is the legacy read payload of GET /dados-dashboard.
// The per-campaign fields and the zero-decimal rate are part of an existing
// consumer contract and must not change shape.
type DashboardDataResponse struct {
	Status           int            `json:"status"`
	TotalLeads       int            `json:"total_leads"`
	VisitInterest    int            `json:"interesse_visita"`
	InterestRate     int            `json:"taxa_interesse"`
	WindOceanica     int            `json:"wind_oceanica"`
	TresorCamboinhas int            `json:"tresor_camboinhas"`
	PropertyTypes    map[string]int `json:"tipos_imovel"`
	Records          []Lead         `json:"dados"`
	LastRefresh      string         `json:"ultima_atualizacao"`
}

// BroadcastMessage is pushed to dashboard WebSocket clients.
type BroadcastMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status           string `json:"status"`
	Service          string `json:"service,omitempty"`
	Message          string `json:"message,omitempty"`
	ConnectedClients int    `json:"connected_clients,omitempty"`
}
