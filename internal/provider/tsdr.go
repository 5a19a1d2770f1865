package provider

import (
	"context"
	"net/http"
	"net/url"

	"github.com/patwell/ipgate/internal/config"
	"github.com/patwell/ipgate/internal/domain/records"
	"github.com/patwell/ipgate/internal/infrastructure/monitoring/logging"
)

// TrademarkStatus queries the USPTO trademark status (TSDR) search surface
// with a free-text owner query and maps status documents into the canonical
// trademark shape.
type TrademarkStatus struct {
	baseURL string
	client  *http.Client
	log     logging.Logger
}

// NewTrademarkStatus builds the TSDR adapter from configuration.
func NewTrademarkStatus(cfg config.ProviderConfig, log logging.Logger) *TrademarkStatus {
	return &TrademarkStatus{
		baseURL: cfg.BaseURL,
		client:  newHTTPClient(cfg),
		log:     log.Named("tsdr"),
	}
}

// Name identifies the adapter in logs and metrics.
func (a *TrademarkStatus) Name() string { return "tsdr" }

type tsdrResponse struct {
	Trademarks []tsdrDoc `json:"trademarks"`
}

type tsdrDoc struct {
	ApplicationSerialNumber string `json:"applicationSerialNumber"`
	RegistrationNumber      string `json:"registrationNumber"`
	MarkLiteralText         string `json:"markLiteralText"`
	MarkDrawingCode         string `json:"markDrawingCode"`
	FilingDate              string `json:"filingDate"`
	StatusDescription       string `json:"statusDescription"`
	OwnerName               string `json:"ownerName"`
	RegistrationDate        string `json:"registrationDate"`
}

// Query runs a free-text owner search against trademark status records.
func (a *TrademarkStatus) Query(ctx context.Context, term string) ([]records.Trademark, error) {
	endpoint := a.baseURL + "/ts/cd/casestatus/search?searchText=" + url.QueryEscape(term)

	var resp tsdrResponse
	if err := getJSON(ctx, a.client, endpoint, &resp); err != nil {
		return nil, err
	}

	out := make([]records.Trademark, 0, len(resp.Trademarks))
	for _, doc := range resp.Trademarks {
		out = append(out, mapTSDRDoc(doc))
	}
	a.log.Debug("tsdr query complete",
		logging.String("term", term),
		logging.Int("records", len(out)),
	)
	return out, nil
}

// mapTSDRDoc applies the canonical field mapping for one status document:
// the serial number prefers the application serial, falling back to the
// registration number; the mark prefers the literal text, falling back to
// the drawing code when no literal exists.
func mapTSDRDoc(doc tsdrDoc) records.Trademark {
	serial := doc.ApplicationSerialNumber
	if serial == "" {
		serial = doc.RegistrationNumber
	}

	mark := doc.MarkLiteralText
	if mark == "" {
		mark = doc.MarkDrawingCode
	}

	return records.Trademark{
		SerialNumber:     serial,
		Mark:             mark,
		FilingDate:       doc.FilingDate,
		Status:           doc.StatusDescription,
		Owner:            doc.OwnerName,
		RegistrationDate: doc.RegistrationDate,
	}
}
