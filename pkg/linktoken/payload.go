package linktoken

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// Payload is the JSON document sealed inside a capability token. Field names
// are part of the wire contract with links already sent out.
type Payload struct {
	VIN           string `json:"vin,omitempty"`
	Make          string `json:"make,omitempty"`
	Color         string `json:"color,omitempty"`
	Model         string `json:"model,omitempty"`
	LicensePlate  string `json:"licensePlate"`
	StartDate     string `json:"startDate,omitempty"`
	EndDate       string `json:"endDate,omitempty"`
	CustomerEmail string `json:"customerEmail"`
	CostPerDay    string `json:"costPerDay"`
	FolderID      string `json:"folderId,omitempty"`
	Phase         Phase  `json:"phase,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
	Exp           int64  `json:"exp,omitempty"` // epoch milliseconds
}

// UnmarshalJSON accepts tokens minted before model, customerEmail, costPerDay
// and licensePlate existed: a legacy year stands in for model and the rest
// default to empty strings. An exp that is not a whole number of
// milliseconds decodes as 0 and so reads as expired.
func (p *Payload) UnmarshalJSON(data []byte) error {
	type plain Payload
	aux := struct {
		*plain
		Year json.RawMessage `json:"year"`
		Exp  json.RawMessage `json:"exp"`
	}{plain: (*plain)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	p.Exp = expMillis(aux.Exp)

	if p.Model == "" && len(aux.Year) > 0 {
		p.Model = legacyYear(aux.Year)
	}
	return nil
}

// legacyYear renders a year written either as a number or a string
func legacyYear(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return strings.Trim(string(raw), `"`)
}

func expMillis(raw json.RawMessage) int64 {
	var n json.Number
	if len(raw) == 0 || json.Unmarshal(raw, &n) != nil {
		return 0
	}
	if ms, err := n.Int64(); err == nil {
		return ms
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) >= math.MaxInt64 {
		return 0
	}
	return int64(f)
}

// ExpiresAt converts exp into a time; the zero time when exp is unset.
func (p *Payload) ExpiresAt() time.Time {
	if p.Exp == 0 {
		return time.Time{}
	}
	return time.UnixMilli(p.Exp)
}

// Vehicle returns a short human readable description, e.g. "Silver Ford Focus".
func (p *Payload) Vehicle() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.Color, p.Make, p.Model} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
