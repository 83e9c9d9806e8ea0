package model

import (
	"strings"
	"time"
)

// IncidentStatus tracks the case state of an incident.
type IncidentStatus string

const (
	StatusOpen               IncidentStatus = "OPEN"
	StatusClosed             IncidentStatus = "CLOSED"
	StatusUnderInvestigation IncidentStatus = "UNDER_INVESTIGATION"
)

// NormalizeStatus uppercases a raw status value and coerces anything outside
// the recognized set to OPEN.
func NormalizeStatus(raw string) IncidentStatus {
	s := IncidentStatus(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case StatusOpen, StatusClosed, StatusUnderInvestigation:
		return s
	default:
		return StatusOpen
	}
}

// Incident is one normalized crime record.
type Incident struct {
	ID          string         `json:"id"`
	Type        CrimeType      `json:"type"`
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	DateTime    time.Time      `json:"date_time"`
	Status      IncidentStatus `json:"status"`
	Description string         `json:"description,omitempty"`
	Location    string         `json:"location,omitempty"`
}

// UnitStatus tracks the availability of a patrol unit.
type UnitStatus string

const (
	UnitAvailable  UnitStatus = "AVAILABLE"
	UnitOnPatrol   UnitStatus = "ON_PATROL"
	UnitResponding UnitStatus = "RESPONDING"
	UnitOffDuty    UnitStatus = "OFF_DUTY"
)

// PatrolUnit is a static session resource; units are not derived from
// incident data.
type PatrolUnit struct {
	ID        string     `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	Latitude  float64    `json:"latitude" yaml:"latitude"`
	Longitude float64    `json:"longitude" yaml:"longitude"`
	Status    UnitStatus `json:"status" yaml:"status"`
}

// MapBounds frames the incident set on a map: bounding-box center plus a
// coarse zoom level.
type MapBounds struct {
	CenterLat float64 `json:"center_lat"`
	CenterLng float64 `json:"center_lng"`
	Zoom      int     `json:"zoom"`
}

// DayCount is one entry of the daily trend series.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// CrimeStats is an immutable snapshot derived from an incident set.
type CrimeStats struct {
	TotalIncidents int               `json:"total_incidents"`
	OpenCases      int               `json:"open_cases"`
	ClosedCases    int               `json:"closed_cases"`
	ByType         map[CrimeType]int `json:"by_type"`
	ByHour         [24]int           `json:"by_hour"`
	ByDay          []DayCount        `json:"by_day"`
}

// InsightType categorizes a tactical recommendation.
type InsightType string

const (
	InsightHotspot     InsightType = "HOTSPOT"
	InsightResourceGap InsightType = "RESOURCE_GAP"
	InsightTrend       InsightType = "TREND"
	InsightAlert       InsightType = "ALERT"
)

// Severity ranks an insight.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// AIInsight is a rule-derived tactical recommendation. Insights are fully
// recomputed whenever the incident set changes; ids are fixed per rule.
type AIInsight struct {
	ID             string      `json:"id"`
	Type           InsightType `json:"type"`
	Severity       Severity    `json:"severity"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Recommendation string      `json:"recommendation"`
	AffectedArea   string      `json:"affected_area,omitempty"`
	CrimeType      CrimeType   `json:"crime_type,omitempty"`
}
