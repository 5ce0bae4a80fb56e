package benchmark

import "strings"

type Scenario string

const (
	ScenarioDB        Scenario = "db"
	ScenarioQuery     Scenario = "query"
	ScenarioUpdate    Scenario = "update"
	ScenarioFortune   Scenario = "fortune"
	ScenarioJSON      Scenario = "json"
	ScenarioPlaintext Scenario = "plaintext"
	ScenarioIdle      Scenario = "idle"
)

// LoadScenarios are the scenarios a user can pick; idle is derived from level 0.
var LoadScenarios = []Scenario{
	ScenarioDB,
	ScenarioQuery,
	ScenarioUpdate,
	ScenarioFortune,
	ScenarioJSON,
	ScenarioPlaintext,
}

func (s Scenario) Valid() bool {
	if s == ScenarioIdle {
		return true
	}
	for _, known := range LoadScenarios {
		if s == known {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusOther   Status = "other"
)

// ParseStatus maps raw status strings to a Status. The benchmark tooling
// historically wrote "sucess", which is accepted as success.
func ParseStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "success", "sucess":
		return StatusSuccess
	case "failure", "failed", "fail", "error":
		return StatusFailure
	default:
		return StatusOther
	}
}

// Category is one of the fixed categorical columns of a row.
type Category string

const (
	CategoryLanguage       Category = "language"
	CategoryClassification Category = "classification"
	CategoryDatabase       Category = "database"
	CategoryOS             Category = "os"
	CategoryFramework      Category = "framework"
	CategoryWebserver      Category = "webserver"
	CategoryORM            Category = "orm"
	CategoryPlatform       Category = "platform"
	CategoryApproach       Category = "approach"
)

// FilterCategories are the categories offered as additional filters.
// Language has its own selector and is not part of this list.
var FilterCategories = []Category{
	CategoryClassification,
	CategoryDatabase,
	CategoryOS,
	CategoryFramework,
	CategoryWebserver,
	CategoryORM,
	CategoryPlatform,
	CategoryApproach,
}

func (c Category) Valid() bool {
	if c == CategoryLanguage {
		return true
	}
	for _, known := range FilterCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Metric names a numeric column by its table id.
type Metric string

const (
	MetricLevel            Metric = "level"
	MetricCPU              Metric = "cpu"
	MetricDRAM             Metric = "dram"
	MetricTotalRequests    Metric = "totalRequests"
	MetricLatencyAvg       Metric = "latencyAvg"
	MetricLatency99        Metric = "latency99"
	MetricAvPowerCPU       Metric = "av_power_cpu"
	MetricAvPowerDRAM      Metric = "av_power_dram"
	MetricAvCPUPerRequest  Metric = "av_cpu_per_request"
	MetricAvDRAMPerRequest Metric = "av_dram_per_request"
	MetricRPS              Metric = "RPS"
)

var Metrics = []Metric{
	MetricLevel,
	MetricCPU,
	MetricDRAM,
	MetricTotalRequests,
	MetricLatencyAvg,
	MetricLatency99,
	MetricAvPowerCPU,
	MetricAvPowerDRAM,
	MetricAvCPUPerRequest,
	MetricAvDRAMPerRequest,
	MetricRPS,
}

// Row is one benchmark observation.
type Row struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`

	Language       string `json:"language"`
	Classification string `json:"classification"`
	Database       string `json:"database"`
	OS             string `json:"os"`
	Framework      string `json:"framework"`
	Webserver      string `json:"webserver"`
	ORM            string `json:"orm"`
	Platform       string `json:"platform"`
	Approach       string `json:"approach"`

	Scenario Scenario `json:"scenario"`
	Level    float64  `json:"level"`
	Status   Status   `json:"status"`

	// Raw measurements
	CPU           float64 `json:"cpu"`
	DRAM          float64 `json:"dram"`
	TotalRequests float64 `json:"totalRequests"`
	LatencyAvg    float64 `json:"latencyAvg"`
	Latency99     float64 `json:"latency99"`

	// Derived Metrics
	AvPowerCPU       float64 `json:"av_power_cpu"`
	AvPowerDRAM      float64 `json:"av_power_dram"`
	AvCPUPerRequest  float64 `json:"av_cpu_per_request"`
	AvDRAMPerRequest float64 `json:"av_dram_per_request"`
	RPS              float64 `json:"RPS"`
}

func (r Row) Category(c Category) string {
	switch c {
	case CategoryLanguage:
		return r.Language
	case CategoryClassification:
		return r.Classification
	case CategoryDatabase:
		return r.Database
	case CategoryOS:
		return r.OS
	case CategoryFramework:
		return r.Framework
	case CategoryWebserver:
		return r.Webserver
	case CategoryORM:
		return r.ORM
	case CategoryPlatform:
		return r.Platform
	case CategoryApproach:
		return r.Approach
	default:
		return ""
	}
}

// SetCategory assigns a categorical field; unknown categories are ignored.
func (r *Row) SetCategory(c Category, value string) {
	switch c {
	case CategoryLanguage:
		r.Language = value
	case CategoryClassification:
		r.Classification = value
	case CategoryDatabase:
		r.Database = value
	case CategoryOS:
		r.OS = value
	case CategoryFramework:
		r.Framework = value
	case CategoryWebserver:
		r.Webserver = value
	case CategoryORM:
		r.ORM = value
	case CategoryPlatform:
		r.Platform = value
	case CategoryApproach:
		r.Approach = value
	}
}

func (r Row) Value(m Metric) (float64, bool) {
	switch m {
	case MetricLevel:
		return r.Level, true
	case MetricCPU:
		return r.CPU, true
	case MetricDRAM:
		return r.DRAM, true
	case MetricTotalRequests:
		return r.TotalRequests, true
	case MetricLatencyAvg:
		return r.LatencyAvg, true
	case MetricLatency99:
		return r.Latency99, true
	case MetricAvPowerCPU:
		return r.AvPowerCPU, true
	case MetricAvPowerDRAM:
		return r.AvPowerDRAM, true
	case MetricAvCPUPerRequest:
		return r.AvCPUPerRequest, true
	case MetricAvDRAMPerRequest:
		return r.AvDRAMPerRequest, true
	case MetricRPS:
		return r.RPS, true
	default:
		return 0, false
	}
}

// SetValue assigns a numeric field and reports whether the metric is known.
func (r *Row) SetValue(m Metric, v float64) bool {
	switch m {
	case MetricLevel:
		r.Level = v
	case MetricCPU:
		r.CPU = v
	case MetricDRAM:
		r.DRAM = v
	case MetricTotalRequests:
		r.TotalRequests = v
	case MetricLatencyAvg:
		r.LatencyAvg = v
	case MetricLatency99:
		r.Latency99 = v
	case MetricAvPowerCPU:
		r.AvPowerCPU = v
	case MetricAvPowerDRAM:
		r.AvPowerDRAM = v
	case MetricAvCPUPerRequest:
		r.AvCPUPerRequest = v
	case MetricAvDRAMPerRequest:
		r.AvDRAMPerRequest = v
	case MetricRPS:
		r.RPS = v
	default:
		return false
	}
	return true
}

// Values extracts a numeric column in row order.
func Values(rows []Row, m Metric) []float64 {
	out := make([]float64, 0, len(rows))
	for _, r := range rows {
		if v, ok := r.Value(m); ok {
			out = append(out, v)
		}
	}
	return out
}
