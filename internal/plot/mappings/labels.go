package mappings

import "bench-dashboard/internal/benchmark"

const (
	clientsLabel   = "Number of clients"
	querySizeLabel = "size of the query"
)

// XLabels name the level axis of every load scenario.
var XLabels = map[benchmark.Scenario]string{
	benchmark.ScenarioDB:        clientsLabel,
	benchmark.ScenarioJSON:      clientsLabel,
	benchmark.ScenarioFortune:   clientsLabel,
	benchmark.ScenarioPlaintext: clientsLabel,
	benchmark.ScenarioQuery:     querySizeLabel,
	benchmark.ScenarioUpdate:    querySizeLabel,
}

var Titles = map[benchmark.Scenario]string{
	benchmark.ScenarioDB:        "Database-access responses per second for a single query request",
	benchmark.ScenarioJSON:      "Database-access responses per second for a Json file serialization",
	benchmark.ScenarioQuery:     "Database-access responses per second, with a query of multiple lines from 512 clients",
	benchmark.ScenarioUpdate:    "Database-access responses per second, with updates of multiple lines from 512 clients",
	benchmark.ScenarioPlaintext: `return the message "Hello, World" with high number of concurrent clients`,
	benchmark.ScenarioFortune:   "rendering an html page containing unknown number of lines using multiple clients",
}

// ScenarioLabels are the option labels of the scenario picker.
var ScenarioLabels = map[benchmark.Scenario]string{
	benchmark.ScenarioDB:        "Single query",
	benchmark.ScenarioQuery:     "Multiple queries",
	benchmark.ScenarioUpdate:    "Update queries",
	benchmark.ScenarioFortune:   "Fortunes",
	benchmark.ScenarioJSON:      "JSON Serialization",
	benchmark.ScenarioPlaintext: "Plain text",
}

func XLabel(s benchmark.Scenario) string {
	if l, ok := XLabels[s]; ok {
		return l
	}
	return string(benchmark.MetricLevel)
}

func Title(s benchmark.Scenario) string {
	if t, ok := Titles[s]; ok {
		return t
	}
	return string(s)
}

func ScenarioLabel(s benchmark.Scenario) string {
	if l, ok := ScenarioLabels[s]; ok {
		return l
	}
	return string(s)
}
