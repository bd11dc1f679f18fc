package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/akashent3/redflags-sub001/internal/domain/service"
	"github.com/akashent3/redflags-sub001/internal/domain/valueobject"
)

//go:embed scoring_defaults.yaml
var scoringDefaults []byte

// Scoring holds the validated scoring tables and engine thresholds.
type Scoring struct {
	Points            service.SeverityPoints
	Weights           service.CategoryWeights
	ConfidenceFloor   float64
	ClassifierTimeout time.Duration
	MatchFloor        float64
}

// scoringFile mirrors the YAML layout.
type scoringFile struct {
	SeverityPoints struct {
		Critical int `yaml:"critical"`
		High     int `yaml:"high"`
		Medium   int `yaml:"medium"`
		Low      int `yaml:"low"`
	} `yaml:"severity_points"`
	CategoryWeights map[string]float64 `yaml:"category_weights"`
	Classifier      struct {
		ConfidenceFloor float64 `yaml:"confidence_floor"`
		TimeoutSeconds  int     `yaml:"timeout_seconds"`
	} `yaml:"classifier"`
	Pattern struct {
		MatchFloor float64 `yaml:"match_floor"`
	} `yaml:"pattern"`
}

// LoadScoring reads the scoring configuration from path, or the embedded
// defaults when path is empty, and validates it. Any defect is a fatal
// ConfigurationError: a silently wrong table would corrupt every score.
func LoadScoring(path string) (*Scoring, error) {
	raw := scoringDefaults
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &service.ConfigurationError{Detail: fmt.Sprintf("read scoring config %s: %v", path, err)}
		}
		raw = data
	}

	var file scoringFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, &service.ConfigurationError{Detail: fmt.Sprintf("parse scoring config: %v", err)}
	}

	points := service.SeverityPoints{
		Critical: file.SeverityPoints.Critical,
		High:     file.SeverityPoints.High,
		Medium:   file.SeverityPoints.Medium,
		Low:      file.SeverityPoints.Low,
	}
	if err := points.Validate(); err != nil {
		return nil, err
	}

	weights := make(service.CategoryWeights, len(file.CategoryWeights))
	for name, weight := range file.CategoryWeights {
		cat, err := valueobject.CategoryFromString(name)
		if err != nil {
			return nil, &service.ConfigurationError{Detail: fmt.Sprintf("unknown category %q in weight table", name)}
		}
		weights[cat] = weight
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	if file.Classifier.ConfidenceFloor < 0 || file.Classifier.ConfidenceFloor > 1 {
		return nil, &service.ConfigurationError{Detail: fmt.Sprintf(
			"classifier confidence floor %g out of [0,1]", file.Classifier.ConfidenceFloor)}
	}
	if file.Classifier.TimeoutSeconds <= 0 {
		return nil, &service.ConfigurationError{Detail: "classifier timeout must be positive"}
	}
	if file.Pattern.MatchFloor <= 0 || file.Pattern.MatchFloor > 1 {
		return nil, &service.ConfigurationError{Detail: fmt.Sprintf(
			"pattern match floor %g out of (0,1]", file.Pattern.MatchFloor)}
	}

	return &Scoring{
		Points:            points,
		Weights:           weights,
		ConfidenceFloor:   file.Classifier.ConfidenceFloor,
		ClassifierTimeout: time.Duration(file.Classifier.TimeoutSeconds) * time.Second,
		MatchFloor:        file.Pattern.MatchFloor,
	}, nil
}
