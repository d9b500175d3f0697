package heuristic

import (
	"github.com/beautifulplanet/safetyserv/config"
	"github.com/beautifulplanet/safetyserv/signature"
)

// Flag - A warning produced by a signature-free classifier.
type Flag struct {
	Category string             `json:"category"`
	Severity signature.Severity `json:"severity"`
	Message  string             `json:"message"`
}

// Classifiers - The three standalone regex classifiers. All patterns are
// compiled at package init, so a Classifiers value is just length caps and is
// safe for concurrent use.
type Classifiers struct {
	maxTitle int
	maxDesc  int
}

func NewClassifiers(cnf *config.InstanceConfig) *Classifiers {
	return &Classifiers{
		maxTitle: cnf.MaxTitleLength,
		maxDesc:  cnf.MaxDescriptionLength,
	}
}
