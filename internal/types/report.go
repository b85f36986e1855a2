package types

// ValidationFinding describes one problem found while validating the
// package.json files of a workspace.
type ValidationFinding struct {
	Manifest string
	Request  string
	Severity FindingSeverity
	Message  string
}

type ValidationReport struct {
	Manifests int
	Findings  []ValidationFinding
}

func (r ValidationReport) HasErrors() bool {
	for _, finding := range r.Findings {
		if finding.Severity == FindingError {
			return true
		}
	}
	return false
}
