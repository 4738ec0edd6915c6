package judgment

// GradedDoc is a manual judgment as written in YAML judgment files.
type GradedDoc struct {
	DocID string `yaml:"doc_id"`
	Grade int    `yaml:"grade"`
}

type JudgmentFile struct {
	Strategy string          `yaml:"strategy"`
	Queries  []JudgmentEntry `yaml:"queries"`
}

type JudgmentEntry struct {
	QueryID string      `yaml:"query_id"`
	Docs    []GradedDoc `yaml:"docs"`
}
