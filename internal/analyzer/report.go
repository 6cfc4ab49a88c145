package analyzer

// Report is the result of analyzing one translation unit. All four lists are
// always non-nil; ordering within a category is stable collection order.
type Report struct {
	UnusedVars    []VarFinding    `json:"unused_vars"`
	UnusedImports []ImportFinding `json:"unused_imports"`
	SyntaxErrors  []SyntaxFinding `json:"syntax_errors"`
	StarImports   []StarFinding   `json:"star_imports"`
}

type VarFinding struct {
	Name string `json:"name"`
	Line int    `json:"line"`
}

type ImportFinding struct {
	Name string `json:"name"`
	Line int    `json:"line"`
}

type SyntaxFinding struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// StarFinding reports a wildcard import. Line is always 0: wildcard usage is
// statically unverifiable, so no declaration position is carried through.
type StarFinding struct {
	Module string `json:"module"`
	Line   int    `json:"line"`
}

func NewReport() *Report {
	return &Report{
		UnusedVars:    []VarFinding{},
		UnusedImports: []ImportFinding{},
		SyntaxErrors:  []SyntaxFinding{},
		StarImports:   []StarFinding{},
	}
}

// Total returns the number of findings across all categories.
func (r *Report) Total() int {
	return len(r.UnusedVars) + len(r.UnusedImports) + len(r.SyntaxErrors) + len(r.StarImports)
}
