package artifact

// Discovery is the loosely-structured scientific-claim object under
// validation. Upstream generation does not guarantee any field, so all access
// goes through the defensive accessors in extract.go rather than a schema.
type Discovery map[string]interface{}

// LiteratureSource is one reference the discovery cites or was checked
// against. Identity resolution falls back DOI → ID → Title.
type LiteratureSource struct {
	DOI     string `json:"doi,omitempty"`
	ID      string `json:"id,omitempty"`
	Title   string `json:"title,omitempty"`
	Year    int    `json:"year,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// Identity returns the stable identifier used for cache-key derivation.
func (s LiteratureSource) Identity() string {
	if s.DOI != "" {
		return s.DOI
	}
	if s.ID != "" {
		return s.ID
	}
	return s.Title
}

// SimulationData carries the raw numerical-simulation output attached to a
// validation request, when present.
type SimulationData struct {
	Tier            string    `json:"tier,omitempty"`
	Iterations      int       `json:"iterations,omitempty"`
	Converged       bool      `json:"converged"`
	ResidualHistory []float64 `json:"residual_history,omitempty"`
	FinalResidual   float64   `json:"final_residual,omitempty"`
	Summary         string    `json:"summary,omitempty"`
}

// Context bundles the optional collaborator inputs for one validation call.
// Every field may be absent; scorers degrade to low confidence rather than
// fail when the data they need is missing.
type Context struct {
	Literature []LiteratureSource `json:"literature,omitempty"`
	Simulation *SimulationData    `json:"simulation,omitempty"`
	// Hypothesis is the raw research/hypothesis text the artifact came from.
	Hypothesis string `json:"hypothesis,omitempty"`
	// ExternalRubric is a pre-computed rubric judgment supplied by the
	// generation subsystem, passed through as one benchmark of the fusion.
	ExternalRubric map[string]interface{} `json:"external_rubric,omitempty"`
}

// LiteratureIdentities returns the sorted-ready identifier list for hashing.
func (c *Context) LiteratureIdentities() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, 0, len(c.Literature))
	for _, src := range c.Literature {
		if id := src.Identity(); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
