package insight

// AnalysisRequest is the POST body. Every field is optional.
type AnalysisRequest struct {
	Goals   []any          `json:"goals"`
	Logs    []any          `json:"logs"`
	Journal map[string]any `json:"journal"`
}

// AnalysisResponse carries exactly one of Insight or Error.
type AnalysisResponse struct {
	Insight string `json:"insight,omitempty"`
	Error   string `json:"error,omitempty"`
}

// withDefaults swaps absent or null fields for empty containers so the
// prompt shows [] and {} instead of null.
func (r AnalysisRequest) withDefaults() AnalysisRequest {
	if r.Goals == nil {
		r.Goals = []any{}
	}
	if r.Logs == nil {
		r.Logs = []any{}
	}
	if r.Journal == nil {
		r.Journal = map[string]any{}
	}
	return r
}
