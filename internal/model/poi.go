package model

// Recommendation is the verification judge's binary verdict for a candidate.
type Recommendation string

const (
	RecommendationInclude Recommendation = "INCLUDE"
	RecommendationExclude Recommendation = "EXCLUDE"
)

// Candidate is one physical place discovered from social content.
// Coordinates are filled in later by geocoding during verification when the
// candidate carries an address; both stay nil when nothing resolves.
type Candidate struct {
	Name       string   `json:"name"`
	Address    string   `json:"address,omitempty"`
	Lat        *float64 `json:"lat,omitempty"`
	Lng        *float64 `json:"lng,omitempty"`
	Category   string   `json:"category,omitempty"`
	Likes      int      `json:"likes"`
	SourceURL  string   `json:"source_url,omitempty"`
	RawContent string   `json:"raw_content,omitempty"`

	// SeedScore is a persona-alignment score embedded by discovery itself
	// (offline template data carries one, live extraction does not).
	SeedScore *float64 `json:"seed_score,omitempty"`
}

// Geocoded reports whether the candidate has resolved coordinates.
func (c Candidate) Geocoded() bool {
	return c.Lat != nil && c.Lng != nil
}

// SetCoords attaches resolved coordinates to the candidate.
func (c *Candidate) SetCoords(lat, lng float64) {
	c.Lat = &lat
	c.Lng = &lng
}

// VerifiedPOI is a Candidate enriched with the judge's assessment.
// Every candidate entering verification yields exactly one VerifiedPOI.
type VerifiedPOI struct {
	Candidate

	// IsOpen and SeasonalMatch are tri-state: nil means the judge could not
	// tell from the available evidence.
	IsOpen        *bool `json:"is_open"`
	SeasonalMatch *bool `json:"seasonal_match"`

	// PersonaScore is the resolved persona-alignment score in [0,10].
	PersonaScore   float64        `json:"persona_score"`
	Recommendation Recommendation `json:"recommendation"`
	Reasoning      string         `json:"reasoning,omitempty"`
	AgentNote      string         `json:"agent_note,omitempty"`
}

// Included reports whether the POI survives filtering: the judge did not
// exclude it and it is not known to be closed.
func (v VerifiedPOI) Included() bool {
	if v.Recommendation == RecommendationExclude {
		return false
	}
	return v.IsOpen == nil || *v.IsOpen
}

// DayPlan is the ordered list of POIs assigned to one itinerary day.
type DayPlan []VerifiedPOI
