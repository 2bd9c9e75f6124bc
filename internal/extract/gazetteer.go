package extract

const (
	UnknownLocation = "Unknown Location"
	AnyStream       = "Any Stream"
)

// Gazetteer holds the fixed vocabularies used by the extractors.
// Lookup order matters: the first entry found in the text wins.
type Gazetteer struct {
	Cities         []string          `yaml:"cities"`
	CityAliases    map[string]string `yaml:"city_aliases"`
	Streams        []string          `yaml:"streams"`
	StreamAliases  map[string]string `yaml:"stream_aliases"`
	NewsOutlets    []string          `yaml:"news_outlets"`
	GenericSuffix  []string          `yaml:"generic_suffix"`
	BlockedPhrases []string          `yaml:"blocked_phrases"`
}

// DefaultGazetteer returns the built-in vocabularies.
func DefaultGazetteer() Gazetteer {
	return Gazetteer{
		Cities: []string{
			"Bangalore", "Bengaluru", "Pune", "Hyderabad", "Mumbai", "Chennai", "Delhi",
			"Noida", "Gurgaon", "Gurugram", "Kolkata", "Ahmedabad", "Remote", "Work from Home",
		},
		CityAliases: map[string]string{
			"bengaluru":      "Bangalore",
			"gurugram":       "Gurgaon",
			"work from home": "Remote",
		},
		Streams: []string{
			"Computer Science", "CSE", "Information Technology", "IT", "Electronics", "ECE",
			"EEE", "Mechanical", "Civil", "MBA", "BBA", "B.Com", "M.Tech", "B.Tech", "Biotech",
		},
		StreamAliases: map[string]string{
			"cse": "Computer Science",
			"it":  "Information Technology",
			"ece": "Electronics",
		},
		NewsOutlets: []string{
			"Mint", "TechCrunch", "Reuters", "Bloomberg", "NDTV", "Times of India", "Economic Times",
			"Moneycontrol", "Business Standard", "Financial Express", "Hindustan Times", "News18",
			"India Today", "The Hindu", "Deccan Herald", "MSN", "Jagran Josh", "Adda247", "Testbook",
			"Careers360", "Shiksha", "LiveMint", "The Indian Express", "Firstpost", "DNA India",
			"Zee News", "ABP Live", "Business Insider", "Forbes", "CNBC", "Naukri", "Foundit",
		},
		GenericSuffix: []string{
			"Off-campus", "Hiring", "Recruits", "Says", "Internship", "Intern", "Program",
			"Programme", "Training", "Apprentice", "Batch", "Drive", "Exam", "Jobs",
		},
		BlockedPhrases: []string{
			"Access Denied", "You don't have permission", "Reference #", "Incapsula",
			"Cloudflare", "Security Check", "errors.edgesuite.net",
		},
	}
}

// Merge overlays non-empty fields of other onto g.
func (g Gazetteer) Merge(other Gazetteer) Gazetteer {
	if len(other.Cities) > 0 {
		g.Cities = other.Cities
	}
	if len(other.CityAliases) > 0 {
		g.CityAliases = other.CityAliases
	}
	if len(other.Streams) > 0 {
		g.Streams = other.Streams
	}
	if len(other.StreamAliases) > 0 {
		g.StreamAliases = other.StreamAliases
	}
	if len(other.NewsOutlets) > 0 {
		g.NewsOutlets = other.NewsOutlets
	}
	if len(other.GenericSuffix) > 0 {
		g.GenericSuffix = other.GenericSuffix
	}
	if len(other.BlockedPhrases) > 0 {
		g.BlockedPhrases = other.BlockedPhrases
	}
	return g
}
